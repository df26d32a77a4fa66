package domain

import "context"

// ServicePort is the routes API surface mounted over HTTP
type ServicePort interface {
	Assess(ctx context.Context, in AssessInput) (Verdict, error)
	Compare(ctx context.Context, in CompareInput) (CompareOutput, error)
}

package domain

import "context"

// ServicePort is the moderation API surface mounted over HTTP
type ServicePort interface {
	Check(ctx context.Context, in CheckInput) (Verdict, error)
}

// Package repo provides postgres access for safety resources
package repo

import (
	"context"

	"safetymapper/internal/modkit/repokit"
	"safetymapper/internal/services/resources/domain"
)

// Repo is the minimal persistence surface for safety resources
type Repo interface {
	// List returns every resource for snapshot rebuilds
	List(ctx context.Context) ([]domain.Resource, error)
	Insert(ctx context.Context, res domain.Resource) error
	Count(ctx context.Context) (int64, error)
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) List(ctx context.Context) ([]domain.Resource, error) {
	const sql = `
select id, kind, name, lat, lon
from safety_resources
order by name
`
	rows, err := r.q.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Resource
	for rows.Next() {
		var (
			res  domain.Resource
			kind string
		)
		if err := rows.Scan(&res.ID, &kind, &res.Name, &res.Point.Lat, &res.Point.Lon); err != nil {
			return nil, err
		}
		res.Kind = domain.Kind(kind)
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *queries) Insert(ctx context.Context, res domain.Resource) error {
	const sql = `
insert into safety_resources (id, kind, name, lat, lon)
values ($1, $2, $3, $4, $5)
`
	_, err := r.q.Exec(ctx, sql, res.ID, string(res.Kind), res.Name, res.Point.Lat, res.Point.Lon)
	return err
}

func (r *queries) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `select count(*) from safety_resources`).Scan(&n)
	return n, err
}

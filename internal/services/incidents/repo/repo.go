// Package repo provides postgres access for incidents
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"safetymapper/internal/core/risk"
	"safetymapper/internal/modkit/repokit"
	"safetymapper/internal/services/incidents/domain"
)

// Repo is the minimal persistence surface for incidents
type Repo interface {
	Insert(ctx context.Context, inc domain.Incident) error
	// Recent returns records created after since, newest first, capped at limit
	Recent(ctx context.Context, since time.Time, limit int) ([]domain.Incident, error)
	// ListActive returns every active record for snapshot rebuilds
	ListActive(ctx context.Context) ([]domain.Incident, error)
	// Archive flips status active -> archived; false when id is unknown
	Archive(ctx context.Context, id uuid.UUID) (bool, error)
	// Count reports total records, archived included
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

func (r *queries) Insert(ctx context.Context, inc domain.Incident) error {
	const sql = `
insert into incidents (id, itype, severity, lat, lon, description, created_at, status)
values ($1, $2, $3, $4, $5, $6, $7, $8)
`
	_, err := r.q.Exec(ctx, sql,
		inc.ID, string(inc.Type), string(inc.Severity),
		inc.Point.Lat, inc.Point.Lon, inc.Description,
		inc.CreatedAt, string(inc.Status),
	)
	return err
}

func (r *queries) Recent(ctx context.Context, since time.Time, limit int) ([]domain.Incident, error) {
	const sql = `
select id, itype, severity, lat, lon, description, created_at, status
from incidents
where status = 'active' and created_at >= $1
order by created_at desc
limit $2
`
	rows, err := r.q.Query(ctx, sql, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIncidents(rows)
}

func (r *queries) ListActive(ctx context.Context) ([]domain.Incident, error) {
	const sql = `
select id, itype, severity, lat, lon, description, created_at, status
from incidents
where status = 'active'
order by created_at desc
`
	rows, err := r.q.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIncidents(rows)
}

func (r *queries) Archive(ctx context.Context, id uuid.UUID) (bool, error) {
	const sql = `
update incidents
set status = 'archived'
where id = $1 and status = 'active'
`
	tag, err := r.q.Exec(ctx, sql, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *queries) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `select count(*) from incidents`).Scan(&n)
	return n, err
}

func scanIncidents(rows repokit.Rows) ([]domain.Incident, error) {
	var out []domain.Incident
	for rows.Next() {
		var (
			inc      domain.Incident
			typ      string
			severity string
			status   string
		)
		if err := rows.Scan(
			&inc.ID, &typ, &severity,
			&inc.Point.Lat, &inc.Point.Lon,
			&inc.Description, &inc.CreatedAt, &status,
		); err != nil {
			return nil, err
		}
		inc.Type = domain.Type(typ)
		inc.Severity = risk.Severity(severity)
		inc.Status = domain.Status(status)
		out = append(out, inc)
	}
	return out, rows.Err()
}

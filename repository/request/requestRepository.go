package requestrepo

import (
	"context"
	"database/sql"

	"shareit/model"
)

type Repo interface {
	Insert(ctx context.Context, rq *model.Request) error
	ByID(ctx context.Context, id int64) (*model.Request, error)
	AllByRequestor(ctx context.Context, requestorID int64) ([]model.Request, error)
	AllOthers(ctx context.Context, requestorID int64, from, size int) ([]model.Request, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Insert(ctx context.Context, rq *model.Request) error {
	const q = `
INSERT INTO requests (description, requestor_id)
VALUES ($1,$2)
RETURNING id, created`
	return r.db.QueryRowContext(ctx, q, rq.Description, rq.RequestorID).Scan(&rq.ID, &rq.Created)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Request, error) {
	const q = `
SELECT id, description, requestor_id, created
FROM requests
WHERE id=$1`
	rq := &model.Request{}
	err := r.db.QueryRowContext(ctx, q, id).Scan(&rq.ID, &rq.Description, &rq.RequestorID, &rq.Created)
	if err != nil {
		return nil, err
	}
	return rq, nil
}

func (r *repo) AllByRequestor(ctx context.Context, requestorID int64) ([]model.Request, error) {
	const q = `
SELECT id, description, requestor_id, created
FROM requests
WHERE requestor_id=$1
ORDER BY created`
	return r.query(ctx, q, requestorID)
}

// AllOthers lists requests the user can answer, i.e. everyone else's.
func (r *repo) AllOthers(ctx context.Context, requestorID int64, from, size int) ([]model.Request, error) {
	const q = `
SELECT id, description, requestor_id, created
FROM requests
WHERE requestor_id <> $1
ORDER BY created
OFFSET $2 LIMIT $3`
	return r.query(ctx, q, requestorID, from, size)
}

func (r *repo) query(ctx context.Context, q string, args ...any) ([]model.Request, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Request
	for rows.Next() {
		var rq model.Request
		if err := rows.Scan(&rq.ID, &rq.Description, &rq.RequestorID, &rq.Created); err != nil {
			return nil, err
		}
		out = append(out, rq)
	}
	return out, rows.Err()
}

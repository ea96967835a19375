package itemrepo

import (
	"context"
	"database/sql"

	"shareit/model"
)

type Repo interface {
	Insert(ctx context.Context, i *model.Item) error
	Update(ctx context.Context, i *model.Item) error
	ByID(ctx context.Context, id int64) (*model.Item, error)
	AllByOwner(ctx context.Context, ownerID int64, from, size int) ([]model.Item, error)
	AllByRequest(ctx context.Context, requestID int64) ([]model.Item, error)
	Search(ctx context.Context, text string, from, size int) ([]model.Item, error)
	Delete(ctx context.Context, id int64) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Insert(ctx context.Context, i *model.Item) error {
	const q = `
INSERT INTO items (name, description, available, owner_id, request_id)
VALUES ($1,$2,$3,$4,$5)
RETURNING id`
	return r.db.QueryRowContext(ctx, q, i.Name, i.Description, i.Available, i.OwnerID, i.RequestID).Scan(&i.ID)
}

func (r *repo) Update(ctx context.Context, i *model.Item) error {
	const q = `
UPDATE items
SET name=$2, description=$3, available=$4
WHERE id=$1`
	_, err := r.db.ExecContext(ctx, q, i.ID, i.Name, i.Description, i.Available)
	return err
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Item, error) {
	const q = `
SELECT id, name, description, available, owner_id, request_id
FROM items
WHERE id=$1`
	i := &model.Item{}
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&i.ID, &i.Name, &i.Description, &i.Available, &i.OwnerID, &i.RequestID)
	if err != nil {
		return nil, err
	}
	return i, nil
}

func (r *repo) AllByOwner(ctx context.Context, ownerID int64, from, size int) ([]model.Item, error) {
	const q = `
SELECT id, name, description, available, owner_id, request_id
FROM items
WHERE owner_id=$1
ORDER BY id
OFFSET $2 LIMIT $3`
	return r.queryItems(ctx, q, ownerID, from, size)
}

func (r *repo) AllByRequest(ctx context.Context, requestID int64) ([]model.Item, error) {
	const q = `
SELECT id, name, description, available, owner_id, request_id
FROM items
WHERE request_id=$1
ORDER BY id`
	return r.queryItems(ctx, q, requestID)
}

func (r *repo) Search(ctx context.Context, text string, from, size int) ([]model.Item, error) {
	const q = `
SELECT id, name, description, available, owner_id, request_id
FROM items
WHERE available
  AND (name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
ORDER BY id
OFFSET $2 LIMIT $3`
	return r.queryItems(ctx, q, text, from, size)
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM items WHERE id=$1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

func (r *repo) queryItems(ctx context.Context, q string, args ...any) ([]model.Item, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Item
	for rows.Next() {
		var i model.Item
		if err := rows.Scan(&i.ID, &i.Name, &i.Description, &i.Available, &i.OwnerID, &i.RequestID); err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

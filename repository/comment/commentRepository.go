package commentrepo

import (
	"context"
	"database/sql"

	"shareit/model"
)

// View is a comment joined with its author's display name.
type View struct {
	model.Comment
	AuthorName string
}

type Repo interface {
	Insert(ctx context.Context, c *model.Comment) error
	AllByItem(ctx context.Context, itemID int64) ([]View, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Insert(ctx context.Context, c *model.Comment) error {
	const q = `
INSERT INTO comments (text, item_id, author_id)
VALUES ($1,$2,$3)
RETURNING id, created`
	return r.db.QueryRowContext(ctx, q, c.Text, c.ItemID, c.AuthorID).Scan(&c.ID, &c.Created)
}

func (r *repo) AllByItem(ctx context.Context, itemID int64) ([]View, error) {
	const q = `
SELECT c.id, c.text, c.item_id, c.author_id, c.created, u.name
FROM comments c
JOIN users u ON u.id = c.author_id
WHERE c.item_id=$1
ORDER BY c.id`
	rows, err := r.db.QueryContext(ctx, q, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []View
	for rows.Next() {
		var v View
		if err := rows.Scan(&v.ID, &v.Text, &v.ItemID, &v.AuthorID, &v.Created, &v.AuthorName); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

package commentrepo

import (
	"context"
	"time"

	"shareit/model"
	"shareit/util/database"
)

// Row is a comment joined with its author's name for the read side.
type Row struct {
	ID         int64
	Text       string
	ItemID     int64
	AuthorID   int64
	AuthorName string
	Created    time.Time
}

type Repo interface {
	Create(ctx context.Context, cm *model.Comment) error
	ByItem(ctx context.Context, itemID int64) ([]Row, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, cm *model.Comment) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO comments (text, item_id, author_id, created)
		VALUES ($1,$2,$3,$4)
		RETURNING id`,
		cm.Text, cm.ItemID, cm.AuthorID, cm.Created,
	).Scan(&cm.ID)
}

func (r *repo) ByItem(ctx context.Context, itemID int64) ([]Row, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT c.id, c.text, c.item_id, c.author_id, u.name, c.created
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.item_id = $1
		ORDER BY c.id`,
		itemID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.ID, &row.Text, &row.ItemID, &row.AuthorID, &row.AuthorName, &row.Created); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

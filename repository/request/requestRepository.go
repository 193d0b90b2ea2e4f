package requestrepo

import (
	"context"

	"shareit/model"
	"shareit/util/database"
)

type Repo interface {
	Create(ctx context.Context, rq *model.ItemRequest) error
	ByID(ctx context.Context, id int64) (*model.ItemRequest, error)
	ByRequestor(ctx context.Context, userID int64) ([]model.ItemRequest, error)

	// AllOthers lists every request not owned by userID, newest first.
	AllOthers(ctx context.Context, userID int64, limit, offset int) ([]model.ItemRequest, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, rq *model.ItemRequest) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO requests (description, requestor_id, created)
		VALUES ($1,$2,$3)
		RETURNING id`,
		rq.Description, rq.RequestorID, rq.Created,
	).Scan(&rq.ID)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.ItemRequest, error) {
	rq := &model.ItemRequest{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, description, requestor_id, created
		FROM requests
		WHERE id = $1`,
		id,
	).Scan(&rq.ID, &rq.Description, &rq.RequestorID, &rq.Created)
	if err != nil {
		return nil, err
	}
	return rq, nil
}

func (r *repo) ByRequestor(ctx context.Context, userID int64) ([]model.ItemRequest, error) {
	return r.list(ctx, `
		SELECT id, description, requestor_id, created
		FROM requests
		WHERE requestor_id = $1
		ORDER BY created DESC`,
		userID)
}

func (r *repo) AllOthers(ctx context.Context, userID int64, limit, offset int) ([]model.ItemRequest, error) {
	return r.list(ctx, `
		SELECT id, description, requestor_id, created
		FROM requests
		WHERE requestor_id <> $1
		ORDER BY created DESC
		LIMIT $2 OFFSET $3`,
		userID, limit, offset)
}

func (r *repo) list(ctx context.Context, q string, args ...any) ([]model.ItemRequest, error) {
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ItemRequest
	for rows.Next() {
		var rq model.ItemRequest
		if err := rows.Scan(&rq.ID, &rq.Description, &rq.RequestorID, &rq.Created); err != nil {
			return nil, err
		}
		out = append(out, rq)
	}
	return out, rows.Err()
}

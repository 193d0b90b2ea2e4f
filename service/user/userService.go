package usersvc

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"shareit/model"
	"shareit/util/errs"
)

type Repo interface {
	Create(ctx context.Context, u *model.User) error
	Update(ctx context.Context, u *model.User) error
	ByID(ctx context.Context, id int64) (*model.User, error)
	Delete(ctx context.Context, id int64) error
	All(ctx context.Context) ([]model.User, error)
}

type Service interface {
	Add(ctx context.Context, name, email string) (*model.User, error)
	Update(ctx context.Context, userID int64, name, email *string) (*model.User, error)
	ByID(ctx context.Context, userID int64) (*model.User, error)
	Delete(ctx context.Context, userID int64) (*model.User, error)
	All(ctx context.Context) ([]model.User, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r} }

func (s *service) Add(ctx context.Context, name, email string) (*model.User, error) {
	u := &model.User{Name: name, Email: email}
	if err := s.r.Create(ctx, u); err != nil {
		if derr := mapDuplicateEmail(err, email); derr != nil {
			return nil, derr
		}
		return nil, err
	}
	return u, nil
}

// Update applies a partial update: name and email are each skipped when
// nil or empty. Re-submitting the user's current email is not a
// duplicate; the unique constraint only fires on other rows.
func (s *service) Update(ctx context.Context, userID int64, name, email *string) (*model.User, error) {
	u, err := s.resolve(ctx, userID)
	if err != nil {
		return nil, err
	}
	if email != nil && *email != "" {
		u.Email = *email
	}
	if name != nil && *name != "" {
		u.Name = *name
	}
	if err := s.r.Update(ctx, u); err != nil {
		if derr := mapDuplicateEmail(err, u.Email); derr != nil {
			return nil, derr
		}
		return nil, err
	}
	return u, nil
}

func (s *service) ByID(ctx context.Context, userID int64) (*model.User, error) {
	return s.resolve(ctx, userID)
}

func (s *service) Delete(ctx context.Context, userID int64) (*model.User, error) {
	u, err := s.resolve(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.r.Delete(ctx, userID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) All(ctx context.Context) ([]model.User, error) {
	return s.r.All(ctx)
}

func (s *service) resolve(ctx context.Context, userID int64) (*model.User, error) {
	u, err := s.r.ByID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.Newf(errs.NotFound, "user %d not found", userID)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// mapDuplicateEmail translates a users.email unique violation into
// AlreadyExists; anything else yields nil so the caller passes the
// original error through.
func mapDuplicateEmail(err error, email string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		cn := strings.ToLower(pgErr.ConstraintName)
		msg := strings.ToLower(pgErr.Message)
		if strings.Contains(cn, "email") || strings.Contains(msg, "email") {
			return errs.Newf(errs.AlreadyExists, "email %s already exist", email)
		}
	}
	return nil
}

package requestsvc

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"shareit/model"
	"shareit/util/errs"
	"shareit/util/pages"
)

type Repo interface {
	Create(ctx context.Context, rq *model.ItemRequest) error
	ByID(ctx context.Context, id int64) (*model.ItemRequest, error)
	ByRequestor(ctx context.Context, userID int64) ([]model.ItemRequest, error)
	AllOthers(ctx context.Context, userID int64, limit, offset int) ([]model.ItemRequest, error)
}

type UserRepo interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
}

// ItemLister resolves the items created against a request; backed by the
// item service.
type ItemLister interface {
	ByRequest(ctx context.Context, requestID int64) ([]model.ItemView, error)
}

type Service interface {
	Create(ctx context.Context, userID int64, description string) (*model.ItemRequestView, error)
	ByID(ctx context.Context, requestID, userID int64) (*model.ItemRequestView, error)
	AllByUser(ctx context.Context, userID int64) ([]model.ItemRequestView, error)
	All(ctx context.Context, userID int64, from, size int) ([]model.ItemRequestView, error)
}

type service struct {
	r     Repo
	ur    UserRepo
	items ItemLister
}

func New(r Repo, ur UserRepo, items ItemLister) Service {
	return &service{r: r, ur: ur, items: items}
}

func (s *service) Create(ctx context.Context, userID int64, description string) (*model.ItemRequestView, error) {
	if description == "" {
		return nil, errs.New(errs.Validation, "description is empty")
	}
	if _, err := s.resolveUser(ctx, userID); err != nil {
		return nil, err
	}
	rq := &model.ItemRequest{
		Description: description,
		RequestorID: userID,
		Created:     time.Now(),
	}
	if err := s.r.Create(ctx, rq); err != nil {
		return nil, err
	}
	return &model.ItemRequestView{
		ID:          rq.ID,
		Description: rq.Description,
		Created:     model.NewDateTime(rq.Created),
		Items:       []model.ItemView{},
	}, nil
}

func (s *service) ByID(ctx context.Context, requestID, userID int64) (*model.ItemRequestView, error) {
	if _, err := s.resolveUser(ctx, userID); err != nil {
		return nil, err
	}
	rq, err := s.r.ByID(ctx, requestID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.Newf(errs.NotFound, "itemRequest %d not found", requestID)
	}
	if err != nil {
		return nil, err
	}
	return s.view(ctx, rq)
}

func (s *service) AllByUser(ctx context.Context, userID int64) ([]model.ItemRequestView, error) {
	if _, err := s.resolveUser(ctx, userID); err != nil {
		return nil, err
	}
	list, err := s.r.ByRequestor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, list)
}

// All lists other users' requests, newest first. The caller's own
// requests are excluded; those live under AllByUser.
func (s *service) All(ctx context.Context, userID int64, from, size int) ([]model.ItemRequestView, error) {
	limit, offset := pages.Page(from, size)
	list, err := s.r.AllOthers(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, list)
}

func (s *service) view(ctx context.Context, rq *model.ItemRequest) (*model.ItemRequestView, error) {
	items, err := s.items.ByRequest(ctx, rq.ID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.ItemView{}
	}
	return &model.ItemRequestView{
		ID:          rq.ID,
		Description: rq.Description,
		Created:     model.NewDateTime(rq.Created),
		Items:       items,
	}, nil
}

func (s *service) views(ctx context.Context, list []model.ItemRequest) ([]model.ItemRequestView, error) {
	out := make([]model.ItemRequestView, 0, len(list))
	for i := range list {
		v, err := s.view(ctx, &list[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}

func (s *service) resolveUser(ctx context.Context, userID int64) (*model.User, error) {
	u, err := s.ur.ByID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.Newf(errs.NotFound, "user %d not found", userID)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

package itemsvc

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"shareit/model"
	bookingrepo "shareit/repository/booking"
	commentrepo "shareit/repository/comment"
	"shareit/util/errs"
	"shareit/util/pages"
)

type ItemRepo interface {
	Create(ctx context.Context, it *model.Item) error
	Update(ctx context.Context, it *model.Item) error
	ByID(ctx context.Context, id int64) (*model.Item, error)
	ByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]model.Item, error)
	SearchAvailable(ctx context.Context, text string, limit, offset int) ([]model.Item, error)
	ByRequest(ctx context.Context, requestID int64) ([]model.Item, error)
}

type UserRepo interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
}

type RequestRepo interface {
	ByID(ctx context.Context, id int64) (*model.ItemRequest, error)
}

type BookingRepo interface {
	LastForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error)
	NextForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error)
	PastByBooker(ctx context.Context, bookerID int64, now time.Time) ([]bookingrepo.Row, error)
}

type CommentRepo interface {
	Create(ctx context.Context, cm *model.Comment) error
	ByItem(ctx context.Context, itemID int64) ([]commentrepo.Row, error)
}

type CreateInput struct {
	Name        string
	Description string
	Available   bool
	RequestID   *int64
}

// UpdateInput carries the partial-update fields; nil means leave as is.
type UpdateInput struct {
	Name        *string
	Description *string
	Available   *bool
}

type Service interface {
	Add(ctx context.Context, ownerID int64, in CreateInput) (*model.ItemView, error)
	Update(ctx context.Context, itemID, ownerID int64, in UpdateInput) (*model.ItemView, error)
	ByID(ctx context.Context, itemID, callerID int64) (*model.ItemView, error)
	AllByOwner(ctx context.Context, ownerID int64, from, size int) ([]model.ItemView, error)
	Search(ctx context.Context, text string, from, size int) ([]model.ItemView, error)
	ByRequest(ctx context.Context, requestID int64) ([]model.ItemView, error)
	AddComment(ctx context.Context, itemID, authorID int64, text string) (*model.CommentView, error)
}

type service struct {
	r  ItemRepo
	ur UserRepo
	rr RequestRepo
	br BookingRepo
	cr CommentRepo
}

func New(r ItemRepo, ur UserRepo, rr RequestRepo, br BookingRepo, cr CommentRepo) Service {
	return &service{r: r, ur: ur, rr: rr, br: br, cr: cr}
}

func (s *service) Add(ctx context.Context, ownerID int64, in CreateInput) (*model.ItemView, error) {
	owner, err := s.resolveUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if in.RequestID != nil {
		if _, err := s.rr.ByID(ctx, *in.RequestID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, errs.Newf(errs.NotFound, "itemRequest %d not found", *in.RequestID)
			}
			return nil, err
		}
	}
	it := &model.Item{
		Name:        in.Name,
		Description: in.Description,
		Available:   in.Available,
		OwnerID:     owner.ID,
		RequestID:   in.RequestID,
	}
	if err := s.r.Create(ctx, it); err != nil {
		return nil, err
	}
	return baseView(it, owner), nil
}

func (s *service) Update(ctx context.Context, itemID, ownerID int64, in UpdateInput) (*model.ItemView, error) {
	it, err := s.resolveItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it.OwnerID != ownerID {
		return nil, errs.New(errs.Authorization, "user is not the owner of the item")
	}
	if in.Name != nil {
		it.Name = *in.Name
	}
	if in.Description != nil {
		it.Description = *in.Description
	}
	if in.Available != nil {
		it.Available = *in.Available
	}
	if err := s.r.Update(ctx, it); err != nil {
		return nil, err
	}
	owner, err := s.resolveUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	v := baseView(it, owner)
	if err := s.attachProjection(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// ByID returns the item with its comments; the last/next booking
// projection is attached only for the item's owner.
func (s *service) ByID(ctx context.Context, itemID, callerID int64) (*model.ItemView, error) {
	it, err := s.resolveItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	owner, err := s.resolveUser(ctx, it.OwnerID)
	if err != nil {
		return nil, err
	}
	v := baseView(it, owner)
	if err := s.attachComments(ctx, v); err != nil {
		return nil, err
	}
	if callerID == it.OwnerID {
		if err := s.attachProjection(ctx, v); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func (s *service) AllByOwner(ctx context.Context, ownerID int64, from, size int) ([]model.ItemView, error) {
	owner, err := s.resolveUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	limit, offset := pages.Page(from, size)
	items, err := s.r.ByOwner(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]model.ItemView, 0, len(items))
	for i := range items {
		v := baseView(&items[i], owner)
		if err := s.attachProjection(ctx, v); err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}

// Search returns available items whose name or description contains the
// text. Empty text short-circuits to an empty result without a query.
func (s *service) Search(ctx context.Context, text string, from, size int) ([]model.ItemView, error) {
	out := []model.ItemView{}
	if text == "" {
		return out, nil
	}
	limit, offset := pages.Page(from, size)
	items, err := s.r.SearchAvailable(ctx, text, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.viewsWithProjection(ctx, items)
}

func (s *service) ByRequest(ctx context.Context, requestID int64) ([]model.ItemView, error) {
	items, err := s.r.ByRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return s.viewsWithProjection(ctx, items)
}

// AddComment records post-rental feedback. The author must have a
// booking on the item that has already ended; any status counts.
func (s *service) AddComment(ctx context.Context, itemID, authorID int64, text string) (*model.CommentView, error) {
	author, err := s.resolveUser(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.resolveItem(ctx, itemID); err != nil {
		return nil, err
	}
	now := time.Now()
	past, err := s.br.PastByBooker(ctx, authorID, now)
	if err != nil {
		return nil, err
	}
	rented := false
	for i := range past {
		if past[i].ItemID == itemID {
			rented = true
			break
		}
	}
	if !rented {
		return nil, errs.New(errs.InvalidRequest, "item not found")
	}
	if text == "" {
		return nil, errs.New(errs.InvalidRequest, "comment is empty")
	}
	cm := &model.Comment{
		Text:     text,
		ItemID:   itemID,
		AuthorID: authorID,
		Created:  now,
	}
	if err := s.cr.Create(ctx, cm); err != nil {
		return nil, err
	}
	return &model.CommentView{
		ID:         cm.ID,
		Text:       cm.Text,
		AuthorName: author.Name,
		Created:    model.NewDateTime(cm.Created),
	}, nil
}

func (s *service) viewsWithProjection(ctx context.Context, items []model.Item) ([]model.ItemView, error) {
	owners := map[int64]*model.User{}
	out := make([]model.ItemView, 0, len(items))
	for i := range items {
		owner, ok := owners[items[i].OwnerID]
		if !ok {
			var err error
			owner, err = s.resolveUser(ctx, items[i].OwnerID)
			if err != nil {
				return nil, err
			}
			owners[items[i].OwnerID] = owner
		}
		v := baseView(&items[i], owner)
		if err := s.attachProjection(ctx, v); err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}

// attachProjection fills lastBooking and nextBooking relative to now:
// the latest-starting approved booking that has already started, and
// the soonest approved booking yet to start.
func (s *service) attachProjection(ctx context.Context, v *model.ItemView) error {
	now := time.Now()
	last, err := s.br.LastForItem(ctx, v.ID, now)
	if err != nil {
		return err
	}
	if last != nil {
		v.LastBooking = shortView(last)
	}
	next, err := s.br.NextForItem(ctx, v.ID, now)
	if err != nil {
		return err
	}
	if next != nil {
		v.NextBooking = shortView(next)
	}
	return nil
}

func (s *service) attachComments(ctx context.Context, v *model.ItemView) error {
	rows, err := s.cr.ByItem(ctx, v.ID)
	if err != nil {
		return err
	}
	for _, row := range rows {
		v.Comments = append(v.Comments, model.CommentView{
			ID:         row.ID,
			Text:       row.Text,
			AuthorName: row.AuthorName,
			Created:    model.NewDateTime(row.Created),
		})
	}
	return nil
}

func baseView(it *model.Item, owner *model.User) *model.ItemView {
	return &model.ItemView{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		Owner:       *owner,
		RequestID:   it.RequestID,
		Comments:    []model.CommentView{},
	}
}

func shortView(b *model.Booking) *model.BookingShort {
	return &model.BookingShort{
		ID:       b.ID,
		Start:    model.NewDateTime(b.Start),
		End:      model.NewDateTime(b.End),
		BookerID: b.BookerID,
		Status:   b.Status,
	}
}

func (s *service) resolveItem(ctx context.Context, itemID int64) (*model.Item, error) {
	it, err := s.r.ByID(ctx, itemID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.Newf(errs.NotFound, "item %d not found", itemID)
	}
	if err != nil {
		return nil, err
	}
	return it, nil
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

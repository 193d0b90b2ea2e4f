package bookingsvc

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"shareit/model"
	bookingrepo "shareit/repository/booking"
	"shareit/util/errs"
	"shareit/util/pages"
)

type Row = bookingrepo.Row

type Repo interface {
	Create(ctx context.Context, b *model.Booking) error
	ByID(ctx context.Context, id int64) (*Row, error)
	SetStatus(ctx context.Context, id int64, expected, next model.BookingStatus) (bool, error)
	ByBooker(ctx context.Context, bookerID int64, state model.BookingState, now time.Time, limit, offset int) ([]Row, error)
	ByOwner(ctx context.Context, ownerID int64, state model.BookingState, now time.Time, limit, offset int) ([]Row, error)
}

type ItemRepo interface {
	ByID(ctx context.Context, id int64) (*model.Item, error)
}

type UserRepo interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
}

type Service interface {
	Create(ctx context.Context, bookerID, itemID int64, start, end time.Time) (*model.BookingView, error)
	UpdateStatus(ctx context.Context, bookingID, callerID int64, approved bool) (*model.BookingView, error)
	ByID(ctx context.Context, bookingID, callerID int64) (*model.BookingView, error)
	AllByBooker(ctx context.Context, bookerID int64, state string, from, size int) ([]model.BookingView, error)
	AllByOwner(ctx context.Context, ownerID int64, state string, from, size int) ([]model.BookingView, error)
}

type service struct {
	r  Repo
	ir ItemRepo
	ur UserRepo
}

func New(r Repo, ir ItemRepo, ur UserRepo) Service { return &service{r: r, ir: ir, ur: ur} }

// Create validates and persists a new booking in WAITING status. The
// checks run in a fixed order, each with its own failure: unresolvable
// item, bad date range, booker owns the item (reported as not-found so
// existence does not leak), item unavailable.
func (s *service) Create(ctx context.Context, bookerID, itemID int64, start, end time.Time) (*model.BookingView, error) {
	item, err := s.resolveItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if start.IsZero() || end.IsZero() || !start.After(now) || !end.After(now) || !end.After(start) {
		return nil, errs.New(errs.Validation, "booking date error")
	}
	if item.OwnerID == bookerID {
		return nil, errs.Newf(errs.Authorization, "create from owner to item %d", itemID)
	}
	if !item.Available {
		return nil, errs.Newf(errs.Validation, "item %d is not available", itemID)
	}
	booker, err := s.resolveUser(ctx, bookerID)
	if err != nil {
		return nil, err
	}

	b := &model.Booking{
		Start:    start,
		End:      end,
		ItemID:   item.ID,
		BookerID: booker.ID,
		Status:   model.BookingWaiting,
	}
	if err := s.r.Create(ctx, b); err != nil {
		return nil, err
	}
	return &model.BookingView{
		ID:     b.ID,
		Start:  model.NewDateTime(b.Start),
		End:    model.NewDateTime(b.End),
		Status: b.Status,
		Booker: *booker,
		Item:   model.ItemRef{ID: item.ID, Name: item.Name},
	}, nil
}

// UpdateStatus moves a WAITING or REJECTED booking to APPROVED or
// REJECTED. Once APPROVED the status is frozen; a REJECTED booking can
// still be approved afterwards. Only the item's owner may call this.
// The write is a compare-and-set against the status observed here, so
// two concurrent approvals cannot both win.
func (s *service) UpdateStatus(ctx context.Context, bookingID, callerID int64, approved bool) (*model.BookingView, error) {
	row, err := s.resolveBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if row.ItemOwnerID != callerID {
		return nil, errs.Newf(errs.Authorization, "no bookings found for the user %d", callerID)
	}
	if row.Status == model.BookingApproved {
		return nil, errs.Newf(errs.StatusConflict, "change status of booking %d after approve", bookingID)
	}
	next := model.BookingRejected
	if approved {
		next = model.BookingApproved
	}
	ok, err := s.r.SetStatus(ctx, bookingID, row.Status, next)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.Newf(errs.StatusConflict, "booking %d status changed concurrently", bookingID)
	}
	row.Status = next
	return viewFromRow(row), nil
}

// ByID is visible to the booking's booker and the item's owner only;
// anyone else gets not-found.
func (s *service) ByID(ctx context.Context, bookingID, callerID int64) (*model.BookingView, error) {
	row, err := s.resolveBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if row.BookerID != callerID && row.ItemOwnerID != callerID {
		return nil, errs.Newf(errs.Authorization, "no bookings found for the user %d", callerID)
	}
	return viewFromRow(row), nil
}

func (s *service) AllByBooker(ctx context.Context, bookerID int64, state string, from, size int) ([]model.BookingView, error) {
	if _, err := s.resolveUser(ctx, bookerID); err != nil {
		return nil, err
	}
	f, err := parseState(state)
	if err != nil {
		return nil, err
	}
	limit, offset := pages.Page(from, size)
	rows, err := s.r.ByBooker(ctx, bookerID, f, time.Now(), limit, offset)
	if err != nil {
		return nil, err
	}
	return viewsFromRows(rows), nil
}

func (s *service) AllByOwner(ctx context.Context, ownerID int64, state string, from, size int) ([]model.BookingView, error) {
	if _, err := s.resolveUser(ctx, ownerID); err != nil {
		return nil, err
	}
	f, err := parseState(state)
	if err != nil {
		return nil, err
	}
	limit, offset := pages.Page(from, size)
	rows, err := s.r.ByOwner(ctx, ownerID, f, time.Now(), limit, offset)
	if err != nil {
		return nil, err
	}
	return viewsFromRows(rows), nil
}

func parseState(s string) (model.BookingState, error) {
	switch f := model.BookingState(s); f {
	case model.StateAll, model.StateCurrent, model.StatePast,
		model.StateFuture, model.StateWaiting, model.StateRejected:
		return f, nil
	}
	return "", errs.Newf(errs.StatusConflict, "Unknown state: %s", s)
}

func (s *service) resolveBooking(ctx context.Context, bookingID int64) (*Row, error) {
	row, err := s.r.ByID(ctx, bookingID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.Newf(errs.NotFound, "booking %d not found", bookingID)
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (s *service) resolveItem(ctx context.Context, itemID int64) (*model.Item, error) {
	item, err := s.ir.ByID(ctx, itemID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.Newf(errs.NotFound, "item %d not found", itemID)
	}
	if err != nil {
		return nil, err
	}
	return item, nil
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

func viewFromRow(row *Row) *model.BookingView {
	return &model.BookingView{
		ID:     row.Booking.ID,
		Start:  model.NewDateTime(row.Start),
		End:    model.NewDateTime(row.End),
		Status: row.Status,
		Booker: model.User{ID: row.BookerID, Name: row.BookerName, Email: row.BookerEmail},
		Item:   model.ItemRef{ID: row.ItemID, Name: row.ItemName},
	}
}

func viewsFromRows(rows []Row) []model.BookingView {
	out := make([]model.BookingView, 0, len(rows))
	for i := range rows {
		out = append(out, *viewFromRow(&rows[i]))
	}
	return out
}

package bookingrepo

import (
	"context"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/jackc/pgx/v5"

	"shareit/model"
	"shareit/util/database"
)

// Row is a booking with the fields of its item and booker joined in,
// enough to build any booking view without follow-up lookups.
type Row struct {
	model.Booking
	ItemName    string
	ItemOwnerID int64
	BookerName  string
	BookerEmail string
}

type Repo interface {
	Create(ctx context.Context, b *model.Booking) error
	ByID(ctx context.Context, id int64) (*Row, error)

	// SetStatus is a compare-and-set on the status column; it reports
	// whether the row still carried the expected status when written.
	SetStatus(ctx context.Context, id int64, expected, next model.BookingStatus) (bool, error)

	ByBooker(ctx context.Context, bookerID int64, state model.BookingState, now time.Time, limit, offset int) ([]Row, error)
	ByOwner(ctx context.Context, ownerID int64, state model.BookingState, now time.Time, limit, offset int) ([]Row, error)

	// PastByBooker lists the booker's bookings with end < now, any status.
	PastByBooker(ctx context.Context, bookerID int64, now time.Time) ([]Row, error)

	// LastForItem and NextForItem back the last/next booking projection;
	// both return nil without error when no qualifying booking exists.
	LastForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error)
	NextForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

var dialect = goqu.Dialect("postgres")

func (r *repo) Create(ctx context.Context, b *model.Booking) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO bookings (start_date, end_date, item_id, booker_id, status)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id`,
		b.Start, b.End, b.ItemID, b.BookerID, string(b.Status),
	).Scan(&b.ID)
}

const rowCols = `
		b.id, b.start_date, b.end_date, b.item_id, b.booker_id, b.status,
		i.name, i.owner_id, u.name, u.email`

func (r *repo) ByID(ctx context.Context, id int64) (*Row, error) {
	row := &Row{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT`+rowCols+`
		FROM bookings b
		JOIN items i ON i.id = b.item_id
		JOIN users u ON u.id = b.booker_id
		WHERE b.id = $1`,
		id,
	).Scan(
		&row.Booking.ID, &row.Start, &row.End, &row.ItemID, &row.BookerID, &row.Status,
		&row.ItemName, &row.ItemOwnerID, &row.BookerName, &row.BookerEmail,
	)
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (r *repo) SetStatus(ctx context.Context, id int64, expected, next model.BookingStatus) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE bookings
		SET status = $3
		WHERE id = $1
		  AND status = $2`,
		id, string(expected), string(next),
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func baseSelect() *goqu.SelectDataset {
	return dialect.
		From(goqu.T("bookings").As("b")).
		Join(goqu.T("items").As("i"), goqu.On(goqu.I("b.item_id").Eq(goqu.I("i.id")))).
		Join(goqu.T("users").As("u"), goqu.On(goqu.I("b.booker_id").Eq(goqu.I("u.id")))).
		Select(
			goqu.I("b.id"), goqu.I("b.start_date"), goqu.I("b.end_date"),
			goqu.I("b.item_id"), goqu.I("b.booker_id"), goqu.I("b.status"),
			goqu.I("i.name"), goqu.I("i.owner_id"), goqu.I("u.name"), goqu.I("u.email"),
		)
}

// stateWhere narrows the listing to the requested temporal or status
// slice. CURRENT/PAST/FUTURE compare strictly against now, matching the
// booking date rules.
func stateWhere(ds *goqu.SelectDataset, state model.BookingState, now time.Time) *goqu.SelectDataset {
	switch state {
	case model.StateCurrent:
		return ds.Where(goqu.I("b.start_date").Lt(now), goqu.I("b.end_date").Gt(now))
	case model.StatePast:
		return ds.Where(goqu.I("b.end_date").Lt(now))
	case model.StateFuture:
		return ds.Where(goqu.I("b.start_date").Gt(now))
	case model.StateWaiting:
		return ds.Where(goqu.I("b.status").Eq(string(model.BookingWaiting)))
	case model.StateRejected:
		return ds.Where(goqu.I("b.status").Eq(string(model.BookingRejected)))
	default:
		return ds
	}
}

func (r *repo) ByBooker(ctx context.Context, bookerID int64, state model.BookingState, now time.Time, limit, offset int) ([]Row, error) {
	ds := baseSelect().Where(goqu.I("b.booker_id").Eq(bookerID))
	ds = stateWhere(ds, state, now)
	return r.listRows(ctx, ds, limit, offset)
}

func (r *repo) ByOwner(ctx context.Context, ownerID int64, state model.BookingState, now time.Time, limit, offset int) ([]Row, error) {
	ds := baseSelect().Where(goqu.I("i.owner_id").Eq(ownerID))
	ds = stateWhere(ds, state, now)
	return r.listRows(ctx, ds, limit, offset)
}

func (r *repo) PastByBooker(ctx context.Context, bookerID int64, now time.Time) ([]Row, error) {
	ds := baseSelect().Where(
		goqu.I("b.booker_id").Eq(bookerID),
		goqu.I("b.end_date").Lt(now),
	)
	sqlStr, args, err := ds.Order(goqu.I("b.start_date").Desc()).Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}
	return r.queryRows(ctx, sqlStr, args)
}

func listSQL(ds *goqu.SelectDataset, limit, offset int) (string, []interface{}, error) {
	return ds.
		Order(goqu.I("b.start_date").Desc()).
		Limit(uint(limit)).
		Offset(uint(offset)).
		Prepared(true).
		ToSQL()
}

func (r *repo) listRows(ctx context.Context, ds *goqu.SelectDataset, limit, offset int) ([]Row, error) {
	sqlStr, args, err := listSQL(ds, limit, offset)
	if err != nil {
		return nil, err
	}
	return r.queryRows(ctx, sqlStr, args)
}

func (r *repo) queryRows(ctx context.Context, sqlStr string, args []interface{}) ([]Row, error) {
	rows, err := r.db.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(
			&row.Booking.ID, &row.Start, &row.End, &row.ItemID, &row.BookerID, &row.Status,
			&row.ItemName, &row.ItemOwnerID, &row.BookerName, &row.BookerEmail,
		); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// projectionSelect picks one approved booking for the item: the
// latest-starting one already begun (last) or the soonest one yet to
// begin (next). Both comparisons against now are strict.
func projectionSelect(itemID int64, now time.Time, next bool) *goqu.SelectDataset {
	ds := dialect.
		From("bookings").
		Select(
			goqu.C("id"), goqu.C("start_date"), goqu.C("end_date"),
			goqu.C("item_id"), goqu.C("booker_id"), goqu.C("status"),
		).
		Where(
			goqu.C("item_id").Eq(itemID),
			goqu.C("status").Eq(string(model.BookingApproved)),
		)
	if next {
		ds = ds.Where(goqu.C("start_date").Gt(now)).Order(goqu.C("start_date").Asc())
	} else {
		ds = ds.Where(goqu.C("start_date").Lt(now)).Order(goqu.C("start_date").Desc())
	}
	return ds.Limit(1)
}

func (r *repo) LastForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error) {
	return r.oneForItem(ctx, projectionSelect(itemID, now, false))
}

func (r *repo) NextForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error) {
	return r.oneForItem(ctx, projectionSelect(itemID, now, true))
}

func (r *repo) oneForItem(ctx context.Context, ds *goqu.SelectDataset) (*model.Booking, error) {
	sqlStr, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}
	b := &model.Booking{}
	err = r.db.Pool.QueryRow(ctx, sqlStr, args...).Scan(
		&b.ID, &b.Start, &b.End, &b.ItemID, &b.BookerID, &b.Status,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

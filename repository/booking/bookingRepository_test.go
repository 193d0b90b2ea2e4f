package bookingrepo

import (
	"testing"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/stretchr/testify/require"

	"shareit/model"
)

func bookerSelect(state model.BookingState, now time.Time) (string, []interface{}) {
	ds := baseSelect().Where(goqu.I("b.booker_id").Eq(int64(2)))
	ds = stateWhere(ds, state, now)
	sqlStr, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		panic(err)
	}
	return sqlStr, args
}

func TestStateWhere_All(t *testing.T) {
	sqlStr, args := bookerSelect(model.StateAll, time.Now())
	require.Contains(t, sqlStr, `"b"."booker_id"`)
	require.NotContains(t, sqlStr, `"b"."start_date" <`)
	require.NotContains(t, sqlStr, `"b"."start_date" >`)
	require.NotContains(t, sqlStr, `"b"."end_date"`)
	require.NotContains(t, args, string(model.BookingWaiting))
	require.NotContains(t, args, string(model.BookingRejected))
}

func TestStateWhere_Temporal(t *testing.T) {
	now := time.Now()

	sqlStr, args := bookerSelect(model.StateCurrent, now)
	require.Contains(t, sqlStr, `"b"."start_date" <`)
	require.Contains(t, sqlStr, `"b"."end_date" >`)
	require.Contains(t, args, now)

	sqlStr, _ = bookerSelect(model.StatePast, now)
	require.Contains(t, sqlStr, `"b"."end_date" <`)
	require.NotContains(t, sqlStr, `"b"."start_date" <`)

	sqlStr, _ = bookerSelect(model.StateFuture, now)
	require.Contains(t, sqlStr, `"b"."start_date" >`)
	require.NotContains(t, sqlStr, `"b"."end_date"`)
}

func TestStateWhere_Status(t *testing.T) {
	sqlStr, args := bookerSelect(model.StateWaiting, time.Now())
	require.Contains(t, sqlStr, `"b"."status"`)
	require.Contains(t, args, "WAITING")

	_, args = bookerSelect(model.StateRejected, time.Now())
	require.Contains(t, args, "REJECTED")
}

func TestBaseSelect_Joins(t *testing.T) {
	sqlStr, _, err := baseSelect().Prepared(true).ToSQL()
	require.NoError(t, err)
	require.Contains(t, sqlStr, `"bookings" AS "b"`)
	require.Contains(t, sqlStr, `"items" AS "i"`)
	require.Contains(t, sqlStr, `"users" AS "u"`)
	require.Contains(t, sqlStr, `"b"."item_id" = "i"."id"`)
	require.Contains(t, sqlStr, `"b"."booker_id" = "u"."id"`)
}

func TestListSQL_OrderAndPage(t *testing.T) {
	ds := baseSelect().Where(goqu.I("i.owner_id").Eq(int64(1)))
	sqlStr, args, err := listSQL(ds, 10, 20)
	require.NoError(t, err)
	require.Contains(t, sqlStr, `ORDER BY "b"."start_date" DESC`)
	require.Contains(t, sqlStr, "LIMIT")
	require.Contains(t, sqlStr, "OFFSET")
	// where args come first, then limit, then offset
	require.EqualValues(t, 10, args[len(args)-2])
	require.EqualValues(t, 20, args[len(args)-1])
}

// Three approved bookings with starts now-2d, now-1d and now+1d: the
// last-booking query must select the now-1d one (latest start before
// now) and the next-booking query the now+1d one (soonest start after
// now). The query encodes that as an approved-only filter, a strict
// start comparison, start-date ordering and a single-row limit.
func TestProjectionSelect_WindowChoice(t *testing.T) {
	now := time.Now()

	lastSQL, lastArgs, err := projectionSelect(7, now, false).Prepared(true).ToSQL()
	require.NoError(t, err)
	require.Contains(t, lastArgs, "APPROVED")
	require.Contains(t, lastArgs, int64(7))
	require.Contains(t, lastArgs, now)
	require.Contains(t, lastSQL, `"start_date" <`)
	require.Contains(t, lastSQL, `ORDER BY "start_date" DESC`)
	require.Contains(t, lastSQL, "LIMIT")

	nextSQL, nextArgs, err := projectionSelect(7, now, true).Prepared(true).ToSQL()
	require.NoError(t, err)
	require.Contains(t, nextArgs, "APPROVED")
	require.Contains(t, nextSQL, `"start_date" >`)
	require.Contains(t, nextSQL, `ORDER BY "start_date" ASC`)
	require.Contains(t, nextSQL, "LIMIT")
}

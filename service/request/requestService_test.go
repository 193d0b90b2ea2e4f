package requestsvc

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"shareit/model"
	"shareit/util/errs"
)

type repoMock struct {
	createFn      func(ctx context.Context, rq *model.ItemRequest) error
	byIDFn        func(ctx context.Context, id int64) (*model.ItemRequest, error)
	byRequestorFn func(ctx context.Context, userID int64) ([]model.ItemRequest, error)
	allOthersFn   func(ctx context.Context, userID int64, limit, offset int) ([]model.ItemRequest, error)
}

var _ Repo = (*repoMock)(nil)

func (m *repoMock) Create(ctx context.Context, rq *model.ItemRequest) error {
	if m.createFn == nil {
		rq.ID = 1
		return nil
	}
	return m.createFn(ctx, rq)
}

func (m *repoMock) ByID(ctx context.Context, id int64) (*model.ItemRequest, error) {
	if m.byIDFn == nil {
		return nil, pgx.ErrNoRows
	}
	return m.byIDFn(ctx, id)
}

func (m *repoMock) ByRequestor(ctx context.Context, userID int64) ([]model.ItemRequest, error) {
	return m.byRequestorFn(ctx, userID)
}

func (m *repoMock) AllOthers(ctx context.Context, userID int64, limit, offset int) ([]model.ItemRequest, error) {
	return m.allOthersFn(ctx, userID, limit, offset)
}

type userRepoMock struct {
	byIDFn func(ctx context.Context, id int64) (*model.User, error)
}

func (m *userRepoMock) ByID(ctx context.Context, id int64) (*model.User, error) {
	if m.byIDFn == nil {
		return &model.User{ID: id, Name: "user", Email: "user@example.com"}, nil
	}
	return m.byIDFn(ctx, id)
}

type itemListerMock struct {
	byRequestFn func(ctx context.Context, requestID int64) ([]model.ItemView, error)
}

func (m *itemListerMock) ByRequest(ctx context.Context, requestID int64) ([]model.ItemView, error) {
	if m.byRequestFn == nil {
		return nil, nil
	}
	return m.byRequestFn(ctx, requestID)
}

func TestCreate_EmptyDescription(t *testing.T) {
	s := New(&repoMock{}, &userRepoMock{}, &itemListerMock{})

	_, err := s.Create(context.Background(), 1, "")
	require.Error(t, err)
	require.Equal(t, errs.Validation, errs.KindOf(err))
}

func TestCreate_UserMustExist(t *testing.T) {
	ur := &userRepoMock{byIDFn: func(ctx context.Context, id int64) (*model.User, error) {
		return nil, pgx.ErrNoRows
	}}
	s := New(&repoMock{}, ur, &itemListerMock{})

	_, err := s.Create(context.Background(), 99, "need a drill")
	require.Error(t, err)
	require.Equal(t, errs.NotFound, errs.KindOf(err))
}

func TestCreate_Success(t *testing.T) {
	var saved *model.ItemRequest
	r := &repoMock{createFn: func(ctx context.Context, rq *model.ItemRequest) error {
		saved = rq
		rq.ID = 4
		return nil
	}}
	s := New(r, &userRepoMock{}, &itemListerMock{})

	out, err := s.Create(context.Background(), 1, "need a drill")
	require.NoError(t, err)
	require.Equal(t, int64(1), saved.RequestorID)
	require.False(t, saved.Created.IsZero())
	require.Equal(t, int64(4), out.ID)
	require.NotNil(t, out.Items)
	require.Empty(t, out.Items)
}

func TestByID_NotFound(t *testing.T) {
	s := New(&repoMock{}, &userRepoMock{}, &itemListerMock{})

	_, err := s.ByID(context.Background(), 42, 1)
	require.Error(t, err)
	require.Equal(t, errs.NotFound, errs.KindOf(err))
	require.Contains(t, err.Error(), "itemRequest 42")
}

func TestByID_AttachesItems(t *testing.T) {
	r := &repoMock{byIDFn: func(ctx context.Context, id int64) (*model.ItemRequest, error) {
		return &model.ItemRequest{ID: id, Description: "need a drill", RequestorID: 2, Created: time.Now()}, nil
	}}
	il := &itemListerMock{byRequestFn: func(ctx context.Context, requestID int64) ([]model.ItemView, error) {
		return []model.ItemView{{ID: 7, Name: "drill", Available: true}}, nil
	}}
	s := New(r, &userRepoMock{}, il)

	out, err := s.ByID(context.Background(), 42, 1)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	require.Equal(t, int64(7), out.Items[0].ID)
}

func TestAllByUser(t *testing.T) {
	r := &repoMock{byRequestorFn: func(ctx context.Context, userID int64) ([]model.ItemRequest, error) {
		require.Equal(t, int64(1), userID)
		return []model.ItemRequest{
			{ID: 2, Description: "need a saw", RequestorID: userID, Created: time.Now()},
			{ID: 1, Description: "need a drill", RequestorID: userID, Created: time.Now().Add(-time.Hour)},
		}, nil
	}}
	s := New(r, &userRepoMock{}, &itemListerMock{})

	out, err := s.AllByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.NotNil(t, out[0].Items)
}

func TestAll_ExcludesCaller(t *testing.T) {
	var gotUser int64
	var gotLimit, gotOffset int
	r := &repoMock{allOthersFn: func(ctx context.Context, userID int64, limit, offset int) ([]model.ItemRequest, error) {
		gotUser, gotLimit, gotOffset = userID, limit, offset
		return []model.ItemRequest{{ID: 9, Description: "need a drill", RequestorID: 2, Created: time.Now()}}, nil
	}}
	s := New(r, &userRepoMock{}, &itemListerMock{})

	out, err := s.All(context.Background(), 1, 20, 10)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, int64(1), gotUser)
	require.Equal(t, 10, gotLimit)
	require.Equal(t, 20, gotOffset)
}

package usersvc_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"shareit/model"
	usersvc "shareit/service/user"
	"shareit/util/apperr"
)

type repoMock struct {
	insertFn func(ctx context.Context, u *model.User) error
	updateFn func(ctx context.Context, u *model.User) error
	byIDFn   func(ctx context.Context, id int64) (*model.User, error)
	allFn    func(ctx context.Context) ([]model.User, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (m *repoMock) Insert(ctx context.Context, u *model.User) error { return m.insertFn(ctx, u) }
func (m *repoMock) Update(ctx context.Context, u *model.User) error { return m.updateFn(ctx, u) }
func (m *repoMock) ByID(ctx context.Context, id int64) (*model.User, error) {
	return m.byIDFn(ctx, id)
}
func (m *repoMock) All(ctx context.Context) ([]model.User, error) { return m.allFn(ctx) }
func (m *repoMock) Delete(ctx context.Context, id int64) error    { return m.deleteFn(ctx, id) }

func strptr(s string) *string { return &s }

func TestAdd_Success(t *testing.T) {
	m := &repoMock{insertFn: func(ctx context.Context, u *model.User) error {
		u.ID = 11
		return nil
	}}
	s := usersvc.New(m)

	u, err := s.Add(context.Background(), "Ann", "ann@example.com")
	require.NoError(t, err)
	require.Equal(t, int64(11), u.ID)
	require.Equal(t, "ann@example.com", u.Email)
}

func TestAdd_DuplicateEmail(t *testing.T) {
	m := &repoMock{insertFn: func(ctx context.Context, u *model.User) error {
		return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"}
	}}
	s := usersvc.New(m)

	_, err := s.Add(context.Background(), "Ann", "ann@example.com")
	require.Error(t, err)
	require.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestUpdate_Partial(t *testing.T) {
	var saved *model.User
	m := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, Name: "Ann", Email: "ann@example.com"}, nil
		},
		updateFn: func(ctx context.Context, u *model.User) error {
			saved = u
			return nil
		},
	}
	s := usersvc.New(m)

	u, err := s.Update(context.Background(), 11, usersvc.UpdateInput{Email: strptr("new@example.com")})
	require.NoError(t, err)
	require.Equal(t, "Ann", u.Name)
	require.Equal(t, "new@example.com", u.Email)
	require.Equal(t, saved, u)

	u, err = s.Update(context.Background(), 11, usersvc.UpdateInput{Name: strptr("Anna")})
	require.NoError(t, err)
	require.Equal(t, "Anna", u.Name)
	require.Equal(t, "ann@example.com", u.Email)
}

func TestUpdate_NotFound(t *testing.T) {
	m := &repoMock{byIDFn: func(ctx context.Context, id int64) (*model.User, error) {
		return nil, sql.ErrNoRows
	}}
	s := usersvc.New(m)

	_, err := s.Update(context.Background(), 404, usersvc.UpdateInput{Name: strptr("x")})
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestUpdate_DuplicateEmail(t *testing.T) {
	m := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, Name: "Ann", Email: "ann@example.com"}, nil
		},
		updateFn: func(ctx context.Context, u *model.User) error {
			return &pgconn.PgError{Code: pgerrcode.UniqueViolation}
		},
	}
	s := usersvc.New(m)

	_, err := s.Update(context.Background(), 11, usersvc.UpdateInput{Email: strptr("taken@example.com")})
	require.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestGet_NotFound(t *testing.T) {
	m := &repoMock{byIDFn: func(ctx context.Context, id int64) (*model.User, error) {
		return nil, sql.ErrNoRows
	}}
	s := usersvc.New(m)

	_, err := s.Get(context.Background(), 404)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

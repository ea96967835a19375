package usersvc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"shareit/model"
	"shareit/util/apperr"
)

type UpdateInput struct {
	Name  *string
	Email *string
}

type Repo interface {
	Insert(ctx context.Context, u *model.User) error
	Update(ctx context.Context, u *model.User) error
	ByID(ctx context.Context, id int64) (*model.User, error)
	All(ctx context.Context) ([]model.User, error)
	Delete(ctx context.Context, id int64) error
}

type Service interface {
	Add(ctx context.Context, name, email string) (*model.User, error)
	Update(ctx context.Context, id int64, in UpdateInput) (*model.User, error)
	Get(ctx context.Context, id int64) (*model.User, error)
	GetAll(ctx context.Context) ([]model.User, error)
	Delete(ctx context.Context, id int64) error
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r} }

func (s *service) Add(ctx context.Context, name, email string) (*model.User, error) {
	u := &model.User{Name: name, Email: email}
	if err := s.r.Insert(ctx, u); err != nil {
		return nil, mapDuplicate(err)
	}
	return u, nil
}

func (s *service) Update(ctx context.Context, id int64, in UpdateInput) (*model.User, error) {
	u, err := s.r.ByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("user %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if err := s.r.Update(ctx, u); err != nil {
		return nil, mapDuplicate(err)
	}
	return u, nil
}

func (s *service) Get(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.r.ByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("user %d not found", id)
	}
	return u, err
}

func (s *service) GetAll(ctx context.Context) ([]model.User, error) {
	return s.r.All(ctx)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.r.Delete(ctx, id)
}

// mapDuplicate turns the unique-violation on users.email into the Conflict
// kind; everything else passes through untouched.
func mapDuplicate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return apperr.Conflict("email already in use")
	}
	return err
}

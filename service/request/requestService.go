package requestsvc

import (
	"context"
	"database/sql"
	"errors"

	"shareit/model"
	"shareit/util/apperr"
)

// View is a request together with the items listed in answer to it.
type View struct {
	Request model.Request
	Items   []model.Item
}

type Repo interface {
	Insert(ctx context.Context, rq *model.Request) error
	ByID(ctx context.Context, id int64) (*model.Request, error)
	AllByRequestor(ctx context.Context, requestorID int64) ([]model.Request, error)
	AllOthers(ctx context.Context, requestorID int64, from, size int) ([]model.Request, error)
}

type Users interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type Items interface {
	AllByRequest(ctx context.Context, requestID int64) ([]model.Item, error)
}

type Service interface {
	Add(ctx context.Context, userID int64, description string) (*model.Request, error)
	Get(ctx context.Context, userID, requestID int64) (*View, error)
	GetForAuthor(ctx context.Context, userID int64) ([]View, error)
	GetAll(ctx context.Context, userID int64, from, size int) ([]View, error)
}

type service struct {
	r     Repo
	users Users
	items Items
}

func New(r Repo, users Users, items Items) Service {
	return &service{r: r, users: users, items: items}
}

func (s *service) Add(ctx context.Context, userID int64, description string) (*model.Request, error) {
	if err := s.userExists(ctx, userID); err != nil {
		return nil, err
	}
	rq := &model.Request{Description: description, RequestorID: userID}
	if err := s.r.Insert(ctx, rq); err != nil {
		return nil, err
	}
	return rq, nil
}

func (s *service) Get(ctx context.Context, userID, requestID int64) (*View, error) {
	if err := s.userExists(ctx, userID); err != nil {
		return nil, err
	}
	rq, err := s.r.ByID(ctx, requestID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("request %d not found", requestID)
	}
	if err != nil {
		return nil, err
	}
	return s.view(ctx, *rq)
}

func (s *service) GetForAuthor(ctx context.Context, userID int64) ([]View, error) {
	if err := s.userExists(ctx, userID); err != nil {
		return nil, err
	}
	requests, err := s.r.AllByRequestor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, requests)
}

func (s *service) GetAll(ctx context.Context, userID int64, from, size int) ([]View, error) {
	requests, err := s.r.AllOthers(ctx, userID, from, size)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, requests)
}

func (s *service) userExists(ctx context.Context, userID int64) error {
	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("user %d not found", userID)
	}
	return nil
}

func (s *service) view(ctx context.Context, rq model.Request) (*View, error) {
	items, err := s.items.AllByRequest(ctx, rq.ID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Item{}
	}
	return &View{Request: rq, Items: items}, nil
}

func (s *service) views(ctx context.Context, requests []model.Request) ([]View, error) {
	out := make([]View, 0, len(requests))
	for _, rq := range requests {
		v, err := s.view(ctx, rq)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}

// Package bookingsvc owns the booking lifecycle: creation, the single
// WAITING -> APPROVED/REJECTED transition, and the state-filtered listings
// for the renter and owner perspectives.
package bookingsvc

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"shareit/model"
	bookingrepo "shareit/repository/booking"
	"shareit/util/apperr"
)

type View = bookingrepo.View
type Short = bookingrepo.Short

type CreateInput struct {
	ItemID int64
	Start  time.Time
	End    time.Time
}

type Repo interface {
	Insert(ctx context.Context, b *model.Booking) error
	ByID(ctx context.Context, id int64) (*View, error)
	Decide(ctx context.Context, id int64, to model.Status) (bool, error)
	ForBooker(ctx context.Context, bookerID int64, f bookingrepo.Filter) ([]View, error)
	ForOwner(ctx context.Context, ownerID int64, f bookingrepo.Filter) ([]View, error)
	NextForItem(ctx context.Context, itemID int64, now time.Time) (*Short, error)
	LastForItem(ctx context.Context, itemID int64, now time.Time) (*Short, error)
	HasPastForItem(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
}

// Users and Items are the collaborator contracts this engine depends on.
type Users interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type Items interface {
	ByID(ctx context.Context, id int64) (*model.Item, error)
}

type Service interface {
	Create(ctx context.Context, bookerID int64, in CreateInput) (*View, error)
	Approve(ctx context.Context, userID, bookingID int64, approved bool) (*View, error)
	Get(ctx context.Context, userID, bookingID int64) (*View, error)
	GetForUser(ctx context.Context, userID int64, state string, from, size int) ([]View, error)
	GetForOwner(ctx context.Context, userID int64, state string, from, size int) ([]View, error)

	// Decoration and comment-authorization queries used by the item service.
	NextForItem(ctx context.Context, itemID int64) (*Short, error)
	LastForItem(ctx context.Context, itemID int64) (*Short, error)
	HasPastForItem(ctx context.Context, userID, itemID int64) (bool, error)
}

type service struct {
	r     Repo
	users Users
	items Items
	now   func() time.Time
}

func New(r Repo, users Users, items Items) Service {
	return &service{r: r, users: users, items: items, now: func() time.Time { return time.Now().UTC() }}
}

func (s *service) Create(ctx context.Context, bookerID int64, in CreateInput) (*View, error) {
	ok, err := s.users.Exists(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("user %d not found", bookerID)
	}

	item, err := s.items.ByID(ctx, in.ItemID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("item %d not found", in.ItemID)
	}
	if err != nil {
		return nil, err
	}
	if item.OwnerID == bookerID {
		return nil, apperr.NotFound("cannot book your own item")
	}
	if !item.Available {
		return nil, apperr.BadRequest("item %d is not available", in.ItemID)
	}
	// only end-before-start is rejected; a zero-length window is allowed
	if in.End.Before(in.Start) {
		return nil, apperr.BadRequest("booking cannot end before it starts")
	}

	b := &model.Booking{
		Start:    in.Start,
		End:      in.End,
		ItemID:   in.ItemID,
		BookerID: bookerID,
		Status:   model.StatusWaiting,
	}
	if err := s.r.Insert(ctx, b); err != nil {
		return nil, err
	}
	return s.r.ByID(ctx, b.ID)
}

func (s *service) Approve(ctx context.Context, userID, bookingID int64, approved bool) (*View, error) {
	v, err := s.byID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if v.ItemOwnerID != userID {
		return nil, apperr.NotFound("booking %d is not on one of your items", bookingID)
	}

	b := v.Booking
	if approved {
		err = b.Approve()
	} else {
		err = b.Reject()
	}
	if err != nil {
		return nil, err
	}

	// conditional update: a concurrent call that decided first wins
	decided, err := s.r.Decide(ctx, bookingID, b.Status)
	if err != nil {
		return nil, err
	}
	if !decided {
		return nil, apperr.BadRequest("booking %d status already decided", bookingID)
	}
	v.Status = b.Status
	return v, nil
}

func (s *service) Get(ctx context.Context, userID, bookingID int64) (*View, error) {
	v, err := s.byID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if userID != v.BookerID && userID != v.ItemOwnerID {
		return nil, apperr.NotFound("booking %d does not concern user %d", bookingID, userID)
	}
	return v, nil
}

func (s *service) GetForUser(ctx context.Context, userID int64, state string, from, size int) ([]View, error) {
	f, err := s.filter(ctx, userID, state, from, size)
	if err != nil {
		return nil, err
	}
	return s.r.ForBooker(ctx, userID, f)
}

func (s *service) GetForOwner(ctx context.Context, userID int64, state string, from, size int) ([]View, error) {
	f, err := s.filter(ctx, userID, state, from, size)
	if err != nil {
		return nil, err
	}
	return s.r.ForOwner(ctx, userID, f)
}

func (s *service) NextForItem(ctx context.Context, itemID int64) (*Short, error) {
	return s.r.NextForItem(ctx, itemID, s.now())
}

func (s *service) LastForItem(ctx context.Context, itemID int64) (*Short, error) {
	return s.r.LastForItem(ctx, itemID, s.now())
}

func (s *service) HasPastForItem(ctx context.Context, userID, itemID int64) (bool, error) {
	return s.r.HasPastForItem(ctx, userID, itemID, s.now())
}

func (s *service) byID(ctx context.Context, bookingID int64) (*View, error) {
	v, err := s.r.ByID(ctx, bookingID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("booking %d not found", bookingID)
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) filter(ctx context.Context, userID int64, state string, from, size int) (bookingrepo.Filter, error) {
	st, err := model.ParseState(state)
	if err != nil {
		return bookingrepo.Filter{}, err
	}
	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return bookingrepo.Filter{}, err
	}
	if !ok {
		return bookingrepo.Filter{}, apperr.NotFound("user %d not found", userID)
	}
	return bookingrepo.Filter{State: st, Now: s.now(), From: from, Size: size}, nil
}

package itemsvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"shareit/model"
	bookingrepo "shareit/repository/booking"
	commentrepo "shareit/repository/comment"
	"shareit/util/apperr"
)

type CommentView = commentrepo.View

// View is an item decorated with its comments and, for the owner, the
// last/next booking summaries.
type View struct {
	Item        model.Item
	LastBooking *bookingrepo.Short
	NextBooking *bookingrepo.Short
	Comments    []CommentView
}

type CreateInput struct {
	Name        string
	Description string
	Available   bool
	RequestID   *int64
}

type UpdateInput struct {
	Name        *string
	Description *string
	Available   *bool
}

type Repo interface {
	Insert(ctx context.Context, i *model.Item) error
	Update(ctx context.Context, i *model.Item) error
	ByID(ctx context.Context, id int64) (*model.Item, error)
	AllByOwner(ctx context.Context, ownerID int64, from, size int) ([]model.Item, error)
	Search(ctx context.Context, text string, from, size int) ([]model.Item, error)
	Delete(ctx context.Context, id int64) error
}

type Comments interface {
	Insert(ctx context.Context, c *model.Comment) error
	AllByItem(ctx context.Context, itemID int64) ([]CommentView, error)
}

type Users interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// Bookings is the slice of the booking engine the item views consume.
type Bookings interface {
	NextForItem(ctx context.Context, itemID int64) (*bookingrepo.Short, error)
	LastForItem(ctx context.Context, itemID int64) (*bookingrepo.Short, error)
	HasPastForItem(ctx context.Context, userID, itemID int64) (bool, error)
}

type Service interface {
	Add(ctx context.Context, ownerID int64, in CreateInput) (*model.Item, error)
	Update(ctx context.Context, ownerID, itemID int64, in UpdateInput) (*model.Item, error)
	Delete(ctx context.Context, ownerID, itemID int64) error
	Get(ctx context.Context, userID, itemID int64) (*View, error)
	GetAll(ctx context.Context, ownerID int64, from, size int) ([]View, error)
	Search(ctx context.Context, text string, from, size int) ([]model.Item, error)
	AddComment(ctx context.Context, authorID, itemID int64, text string) (*CommentView, error)
}

type service struct {
	r        Repo
	comments Comments
	users    Users
	bookings Bookings
}

func New(r Repo, comments Comments, users Users, bookings Bookings) Service {
	return &service{r: r, comments: comments, users: users, bookings: bookings}
}

func (s *service) Add(ctx context.Context, ownerID int64, in CreateInput) (*model.Item, error) {
	ok, err := s.users.Exists(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("user %d not found", ownerID)
	}

	i := &model.Item{
		Name:        in.Name,
		Description: in.Description,
		Available:   in.Available,
		OwnerID:     ownerID,
		RequestID:   in.RequestID,
	}
	if err := s.r.Insert(ctx, i); err != nil {
		return nil, err
	}
	return i, nil
}

func (s *service) Update(ctx context.Context, ownerID, itemID int64, in UpdateInput) (*model.Item, error) {
	ok, err := s.users.Exists(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("user %d not found", ownerID)
	}

	i, err := s.ownedBy(ctx, itemID, ownerID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		i.Name = *in.Name
	}
	if in.Description != nil {
		i.Description = *in.Description
	}
	if in.Available != nil {
		i.Available = *in.Available
	}
	if err := s.r.Update(ctx, i); err != nil {
		return nil, err
	}
	return i, nil
}

func (s *service) Delete(ctx context.Context, ownerID, itemID int64) error {
	// a delete attempt on an item you do not own is a conflict, not a 404
	if _, err := s.ownedBy(ctx, itemID, ownerID); err != nil {
		return apperr.Conflict("item %d is not yours to delete", itemID)
	}
	return s.r.Delete(ctx, itemID)
}

func (s *service) Get(ctx context.Context, userID, itemID int64) (*View, error) {
	i, err := s.byID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	v, err := s.decorate(ctx, *i)
	if err != nil {
		return nil, err
	}
	// non-owners never see the booking summaries
	if i.OwnerID != userID {
		v.LastBooking = nil
		v.NextBooking = nil
	}
	return v, nil
}

func (s *service) GetAll(ctx context.Context, ownerID int64, from, size int) ([]View, error) {
	items, err := s.r.AllByOwner(ctx, ownerID, from, size)
	if err != nil {
		return nil, err
	}
	out := make([]View, 0, len(items))
	for _, i := range items {
		v, err := s.decorate(ctx, i)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}

func (s *service) Search(ctx context.Context, text string, from, size int) ([]model.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []model.Item{}, nil
	}
	items, err := s.r.Search(ctx, strings.ToLower(text), from, size)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperr.NotFound("no items found for %q", text)
	}
	return items, nil
}

func (s *service) AddComment(ctx context.Context, authorID, itemID int64, text string) (*CommentView, error) {
	author, err := s.users.ByID(ctx, authorID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("user %d not found", authorID)
	}
	if err != nil {
		return nil, err
	}
	if _, err := s.byID(ctx, itemID); err != nil {
		return nil, err
	}

	rented, err := s.bookings.HasPastForItem(ctx, authorID, itemID)
	if err != nil {
		return nil, err
	}
	if !rented {
		return nil, apperr.BadRequest("user %d cannot comment on item %d", authorID, itemID)
	}

	c := &model.Comment{Text: text, ItemID: itemID, AuthorID: authorID}
	if err := s.comments.Insert(ctx, c); err != nil {
		return nil, err
	}
	return &CommentView{Comment: *c, AuthorName: author.Name}, nil
}

func (s *service) byID(ctx context.Context, itemID int64) (*model.Item, error) {
	i, err := s.r.ByID(ctx, itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("item %d not found", itemID)
	}
	if err != nil {
		return nil, err
	}
	return i, nil
}

// ownedBy is the single place item ownership is checked.
func (s *service) ownedBy(ctx context.Context, itemID, ownerID int64) (*model.Item, error) {
	i, err := s.byID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if i.OwnerID != ownerID {
		return nil, apperr.NotFound("item %d not found", itemID)
	}
	return i, nil
}

func (s *service) decorate(ctx context.Context, i model.Item) (*View, error) {
	last, err := s.bookings.LastForItem(ctx, i.ID)
	if err != nil {
		return nil, err
	}
	next, err := s.bookings.NextForItem(ctx, i.ID)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.AllByItem(ctx, i.ID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []CommentView{}
	}
	return &View{Item: i, LastBooking: last, NextBooking: next, Comments: comments}, nil
}

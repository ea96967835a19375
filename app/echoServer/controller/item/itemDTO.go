package item

import (
	"time"

	"shareit/model"
	bookingrepo "shareit/repository/booking"
	itemsvc "shareit/service/item"
)

type CreateItemReq struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Available   *bool  `json:"available" validate:"required"`
	RequestID   *int64 `json:"requestId"`
}

type UpdateItemReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type CreateCommentReq struct {
	Text string `json:"text" validate:"required"`
}

type CommentResp struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

// ItemDetailResp is the decorated item view: comments for everyone, booking
// summaries only when the service left them in place (owner requests).
type ItemDetailResp struct {
	model.Item
	LastBooking *bookingrepo.Short `json:"lastBooking"`
	NextBooking *bookingrepo.Short `json:"nextBooking"`
	Comments    []CommentResp      `json:"comments"`
}

func toCommentResp(v *itemsvc.CommentView) CommentResp {
	return CommentResp{ID: v.ID, Text: v.Text, AuthorName: v.AuthorName, Created: v.Created}
}

func toDetailResp(v *itemsvc.View) ItemDetailResp {
	comments := make([]CommentResp, 0, len(v.Comments))
	for i := range v.Comments {
		comments = append(comments, toCommentResp(&v.Comments[i]))
	}
	return ItemDetailResp{
		Item:        v.Item,
		LastBooking: v.LastBooking,
		NextBooking: v.NextBooking,
		Comments:    comments,
	}
}

func toDetailResps(vs []itemsvc.View) []ItemDetailResp {
	out := make([]ItemDetailResp, 0, len(vs))
	for i := range vs {
		out = append(out, toDetailResp(&vs[i]))
	}
	return out
}

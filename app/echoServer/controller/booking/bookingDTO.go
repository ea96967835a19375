package booking

import (
	"time"

	"shareit/model"
	bookingsvc "shareit/service/booking"
)

type CreateBookingReq struct {
	ItemID int64     `json:"itemId" validate:"required,gt=0"`
	Start  time.Time `json:"start" validate:"required"`
	End    time.Time `json:"end" validate:"required"`
}

type UserRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ItemRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BookingResp struct {
	ID     int64        `json:"id"`
	Start  time.Time    `json:"start"`
	End    time.Time    `json:"end"`
	Status model.Status `json:"status"`
	Item   ItemRef      `json:"item"`
	Booker UserRef      `json:"booker"`
}

func toResp(v *bookingsvc.View) BookingResp {
	return BookingResp{
		ID:     v.ID,
		Start:  v.Start,
		End:    v.End,
		Status: v.Status,
		Item:   ItemRef{ID: v.ItemID, Name: v.ItemName},
		Booker: UserRef{ID: v.BookerID, Name: v.BookerName},
	}
}

func toResps(vs []bookingsvc.View) []BookingResp {
	out := make([]BookingResp, 0, len(vs))
	for i := range vs {
		out = append(out, toResp(&vs[i]))
	}
	return out
}

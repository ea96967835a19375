package model

import "time"

// Comment is immutable once created; Created is assigned by the database.
type Comment struct {
	ID       int64     `json:"id"`
	Text     string    `json:"text"`
	ItemID   int64     `json:"-"`
	AuthorID int64     `json:"-"`
	Created  time.Time `json:"created"`
}

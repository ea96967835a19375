package model

import "time"

// Request is a user's broadcast "I need an item like X". Items answering it
// carry its id in their RequestID field.
type Request struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequestorID int64     `json:"requestorId"`
	Created     time.Time `json:"created"`
}

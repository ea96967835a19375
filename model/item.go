package model

type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"ownerId"`
	// RequestID links the item to the request it was listed in answer to.
	RequestID *int64 `json:"requestId,omitempty"`
}

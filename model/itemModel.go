package model

type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"owner_id"`
	RequestID   *int64 `json:"request_id,omitempty"`
}

// ItemRef is the slimmed-down item reference embedded in booking views.
type ItemRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ItemView is the item read model: owner resolved, comments attached,
// and the last/next approved bookings when the caller owns the item.
type ItemView struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Available   bool          `json:"available"`
	Owner       User          `json:"owner"`
	RequestID   *int64        `json:"requestId,omitempty"`
	LastBooking *BookingShort `json:"lastBooking,omitempty"`
	NextBooking *BookingShort `json:"nextBooking,omitempty"`
	Comments    []CommentView `json:"comments"`
}

package model

import "time"

type ItemRequest struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequestorID int64     `json:"requestor_id"`
	Created     time.Time `json:"created"`
}

type ItemRequestView struct {
	ID          int64      `json:"id"`
	Description string     `json:"description"`
	Created     DateTime   `json:"created"`
	Items       []ItemView `json:"items"`
}

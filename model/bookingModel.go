package model

import "time"

type BookingStatus string

const (
	BookingWaiting  BookingStatus = "WAITING"
	BookingApproved BookingStatus = "APPROVED"
	BookingRejected BookingStatus = "REJECTED"
)

// BookingState is the query filter vocabulary for booking listings. It
// shares two words with BookingStatus but plays a different role: a
// state filter selects rows, a status is stored on them.
type BookingState string

const (
	StateAll      BookingState = "ALL"
	StateCurrent  BookingState = "CURRENT"
	StatePast     BookingState = "PAST"
	StateFuture   BookingState = "FUTURE"
	StateWaiting  BookingState = "WAITING"
	StateRejected BookingState = "REJECTED"
)

type Booking struct {
	ID       int64         `json:"id"`
	Start    time.Time     `json:"start"`
	End      time.Time     `json:"end"`
	ItemID   int64         `json:"item_id"`
	BookerID int64         `json:"booker_id"`
	Status   BookingStatus `json:"status"`
}

type BookingView struct {
	ID     int64         `json:"id"`
	Start  DateTime      `json:"start"`
	End    DateTime      `json:"end"`
	Status BookingStatus `json:"status"`
	Booker User          `json:"booker"`
	Item   ItemRef       `json:"item"`
}

// BookingShort is the projection view attached to items (lastBooking /
// nextBooking).
type BookingShort struct {
	ID       int64         `json:"id"`
	Start    DateTime      `json:"start"`
	End      DateTime      `json:"end"`
	BookerID int64         `json:"bookerId"`
	Status   BookingStatus `json:"status"`
}

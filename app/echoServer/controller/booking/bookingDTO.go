package booking

import "shareit/model"

type CreateBookingReq struct {
	ItemID int64          `json:"itemId" validate:"required,gt=0"`
	Start  model.DateTime `json:"start"`
	End    model.DateTime `json:"end"`
}

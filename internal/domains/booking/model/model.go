package model

import (
	"time"

	"workforce/shared/constant"
	"workforce/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID           = "id"
	FieldUserID       = "user_id"
	FieldLodgingID    = "lodging_id"
	FieldCheckInDate  = "check_in_date"
	FieldCheckOutDate = "check_out_date"
	FieldTotalPrice   = "total_price"
	FieldStatus       = "status"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCanceled  = "canceled"
)

var SortableFields = []string{
	FieldCheckInDate,
	FieldCheckOutDate,
	FieldTotalPrice,
	FieldStatus,
	constant.FieldCreatedAt,
	constant.FieldUpdatedAt,
}

type Booking struct {
	ID           string    `db:"id"`
	UserID       string    `db:"user_id"`
	LodgingID    string    `db:"lodging_id"`
	CheckInDate  time.Time `db:"check_in_date"`
	CheckOutDate time.Time `db:"check_out_date"`
	TotalPrice   float64   `db:"total_price"`
	Status       string    `db:"status"`
	model.Metadata
}

// Nights is the number of nights between check-in and check-out.
func (b Booking) Nights() int {
	return int(b.CheckOutDate.Sub(b.CheckInDate).Hours()) / constant.HoursPerNight
}

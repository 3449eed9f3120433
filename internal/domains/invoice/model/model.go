package model

import (
	"workforce/shared/constant"
	"workforce/shared/model"
)

const (
	TableName  = "invoices"
	EntityName = "invoice"

	FieldID        = "id"
	FieldBookingID = "booking_id"
	FieldAmountDue = "amount_due"
	FieldStatus    = "status"

	StatusUnpaid = "unpaid"
)

var SortableFields = []string{FieldAmountDue, FieldStatus, constant.FieldCreatedAt, constant.FieldUpdatedAt}

type Invoice struct {
	ID        string  `db:"id"`
	BookingID string  `db:"booking_id"`
	AmountDue float64 `db:"amount_due"`
	Status    string  `db:"status"`
	model.Metadata
}

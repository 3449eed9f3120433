package model

import (
	"workforce/shared/constant"
	"workforce/shared/model"
)

const (
	TableName  = "lodgings"
	EntityName = "lodging"

	FieldID            = "id"
	FieldName          = "name"
	FieldLocation      = "location"
	FieldPricePerNight = "price_per_night"
	FieldAvailability  = "availability"
	FieldDescription   = "description"
	FieldImage         = "image"
)

var SortableFields = []string{
	FieldName,
	FieldLocation,
	FieldPricePerNight,
	constant.FieldCreatedAt,
	constant.FieldUpdatedAt,
}

type Lodging struct {
	ID            string  `db:"id"`
	Name          string  `db:"name"`
	Location      string  `db:"location"`
	PricePerNight float64 `db:"price_per_night"`
	Availability  bool    `db:"availability"`
	Description   *string `db:"description"`
	Image         *string `db:"image"`
	model.Metadata
}

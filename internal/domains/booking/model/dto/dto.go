package dto

import (
	"math"
	"time"

	"workforce/internal/domains/booking/model"
	"workforce/shared"
	"workforce/shared/constant"
	gDto "workforce/shared/dto"
	"workforce/shared/failure"
	gModel "workforce/shared/model"
	"workforce/shared/timezone"

	"github.com/google/uuid"
)

var errStayOrder = failure.BadRequestFromString("check_out_date must be after check_in_date")

// ParseDate reads a calendar date. Dates carry no zone and are kept at UTC midnight.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(constant.DateOnlyFormat, value)
	if err != nil {
		return t, failure.BadRequestFromString("dates must use the YYYY-MM-DD format")
	}

	return t, nil
}

// ValidateStay rejects a stay that does not end after it starts.
func ValidateStay(checkIn, checkOut time.Time) error {
	if !checkOut.After(checkIn) {
		return errStayOrder
	}

	return nil
}

// PriceFor returns nights × pricePerNight rounded to cents.
func PriceFor(booking model.Booking, pricePerNight float64) float64 {
	return math.Round(float64(booking.Nights())*pricePerNight*100) / 100
}

type CreateBookingRequest struct {
	UserID       string   `json:"user_id"        validate:"required,uuid"`
	LodgingID    string   `json:"lodging_id"     validate:"required,uuid"`
	CheckInDate  string   `json:"check_in_date"  validate:"required,datetime=2006-01-02"`
	CheckOutDate string   `json:"check_out_date" validate:"required,datetime=2006-01-02"`
	TotalPrice   *float64 `json:"total_price"    validate:"omitempty,gte=0"`
	Status       string   `json:"status"         validate:"omitempty,oneof=pending confirmed canceled"`
}

// ToModel builds the booking row. TotalPrice stays zero when the request omits it.
func (c *CreateBookingRequest) ToModel() (model.Booking, error) {
	checkIn, err := ParseDate(c.CheckInDate)
	if err != nil {
		return model.Booking{}, err
	}

	checkOut, err := ParseDate(c.CheckOutDate)
	if err != nil {
		return model.Booking{}, err
	}

	if err = ValidateStay(checkIn, checkOut); err != nil {
		return model.Booking{}, err
	}

	status := model.StatusPending
	if c.Status != constant.Empty {
		status = c.Status
	}

	var totalPrice float64
	if c.TotalPrice != nil {
		totalPrice = *c.TotalPrice
	}

	now := timezone.Now()

	return model.Booking{
		ID:           uuid.NewString(),
		UserID:       c.UserID,
		LodgingID:    c.LodgingID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		TotalPrice:   totalPrice,
		Status:       status,
		Metadata: gModel.Metadata{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}, nil
}

// UpdateBookingRequest is a partial update; nil fields are left untouched.
type UpdateBookingRequest struct {
	UserID       *string  `json:"user_id"        validate:"omitempty,uuid"`
	LodgingID    *string  `json:"lodging_id"     validate:"omitempty,uuid"`
	CheckInDate  *string  `json:"check_in_date"  validate:"omitempty,datetime=2006-01-02"`
	CheckOutDate *string  `json:"check_out_date" validate:"omitempty,datetime=2006-01-02"`
	TotalPrice   *float64 `json:"total_price"    validate:"omitempty,gte=0"`
	Status       *string  `json:"status"         validate:"omitempty,oneof=pending confirmed canceled"`
}

// Apply merges the patch into current and returns the columns to write.
// The merged stay is checked so a single moved date cannot invert it.
func (u *UpdateBookingRequest) Apply(current *model.Booking) (map[string]any, error) {
	fields := map[string]any{}

	if u.UserID != nil {
		current.UserID = *u.UserID
		fields[model.FieldUserID] = *u.UserID
	}

	if u.LodgingID != nil {
		current.LodgingID = *u.LodgingID
		fields[model.FieldLodgingID] = *u.LodgingID
	}

	if u.CheckInDate != nil {
		checkIn, err := ParseDate(*u.CheckInDate)
		if err != nil {
			return nil, err
		}

		current.CheckInDate = checkIn
		fields[model.FieldCheckInDate] = checkIn
	}

	if u.CheckOutDate != nil {
		checkOut, err := ParseDate(*u.CheckOutDate)
		if err != nil {
			return nil, err
		}

		current.CheckOutDate = checkOut
		fields[model.FieldCheckOutDate] = checkOut
	}

	if err := ValidateStay(current.CheckInDate, current.CheckOutDate); err != nil {
		return nil, err
	}

	if u.TotalPrice != nil {
		current.TotalPrice = *u.TotalPrice
		fields[model.FieldTotalPrice] = *u.TotalPrice
	}

	if u.Status != nil {
		current.Status = *u.Status
		fields[model.FieldStatus] = *u.Status
	}

	now := timezone.Now()
	current.UpdatedAt = now
	fields[constant.FieldUpdatedAt] = now

	return fields, nil
}

type BookingResponse struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	LodgingID    string  `json:"lodging_id"`
	CheckInDate  string  `json:"check_in_date"`
	CheckOutDate string  `json:"check_out_date"`
	TotalPrice   float64 `json:"total_price"`
	Status       string  `json:"status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.LodgingID = model.LodgingID
	r.CheckInDate = model.CheckInDate.Format(constant.DateOnlyFormat)
	r.CheckOutDate = model.CheckOutDate.Format(constant.DateOnlyFormat)
	r.TotalPrice = model.TotalPrice
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse gDto.PaginatedResponse[BookingResponse]

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Items = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Items[i].FromModel(mod)
	}
}

// BookingFilter narrows listings. From and To keep only stays inside the window.
type BookingFilter struct {
	UserID    string `validate:"omitempty,uuid"`
	LodgingID string `validate:"omitempty,uuid"`
	Status    string `validate:"omitempty,oneof=pending confirmed canceled"`
	From      string `validate:"omitempty,datetime=2006-01-02"`
	To        string `validate:"omitempty,datetime=2006-01-02"`
}

func (f BookingFilter) ToFilterGroup() gDto.FilterGroup {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	shared.AppendFilter(&group, model.TableName, model.FieldUserID, gDto.FilterOperatorEq, f.UserID)
	shared.AppendFilter(&group, model.TableName, model.FieldLodgingID, gDto.FilterOperatorEq, f.LodgingID)
	shared.AppendFilter(&group, model.TableName, model.FieldStatus, gDto.FilterOperatorEq, f.Status)
	shared.AppendFilter(&group, model.TableName, model.FieldCheckInDate, gDto.FilterOperatorGreaterEq, f.From)
	shared.AppendFilter(&group, model.TableName, model.FieldCheckOutDate, gDto.FilterOperatorLessEq, f.To)

	return group
}

package dto_test

import (
	"testing"

	"workforce/internal/domains/booking/model"
	"workforce/internal/domains/booking/model/dto"
	"workforce/shared/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookingRequest_Validation(t *testing.T) {
	req := dto.CreateBookingRequest{
		UserID:       uuid.NewString(),
		LodgingID:    uuid.NewString(),
		CheckInDate:  "2025-01-10",
		CheckOutDate: "2025-01-12",
	}

	assert.NoError(t, validator.ValidateStruct(&req))

	badDate := req
	badDate.CheckInDate = "10/01/2025"
	assert.Error(t, validator.ValidateStruct(&badDate))

	badStatus := req
	badStatus.Status = "cancelled"
	assert.Error(t, validator.ValidateStruct(&badStatus))

	badUser := req
	badUser.UserID = "1"
	assert.Error(t, validator.ValidateStruct(&badUser))
}

func TestCreateBookingRequest_ToModel(t *testing.T) {
	req := dto.CreateBookingRequest{
		UserID:       uuid.NewString(),
		LodgingID:    uuid.NewString(),
		CheckInDate:  "2025-01-10",
		CheckOutDate: "2025-01-12",
	}

	booking, err := req.ToModel()
	require.NoError(t, err)

	assert.Equal(t, 2, booking.Nights())
	assert.Equal(t, model.StatusPending, booking.Status)
	assert.InDelta(t, 150.0, dto.PriceFor(booking, 75), 0.001)

	req.CheckOutDate = req.CheckInDate
	_, err = req.ToModel()
	assert.Error(t, err)
}

func TestUpdateBookingRequest_Apply(t *testing.T) {
	current := model.Booking{Status: model.StatusPending}
	current.CheckInDate, _ = dto.ParseDate("2025-01-10")
	current.CheckOutDate, _ = dto.ParseDate("2025-01-12")

	checkOut := "2025-01-15"
	fields, err := (&dto.UpdateBookingRequest{CheckOutDate: &checkOut}).Apply(&current)

	require.NoError(t, err)
	assert.Len(t, fields, 2)
	assert.Contains(t, fields, model.FieldCheckOutDate)
	assert.Equal(t, 5, current.Nights())

	earlyOut := "2025-01-09"
	_, err = (&dto.UpdateBookingRequest{CheckOutDate: &earlyOut}).Apply(&current)
	assert.Error(t, err)
}

func TestBookingFilter(t *testing.T) {
	assert.Error(t, validator.ValidateStruct(&dto.BookingFilter{UserID: "abc"}))
	assert.NoError(t, validator.ValidateStruct(&dto.BookingFilter{Status: model.StatusCanceled}))

	group := dto.BookingFilter{LodgingID: "x", Status: model.StatusCanceled}.ToFilterGroup()
	where, args := group.GetWhereClause()

	assert.Contains(t, where, "bookings.lodging_id = :lodging_id")
	assert.Equal(t, model.StatusCanceled, args[model.FieldStatus])
}

func TestBookingFilter_Window(t *testing.T) {
	assert.Error(t, validator.ValidateStruct(&dto.BookingFilter{From: "01/02/2025"}))

	filter := dto.BookingFilter{From: "2025-01-01", To: "2025-01-31"}
	require.NoError(t, validator.ValidateStruct(&filter))

	group := filter.ToFilterGroup()
	where, args := group.GetWhereClause()

	assert.Contains(t, where, "bookings.check_in_date >= :check_in_date")
	assert.Contains(t, where, "bookings.check_out_date <= :check_out_date")
	assert.Equal(t, "2025-01-31", args[model.FieldCheckOutDate])
}

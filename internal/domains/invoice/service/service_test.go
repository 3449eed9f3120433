package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"workforce/config"
	"workforce/infras/kafka"
	otelMocks "workforce/infras/otel/mocks"
	bookingMocks "workforce/internal/domains/booking/mocks"
	"workforce/internal/domains/invoice/mocks"
	"workforce/internal/domains/invoice/model"
	"workforce/internal/domains/invoice/model/dto"
	"workforce/internal/domains/invoice/service"
	"workforce/shared/constant"
	gDto "workforce/shared/dto"
	"workforce/shared/event"
	"workforce/shared/failure"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newService(t *testing.T) (service.Invoice, *mocks.MockInvoice, *bookingMocks.MockBooking) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockInvoice(ctrl)
	bookings := bookingMocks.NewMockBooking(ctrl)
	publisher := event.NewPublisher(kafka.New(&config.Config{}))

	return service.New(repo, bookings, otelMocks.NewOtel(), publisher), repo, bookings
}

func amount(v float64) *float64 {
	return &v
}

func TestInvoiceService_Create(t *testing.T) {
	bookingID := uuid.NewString()

	t.Run("defaults status to unpaid", func(t *testing.T) {
		svc, repo, bookings := newService(t)

		bookings.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		res, err := svc.Create(context.Background(), dto.CreateInvoiceRequest{BookingID: bookingID, AmountDue: amount(300)})

		require.NoError(t, err)
		assert.Equal(t, model.StatusUnpaid, res.Status)
		assert.Equal(t, bookingID, res.BookingID)
	})

	t.Run("missing booking", func(t *testing.T) {
		svc, _, bookings := newService(t)

		bookings.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := svc.Create(context.Background(), dto.CreateInvoiceRequest{BookingID: bookingID, AmountDue: amount(300)})

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("booking removed before insert", func(t *testing.T) {
		svc, repo, bookings := newService(t)

		bookings.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(failure.NotFound("referenced resource not found"))

		_, err := svc.Create(context.Background(), dto.CreateInvoiceRequest{BookingID: bookingID, AmountDue: amount(300)})

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestInvoiceService_GetAll(t *testing.T) {
	svc, repo, _ := newService(t)

	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Invoice, error) {
			assert.Equal(t, model.FieldAmountDue, params.SortBy)

			return []model.Invoice{{ID: uuid.NewString(), Status: "paid"}}, nil
		})

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Limit: 10, SortBy: model.FieldAmountDue}, dto.InvoiceFilter{Status: "paid"}.ToFilterGroup())

	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "paid", res.Items[0].Status)
}

func TestInvoiceService_Update(t *testing.T) {
	id := uuid.NewString()

	t.Run("status change", func(t *testing.T) {
		svc, repo, _ := newService(t)
		paid := "paid"

		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) (int64, error) {
				assert.Equal(t, "paid", fields[model.FieldStatus])
				assert.Contains(t, fields, constant.FieldUpdatedAt)
				assert.NotContains(t, fields, model.FieldAmountDue)

				return 1, nil
			})
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Invoice{ID: id, Status: "paid"}, nil)

		res, err := svc.Update(context.Background(), dto.UpdateInvoiceRequest{Status: &paid}, id)

		require.NoError(t, err)
		assert.Equal(t, "paid", res.Status)
	})

	t.Run("moving to a missing booking", func(t *testing.T) {
		svc, _, bookings := newService(t)
		other := uuid.NewString()

		bookings.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := svc.Update(context.Background(), dto.UpdateInvoiceRequest{BookingID: &other}, id)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestInvoiceService_Delete(t *testing.T) {
	id := uuid.NewString()

	t.Run("deleted", func(t *testing.T) {
		svc, repo, _ := newService(t)
		repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(int64(1), nil)

		assert.NoError(t, svc.Delete(context.Background(), id))
	})

	t.Run("missing", func(t *testing.T) {
		svc, repo, _ := newService(t)
		repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(int64(0), nil)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(svc.Delete(context.Background(), id)))
	})

	t.Run("repository failure", func(t *testing.T) {
		svc, repo, _ := newService(t)
		repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("db down"))

		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(svc.Delete(context.Background(), id)))
	})
}

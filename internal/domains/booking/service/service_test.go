package service_test

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"workforce/config"
	otelMocks "workforce/infras/otel/mocks"
	"workforce/internal/domains/booking/mocks"
	"workforce/internal/domains/booking/model"
	"workforce/internal/domains/booking/model/dto"
	"workforce/internal/domains/booking/service"
	lodgingMocks "workforce/internal/domains/lodging/mocks"
	lodgingModel "workforce/internal/domains/lodging/model"
	userMocks "workforce/internal/domains/user/mocks"
	"workforce/shared/cache"
	"workforce/shared/constant"
	gDto "workforce/shared/dto"
	"workforce/shared/event"
	"workforce/shared/failure"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, evt event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if topic == event.TopicBookings {
		p.events = append(p.events, evt)
	}
}

type fixture struct {
	svc       service.Booking
	repo      *mocks.MockBooking
	lodgings  *lodgingMocks.MockLodging
	users     *userMocks.MockUser
	published *recordingPublisher
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := fixture{
		repo:      mocks.NewMockBooking(ctrl),
		lodgings:  lodgingMocks.NewMockLodging(ctrl),
		users:     userMocks.NewMockUser(ctrl),
		published: &recordingPublisher{},
	}

	cfg := &config.Config{}
	ot := otelMocks.NewOtel()
	f.svc = service.New(f.repo, f.lodgings, f.users, cfg, cache.NewRedisCache(nil, ot, cfg), ot, f.published)

	return f
}

func TestBookingService_Create(t *testing.T) {
	userID := uuid.NewString()
	lodgingID := uuid.NewString()

	valid := dto.CreateBookingRequest{
		UserID:       userID,
		LodgingID:    lodgingID,
		CheckInDate:  "2025-07-01",
		CheckOutDate: "2025-07-04",
	}

	t.Run("defaults total price from nights", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.lodgings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(lodgingModel.Lodging{ID: lodgingID, PricePerNight: 99.99}, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, b model.Booking) error {
			assert.Equal(t, 3, b.Nights())
			assert.Equal(t, model.StatusPending, b.Status)

			return nil
		})

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserEmail, "admin@example.com")

		res, err := f.svc.Create(ctx, valid)

		require.NoError(t, err)
		assert.InDelta(t, 299.97, res.TotalPrice, 0.001)
		assert.Equal(t, "2025-07-01", res.CheckInDate)
		require.Len(t, f.published.events, 1)
		assert.Equal(t, event.ActionCreated, f.published.events[0].Action)
		assert.Equal(t, "admin@example.com", f.published.events[0].ActorEmail)
	})

	t.Run("explicit total price wins", func(t *testing.T) {
		f := newFixture(t)
		price := 10.0
		req := valid
		req.TotalPrice = &price

		f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.lodgings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(lodgingModel.Lodging{ID: lodgingID, PricePerNight: 99.99}, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.Create(context.Background(), req)

		require.NoError(t, err)
		assert.InDelta(t, 10.0, res.TotalPrice, 0.001)
	})

	t.Run("check out before check in", func(t *testing.T) {
		f := newFixture(t)
		req := valid
		req.CheckOutDate = "2025-06-30"

		_, err := f.svc.Create(context.Background(), req)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newFixture(t)
		f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := f.svc.Create(context.Background(), valid)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("unknown lodging", func(t *testing.T) {
		f := newFixture(t)
		f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.lodgings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(lodgingModel.Lodging{}, nil)

		_, err := f.svc.Create(context.Background(), valid)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
		assert.Empty(t, f.published.events)
	})
}

func TestBookingService_GetAll(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(25, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
			assert.Equal(t, model.FieldCheckInDate, params.SortBy)
			assert.Len(t, filter.Filters, 1)

			return []model.Booking{{ID: uuid.NewString()}}, nil
		})

	filter := dto.BookingFilter{Status: model.StatusConfirmed}.ToFilterGroup()

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Limit: 10, SortBy: model.FieldCheckInDate}, filter)

	require.NoError(t, err)
	assert.Equal(t, 25, res.TotalData)
	assert.Equal(t, 3, res.TotalPage)
}

func TestBookingService_Update(t *testing.T) {
	id := uuid.NewString()
	current := model.Booking{ID: id, Status: model.StatusPending}
	current.CheckInDate, _ = dto.ParseDate("2025-07-01")
	current.CheckOutDate, _ = dto.ParseDate("2025-07-04")

	t.Run("status only", func(t *testing.T) {
		f := newFixture(t)
		status := model.StatusConfirmed

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) (int64, error) {
				assert.Equal(t, model.StatusConfirmed, fields[model.FieldStatus])
				assert.Contains(t, fields, constant.FieldUpdatedAt)
				assert.Len(t, fields, 2)

				return 1, nil
			})

		res, err := f.svc.Update(context.Background(), dto.UpdateBookingRequest{Status: &status}, id)

		require.NoError(t, err)
		assert.Equal(t, model.StatusConfirmed, res.Status)
		assert.Equal(t, "2025-07-04", res.CheckOutDate)
		require.Len(t, f.published.events, 1)
		assert.Equal(t, event.ActionUpdated, f.published.events[0].Action)
	})

	t.Run("moving check in past check out", func(t *testing.T) {
		f := newFixture(t)
		checkIn := "2025-07-10"

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)

		_, err := f.svc.Update(context.Background(), dto.UpdateBookingRequest{CheckInDate: &checkIn}, id)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("missing booking", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := f.svc.Update(context.Background(), dto.UpdateBookingRequest{}, id)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_Delete(t *testing.T) {
	id := uuid.NewString()

	t.Run("deletes booking", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: id}, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(int64(1), nil)

		require.NoError(t, f.svc.Delete(context.Background(), id))
		require.Len(t, f.published.events, 1)
		assert.Equal(t, event.ActionDeleted, f.published.events[0].Action)
	})

	t.Run("missing booking", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		err := f.svc.Delete(context.Background(), id)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("malformed id", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.Delete(context.Background(), "missing")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_DeletedBookingIsNotServedFromCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockBooking(ctrl)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.Config{}
	cfg.Cache.Enable = true
	cfg.Cache.TTL = 60
	ot := otelMocks.NewOtel()

	svc := service.New(repo, lodgingMocks.NewMockLodging(ctrl), userMocks.NewMockUser(ctrl), cfg,
		cache.NewRedisCache(client, ot, cfg), ot, &recordingPublisher{})

	id := uuid.NewString()
	existing := model.Booking{ID: id, UserID: uuid.NewString(), LodgingID: uuid.NewString()}

	gomock.InOrder(
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existing, nil).Times(2),
		repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(int64(1), nil),
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil),
	)

	_, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return len(mr.Keys()) > 0 }, time.Second, 5*time.Millisecond)

	require.NoError(t, svc.Delete(context.Background(), id))

	_, err = svc.Get(context.Background(), id)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

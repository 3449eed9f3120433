package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"fmt"

	"workforce/config"
	"workforce/infras/otel"
	"workforce/internal/domains/booking/model"
	"workforce/internal/domains/booking/model/dto"
	"workforce/internal/domains/booking/repository"
	lodgingModel "workforce/internal/domains/lodging/model"
	lodgingRepo "workforce/internal/domains/lodging/repository"
	userModel "workforce/internal/domains/user/model"
	userRepo "workforce/internal/domains/user/repository"
	"workforce/shared"
	"workforce/shared/cache"
	"workforce/shared/constant"
	gDto "workforce/shared/dto"
	"workforce/shared/event"
	"workforce/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (dto.BookingResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo        repository.Booking
	lodgingRepo lodgingRepo.Lodging
	userRepo    userRepo.User
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
	publisher   event.Publisher
}

func New(
	repo repository.Booking,
	lodgingRepo lodgingRepo.Lodging,
	userRepo userRepo.User,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	publisher event.Publisher,
) Booking {
	return &serviceImpl{
		repo:        repo,
		lodgingRepo: lodgingRepo,
		userRepo:    userRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
		publisher:   publisher,
	}
}

func filterByID(id string) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldID, model.TableName)
}

// afterMutation retires cached reads before the caller returns, then publishes the change.
func (s *serviceImpl) afterMutation(ctx context.Context, action string, res dto.BookingResponse) {
	shared.Invalidate(context.WithoutCancel(ctx), s.cache, model.EntityName, cacheGetBooking, cacheGetAllBooking, cacheCountBooking)

	s.publisher.Publish(ctx, event.TopicBookings, event.Event{
		Action:     action,
		Entity:     model.EntityName,
		EntityID:   res.ID,
		ActorEmail: event.ActorFromContext(ctx),
		Data:       res,
	})
}

func (s *serviceImpl) cachePrefix(ctx context.Context, prefix string) string {
	return shared.VersionedPrefix(ctx, s.cache, model.EntityName, prefix)
}

func (s *serviceImpl) lodging(ctx context.Context, id string) (lodgingModel.Lodging, error) {
	lodging, err := s.lodgingRepo.Get(ctx, shared.FilterByID(id, lodgingModel.FieldID, lodgingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get lodging for booking")

		return lodging, fmt.Errorf("failed to get lodging: %w", err)
	}

	if lodging.ID == constant.Empty {
		return lodging, failure.NotFound("lodging not found")
	}

	return lodging, nil
}

func (s *serviceImpl) ensureUser(ctx context.Context, id string) error {
	exist, err := s.userRepo.Exist(ctx, shared.FilterByID(id, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking user")

		return fmt.Errorf("failed to check user: %w", err)
	}

	if !exist {
		return failure.NotFound("user not found")
	}

	return nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := req.ToModel()
	if err != nil {
		return res, err
	}

	if err = s.ensureUser(ctx, booking.UserID); err != nil {
		return res, err
	}

	lodging, err := s.lodging(ctx, booking.LodgingID)
	if err != nil {
		return res, err
	}

	if req.TotalPrice == nil {
		booking.TotalPrice = dto.PriceFor(booking, lodging.PricePerNight)
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	res.FromModel(booking)
	s.afterMutation(ctx, event.ActionCreated, res)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Sanitize(model.SortableFields)

	cacheKey := shared.BuildCacheKeyWithQuery(s.cachePrefix(ctx, cacheGetAllBooking), req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.count(ctx, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(s.cachePrefix(ctx, cacheCountBooking), gDto.QueryParams{}, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !shared.IsUUID(id) {
		return res, failure.NotFound("booking not found")
	}

	cacheKey := shared.BuildCacheKey(s.cachePrefix(ctx, cacheGetBooking), id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, filterByID(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found")
	}

	return booking, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !shared.IsUUID(id) {
		return res, failure.NotFound("booking not found")
	}

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	fields, err := req.Apply(&booking)
	if err != nil {
		return res, err
	}

	affected, err := s.repo.Update(ctx, fields, filterByID(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return res, fmt.Errorf("failed to update booking: %w", err)
	}

	if affected == 0 {
		return res, failure.NotFound("booking not found")
	}

	res.FromModel(booking)
	s.afterMutation(ctx, event.ActionUpdated, res)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !shared.IsUUID(id) {
		return failure.NotFound("booking not found")
	}

	booking, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	affected, err := s.repo.Delete(ctx, filterByID(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	if affected == 0 {
		return failure.NotFound("booking not found")
	}

	var res dto.BookingResponse
	res.FromModel(booking)
	s.afterMutation(ctx, event.ActionDeleted, res)

	return nil
}

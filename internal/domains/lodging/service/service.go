package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Lodging=MockLodgingService

import (
	"context"
	"fmt"

	"workforce/config"
	"workforce/infras/otel"
	"workforce/infras/s3"
	"workforce/internal/domains/lodging/model"
	"workforce/internal/domains/lodging/model/dto"
	"workforce/internal/domains/lodging/repository"
	"workforce/shared"
	"workforce/shared/cache"
	"workforce/shared/constant"
	gDto "workforce/shared/dto"
	"workforce/shared/failure"
	"workforce/shared/timezone"
	"workforce/shared/validator"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetLodging    = "lodging:get"
	cacheGetAllLodging = "lodging:gets"
	cacheCountLodging  = "lodging:count"
)

type Lodging interface {
	Create(ctx context.Context, req dto.CreateLodgingRequest) (dto.LodgingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetLodgingsResponse, error)
	Get(ctx context.Context, id string) (dto.LodgingResponse, error)
	Update(ctx context.Context, req dto.UpdateLodgingRequest, id string) (dto.LodgingResponse, error)
	UploadImage(ctx context.Context, upload dto.ImageUpload, id string) (dto.LodgingResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Lodging
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Lodging, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Lodging {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func filterByID(id string) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldID, model.TableName)
}

func (s *serviceImpl) cachePrefix(ctx context.Context, prefix string) string {
	return shared.VersionedPrefix(ctx, s.cache, model.EntityName, prefix)
}

// invalidate runs before a mutation returns, so the next read misses.
func (s *serviceImpl) invalidate(ctx context.Context) {
	shared.Invalidate(context.WithoutCancel(ctx), s.cache, model.EntityName, cacheGetLodging, cacheGetAllLodging, cacheCountLodging)
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateLodgingRequest) (res dto.LodgingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".lodging.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	lodging := req.ToModel()

	if err = s.repo.Insert(ctx, lodging); err != nil {
		log.Error().Err(err).Msg("failed to create lodging")

		return res, fmt.Errorf("failed to create lodging: %w", err)
	}

	s.invalidate(ctx)

	res.FromModel(lodging)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetLodgingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".lodging.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Sanitize(model.SortableFields)

	cacheKey := shared.BuildCacheKeyWithQuery(s.cachePrefix(ctx, cacheGetAllLodging), req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for lodgings")

		return res, nil
	}

	total, err := s.count(ctx, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get lodgings")

		return res, fmt.Errorf("failed to get lodgings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save lodgings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(s.cachePrefix(ctx, cacheCountLodging), gDto.QueryParams{}, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count lodgings")

		return res, fmt.Errorf("failed to count lodgings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save lodging count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.LodgingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".lodging.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !shared.IsUUID(id) {
		return res, failure.NotFound("lodging not found")
	}

	cacheKey := shared.BuildCacheKey(s.cachePrefix(ctx, cacheGetLodging), id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for lodging")

		return res, nil
	}

	lodging, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(lodging)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save lodging to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Lodging, error) {
	lodging, err := s.repo.Get(ctx, filterByID(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get lodging")

		return lodging, fmt.Errorf("failed to get lodging: %w", err)
	}

	if lodging.ID == constant.Empty {
		return lodging, failure.NotFound("lodging not found")
	}

	return lodging, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateLodgingRequest, id string) (res dto.LodgingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".lodging.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !shared.IsUUID(id) {
		return res, failure.NotFound("lodging not found")
	}

	affected, err := s.repo.Update(ctx, req.ToUpdateFields(), filterByID(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to update lodging")

		return res, fmt.Errorf("failed to update lodging: %w", err)
	}

	if affected == 0 {
		return res, failure.NotFound("lodging not found")
	}

	s.invalidate(ctx)

	lodging, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(lodging)

	return res, nil
}

// UploadImage stores the image and swaps it in. The previous object is removed only after
// the row points at the new one.
func (s *serviceImpl) UploadImage(ctx context.Context, upload dto.ImageUpload, id string) (res dto.LodgingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".lodging.UploadImage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&upload); err != nil {
		return res, err
	}

	if !shared.IsUUID(id) {
		return res, failure.NotFound("lodging not found")
	}

	current, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	url, err := s.s3.UploadFile(ctx, model.EntityName, upload.FileName(), upload.ContentType, upload.Body, upload.Size)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload lodging image")

		return res, fmt.Errorf("failed to upload image: %w", err)
	}

	now := timezone.Now()
	fields := map[string]any{
		model.FieldImage:        url,
		constant.FieldUpdatedAt: now,
	}

	if _, err = s.repo.Update(ctx, fields, filterByID(id)); err != nil {
		log.Error().Err(err).Msg("failed to save lodging image")

		if delErr := s.s3.DeleteFile(ctx, url); delErr != nil {
			log.Error().Err(delErr).Str("url", url).Msg("failed to remove orphaned lodging image")
		}

		return res, fmt.Errorf("failed to save lodging image: %w", err)
	}

	if current.Image != nil && *current.Image != constant.Empty {
		if delErr := s.s3.DeleteFile(ctx, *current.Image); delErr != nil {
			log.Warn().Err(delErr).Str("url", *current.Image).Msg("failed to remove previous lodging image")
		}
	}

	s.invalidate(ctx)

	current.Image = &url
	current.UpdatedAt = now
	res.FromModel(current)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".lodging.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !shared.IsUUID(id) {
		return failure.NotFound("lodging not found")
	}

	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	affected, err := s.repo.Delete(ctx, filterByID(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to delete lodging")

		return fmt.Errorf("failed to delete lodging: %w", err)
	}

	if affected == 0 {
		return failure.NotFound("lodging not found")
	}

	if current.Image != nil && *current.Image != constant.Empty {
		if delErr := s.s3.DeleteFile(ctx, *current.Image); delErr != nil {
			log.Warn().Err(delErr).Str("url", *current.Image).Msg("failed to remove lodging image")
		}
	}

	s.invalidate(ctx)

	return nil
}

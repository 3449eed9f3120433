package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Invoice=MockInvoiceService

import (
	"context"
	"fmt"

	"workforce/infras/otel"
	bookingModel "workforce/internal/domains/booking/model"
	bookingRepo "workforce/internal/domains/booking/repository"
	"workforce/internal/domains/invoice/model"
	"workforce/internal/domains/invoice/model/dto"
	"workforce/internal/domains/invoice/repository"
	"workforce/shared"
	"workforce/shared/constant"
	gDto "workforce/shared/dto"
	"workforce/shared/event"
	"workforce/shared/failure"

	"github.com/rs/zerolog/log"
)

// Invoice reads are not cached; every route sits behind authentication.
type Invoice interface {
	Create(ctx context.Context, req dto.CreateInvoiceRequest) (dto.InvoiceResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetInvoicesResponse, error)
	Get(ctx context.Context, id string) (dto.InvoiceResponse, error)
	Update(ctx context.Context, req dto.UpdateInvoiceRequest, id string) (dto.InvoiceResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo        repository.Invoice
	bookingRepo bookingRepo.Booking
	otel        otel.Otel
	publisher   event.Publisher
}

func New(repo repository.Invoice, bookingRepo bookingRepo.Booking, otel otel.Otel, publisher event.Publisher) Invoice {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		otel:        otel,
		publisher:   publisher,
	}
}

func filterByID(id string) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldID, model.TableName)
}

func (s *serviceImpl) publish(ctx context.Context, action string, res dto.InvoiceResponse) {
	s.publisher.Publish(ctx, event.TopicInvoices, event.Event{
		Action:     action,
		Entity:     model.EntityName,
		EntityID:   res.ID,
		ActorEmail: event.ActorFromContext(ctx),
		Data:       res,
	})
}

// ensureBooking checks the booking exists at this instant. Nothing holds it until the insert.
func (s *serviceImpl) ensureBooking(ctx context.Context, id string) error {
	exist, err := s.bookingRepo.Exist(ctx, shared.FilterByID(id, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check invoice booking")

		return fmt.Errorf("failed to check booking: %w", err)
	}

	if !exist {
		return failure.NotFound("booking not found")
	}

	return nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateInvoiceRequest) (res dto.InvoiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".invoice.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.ensureBooking(ctx, req.BookingID); err != nil {
		return res, err
	}

	invoice := req.ToModel()

	if err = s.repo.Insert(ctx, invoice); err != nil {
		log.Error().Err(err).Msg("failed to create invoice")

		return res, fmt.Errorf("failed to create invoice: %w", err)
	}

	res.FromModel(invoice)
	s.publish(ctx, event.ActionCreated, res)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetInvoicesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".invoice.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Sanitize(model.SortableFields)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count invoices")

		return res, fmt.Errorf("failed to count invoices: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get invoices")

		return res, fmt.Errorf("failed to get invoices: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.InvoiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".invoice.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !shared.IsUUID(id) {
		return res, failure.NotFound("invoice not found")
	}

	invoice, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(invoice)

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Invoice, error) {
	invoice, err := s.repo.Get(ctx, filterByID(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get invoice")

		return invoice, fmt.Errorf("failed to get invoice: %w", err)
	}

	if invoice.ID == constant.Empty {
		return invoice, failure.NotFound("invoice not found")
	}

	return invoice, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateInvoiceRequest, id string) (res dto.InvoiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".invoice.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !shared.IsUUID(id) {
		return res, failure.NotFound("invoice not found")
	}

	if req.BookingID != nil {
		if err = s.ensureBooking(ctx, *req.BookingID); err != nil {
			return res, err
		}
	}

	affected, err := s.repo.Update(ctx, req.ToUpdateFields(), filterByID(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to update invoice")

		return res, fmt.Errorf("failed to update invoice: %w", err)
	}

	if affected == 0 {
		return res, failure.NotFound("invoice not found")
	}

	invoice, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(invoice)
	s.publish(ctx, event.ActionUpdated, res)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".invoice.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !shared.IsUUID(id) {
		return failure.NotFound("invoice not found")
	}

	affected, err := s.repo.Delete(ctx, filterByID(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to delete invoice")

		return fmt.Errorf("failed to delete invoice: %w", err)
	}

	if affected == 0 {
		return failure.NotFound("invoice not found")
	}

	s.publish(ctx, event.ActionDeleted, dto.InvoiceResponse{ID: id})

	return nil
}

package invoice

import (
	"net/http"

	"workforce/infras/otel"
	"workforce/internal/domains/invoice/model"
	"workforce/internal/domains/invoice/model/dto"
	"workforce/internal/domains/invoice/service"
	"workforce/shared/constant"
	gDto "workforce/shared/dto"
	"workforce/shared/validator"
	"workforce/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Invoice
	otel    otel.Otel
}

func New(service service.Invoice, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Router mounts invoices. Every route needs a bearer token; mutations are admin only.
func (handler *Handler) Router(router chi.Router, guard func(http.Handler) http.Handler) {
	router.Route("/invoices", func(routerGroup chi.Router) {
		routerGroup.With(guard).Get("/", handler.GetInvoices)
		routerGroup.With(guard).Get("/{id}", handler.GetInvoiceByID)
		routerGroup.With(guard).Post("/", handler.CreateInvoice)
		routerGroup.With(guard).Put("/{id}", handler.UpdateInvoice)
		routerGroup.With(guard).Patch("/{id}", handler.UpdateInvoice)
		routerGroup.With(guard).Delete("/{id}", handler.DeleteInvoice)
	})
}

// CreateInvoice handles the creation of a new invoice.
// @Summary Create a new invoice
// @Description Create an invoice for an existing booking. Status defaults to "unpaid".
// @Tags Invoice
// @Accept json
// @Produce json
// @Param request body dto.CreateInvoiceRequest true "Create Invoice Request"
// @Success 201 {object} response.Data[dto.InvoiceResponse] "Created invoice"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/invoices [post]
// @Security BearerAuth
func (handler *Handler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateInvoice")
	defer scope.End()

	req := dto.CreateInvoiceRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create invoice")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Invoice created successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

// GetInvoices lists invoices.
// @Summary Get all invoices
// @Tags Invoice
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param booking_id query string false "Filter by booking"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Data[dto.GetInvoicesResponse] "List of invoices"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/invoices [get]
// @Security BearerAuth
func (handler *Handler) GetInvoices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetInvoices")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filter := dto.InvoiceFilter{
		BookingID: r.URL.Query().Get(model.FieldBookingID),
		Status:    r.URL.Query().Get(model.FieldStatus),
	}

	if err := validator.ValidateStruct(&filter); err != nil {
		response.WithError(w, err)

		return
	}

	invoices, err := handler.service.GetAll(ctx, queryParams, filter.ToFilterGroup())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get invoices")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, invoices)
}

// GetInvoiceByID retrieves an invoice.
// @Summary Get an invoice by ID
// @Tags Invoice
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.Data[dto.InvoiceResponse] "Invoice details"
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/invoices/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetInvoiceByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetInvoiceByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	invoice, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to get invoice")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, invoice)
}

// UpdateInvoice applies a partial update.
// @Summary Update an invoice
// @Tags Invoice
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param request body dto.UpdateInvoiceRequest true "Update Invoice Request"
// @Success 200 {object} response.Data[dto.InvoiceResponse] "Updated invoice"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/invoices/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateInvoice")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	req := dto.UpdateInvoiceRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	invoice, err := handler.service.Update(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to update invoice")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, invoice)
}

// DeleteInvoice deletes an invoice.
// @Summary Delete an invoice
// @Tags Invoice
// @Param id path string true "Invoice ID"
// @Success 204 "No Content"
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/invoices/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteInvoice")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to delete invoice")

		response.WithError(w, err)

		return
	}

	response.WithNoContent(w)
}

package lodging

import (
	"net/http"
	"strings"

	"workforce/infras/otel"
	"workforce/internal/domains/lodging/model"
	"workforce/internal/domains/lodging/model/dto"
	"workforce/internal/domains/lodging/service"
	"workforce/shared"
	"workforce/shared/constant"
	gDto "workforce/shared/dto"
	"workforce/shared/failure"
	"workforce/shared/validator"
	"workforce/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Lodging
	otel    otel.Otel
}

func New(service service.Lodging, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router, guard func(http.Handler) http.Handler) {
	router.Route("/lodgings", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetLodgings)
		routerGroup.Get("/{id}", handler.GetLodgingByID)

		routerGroup.With(guard).Post("/", handler.CreateLodging)
		routerGroup.With(guard).Put("/{id}", handler.UpdateLodging)
		routerGroup.With(guard).Patch("/{id}", handler.UpdateLodging)
		routerGroup.With(guard).Put("/{id}/image", handler.UploadImage)
		routerGroup.With(guard).Delete("/{id}", handler.DeleteLodging)
	})
}

// CreateLodging handles the creation of a new lodging.
// @Summary Create a new lodging
// @Description Create a new lodging. Availability defaults to true.
// @Tags Lodging
// @Accept json
// @Produce json
// @Param request body dto.CreateLodgingRequest true "Create Lodging Request"
// @Success 201 {object} response.Data[dto.LodgingResponse] "Created lodging"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/lodgings [post]
// @Security BearerAuth
func (handler *Handler) CreateLodging(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateLodging")
	defer scope.End()

	req := dto.CreateLodgingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create lodging")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Lodging created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetLodgings retrieves lodgings based on query parameters.
// @Summary Get all lodgings
// @Description Retrieve lodgings with optional filtering, sorting and pagination.
// @Tags Lodging
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name (partial match)"
// @Param location query string false "Filter by location"
// @Param availability query boolean false "Filter by availability"
// @Success 200 {object} response.Data[dto.GetLodgingsResponse] "List of lodgings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/lodgings [get]
func (handler *Handler) GetLodgings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLodgings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()

	availability := query.Get(model.FieldAvailability)
	if err := validator.ValidateVar(availability, "omitempty,boolean"); err != nil {
		response.WithError(w, failure.BadRequestFromString("availability must be a boolean"))

		return
	}

	filter := dto.LodgingFilter{
		Name:         strings.TrimSpace(query.Get(model.FieldName)),
		Location:     strings.TrimSpace(query.Get(model.FieldLocation)),
		Availability: shared.ConvertStringToBool(availability),
	}

	lodgings, err := handler.service.GetAll(ctx, queryParams, filter.ToFilterGroup())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get lodgings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Lodgings retrieved successfully")

	response.WithJSON(w, http.StatusOK, lodgings)
}

// GetLodgingByID retrieves a lodging by its ID.
// @Summary Get a lodging by ID
// @Tags Lodging
// @Produce json
// @Param id path string true "Lodging ID"
// @Success 200 {object} response.Data[dto.LodgingResponse] "Lodging details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/lodgings/{id} [get]
func (handler *Handler) GetLodgingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLodgingByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	lodging, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to get lodging")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, lodging)
}

// UpdateLodging applies a partial update. PUT and PATCH behave the same.
// @Summary Update a lodging
// @Tags Lodging
// @Accept json
// @Produce json
// @Param id path string true "Lodging ID"
// @Param request body dto.UpdateLodgingRequest true "Update Lodging Request"
// @Success 200 {object} response.Data[dto.LodgingResponse] "Updated lodging"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/lodgings/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateLodging(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateLodging")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	req := dto.UpdateLodgingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	lodging, err := handler.service.Update(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to update lodging")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Lodging updated successfully")

	response.WithJSON(w, http.StatusOK, lodging)
}

// UploadImage replaces the lodging image.
// @Summary Upload a lodging image
// @Description Accepts a multipart "image" file or a JSON body with a base64 data url. PNG or JPEG up to 1 MB.
// @Tags Lodging
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param id path string true "Lodging ID"
// @Param image formData file false "Lodging image"
// @Success 200 {object} response.Data[dto.LodgingResponse] "Updated lodging"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/lodgings/{id}/image [put]
// @Security BearerAuth
func (handler *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadImage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	upload, closeFile, err := readImage(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read image")

		response.WithError(w, err)

		return
	}
	defer closeFile()

	lodging, err := handler.service.UploadImage(ctx, upload, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to upload lodging image")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Lodging image uploaded successfully")

	response.WithJSON(w, http.StatusOK, lodging)
}

func readImage(r *http.Request) (dto.ImageUpload, func(), error) {
	noop := func() {}

	if !strings.HasPrefix(r.Header.Get(constant.RequestHeaderContentType), constant.ContentTypeMultipartFormData) {
		req := dto.UploadImageRequest{}

		if err := validator.Validate(r.Body, &req); err != nil {
			return dto.ImageUpload{}, noop, err
		}

		upload, err := req.ToImageUpload()

		return upload, noop, err
	}

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		return dto.ImageUpload{}, noop, failure.BadRequest(err)
	}

	file, header, err := r.FormFile(constant.FormImage)
	if err != nil {
		return dto.ImageUpload{}, noop, failure.BadRequestFromString("image is required")
	}

	closeFile := func() {
		if err := file.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close uploaded image")
		}
	}

	return dto.ImageUpload{
		Body:        file,
		ContentType: header.Header.Get(constant.RequestHeaderContentType),
		Size:        header.Size,
	}, closeFile, nil
}

// DeleteLodging deletes a lodging by its ID.
// @Summary Delete a lodging
// @Tags Lodging
// @Param id path string true "Lodging ID"
// @Success 204 "No Content"
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/lodgings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteLodging(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteLodging")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to delete lodging")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Lodging deleted successfully")

	response.WithNoContent(w)
}

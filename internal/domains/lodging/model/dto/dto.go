package dto

import (
	"bytes"
	"io"

	"workforce/internal/domains/lodging/model"
	"workforce/shared"
	"workforce/shared/base64"
	"workforce/shared/constant"
	gDto "workforce/shared/dto"
	"workforce/shared/failure"
	gModel "workforce/shared/model"
	"workforce/shared/timezone"

	"github.com/google/uuid"
)

// MaxImageSize is the upload limit for lodging images, in bytes.
const MaxImageSize = 1 << 20

var imageExtensions = map[string]string{
	"image/png":  "png",
	"image/jpg":  "jpg",
	"image/jpeg": "jpg",
}

type CreateLodgingRequest struct {
	Name          string   `json:"name"            validate:"required,max=255"`
	Location      string   `json:"location"        validate:"required,max=255"`
	PricePerNight *float64 `json:"price_per_night" validate:"required,gte=0"`
	Availability  *bool    `json:"availability"    validate:"omitempty"`
	Description   *string  `json:"description"     validate:"omitempty,max=2000"`
}

func (c *CreateLodgingRequest) ToModel() model.Lodging {
	availability := true
	if c.Availability != nil {
		availability = *c.Availability
	}

	now := timezone.Now()

	return model.Lodging{
		ID:            uuid.NewString(),
		Name:          c.Name,
		Location:      c.Location,
		PricePerNight: *c.PricePerNight,
		Availability:  availability,
		Description:   c.Description,
		Metadata: gModel.Metadata{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// UpdateLodgingRequest is a partial update; nil fields are left untouched.
type UpdateLodgingRequest struct {
	Name          *string  `json:"name"            validate:"omitempty,min=1,max=255"`
	Location      *string  `json:"location"        validate:"omitempty,min=1,max=255"`
	PricePerNight *float64 `json:"price_per_night" validate:"omitempty,gte=0"`
	Availability  *bool    `json:"availability"    validate:"omitempty"`
	Description   *string  `json:"description"     validate:"omitempty,max=2000"`
}

func (u *UpdateLodgingRequest) ToUpdateFields() map[string]any {
	fields := map[string]any{constant.FieldUpdatedAt: timezone.Now()}

	if u.Name != nil {
		fields[model.FieldName] = *u.Name
	}

	if u.Location != nil {
		fields[model.FieldLocation] = *u.Location
	}

	if u.PricePerNight != nil {
		fields[model.FieldPricePerNight] = *u.PricePerNight
	}

	if u.Availability != nil {
		fields[model.FieldAvailability] = *u.Availability
	}

	if u.Description != nil {
		fields[model.FieldDescription] = *u.Description
	}

	return fields
}

// UploadImageRequest is the JSON form of an image upload, a base64 data url.
type UploadImageRequest struct {
	Image string `json:"image" validate:"required,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
}

func (u *UploadImageRequest) ToImageUpload() (ImageUpload, error) {
	data, contentType, err := base64.Decode(u.Image)
	if err != nil {
		return ImageUpload{}, failure.BadRequest(err)
	}

	return ImageUpload{
		Body:        bytes.NewReader(data),
		ContentType: contentType,
		Size:        int64(len(data)),
	}, nil
}

// ImageUpload is an image ready to be streamed to object storage.
type ImageUpload struct {
	Body        io.ReadSeeker `json:"-"            validate:"required"`
	ContentType string        `json:"content_type" validate:"required,oneof=image/png image/jpg image/jpeg"`
	Size        int64         `json:"size"         validate:"gt=0,lte=1048576"`
}

func (i ImageUpload) FileName() string {
	return uuid.NewString() + "." + imageExtensions[i.ContentType]
}

type LodgingResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Location      string  `json:"location"`
	PricePerNight float64 `json:"price_per_night"`
	Availability  bool    `json:"availability"`
	Description   *string `json:"description"`
	Image         *string `json:"image"`
	gDto.Metadata
}

func (r *LodgingResponse) FromModel(model model.Lodging) {
	r.ID = model.ID
	r.Name = model.Name
	r.Location = model.Location
	r.PricePerNight = model.PricePerNight
	r.Availability = model.Availability
	r.Description = model.Description
	r.Image = model.Image
	r.Metadata.FromModel(model.Metadata)
}

type GetLodgingsResponse gDto.PaginatedResponse[LodgingResponse]

func (r *GetLodgingsResponse) FromModels(models []model.Lodging, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Items = make([]LodgingResponse, len(models))
	for i, mod := range models {
		r.Items[i].FromModel(mod)
	}
}

type LodgingFilter struct {
	Name         string
	Location     string
	Availability *bool
}

func (f LodgingFilter) ToFilterGroup() gDto.FilterGroup {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	shared.AppendFilter(&group, model.TableName, model.FieldName, gDto.FilterOperatorLike, f.Name)
	shared.AppendFilter(&group, model.TableName, model.FieldLocation, gDto.FilterOperatorEq, f.Location)
	shared.AppendFilter(&group, model.TableName, model.FieldAvailability, gDto.FilterOperatorEq, f.Availability)

	return group
}

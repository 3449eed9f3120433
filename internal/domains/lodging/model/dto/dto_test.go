package dto_test

import (
	stdBase64 "encoding/base64"
	"io"
	"strings"
	"testing"

	"workforce/internal/domains/lodging/model"
	"workforce/internal/domains/lodging/model/dto"
	"workforce/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLodgingRequest_Validation(t *testing.T) {
	price := 80.0
	negative := -1.0

	assert.NoError(t, validator.ValidateStruct(&dto.CreateLodgingRequest{Name: "Loft", Location: "Lyon", PricePerNight: &price}))
	assert.Error(t, validator.ValidateStruct(&dto.CreateLodgingRequest{Name: "Loft", Location: "Lyon"}))
	assert.Error(t, validator.ValidateStruct(&dto.CreateLodgingRequest{Name: "Loft", Location: "Lyon", PricePerNight: &negative}))
	assert.Error(t, validator.ValidateStruct(&dto.CreateLodgingRequest{Location: "Lyon", PricePerNight: &price}))
}

func TestCreateLodgingRequest_ToModel(t *testing.T) {
	price := 80.0
	unavailable := false

	req := dto.CreateLodgingRequest{Name: "Loft", Location: "Lyon", PricePerNight: &price, Availability: &unavailable}
	lodging := req.ToModel()

	assert.False(t, lodging.Availability)
	assert.Equal(t, lodging.CreatedAt, lodging.UpdatedAt)
	assert.Nil(t, lodging.Image)
}

func TestUpdateLodgingRequest_Validation(t *testing.T) {
	empty := ""
	zero := 0.0

	assert.Error(t, validator.ValidateStruct(&dto.UpdateLodgingRequest{Name: &empty}))
	assert.NoError(t, validator.ValidateStruct(&dto.UpdateLodgingRequest{PricePerNight: &zero}))
	assert.NoError(t, validator.ValidateStruct(&dto.UpdateLodgingRequest{}))
}

func TestUpdateLodgingRequest_ToUpdateFields(t *testing.T) {
	name := "Renamed"
	description := "Sea view"

	fields := (&dto.UpdateLodgingRequest{Name: &name, Description: &description}).ToUpdateFields()

	assert.Equal(t, "Renamed", fields[model.FieldName])
	assert.Equal(t, "Sea view", fields[model.FieldDescription])
	assert.Len(t, fields, 3)
}

func TestUploadImageRequest_ToImageUpload(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G'}
	req := dto.UploadImageRequest{Image: "data:image/png;base64," + stdBase64.StdEncoding.EncodeToString(payload)}

	require.NoError(t, validator.ValidateStruct(&req))

	upload, err := req.ToImageUpload()
	require.NoError(t, err)

	assert.Equal(t, "image/png", upload.ContentType)
	assert.EqualValues(t, len(payload), upload.Size)
	assert.True(t, strings.HasSuffix(upload.FileName(), ".png"))

	body, err := io.ReadAll(upload.Body)
	require.NoError(t, err)
	assert.Equal(t, payload, body)
}

func TestUploadImageRequest_RejectsOtherTypes(t *testing.T) {
	req := dto.UploadImageRequest{Image: "data:image/gif;base64,R0lGOD=="}

	assert.Error(t, validator.ValidateStruct(&req))
}

func TestLodgingFilter_ToFilterGroup(t *testing.T) {
	available := true

	group := dto.LodgingFilter{Location: "Oslo", Availability: &available}.ToFilterGroup()
	where, args := group.GetWhereClause()

	assert.Contains(t, where, "lodgings.location = :location")
	assert.Contains(t, where, "lodgings.availability = :availability")
	assert.Equal(t, true, args[model.FieldAvailability])
	assert.NotContains(t, where, "name")
}

package lodging_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	otelMocks "workforce/infras/otel/mocks"
	"workforce/internal/domains/lodging/mocks"
	"workforce/internal/domains/lodging/model/dto"
	"workforce/internal/handlers/lodging"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func newRouter(t *testing.T) (http.Handler, *mocks.MockLodgingService) {
	t.Helper()

	svc := mocks.NewMockLodgingService(gomock.NewController(t))
	handler := lodging.New(svc, otelMocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router, func(next http.Handler) http.Handler { return next })

	return router, svc
}

func multipartBody(t *testing.T, field, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer

	writer := multipart.NewWriter(&body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="camp.png"`)
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)

	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return &body, writer.FormDataContentType()
}

func TestUploadImageMultipart(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().
		UploadImage(gomock.Any(), gomock.Any(), "l-1").
		DoAndReturn(func(_ context.Context, upload dto.ImageUpload, id string) (dto.LodgingResponse, error) {
			assert.Equal(t, "image/png", upload.ContentType)
			assert.Equal(t, int64(len(pngHeader)), upload.Size)

			data, err := io.ReadAll(upload.Body)
			require.NoError(t, err)
			assert.Equal(t, pngHeader, data)

			return dto.LodgingResponse{ID: id}, nil
		})

	body, contentType := multipartBody(t, "image", "image/png", pngHeader)

	req := httptest.NewRequest(http.MethodPut, "/lodgings/l-1/image", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestUploadImageMissingField(t *testing.T) {
	router, _ := newRouter(t)

	body, contentType := multipartBody(t, "photo", "image/png", pngHeader)

	req := httptest.NewRequest(http.MethodPut, "/lodgings/l-1/image", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadImageRejectsBadDataURL(t *testing.T) {
	router, _ := newRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/lodgings/l-1/image", bytes.NewBufferString(`{"image":"not-a-data-url"}`))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetLodgingsRejectsBadAvailability(t *testing.T) {
	router, _ := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/lodgings?availability=maybe", nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteLodging(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().Delete(gomock.Any(), "l-1").Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/lodgings/l-1", nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

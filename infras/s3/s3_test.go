package s3_test

import (
	"testing"

	"workforce/config"
	"workforce/infras/otel/mocks"
	"workforce/infras/s3"

	"github.com/stretchr/testify/assert"
)

func TestGetObjectNameFromURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.External.S3.BucketName = "lodgings"
	cfg.External.S3.APIEndpoint = "http://localhost:9000"
	cfg.External.S3.PublicDomain = "https://cdn.example.com"
	cfg.External.S3.Region = "auto"

	svc := s3.New(cfg, mocks.NewOtel())

	assert.Equal(t, "lodgings/abc/image.png", svc.GetObjectNameFromURL("https://cdn.example.com/lodgings/abc/image.png"))
	assert.Equal(t, "lodgings/abc/image.png", svc.GetObjectNameFromURL("http://localhost:9000/lodgings/lodgings/abc/image.png"))
	assert.Empty(t, svc.GetObjectNameFromURL("https://elsewhere.example.com/image.png"))
}

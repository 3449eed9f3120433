package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"workforce/config"
	"workforce/infras/otel"
	"workforce/shared/constant"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrFileName = "file_name"
	otelAttrBucket   = "bucket"
)

type S3 interface {
	UploadFile(ctx context.Context, directory, fileName, contentType string, body io.ReadSeeker, size int64) (url string, err error)
	DeleteFile(ctx context.Context, url string) error
	GetObjectNameFromURL(url string) (objectName string)
}

type s3Impl struct {
	Client *s3.Client
	Config *config.Config
	otel   otel.Otel
}

func (svc *s3Impl) bucket() string {
	return svc.Config.External.S3.BucketName
}

// UploadFile stores the object under directory/fileName and returns its public URL.
func (svc *s3Impl) UploadFile(ctx context.Context, directory, fileName, contentType string, body io.ReadSeeker, size int64) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".UploadFile")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	objectKey := path.Join(directory, fileName)

	scope.SetAttributes(map[string]any{
		otelAttrFileName: objectKey,
		otelAttrBucket:   svc.bucket(),
	})

	_, err = svc.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(svc.bucket()),
		Key:           aws.String(objectKey),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		log.Error().Err(err).Str("key", objectKey).Msg("failed to upload file to S3")

		return constant.Empty, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return svc.publicURL(objectKey), nil
}

// DeleteFile removes the object behind a URL returned by UploadFile. Foreign URLs are ignored.
func (svc *s3Impl) DeleteFile(ctx context.Context, url string) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".DeleteFile")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	objectKey := svc.GetObjectNameFromURL(url)
	if objectKey == constant.Empty {
		return nil
	}

	scope.SetAttributes(map[string]any{
		otelAttrFileName: objectKey,
		otelAttrBucket:   svc.bucket(),
	})

	_, err = svc.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(svc.bucket()),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		log.Error().Err(err).Str("key", objectKey).Msg("failed to delete file from S3")

		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

func (svc *s3Impl) GetObjectNameFromURL(url string) (objectName string) {
	for _, prefix := range svc.urlPrefixes() {
		if prefix != "/" && strings.HasPrefix(url, prefix) {
			return strings.TrimPrefix(url, prefix)
		}
	}

	return constant.Empty
}

func (svc *s3Impl) urlPrefixes() []string {
	s3Cfg := svc.Config.External.S3

	return []string{
		strings.TrimSuffix(s3Cfg.PublicDomain, "/") + "/",
		fmt.Sprintf("%s/%s/", strings.TrimSuffix(s3Cfg.APIEndpoint, "/"), svc.bucket()),
	}
}

func (svc *s3Impl) publicURL(objectKey string) string {
	if publicDomain := svc.Config.External.S3.PublicDomain; publicDomain != "" {
		return fmt.Sprintf("%s/%s", strings.TrimSuffix(publicDomain, "/"), objectKey)
	}

	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(svc.Config.External.S3.APIEndpoint, "/"), svc.bucket(), objectKey)
}

func New(cfg *config.Config, otl otel.Otel) S3 {
	s3Cfg := cfg.External.S3

	staticProvider := credentials.NewStaticCredentialsProvider(
		s3Cfg.AccessKeyID,
		s3Cfg.SecretAccessKey,
		"",
	)

	awsCfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithCredentialsProvider(staticProvider),
		awsConfig.WithRegion(s3Cfg.Region),
	)
	if err != nil {
		log.Err(err).Msg("Error loading AWS configuration")
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if s3Cfg.APIEndpoint != "" {
			o.BaseEndpoint = aws.String(s3Cfg.APIEndpoint)
		}

		o.UsePathStyle = true
	})

	return &s3Impl{
		Client: s3Client,
		Config: cfg,
		otel:   otl,
	}
}

package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"workforce/infras/otel"
	"workforce/infras/postgres"
	"workforce/internal/domains/invoice/model"
	gDto "workforce/shared/dto"
	gRepo "workforce/shared/repository"
)

type Invoice interface {
	Insert(ctx context.Context, model model.Invoice) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Invoice, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Invoice, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Invoice]
}

func New(db *postgres.Connection, otel otel.Otel) Invoice {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Invoice](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

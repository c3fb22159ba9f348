package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"schedly/infras/otel"
	"schedly/infras/postgres"
	"schedly/internal/domains/event/model"
	gDto "schedly/shared/dto"
	gRepo "schedly/shared/repository"
)

type EventType interface {
	Insert(ctx context.Context, model model.EventType) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.EventType, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.EventType, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.EventType]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) EventType {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.EventType](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"schedly/infras/otel"
	"schedly/infras/postgres"
	"schedly/internal/domains/availability/model"
	gDto "schedly/shared/dto"
	"schedly/shared/logger"
	gRepo "schedly/shared/repository"
)

type Availability interface {
	Insert(ctx context.Context, model model.AvailabilityRule) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.AvailabilityRule, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.AvailabilityRule, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	Replace(ctx context.Context, id string, mod model.AvailabilityRule) error
}

type repositoryImpl struct {
	gRepo.Repository[model.AvailabilityRule]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Availability {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.AvailabilityRule](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Replace swaps one rule for its successor in a single transaction, so slot
// queries never observe the gap a delete-then-recreate would leave.
func (repo *repositoryImpl) Replace(ctx context.Context, id string, mod model.AvailabilityRule) (err error) {
	tx, err := repo.BeginTx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				logger.ErrorWithStack(rollbackErr)
			}
		}
	}()

	byID := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Value:    id,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}

	if err = repo.DeleteTx(ctx, tx, byID); err != nil {
		return err
	}

	if err = repo.InsertTx(ctx, tx, mod); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit rule replace (%s): %w", model.EntityName, err)
	}

	return nil
}

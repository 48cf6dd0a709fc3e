package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"rental/infras/otel"
	"rental/infras/postgres"
	"rental/internal/domains/inspection/model"
	gDto "rental/shared/dto"
	gRepo "rental/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Inspection interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Inspection) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Inspection, error)
	GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) (model.Inspection, error)
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Inspection]
}

func New(db *postgres.Connection, otel otel.Otel) Inspection {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Inspection](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"rental/infras/otel"
	"rental/infras/postgres"
	"rental/internal/domains/bike/model"
	vRepo "rental/internal/domains/vehicle/repository"
	gDto "rental/shared/dto"
	gRepo "rental/shared/repository"
)

type Bike interface {
	vRepo.Store
	Insert(ctx context.Context, model model.Bike) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Bike, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Bike, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Bike]
	vRepo.Store
}

func New(db *postgres.Connection, otel otel.Otel) Bike {
	repo := &repositoryImpl{
		Repository: gRepo.NewRepository[model.Bike](model.EntityName, model.TableName, model.FieldID, db, otel),
	}

	repo.Store = vRepo.NewStore(&repo.Repository, model.TableName, model.Bike.Vehicle)

	return repo
}

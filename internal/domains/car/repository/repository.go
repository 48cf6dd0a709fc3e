package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"rental/infras/otel"
	"rental/infras/postgres"
	"rental/internal/domains/car/model"
	vRepo "rental/internal/domains/vehicle/repository"
	gDto "rental/shared/dto"
	gRepo "rental/shared/repository"
)

type Car interface {
	vRepo.Store
	Insert(ctx context.Context, model model.Car) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Car, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Car, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Car]
	vRepo.Store
}

func New(db *postgres.Connection, otel otel.Otel) Car {
	repo := &repositoryImpl{
		Repository: gRepo.NewRepository[model.Car](model.EntityName, model.TableName, model.FieldID, db, otel),
	}

	repo.Store = vRepo.NewStore(&repo.Repository, model.TableName, model.Car.Vehicle)

	return repo
}

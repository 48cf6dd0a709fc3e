package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/store_mock.go -package=mocks

import (
	"context"
	"rental/internal/domains/vehicle/model"
	"rental/shared"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	gRepo "rental/shared/repository"
	"rental/shared/timezone"

	"github.com/jmoiron/sqlx"
)

const (
	fieldID           = "id"
	fieldAvailability = "availability"

	argCurrentAvailability = "current_availability"
)

// Store is the availability contract every vehicle table fulfils.
type Store interface {
	FindVehicle(ctx context.Context, id string) (model.Vehicle, error)
	// DeleteAvailable removes the vehicle only while it is available and
	// reports whether it did.
	DeleteAvailable(ctx context.Context, id string) (bool, error)
	// ReserveTx flips availability from true to false and reports whether it did.
	ReserveTx(ctx context.Context, tx *sqlx.Tx, id, actor string) (bool, error)
	ReleaseTx(ctx context.Context, tx *sqlx.Tx, id, actor string) error
}

// Stores is the dispatch table from vehicle type to its table.
type Stores map[model.Type]Store

type availabilityStore[T any] struct {
	repo      *gRepo.Repository[T]
	table     string
	toVehicle func(T) model.Vehicle
}

// NewStore adapts a table repository into a Store. toVehicle must return a
// Vehicle with an empty Ref.ID for the zero row.
func NewStore[T any](repo *gRepo.Repository[T], table string, toVehicle func(T) model.Vehicle) Store {
	return &availabilityStore[T]{
		repo:      repo,
		table:     table,
		toVehicle: toVehicle,
	}
}

func (s *availabilityStore[T]) FindVehicle(ctx context.Context, id string) (model.Vehicle, error) {
	row, err := s.repo.Get(ctx, shared.FilterByID(id, fieldID, s.table))
	if err != nil {
		return model.Vehicle{}, err //nolint:wrapcheck
	}

	return s.toVehicle(row), nil
}

// available matches id only while the row is still available.
func (s *availabilityStore[T]) available(id string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: fieldID, Value: id, Operator: gDto.FilterOperatorEq, Table: s.table},
			gDto.Filter{ArgName: argCurrentAvailability, Field: fieldAvailability, Value: true, Operator: gDto.FilterOperatorEq, Table: s.table},
		},
	}
}

func (s *availabilityStore[T]) DeleteAvailable(ctx context.Context, id string) (bool, error) {
	affected, err := s.repo.DeleteCount(ctx, s.available(id))
	if err != nil {
		return false, err //nolint:wrapcheck
	}

	return affected == 1, nil
}

func (s *availabilityStore[T]) ReserveTx(ctx context.Context, tx *sqlx.Tx, id, actor string) (bool, error) {
	affected, err := s.repo.UpdateTxCount(ctx, tx, s.availabilityFields(false, actor), s.available(id))
	if err != nil {
		return false, err //nolint:wrapcheck
	}

	return affected == 1, nil
}

func (s *availabilityStore[T]) ReleaseTx(ctx context.Context, tx *sqlx.Tx, id, actor string) error {
	return s.repo.UpdateTx(ctx, tx, s.availabilityFields(true, actor), shared.FilterByID(id, fieldID, s.table)) //nolint:wrapcheck
}

func (s *availabilityStore[T]) availabilityFields(available bool, actor string) map[string]any {
	return map[string]any{
		fieldAvailability:        available,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor,
	}
}

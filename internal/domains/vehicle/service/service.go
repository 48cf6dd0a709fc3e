package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"rental/infras/otel"
	"rental/internal/domains/vehicle/model"
	"rental/internal/domains/vehicle/repository"
	"rental/shared"
	"rental/shared/cache"
	"rental/shared/constant"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// Inventory resolves a vehicle reference to its table. Availability only
// changes through ReserveTx and ReleaseTx, inside booking transactions.
type Inventory interface {
	FindByID(ctx context.Context, ref model.Ref) (model.Vehicle, error)
	ReserveTx(ctx context.Context, tx *sqlx.Tx, ref model.Ref) error
	ReleaseTx(ctx context.Context, tx *sqlx.Tx, ref model.Ref) error
	Invalidate(ctx context.Context, ref model.Ref)
}

type inventoryImpl struct {
	stores repository.Stores
	cache  cache.RedisCache
	otel   otel.Otel
}

func New(stores repository.Stores, cache cache.RedisCache, otel otel.Otel) Inventory {
	return &inventoryImpl{
		stores: stores,
		cache:  cache,
		otel:   otel,
	}
}

func (s *inventoryImpl) store(ref model.Ref) (repository.Store, error) {
	store, ok := s.stores[ref.Type]
	if !ok {
		return nil, model.ErrUnknownType
	}

	return store, nil
}

func (s *inventoryImpl) FindByID(ctx context.Context, ref model.Ref) (vehicle model.Vehicle, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".FindByID")
	defer scope.End()
	defer scope.TraceIfError(err)

	store, err := s.store(ref)
	if err != nil {
		return vehicle, err
	}

	vehicle, err = store.FindVehicle(ctx, ref.ID)
	if err != nil {
		log.Error().Err(err).Str("vehicle", ref.String()).Msg("failed to find vehicle")

		return vehicle, fmt.Errorf("failed to find vehicle: %w", err)
	}

	if !vehicle.Exists() {
		return vehicle, model.ErrVehicleNotFound
	}

	return vehicle, nil
}

// ReserveTx takes the vehicle out of the pool inside tx. Only one of several
// concurrent reservations of the same vehicle can succeed, the rest get
// ErrVehicleUnavailable.
func (s *inventoryImpl) ReserveTx(ctx context.Context, tx *sqlx.Tx, ref model.Ref) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ReserveTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	store, err := s.store(ref)
	if err != nil {
		return err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	reserved, err := store.ReserveTx(ctx, tx, ref.ID, user)
	if err != nil {
		log.Error().Err(err).Str("vehicle", ref.String()).Msg("failed to reserve vehicle")

		return fmt.Errorf("failed to reserve vehicle: %w", err)
	}

	if reserved {
		return nil
	}

	if _, err = s.FindByID(ctx, ref); err != nil {
		return err
	}

	return model.ErrVehicleUnavailable
}

func (s *inventoryImpl) ReleaseTx(ctx context.Context, tx *sqlx.Tx, ref model.Ref) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ReleaseTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	store, err := s.store(ref)
	if err != nil {
		return err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = store.ReleaseTx(ctx, tx, ref.ID, user); err != nil {
		log.Error().Err(err).Str("vehicle", ref.String()).Msg("failed to release vehicle")

		return fmt.Errorf("failed to release vehicle: %w", err)
	}

	return nil
}

// Invalidate drops the cached catalog entries of ref. Call it after the
// transaction that changed availability has committed.
func (s *inventoryImpl) Invalidate(ctx context.Context, ref model.Ref) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(ref.Type.CacheKey(model.CacheOpGet), ref.ID)); err != nil {
		log.Error().Err(err).Str("vehicle", ref.String()).Msg("failed to delete vehicle cache")
	}

	shared.InvalidateCaches(ctx, s.cache, ref.Type.CacheKey(model.CacheOpGetAll))
	shared.InvalidateCaches(ctx, s.cache, ref.Type.CacheKey(model.CacheOpCount))
}

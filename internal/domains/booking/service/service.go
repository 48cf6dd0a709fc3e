package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"rental/infras/otel"
	"rental/infras/postgres"
	"rental/internal/domains/booking/event"
	"rental/internal/domains/booking/model"
	"rental/internal/domains/booking/model/dto"
	"rental/internal/domains/booking/repository"
	vService "rental/internal/domains/vehicle/service"
	"rental/permissions"
	"rental/shared"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	"rental/shared/failure"
	"rental/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Transition(ctx context.Context, id string, req dto.TransitionRequest) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id string) (dto.BookingResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	GetMine(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
}

type serviceImpl struct {
	repo       repository.Booking
	inventory  vService.Inventory
	transactor postgres.Transactor
	publisher  event.Publisher
	otel       otel.Otel
}

func New(
	repo repository.Booking,
	inventory vService.Inventory,
	transactor postgres.Transactor,
	publisher event.Publisher,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:       repo,
		inventory:  inventory,
		transactor: transactor,
		publisher:  publisher,
		otel:       otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor := permissions.ActorFromContext(ctx)
	if !permissions.Can(actor, permissions.ActionBookingCreate, permissions.Resource{}) {
		return res, failure.ForbiddenError
	}

	booking, err := req.ToModel(actor.ID, timezone.Now())
	if err != nil {
		return res, err
	}

	err = s.transactor.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.inventory.ReserveTx(ctx, tx, booking.Vehicle()); err != nil {
			return err
		}

		return s.repo.InsertTx(ctx, tx, booking)
	})
	if err != nil {
		log.Error().Err(err).Str("vehicle", booking.Vehicle().String()).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	go s.publisher.Committed(context.WithoutCancel(ctx), "", booking)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Transition(ctx context.Context, id string, req dto.TransitionRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Transition")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor := permissions.ActorFromContext(ctx)
	requested := model.Status(req.Status)

	var (
		booking model.Booking
		from    model.Status
	)

	err = s.transactor.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error

		booking, err = s.lockBooking(ctx, tx, id, actor, permissions.ActionBookingTransition)
		if err != nil {
			return err
		}

		if err := model.CheckTransition(booking.Status, requested, actor.Privileged()); err != nil {
			return err
		}

		from = booking.Status
		booking.Status = requested

		if err := s.saveStatus(ctx, tx, &booking, actor.ID); err != nil {
			return err
		}

		if booking.Status == model.StatusCompleted && booking.PenaltyStatus != model.PenaltyPending {
			return s.inventory.ReleaseTx(ctx, tx, booking.Vehicle())
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("booking", id).Str("requested", req.Status).Msg("failed to transition booking")

		return res, fmt.Errorf("failed to transition booking: %w", err)
	}

	go s.publisher.Committed(context.WithoutCancel(ctx), from, booking)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor := permissions.ActorFromContext(ctx)

	var booking model.Booking

	err = s.transactor.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error

		booking, err = s.lockBooking(ctx, tx, id, actor, permissions.ActionBookingCancel)
		if err != nil {
			return err
		}

		if booking.Status != model.StatusConfirmed {
			return model.ErrNotCancellable
		}

		booking.Status = model.StatusCancelled

		if err := s.saveStatus(ctx, tx, &booking, actor.ID); err != nil {
			return err
		}

		return s.inventory.ReleaseTx(ctx, tx, booking.Vehicle())
	})
	if err != nil {
		log.Error().Err(err).Str("booking", id).Msg("failed to cancel booking")

		return res, fmt.Errorf("failed to cancel booking: %w", err)
	}

	go s.publisher.Committed(context.WithoutCancel(ctx), model.StatusConfirmed, booking)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking", id).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if !booking.Exists() {
		return res, model.ErrBookingNotFound
	}

	actor := permissions.ActorFromContext(ctx)
	if !permissions.Can(actor, permissions.ActionBookingRead, permissions.Resource{OwnerID: booking.CustomerID}) {
		return res, failure.ResourceRestrictedError
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !permissions.Can(permissions.ActorFromContext(ctx), permissions.ActionBookingList, permissions.Resource{}) {
		return res, failure.ForbiddenError
	}

	return s.list(ctx, req, filter)
}

func (s *serviceImpl) GetMine(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor := permissions.ActorFromContext(ctx)
	if actor.ID == "" {
		return res, failure.Unauthorized(constant.ResponseErrorUnauthorized)
	}

	mine := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldCustomerID, Value: actor.ID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	if len(filter.Filters) > 0 {
		mine.Filters = append(mine.Filters, filter)
	}

	return s.list(ctx, req, mine)
}

func (s *serviceImpl) list(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

// lockBooking reads the booking FOR UPDATE and checks that actor may perform action on it.
func (s *serviceImpl) lockBooking(ctx context.Context, tx *sqlx.Tx, id string, actor permissions.Actor, action permissions.Action) (model.Booking, error) {
	booking, err := s.repo.GetForUpdateTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return booking, err
	}

	if !booking.Exists() {
		return booking, model.ErrBookingNotFound
	}

	if !permissions.Can(actor, action, permissions.Resource{OwnerID: booking.CustomerID}) {
		return booking, failure.ResourceRestrictedError
	}

	return booking, nil
}

func (s *serviceImpl) saveStatus(ctx context.Context, tx *sqlx.Tx, booking *model.Booking, actor string) error {
	booking.ModifiedAt = timezone.Now()
	booking.ModifiedBy = actor

	return s.repo.UpdateTx(ctx, tx, map[string]any{
		model.FieldStatus:        booking.Status,
		constant.FieldModifiedAt: booking.ModifiedAt,
		constant.FieldModifiedBy: booking.ModifiedBy,
	}, shared.FilterByID(booking.ID, model.FieldID, model.TableName))
}

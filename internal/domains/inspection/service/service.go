package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"rental/infras/otel"
	"rental/infras/postgres"
	"rental/infras/s3"
	"rental/internal/domains/booking/event"
	bModel "rental/internal/domains/booking/model"
	bRepo "rental/internal/domains/booking/repository"
	"rental/internal/domains/inspection/model"
	"rental/internal/domains/inspection/model/dto"
	"rental/internal/domains/inspection/repository"
	vService "rental/internal/domains/vehicle/service"
	"rental/permissions"
	"rental/shared"
	"rental/shared/constant"
	"rental/shared/failure"
	gRepo "rental/shared/repository"
	"rental/shared/timezone"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type Inspection interface {
	Create(ctx context.Context, req dto.CreateInspectionRequest) (dto.InspectionResponse, error)
	UploadPhoto(ctx context.Context, req dto.UploadPhotoRequest) (dto.PhotoResponse, error)
	Get(ctx context.Context, id string) (dto.InspectionResponse, error)
	Analyze(ctx context.Context, id string, req dto.AnalysisRequest) (dto.InspectionResponse, error)
	Review(ctx context.Context, id string, req dto.ReviewRequest) (dto.InspectionResponse, error)
	PayPenalty(ctx context.Context, id string) error
	MarkPenaltyPaid(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo        repository.Inspection
	bookingRepo bRepo.Booking
	inventory   vService.Inventory
	transactor  postgres.Transactor
	publisher   event.Publisher
	otel        otel.Otel
	s3          s3.S3
}

func New(
	repo repository.Inspection,
	bookingRepo bRepo.Booking,
	inventory vService.Inventory,
	transactor postgres.Transactor,
	publisher event.Publisher,
	otel otel.Otel,
	s3 s3.S3,
) Inspection {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		inventory:   inventory,
		transactor:  transactor,
		publisher:   publisher,
		otel:        otel,
		s3:          s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateInspectionRequest) (res dto.InspectionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor := permissions.ActorFromContext(ctx)
	if !permissions.Can(actor, permissions.ActionInspectionCreate, permissions.Resource{}) {
		return res, failure.ForbiddenError
	}

	inspection := req.ToModel(actor.ID, timezone.Now())

	err = s.transactor.WithTx(ctx, func(tx *sqlx.Tx) error {
		booking, err := s.lockBooking(ctx, tx, inspection.BookingID)
		if err != nil {
			return err
		}

		if inspection.Type.Slot(booking) != nil {
			return inspection.Type.SlotFilledError()
		}

		if err := s.repo.InsertTx(ctx, tx, inspection); err != nil {
			if errors.Is(err, gRepo.ErrDuplicate) {
				return inspection.Type.SlotFilledError()
			}

			return err
		}

		return s.bookingRepo.UpdateTx(ctx, tx, map[string]any{
			inspection.Type.SlotField(): inspection.ID,
			constant.FieldModifiedAt:    inspection.CreatedAt,
			constant.FieldModifiedBy:    actor.ID,
		}, shared.FilterByID(booking.ID, bModel.FieldID, bModel.TableName))
	})
	if err != nil {
		log.Error().Err(err).Str("booking", req.BookingID).Str("type", req.Type).Msg("failed to create damage report")

		return res, fmt.Errorf("failed to create damage report: %w", err)
	}

	res.FromModel(inspection)

	return res, nil
}

func (s *serviceImpl) UploadPhoto(ctx context.Context, req dto.UploadPhotoRequest) (res dto.PhotoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadPhoto")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !permissions.Can(permissions.ActorFromContext(ctx), permissions.ActionInspectionUpload, permissions.Resource{}) {
		return res, failure.ForbiddenError
	}

	url, err := s.s3.UploadFile(ctx, model.EntityName, req.PhotoFile, req.Photo, s3.ObjectName(req.Photo))
	if err != nil {
		log.Error().Err(err).Msg("failed to upload inspection photo")

		return res, fmt.Errorf("failed to upload inspection photo: %w", err)
	}

	res.URL = url

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.InspectionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	inspection, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("inspection", id).Msg("failed to get damage report")

		return res, fmt.Errorf("failed to get damage report: %w", err)
	}

	if !inspection.Exists() {
		return res, model.ErrInspectionNotFound
	}

	booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(inspection.BookingID, bModel.FieldID, bModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking", inspection.BookingID).Msg("failed to get booking of damage report")

		return res, fmt.Errorf("failed to get booking of damage report: %w", err)
	}

	actor := permissions.ActorFromContext(ctx)
	if !permissions.Can(actor, permissions.ActionInspectionRead, permissions.Resource{OwnerID: booking.CustomerID}) {
		return res, failure.ResourceRestrictedError
	}

	res.FromModel(inspection)

	return res, nil
}

func (s *serviceImpl) Analyze(ctx context.Context, id string, req dto.AnalysisRequest) (res dto.InspectionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Analyze")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor := permissions.ActorFromContext(ctx)
	if !permissions.Can(actor, permissions.ActionInspectionAnalyze, permissions.Resource{}) {
		return res, failure.ForbiddenError
	}

	var inspection model.Inspection

	err = s.transactor.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error

		inspection, err = s.lockInspection(ctx, tx, id)
		if err != nil {
			return err
		}

		if inspection.Status != model.StatusPending {
			return model.ErrNotPending
		}

		if err := s.repo.UpdateTx(ctx, tx, req.Fields(actor.ID), shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			return err
		}

		inspection.DetectedDamages = req.Damages()
		inspection.OverallAssessment = req.OverallAssessment
		inspection.Status = model.StatusAnalyzed

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("inspection", id).Msg("failed to analyze damage report")

		return res, fmt.Errorf("failed to analyze damage report: %w", err)
	}

	res.FromModel(inspection)

	return res, nil
}

// Review closes a damage report. Reviewing a post-rental report settles the
// booking: a repair cost raises a pending penalty and marks the booking
// returned, no cost completes it and frees the vehicle.
func (s *serviceImpl) Review(ctx context.Context, id string, req dto.ReviewRequest) (res dto.InspectionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Review")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor := permissions.ActorFromContext(ctx)
	if !permissions.Can(actor, permissions.ActionInspectionReview, permissions.Resource{}) {
		return res, failure.ForbiddenError
	}

	var (
		inspection model.Inspection
		booking    bModel.Booking
		from       bModel.Status
	)

	now := timezone.Now()

	err = s.transactor.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error

		inspection, err = s.lockInspection(ctx, tx, id)
		if err != nil {
			return err
		}

		if inspection.Status == model.StatusReviewed {
			return model.ErrAlreadyReviewed
		}

		if err := s.repo.UpdateTx(ctx, tx, req.Fields(actor.ID, now), shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			return err
		}

		inspection.ConfirmedDamages = req.Damages()
		inspection.TotalRepairCost = req.Cost()
		inspection.ReviewNotes = req.Notes
		inspection.ReviewedBy = &actor.ID
		inspection.ReviewedAt = &now
		inspection.Status = model.StatusReviewed

		if inspection.Type != model.TypePostRental {
			return nil
		}

		booking, err = s.lockBooking(ctx, tx, inspection.BookingID)
		if err != nil {
			return err
		}

		if booking.Status != bModel.StatusActive && booking.Status != bModel.StatusPendingReturn {
			return model.ErrNotAwaitingReturn
		}

		from = booking.Status

		return s.settleReturn(ctx, tx, &booking, req.Cost(), actor.ID, now)
	})
	if err != nil {
		log.Error().Err(err).Str("inspection", id).Msg("failed to review damage report")

		return res, fmt.Errorf("failed to review damage report: %w", err)
	}

	if booking.Exists() {
		go s.publisher.Committed(context.WithoutCancel(ctx), from, booking)
	}

	res.FromModel(inspection)

	return res, nil
}

// settleReturn applies a post-rental review to booking.
func (s *serviceImpl) settleReturn(ctx context.Context, tx *sqlx.Tx, booking *bModel.Booking, cost float64, actor string, now time.Time) error {
	fields := map[string]any{
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: actor,
	}

	if cost > 0 {
		booking.Status = bModel.StatusReturned
		booking.PenaltyAmount = cost
		booking.PenaltyStatus = bModel.PenaltyPending

		fields[bModel.FieldPenaltyAmount] = cost
		fields[bModel.FieldPenaltyStatus] = bModel.PenaltyPending
	} else {
		booking.Status = bModel.StatusCompleted
	}

	fields[bModel.FieldStatus] = booking.Status

	if err := s.bookingRepo.UpdateTx(ctx, tx, fields, shared.FilterByID(booking.ID, bModel.FieldID, bModel.TableName)); err != nil {
		return err
	}

	if booking.Status == bModel.StatusCompleted {
		return s.inventory.ReleaseTx(ctx, tx, booking.Vehicle())
	}

	return nil
}

func (s *serviceImpl) PayPenalty(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PayPenalty")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.settlePenalty(ctx, id, permissions.ActionPenaltyPay)
}

func (s *serviceImpl) MarkPenaltyPaid(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkPenaltyPaid")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.settlePenalty(ctx, id, permissions.ActionPenaltyMarkPaid)
}

// settlePenalty marks the pending penalty of the report's booking as paid,
// completes the booking and frees its vehicle in one transaction.
func (s *serviceImpl) settlePenalty(ctx context.Context, id string, action permissions.Action) error {
	actor := permissions.ActorFromContext(ctx)

	var (
		booking bModel.Booking
		from    bModel.Status
	)

	err := s.transactor.WithTx(ctx, func(tx *sqlx.Tx) error {
		inspection, err := s.lockInspection(ctx, tx, id)
		if err != nil {
			return err
		}

		booking, err = s.lockBooking(ctx, tx, inspection.BookingID)
		if err != nil {
			return err
		}

		if !permissions.Can(actor, action, permissions.Resource{OwnerID: booking.CustomerID}) {
			return failure.ResourceRestrictedError
		}

		if booking.PenaltyStatus != bModel.PenaltyPending {
			return model.ErrNoPendingPenalty
		}

		from = booking.Status
		booking.Status = bModel.StatusCompleted
		booking.PenaltyStatus = bModel.PenaltyPaid

		err = s.bookingRepo.UpdateTx(ctx, tx, map[string]any{
			bModel.FieldStatus:        booking.Status,
			bModel.FieldPenaltyStatus: booking.PenaltyStatus,
			constant.FieldModifiedAt:  timezone.Now(),
			constant.FieldModifiedBy:  actor.ID,
		}, shared.FilterByID(booking.ID, bModel.FieldID, bModel.TableName))
		if err != nil {
			return err
		}

		return s.inventory.ReleaseTx(ctx, tx, booking.Vehicle())
	})
	if err != nil {
		log.Error().Err(err).Str("inspection", id).Str("action", string(action)).Msg("failed to settle penalty")

		return fmt.Errorf("failed to settle penalty: %w", err)
	}

	go s.publisher.Committed(context.WithoutCancel(ctx), from, booking)

	return nil
}

func (s *serviceImpl) lockInspection(ctx context.Context, tx *sqlx.Tx, id string) (model.Inspection, error) {
	inspection, err := s.repo.GetForUpdateTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return inspection, err
	}

	if !inspection.Exists() {
		return inspection, model.ErrInspectionNotFound
	}

	return inspection, nil
}

func (s *serviceImpl) lockBooking(ctx context.Context, tx *sqlx.Tx, id string) (bModel.Booking, error) {
	booking, err := s.bookingRepo.GetForUpdateTx(ctx, tx, shared.FilterByID(id, bModel.FieldID, bModel.TableName))
	if err != nil {
		return booking, err
	}

	if !booking.Exists() {
		return booking, bModel.ErrBookingNotFound
	}

	return booking, nil
}

package service_test

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"rental/infras/otel/mocks"
	pgMocks "rental/infras/postgres/mocks"
	s3Mocks "rental/infras/s3/mocks"
	bookingMocks "rental/internal/domains/booking/mocks"
	bModel "rental/internal/domains/booking/model"
	inspectionMocks "rental/internal/domains/inspection/mocks"
	"rental/internal/domains/inspection/model"
	"rental/internal/domains/inspection/model/dto"
	"rental/internal/domains/inspection/service"
	vModel "rental/internal/domains/vehicle/model"
	vehicleMocks "rental/internal/domains/vehicle/mocks"
	"rental/permissions"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	"rental/shared/failure"
	gRepo "rental/shared/repository"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	admin    = permissions.Actor{ID: "admin-1", Role: constant.RoleAdmin}
	staff    = permissions.Actor{ID: "staff-1", Role: constant.RoleStaff}
	customer = permissions.Actor{ID: "customer-1", Role: constant.RoleCustomer}
	stranger = permissions.Actor{ID: "customer-2", Role: constant.RoleCustomer}

	bikeRef = vModel.Ref{Type: vModel.TypeBike, ID: "B1"}
)

type deps struct {
	repo       *inspectionMocks.MockInspection
	bookings   *bookingMocks.MockBooking
	inventory  *vehicleMocks.MockInventory
	transactor *pgMocks.MockTransactor
	publisher  *bookingMocks.MockPublisher
	s3         *s3Mocks.MockS3
	published  *sync.WaitGroup
}

func newService(t *testing.T) (service.Inspection, deps) {
	t.Helper()

	ctrl := gomock.NewController(t)

	d := deps{
		repo:       inspectionMocks.NewMockInspection(ctrl),
		bookings:   bookingMocks.NewMockBooking(ctrl),
		inventory:  vehicleMocks.NewMockInventory(ctrl),
		transactor: pgMocks.NewMockTransactor(ctrl),
		publisher:  bookingMocks.NewMockPublisher(ctrl),
		s3:         s3Mocks.NewMockS3(ctrl),
		published:  &sync.WaitGroup{},
	}

	d.transactor.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, fn func(tx *sqlx.Tx) error) error {
			return fn(nil)
		}).AnyTimes()

	svc := service.New(d.repo, d.bookings, d.inventory, d.transactor, d.publisher, mocks.NewOtel(), d.s3)

	return svc, d
}

func (d deps) expectPublish(t *testing.T, from bModel.Status, check func(booking bModel.Booking)) {
	t.Helper()

	d.published.Add(1)
	d.publisher.EXPECT().Committed(gomock.Any(), from, gomock.Any()).Do(
		func(_ context.Context, _ bModel.Status, booking bModel.Booking) {
			defer d.published.Done()

			check(booking)
		})
}

func (d deps) wait(t *testing.T) {
	t.Helper()

	done := make(chan struct{})

	go func() {
		d.published.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("booking event was not published")
	}
}

func booking(status bModel.Status, penalty bModel.Penalty) bModel.Booking {
	return bModel.Booking{
		ID:            "bk-1",
		CustomerID:    customer.ID,
		VehicleID:     bikeRef.ID,
		VehicleType:   bikeRef.Type,
		Status:        status,
		PenaltyStatus: penalty,
	}
}

func inspection(kind model.Type, status model.Status) model.Inspection {
	return model.Inspection{
		ID:         "insp-1",
		BookingID:  "bk-1",
		Type:       kind,
		PhotoURL:   "https://cdn.example.com/inspection/main.png",
		PhotoAngle: model.PhotoAngleMain,
		Status:     status,
	}
}

func asActor(actor permissions.Actor) context.Context {
	return permissions.ContextWithActor(context.Background(), actor)
}

func createRequest(kind string) dto.CreateInspectionRequest {
	return dto.CreateInspectionRequest{
		BookingID: "bk-1",
		Type:      kind,
		Photos:    []dto.Photo{{Angle: "main", URL: "https://cdn.example.com/inspection/main.png"}},
	}
}

func TestInspection_Create(t *testing.T) {
	t.Run("links the report into the booking slot", func(t *testing.T) {
		svc, d := newService(t)

		d.bookings.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booking(bModel.StatusActive, bModel.PenaltyNone), nil)
		d.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ *sqlx.Tx, report model.Inspection) error {
				assert.Equal(t, model.StatusPending, report.Status)
				assert.Equal(t, model.TypePostRental, report.Type)

				return nil
			})
		d.bookings.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Contains(t, fields, bModel.FieldPostRentalInspectionID)
				assert.NotContains(t, fields, bModel.FieldPreRentalInspectionID)

				return nil
			})

		res, err := svc.Create(asActor(admin), createRequest("post-rental"))

		require.NoError(t, err)
		assert.Equal(t, "pending", res.Status)
		require.Len(t, res.Photos, 1)
		assert.Equal(t, "main", res.Photos[0].Angle)
	})

	t.Run("filled slot is rejected", func(t *testing.T) {
		svc, d := newService(t)

		existing := "insp-0"
		found := booking(bModel.StatusConfirmed, bModel.PenaltyNone)
		found.PreRentalInspectionID = &existing

		d.bookings.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(found, nil)

		_, err := svc.Create(asActor(admin), createRequest("pre-rental"))

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("slot filled by a concurrent request", func(t *testing.T) {
		svc, d := newService(t)

		d.bookings.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booking(bModel.StatusConfirmed, bModel.PenaltyNone), nil)
		d.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(fmt.Errorf("failed to insert data (inspection): %w", gRepo.ErrDuplicate))

		_, err := svc.Create(asActor(admin), createRequest("pre-rental"))

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("missing booking", func(t *testing.T) {
		svc, d := newService(t)

		d.bookings.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(bModel.Booking{}, nil)

		_, err := svc.Create(asActor(admin), createRequest("pre-rental"))

		assert.ErrorIs(t, err, bModel.ErrBookingNotFound)
	})

	t.Run("staff cannot file reports", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.Create(asActor(staff), createRequest("pre-rental"))

		assert.ErrorIs(t, err, failure.ForbiddenError)
	})
}

func TestInspection_Get(t *testing.T) {
	tests := []struct {
		name     string
		actor    permissions.Actor
		report   model.Inspection
		wantCode int
	}{
		{name: "owner", actor: customer, report: inspection(model.TypePreRental, model.StatusPending)},
		{name: "staff", actor: staff, report: inspection(model.TypePreRental, model.StatusPending)},
		{name: "stranger", actor: stranger, report: inspection(model.TypePreRental, model.StatusPending), wantCode: http.StatusForbidden},
		{name: "missing", actor: admin, report: model.Inspection{}, wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := newService(t)

			d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.report, nil)

			if tt.report.Exists() {
				d.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(bModel.StatusActive, bModel.PenaltyNone), nil)
			}

			res, err := svc.Get(asActor(tt.actor), "insp-1")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "insp-1", res.ID)
		})
	}
}

func TestInspection_Analyze(t *testing.T) {
	req := dto.AnalysisRequest{
		DetectedDamages:   []dto.Damage{{Location: "tank", Description: "dent", Severity: "moderate"}},
		OverallAssessment: "minor wear",
	}

	t.Run("pending report is analyzed", func(t *testing.T) {
		svc, d := newService(t)

		d.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(inspection(model.TypePostRental, model.StatusPending), nil)
		d.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.StatusAnalyzed, fields[model.FieldStatus])

				return nil
			})

		res, err := svc.Analyze(asActor(staff), "insp-1", req)

		require.NoError(t, err)
		assert.Equal(t, "analyzed", res.Status)
		require.Len(t, res.DetectedDamages, 1)
		assert.Equal(t, "tank", res.DetectedDamages[0].Location)
	})

	t.Run("analyzed report cannot be analyzed again", func(t *testing.T) {
		svc, d := newService(t)

		d.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(inspection(model.TypePostRental, model.StatusAnalyzed), nil)

		_, err := svc.Analyze(asActor(admin), "insp-1", req)

		assert.ErrorIs(t, err, model.ErrNotPending)
	})

	t.Run("customer cannot analyze", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.Analyze(asActor(customer), "insp-1", req)

		assert.ErrorIs(t, err, failure.ForbiddenError)
	})
}

func reviewRequest(cost float64) dto.ReviewRequest {
	return dto.ReviewRequest{
		ConfirmedDamages: []dto.Damage{{Location: "mirror", Severity: "minor", RepairCost: &cost}},
		TotalRepairCost:  &cost,
		Notes:            "checked",
	}
}

func TestInspection_Review(t *testing.T) {
	t.Run("post-rental damage raises a pending penalty", func(t *testing.T) {
		svc, d := newService(t)

		d.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(inspection(model.TypePostRental, model.StatusAnalyzed), nil)
		d.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		d.bookings.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booking(bModel.StatusPendingReturn, bModel.PenaltyNone), nil)
		d.bookings.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, bModel.StatusReturned, fields[bModel.FieldStatus])
				assert.Equal(t, bModel.PenaltyPending, fields[bModel.FieldPenaltyStatus])
				assert.InDelta(t, 300, fields[bModel.FieldPenaltyAmount], 0.001)

				return nil
			})
		d.expectPublish(t, bModel.StatusPendingReturn, func(b bModel.Booking) {
			assert.Equal(t, bModel.StatusReturned, b.Status)
			assert.Equal(t, bModel.PenaltyPending, b.PenaltyStatus)
		})

		res, err := svc.Review(asActor(admin), "insp-1", reviewRequest(300))

		require.NoError(t, err)
		assert.Equal(t, "reviewed", res.Status)
		assert.InDelta(t, 300, res.TotalRepairCost, 0.001)
		require.NotNil(t, res.ReviewedBy)
		assert.Equal(t, admin.ID, *res.ReviewedBy)

		d.wait(t)
	})

	t.Run("post-rental without damage completes and frees the vehicle", func(t *testing.T) {
		svc, d := newService(t)

		d.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(inspection(model.TypePostRental, model.StatusPending), nil)
		d.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		d.bookings.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booking(bModel.StatusPendingReturn, bModel.PenaltyNone), nil)
		d.bookings.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, bModel.StatusCompleted, fields[bModel.FieldStatus])
				assert.NotContains(t, fields, bModel.FieldPenaltyStatus)

				return nil
			})
		d.inventory.EXPECT().ReleaseTx(gomock.Any(), gomock.Any(), bikeRef).Return(nil)
		d.expectPublish(t, bModel.StatusPendingReturn, func(b bModel.Booking) {
			assert.Equal(t, bModel.StatusCompleted, b.Status)
		})

		_, err := svc.Review(asActor(admin), "insp-1", reviewRequest(0))

		require.NoError(t, err)

		d.wait(t)
	})

	t.Run("pre-rental review leaves the booking alone", func(t *testing.T) {
		svc, d := newService(t)

		d.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(inspection(model.TypePreRental, model.StatusPending), nil)
		d.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		res, err := svc.Review(asActor(admin), "insp-1", reviewRequest(500))

		require.NoError(t, err)
		assert.Equal(t, "reviewed", res.Status)
	})

	t.Run("reviewed is terminal", func(t *testing.T) {
		svc, d := newService(t)

		d.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(inspection(model.TypePostRental, model.StatusReviewed), nil)

		_, err := svc.Review(asActor(admin), "insp-1", reviewRequest(0))

		assert.ErrorIs(t, err, model.ErrAlreadyReviewed)
	})

	t.Run("booking not awaiting return rolls back", func(t *testing.T) {
		svc, d := newService(t)

		d.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(inspection(model.TypePostRental, model.StatusAnalyzed), nil)
		d.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		d.bookings.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booking(bModel.StatusCancelled, bModel.PenaltyNone), nil)

		_, err := svc.Review(asActor(admin), "insp-1", reviewRequest(100))

		assert.ErrorIs(t, err, model.ErrNotAwaitingReturn)
	})

	t.Run("staff cannot review", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.Review(asActor(staff), "insp-1", reviewRequest(0))

		assert.ErrorIs(t, err, failure.ForbiddenError)
	})
}

func TestInspection_SettlePenalty(t *testing.T) {
	tests := []struct {
		name     string
		actor    permissions.Actor
		settle   func(svc service.Inspection, ctx context.Context) error
		found    bModel.Booking
		wantCode int
	}{
		{
			name:   "owner pays",
			actor:  customer,
			settle: func(svc service.Inspection, ctx context.Context) error { return svc.PayPenalty(ctx, "insp-1") },
			found:  booking(bModel.StatusReturned, bModel.PenaltyPending),
		},
		{
			name:   "staff marks paid",
			actor:  staff,
			settle: func(svc service.Inspection, ctx context.Context) error { return svc.MarkPenaltyPaid(ctx, "insp-1") },
			found:  booking(bModel.StatusReturned, bModel.PenaltyPending),
		},
		{
			name:     "admin cannot pay on behalf of the customer",
			actor:    admin,
			settle:   func(svc service.Inspection, ctx context.Context) error { return svc.PayPenalty(ctx, "insp-1") },
			found:    booking(bModel.StatusReturned, bModel.PenaltyPending),
			wantCode: http.StatusForbidden,
		},
		{
			name:     "customer cannot mark paid",
			actor:    customer,
			settle:   func(svc service.Inspection, ctx context.Context) error { return svc.MarkPenaltyPaid(ctx, "insp-1") },
			found:    booking(bModel.StatusReturned, bModel.PenaltyPending),
			wantCode: http.StatusForbidden,
		},
		{
			name:     "stranger cannot pay",
			actor:    stranger,
			settle:   func(svc service.Inspection, ctx context.Context) error { return svc.PayPenalty(ctx, "insp-1") },
			found:    booking(bModel.StatusReturned, bModel.PenaltyPending),
			wantCode: http.StatusForbidden,
		},
		{
			name:     "nothing pending",
			actor:    customer,
			settle:   func(svc service.Inspection, ctx context.Context) error { return svc.PayPenalty(ctx, "insp-1") },
			found:    booking(bModel.StatusCompleted, bModel.PenaltyPaid),
			wantCode: http.StatusConflict,
		},
		{
			name:     "missing booking",
			actor:    admin,
			settle:   func(svc service.Inspection, ctx context.Context) error { return svc.MarkPenaltyPaid(ctx, "insp-1") },
			found:    bModel.Booking{},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := newService(t)

			d.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(inspection(model.TypePostRental, model.StatusReviewed), nil)
			d.bookings.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.found, nil)

			if tt.wantCode == 0 {
				d.bookings.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, bModel.StatusCompleted, fields[bModel.FieldStatus])
						assert.Equal(t, bModel.PenaltyPaid, fields[bModel.FieldPenaltyStatus])

						return nil
					})
				d.inventory.EXPECT().ReleaseTx(gomock.Any(), gomock.Any(), bikeRef).Return(nil)
				d.expectPublish(t, bModel.StatusReturned, func(b bModel.Booking) {
					assert.Equal(t, bModel.StatusCompleted, b.Status)
					assert.Equal(t, bModel.PenaltyPaid, b.PenaltyStatus)
				})
			}

			err := tt.settle(svc, asActor(tt.actor))

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)

			d.wait(t)
		})
	}
}

func TestInspection_SettlePenalty_MissingReport(t *testing.T) {
	svc, d := newService(t)

	d.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Inspection{}, nil)

	err := svc.PayPenalty(asActor(customer), "missing")

	assert.ErrorIs(t, err, model.ErrInspectionNotFound)
}

func TestInspection_SettlePenalty_ReleaseFails(t *testing.T) {
	svc, d := newService(t)

	d.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(inspection(model.TypePostRental, model.StatusReviewed), nil)
	d.bookings.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booking(bModel.StatusReturned, bModel.PenaltyPending), nil)
	d.bookings.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	d.inventory.EXPECT().ReleaseTx(gomock.Any(), gomock.Any(), bikeRef).Return(errors.New("connection reset"))

	err := svc.PayPenalty(asActor(customer), "insp-1")

	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
}

func TestInspection_UploadPhoto(t *testing.T) {
	t.Run("staff uploads", func(t *testing.T) {
		svc, d := newService(t)

		d.s3.EXPECT().UploadFile(gomock.Any(), model.EntityName, gomock.Any(), gomock.Any(), gomock.Any()).
			Return("https://cdn.example.com/inspection/abc.png", nil)

		res, err := svc.UploadPhoto(asActor(staff), dto.UploadPhotoRequest{Photo: photoHeader()})

		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/inspection/abc.png", res.URL)
	})

	t.Run("customer cannot upload", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.UploadPhoto(asActor(customer), dto.UploadPhotoRequest{Photo: photoHeader()})

		assert.ErrorIs(t, err, failure.ForbiddenError)
	})
}

func photoHeader() *multipart.FileHeader {
	return &multipart.FileHeader{Filename: "main.PNG", Size: 1024}
}

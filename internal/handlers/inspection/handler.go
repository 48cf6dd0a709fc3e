package inspection

import (
	"net/http"
	"rental/infras/otel"
	"rental/internal/domains/inspection/model/dto"
	"rental/internal/domains/inspection/service"
	"rental/shared/constant"
	"rental/shared/failure"
	"rental/shared/validator"
	"rental/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const formPhoto = "photo"

type Handler struct {
	service service.Inspection
	otel    otel.Otel
}

func New(service service.Inspection, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/damage-reports", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateDamageReport)
		routerGroup.Post("/photos", handler.UploadPhoto)
		routerGroup.Get("/{id}", handler.GetDamageReportByID)
		routerGroup.Patch("/{id}/analysis", handler.AnalyzeDamageReport)
		routerGroup.Patch("/{id}/review", handler.ReviewDamageReport)
		routerGroup.Patch("/{id}/pay-penalty", handler.PayPenalty)
		routerGroup.Patch("/{id}/admin-mark-paid", handler.MarkPenaltyPaid)
	})
}

// CreateDamageReport files a pre or post rental inspection.
// @Summary Create a damage report
// @Description Admin only. Exactly one photo with angle "main". A booking holds at most one report per type.
// @Tags Damage Report
// @Accept json
// @Produce json
// @Param request body dto.CreateInspectionRequest true "Create Damage Report Request"
// @Success 201 {object} response.Data[dto.InspectionResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/damage-reports [post]
// @Security BearerAuth
func (handler *Handler) CreateDamageReport(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateDamageReport")
	defer scope.End()

	req := dto.CreateInspectionRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	report, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create damage report")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Damage report created " + report.ID)

	response.WithJSON(w, http.StatusCreated, report)
}

// UploadPhoto stores an inspection photo and returns its public URL.
// @Summary Upload an inspection photo
// @Tags Damage Report
// @Accept multipart/form-data
// @Produce json
// @Param photo formData file true "Inspection photo"
// @Success 201 {object} response.Data[dto.PhotoResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/damage-reports/photos [post]
// @Security BearerAuth
func (handler *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadPhoto")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, failure.BadRequest(err))

		return
	}

	req := dto.UploadPhotoRequest{}

	file, fileHeader, err := r.FormFile(formPhoto)
	if err == nil {
		req.Photo = fileHeader
		req.PhotoFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	photo, err := handler.service.UploadPhoto(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload inspection photo")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, photo)
}

// GetDamageReportByID retrieves a damage report.
// @Summary Get a damage report by ID
// @Description The booking owner, staff and admins may read a report.
// @Tags Damage Report
// @Produce json
// @Param id path string true "Damage report ID"
// @Success 200 {object} response.Data[dto.InspectionResponse]
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/damage-reports/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetDamageReportByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDamageReportByID")
	defer scope.End()

	report, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get damage report")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, report)
}

// AnalyzeDamageReport records the detected damages of a pending report.
// @Summary Analyze a damage report
// @Tags Damage Report
// @Accept json
// @Produce json
// @Param id path string true "Damage report ID"
// @Param request body dto.AnalysisRequest true "Analysis"
// @Success 200 {object} response.Data[dto.InspectionResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/damage-reports/{id}/analysis [patch]
// @Security BearerAuth
func (handler *Handler) AnalyzeDamageReport(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AnalyzeDamageReport")
	defer scope.End()

	req := dto.AnalysisRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	report, err := handler.service.Analyze(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to analyze damage report")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, report)
}

// ReviewDamageReport closes a damage report.
// @Summary Review a damage report
// @Description Admin only. A post-rental review with a repair cost raises a pending penalty and marks the booking returned; without cost the booking completes.
// @Tags Damage Report
// @Accept json
// @Produce json
// @Param id path string true "Damage report ID"
// @Param request body dto.ReviewRequest true "Review"
// @Success 200 {object} response.Data[dto.InspectionResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/damage-reports/{id}/review [patch]
// @Security BearerAuth
func (handler *Handler) ReviewDamageReport(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReviewDamageReport")
	defer scope.End()

	req := dto.ReviewRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	report, err := handler.service.Review(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to review damage report")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Damage report " + report.ID + " reviewed by user " + user)

	response.WithJSON(w, http.StatusOK, report)
}

// PayPenalty settles the caller's pending penalty.
// @Summary Pay a penalty
// @Description Booking owner only. Completes the booking and frees the vehicle.
// @Tags Damage Report
// @Produce json
// @Param id path string true "Damage report ID"
// @Success 200 {object} response.Message
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/damage-reports/{id}/pay-penalty [patch]
// @Security BearerAuth
func (handler *Handler) PayPenalty(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PayPenalty")
	defer scope.End()

	if err := handler.service.PayPenalty(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to pay penalty")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Penalty paid successfully")
}

// MarkPenaltyPaid settles a pending penalty on behalf of the customer.
// @Summary Mark a penalty as paid
// @Description Admin and staff only.
// @Tags Damage Report
// @Produce json
// @Param id path string true "Damage report ID"
// @Success 200 {object} response.Message
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/damage-reports/{id}/admin-mark-paid [patch]
// @Security BearerAuth
func (handler *Handler) MarkPenaltyPaid(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MarkPenaltyPaid")
	defer scope.End()

	if err := handler.service.MarkPenaltyPaid(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to mark penalty paid")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Penalty marked paid by user " + user)

	response.WithMessage(w, http.StatusOK, "Penalty marked as paid")
}

package bike

import (
	"net/http"
	"rental/infras/otel"
	"rental/internal/domains/bike/model"
	"rental/internal/domains/bike/model/dto"
	"rental/internal/domains/bike/service"
	vModel "rental/internal/domains/vehicle/model"
	"rental/shared"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	"rental/shared/failure"
	"rental/shared/validator"
	"rental/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	formName         = "name"
	formBikeType     = "bike_type"
	formHourlyRate   = "hourly_rate"
	formSeatCount    = "seat_count"
	formKmLimit      = "km_limit"
	formFuelIncluded = "fuel_included"
	formImage        = "image"
	formImageURL     = "image_url"
	formAvailability = "availability"
)

type Handler struct {
	service service.Bike
	otel    otel.Otel
}

func New(service service.Bike, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bikes", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBike)
		routerGroup.Get("/", handler.GetBikes)
		routerGroup.Get("/{id}", handler.GetBikeByID)
		routerGroup.Patch("/{id}", handler.UpdateBike)
		routerGroup.Delete("/{id}", handler.DeleteBike)
	})
}

func intField(r *http.Request, name string) (*int, error) {
	value := r.FormValue(name)
	if value == "" {
		return nil, nil
	}

	parsed, err := shared.ConvertStringToInt(value)
	if err != nil {
		return nil, failure.BadRequestFromString(name + " must be an integer")
	}

	return &parsed, nil
}

func hourlyRate(r *http.Request) (*float64, error) {
	value := r.FormValue(formHourlyRate)
	if value == "" {
		return nil, nil
	}

	parsed, err := shared.ConvertStringToFloat(value)
	if err != nil {
		return nil, failure.BadRequestFromString(formHourlyRate + " must be a number")
	}

	return &parsed, nil
}

// CreateBike handles the creation of a new bike.
// @Summary Create a new bike
// @Description Seat count defaults to 2 and the kilometer limit to 100.
// @Tags Bike
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Bike name"
// @Param bike_type formData string true "Bike type"
// @Param hourly_rate formData number true "Hourly rate"
// @Param seat_count formData integer false "Seat count"
// @Param km_limit formData integer false "Kilometer limit"
// @Param fuel_included formData boolean false "Fuel included"
// @Param image formData file false "Bike image"
// @Param image_url formData string false "Bike image URL"
// @Success 201 {object} response.Data[dto.BikeResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bikes [post]
// @Security BearerAuth
func (handler *Handler) CreateBike(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBike")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, failure.BadRequest(err))

		return
	}

	req := dto.CreateBikeRequest{
		Name:     r.FormValue(formName),
		BikeType: r.FormValue(formBikeType),
		ImageURL: r.FormValue(formImageURL),
	}

	rate, err := hourlyRate(r)
	if err == nil && rate != nil {
		req.HourlyRate = *rate
	}

	if err == nil {
		req.SeatCount, err = intField(r, formSeatCount)
	}

	if err == nil {
		req.KmLimit, err = intField(r, formKmLimit)
	}

	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	if fuelIncluded := shared.ConvertStringToBool(r.FormValue(formFuelIncluded)); fuelIncluded != nil {
		req.FuelIncluded = *fuelIncluded
	}

	file, fileHeader, err := r.FormFile(formImage)
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	bike, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create bike")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, bike)
}

// GetBikes lists bikes.
// @Summary Get all bikes
// @Tags Bike
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param bike_type query string false "Filter by bike type"
// @Param availability query boolean false "Filter by availability"
// @Success 200 {object} response.Data[dto.GetBikesResponse]
// @Failure 500 {object} response.Error
// @Router /v1/bikes [get]
func (handler *Handler) GetBikes(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBikes")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldName,
				Operator: gDto.FilterOperatorLike,
				Value:    query.Get(model.FieldName),
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldBikeType,
				Operator: gDto.FilterOperatorLike,
				Value:    query.Get(model.FieldBikeType),
				Table:    model.TableName,
			},
		},
	}

	if availability := shared.ConvertStringToBool(query.Get(model.FieldAvailability)); availability != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldAvailability,
			Operator: gDto.FilterOperatorEq,
			Value:    *availability,
			Table:    model.TableName,
		})
	}

	bikes, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bikes")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bikes)
}

// GetBikeByID retrieves a bike by its ID.
// @Summary Get a bike by ID
// @Tags Bike
// @Produce json
// @Param id path string true "Bike ID"
// @Success 200 {object} response.Data[dto.BikeResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bikes/{id} [get]
func (handler *Handler) GetBikeByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBikeByID")
	defer scope.End()

	bike, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bike by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bike)
}

// UpdateBike updates an existing bike by its ID.
// @Summary Update a bike by ID
// @Tags Bike
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Bike ID"
// @Param name formData string false "Bike name"
// @Param bike_type formData string false "Bike type"
// @Param hourly_rate formData number false "Hourly rate"
// @Param seat_count formData integer false "Seat count"
// @Param km_limit formData integer false "Kilometer limit"
// @Param fuel_included formData boolean false "Fuel included"
// @Param image formData file false "Bike image"
// @Param image_url formData string false "Bike image URL"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bikes/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateBike(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBike")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, failure.BadRequest(err))

		return
	}

	if r.FormValue(formAvailability) != "" {
		scope.TraceError(vModel.ErrAvailabilityManaged)
		response.WithError(w, vModel.ErrAvailabilityManaged)

		return
	}

	req := dto.UpdateBikeRequest{
		Name:         r.FormValue(formName),
		BikeType:     r.FormValue(formBikeType),
		FuelIncluded: shared.ConvertStringToBool(r.FormValue(formFuelIncluded)),
		ImageURL:     r.FormValue(formImageURL),
	}

	var err error

	req.HourlyRate, err = hourlyRate(r)
	if err == nil {
		req.SeatCount, err = intField(r, formSeatCount)
	}

	if err == nil {
		req.KmLimit, err = intField(r, formKmLimit)
	}

	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	file, fileHeader, err := r.FormFile(formImage)
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update bike")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Bike updated successfully")
}

// DeleteBike deletes a bike by its ID.
// @Summary Delete a bike by ID
// @Description A bike that is currently booked cannot be deleted.
// @Tags Bike
// @Produce json
// @Param id path string true "Bike ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bikes/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBike(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBike")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete bike")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Bike deleted successfully")
}

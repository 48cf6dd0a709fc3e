package car

import (
	"net/http"
	"rental/infras/otel"
	"rental/internal/domains/car/model"
	"rental/internal/domains/car/model/dto"
	"rental/internal/domains/car/service"
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
	formPricePerDay  = "price_per_day"
	formKmLimit      = "km_limit"
	formSeats        = "seats"
	formFuel         = "fuel"
	formTransmission = "transmission"
	formCarType      = "car_type"
	formAC           = "ac"
	formImage        = "image"
	formImageURL     = "image_url"
	formAvailability = "availability"
)

type Handler struct {
	service service.Car
	otel    otel.Otel
}

func New(service service.Car, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/cars", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateCar)
		routerGroup.Get("/", handler.GetCars)
		routerGroup.Get("/{id}", handler.GetCarByID)
		routerGroup.Patch("/{id}", handler.UpdateCar)
		routerGroup.Delete("/{id}", handler.DeleteCar)
	})
}

// numbers reads the optional numeric form fields. A malformed value is a 400.
func numbers(r *http.Request) (price *float64, kmLimit, seats *int, err error) {
	if value := r.FormValue(formPricePerDay); value != "" {
		parsed, err := shared.ConvertStringToFloat(value)
		if err != nil {
			return nil, nil, nil, failure.BadRequestFromString("price_per_day must be a number")
		}

		price = &parsed
	}

	if value := r.FormValue(formKmLimit); value != "" {
		parsed, err := shared.ConvertStringToInt(value)
		if err != nil {
			return nil, nil, nil, failure.BadRequestFromString("km_limit must be an integer")
		}

		kmLimit = &parsed
	}

	if value := r.FormValue(formSeats); value != "" {
		parsed, err := shared.ConvertStringToInt(value)
		if err != nil {
			return nil, nil, nil, failure.BadRequestFromString("seats must be an integer")
		}

		seats = &parsed
	}

	return price, kmLimit, seats, nil
}

// CreateCar handles the creation of a new car.
// @Summary Create a new car
// @Description Create a car with the provided details. The image can be uploaded or given as a URL.
// @Tags Car
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Car name"
// @Param price_per_day formData number true "Price per day"
// @Param km_limit formData integer false "Kilometer limit"
// @Param seats formData integer true "Seats"
// @Param fuel formData string true "Fuel"
// @Param transmission formData string true "Transmission"
// @Param car_type formData string true "Car type"
// @Param ac formData boolean false "Air conditioning"
// @Param image formData file false "Car image"
// @Param image_url formData string false "Car image URL"
// @Success 201 {object} response.Data[dto.CarResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/cars [post]
// @Security BearerAuth
func (handler *Handler) CreateCar(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateCar")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, failure.BadRequest(err))

		return
	}

	price, kmLimit, seats, err := numbers(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	req := dto.CreateCarRequest{
		Name:         r.FormValue(formName),
		Fuel:         r.FormValue(formFuel),
		Transmission: r.FormValue(formTransmission),
		CarType:      r.FormValue(formCarType),
		AC:           shared.ConvertStringToBool(r.FormValue(formAC)),
		ImageURL:     r.FormValue(formImageURL),
	}

	if price != nil {
		req.PricePerDay = *price
	}

	if kmLimit != nil {
		req.KmLimit = *kmLimit
	}

	if seats != nil {
		req.Seats = *seats
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

	car, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create car")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Car created " + car.ID)

	response.WithJSON(w, http.StatusCreated, car)
}

// GetCars lists cars.
// @Summary Get all cars
// @Description Retrieve cars with optional filtering and pagination.
// @Tags Car
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param car_type query string false "Filter by car type"
// @Param availability query boolean false "Filter by availability"
// @Param min_price query number false "Minimum price per day"
// @Param max_price query number false "Maximum price per day"
// @Param min_seats query integer false "Minimum number of seats"
// @Success 200 {object} response.Data[dto.GetCarsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/cars [get]
func (handler *Handler) GetCars(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCars")
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
				Field:    model.FieldCarType,
				Operator: gDto.FilterOperatorLike,
				Value:    query.Get(model.FieldCarType),
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

	filterGroup.Filters = append(filterGroup.Filters, gDto.RangeFilters(
		model.TableName, model.FieldPricePerDay,
		query.Get(constant.RequestParamMinPrice), query.Get(constant.RequestParamMaxPrice),
	)...)
	filterGroup.Filters = append(filterGroup.Filters, gDto.RangeFilters(
		model.TableName, model.FieldSeats, query.Get(constant.RequestParamMinSeats), "",
	)...)

	cars, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get cars")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, cars)
}

// GetCarByID retrieves a car by its ID.
// @Summary Get a car by ID
// @Tags Car
// @Produce json
// @Param id path string true "Car ID"
// @Success 200 {object} response.Data[dto.CarResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/cars/{id} [get]
func (handler *Handler) GetCarByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCarByID")
	defer scope.End()

	car, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get car by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, car)
}

// UpdateCar updates an existing car by its ID.
// @Summary Update a car by ID
// @Tags Car
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Car ID"
// @Param name formData string false "Car name"
// @Param price_per_day formData number false "Price per day"
// @Param km_limit formData integer false "Kilometer limit"
// @Param seats formData integer false "Seats"
// @Param fuel formData string false "Fuel"
// @Param transmission formData string false "Transmission"
// @Param car_type formData string false "Car type"
// @Param ac formData boolean false "Air conditioning"
// @Param image formData file false "Car image"
// @Param image_url formData string false "Car image URL"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/cars/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateCar(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateCar")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

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

	price, kmLimit, seats, err := numbers(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	req := dto.UpdateCarRequest{
		Name:         r.FormValue(formName),
		PricePerDay:  price,
		KmLimit:      kmLimit,
		Seats:        seats,
		Fuel:         r.FormValue(formFuel),
		Transmission: r.FormValue(formTransmission),
		CarType:      r.FormValue(formCarType),
		AC:           shared.ConvertStringToBool(r.FormValue(formAC)),
		ImageURL:     r.FormValue(formImageURL),
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

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update car")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Car updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Car updated successfully")
}

// DeleteCar deletes a car by its ID.
// @Summary Delete a car by ID
// @Description A car that is currently booked cannot be deleted.
// @Tags Car
// @Produce json
// @Param id path string true "Car ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/cars/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteCar(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteCar")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete car")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Car deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Car deleted successfully")
}

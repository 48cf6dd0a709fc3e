package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"mime/multipart"

	"rental/config"
	"rental/infras/otel"
	"rental/infras/s3"
	"rental/internal/domains/car/model"
	"rental/internal/domains/car/model/dto"
	"rental/internal/domains/car/repository"
	vModel "rental/internal/domains/vehicle/model"
	vService "rental/internal/domains/vehicle/service"
	"rental/shared"
	"rental/shared/cache"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	"rental/shared/failure"

	"github.com/rs/zerolog/log"
)

var (
	cacheGetCar    = vModel.TypeCar.CacheKey(vModel.CacheOpGet)
	cacheGetAllCar = vModel.TypeCar.CacheKey(vModel.CacheOpGetAll)
	cacheCountCar  = vModel.TypeCar.CacheKey(vModel.CacheOpCount)

	errCarNotFound = failure.NotFound("car not found")
	errCarBooked   = failure.Conflict("car is currently booked")
)

type Car interface {
	Create(ctx context.Context, req dto.CreateCarRequest) (dto.CarResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetCarsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.CarResponse, error)
	Update(ctx context.Context, req dto.UpdateCarRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo      repository.Car
	inventory vService.Inventory
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	s3        s3.S3
}

func New(repo repository.Car, inventory vService.Inventory, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Car {
	return &serviceImpl{
		repo:      repo,
		inventory: inventory,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		s3:        s3,
	}
}

func (s *serviceImpl) uploadImage(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error) {
	url, err := s.s3.UploadFile(ctx, model.EntityName, file, header, s3.ObjectName(header))
	if err != nil {
		log.Error().Err(err).Msg("failed to upload car image")

		return constant.Empty, fmt.Errorf("failed to upload image: %w", err)
	}

	return url, nil
}

func (s *serviceImpl) deleteImage(ctx context.Context, url string) {
	if url == constant.Empty {
		return
	}

	if err := s.s3.DeleteFile(ctx, url); err != nil {
		log.Error().Err(err).Str("url", url).Msg("failed to delete car image")
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateCarRequest) (res dto.CarResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	imageURL := req.ImageURL
	uploadedURL := constant.Empty

	if req.Image != nil {
		if uploadedURL, err = s.uploadImage(ctx, req.ImageFile, req.Image); err != nil {
			return res, err
		}

		imageURL = uploadedURL
	}

	car := req.ToModel(user, imageURL)

	if err = s.repo.Insert(ctx, car); err != nil {
		log.Error().Err(err).Msg("failed to insert car")

		s.deleteImage(ctx, uploadedURL)

		return res, fmt.Errorf("failed to create car: %w", err)
	}

	res.FromModel(car)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllCar)
		shared.InvalidateCaches(c, s.cache, cacheCountCar)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetCarsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllCar, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for cars")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get cars")

		return res, fmt.Errorf("failed to get cars: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save cars to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountCar, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count cars")

		return res, fmt.Errorf("failed to count cars: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save car count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.CarResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetCar, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for car")

		return res, nil
	}

	car, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(car)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save car to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Car, error) {
	car, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get car")

		return car, fmt.Errorf("failed to get car: %w", err)
	}

	if car.ID == constant.Empty {
		return car, errCarNotFound
	}

	return car, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateCarRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	uploadedURL := constant.Empty
	if req.Image != nil {
		if uploadedURL, err = s.uploadImage(ctx, req.ImageFile, req.Image); err != nil {
			return err
		}
	}

	updatedFields := shared.TransformFields(req, user)
	if uploadedURL != constant.Empty {
		updatedFields[model.FieldImage] = uploadedURL
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update car")

		s.deleteImage(ctx, uploadedURL)

		return fmt.Errorf("failed to update car: %w", err)
	}

	if newImage, ok := updatedFields[model.FieldImage]; ok && newImage != current.Image {
		s.deleteImage(ctx, current.Image)
	}

	go s.inventory.Invalidate(context.WithoutCancel(ctx), current.Vehicle().Ref)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	car, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	deleted, err := s.repo.DeleteAvailable(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to delete car")

		return fmt.Errorf("failed to delete car: %w", err)
	}

	if !deleted {
		return errCarBooked
	}

	s.deleteImage(ctx, car.Image)

	go s.inventory.Invalidate(context.WithoutCancel(ctx), car.Vehicle().Ref)

	return nil
}

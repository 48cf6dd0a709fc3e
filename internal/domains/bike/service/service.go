package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"mime/multipart"

	"rental/config"
	"rental/infras/otel"
	"rental/infras/s3"
	"rental/internal/domains/bike/model"
	"rental/internal/domains/bike/model/dto"
	"rental/internal/domains/bike/repository"
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
	cacheGetBike    = vModel.TypeBike.CacheKey(vModel.CacheOpGet)
	cacheGetAllBike = vModel.TypeBike.CacheKey(vModel.CacheOpGetAll)
	cacheCountBike  = vModel.TypeBike.CacheKey(vModel.CacheOpCount)

	errBikeNotFound = failure.NotFound("bike not found")
	errBikeBooked   = failure.Conflict("bike is currently booked")
)

type Bike interface {
	Create(ctx context.Context, req dto.CreateBikeRequest) (dto.BikeResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBikesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BikeResponse, error)
	Update(ctx context.Context, req dto.UpdateBikeRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo      repository.Bike
	inventory vService.Inventory
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	s3        s3.S3
}

func New(repo repository.Bike, inventory vService.Inventory, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Bike {
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
		log.Error().Err(err).Msg("failed to upload bike image")

		return constant.Empty, fmt.Errorf("failed to upload image: %w", err)
	}

	return url, nil
}

func (s *serviceImpl) deleteImage(ctx context.Context, url string) {
	if url == constant.Empty {
		return
	}

	if err := s.s3.DeleteFile(ctx, url); err != nil {
		log.Error().Err(err).Str("url", url).Msg("failed to delete bike image")
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBikeRequest) (res dto.BikeResponse, err error) {
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

	bike := req.ToModel(user, imageURL)

	if err = s.repo.Insert(ctx, bike); err != nil {
		log.Error().Err(err).Msg("failed to insert bike")

		s.deleteImage(ctx, uploadedURL)

		return res, fmt.Errorf("failed to create bike: %w", err)
	}

	res.FromModel(bike)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBike)
		shared.InvalidateCaches(c, s.cache, cacheCountBike)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBikesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBike, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bikes")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bikes")

		return res, fmt.Errorf("failed to get bikes: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bikes to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBike, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bikes")

		return res, fmt.Errorf("failed to count bikes: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bike count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BikeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBike, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bike")

		return res, nil
	}

	bike, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(bike)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bike to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Bike, error) {
	bike, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get bike")

		return bike, fmt.Errorf("failed to get bike: %w", err)
	}

	if bike.ID == constant.Empty {
		return bike, errBikeNotFound
	}

	return bike, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBikeRequest, id string) (err error) {
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
		updatedFields[model.FieldImageURL] = uploadedURL
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update bike")

		s.deleteImage(ctx, uploadedURL)

		return fmt.Errorf("failed to update bike: %w", err)
	}

	if newImage, ok := updatedFields[model.FieldImageURL]; ok && newImage != current.ImageURL {
		s.deleteImage(ctx, current.ImageURL)
	}

	go s.inventory.Invalidate(context.WithoutCancel(ctx), current.Vehicle().Ref)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	bike, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	deleted, err := s.repo.DeleteAvailable(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to delete bike")

		return fmt.Errorf("failed to delete bike: %w", err)
	}

	if !deleted {
		return errBikeBooked
	}

	s.deleteImage(ctx, bike.ImageURL)

	go s.inventory.Invalidate(context.WithoutCancel(ctx), bike.Vehicle().Ref)

	return nil
}

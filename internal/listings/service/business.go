package service

import (
	"context"
	"errors"
	"sync"

	listingserrors "tourism/internal/listings/errors"
	"tourism/internal/listings/repository"
	"tourism/internal/listings/validator"
	"tourism/pkg/config"
	apperrors "tourism/pkg/errors"
	"tourism/pkg/model"
	"tourism/pkg/sanitizer"
	"tourism/pkg/tracing"
	"tourism/pkg/validation"
)

type BusinessService interface {
	Create(ctx context.Context, actor model.Actor, business *model.Business) error
	GetByID(ctx context.Context, id string) (*model.Business, error)
	GetAll(ctx context.Context, filter model.ListingFilter, limit int, offset int64) ([]*model.Business, int64, error)
	Update(ctx context.Context, actor model.Actor, id string, updates *model.BusinessUpdate) (*model.Business, error)
}

type businessService struct {
	repo      repository.BusinessRepository
	validator *validator.ListingValidator
	cfg       *config.Config
}

func NewBusinessService(
	repo repository.BusinessRepository,
	validator *validator.ListingValidator,
	cfg *config.Config,
) BusinessService {
	return &businessService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *businessService) Create(ctx context.Context, actor model.Actor, business *model.Business) (err error) {
	ctx, span := tracer.Start(ctx, "BusinessService.Create")
	defer func() { tracing.End(span, err) }()

	if !actor.Is(model.RoleBusinessOwner) {
		return apperrors.Forbidden("Only business owners can create a business")
	}

	business.ID = ""
	business.OwnerID = actor.ID
	business.AverageRating = 0
	business.RatingCount = 0
	s.sanitize(business)

	if err := s.validator.ValidateBusiness(business); err != nil {
		s.cfg.Log.Warn("Business validation failed",
			"owner_id", business.OwnerID,
			"error", err,
		)
		return validation.ToAppError("Business validation failed", err)
	}

	if err := s.repo.Create(ctx, business); err != nil {
		s.cfg.Log.Error("Failed to create business",
			"owner_id", business.OwnerID,
			"error", err,
		)
		return apperrors.Internal("Failed to create business", err)
	}

	s.cfg.Log.Info("Business created successfully",
		"id", business.ID,
		"owner_id", business.OwnerID,
		"category", business.Category,
	)
	return nil
}

func (s *businessService) GetByID(ctx context.Context, id string) (*model.Business, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Business ID cannot be empty")
	}
	business, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "Failed to retrieve business")
	}
	return business, nil
}

func (s *businessService) GetAll(ctx context.Context, filter model.ListingFilter, limit int, offset int64) ([]*model.Business, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)
	filter.City = sanitizer.NormalizeCity(filter.City)
	filter.Category = sanitizer.NormalizeTag(filter.Category)

	var count int64
	var businesses []*model.Business
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.Count(ctx, filter)
		if err != nil {
			s.cfg.Log.Error("Failed to count businesses", "error", err)
			errCount = apperrors.Internal("Failed to count businesses", err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		businesses, err = s.repo.FindAll(ctx, filter, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to list businesses", "error", err)
			errFind = apperrors.Internal("Failed to retrieve businesses", err)
		}
	}()
	wg.Wait()

	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}
	return businesses, count, nil
}

func (s *businessService) Update(ctx context.Context, actor model.Actor, id string, updates *model.BusinessUpdate) (*model.Business, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.OwnerID != actor.ID && !actor.IsAdmin() {
		return nil, apperrors.Forbidden("Only the owner or an admin can update this business")
	}

	sanitizer.NormalizeStringPtr(updates.Name, sanitizer.NormalizeName)
	sanitizer.NormalizeStringPtr(updates.Description, sanitizer.NormalizeText)
	sanitizer.NormalizeStringPtr(updates.Category, sanitizer.NormalizeTag)
	sanitizer.NormalizeStringPtr(updates.City, sanitizer.NormalizeCity)
	sanitizer.NormalizeStringPtr(updates.Address, sanitizer.TrimAndNormalize)
	sanitizer.NormalizeStringPtr(updates.Phone, sanitizer.NormalizePhone)

	merged := *existing
	if updates.Name != nil {
		merged.Name = *updates.Name
	}
	if updates.Description != nil {
		merged.Description = *updates.Description
	}
	if updates.Category != nil {
		merged.Category = *updates.Category
	}
	if updates.City != nil {
		merged.City = *updates.City
	}
	if updates.Address != nil {
		merged.Address = *updates.Address
	}
	if updates.Phone != nil {
		merged.Phone = *updates.Phone
	}

	if err := s.validator.ValidateBusiness(&merged); err != nil {
		s.cfg.Log.Warn("Business validation failed", "id", id, "error", err)
		return nil, validation.ToAppError("Business validation failed", err)
	}

	if err := s.repo.Update(ctx, id, &merged); err != nil {
		return nil, s.mapRepoError(err, id, "Failed to update business")
	}

	s.cfg.Log.Info("Business updated successfully", "id", id)
	return &merged, nil
}

func (s *businessService) sanitize(b *model.Business) {
	b.Name = sanitizer.NormalizeName(b.Name)
	b.Description = sanitizer.NormalizeText(b.Description)
	b.Category = sanitizer.NormalizeTag(b.Category)
	b.City = sanitizer.NormalizeCity(b.City)
	b.Address = sanitizer.TrimAndNormalize(b.Address)
	b.Phone = sanitizer.NormalizePhone(b.Phone)
}

func (s *businessService) mapRepoError(err error, id, message string) error {
	switch {
	case errors.Is(err, listingserrors.ErrBusinessNotFound):
		return apperrors.NotFoundWithID("Business", id)
	case errors.Is(err, listingserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid business ID format")
	}
	s.cfg.Log.Error(message, "id", id, "error", err)
	return apperrors.Internal(message, err)
}

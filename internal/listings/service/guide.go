package service

import (
	"context"
	"errors"
	"sync"
	"time"

	listingserrors "tourism/internal/listings/errors"
	"tourism/internal/listings/repository"
	"tourism/internal/listings/validator"
	"tourism/pkg/config"
	mongotx "tourism/pkg/db/mongo"
	apperrors "tourism/pkg/errors"
	"tourism/pkg/model"
	"tourism/pkg/sanitizer"
	"tourism/pkg/tracing"
	"tourism/pkg/validation"
)

var tracer = tracing.Tracer("tourism/internal/listings/service")

type GuideService interface {
	Create(ctx context.Context, actor model.Actor, guide *model.Guide) error
	GetByID(ctx context.Context, actor model.Actor, id string) (*model.Guide, error)
	GetAll(ctx context.Context, actor model.Actor, filter model.ListingFilter, limit int, offset int64) ([]*model.Guide, int64, error)
	Update(ctx context.Context, actor model.Actor, id string, updates *model.GuideUpdate) (*model.Guide, error)
	SetFlags(ctx context.Context, actor model.Actor, id string, flags *model.GuideFlags) (*model.Guide, error)
	Delete(ctx context.Context, actor model.Actor, id string) error
}

type guideService struct {
	repo      repository.GuideRepository
	validator *validator.ListingValidator
	cfg       *config.Config
	now       func() time.Time
}

func NewGuideService(
	repo repository.GuideRepository,
	validator *validator.ListingValidator,
	cfg *config.Config,
) GuideService {
	return &guideService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *guideService) Create(ctx context.Context, actor model.Actor, guide *model.Guide) (err error) {
	ctx, span := tracer.Start(ctx, "GuideService.Create")
	defer func() { tracing.End(span, err) }()

	if !actor.Is(model.RoleGuide) {
		return apperrors.Forbidden("Only guides can create a guide profile")
	}

	guide.ID = ""
	guide.UserID = actor.ID
	s.applyDefaultsForNewGuide(guide)
	s.sanitize(guide)

	if err := s.validator.ValidateGuide(guide); err != nil {
		s.cfg.Log.Warn("Guide validation failed",
			"user_id", guide.UserID,
			"error", err,
		)
		return validation.ToAppError("Guide validation failed", err)
	}

	err = s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByUserID(txCtx, guide.UserID)
		if err != nil && !errors.Is(err, listingserrors.ErrGuideNotFound) {
			return apperrors.Internal("Failed to check for existing guide profile", err)
		}
		if existing != nil {
			return apperrors.Conflict("A guide profile already exists for this user").
				WithDetails(map[string]any{"id": existing.ID})
		}

		if err := s.repo.Create(txCtx, guide); err != nil {
			if mongotx.IsDuplicateKey(err) {
				return apperrors.Conflict("A guide profile already exists for this user")
			}
			return apperrors.Internal("Failed to create guide", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create guide",
			"user_id", guide.UserID,
			"error", err,
		)
		return err
	}

	s.cfg.Log.Info("Guide created successfully",
		"id", guide.ID,
		"user_id", guide.UserID,
		"city", guide.City,
	)
	return nil
}

// GetByID hides unapproved profiles from everyone but the owner and admins.
func (s *guideService) GetByID(ctx context.Context, actor model.Actor, id string) (*model.Guide, error) {
	guide, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !guide.IsApproved && guide.UserID != actor.ID && !actor.IsAdmin() {
		return nil, apperrors.NotFoundWithID("Guide", id)
	}
	return guide, nil
}

func (s *guideService) GetAll(ctx context.Context, actor model.Actor, filter model.ListingFilter, limit int, offset int64) ([]*model.Guide, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	if !actor.IsAdmin() {
		filter.IncludeUnapproved = false
	}
	filter.City = sanitizer.NormalizeCity(filter.City)
	filter.Language = sanitizer.NormalizeTag(filter.Language)

	var count int64
	var guides []*model.Guide
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.Count(ctx, filter)
		if err != nil {
			s.cfg.Log.Error("Failed to count guides", "error", err)
			errCount = apperrors.Internal("Failed to count guides", err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		guides, err = s.repo.FindAll(ctx, filter, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to list guides",
				"limit", limit,
				"offset", offset,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to retrieve guides", err)
		}
	}()
	wg.Wait()

	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}
	return guides, count, nil
}

func (s *guideService) Update(ctx context.Context, actor model.Actor, id string, updates *model.GuideUpdate) (guide *model.Guide, err error) {
	ctx, span := tracer.Start(ctx, "GuideService.Update")
	defer func() { tracing.End(span, err) }()

	existing, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.UserID != actor.ID {
		return nil, apperrors.Forbidden("Only the profile owner can update this guide")
	}

	s.sanitizeUpdate(updates)
	merged := mergeGuideUpdates(existing, updates)
	if err := s.validator.ValidateGuide(merged); err != nil {
		s.cfg.Log.Warn("Guide validation failed", "id", id, "error", err)
		return nil, validation.ToAppError("Guide validation failed", err)
	}

	if err := s.repo.Update(ctx, id, merged); err != nil {
		return nil, s.mapRepoError(err, id, "Failed to update guide")
	}

	s.cfg.Log.Info("Guide updated successfully", "id", id)
	return merged, nil
}

func (s *guideService) SetFlags(ctx context.Context, actor model.Actor, id string, flags *model.GuideFlags) (*model.Guide, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.Forbidden("Only admins can change guide approval")
	}
	if flags.IsApproved == nil && flags.IsAvailable == nil {
		return nil, apperrors.InvalidInput("At least one of is_approved or is_available is required")
	}

	if err := s.repo.SetFlags(ctx, id, flags); err != nil {
		return nil, s.mapRepoError(err, id, "Failed to update guide flags")
	}

	s.cfg.Log.Info("Guide flags updated",
		"id", id,
		"admin_id", actor.ID,
	)
	return s.find(ctx, id)
}

func (s *guideService) Delete(ctx context.Context, actor model.Actor, id string) error {
	existing, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != actor.ID && !actor.IsAdmin() {
		return apperrors.Forbidden("Only the profile owner or an admin can delete this guide")
	}

	if err := s.repo.SoftDelete(ctx, id, s.now().UTC()); err != nil {
		return s.mapRepoError(err, id, "Failed to delete guide")
	}

	s.cfg.Log.Info("Guide deleted successfully",
		"id", id,
		"actor_id", actor.ID,
	)
	return nil
}

// find returns a live guide, soft-deleted profiles read as missing.
func (s *guideService) find(ctx context.Context, id string) (*model.Guide, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Guide ID cannot be empty")
	}
	guide, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "Failed to retrieve guide")
	}
	if guide.DeletedAt != nil {
		return nil, apperrors.NotFoundWithID("Guide", id)
	}
	return guide, nil
}

func (s *guideService) mapRepoError(err error, id, message string) error {
	switch {
	case errors.Is(err, listingserrors.ErrGuideNotFound):
		return apperrors.NotFoundWithID("Guide", id)
	case errors.Is(err, listingserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid guide ID format")
	}
	s.cfg.Log.Error(message, "id", id, "error", err)
	return apperrors.Internal(message, err)
}

func (s *guideService) applyDefaultsForNewGuide(g *model.Guide) {
	g.IsApproved = false
	g.IsAvailable = true
	g.AverageRating = 0
	g.RatingCount = 0
	g.DeletedAt = nil
}

func (s *guideService) sanitize(g *model.Guide) {
	g.Name = sanitizer.NormalizeName(g.Name)
	g.Bio = sanitizer.NormalizeText(g.Bio)
	g.City = sanitizer.NormalizeCity(g.City)
	g.Languages = sanitizer.NormalizeLanguages(g.Languages)
	g.Specialties = sanitizer.NormalizeSpecialties(g.Specialties)
	g.Phone = sanitizer.NormalizePhone(g.Phone)
}

func (s *guideService) sanitizeUpdate(u *model.GuideUpdate) {
	sanitizer.NormalizeStringPtr(u.Name, sanitizer.NormalizeName)
	sanitizer.NormalizeStringPtr(u.Bio, sanitizer.NormalizeText)
	sanitizer.NormalizeStringPtr(u.City, sanitizer.NormalizeCity)
	sanitizer.NormalizeStringPtr(u.Phone, sanitizer.NormalizePhone)
	if u.Languages != nil {
		langs := sanitizer.NormalizeLanguages(*u.Languages)
		u.Languages = &langs
	}
	if u.Specialties != nil {
		specs := sanitizer.NormalizeSpecialties(*u.Specialties)
		u.Specialties = &specs
	}
}

func mergeGuideUpdates(existing *model.Guide, u *model.GuideUpdate) *model.Guide {
	merged := *existing
	if u.Name != nil {
		merged.Name = *u.Name
	}
	if u.Bio != nil {
		merged.Bio = *u.Bio
	}
	if u.City != nil {
		merged.City = *u.City
	}
	if u.YearsExperience != nil {
		merged.YearsExperience = *u.YearsExperience
	}
	if u.Languages != nil {
		merged.Languages = *u.Languages
	}
	if u.Specialties != nil {
		merged.Specialties = *u.Specialties
	}
	if u.DailyRate != nil {
		merged.DailyRate = *u.DailyRate
	}
	if u.Phone != nil {
		merged.Phone = *u.Phone
	}
	return &merged
}

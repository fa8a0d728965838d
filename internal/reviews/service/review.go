package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	listingserrors "tourism/internal/listings/errors"
	listingsrepo "tourism/internal/listings/repository"
	reviewserrors "tourism/internal/reviews/errors"
	"tourism/internal/reviews/rating"
	"tourism/internal/reviews/repository"
	"tourism/internal/reviews/validator"
	"tourism/pkg/config"
	apperrors "tourism/pkg/errors"
	"tourism/pkg/events"
	"tourism/pkg/model"
	"tourism/pkg/sanitizer"
	"tourism/pkg/timeslot"
	"tourism/pkg/tracing"
	"tourism/pkg/validation"
)

var tracer = tracing.Tracer("tourism/internal/reviews/service")

// BookingHistory answers whether a customer has a completed booking on a target.
type BookingHistory interface {
	HasCompleted(ctx context.Context, customerID string, targetType model.TargetType, targetID string) (bool, error)
}

type ReviewService interface {
	Create(ctx context.Context, actor model.Actor, req *model.ReviewRequest) (*model.Review, error)
	GetByID(ctx context.Context, actor model.Actor, id string) (*model.Review, error)
	GetAll(ctx context.Context, actor model.Actor, filter model.ReviewFilter, limit int, offset int64) ([]*model.Review, int64, error)
	Update(ctx context.Context, actor model.Actor, id string, updates *model.ReviewUpdate) (*model.Review, error)
	Delete(ctx context.Context, actor model.Actor, id string) error
	Moderate(ctx context.Context, actor model.Actor, id string, update *model.ModerationUpdate) (*model.Review, error)
}

type reviewService struct {
	repo      repository.ReviewRepository
	targets   listingsrepo.TargetRepository
	history   BookingHistory
	publisher events.Publisher
	validator *validator.ReviewValidator
	cfg       *config.Config
	now       func() time.Time
}

func NewReviewService(
	repo repository.ReviewRepository,
	targets listingsrepo.TargetRepository,
	history BookingHistory,
	publisher events.Publisher,
	validator *validator.ReviewValidator,
	cfg *config.Config,
) ReviewService {
	return &reviewService{
		repo:      repo,
		targets:   targets,
		history:   history,
		publisher: publisher,
		validator: validator,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *reviewService) Create(ctx context.Context, actor model.Actor, req *model.ReviewRequest) (review *model.Review, err error) {
	ctx, span := tracer.Start(ctx, "ReviewService.Create")
	defer func() { tracing.End(span, err) }()

	if !actor.Is(model.RoleCustomer) {
		return nil, apperrors.Forbidden("Only customers can write reviews")
	}

	req.Title = sanitizer.NormalizeText(req.Title)
	req.Comment = sanitizer.NormalizeText(req.Comment)
	if err := s.validator.ValidateRequest(req); err != nil {
		s.cfg.Log.Warn("Review validation failed", "author_id", actor.ID, "error", err)
		return nil, validation.ToAppError("Review validation failed", err)
	}
	if err := s.rejectFutureTourDate(req.TourDate); err != nil {
		return nil, err
	}

	target, err := s.findTarget(ctx, req.TargetType, req.TargetID)
	if err != nil {
		return nil, err
	}
	if target.OwnerID == actor.ID {
		return nil, apperrors.BusinessRule("You cannot review your own listing")
	}

	verified, err := s.history.HasCompleted(ctx, actor.ID, target.Type, target.ID)
	if err != nil {
		s.cfg.Log.Warn("Failed to check booking history",
			"author_id", actor.ID,
			"target_id", target.ID,
			"error", err,
		)
		verified = false
	}

	review = &model.Review{
		TargetType:      target.Type,
		TargetID:        target.ID,
		AuthorID:        actor.ID,
		Rating:          req.Rating,
		Title:           req.Title,
		Comment:         req.Comment,
		TourDate:        req.TourDate,
		VerifiedBooking: verified,
		Status:          model.ReviewPublished,
	}

	var summary model.RatingSummary
	err = s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		review.ID = ""
		if err := s.repo.Create(txCtx, review); err != nil {
			if errors.Is(err, reviewserrors.ErrDuplicate) {
				return apperrors.DuplicateReview("You have already reviewed this listing")
			}
			return apperrors.Internal("Failed to create review", err)
		}
		var err error
		summary, err = s.recompute(txCtx, review.TargetType, review.TargetID)
		return err
	})
	if err != nil {
		s.cfg.Log.Warn("Review creation rejected",
			"author_id", actor.ID,
			"target_type", req.TargetType,
			"target_id", req.TargetID,
			"error", err,
		)
		return nil, err
	}

	s.cfg.Log.Info("Review created successfully",
		"id", review.ID,
		"author_id", review.AuthorID,
		"target_type", review.TargetType,
		"target_id", review.TargetID,
		"rating", review.Rating,
		"verified_booking", review.VerifiedBooking,
		"average_rating", summary.Average,
	)
	s.publish(ctx, events.ReviewCreated, review, target.OwnerID, summary, actor)
	return review, nil
}

// GetByID hides reviews that are not published from anyone but the author and admins.
func (s *reviewService) GetByID(ctx context.Context, actor model.Actor, id string) (*model.Review, error) {
	review, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if review.Status != model.ReviewPublished && review.AuthorID != actor.ID && !actor.IsAdmin() {
		return nil, apperrors.NotFoundWithID("Review", id)
	}
	return review, nil
}

func (s *reviewService) GetAll(ctx context.Context, actor model.Actor, filter model.ReviewFilter, limit int, offset int64) ([]*model.Review, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	if filter.TargetType != "" && !filter.TargetType.Valid() {
		return nil, 0, apperrors.InvalidInput(fmt.Sprintf("invalid target_type parameter: %s", filter.TargetType))
	}
	if filter.TargetID != "" && filter.TargetType == "" {
		return nil, 0, apperrors.InvalidInput("target_type is required when target_id is set")
	}
	filter.IncludeHidden = filter.IncludeHidden && actor.IsAdmin()

	var count int64
	var reviews []*model.Review
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.Count(ctx, filter)
		if err != nil {
			s.cfg.Log.Error("Failed to count reviews", "error", err)
			errCount = apperrors.Internal("Failed to count reviews", err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		reviews, err = s.repo.FindAll(ctx, filter, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to list reviews",
				"limit", limit,
				"offset", offset,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to retrieve reviews", err)
		}
	}()
	wg.Wait()

	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}
	return reviews, count, nil
}

func (s *reviewService) Update(ctx context.Context, actor model.Actor, id string, updates *model.ReviewUpdate) (review *model.Review, err error) {
	ctx, span := tracer.Start(ctx, "ReviewService.Update")
	defer func() { tracing.End(span, err) }()

	if updates.Rating == nil && updates.Title == nil && updates.Comment == nil && updates.TourDate == nil {
		return nil, apperrors.InvalidInput("No fields to update")
	}
	sanitizer.NormalizeStringPtr(updates.Title, sanitizer.NormalizeText)
	sanitizer.NormalizeStringPtr(updates.Comment, sanitizer.NormalizeText)
	if err := s.validator.ValidateUpdate(updates); err != nil {
		return nil, validation.ToAppError("Review validation failed", err)
	}
	if updates.TourDate != nil {
		if err := s.rejectFutureTourDate(*updates.TourDate); err != nil {
			return nil, err
		}
	}

	review, err = s.findAuthored(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	mergeReviewUpdates(review, updates)

	var summary model.RatingSummary
	err = s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		if err := s.repo.Update(txCtx, review.ID, review); err != nil {
			return s.mapRepoError(err, id, "Failed to update review")
		}
		var err error
		summary, err = s.recompute(txCtx, review.TargetType, review.TargetID)
		return err
	})
	if err != nil {
		return nil, err
	}
	review.UpdatedAt = s.now().UTC()

	s.cfg.Log.Info("Review updated successfully",
		"id", review.ID,
		"rating", review.Rating,
		"average_rating", summary.Average,
	)
	s.publish(ctx, events.ReviewUpdated, review, s.ownerOf(ctx, review), summary, actor)
	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, actor model.Actor, id string) (err error) {
	ctx, span := tracer.Start(ctx, "ReviewService.Delete")
	defer func() { tracing.End(span, err) }()

	review, err := s.findAuthored(ctx, actor, id)
	if err != nil {
		return err
	}

	var summary model.RatingSummary
	err = s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		if err := s.repo.Delete(txCtx, review.ID); err != nil {
			return s.mapRepoError(err, id, "Failed to delete review")
		}
		var err error
		summary, err = s.recompute(txCtx, review.TargetType, review.TargetID)
		return err
	})
	if err != nil {
		return err
	}

	s.cfg.Log.Info("Review deleted successfully",
		"id", review.ID,
		"actor_id", actor.ID,
		"rating_count", summary.Count,
	)
	s.publish(ctx, events.ReviewDeleted, review, s.ownerOf(ctx, review), summary, actor)
	return nil
}

func (s *reviewService) Moderate(ctx context.Context, actor model.Actor, id string, update *model.ModerationUpdate) (review *model.Review, err error) {
	ctx, span := tracer.Start(ctx, "ReviewService.Moderate")
	defer func() { tracing.End(span, err) }()

	if !actor.IsAdmin() {
		return nil, apperrors.Forbidden("Only admins can moderate reviews")
	}
	if err := s.validator.ValidateModeration(update); err != nil {
		return nil, validation.ToAppError("Moderation validation failed", err)
	}

	review, err = s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := review.Status

	var summary model.RatingSummary
	err = s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		if err := s.repo.SetStatus(txCtx, review.ID, update.Status); err != nil {
			return s.mapRepoError(err, id, "Failed to moderate review")
		}
		var err error
		summary, err = s.recompute(txCtx, review.TargetType, review.TargetID)
		return err
	})
	if err != nil {
		return nil, err
	}
	review.Status = update.Status
	review.UpdatedAt = s.now().UTC()

	s.cfg.Log.Info("Review moderated",
		"id", review.ID,
		"from", previous,
		"to", review.Status,
		"admin_id", actor.ID,
	)
	s.publish(ctx, events.ReviewModerated, review, s.ownerOf(ctx, review), summary, actor)
	return review, nil
}

// recompute stores the aggregate of the target's published reviews. It must
// run inside the transaction of the review write.
func (s *reviewService) recompute(ctx context.Context, targetType model.TargetType, targetID string) (model.RatingSummary, error) {
	ratings, err := s.repo.PublishedRatings(ctx, targetType, targetID)
	if err != nil {
		return model.RatingSummary{}, apperrors.Internal("Failed to load ratings", err)
	}
	summary := rating.Compute(ratings)
	if err := s.targets.SetRating(ctx, targetType, targetID, summary); err != nil {
		s.cfg.Log.Error("Failed to store rating",
			"target_type", targetType,
			"target_id", targetID,
			"error", err,
		)
		return model.RatingSummary{}, apperrors.Internal("Failed to store rating", err)
	}
	return summary, nil
}

func (s *reviewService) rejectFutureTourDate(date string) error {
	if date == "" {
		return nil
	}
	if date > s.now().In(s.cfg.Loc()).Format(timeslot.DateLayout) {
		return apperrors.ValidationFields("Review validation failed", []apperrors.FieldError{
			{Field: "tour_date", Message: "tour_date must not be in the future"},
		})
	}
	return nil
}

func (s *reviewService) find(ctx context.Context, id string) (*model.Review, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Review ID cannot be empty")
	}
	review, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "Failed to retrieve review")
	}
	return review, nil
}

func (s *reviewService) findAuthored(ctx context.Context, actor model.Actor, id string) (*model.Review, error) {
	review, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if review.AuthorID != actor.ID && !actor.IsAdmin() {
		return nil, apperrors.Forbidden("Only the author or an admin can change this review")
	}
	return review, nil
}

func (s *reviewService) findTarget(ctx context.Context, targetType model.TargetType, id string) (*model.Target, error) {
	target, err := s.targets.FindTarget(ctx, targetType, id)
	if err != nil {
		switch {
		case errors.Is(err, listingserrors.ErrGuideNotFound):
			return nil, apperrors.NotFoundWithID("Guide", id)
		case errors.Is(err, listingserrors.ErrBusinessNotFound):
			return nil, apperrors.NotFoundWithID("Business", id)
		case errors.Is(err, listingserrors.ErrInvalidID):
			return nil, apperrors.InvalidInput("Invalid target ID format")
		}
		s.cfg.Log.Error("Failed to load review target", "target_type", targetType, "target_id", id, "error", err)
		return nil, apperrors.Internal("Failed to load review target", err)
	}
	if target.Type == model.TargetGuide && !target.Approved {
		return nil, apperrors.NotFoundWithID("Guide", id)
	}
	return target, nil
}

// ownerOf is best effort: the target may have been removed since the review was written.
func (s *reviewService) ownerOf(ctx context.Context, review *model.Review) string {
	target, err := s.targets.FindTarget(ctx, review.TargetType, review.TargetID)
	if err != nil {
		return ""
	}
	return target.OwnerID
}

func (s *reviewService) mapRepoError(err error, id, message string) error {
	switch {
	case errors.Is(err, reviewserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Review", id)
	case errors.Is(err, reviewserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid review ID format")
	}
	s.cfg.Log.Error(message, "id", id, "error", err)
	return apperrors.Internal(message, err)
}

func (s *reviewService) publish(ctx context.Context, eventType string, r *model.Review, ownerID string, summary model.RatingSummary, actor model.Actor) {
	s.publisher.PublishReview(ctx, events.ReviewEvent{
		Type:          eventType,
		ReviewID:      r.ID,
		TargetType:    string(r.TargetType),
		TargetID:      r.TargetID,
		OwnerID:       ownerID,
		AuthorID:      r.AuthorID,
		Rating:        r.Rating,
		Status:        r.Status,
		AverageRating: summary.Average,
		RatingCount:   summary.Count,
		ActorID:       actor.ID,
		OccurredAt:    s.now().UTC(),
	})
}

func mergeReviewUpdates(review *model.Review, updates *model.ReviewUpdate) {
	if updates.Rating != nil {
		review.Rating = *updates.Rating
	}
	if updates.Title != nil {
		review.Title = *updates.Title
	}
	if updates.Comment != nil {
		review.Comment = *updates.Comment
	}
	if updates.TourDate != nil {
		review.TourDate = *updates.TourDate
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	availabilityerrors "tourism/internal/availability/errors"
	availabilityrepo "tourism/internal/availability/repository"
	bookingserrors "tourism/internal/bookings/errors"
	"tourism/internal/bookings/lifecycle"
	"tourism/internal/bookings/repository"
	"tourism/internal/bookings/validator"
	listingserrors "tourism/internal/listings/errors"
	listingsrepo "tourism/internal/listings/repository"
	"tourism/pkg/config"
	apperrors "tourism/pkg/errors"
	"tourism/pkg/events"
	"tourism/pkg/model"
	"tourism/pkg/sanitizer"
	"tourism/pkg/timeslot"
	"tourism/pkg/tracing"
	"tourism/pkg/validation"
)

var tracer = tracing.Tracer("tourism/internal/bookings/service")

type BookingService interface {
	Create(ctx context.Context, actor model.Actor, req *model.BookingRequest) (*model.Booking, error)
	GetByID(ctx context.Context, actor model.Actor, id string) (*model.Booking, error)
	GetAll(ctx context.Context, actor model.Actor, filter model.BookingFilter, limit int, offset int64) ([]*model.Booking, int64, error)
	Transition(ctx context.Context, actor model.Actor, id, action string, req *model.TransitionRequest) (*model.Booking, error)
	Bulk(ctx context.Context, actor model.Actor, req *model.BulkRequest) (*model.BulkResult, error)
	UpdatePayment(ctx context.Context, actor model.Actor, id string, update *model.PaymentUpdate) (*model.Booking, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	slots     availabilityrepo.SlotRepository
	targets   listingsrepo.TargetRepository
	publisher events.Publisher
	validator *validator.BookingValidator
	cfg       *config.Config
	now       func() time.Time
}

func NewBookingService(
	repo repository.BookingRepository,
	slots availabilityrepo.SlotRepository,
	targets listingsrepo.TargetRepository,
	publisher events.Publisher,
	validator *validator.BookingValidator,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		slots:     slots,
		targets:   targets,
		publisher: publisher,
		validator: validator,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *bookingService) Create(ctx context.Context, actor model.Actor, req *model.BookingRequest) (booking *model.Booking, err error) {
	ctx, span := tracer.Start(ctx, "BookingService.Create")
	defer func() { tracing.End(span, err) }()

	if !actor.Is(model.RoleCustomer) {
		return nil, apperrors.Forbidden("Only customers can create bookings")
	}

	req.Notes = sanitizer.NormalizeText(req.Notes)
	if req.PartySize == 0 {
		req.PartySize = 1
	}
	if err := s.validator.ValidateRequest(req); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "customer_id", actor.ID, "error", err)
		return nil, validation.ToAppError("Booking validation failed", err)
	}

	target, err := s.findTarget(ctx, req.TargetType, req.TargetID)
	if err != nil {
		return nil, err
	}
	if target.Type == model.TargetGuide && (!target.Approved || !target.Available) {
		return nil, apperrors.BusinessRule("This guide is not accepting bookings")
	}
	if target.OwnerID == actor.ID {
		return nil, apperrors.BusinessRule("You cannot book your own listing")
	}

	booking = &model.Booking{
		TargetType:    target.Type,
		TargetID:      target.ID,
		OwnerID:       target.OwnerID,
		CustomerID:    actor.ID,
		Date:          req.Date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		PartySize:     req.PartySize,
		Notes:         req.Notes,
		Status:        model.BookingPending,
		PaymentStatus: model.PaymentUnpaid,
	}

	if req.SlotID != "" {
		slot, err := s.findBookableSlot(ctx, req.SlotID, target.ID)
		if err != nil {
			return nil, err
		}
		booking.SlotID = slot.ID
		booking.Date = slot.Date
		booking.StartTime = slot.StartTime
		booking.EndTime = slot.EndTime
	}

	past, err := timeslot.IsPastDate(booking.Date, s.now(), s.cfg.Loc())
	if err != nil || past {
		return nil, apperrors.ValidationFields("Booking validation failed", []apperrors.FieldError{
			{Field: "date", Message: "date must not be in the past"},
		})
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to create booking",
			"customer_id", actor.ID,
			"target_type", booking.TargetType,
			"target_id", booking.TargetID,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to create booking", err)
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"customer_id", booking.CustomerID,
		"target_type", booking.TargetType,
		"target_id", booking.TargetID,
		"date", booking.Date,
	)
	s.publish(ctx, events.BookingCreated, booking, "", actor)
	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, actor model.Actor, id string) (*model.Booking, error) {
	booking, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !lifecycle.CanView(actor, booking) {
		return nil, apperrors.NotFoundWithID("Booking", id)
	}
	return booking, nil
}

// GetAll scopes the filter to the caller: customers see their own
// bookings, listing owners the bookings made on their listings.
func (s *bookingService) GetAll(ctx context.Context, actor model.Actor, filter model.BookingFilter, limit int, offset int64) ([]*model.Booking, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	switch actor.Role {
	case model.RoleAdmin:
	case model.RoleCustomer:
		filter.CustomerID = actor.ID
		filter.OwnerID = ""
	default:
		filter.OwnerID = actor.ID
		filter.CustomerID = ""
	}
	if filter.Status != "" {
		switch filter.Status {
		case model.BookingPending, model.BookingConfirmed, model.BookingCompleted, model.BookingCancelled:
		default:
			return nil, 0, apperrors.InvalidInput(fmt.Sprintf("invalid status parameter: %s", filter.Status))
		}
	}
	if filter.TargetType != "" && !filter.TargetType.Valid() {
		return nil, 0, apperrors.InvalidInput(fmt.Sprintf("invalid target_type parameter: %s", filter.TargetType))
	}

	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.Count(ctx, filter)
		if err != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", err)
			errCount = apperrors.Internal("Failed to count bookings", err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		bookings, err = s.repo.FindAll(ctx, filter, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to list bookings",
				"limit", limit,
				"offset", offset,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to retrieve bookings", err)
		}
	}()
	wg.Wait()

	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}
	return bookings, count, nil
}

// Transition applies one lifecycle action. The status write is conditional
// on the status that was read, so a concurrent transition surfaces as an
// invalid transition. Slot booking and release happen in the same
// transaction.
func (s *bookingService) Transition(ctx context.Context, actor model.Actor, id, action string, req *model.TransitionRequest) (booking *model.Booking, err error) {
	ctx, span := tracer.Start(ctx, "BookingService.Transition")
	defer func() { tracing.End(span, err) }()

	if !lifecycle.ValidAction(action) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown booking action: %s", action))
	}
	if req == nil {
		req = &model.TransitionRequest{}
	}
	req.Reason = sanitizer.NormalizeText(req.Reason)
	if err := s.validator.ValidateTransition(req); err != nil {
		return nil, validation.ToAppError("Transition validation failed", err)
	}

	booking, err = s.GetByID(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !lifecycle.CanPerform(actor, booking, action) {
		return nil, apperrors.Forbidden(fmt.Sprintf("You are not allowed to %s this booking", action))
	}

	next, ok := lifecycle.Next(booking.Status, action)
	if !ok {
		return nil, apperrors.InvalidTransition(booking.Status, action)
	}

	change := model.StatusChange{
		From:       booking.Status,
		To:         next,
		OccurredAt: s.now().UTC().Truncate(time.Millisecond),
	}
	if next == model.BookingCancelled {
		change.Reason = req.Reason
	}

	err = s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		if err := s.repo.UpdateStatus(txCtx, booking.ID, change); err != nil {
			if errors.Is(err, bookingserrors.ErrStatusChanged) {
				return apperrors.InvalidTransition(booking.Status, action)
			}
			return apperrors.Internal("Failed to update booking status", err)
		}
		if booking.SlotID == "" {
			return nil
		}

		switch {
		case next == model.BookingConfirmed:
			if err := s.slots.MarkBooked(txCtx, booking.SlotID, booking.ID); err != nil {
				if errors.Is(err, availabilityerrors.ErrSlotNotAvailable) || errors.Is(err, availabilityerrors.ErrInvalidID) {
					return apperrors.BusinessRule("The selected slot is no longer available")
				}
				return apperrors.Internal("Failed to book slot", err)
			}
		case next == model.BookingCancelled && change.From == model.BookingConfirmed:
			released, err := s.slots.Release(txCtx, booking.SlotID, booking.ID)
			if err != nil {
				return apperrors.Internal("Failed to release slot", err)
			}
			if !released {
				s.cfg.Log.Warn("Slot was not held by the cancelled booking",
					"booking_id", booking.ID,
					"slot_id", booking.SlotID,
				)
			}
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Warn("Booking transition rejected",
			"id", booking.ID,
			"action", action,
			"status", booking.Status,
			"error", err,
		)
		return nil, err
	}

	booking.Status = next
	booking.UpdatedAt = change.OccurredAt
	switch next {
	case model.BookingConfirmed:
		booking.ConfirmedAt = &change.OccurredAt
	case model.BookingCompleted:
		booking.CompletedAt = &change.OccurredAt
	case model.BookingCancelled:
		booking.CancelledAt = &change.OccurredAt
		if change.Reason != "" {
			booking.CancellationReason = change.Reason
		}
	}

	s.cfg.Log.Info("Booking transitioned",
		"id", booking.ID,
		"from", change.From,
		"to", next,
		"actor_id", actor.ID,
	)
	s.publish(ctx, transitionEvent(next), booking, change.From, actor)
	return booking, nil
}

// Bulk runs each booking through Transition independently. Bookings that are
// ineligible are skipped, anything unexpected counts as failed.
func (s *bookingService) Bulk(ctx context.Context, actor model.Actor, req *model.BulkRequest) (result *model.BulkResult, err error) {
	ctx, span := tracer.Start(ctx, "BookingService.Bulk")
	defer func() { tracing.End(span, err) }()

	if err := s.validator.ValidateBulk(req); err != nil {
		return nil, validation.ToAppError("Bulk request validation failed", err)
	}
	if s.cfg.MaxBulkBookings > 0 && len(req.BookingIDs) > s.cfg.MaxBulkBookings {
		return nil, apperrors.ValidationFields("Bulk request validation failed", []apperrors.FieldError{
			{Field: "booking_ids", Message: fmt.Sprintf("at most %d bookings per request", s.cfg.MaxBulkBookings)},
		})
	}

	result = &model.BulkResult{
		Action: req.Action,
		Items:  make([]model.BulkItemResult, 0, len(req.BookingIDs)),
	}
	seen := make(map[string]bool, len(req.BookingIDs))
	for _, id := range req.BookingIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		item := model.BulkItemResult{BookingID: id, Outcome: model.OutcomeSuccess}
		_, err := s.Transition(ctx, actor, id, req.Action, &model.TransitionRequest{Reason: req.Reason})
		switch {
		case err == nil:
			result.SuccessCount++
		case isIneligible(err):
			item.Outcome = model.OutcomeSkipped
			item.Reason = apperrors.AsAppError(err).Message
			result.SkippedCount++
		default:
			item.Outcome = model.OutcomeFailed
			item.Reason = "unexpected error"
			result.FailedCount++
		}
		result.Items = append(result.Items, item)
	}

	s.cfg.Log.Info("Bulk booking action finished",
		"action", req.Action,
		"actor_id", actor.ID,
		"success", result.SuccessCount,
		"skipped", result.SkippedCount,
		"failed", result.FailedCount,
	)
	return result, nil
}

func isIneligible(err error) bool {
	for _, code := range []string{
		apperrors.CodeInvalidTransition,
		apperrors.CodeForbidden,
		apperrors.CodeNotFound,
		apperrors.CodeInvalidInput,
		apperrors.CodeBusinessRule,
	} {
		if apperrors.HasCode(err, code) {
			return true
		}
	}
	return false
}

func (s *bookingService) UpdatePayment(ctx context.Context, actor model.Actor, id string, update *model.PaymentUpdate) (*model.Booking, error) {
	if err := s.validator.ValidatePayment(update); err != nil {
		return nil, validation.ToAppError("Payment validation failed", err)
	}

	booking, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if booking.OwnerID != actor.ID && !actor.IsAdmin() {
		return nil, apperrors.Forbidden("Only the listing owner or an admin can update payment status")
	}
	if booking.Status == model.BookingCancelled {
		return nil, apperrors.BusinessRule("Payment status cannot change on a cancelled booking")
	}

	if err := s.repo.UpdatePayment(ctx, booking.ID, update.PaymentStatus); err != nil {
		if errors.Is(err, bookingserrors.ErrStatusChanged) {
			return nil, apperrors.BusinessRule("Payment status cannot change on a cancelled booking")
		}
		return nil, s.mapRepoError(err, id, "Failed to update payment status")
	}

	previous := booking.PaymentStatus
	booking.PaymentStatus = update.PaymentStatus
	booking.UpdatedAt = s.now().UTC()

	s.cfg.Log.Info("Booking payment status updated",
		"id", booking.ID,
		"from", previous,
		"to", booking.PaymentStatus,
	)
	s.publish(ctx, events.BookingPaymentUpdated, booking, booking.Status, actor)
	return booking, nil
}

func (s *bookingService) find(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "Failed to retrieve booking")
	}
	return booking, nil
}

func (s *bookingService) findTarget(ctx context.Context, targetType model.TargetType, id string) (*model.Target, error) {
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
		s.cfg.Log.Error("Failed to load booking target", "target_type", targetType, "target_id", id, "error", err)
		return nil, apperrors.Internal("Failed to load booking target", err)
	}
	return target, nil
}

func (s *bookingService) findBookableSlot(ctx context.Context, slotID, guideID string) (*model.Slot, error) {
	slot, err := s.slots.FindByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, availabilityerrors.ErrNotFound) || errors.Is(err, availabilityerrors.ErrInvalidID) {
			return nil, apperrors.ValidationFields("Booking validation failed", []apperrors.FieldError{
				{Field: "slot_id", Message: "slot does not exist"},
			})
		}
		return nil, apperrors.Internal("Failed to load slot", err)
	}
	if slot.GuideID != guideID {
		return nil, apperrors.ValidationFields("Booking validation failed", []apperrors.FieldError{
			{Field: "slot_id", Message: "slot does not belong to this guide"},
		})
	}
	if slot.Status != model.SlotAvailable {
		return nil, apperrors.BusinessRule("The selected slot is not available")
	}
	return slot, nil
}

func (s *bookingService) mapRepoError(err error, id, message string) error {
	switch {
	case errors.Is(err, bookingserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Booking", id)
	case errors.Is(err, bookingserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid booking ID format")
	}
	s.cfg.Log.Error(message, "id", id, "error", err)
	return apperrors.Internal(message, err)
}

func (s *bookingService) publish(ctx context.Context, eventType string, b *model.Booking, previous string, actor model.Actor) {
	s.publisher.PublishBooking(ctx, events.BookingEvent{
		Type:           eventType,
		BookingID:      b.ID,
		TargetType:     string(b.TargetType),
		TargetID:       b.TargetID,
		OwnerID:        b.OwnerID,
		CustomerID:     b.CustomerID,
		Date:           b.Date,
		StartTime:      b.StartTime,
		Status:         b.Status,
		PreviousStatus: previous,
		PaymentStatus:  b.PaymentStatus,
		Reason:         b.CancellationReason,
		ActorID:        actor.ID,
		ActorRole:      string(actor.Role),
		OccurredAt:     s.now().UTC(),
	})
}

func transitionEvent(status string) string {
	switch status {
	case model.BookingConfirmed:
		return events.BookingConfirmed
	case model.BookingCompleted:
		return events.BookingCompleted
	default:
		return events.BookingCancelled
	}
}

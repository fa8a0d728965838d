package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	availabilityerrors "tourism/internal/availability/errors"
	"tourism/internal/availability/repository"
	"tourism/internal/availability/validator"
	listingserrors "tourism/internal/listings/errors"
	listingsrepo "tourism/internal/listings/repository"
	"tourism/pkg/config"
	apperrors "tourism/pkg/errors"
	"tourism/pkg/model"
	"tourism/pkg/sanitizer"
	"tourism/pkg/timeslot"
	"tourism/pkg/tracing"
	"tourism/pkg/validation"
)

var tracer = tracing.Tracer("tourism/internal/availability/service")

const (
	reasonOverlap    = "overlaps an existing slot"
	reasonLockBusy   = "availability for this date is locked by another request"
	reasonStoreError = "failed to store slot"
)

type AvailabilityService interface {
	Create(ctx context.Context, actor model.Actor, guideID string, req *model.SlotRequest) (*model.Slot, error)
	CreateWeekly(ctx context.Context, actor model.Actor, guideID string, req *model.SlotRequest) (*model.BatchResult, error)
	CreateBatch(ctx context.Context, actor model.Actor, guideID string, req *model.RecurrenceRequest) (*model.BatchResult, error)
	List(ctx context.Context, guideID string, filter model.SlotFilter) ([]*model.Slot, error)
	Update(ctx context.Context, actor model.Actor, id string, updates *model.SlotUpdate) (*model.Slot, error)
	Delete(ctx context.Context, actor model.Actor, id string) error
}

type availabilityService struct {
	slots     repository.SlotRepository
	locks     repository.SlotLockRepository
	targets   listingsrepo.TargetRepository
	validator *validator.SlotValidator
	cfg       *config.Config
	now       func() time.Time
}

func NewAvailabilityService(
	slots repository.SlotRepository,
	locks repository.SlotLockRepository,
	targets listingsrepo.TargetRepository,
	validator *validator.SlotValidator,
	cfg *config.Config,
) AvailabilityService {
	return &availabilityService{
		slots:     slots,
		locks:     locks,
		targets:   targets,
		validator: validator,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *availabilityService) Create(ctx context.Context, actor model.Actor, guideID string, req *model.SlotRequest) (slot *model.Slot, err error) {
	ctx, span := tracer.Start(ctx, "AvailabilityService.Create")
	defer func() { tracing.End(span, err) }()

	s.sanitizeRequest(req)
	if err := s.validator.ValidateRequest(req); err != nil {
		return nil, validation.ToAppError("Slot validation failed", err)
	}
	if err := s.rejectPastDate(req.Date, "date"); err != nil {
		return nil, err
	}
	if _, err := s.authorizeGuide(ctx, actor, guideID); err != nil {
		return nil, err
	}

	candidate, _ := timeslot.NewInterval(req.StartTime, req.EndTime)
	slot = &model.Slot{
		GuideID:   guideID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    req.Status,
		Notes:     req.Notes,
	}

	lockID, err := s.acquireLock(ctx, guideID, req.Date)
	if err != nil {
		return nil, err
	}
	defer s.releaseLock(ctx, lockID)

	err = s.slots.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.slots.FindByGuideDate(txCtx, guideID, req.Date)
		if err != nil {
			return apperrors.Internal("Failed to check for overlapping slots", err)
		}
		if conflict := findConflict(existing, candidate, ""); conflict != nil {
			return overlapError(conflict)
		}
		if err := s.slots.Create(txCtx, slot); err != nil {
			return apperrors.Internal("Failed to create slot", err)
		}
		return nil
	})
	if err != nil {
		if apperrors.HasCode(err, apperrors.CodeOverlap) {
			s.cfg.Log.Info("Slot rejected as overlapping",
				"guide_id", guideID,
				"date", req.Date,
				"start_time", req.StartTime,
				"end_time", req.EndTime,
			)
		} else {
			s.cfg.Log.Error("Failed to create slot",
				"guide_id", guideID,
				"date", req.Date,
				"error", err,
			)
		}
		return nil, err
	}

	s.cfg.Log.Info("Slot created successfully",
		"id", slot.ID,
		"guide_id", guideID,
		"date", slot.Date,
		"start_time", slot.StartTime,
		"end_time", slot.EndTime,
	)
	return slot, nil
}

// CreateWeekly repeats a single slot on the same weekday through repeat_until.
func (s *availabilityService) CreateWeekly(ctx context.Context, actor model.Actor, guideID string, req *model.SlotRequest) (*model.BatchResult, error) {
	s.sanitizeRequest(req)
	if err := s.validator.ValidateRequest(req); err != nil {
		return nil, validation.ToAppError("Slot validation failed", err)
	}
	if req.RepeatUntil < req.Date {
		return nil, apperrors.ValidationFields("Slot validation failed", []apperrors.FieldError{
			{Field: "repeat_until", Message: "repeat_until must not be before date"},
		})
	}

	day, _ := timeslot.ParseDate(req.Date, s.cfg.Loc())
	return s.CreateBatch(ctx, actor, guideID, &model.RecurrenceRequest{
		StartDate: req.Date,
		EndDate:   req.RepeatUntil,
		Weekdays:  []string{sanitizer.NormalizeTag(day.Weekday().String())},
		TimeSlots: []model.TimeTemplate{{StartTime: req.StartTime, EndTime: req.EndTime}},
		Status:    req.Status,
		Notes:     req.Notes,
	})
}

// CreateBatch expands a recurrence into slots. Overlapping templates are
// skipped and each day is written under its own lock and transaction, so a
// failing day never aborts the rest of the batch.
func (s *availabilityService) CreateBatch(ctx context.Context, actor model.Actor, guideID string, req *model.RecurrenceRequest) (result *model.BatchResult, err error) {
	ctx, span := tracer.Start(ctx, "AvailabilityService.CreateBatch")
	defer func() { tracing.End(span, err) }()

	req.Weekdays = sanitizer.NormalizeWeekdays(req.Weekdays)
	req.Notes = sanitizer.NormalizeText(req.Notes)
	if req.Status == "" {
		req.Status = model.SlotAvailable
	}
	if err := s.validator.ValidateRecurrence(req); err != nil {
		return nil, validation.ToAppError("Batch validation failed", err)
	}

	loc := s.cfg.Loc()
	start, _ := timeslot.ParseDate(req.StartDate, loc)
	end, _ := timeslot.ParseDate(req.EndDate, loc)
	if err := s.checkBatchLimits(req, start, end); err != nil {
		return nil, err
	}
	if err := s.rejectPastDate(req.StartDate, "start_date"); err != nil {
		return nil, err
	}
	if _, err := s.authorizeGuide(ctx, actor, guideID); err != nil {
		return nil, err
	}

	selected := make(map[time.Weekday]bool, len(req.Weekdays))
	for _, name := range req.Weekdays {
		wd, _ := timeslot.ParseWeekday(name)
		selected[wd] = true
	}

	result = &model.BatchResult{
		Created: []*model.Slot{},
		Skipped: []model.SkippedSlot{},
	}
	for _, day := range timeslot.Days(start, end) {
		if !selected[day.Weekday()] {
			continue
		}
		s.createDay(ctx, guideID, day.Format(timeslot.DateLayout), req, result)
	}

	result.CreatedCount = len(result.Created)
	result.SkippedCount = len(result.Skipped)
	result.FailedCount = len(result.Failed)

	s.cfg.Log.Info("Batch slot creation finished",
		"guide_id", guideID,
		"start_date", req.StartDate,
		"end_date", req.EndDate,
		"created", result.CreatedCount,
		"skipped", result.SkippedCount,
		"failed", result.FailedCount,
	)
	return result, nil
}

func (s *availabilityService) createDay(ctx context.Context, guideID, date string, req *model.RecurrenceRequest, result *model.BatchResult) {
	failAll := func(reason string) {
		for _, tmpl := range req.TimeSlots {
			result.Failed = append(result.Failed, model.SkippedSlot{
				Date:      date,
				StartTime: tmpl.StartTime,
				EndTime:   tmpl.EndTime,
				Reason:    reason,
			})
		}
	}

	lockID, err := s.acquireLock(ctx, guideID, date)
	if err != nil {
		s.cfg.Log.Warn("Skipping batch day, lock unavailable", "guide_id", guideID, "date", date, "error", err)
		failAll(reasonLockBusy)
		return
	}
	defer s.releaseLock(ctx, lockID)

	var created []*model.Slot
	var skipped []model.SkippedSlot
	err = s.slots.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		// The driver may rerun this function on transient errors.
		created, skipped = nil, nil

		existing, err := s.slots.FindByGuideDate(txCtx, guideID, date)
		if err != nil {
			return err
		}
		for _, tmpl := range req.TimeSlots {
			candidate, _ := timeslot.NewInterval(tmpl.StartTime, tmpl.EndTime)
			if conflict := findConflict(existing, candidate, ""); conflict != nil {
				skipped = append(skipped, model.SkippedSlot{
					Date:              date,
					StartTime:         tmpl.StartTime,
					EndTime:           tmpl.EndTime,
					Reason:            reasonOverlap,
					ConflictingSlotID: conflict.ID,
				})
				continue
			}

			slot := &model.Slot{
				GuideID:   guideID,
				Date:      date,
				StartTime: tmpl.StartTime,
				EndTime:   tmpl.EndTime,
				Status:    req.Status,
				Notes:     req.Notes,
			}
			if err := s.slots.Create(txCtx, slot); err != nil {
				return err
			}
			existing = append(existing, slot)
			created = append(created, slot)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create slots for batch day",
			"guide_id", guideID,
			"date", date,
			"error", err,
		)
		failAll(reasonStoreError)
		return
	}

	result.Created = append(result.Created, created...)
	result.Skipped = append(result.Skipped, skipped...)
}

func (s *availabilityService) checkBatchLimits(req *model.RecurrenceRequest, start, end time.Time) error {
	if end.Before(start) {
		return apperrors.ValidationFields("Batch validation failed", []apperrors.FieldError{
			{Field: "end_date", Message: "end_date must not be before start_date"},
		})
	}
	if span := timeslot.DaySpan(start, end); s.cfg.MaxBatchDays > 0 && span > s.cfg.MaxBatchDays {
		return apperrors.ValidationFields("Batch validation failed", []apperrors.FieldError{
			{Field: "end_date", Message: fmt.Sprintf("date range must not exceed %d days", s.cfg.MaxBatchDays)},
		})
	}
	if s.cfg.MaxBatchTemplates > 0 && len(req.TimeSlots) > s.cfg.MaxBatchTemplates {
		return apperrors.ValidationFields("Batch validation failed", []apperrors.FieldError{
			{Field: "time_slots", Message: fmt.Sprintf("at most %d time slots are allowed", s.cfg.MaxBatchTemplates)},
		})
	}
	return nil
}

func (s *availabilityService) List(ctx context.Context, guideID string, filter model.SlotFilter) ([]*model.Slot, error) {
	loc := s.cfg.Loc()
	for field, value := range map[string]string{"date": filter.Date, "from": filter.From, "to": filter.To} {
		if value == "" {
			continue
		}
		if _, err := timeslot.ParseDate(value, loc); err != nil {
			return nil, apperrors.InvalidInput(fmt.Sprintf("invalid %s parameter: %s", field, value))
		}
	}
	if filter.From != "" && filter.To != "" && filter.To < filter.From {
		return nil, apperrors.InvalidInput("to must not be before from")
	}

	if _, err := s.findGuide(ctx, guideID); err != nil {
		return nil, err
	}

	slots, err := s.slots.FindByGuide(ctx, guideID, filter)
	if err != nil {
		s.cfg.Log.Error("Failed to list slots", "guide_id", guideID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve slots", err)
	}
	return slots, nil
}

func (s *availabilityService) Update(ctx context.Context, actor model.Actor, id string, updates *model.SlotUpdate) (slot *model.Slot, err error) {
	ctx, span := tracer.Start(ctx, "AvailabilityService.Update")
	defer func() { tracing.End(span, err) }()

	if err := s.validator.ValidateUpdate(updates); err != nil {
		return nil, validation.ToAppError("Slot validation failed", err)
	}

	existing, err := s.findSlot(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeChange(ctx, actor, existing); err != nil {
		return nil, err
	}

	merged := mergeSlotUpdates(existing, updates)
	if err := s.validator.ValidateSlot(merged); err != nil {
		return nil, validation.ToAppError("Slot validation failed", err)
	}
	if merged.Date != existing.Date {
		if err := s.rejectPastDate(merged.Date, "date"); err != nil {
			return nil, err
		}
	}

	candidate, _ := timeslot.NewInterval(merged.StartTime, merged.EndTime)
	lockID, err := s.acquireLock(ctx, merged.GuideID, merged.Date)
	if err != nil {
		return nil, err
	}
	defer s.releaseLock(ctx, lockID)

	err = s.slots.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		sameDay, err := s.slots.FindByGuideDate(txCtx, merged.GuideID, merged.Date)
		if err != nil {
			return apperrors.Internal("Failed to check for overlapping slots", err)
		}
		if conflict := findConflict(sameDay, candidate, id); conflict != nil {
			return overlapError(conflict)
		}
		if err := s.slots.Update(txCtx, id, merged); err != nil {
			return s.mapRepoError(err, id, "Failed to update slot")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cfg.Log.Info("Slot updated successfully",
		"id", id,
		"guide_id", merged.GuideID,
		"actor_id", actor.ID,
	)
	return merged, nil
}

func (s *availabilityService) Delete(ctx context.Context, actor model.Actor, id string) error {
	existing, err := s.findSlot(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeChange(ctx, actor, existing); err != nil {
		return err
	}

	if err := s.slots.Delete(ctx, id); err != nil {
		return s.mapRepoError(err, id, "Failed to delete slot")
	}

	s.cfg.Log.Info("Slot deleted successfully",
		"id", id,
		"guide_id", existing.GuideID,
		"actor_id", actor.ID,
	)
	return nil
}

// authorizeChange allows the owning guide or an admin to change a slot.
// Booked slots are reserved to admins.
func (s *availabilityService) authorizeChange(ctx context.Context, actor model.Actor, slot *model.Slot) error {
	if _, err := s.authorizeGuide(ctx, actor, slot.GuideID); err != nil {
		return err
	}
	if slot.Status == model.SlotBooked && !actor.IsAdmin() {
		return apperrors.Forbidden("Booked slots can only be changed by an admin")
	}
	return nil
}

func (s *availabilityService) authorizeGuide(ctx context.Context, actor model.Actor, guideID string) (*model.Target, error) {
	target, err := s.findGuide(ctx, guideID)
	if err != nil {
		return nil, err
	}
	if target.OwnerID != actor.ID && !actor.IsAdmin() {
		return nil, apperrors.Forbidden("Only the guide or an admin can manage this availability")
	}
	return target, nil
}

func (s *availabilityService) findGuide(ctx context.Context, guideID string) (*model.Target, error) {
	if guideID == "" {
		return nil, apperrors.InvalidInput("Guide ID cannot be empty")
	}
	target, err := s.targets.FindTarget(ctx, model.TargetGuide, guideID)
	if err != nil {
		switch {
		case errors.Is(err, listingserrors.ErrGuideNotFound):
			return nil, apperrors.NotFoundWithID("Guide", guideID)
		case errors.Is(err, listingserrors.ErrInvalidID):
			return nil, apperrors.InvalidInput("Invalid guide ID format")
		}
		s.cfg.Log.Error("Failed to load guide", "guide_id", guideID, "error", err)
		return nil, apperrors.Internal("Failed to load guide", err)
	}
	return target, nil
}

func (s *availabilityService) findSlot(ctx context.Context, id string) (*model.Slot, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Slot ID cannot be empty")
	}
	slot, err := s.slots.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "Failed to retrieve slot")
	}
	return slot, nil
}

func (s *availabilityService) rejectPastDate(date, field string) error {
	past, err := timeslot.IsPastDate(date, s.now(), s.cfg.Loc())
	if err != nil {
		return apperrors.ValidationFields("Slot validation failed", []apperrors.FieldError{{Field: field, Message: err.Error()}})
	}
	if past {
		return apperrors.ValidationFields("Slot validation failed", []apperrors.FieldError{
			{Field: field, Message: fmt.Sprintf("%s must not be in the past", field)},
		})
	}
	return nil
}

func (s *availabilityService) mapRepoError(err error, id, message string) error {
	switch {
	case apperrors.IsAppError(err):
		return err
	case errors.Is(err, availabilityerrors.ErrNotFound):
		return apperrors.NotFoundWithID("Slot", id)
	case errors.Is(err, availabilityerrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid slot ID format")
	}
	s.cfg.Log.Error(message, "id", id, "error", err)
	return apperrors.Internal(message, err)
}

func (s *availabilityService) sanitizeRequest(req *model.SlotRequest) {
	req.Notes = sanitizer.NormalizeText(req.Notes)
	if req.Status == "" {
		req.Status = model.SlotAvailable
	}
}

func overlapError(conflict *model.Slot) error {
	return apperrors.Overlap(
		fmt.Sprintf("Slot overlaps an existing slot from %s to %s", conflict.StartTime, conflict.EndTime),
		map[string]any{
			"id":         conflict.ID,
			"date":       conflict.Date,
			"start_time": conflict.StartTime,
			"end_time":   conflict.EndTime,
			"status":     conflict.Status,
		},
	)
}

func mergeSlotUpdates(existing *model.Slot, u *model.SlotUpdate) *model.Slot {
	merged := *existing
	if u.Date != nil {
		merged.Date = *u.Date
	}
	if u.StartTime != nil {
		merged.StartTime = *u.StartTime
	}
	if u.EndTime != nil {
		merged.EndTime = *u.EndTime
	}
	if u.Status != nil {
		merged.Status = *u.Status
	}
	if u.Notes != nil {
		merged.Notes = sanitizer.NormalizeText(*u.Notes)
	}
	if merged.Status != model.SlotBooked {
		merged.BookingID = ""
	}
	return &merged
}

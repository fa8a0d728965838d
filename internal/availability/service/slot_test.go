package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"
	"testing"
	"time"

	availabilityerrors "tourism/internal/availability/errors"
	"tourism/internal/availability/validator"
	listingserrors "tourism/internal/listings/errors"
	"tourism/pkg/config"
	mongotx "tourism/pkg/db/mongo"
	apperrors "tourism/pkg/errors"
	"tourism/pkg/logger"
	"tourism/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

type fakeSlotRepository struct {
	mu    sync.Mutex
	slots map[string]*model.Slot
	next  int

	createErr error
}

func newFakeSlotRepository(slots ...*model.Slot) *fakeSlotRepository {
	f := &fakeSlotRepository{slots: map[string]*model.Slot{}}
	for _, s := range slots {
		f.slots[s.ID] = s
	}
	return f
}

func (f *fakeSlotRepository) Create(ctx context.Context, slot *model.Slot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.next++
	slot.ID = fmt.Sprintf("slot-%d", f.next)
	copied := *slot
	f.slots[slot.ID] = &copied
	return nil
}

func (f *fakeSlotRepository) FindByID(ctx context.Context, id string) (*model.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slots[id]
	if !ok {
		return nil, availabilityerrors.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSlotRepository) FindByGuideDate(ctx context.Context, guideID, date string) ([]*model.Slot, error) {
	return f.FindByGuide(ctx, guideID, model.SlotFilter{Date: date})
}

func (f *fakeSlotRepository) FindByGuide(ctx context.Context, guideID string, filter model.SlotFilter) ([]*model.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*model.Slot{}
	for _, s := range f.slots {
		if s.GuideID != guideID {
			continue
		}
		if filter.Date != "" && s.Date != filter.Date {
			continue
		}
		copied := *s
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

func (f *fakeSlotRepository) Update(ctx context.Context, id string, slot *model.Slot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.slots[id]; !ok {
		return availabilityerrors.ErrNotFound
	}
	copied := *slot
	f.slots[id] = &copied
	return nil
}

func (f *fakeSlotRepository) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.slots[id]; !ok {
		return availabilityerrors.ErrNotFound
	}
	delete(f.slots, id)
	return nil
}

func (f *fakeSlotRepository) MarkBooked(ctx context.Context, id, bookingID string) error {
	return nil
}

func (f *fakeSlotRepository) Release(ctx context.Context, id, bookingID string) (bool, error) {
	return false, nil
}

func (f *fakeSlotRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(ctx)
}

func (f *fakeSlotRepository) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.slots)
}

type fakeLockRepository struct {
	mu    sync.Mutex
	locks map[string]*model.SlotLock
}

func (f *fakeLockRepository) Create(ctx context.Context, lock *model.SlotLock) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, held := f.locks[lock.ID]; held {
		return mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "duplicate key"}}}
	}
	f.locks[lock.ID] = lock
	return nil
}

func (f *fakeLockRepository) Delete(ctx context.Context, lockID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.locks, lockID)
	return nil
}

type fakeTargetRepository struct {
	targets map[string]*model.Target
}

func (f *fakeTargetRepository) FindTarget(ctx context.Context, targetType model.TargetType, id string) (*model.Target, error) {
	t, ok := f.targets[id]
	if !ok || t.Type != targetType {
		return nil, listingserrors.ErrGuideNotFound
	}
	return t, nil
}

func (f *fakeTargetRepository) SetRating(ctx context.Context, targetType model.TargetType, id string, summary model.RatingSummary) error {
	return nil
}

const (
	guideID = "guide-1"
	ownerID = "owner-1"
)

var (
	owner = model.Actor{ID: ownerID, Role: model.RoleGuide}
	admin = model.Actor{ID: "admin-1", Role: model.RoleAdmin}
)

type fixture struct {
	svc   *availabilityService
	slots *fakeSlotRepository
	locks *fakeLockRepository
}

func newFixture(t *testing.T, slots ...*model.Slot) *fixture {
	t.Helper()
	log := logger.New(logger.Config{Level: logger.ERROR, Format: logger.JSON, Output: io.Discard})
	cfg := &config.Config{
		Log:               log,
		MaxBatchDays:      config.DefaultMaxBatchDays,
		MaxBatchTemplates: config.DefaultMaxBatchTemplates,
		SlotLockTTL:       config.DefaultSlotLockTTL,
	}
	slotRepo := newFakeSlotRepository(slots...)
	lockRepo := &fakeLockRepository{locks: map[string]*model.SlotLock{}}
	targets := &fakeTargetRepository{targets: map[string]*model.Target{
		guideID: {Type: model.TargetGuide, ID: guideID, OwnerID: ownerID, Approved: true, Available: true},
	}}

	svc := NewAvailabilityService(slotRepo, lockRepo, targets, validator.NewSlotValidator(log), cfg).(*availabilityService)
	svc.now = func() time.Time { return time.Date(2025, 6, 20, 9, 0, 0, 0, time.UTC) }
	return &fixture{svc: svc, slots: slotRepo, locks: lockRepo}
}

func slot(id, date, start, end, status string) *model.Slot {
	return &model.Slot{ID: id, GuideID: guideID, Date: date, StartTime: start, EndTime: end, Status: status}
}

func TestCreate_OverlapLeavesStoreUnchanged(t *testing.T) {
	f := newFixture(t, slot("existing", "2025-07-01", "10:00", "11:00", model.SlotAvailable))

	_, err := f.svc.Create(context.Background(), owner, guideID, &model.SlotRequest{
		Date: "2025-07-01", StartTime: "10:30", EndTime: "11:30",
	})
	if err == nil {
		t.Fatal("expected an overlap error")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeOverlap || appErr.StatusCode() != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 SLOT_OVERLAP, got %d %s", appErr.StatusCode(), appErr.Code)
	}
	conflicting, ok := appErr.Details["conflicting_slot"].(map[string]any)
	if !ok || conflicting["id"] != "existing" || conflicting["start_time"] != "10:00" {
		t.Errorf("expected conflicting slot details, got %v", appErr.Details)
	}
	if f.slots.count() != 1 {
		t.Errorf("expected store to be unchanged, have %d slots", f.slots.count())
	}

	created, err := f.svc.Create(context.Background(), owner, guideID, &model.SlotRequest{
		Date: "2025-07-01", StartTime: "09:00", EndTime: "10:00",
	})
	if err != nil {
		t.Fatalf("touching slot should be accepted: %v", err)
	}
	if created.Status != model.SlotAvailable {
		t.Errorf("expected default status available, got %q", created.Status)
	}
	if f.slots.count() != 2 {
		t.Errorf("expected 2 slots, have %d", f.slots.count())
	}
}

func TestCreate_OverlapCases(t *testing.T) {
	tests := []struct {
		name        string
		start, end  string
		wantOverlap bool
	}{
		{"identical", "10:00", "12:00", true},
		{"starts inside", "11:00", "13:00", true},
		{"ends inside", "09:00", "10:30", true},
		{"contains", "09:00", "13:00", true},
		{"inside", "10:30", "11:30", true},
		{"touches end", "12:00", "13:00", false},
		{"touches start", "08:00", "10:00", false},
		{"disjoint", "14:00", "15:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, slot("s1", "2025-07-01", "10:00", "12:00", model.SlotAvailable))
			_, err := f.svc.Create(context.Background(), owner, guideID, &model.SlotRequest{
				Date: "2025-07-01", StartTime: tt.start, EndTime: tt.end,
			})
			gotOverlap := apperrors.HasCode(err, apperrors.CodeOverlap)
			if gotOverlap != tt.wantOverlap {
				t.Errorf("overlap = %v, want %v (err %v)", gotOverlap, tt.wantOverlap, err)
			}
			if !tt.wantOverlap && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCreate_OtherGuideOrDayDoesNotConflict(t *testing.T) {
	other := slot("s1", "2025-07-01", "10:00", "12:00", model.SlotAvailable)
	other.GuideID = "guide-2"
	f := newFixture(t, other, slot("s2", "2025-07-02", "10:00", "12:00", model.SlotAvailable))

	if _, err := f.svc.Create(context.Background(), owner, guideID, &model.SlotRequest{
		Date: "2025-07-01", StartTime: "10:00", EndTime: "12:00",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreate_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		actor model.Actor
		guide string
		req   model.SlotRequest
		want  int
	}{
		{"end before start", owner, guideID, model.SlotRequest{Date: "2025-07-01", StartTime: "11:00", EndTime: "10:00"}, http.StatusUnprocessableEntity},
		{"empty range", owner, guideID, model.SlotRequest{Date: "2025-07-01", StartTime: "10:00", EndTime: "10:00"}, http.StatusUnprocessableEntity},
		{"bad clock", owner, guideID, model.SlotRequest{Date: "2025-07-01", StartTime: "25:00", EndTime: "26:00"}, http.StatusUnprocessableEntity},
		{"past date", owner, guideID, model.SlotRequest{Date: "2025-06-19", StartTime: "10:00", EndTime: "11:00"}, http.StatusUnprocessableEntity},
		{"bad status", owner, guideID, model.SlotRequest{Date: "2025-07-01", StartTime: "10:00", EndTime: "11:00", Status: "open"}, http.StatusUnprocessableEntity},
		{"not the owner", model.Actor{ID: "someone", Role: model.RoleGuide}, guideID, model.SlotRequest{Date: "2025-07-01", StartTime: "10:00", EndTime: "11:00"}, http.StatusForbidden},
		{"unknown guide", owner, "guide-404", model.SlotRequest{Date: "2025-07-01", StartTime: "10:00", EndTime: "11:00"}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := tt.req
			_, err := f.svc.Create(context.Background(), tt.actor, tt.guide, &req)
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := apperrors.AsAppError(err).StatusCode(); got != tt.want {
				t.Errorf("expected %d, got %d (%v)", tt.want, got, err)
			}
			if f.slots.count() != 0 {
				t.Error("rejected request must not create a slot")
			}
		})
	}
}

func TestCreate_AdminCanManageAnyGuide(t *testing.T) {
	f := newFixture(t)
	if _, err := f.svc.Create(context.Background(), admin, guideID, &model.SlotRequest{
		Date: "2025-07-01", StartTime: "10:00", EndTime: "11:00", Status: model.SlotUnavailable,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreate_HeldLockConflicts(t *testing.T) {
	f := newFixture(t)
	f.locks.locks[slotLockID(guideID, "2025-07-01")] = &model.SlotLock{ID: slotLockID(guideID, "2025-07-01")}

	_, err := f.svc.Create(context.Background(), owner, guideID, &model.SlotRequest{
		Date: "2025-07-01", StartTime: "10:00", EndTime: "11:00",
	})
	if got := apperrors.AsAppError(err).StatusCode(); got != http.StatusConflict {
		t.Fatalf("expected 409 while lock is held, got %d (%v)", got, err)
	}
}

func TestCreate_ReleasesLock(t *testing.T) {
	f := newFixture(t, slot("s1", "2025-07-01", "10:00", "11:00", model.SlotAvailable))

	_, _ = f.svc.Create(context.Background(), owner, guideID, &model.SlotRequest{Date: "2025-07-01", StartTime: "12:00", EndTime: "13:00"})
	_, _ = f.svc.Create(context.Background(), owner, guideID, &model.SlotRequest{Date: "2025-07-01", StartTime: "10:00", EndTime: "11:00"})

	if len(f.locks.locks) != 0 {
		t.Errorf("expected all locks released, have %d", len(f.locks.locks))
	}
}

func TestCreate_ConcurrentRequestsCreateOneSlot(t *testing.T) {
	f := newFixture(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = f.svc.Create(context.Background(), owner, guideID, &model.SlotRequest{
				Date: "2025-07-01", StartTime: "10:00", EndTime: "11:00",
			})
		}()
	}
	wg.Wait()

	if f.slots.count() != 1 {
		t.Errorf("expected exactly one slot, got %d", f.slots.count())
	}
}

func TestCreateBatch_WeekdaysOverTwoWeeks(t *testing.T) {
	f := newFixture(t, slot("busy", "2025-07-09", "09:30", "10:30", model.SlotAvailable))

	result, err := f.svc.CreateBatch(context.Background(), owner, guideID, &model.RecurrenceRequest{
		StartDate: "2025-07-07",
		EndDate:   "2025-07-20",
		Weekdays:  []string{"Monday", "wednesday"},
		TimeSlots: []model.TimeTemplate{{StartTime: "09:00", EndTime: "10:00"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.CreatedCount != 3 || result.SkippedCount != 1 || result.FailedCount != 0 {
		t.Fatalf("expected 3 created, 1 skipped, 0 failed; got %d/%d/%d",
			result.CreatedCount, result.SkippedCount, result.FailedCount)
	}
	var dates []string
	for _, s := range result.Created {
		dates = append(dates, s.Date)
	}
	want := []string{"2025-07-07", "2025-07-14", "2025-07-16"}
	if fmt.Sprint(dates) != fmt.Sprint(want) {
		t.Errorf("expected created dates %v, got %v", want, dates)
	}
	skipped := result.Skipped[0]
	if skipped.Date != "2025-07-09" || skipped.ConflictingSlotID != "busy" || skipped.Reason == "" {
		t.Errorf("unexpected skipped entry: %+v", skipped)
	}
	if f.slots.count() != 4 {
		t.Errorf("expected 4 stored slots, have %d", f.slots.count())
	}
}

func TestCreateBatch_SkipsOverlapWithinBatch(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.CreateBatch(context.Background(), owner, guideID, &model.RecurrenceRequest{
		StartDate: "2025-07-01",
		EndDate:   "2025-07-01",
		Weekdays:  []string{"tuesday"},
		TimeSlots: []model.TimeTemplate{
			{StartTime: "09:00", EndTime: "11:00"},
			{StartTime: "10:00", EndTime: "12:00"},
			{StartTime: "11:00", EndTime: "12:00"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.CreatedCount != 2 || result.SkippedCount != 1 {
		t.Fatalf("expected 2 created and 1 skipped, got %d/%d", result.CreatedCount, result.SkippedCount)
	}
	if result.Skipped[0].ConflictingSlotID != result.Created[0].ID {
		t.Errorf("expected skip to reference slot created earlier in the batch, got %+v", result.Skipped[0])
	}
}

func TestCreateBatch_StoreFailureCountsAsFailed(t *testing.T) {
	f := newFixture(t)
	f.slots.createErr = fmt.Errorf("write failed")

	result, err := f.svc.CreateBatch(context.Background(), owner, guideID, &model.RecurrenceRequest{
		StartDate: "2025-07-01",
		EndDate:   "2025-07-08",
		Weekdays:  []string{"tuesday"},
		TimeSlots: []model.TimeTemplate{{StartTime: "09:00", EndTime: "10:00"}},
	})
	if err != nil {
		t.Fatalf("batch must not abort on store failures: %v", err)
	}
	if result.FailedCount != 2 || result.CreatedCount != 0 {
		t.Errorf("expected 2 failed and 0 created, got %d/%d", result.FailedCount, result.CreatedCount)
	}
}

func TestCreateBatch_Limits(t *testing.T) {
	templates := make([]model.TimeTemplate, 25)
	for i := range templates {
		templates[i] = model.TimeTemplate{StartTime: fmt.Sprintf("%02d:00", i%24), EndTime: fmt.Sprintf("%02d:30", i%24)}
	}

	tests := []struct {
		name string
		req  model.RecurrenceRequest
	}{
		{"too many days", model.RecurrenceRequest{StartDate: "2025-07-01", EndDate: "2026-07-03", Weekdays: []string{"monday"}, TimeSlots: templates[:1]}},
		{"too many templates", model.RecurrenceRequest{StartDate: "2025-07-01", EndDate: "2025-07-10", Weekdays: []string{"monday"}, TimeSlots: templates}},
		{"end before start", model.RecurrenceRequest{StartDate: "2025-07-10", EndDate: "2025-07-01", Weekdays: []string{"monday"}, TimeSlots: templates[:1]}},
		{"unknown weekday", model.RecurrenceRequest{StartDate: "2025-07-01", EndDate: "2025-07-10", Weekdays: []string{"funday"}, TimeSlots: templates[:1]}},
		{"inverted template", model.RecurrenceRequest{StartDate: "2025-07-01", EndDate: "2025-07-10", Weekdays: []string{"monday"}, TimeSlots: []model.TimeTemplate{{StartTime: "10:00", EndTime: "09:00"}}}},
		{"past start", model.RecurrenceRequest{StartDate: "2025-06-01", EndDate: "2025-07-10", Weekdays: []string{"monday"}, TimeSlots: templates[:1]}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := tt.req
			_, err := f.svc.CreateBatch(context.Background(), owner, guideID, &req)
			if got := apperrors.AsAppError(err).StatusCode(); got != http.StatusUnprocessableEntity {
				t.Errorf("expected 422, got %d (%v)", got, err)
			}
		})
	}
}

func TestCreateWeekly_RepeatsOnSameWeekday(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.CreateWeekly(context.Background(), owner, guideID, &model.SlotRequest{
		Date:         "2025-07-01",
		StartTime:    "10:00",
		EndTime:      "11:00",
		RepeatWeekly: true,
		RepeatUntil:  "2025-07-15",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.CreatedCount != 3 {
		t.Errorf("expected 3 weekly slots, got %d", result.CreatedCount)
	}

	_, err = f.svc.CreateWeekly(context.Background(), owner, guideID, &model.SlotRequest{
		Date: "2025-07-01", StartTime: "10:00", EndTime: "11:00", RepeatWeekly: true,
	})
	if got := apperrors.AsAppError(err).StatusCode(); got != http.StatusUnprocessableEntity {
		t.Errorf("expected 422 without repeat_until, got %d", got)
	}
}

func TestUpdate_BookedSlotIsAdminOnly(t *testing.T) {
	booked := slot("b1", "2025-07-01", "10:00", "11:00", model.SlotBooked)
	booked.BookingID = "booking-1"
	f := newFixture(t, booked)
	end := "11:30"

	_, err := f.svc.Update(context.Background(), owner, "b1", &model.SlotUpdate{EndTime: &end})
	if got := apperrors.AsAppError(err).StatusCode(); got != http.StatusForbidden {
		t.Fatalf("expected 403 for guide, got %d (%v)", got, err)
	}
	if err := f.svc.Delete(context.Background(), owner, "b1"); apperrors.AsAppError(err).StatusCode() != http.StatusForbidden {
		t.Fatalf("expected 403 on delete for guide, got %v", err)
	}

	updated, err := f.svc.Update(context.Background(), admin, "b1", &model.SlotUpdate{EndTime: &end})
	if err != nil {
		t.Fatalf("admin update failed: %v", err)
	}
	if updated.EndTime != "11:30" || updated.BookingID != "booking-1" {
		t.Errorf("unexpected slot after admin update: %+v", updated)
	}
	if err := f.svc.Delete(context.Background(), admin, "b1"); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
	if f.slots.count() != 0 {
		t.Error("expected slot to be deleted")
	}
}

func TestUpdate_OverlapExcludesItself(t *testing.T) {
	f := newFixture(t,
		slot("s1", "2025-07-01", "10:00", "11:00", model.SlotAvailable),
		slot("s2", "2025-07-01", "12:00", "13:00", model.SlotAvailable),
	)

	end := "11:30"
	if _, err := f.svc.Update(context.Background(), owner, "s1", &model.SlotUpdate{EndTime: &end}); err != nil {
		t.Fatalf("extending into free time should succeed: %v", err)
	}

	end = "12:30"
	_, err := f.svc.Update(context.Background(), owner, "s1", &model.SlotUpdate{EndTime: &end})
	if !apperrors.HasCode(err, apperrors.CodeOverlap) {
		t.Fatalf("expected overlap with s2, got %v", err)
	}
	stored, _ := f.slots.FindByID(context.Background(), "s1")
	if stored.EndTime != "11:30" {
		t.Errorf("rejected update must not change the slot, end is %s", stored.EndTime)
	}
}

func TestUpdate_MovingDateChecksNewDay(t *testing.T) {
	f := newFixture(t,
		slot("s1", "2025-07-01", "10:00", "11:00", model.SlotAvailable),
		slot("s2", "2025-07-02", "10:30", "11:30", model.SlotAvailable),
	)
	date := "2025-07-02"
	if _, err := f.svc.Update(context.Background(), owner, "s1", &model.SlotUpdate{Date: &date}); !apperrors.HasCode(err, apperrors.CodeOverlap) {
		t.Fatalf("expected overlap on the new day, got %v", err)
	}

	past := "2025-06-01"
	if _, err := f.svc.Update(context.Background(), owner, "s1", &model.SlotUpdate{Date: &past}); apperrors.AsAppError(err).StatusCode() != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for a past date, got %v", err)
	}
}

func TestList_FiltersAndValidates(t *testing.T) {
	f := newFixture(t,
		slot("s1", "2025-07-01", "10:00", "11:00", model.SlotAvailable),
		slot("s2", "2025-07-02", "10:00", "11:00", model.SlotAvailable),
	)

	slots, err := f.svc.List(context.Background(), guideID, model.SlotFilter{Date: "2025-07-02"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 1 || slots[0].ID != "s2" {
		t.Errorf("expected only s2, got %v", slots)
	}

	if _, err := f.svc.List(context.Background(), guideID, model.SlotFilter{Date: "07/02/2025"}); apperrors.AsAppError(err).StatusCode() != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed date, got %v", err)
	}
	if _, err := f.svc.List(context.Background(), guideID, model.SlotFilter{From: "2025-07-05", To: "2025-07-01"}); apperrors.AsAppError(err).StatusCode() != http.StatusBadRequest {
		t.Errorf("expected 400 for inverted range, got %v", err)
	}
	if _, err := f.svc.List(context.Background(), "guide-404", model.SlotFilter{}); apperrors.AsAppError(err).StatusCode() != http.StatusNotFound {
		t.Errorf("expected 404 for unknown guide, got %v", err)
	}
}

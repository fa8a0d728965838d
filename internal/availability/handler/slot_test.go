package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "tourism/pkg/errors"
	"tourism/pkg/logger"
	"tourism/pkg/middleware"
	"tourism/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockAvailabilityService struct {
	createCalls int
	weeklyCalls int
	lastFilter  model.SlotFilter
}

func (m *mockAvailabilityService) Create(ctx context.Context, actor model.Actor, guideID string, req *model.SlotRequest) (*model.Slot, error) {
	m.createCalls++
	if req.StartTime == "10:30" {
		return nil, apperrors.Overlap("Slot overlaps an existing slot from 10:00 to 11:00", map[string]any{"id": "s1"})
	}
	return &model.Slot{ID: "s2", GuideID: guideID, Date: req.Date, StartTime: req.StartTime, EndTime: req.EndTime}, nil
}

func (m *mockAvailabilityService) CreateWeekly(ctx context.Context, actor model.Actor, guideID string, req *model.SlotRequest) (*model.BatchResult, error) {
	m.weeklyCalls++
	return &model.BatchResult{CreatedCount: 3}, nil
}

func (m *mockAvailabilityService) CreateBatch(ctx context.Context, actor model.Actor, guideID string, req *model.RecurrenceRequest) (*model.BatchResult, error) {
	return &model.BatchResult{CreatedCount: 3, SkippedCount: 1}, nil
}

func (m *mockAvailabilityService) List(ctx context.Context, guideID string, filter model.SlotFilter) ([]*model.Slot, error) {
	m.lastFilter = filter
	return []*model.Slot{}, nil
}

func (m *mockAvailabilityService) Update(ctx context.Context, actor model.Actor, id string, updates *model.SlotUpdate) (*model.Slot, error) {
	return &model.Slot{ID: id}, nil
}

func (m *mockAvailabilityService) Delete(ctx context.Context, actor model.Actor, id string) error {
	return nil
}

func serve(t *testing.T, svc *mockAvailabilityService, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	router := httprouter.New()
	NewAvailabilityHandler(svc, logger.New(logger.Config{Level: logger.ERROR, Output: io.Discard})).RegisterRoutes(router)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req = req.WithContext(middleware.ContextWithActor(req.Context(), model.Actor{ID: "owner-1", Role: model.RoleGuide}))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreate_OverlapIs422WithConflictingSlot(t *testing.T) {
	svc := &mockAvailabilityService{}
	rec := serve(t, svc, http.MethodPost, "/api/v1/guides/g1/availabilities",
		`{"date":"2025-07-01","start_time":"10:30","end_time":"11:30"}`)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Status  string         `json:"status"`
		Code    string         `json:"code"`
		Details map[string]any `json:"details"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if body.Status != "error" || body.Code != apperrors.CodeOverlap {
		t.Errorf("unexpected envelope: %+v", body)
	}
	if _, ok := body.Details["conflicting_slot"]; !ok {
		t.Errorf("expected conflicting_slot in details, got %v", body.Details)
	}
}

func TestCreate_RepeatWeeklyUsesBatch(t *testing.T) {
	svc := &mockAvailabilityService{}
	rec := serve(t, svc, http.MethodPost, "/api/v1/guides/g1/availabilities",
		`{"date":"2025-07-01","start_time":"10:00","end_time":"11:00","repeat_weekly":true,"repeat_until":"2025-07-15"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.weeklyCalls != 1 || svc.createCalls != 0 {
		t.Errorf("expected weekly path, got create=%d weekly=%d", svc.createCalls, svc.weeklyCalls)
	}
}

func TestList_PassesFilter(t *testing.T) {
	svc := &mockAvailabilityService{}
	rec := serve(t, svc, http.MethodGet, "/api/v1/guides/g1/availabilities?from=2025-07-01&to=2025-07-31", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastFilter.From != "2025-07-01" || svc.lastFilter.To != "2025-07-31" {
		t.Errorf("unexpected filter: %+v", svc.lastFilter)
	}
}

func TestDelete_NoContent(t *testing.T) {
	rec := serve(t, &mockAvailabilityService{}, http.MethodDelete, "/api/v1/availabilities/s1", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

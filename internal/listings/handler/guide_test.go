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
	httputil "tourism/pkg/http"
	"tourism/pkg/logger"
	"tourism/pkg/middleware"
	"tourism/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockGuideService struct {
	createFunc func(ctx context.Context, actor model.Actor, guide *model.Guide) error
	getFunc    func(ctx context.Context, actor model.Actor, id string) (*model.Guide, error)
}

func (m *mockGuideService) Create(ctx context.Context, actor model.Actor, guide *model.Guide) error {
	return m.createFunc(ctx, actor, guide)
}

func (m *mockGuideService) GetByID(ctx context.Context, actor model.Actor, id string) (*model.Guide, error) {
	return m.getFunc(ctx, actor, id)
}

func (m *mockGuideService) GetAll(ctx context.Context, actor model.Actor, filter model.ListingFilter, limit int, offset int64) ([]*model.Guide, int64, error) {
	return []*model.Guide{}, 0, nil
}

func (m *mockGuideService) Update(ctx context.Context, actor model.Actor, id string, updates *model.GuideUpdate) (*model.Guide, error) {
	return nil, nil
}

func (m *mockGuideService) SetFlags(ctx context.Context, actor model.Actor, id string, flags *model.GuideFlags) (*model.Guide, error) {
	return nil, nil
}

func (m *mockGuideService) Delete(ctx context.Context, actor model.Actor, id string) error {
	return nil
}

func newRouter(svc *mockGuideService) *httprouter.Router {
	router := httprouter.New()
	log := logger.New(logger.Config{Level: logger.ERROR, Output: io.Discard})
	NewGuideHandler(svc, log).RegisterRoutes(router)
	return router
}

func withActor(r *http.Request, actor model.Actor) *http.Request {
	return r.WithContext(middleware.ContextWithActor(r.Context(), actor))
}

func TestGuideHandler_Create(t *testing.T) {
	svc := &mockGuideService{
		createFunc: func(ctx context.Context, actor model.Actor, guide *model.Guide) error {
			guide.ID = "g1"
			guide.UserID = actor.ID
			return nil
		},
	}
	router := newRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/guides", strings.NewReader(`{"name":"Amina","languages":["en"]}`))
	req = withActor(req, model.Actor{ID: "u1", Role: model.RoleGuide})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var env struct {
		Status string      `json:"status"`
		Data   model.Guide `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if env.Status != httputil.StatusSuccess || env.Data.ID != "g1" || env.Data.UserID != "u1" {
		t.Errorf("unexpected envelope: %+v", env)
	}
}

func TestGuideHandler_Errors(t *testing.T) {
	svc := &mockGuideService{
		createFunc: func(ctx context.Context, actor model.Actor, guide *model.Guide) error {
			return apperrors.Forbidden("Only guides can create a guide profile")
		},
		getFunc: func(ctx context.Context, actor model.Actor, id string) (*model.Guide, error) {
			return nil, apperrors.NotFoundWithID("Guide", id)
		},
	}
	router := newRouter(svc)
	actor := model.Actor{ID: "u1", Role: model.RoleCustomer}

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		actor  *model.Actor
		want   int
	}{
		{"no actor", http.MethodGet, "/api/v1/guides/g1", "", nil, http.StatusUnauthorized},
		{"not found", http.MethodGet, "/api/v1/guides/g1", "", &actor, http.StatusNotFound},
		{"bad body", http.MethodPost, "/api/v1/guides", "{", &actor, http.StatusBadRequest},
		{"forbidden", http.MethodPost, "/api/v1/guides", `{"name":"x"}`, &actor, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.actor != nil {
				req = withActor(req, *tt.actor)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
			var env httputil.Envelope
			if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if env.Status != httputil.StatusError {
				t.Errorf("expected error status, got %q", env.Status)
			}
		})
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tourism/pkg/model"
)

func TestRateLimiter_Allow(t *testing.T) {
	limiter := NewRateLimiter(2, time.Minute, nil, testLogger())
	defer limiter.Stop()

	current := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return current }

	if !limiter.Allow("actor:a") || !limiter.Allow("actor:a") {
		t.Fatal("first two requests should be allowed")
	}
	if limiter.Allow("actor:a") {
		t.Error("third request inside the window should be rejected")
	}
	if !limiter.Allow("actor:b") {
		t.Error("a different key has its own budget")
	}

	current = current.Add(time.Minute)
	if !limiter.Allow("actor:a") {
		t.Error("request after the window should be allowed again")
	}
}

func TestRateLimit_Middleware(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute, ActorKey, testLogger())
	defer limiter.Stop()

	handler := RateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	newRequest := func(actorID string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/guides", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		if actorID != "" {
			req = req.WithContext(ContextWithActor(req.Context(), model.Actor{ID: actorID, Role: model.RoleCustomer}))
		}
		return req
	}

	tests := []struct {
		name       string
		actorID    string
		wantStatus int
	}{
		{"first call for actor", "c-1", http.StatusOK},
		{"second call for actor", "c-1", http.StatusTooManyRequests},
		{"other actor same ip", "c-2", http.StatusOK},
		{"anonymous by ip", "", http.StatusOK},
		{"anonymous again", "", http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, newRequest(tt.actorID))
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

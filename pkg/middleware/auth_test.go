package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httputil "tourism/pkg/http"
	"tourism/pkg/logger"
	"tourism/pkg/model"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: logger.ERROR, Format: logger.JSON, Output: io.Discard})
}

func signToken(t *testing.T, subject, role string, expiresIn time.Duration) string {
	t.Helper()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func TestAuthenticate(t *testing.T) {
	auth, err := NewAuthenticator(AuthConfig{Secret: testSecret}, testLogger())
	if err != nil {
		t.Fatalf("NewAuthenticator() error = %v", err)
	}

	var seen model.Actor
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = ActorFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := Authenticate(auth, testLogger())(next)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantActor  model.Actor
	}{
		{
			name:       "valid customer token",
			header:     "Bearer " + signToken(t, "user-1", "customer", time.Hour),
			wantStatus: http.StatusOK,
			wantActor:  model.Actor{ID: "user-1", Role: model.RoleCustomer},
		},
		{
			name:       "lowercase scheme",
			header:     "bearer " + signToken(t, "admin-1", "admin", time.Hour),
			wantStatus: http.StatusOK,
			wantActor:  model.Actor{ID: "admin-1", Role: model.RoleAdmin},
		},
		{
			name:       "missing header",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			header:     "Basic abc",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired token",
			header:     "Bearer " + signToken(t, "user-1", "customer", -time.Hour),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unknown role",
			header:     "Bearer " + signToken(t, "user-1", "superuser", time.Hour),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing subject",
			header:     "Bearer " + signToken(t, "", "guide", time.Hour),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			header:     "Bearer not.a.token",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = model.Actor{}
			req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if seen != tt.wantActor {
				t.Errorf("actor = %+v, want %+v", seen, tt.wantActor)
			}
			if tt.wantStatus == http.StatusUnauthorized {
				var env httputil.Envelope
				if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
					t.Fatalf("failed to decode envelope: %v", err)
				}
				if env.Status != httputil.StatusError {
					t.Errorf("envelope status = %q, want %q", env.Status, httputil.StatusError)
				}
			}
		})
	}
}

func TestAuthenticator_RejectsOtherSigningMethod(t *testing.T) {
	auth, err := NewAuthenticator(AuthConfig{Secret: testSecret}, testLogger())
	if err != nil {
		t.Fatalf("NewAuthenticator() error = %v", err)
	}

	claims := Claims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	if _, err := auth.Verify(raw); err == nil {
		t.Error("Verify() accepted an HS512 token")
	}
}

func TestNewAuthenticator_RequiresKeyMaterial(t *testing.T) {
	if _, err := NewAuthenticator(AuthConfig{}, testLogger()); err == nil {
		t.Error("NewAuthenticator() with no secret or JWKS URL should fail")
	}
}

func TestRequireActor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, err := RequireActor(req.Context()); err == nil {
		t.Error("RequireActor() without actor should fail")
	}

	ctx := ContextWithActor(req.Context(), model.Actor{ID: "g-1", Role: model.RoleGuide})
	actor, err := RequireActor(ctx)
	if err != nil {
		t.Fatalf("RequireActor() error = %v", err)
	}
	if actor.ID != "g-1" || !actor.Is(model.RoleGuide) {
		t.Errorf("RequireActor() = %+v", actor)
	}
}

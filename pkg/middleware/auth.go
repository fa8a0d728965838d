package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	apperrors "tourism/pkg/errors"
	httputil "tourism/pkg/http"
	"tourism/pkg/logger"
	"tourism/pkg/model"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
)

type actorKey struct{}

// Claims are the bearer token claims issued by the external auth service.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type AuthConfig struct {
	Secret  string
	JWKSURL string
	Issuer  string
}

type Authenticator struct {
	keyfunc jwt.Keyfunc
	jwks    *keyfunc.JWKS
	parser  *jwt.Parser
	log     *logger.Logger
}

// NewAuthenticator verifies RS/ES tokens against a JWKS endpoint when one is
// configured and HS256 tokens against the shared secret otherwise.
func NewAuthenticator(cfg AuthConfig, log *logger.Logger) (*Authenticator, error) {
	a := &Authenticator{log: log}
	opts := []jwt.ParserOption{jwt.WithExpirationRequired(), jwt.WithLeeway(30 * time.Second)}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	switch {
	case cfg.JWKSURL != "":
		jwks, err := keyfunc.Get(cfg.JWKSURL, keyfunc.Options{
			RefreshInterval: time.Hour,
			RefreshTimeout:  10 * time.Second,
			RefreshErrorHandler: func(err error) {
				log.Error("Failed to refresh JWKS", "url", cfg.JWKSURL, "error", err)
			},
			RefreshUnknownKID: true,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to load JWKS from %s: %w", cfg.JWKSURL, err)
		}
		a.jwks = jwks
		a.keyfunc = jwks.Keyfunc
		opts = append(opts, jwt.WithValidMethods([]string{"RS256", "ES256"}))
	case cfg.Secret != "":
		secret := []byte(cfg.Secret)
		a.keyfunc = func(t *jwt.Token) (any, error) {
			return secret, nil
		}
		opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	default:
		return nil, errors.New("either a JWT secret or a JWKS URL is required")
	}

	a.parser = jwt.NewParser(opts...)
	return a, nil
}

// Verify parses a raw bearer token into the calling actor.
func (a *Authenticator) Verify(raw string) (model.Actor, error) {
	token, err := a.parser.ParseWithClaims(raw, &Claims{}, a.keyfunc)
	if err != nil {
		return model.Actor{}, fmt.Errorf("token validation failed: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return model.Actor{}, errors.New("invalid or expired token")
	}
	if claims.Subject == "" {
		return model.Actor{}, errors.New("token has no subject")
	}

	role := model.Role(claims.Role)
	if !role.Valid() {
		return model.Actor{}, fmt.Errorf("unknown role %q", claims.Role)
	}

	return model.Actor{ID: claims.Subject, Role: role}, nil
}

func (a *Authenticator) Close() {
	if a.jwks != nil {
		a.jwks.EndBackground()
	}
}

func Authenticate(a *Authenticator, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				httputil.WriteError(w, apperrors.Unauthorized("Missing bearer token"))
				return
			}

			actor, err := a.Verify(raw)
			if err != nil {
				log.Warn("Rejected bearer token",
					"request_id", logger.RequestID(r.Context()),
					"path", r.URL.Path,
					"error", err,
				)
				httputil.WriteError(w, apperrors.Unauthorized("Invalid or expired token"))
				return
			}

			recordActor(r.Context(), actor)
			next.ServeHTTP(w, r.WithContext(ContextWithActor(r.Context(), actor)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func ContextWithActor(ctx context.Context, actor model.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

func ActorFromContext(ctx context.Context) (model.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(model.Actor)
	return actor, ok
}

// RequireActor returns the authenticated actor or a 401 AppError.
func RequireActor(ctx context.Context) (model.Actor, error) {
	actor, ok := ActorFromContext(ctx)
	if !ok || actor.ID == "" {
		return model.Actor{}, apperrors.Unauthorized("Authentication required")
	}
	return actor, nil
}

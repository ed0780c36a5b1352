package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/jobboard/internal/core/domain"
	"github.com/vncsmyrnk/jobboard/internal/core/ports"
)

type contextKey string

const IdentityKey contextKey = "identity"

const (
	accessTokenCookie  = "access_token"
	refreshTokenCookie = "refresh_token"
)

// IdentityFrom returns the caller resolved by the Guard middleware.
func IdentityFrom(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(domain.Identity)
	return identity, ok
}

// Guard resolves the caller from the session token and gates routes by
// authentication and role.
type Guard struct {
	authService ports.AuthService
}

func NewGuard(authService ports.AuthService) *Guard {
	return &Guard{authService: authService}
}

// RequireAuth rejects requests without a valid access token.
func (g *Guard) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := g.authService.Authenticate(r.Context(), accessToken(r))
		if err != nil {
			_, message := statusFor(err)
			writeError(w, http.StatusUnauthorized, message)
			return
		}

		ctx := context.WithValue(r.Context(), IdentityKey, *identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth attaches the identity when the access token is valid and lets
// the request through either way.
func (g *Guard) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if identity, err := g.authService.Authenticate(r.Context(), accessToken(r)); err == nil {
			r = r.WithContext(context.WithValue(r.Context(), IdentityKey, *identity))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole must run after RequireAuth.
func RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFrom(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "missing session token")
				return
			}
			if !identity.Is(role) {
				writeError(w, http.StatusForbidden, "only "+string(role)+"s can perform this action")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// accessToken reads the access token from its cookie, falling back to an
// Authorization: Bearer header for non-browser clients.
func accessToken(r *http.Request) string {
	if cookie, err := r.Cookie(accessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

func RequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("http request",
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

// Recoverer turns panics into a generic 500 envelope. A handler that already
// started its response keeps it; the panic is only logged.
func Recoverer(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				logger.Error("panic while serving request",
					zap.String("request_id", middleware.GetReqID(r.Context())),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Any("panic", rec),
					zap.Int("status_sent", ww.Status()),
					zap.Stack("stack"),
				)
				if ww.Status() != 0 {
					return
				}
				writeError(ww, http.StatusInternalServerError, "internal server error")
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// RouteSpanName renames the request span after the matched route pattern,
// e.g. "PUT /api/v1/jobs/{id}", once routing is done.
func RouteSpanName(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)

		rctx := chi.RouteContext(r.Context())
		if rctx == nil {
			return
		}
		if pattern := rctx.RoutePattern(); pattern != "" {
			trace.SpanFromContext(r.Context()).SetName(r.Method + " " + pattern)
		}
	})
}

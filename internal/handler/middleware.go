package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"time-control-api/internal/apperr"
	"time-control-api/internal/models"
	"time-control-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	ctxKeyUser      contextKey = "user"
	ctxKeyRequestID contextKey = "request_id"
)

const (
	msgMissingToken = "Debe iniciar sesión para acceder."
	msgAdminOnly    = "Esta operación requiere permisos de administrador."
)

// RequestID tags every request with a fresh id, echoed in the X-Request-Id
// header and carried in the log fields.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)
		ctx := context.WithValue(r.Context(), ctxKeyRequestID, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestLogger logs one line per request.
func RequestLogger(logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)

			logger.WithFields(logrus.Fields{
				"request_id": requestIDFrom(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
				"duration":   time.Since(start).String(),
			}).Info("Request handled")
		})
	}
}

// Protect rejects requests without a valid bearer token and loads the session
// user into the request context.
func Protect(auth *service.AuthService, logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeError(w, r, logger, apperr.NewUnauthorized(msgMissingToken))
				return
			}

			user, err := auth.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeError(w, r, logger, err)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly must run after Protect.
func AdminOnly(logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := userFrom(r.Context())
			if user == nil || !user.IsAdmin() {
				writeError(w, r, logger, apperr.NewForbidden(msgAdminOnly))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func userFrom(ctx context.Context) *models.User {
	user, _ := ctx.Value(ctxKeyUser).(*models.User)
	return user
}

func requestIDFrom(ctx context.Context) string {
	requestID, _ := ctx.Value(ctxKeyRequestID).(string)
	return requestID
}

package rest

import (
	"bytes"
	"context"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/Gthulhu/schedsim/pkg/logger"
	"github.com/Gthulhu/schedsim/simulator/domain"
	"github.com/rs/xid"
)

type claimsKey struct{}

// AuthMiddleware requires a valid bearer token when token auth is enabled.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.Svc.TokenEnabled() {
			next.ServeHTTP(w, r)
			return
		}
		ctx := r.Context()
		tokenString := r.Header.Get("Authorization")
		if tokenString == "" {
			h.ErrorResponse(ctx, w, http.StatusUnauthorized, "Missing Authorization header", nil)
			return
		}

		const bearerPrefix = "Bearer "
		if len(tokenString) <= len(bearerPrefix) || !strings.EqualFold(tokenString[:len(bearerPrefix)], bearerPrefix) {
			h.ErrorResponse(ctx, w, http.StatusUnauthorized, "Invalid Authorization header format", nil)
			return
		}
		tokenString = tokenString[len(bearerPrefix):]

		claims, err := h.Svc.VerifyToken(ctx, tokenString)
		if err != nil {
			h.HandleError(ctx, w, err)
			return
		}

		log := logger.Logger(ctx).With().Str("client_id", claims.ClientID).Logger()
		ctx = log.WithContext(ctx)
		ctx = context.WithValue(ctx, claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClaimsFromContext returns the claims AuthMiddleware verified.
func (h *Handler) GetClaimsFromContext(ctx context.Context) (domain.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(domain.Claims)
	return claims, ok
}

func LoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ctx := r.Context()
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = xid.New().String()
		}
		start := time.Now()
		log := logger.Logger(ctx).With().
			Str("method", r.Method).Str("req_id", reqID).
			Str("url", r.URL.String()).Logger()

		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("panic", err).Msgf("Recovered from panic, stack trace: %s", string(debug.Stack()))
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()

		ctx = log.WithContext(ctx)
		r = r.WithContext(ctx)
		w.Header().Set("X-Request-ID", reqID)
		responseWriter := NewResponseWriter(w)
		next.ServeHTTP(responseWriter, r)
		cost := time.Since(start)
		log = log.With().
			Int("cost_msec", int(cost.Milliseconds())).
			Logger()
		if responseWriter.statusCode >= 500 {
			log.Error().
				Int("status_code", responseWriter.statusCode).
				Str("response_body", responseWriter.responseBody.String()).
				Msg("Request completed with server error")
		} else if responseWriter.statusCode >= 400 {
			log.Warn().
				Int("status_code", responseWriter.statusCode).
				Str("response_body", responseWriter.responseBody.String()).
				Msg("Request completed with client error")
		} else {
			log.Info().
				Int("status_code", responseWriter.statusCode).
				Msg("Request completed successfully")
		}
	})
}

type responseWriter struct {
	http.ResponseWriter
	responseBody bytes.Buffer
	statusCode   int
}

func NewResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Write keeps error bodies only; successful reports can be large.
func (rw *responseWriter) Write(b []byte) (int, error) {
	if rw.statusCode >= http.StatusBadRequest {
		rw.responseBody.Write(b)
	}
	return rw.ResponseWriter.Write(b)
}

package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Gthulhu/schedsim/pkg/logger"
	"github.com/Gthulhu/schedsim/pkg/util"
	"github.com/Gthulhu/schedsim/simulator/domain"
	"github.com/Gthulhu/schedsim/simulator/errs"
	"go.uber.org/fx"
)

const (
	serviceName    = "Scheduling Simulator API Server"
	serviceVersion = "1.0.0"
)

func ServiceVersion() string {
	return serviceVersion
}

// ErrorResponse represents error response structure
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// SuccessResponse represents the success response structure
type SuccessResponse[T any] struct {
	Success   bool   `json:"success"`
	Data      *T     `json:"data,omitempty"`
	Timestamp string `json:"timestamp"`
}

type EmptyResponse struct{}

func NewSuccessResponse[T any](data *T) SuccessResponse[T] {
	return SuccessResponse[T]{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

type Params struct {
	fx.In
	Svc domain.Service
}

func NewHandler(params Params) (*Handler, error) {
	return &Handler{
		Svc: params.Svc,
	}, nil
}

type Handler struct {
	Svc domain.Service
}

func (h *Handler) JSONResponse(ctx context.Context, w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		logger.Logger(ctx).Error().Err(err).Msg("Failed to encode JSON response")
		http.Error(w, "Failed to encode JSON response", http.StatusInternalServerError)
	}
}

func (h *Handler) JSONBind(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	err := decoder.Decode(dst)
	if err != nil {
		return err
	}
	return nil
}

func (h *Handler) ErrorResponse(ctx context.Context, w http.ResponseWriter, status int, errMsg string, err error) {
	if err != nil {
		logger.Logger(ctx).Warn().Err(err).Msg(errMsg)
	}
	resp := ErrorResponse{
		Success: false,
		Error:   errMsg,
	}
	h.JSONResponse(ctx, w, status, resp)
}

// HandleError writes err with the status errs.FromError assigns to it.
func (h *Handler) HandleError(ctx context.Context, w http.ResponseWriter, err error) {
	httpErr := errs.FromError(err)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		logger.Logger(ctx).Error().Err(err).Msg("request failed")
	}
	h.ErrorResponse(ctx, w, httpErr.StatusCode, httpErr.Message, nil)
}

// Version godoc
// @Summary Service version
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Router /version [get]
func (h *Handler) Version(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"message":   serviceName,
		"version":   serviceVersion,
		"endpoints": "/api/v1/simulations (GET, POST), /api/v1/simulations/compare (POST), /api/v1/simulations/{runID} (GET, DELETE), /api/v1/simulations/{runID}/gantt (GET), /api/v1/auth/token (POST), /metrics (GET), /health (GET)",
	}
	h.JSONResponse(r.Context(), w, http.StatusOK, response)
}

// HealthCheck godoc
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} map[string]any
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"status":     "healthy",
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"service":    serviceName,
		"machine_id": util.GetMachineID(),
		"token_auth": h.Svc.TokenEnabled(),
	}
	h.JSONResponse(r.Context(), w, http.StatusOK, response)
}

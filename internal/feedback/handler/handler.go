// Package handler exposes the feedback persistence endpoint. The response
// envelope is a public contract consumed by the wizard's HTTP submitter:
// 201 {success,id} / 400 {error} / 500 {error,message}.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"prakan/internal/feedback"
	"prakan/internal/platform/middleware"
	dErrors "prakan/pkg/domain-errors"
	"prakan/pkg/httputil"
)

// Service defines the feedback operations the handler needs.
type Service interface {
	Submit(ctx context.Context, sub feedback.Submission) (*feedback.Record, error)
}

// Handler handles the POST /feedback endpoint.
type Handler struct {
	service Service
	logger  *slog.Logger
	limiter *middleware.RateLimiter
}

// New creates a feedback Handler. limiter may be nil to disable rate
// limiting (tests).
func New(service Service, logger *slog.Logger, limiter *middleware.RateLimiter) *Handler {
	return &Handler{service: service, logger: logger, limiter: limiter}
}

// Register mounts the feedback routes.
func (h *Handler) Register(r chi.Router) {
	if h.limiter != nil {
		r.With(h.limiter.Middleware).Post("/feedback", h.handleSubmit)
		return
	}
	r.Post("/feedback", h.handleSubmit)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var sub feedback.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		h.logger.WarnContext(ctx, "invalid feedback body",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
		return
	}

	record, err := h.service.Submit(ctx, sub)
	if err != nil {
		switch {
		case dErrors.HasCode(err, dErrors.CodeValidation), dErrors.HasCode(err, dErrors.CodeBadRequest):
			httputil.WriteJSON(w, http.StatusBadRequest, map[string]string{
				"error": messageOf(err),
			})
		default:
			h.logger.ErrorContext(ctx, "feedback submit failed",
				"request_id", requestID,
				"error", err.Error(),
			)
			httputil.WriteJSON(w, http.StatusInternalServerError, map[string]string{
				"error":   "Internal server error",
				"message": messageOf(err),
			})
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"id":      record.ID,
	})
}

func messageOf(err error) string {
	var de *dErrors.Error
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}

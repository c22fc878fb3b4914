// Package handler exposes the wizard session API. Each route applies one
// state-machine transition and returns the updated session view.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"prakan/internal/contribution"
	"prakan/internal/scheme"
	"prakan/internal/wizard"
	dErrors "prakan/pkg/domain-errors"
	"prakan/pkg/httputil"
)

// Service defines the wizard operations the handler needs.
type Service interface {
	Create(ctx context.Context) (*wizard.Session, error)
	Get(ctx context.Context, id string) (*wizard.Session, error)
	SelectScheme(ctx context.Context, id string, choice scheme.Scheme) (*wizard.Session, error)
	Advance(ctx context.Context, id string) (*wizard.Session, error)
	Back(ctx context.Context, id string) (*wizard.Session, error)
	ToggleBenefit(ctx context.Context, id, benefit string) (*wizard.Session, error)
	PatchRespondent(ctx context.Context, id string, patch wizard.RespondentPatch) (*wizard.Session, error)
	PatchSuggestions(ctx context.Context, id string, patch wizard.SuggestionsPatch) (*wizard.Session, error)
	Submit(ctx context.Context, id string) (*wizard.Session, error)
	Delete(ctx context.Context, id string) error
}

// Handler handles the /sessions routes.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the session routes.
func (h *Handler) Register(r chi.Router) {
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Delete("/", h.handleDelete)
			r.Post("/scheme", h.handleSelectScheme)
			r.Post("/advance", h.handleAdvance)
			r.Post("/back", h.handleBack)
			r.Post("/respondent", h.handlePatchRespondent)
			r.Post("/suggestions", h.handlePatchSuggestions)
			r.Post("/benefits/toggle", h.handleToggleBenefit)
			r.Post("/submit", h.handleSubmit)
		})
	})
}

// sessionView is the session plus the display fields the screens derive from
// it: the benefit list for the selected scheme and the computed contribution
// total.
type sessionView struct {
	*wizard.Session
	Benefits          []string `json:"benefits"`
	TotalContribution string   `json:"totalContribution,omitempty"`
}

func newSessionView(session *wizard.Session) sessionView {
	view := sessionView{
		Session:  session,
		Benefits: []string{},
	}
	if session.Scheme != "" {
		view.Benefits = scheme.BenefitsFor(session.Scheme)
	}

	var total float64
	switch scheme.BucketOf(session.Scheme) {
	case scheme.BucketDualRegime:
		total = contribution.DualRegimeTotal(
			session.Respondent.YearsSection33,
			session.Respondent.MonthsSection33,
			session.Respondent.MonthlySection33,
			session.Respondent.YearsSection39,
			session.Respondent.MonthsSection39,
		)
	case scheme.BucketSentinel:
		// Unregistered respondents have nothing to total.
	default:
		months := ""
		if session.Respondent.MonthsContributing != nil {
			months = *session.Respondent.MonthsContributing
		}
		total = contribution.Total(
			session.Respondent.YearsContributing,
			months,
			session.Respondent.MonthlyContribution,
		)
	}
	if total > 0 {
		view.TotalContribution = contribution.FormatAmount(total)
	}
	return view
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.Create(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, newSessionView(session))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.Get(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newSessionView(session))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSelectScheme(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Scheme scheme.Scheme `json:"scheme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	session, err := h.service.SelectScheme(r.Context(), chi.URLParam(r, "sessionID"), body.Scheme)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newSessionView(session))
}

func (h *Handler) handleAdvance(w http.ResponseWriter, r *http.Request) {
	h.applyTransition(w, r, h.service.Advance)
}

func (h *Handler) handleBack(w http.ResponseWriter, r *http.Request) {
	h.applyTransition(w, r, h.service.Back)
}

func (h *Handler) applyTransition(w http.ResponseWriter, r *http.Request, op func(context.Context, string) (*wizard.Session, error)) {
	session, err := op(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newSessionView(session))
}

func (h *Handler) handlePatchRespondent(w http.ResponseWriter, r *http.Request) {
	var patch wizard.RespondentPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	session, err := h.service.PatchRespondent(r.Context(), chi.URLParam(r, "sessionID"), patch)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newSessionView(session))
}

func (h *Handler) handlePatchSuggestions(w http.ResponseWriter, r *http.Request) {
	var patch wizard.SuggestionsPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	session, err := h.service.PatchSuggestions(r.Context(), chi.URLParam(r, "sessionID"), patch)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newSessionView(session))
}

func (h *Handler) handleToggleBenefit(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Benefit string `json:"benefit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	session, err := h.service.ToggleBenefit(r.Context(), chi.URLParam(r, "sessionID"), body.Benefit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newSessionView(session))
}

// handleSubmit runs the submission pipeline. Pipeline failures are carried in
// the session's submission status with a 200, so the client can keep the
// entered data on screen; only transition misuse or storage trouble becomes
// an HTTP error.
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.Submit(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newSessionView(session))
}

// Package handler serves the static scheme and benefit catalog.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"prakan/internal/scheme"
	dErrors "prakan/pkg/domain-errors"
	"prakan/pkg/httputil"
)

// Handler handles catalog reads. The catalog is compiled in, so there is no
// service layer underneath.
type Handler struct{}

func New() *Handler {
	return &Handler{}
}

// Register mounts the catalog routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/schemes", h.handleListSchemes)
	r.Get("/schemes/{schemeID}/benefits", h.handleSchemeBenefits)
	r.Get("/benefits/{name}", h.handleBenefitDetail)
}

type schemeView struct {
	ID                         scheme.Scheme `json:"id"`
	DefaultMonthlyContribution string        `json:"defaultMonthlyContribution,omitempty"`
}

type benefitView struct {
	Name   string         `json:"name"`
	Detail *scheme.Detail `json:"detail,omitempty"`
}

func (h *Handler) handleListSchemes(w http.ResponseWriter, _ *http.Request) {
	all := scheme.All()
	views := make([]schemeView, 0, len(all))
	for _, s := range all {
		views = append(views, schemeView{
			ID:                         s,
			DefaultMonthlyContribution: scheme.DefaultMonthlyContribution(s),
		})
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"schemes": views})
}

func (h *Handler) handleSchemeBenefits(w http.ResponseWriter, r *http.Request) {
	s := scheme.Scheme(chi.URLParam(r, "schemeID"))
	if !s.Valid() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "unknown scheme "+string(s)))
		return
	}

	names := scheme.BenefitsFor(s)
	views := make([]benefitView, 0, len(names))
	for _, name := range names {
		view := benefitView{Name: name}
		if d, ok := scheme.DetailForScheme(s, name); ok {
			detail := d
			view.Detail = &detail
		}
		views = append(views, view)
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"scheme":   s,
		"benefits": views,
	})
}

func (h *Handler) handleBenefitDetail(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	detail, ok := scheme.DetailFor(name)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "no detail for benefit "+name))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"name":   name,
		"detail": detail,
	})
}

// Package http provides http transport for route assessment
package http

import (
	stdhttp "net/http"

	"safetymapper/internal/modkit/httpkit"
	"safetymapper/internal/services/routes/domain"
	svc "safetymapper/internal/services/routes/service"
)

// Register mounts route assessment endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.AssessInput](r, "/assess", h.assess)
	httpkit.PostJSON[domain.CompareInput](r, "/compare", h.compare)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /routes/assess Routes routesAssess
// @Summary Score one route
// @Tags Routes
// @Accept json
// @Produce json
// @Param payload body domain.AssessInput true "Route to score"
// @Success 200 {object} domain.Verdict "ok"
// @Router /routes/assess [post]
func (h *handlers) assess(r *stdhttp.Request, in domain.AssessInput) (any, error) {
	return h.svc.Assess(r.Context(), in)
}

// swagger:route POST /routes/compare Routes routesCompare
// @Summary Rank alternative routes safest first
// @Tags Routes
// @Accept json
// @Produce json
// @Param payload body domain.CompareInput true "Candidates to rank"
// @Success 200 {object} domain.CompareOutput "ok"
// @Router /routes/compare [post]
func (h *handlers) compare(r *stdhttp.Request, in domain.CompareInput) (any, error) {
	return h.svc.Compare(r.Context(), in)
}

// Package http provides http transport for incidents
package http

import (
	stdhttp "net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"safetymapper/internal/modkit/httpkit"
	perr "safetymapper/internal/platform/errors"
	"safetymapper/internal/services/incidents/domain"
	svc "safetymapper/internal/services/incidents/service"
)

// Register mounts incident endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.CreateInput](r, "/", h.create)
	httpkit.Get(r, "/", h.recent)
	httpkit.Post(r, "/{id}/archive", h.archive)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /incidents Incidents incidentsCreate
// @Summary Report a new incident
// @Tags Incidents
// @Accept json
// @Produce json
// @Param payload body domain.CreateInput true "Incident report"
// @Success 200 {object} domain.Incident "ok"
// @Router /incidents [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CreateInput) (any, error) {
	return h.svc.Create(r.Context(), in)
}

// swagger:route GET /incidents Incidents incidentsRecent
// @Summary Recent incidents in an hour window
// @Tags Incidents
// @Produce json
// @Param hours query int false "Window in hours"
// @Param limit query int false "Max rows"
// @Success 200 {object} domain.RecentOutput "ok"
// @Router /incidents [get]
func (h *handlers) recent(r *stdhttp.Request) (any, error) {
	var in domain.RecentInput
	q := r.URL.Query()
	if v := q.Get("hours"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, perr.InvalidArgf("hours must be a positive integer")
		}
		in.Hours = n
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, perr.InvalidArgf("limit must be a positive integer")
		}
		in.Limit = n
	}
	return h.svc.Recent(r.Context(), in)
}

// swagger:route POST /incidents/{id}/archive Incidents incidentsArchive
// @Summary Archive an incident
// @Tags Incidents
// @Produce json
// @Param id path string true "Incident id"
// @Success 204 "archived"
// @Router /incidents/{id}/archive [post]
func (h *handlers) archive(r *stdhttp.Request) (any, error) {
	id := chi.URLParam(r, "id")
	if err := h.svc.Archive(r.Context(), id); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}

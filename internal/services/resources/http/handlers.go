// Package http provides http transport for safety resources
package http

import (
	stdhttp "net/http"
	"strconv"

	"safetymapper/internal/modkit/httpkit"
	perr "safetymapper/internal/platform/errors"
	"safetymapper/internal/services/resources/domain"
	svc "safetymapper/internal/services/resources/service"
)

// Register mounts resource endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/near", h.near)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /resources/near Resources resourcesNear
// @Summary Safety resources near a point
// @Tags Resources
// @Produce json
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Param radius_m query number false "Search radius in meters"
// @Param kind query string false "police or hospital"
// @Success 200 {object} domain.NearOutput "ok"
// @Router /resources/near [get]
func (h *handlers) near(r *stdhttp.Request) (any, error) {
	q := r.URL.Query()

	var in domain.NearInput
	var err error
	if in.Lat, err = strconv.ParseFloat(q.Get("lat"), 64); err != nil {
		return nil, perr.InvalidArgf("lat must be a number")
	}
	if in.Lon, err = strconv.ParseFloat(q.Get("lon"), 64); err != nil {
		return nil, perr.InvalidArgf("lon must be a number")
	}
	if v := q.Get("radius_m"); v != "" {
		if in.Radius, err = strconv.ParseFloat(v, 64); err != nil || in.Radius <= 0 {
			return nil, perr.InvalidArgf("radius_m must be a positive number")
		}
	}
	in.Kind = q.Get("kind")

	return h.svc.Near(r.Context(), in)
}

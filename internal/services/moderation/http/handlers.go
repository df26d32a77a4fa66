// Package http provides http transport for moderation
package http

import (
	stdhttp "net/http"

	"safetymapper/internal/modkit/httpkit"
	"safetymapper/internal/services/moderation/domain"
	svc "safetymapper/internal/services/moderation/service"
)

// Register mounts moderation endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.CheckInput](r, "/check", h.check)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /moderation/check Moderation moderationCheck
// @Summary Moderate one message
// @Tags Moderation
// @Accept json
// @Produce json
// @Param payload body domain.CheckInput true "Message to moderate"
// @Success 200 {object} domain.Verdict "ok"
// @Router /moderation/check [post]
func (h *handlers) check(r *stdhttp.Request, in domain.CheckInput) (any, error) {
	return h.svc.Check(r.Context(), in)
}

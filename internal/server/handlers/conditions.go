package handlers

import (
	"net/http"
	"strconv"

	"github.com/harborline/mariner/internal/server/response"
	"github.com/harborline/mariner/pkg/errors"
)

// HandleConditions handles GET {prefix}/ports/{slug}/conditions. It
// answers with the latest refreshed snapshot, fetching one first when
// none exists yet or when refresh=true is given. A partial fetch still
// answers 200 with the failures listed in errors.
// @Summary Get port conditions
// @Description Latest snapshot; partial fetches list their failures in errors
// @Tags conditions
// @Produce json
// @Param slug path string true "Port slug"
// @Param refresh query boolean false "Fetch a new snapshot first"
// @Success 200 {object} response.Response{data=conditions.Snapshot}
// @Failure 400 {object} response.Response{error=response.Error}
// @Failure 404 {object} response.Response{error=response.Error}
// @Failure 502 {object} response.Response{error=response.Error}
// @Router /ports/{slug}/conditions [get]
func (h *Handlers) HandleConditions(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if _, err := h.client.Port(slug); err != nil {
		response.ErrorFromType(w, err)
		return
	}

	force := false
	if v := r.URL.Query().Get("refresh"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			response.ErrorFromType(w, errors.NewValidationError("refresh", v, "must be a boolean"))
			return
		}
		force = b
	}

	if !force {
		if snap, ok := h.client.Conditions(slug); ok {
			response.OK(w, snap)
			return
		}
	}

	snap, err := h.client.RefreshConditions(r.Context(), slug)
	if err != nil && snap.Empty() {
		h.logger.Warn().Err(err).Str("port", slug).Msg("Conditions fetch failed")
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, snap)
}

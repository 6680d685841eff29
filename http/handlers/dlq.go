package handlers

import (
	"net/http"
	"strconv"
	"strings"

	resp "intern-portal/http/response"
	"intern-portal/services"
)

// DLQHandler exposes inspection and manual retry of parked email events
type DLQHandler struct {
	dlq *services.DLQService
}

func NewDLQHandler(dlq *services.DLQService) *DLQHandler {
	return &DLQHandler{dlq: dlq}
}

// List handles GET /api/dlq/messages (admin)
func (h *DLQHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		resp.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	letters, err := h.dlq.List(r.Context(), limit)
	if err != nil {
		resp.ServiceError(w, err)
		return
	}

	resp.SuccessResponse(w, http.StatusOK, "", letters)
}

// Retry handles POST /api/dlq/messages/retry/{id} (admin)
func (h *DLQHandler) Retry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		resp.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	idPart := strings.TrimPrefix(r.URL.Path, "/api/dlq/messages/retry/")
	id, err := strconv.ParseInt(strings.Trim(idPart, "/"), 10, 64)
	if err != nil || id <= 0 {
		resp.ErrorResponse(w, http.StatusBadRequest, "invalid message id")
		return
	}

	if err := h.dlq.Retry(r.Context(), id); err != nil {
		resp.ServiceError(w, err)
		return
	}

	resp.SuccessResponse(w, http.StatusOK, "message re-delivered", nil)
}

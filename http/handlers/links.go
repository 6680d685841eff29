package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	resp "intern-portal/http/response"
	"intern-portal/models"
)

// LinkStore is the persistence surface for the community and task links
type LinkStore interface {
	LatestWhatsAppLink(ctx context.Context) (*models.WhatsAppLink, error)
	CreateWhatsAppLink(ctx context.Context, link *models.WhatsAppLink) error
	CreateTaskLink(ctx context.Context, link *models.TaskLink) error
}

// LinkHandler serves the WhatsApp community link and role task links
type LinkHandler struct {
	store LinkStore
}

func NewLinkHandler(store LinkStore) *LinkHandler {
	return &LinkHandler{store: store}
}

// WhatsAppLink handles GET (public, latest link) and POST (admin, create)
// on /api/whatsapp-link. The POST side is wrapped with auth in the routes.
func (h *LinkHandler) GetWhatsAppLink(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		resp.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	link, err := h.store.LatestWhatsAppLink(r.Context())
	if err != nil {
		resp.ServiceError(w, err)
		return
	}

	// No link yet serializes as JSON null, matching the original contract
	if link == nil {
		resp.SendJSON(w, http.StatusOK, nil)
		return
	}
	resp.SendJSON(w, http.StatusOK, link)
}

type createWhatsAppRequest struct {
	WhatsApp string `json:"whatsapp"`
}

// CreateWhatsAppLink handles POST /api/whatsapp-link (admin)
func (h *LinkHandler) CreateWhatsAppLink(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		resp.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req createWhatsAppRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if strings.TrimSpace(req.WhatsApp) == "" {
		resp.ErrorResponse(w, http.StatusBadRequest, "whatsapp link is required")
		return
	}

	link := &models.WhatsAppLink{URL: req.WhatsApp}
	if err := h.store.CreateWhatsAppLink(r.Context(), link); err != nil {
		resp.ServiceError(w, err)
		return
	}

	resp.SendJSON(w, http.StatusOK, link)
}

type createTaskLinkRequest struct {
	Domain string `json:"domain"`
	URL    string `json:"url"`
}

// CreateTaskLink handles POST /api/task-link (admin), registering the task
// document embedded in offer emails for a role
func (h *LinkHandler) CreateTaskLink(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		resp.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req createTaskLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if strings.TrimSpace(req.Domain) == "" || strings.TrimSpace(req.URL) == "" {
		resp.ErrorResponse(w, http.StatusBadRequest, "domain and url are required")
		return
	}

	link := &models.TaskLink{Domain: req.Domain, URL: req.URL}
	if err := h.store.CreateTaskLink(r.Context(), link); err != nil {
		resp.ServiceError(w, err)
		return
	}

	resp.SendJSON(w, http.StatusOK, link)
}

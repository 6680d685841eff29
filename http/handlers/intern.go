package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	resp "intern-portal/http/response"
	"intern-portal/models"
	"intern-portal/services"
)

// InternHandler wires the applicant intake and workflow operations to HTTP
type InternHandler struct {
	interns *services.InternService
}

func NewInternHandler(interns *services.InternService) *InternHandler {
	return &InternHandler{interns: interns}
}

type signupRequest struct {
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	Mobile        string `json:"mobile"`
	Qualification string `json:"qualification"`
	Role          string `json:"role"`
	Duration      string `json:"duration"`
	College       string `json:"college"`
}

// Signup handles POST /api/intern (public applicant self-signup)
func (h *InternHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		resp.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	intern := &models.Intern{
		FullName:      req.FullName,
		Email:         req.Email,
		Mobile:        req.Mobile,
		Qualification: req.Qualification,
		Role:          req.Role,
		Duration:      req.Duration,
		College:       req.College,
	}

	created, err := h.interns.Register(r.Context(), intern)
	if err != nil {
		resp.ServiceError(w, err)
		return
	}

	resp.SendJSON(w, http.StatusOK, created.ToResponse())
}

// List handles GET /api/interns (admin)
func (h *InternHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		resp.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	interns, err := h.interns.List(r.Context())
	if err != nil {
		resp.ServiceError(w, err)
		return
	}

	responses := make([]models.InternResponse, 0, len(interns))
	for i := range interns {
		responses = append(responses, interns[i].ToResponse())
	}

	resp.SendJSON(w, http.StatusOK, responses)
}

type offerRequest struct {
	ID int64 `json:"id"`
}

// SendOffer handles POST /api/interns/offer (admin)
func (h *InternHandler) SendOffer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		resp.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req offerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.ID == 0 {
		resp.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	updated, err := h.interns.SendOffer(r.Context(), req.ID)
	if err != nil {
		resp.ServiceError(w, err)
		return
	}

	resp.SendJSON(w, http.StatusOK, updated.ToResponse())
}

// SendCertificate handles POST /api/interns/certificate/{id} (admin)
func (h *InternHandler) SendCertificate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		resp.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	idPart := strings.TrimPrefix(r.URL.Path, "/api/interns/certificate/")
	id, err := strconv.ParseInt(strings.Trim(idPart, "/"), 10, 64)
	if err != nil || id <= 0 {
		resp.ErrorResponse(w, http.StatusBadRequest, "invalid intern id")
		return
	}

	updated, err := h.interns.SendCertificate(r.Context(), id)
	if err != nil {
		resp.ServiceError(w, err)
		return
	}

	resp.SendJSON(w, http.StatusOK, updated.ToResponse())
}

// Export handles GET /api/interns/export (admin) and streams an xlsx roster
func (h *InternHandler) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		resp.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	interns, err := h.interns.List(r.Context())
	if err != nil {
		resp.ServiceError(w, err)
		return
	}

	workbook, err := services.ExportRoster(interns)
	if err != nil {
		resp.ErrorResponse(w, http.StatusInternalServerError, "Server error")
		return
	}

	filename := fmt.Sprintf("interns-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(workbook)
}

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"intern-portal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLinkStore struct {
	whatsapp  []models.WhatsAppLink
	taskLinks []models.TaskLink
}

func (s *fakeLinkStore) LatestWhatsAppLink(ctx context.Context) (*models.WhatsAppLink, error) {
	if len(s.whatsapp) == 0 {
		return nil, nil
	}
	latest := s.whatsapp[len(s.whatsapp)-1]
	return &latest, nil
}

func (s *fakeLinkStore) CreateWhatsAppLink(ctx context.Context, link *models.WhatsAppLink) error {
	link.ID = int64(len(s.whatsapp) + 1)
	link.CreatedAt = time.Now()
	s.whatsapp = append(s.whatsapp, *link)
	return nil
}

func (s *fakeLinkStore) CreateTaskLink(ctx context.Context, link *models.TaskLink) error {
	link.ID = int64(len(s.taskLinks) + 1)
	link.CreatedAt = time.Now()
	s.taskLinks = append(s.taskLinks, *link)
	return nil
}

func TestGetWhatsAppLinkEmpty(t *testing.T) {
	h := NewLinkHandler(&fakeLinkStore{})

	rec := httptest.NewRecorder()
	h.GetWhatsAppLink(rec, httptest.NewRequest(http.MethodGet, "/api/whatsapp-link", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))
}

func TestCreateThenGetWhatsAppLink(t *testing.T) {
	store := &fakeLinkStore{}
	h := NewLinkHandler(store)

	req := httptest.NewRequest(http.MethodPost, "/api/whatsapp-link",
		strings.NewReader(`{"whatsapp":"https://chat.whatsapp.com/abc"}`))
	rec := httptest.NewRecorder()
	h.CreateWhatsAppLink(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.GetWhatsAppLink(rec, httptest.NewRequest(http.MethodGet, "/api/whatsapp-link", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "https://chat.whatsapp.com/abc")
}

func TestCreateWhatsAppLinkValidation(t *testing.T) {
	h := NewLinkHandler(&fakeLinkStore{})

	req := httptest.NewRequest(http.MethodPost, "/api/whatsapp-link", strings.NewReader(`{"whatsapp":""}`))
	rec := httptest.NewRecorder()
	h.CreateWhatsAppLink(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateTaskLink(t *testing.T) {
	store := &fakeLinkStore{}
	h := NewLinkHandler(store)

	req := httptest.NewRequest(http.MethodPost, "/api/task-link",
		strings.NewReader(`{"domain":"Backend","url":"https://tasks.example.com/backend"}`))
	rec := httptest.NewRecorder()
	h.CreateTaskLink(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, store.taskLinks, 1)
	assert.Equal(t, "Backend", store.taskLinks[0].Domain)
}

func TestCreateTaskLinkValidation(t *testing.T) {
	h := NewLinkHandler(&fakeLinkStore{})

	req := httptest.NewRequest(http.MethodPost, "/api/task-link", strings.NewReader(`{"domain":"Backend"}`))
	rec := httptest.NewRecorder()
	h.CreateTaskLink(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

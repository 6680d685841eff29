package services

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	apperrors "intern-portal/errors"
	"intern-portal/models"
	"intern-portal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	interns   map[int64]*models.Intern
	taskLinks map[string]*models.TaskLink
	nextID    int64

	failMarkOffer bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		interns:   make(map[int64]*models.Intern),
		taskLinks: make(map[string]*models.TaskLink),
		nextID:    1,
	}
}

func (s *fakeStore) CreateIntern(ctx context.Context, intern *models.Intern) error {
	for _, existing := range s.interns {
		if existing.Email == intern.Email {
			return apperrors.NewConflictError("email already registered")
		}
	}
	intern.ID = s.nextID
	s.nextID++
	intern.Status = utils.StatusPending
	intern.CreatedAt = time.Now()
	intern.UpdatedAt = intern.CreatedAt
	copied := *intern
	s.interns[intern.ID] = &copied
	return nil
}

func (s *fakeStore) GetIntern(ctx context.Context, id int64) (*models.Intern, error) {
	intern, ok := s.interns[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("intern not found")
	}
	copied := *intern
	return &copied, nil
}

func (s *fakeStore) ListInterns(ctx context.Context) ([]models.Intern, error) {
	out := []models.Intern{}
	for _, intern := range s.interns {
		out = append(out, *intern)
	}
	return out, nil
}

func (s *fakeStore) MarkOfferSent(ctx context.Context, id int64, internID string, start, end time.Time) (*models.Intern, error) {
	if s.failMarkOffer {
		return nil, apperrors.E(apperrors.Dependency, "store unavailable")
	}
	intern, ok := s.interns[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("intern not found")
	}
	for otherID, other := range s.interns {
		if otherID != id && other.InternID != nil && *other.InternID == internID {
			return nil, apperrors.NewConflictError("intern id already assigned")
		}
	}
	intern.Status = utils.StatusOfferSent
	intern.OfferLetterSent = true
	intern.InternID = &internID
	intern.StartDate = &start
	intern.EndDate = &end
	copied := *intern
	return &copied, nil
}

func (s *fakeStore) MarkCertificateSent(ctx context.Context, id int64) (*models.Intern, error) {
	intern, ok := s.interns[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("intern not found")
	}
	intern.Status = utils.StatusCompleted
	intern.CertificateSent = true
	copied := *intern
	return &copied, nil
}

func (s *fakeStore) FindTaskLink(ctx context.Context, role string) (*models.TaskLink, error) {
	return s.taskLinks[role], nil
}

func (s *fakeStore) InternIDExists(ctx context.Context, internID string) (bool, error) {
	for _, intern := range s.interns {
		if intern.InternID != nil && *intern.InternID == internID {
			return true, nil
		}
	}
	return false, nil
}

type fakeRenderer struct {
	failOffer       bool
	failCertificate bool
}

func (r *fakeRenderer) RenderOfferLetter(intern *models.Intern, start, end time.Time, internID string) ([]byte, error) {
	if r.failOffer {
		return nil, apperrors.NewDependencyError("template image missing", nil)
	}
	return []byte("%PDF offer " + internID), nil
}

func (r *fakeRenderer) RenderCertificate(intern *models.Intern, start, end time.Time) ([]byte, error) {
	if r.failCertificate {
		return nil, apperrors.NewDependencyError("template image missing", nil)
	}
	return []byte("%PDF certificate"), nil
}

type fakeMailer struct {
	sent []OutgoingMail
	fail bool
}

func (m *fakeMailer) Send(ctx context.Context, mail OutgoingMail) error {
	if m.fail {
		return apperrors.NewDependencyError("mail relay unreachable", nil)
	}
	m.sent = append(m.sent, mail)
	return nil
}

func newTestService(store *fakeStore) (*InternService, *fakeRenderer, *fakeMailer) {
	renderer := &fakeRenderer{}
	mailer := &fakeMailer{}
	svc := NewInternService(store, renderer, mailer)
	return svc, renderer, mailer
}

func registeredIntern(t *testing.T, svc *InternService) *models.Intern {
	t.Helper()
	intern, err := svc.Register(context.Background(), &models.Intern{
		FullName: "Jane Doe",
		Email:    "jane@x.com",
		Mobile:   "+919876543210",
		Role:     "Backend",
		Duration: "30 days",
	})
	require.NoError(t, err)
	return intern
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newFakeStore()
	svc, _, _ := newTestService(store)

	first := registeredIntern(t, svc)
	assert.Equal(t, utils.StatusPending, first.Status)

	_, err := svc.Register(context.Background(), &models.Intern{
		FullName: "Jane Again",
		Email:    "jane@x.com",
		Mobile:   "+919876543211",
		Role:     "Backend",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.Conflict, apperrors.KindOf(err))
	assert.Len(t, store.interns, 1)
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newTestService(newFakeStore())

	cases := []struct {
		name   string
		intern models.Intern
	}{
		{"missing name", models.Intern{Email: "a@b.co", Mobile: "+15551234567"}},
		{"bad email", models.Intern{FullName: "A", Email: "not-an-email", Mobile: "+15551234567"}},
		{"bad mobile", models.Intern{FullName: "A", Email: "a@b.co", Mobile: "12"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), &tc.intern)
			require.Error(t, err)
			assert.Equal(t, apperrors.Invalid, apperrors.KindOf(err))
		})
	}
}

func TestSendOfferUnknownID(t *testing.T) {
	store := newFakeStore()
	svc, _, mailer := newTestService(store)

	_, err := svc.SendOffer(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
	assert.Empty(t, mailer.sent)
}

func TestSendOfferAssignsIDAndDates(t *testing.T) {
	store := newFakeStore()
	svc, _, mailer := newTestService(store)
	svc.now = func() time.Time { return time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC) }
	intern := registeredIntern(t, svc)

	updated, err := svc.SendOffer(context.Background(), intern.ID)
	require.NoError(t, err)

	assert.Equal(t, utils.StatusOfferSent, updated.Status)
	assert.True(t, updated.OfferLetterSent)

	require.NotNil(t, updated.InternID)
	assert.Regexp(t, regexp.MustCompile(`^GWING\d{6}$`), *updated.InternID)

	require.NotNil(t, updated.StartDate)
	require.NotNil(t, updated.EndDate)
	assert.True(t, updated.StartDate.Before(*updated.EndDate))
	assert.Equal(t, 30*24*time.Hour, updated.EndDate.Sub(*updated.StartDate))

	require.Len(t, mailer.sent, 1)
	mail := mailer.sent[0]
	assert.Equal(t, "jane@x.com", mail.To)
	assert.Equal(t, "Jane Doe-offer-letter.pdf", mail.AttachmentName)
	assert.NotEmpty(t, mail.Attachment)
}

func TestSendOfferEmbedsTaskLink(t *testing.T) {
	store := newFakeStore()
	store.taskLinks["Backend"] = &models.TaskLink{Domain: "Backend", URL: "https://tasks.example.com/backend"}
	svc, _, mailer := newTestService(store)
	intern := registeredIntern(t, svc)

	_, err := svc.SendOffer(context.Background(), intern.ID)
	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)
	assert.Contains(t, mailer.sent[0].HTMLBody, "https://tasks.example.com/backend")
}

func TestSendOfferMailFailureLeavesStateUnchanged(t *testing.T) {
	store := newFakeStore()
	svc, _, mailer := newTestService(store)
	mailer.fail = true
	intern := registeredIntern(t, svc)

	_, err := svc.SendOffer(context.Background(), intern.ID)
	require.Error(t, err)

	stored := store.interns[intern.ID]
	assert.Equal(t, utils.StatusPending, stored.Status)
	assert.False(t, stored.OfferLetterSent)
	assert.Nil(t, stored.InternID)
}

func TestSendOfferRenderFailureLeavesStateUnchanged(t *testing.T) {
	store := newFakeStore()
	svc, renderer, mailer := newTestService(store)
	renderer.failOffer = true
	intern := registeredIntern(t, svc)

	_, err := svc.SendOffer(context.Background(), intern.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.Dependency, apperrors.KindOf(err))
	assert.Empty(t, mailer.sent)
	assert.Equal(t, utils.StatusPending, store.interns[intern.ID].Status)
}

func TestSendOfferReusesAssignedID(t *testing.T) {
	store := newFakeStore()
	svc, _, _ := newTestService(store)
	intern := registeredIntern(t, svc)

	first, err := svc.SendOffer(context.Background(), intern.ID)
	require.NoError(t, err)

	second, err := svc.SendOffer(context.Background(), intern.ID)
	require.NoError(t, err)

	assert.Equal(t, *first.InternID, *second.InternID)
}

func TestSendOfferRegeneratesCollidingID(t *testing.T) {
	store := newFakeStore()
	svc, _, _ := newTestService(store)

	taken := utils.InternIDPrefix + "111111"
	other := registeredIntern(t, svc)
	store.interns[other.ID].InternID = &taken

	intern, err := svc.Register(context.Background(), &models.Intern{
		FullName: "John Roe",
		Email:    "john@x.com",
		Mobile:   "+919876543212",
		Role:     "Frontend",
	})
	require.NoError(t, err)

	// First candidate collides with the already-assigned id
	calls := 0
	svc.newInternID = func() (string, error) {
		calls++
		if calls == 1 {
			return taken, nil
		}
		return fmt.Sprintf("%s%06d", utils.InternIDPrefix, 222222), nil
	}

	updated, err := svc.SendOffer(context.Background(), intern.ID)
	require.NoError(t, err)
	assert.Equal(t, utils.InternIDPrefix+"222222", *updated.InternID)
	assert.Equal(t, 2, calls)
}

func TestSendCertificateRequiresDates(t *testing.T) {
	store := newFakeStore()
	svc, _, mailer := newTestService(store)
	intern := registeredIntern(t, svc)

	_, err := svc.SendCertificate(context.Background(), intern.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.InvalidState, apperrors.KindOf(err))
	assert.Empty(t, mailer.sent)
	assert.Equal(t, utils.StatusPending, store.interns[intern.ID].Status)
}

func TestSendCertificateUnknownID(t *testing.T) {
	svc, _, _ := newTestService(newFakeStore())

	_, err := svc.SendCertificate(context.Background(), 7)
	require.Error(t, err)
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
}

func TestOfferThenCertificate(t *testing.T) {
	store := newFakeStore()
	svc, _, mailer := newTestService(store)
	intern := registeredIntern(t, svc)

	offered, err := svc.SendOffer(context.Background(), intern.ID)
	require.NoError(t, err)
	assert.Equal(t, utils.StatusOfferSent, offered.Status)

	completed, err := svc.SendCertificate(context.Background(), intern.ID)
	require.NoError(t, err)
	assert.Equal(t, utils.StatusCompleted, completed.Status)
	assert.True(t, completed.CertificateSent)

	// One offer email, one certificate email
	require.Len(t, mailer.sent, 2)
	assert.Equal(t, "Jane Doe-certificate.pdf", mailer.sent[1].AttachmentName)
}

func TestSendCertificateMailFailureLeavesStateUnchanged(t *testing.T) {
	store := newFakeStore()
	svc, _, mailer := newTestService(store)
	intern := registeredIntern(t, svc)

	_, err := svc.SendOffer(context.Background(), intern.ID)
	require.NoError(t, err)

	mailer.fail = true
	_, err = svc.SendCertificate(context.Background(), intern.ID)
	require.Error(t, err)
	assert.Equal(t, utils.StatusOfferSent, store.interns[intern.ID].Status)
	assert.False(t, store.interns[intern.ID].CertificateSent)
}

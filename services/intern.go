package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	apperrors "intern-portal/errors"
	"intern-portal/logger"
	"intern-portal/models"
	"intern-portal/utils"
)

// InternStore is the persistence surface the intern workflows need.
type InternStore interface {
	CreateIntern(ctx context.Context, intern *models.Intern) error
	GetIntern(ctx context.Context, id int64) (*models.Intern, error)
	ListInterns(ctx context.Context) ([]models.Intern, error)
	MarkOfferSent(ctx context.Context, id int64, internID string, start, end time.Time) (*models.Intern, error)
	MarkCertificateSent(ctx context.Context, id int64) (*models.Intern, error)
	FindTaskLink(ctx context.Context, role string) (*models.TaskLink, error)
	InternIDExists(ctx context.Context, internID string) (bool, error)
}

// DocumentRenderer renders the PDFs attached to workflow emails.
type DocumentRenderer interface {
	RenderOfferLetter(intern *models.Intern, start, end time.Time, internID string) ([]byte, error)
	RenderCertificate(intern *models.Intern, start, end time.Time) ([]byte, error)
}

// InternService encapsulates applicant intake and the offer/certificate
// workflows.
type InternService struct {
	store    InternStore
	renderer DocumentRenderer
	mailer   Mailer

	// now and newInternID are swappable for tests
	now         func() time.Time
	newInternID func() (string, error)
}

func NewInternService(store InternStore, renderer DocumentRenderer, mailer Mailer) *InternService {
	return &InternService{
		store:       store,
		renderer:    renderer,
		mailer:      mailer,
		now:         time.Now,
		newInternID: randomInternID,
	}
}

// randomInternID produces identifiers like GWING483920. Random digits with a
// store-side unique constraint replaced the old truncated-timestamp scheme,
// which collided under concurrent offer sends.
func randomInternID() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("error generating intern id: %w", err)
	}
	return fmt.Sprintf("%s%06d", utils.InternIDPrefix, n.Int64()), nil
}

// Register validates and persists a new applicant with status PENDING.
// A duplicate email is a Conflict and creates no second record.
func (s *InternService) Register(ctx context.Context, intern *models.Intern) (*models.Intern, error) {
	if err := utils.ValidateName(intern.FullName); err != nil {
		return nil, apperrors.NewInvalidParamsError(err.Error())
	}
	if err := utils.ValidateEmail(intern.Email); err != nil {
		return nil, apperrors.NewInvalidParamsError(err.Error())
	}
	if err := utils.ValidateMobile(intern.Mobile); err != nil {
		return nil, apperrors.NewInvalidParamsError(err.Error())
	}
	if err := utils.ValidateCollege(intern.College); err != nil {
		return nil, apperrors.NewInvalidParamsError(err.Error())
	}

	if err := s.store.CreateIntern(ctx, intern); err != nil {
		return nil, err
	}

	logger.Info("Intern registered: id=%d email=%s role=%s", intern.ID, intern.Email, intern.Role)
	PublishInternEvent(EventApplicantCreated, intern)
	return intern, nil
}

// List returns all applicants ordered by status descending then end date
// ascending.
func (s *InternService) List(ctx context.Context) ([]models.Intern, error) {
	return s.store.ListInterns(ctx)
}

// pickInternID returns the already-assigned identifier when one exists (the
// id is assigned exactly once and stays stable), otherwise generates a fresh
// one that is not yet taken.
func (s *InternService) pickInternID(ctx context.Context, intern *models.Intern) (string, error) {
	if intern.InternID != nil && *intern.InternID != "" {
		return *intern.InternID, nil
	}

	for attempt := 0; attempt < 5; attempt++ {
		candidate, err := s.newInternID()
		if err != nil {
			return "", apperrors.E(apperrors.Internal, "error generating intern id", err)
		}
		taken, err := s.store.InternIDExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		logger.Warn("Intern id collision on %s, regenerating", candidate)
	}
	return "", apperrors.E(apperrors.Internal, "could not generate a unique intern id")
}

// SendOffer runs the offer workflow: assign dates and identifier, render the
// offer letter, email it with the role's task link, then commit the
// PENDING -> OFFER_SENT transition. The render and the send happen before
// the commit so a failure leaves the record unchanged and retryable.
func (s *InternService) SendOffer(ctx context.Context, id int64) (*models.Intern, error) {
	intern, err := s.store.GetIntern(ctx, id)
	if err != nil {
		return nil, err
	}

	startDate := s.now()
	endDate := startDate.AddDate(0, 0, utils.OfferDurationDays)

	internID, err := s.pickInternID(ctx, intern)
	if err != nil {
		return nil, err
	}

	letter, err := s.renderer.RenderOfferLetter(intern, startDate, endDate, internID)
	if err != nil {
		return nil, err
	}

	// Task link absence is not an error; lookup failures only cost the link.
	taskLink, err := s.store.FindTaskLink(ctx, intern.Role)
	if err != nil {
		logger.Warn("Error fetching task link for role %q: %v", intern.Role, err)
		taskLink = nil
	}

	if err := s.mailer.Send(ctx, offerMail(intern, startDate, endDate, taskLink, letter)); err != nil {
		return nil, err
	}

	updated, err := s.store.MarkOfferSent(ctx, id, internID, startDate, endDate)
	if err != nil {
		// The email went out but the transition did not commit; surface the
		// error so the admin re-runs the workflow, which reuses the same id.
		logger.Error("Offer email sent but status commit failed for intern %d: %v", id, err)
		return nil, err
	}

	logger.Info("Offer sent: intern=%d id=%s start=%s end=%s", id, internID,
		startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))
	PublishInternEvent(EventOfferSent, updated)
	return updated, nil
}

// SendCertificate runs the certificate workflow: render the completion
// certificate from the stored dates, email it, then commit the
// OFFER_SENT -> COMPLETED transition. Requesting a certificate before the
// offer assigned dates is an InvalidState error.
func (s *InternService) SendCertificate(ctx context.Context, id int64) (*models.Intern, error) {
	intern, err := s.store.GetIntern(ctx, id)
	if err != nil {
		return nil, err
	}

	if intern.StartDate == nil || intern.EndDate == nil {
		return nil, apperrors.NewInvalidStateError("certificate requested before offer dates were assigned")
	}

	certificate, err := s.renderer.RenderCertificate(intern, *intern.StartDate, *intern.EndDate)
	if err != nil {
		return nil, err
	}

	if err := s.mailer.Send(ctx, certificateMail(intern, certificate)); err != nil {
		return nil, err
	}

	updated, err := s.store.MarkCertificateSent(ctx, id)
	if err != nil {
		logger.Error("Certificate email sent but status commit failed for intern %d: %v", id, err)
		return nil, err
	}

	logger.Info("Certificate sent: intern=%d", id)
	PublishInternEvent(EventCertificateSent, updated)
	return updated, nil
}

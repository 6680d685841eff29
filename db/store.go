package db

import (
	"context"
	"database/sql"
	"time"

	apperrors "intern-portal/errors"
	"intern-portal/models"
	"intern-portal/utils"

	"github.com/lib/pq"
)

// Store wraps the shared connection and implements the persistence
// interfaces consumed by the service layer.
type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) *Store {
	return &Store{db: database}
}

const internColumns = `
	id, full_name, email, mobile, qualification, role, duration, college,
	status, intern_id, start_date, end_date, offer_letter_sent,
	certificate_sent, created_at, updated_at`

func scanIntern(row interface{ Scan(...interface{}) error }) (*models.Intern, error) {
	var i models.Intern
	var internID sql.NullString
	var startDate, endDate sql.NullTime

	err := row.Scan(
		&i.ID, &i.FullName, &i.Email, &i.Mobile, &i.Qualification, &i.Role,
		&i.Duration, &i.College, &i.Status, &internID, &startDate, &endDate,
		&i.OfferLetterSent, &i.CertificateSent, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if internID.Valid {
		i.InternID = &internID.String
	}
	if startDate.Valid {
		t := startDate.Time
		i.StartDate = &t
	}
	if endDate.Valid {
		t := endDate.Time
		i.EndDate = &t
	}
	return &i, nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint error
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if apperrors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

// CreateIntern persists a new PENDING applicant. Duplicate email is a Conflict.
func (s *Store) CreateIntern(ctx context.Context, intern *models.Intern) error {
	now := time.Now()
	query := `
		INSERT INTO interns (
			full_name, email, mobile, qualification, role, duration, college,
			status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`

	err := s.db.QueryRowContext(
		ctx, query,
		intern.FullName, intern.Email, intern.Mobile, intern.Qualification,
		intern.Role, intern.Duration, intern.College, utils.StatusPending,
		now, now,
	).Scan(&intern.ID, &intern.CreatedAt, &intern.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("email already registered")
		}
		return apperrors.E(apperrors.Dependency, "error inserting intern", err)
	}

	intern.Status = utils.StatusPending
	return nil
}

// GetIntern fetches a single applicant by id.
func (s *Store) GetIntern(ctx context.Context, id int64) (*models.Intern, error) {
	query := "SELECT" + internColumns + " FROM interns WHERE id = $1"
	intern, err := scanIntern(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NewNotFoundError("intern not found")
		}
		return nil, apperrors.E(apperrors.Dependency, "error fetching intern", err)
	}
	return intern, nil
}

// ListInterns returns every applicant ordered by status descending then end
// date ascending, so records still moving through the pipeline surface first.
func (s *Store) ListInterns(ctx context.Context) ([]models.Intern, error) {
	query := "SELECT" + internColumns + ` FROM interns
		ORDER BY status DESC, end_date ASC NULLS LAST`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.E(apperrors.Dependency, "error fetching interns", err)
	}
	defer rows.Close()

	interns := []models.Intern{}
	for rows.Next() {
		intern, err := scanIntern(rows)
		if err != nil {
			return nil, apperrors.E(apperrors.Dependency, "error scanning intern", err)
		}
		interns = append(interns, *intern)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.E(apperrors.Dependency, "error iterating interns", err)
	}
	return interns, nil
}

// MarkOfferSent commits the PENDING -> OFFER_SENT transition. A duplicate
// intern_id surfaces as Conflict so the caller can regenerate and retry.
func (s *Store) MarkOfferSent(ctx context.Context, id int64, internID string, start, end time.Time) (*models.Intern, error) {
	query := `
		UPDATE interns
		SET status = $1, offer_letter_sent = TRUE, intern_id = $2,
			start_date = $3, end_date = $4, updated_at = $5
		WHERE id = $6
		RETURNING` + internColumns

	intern, err := scanIntern(s.db.QueryRowContext(ctx, query,
		utils.StatusOfferSent, internID, start, end, time.Now(), id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NewNotFoundError("intern not found")
		}
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflictError("intern id already assigned")
		}
		return nil, apperrors.E(apperrors.Dependency, "error updating intern", err)
	}
	return intern, nil
}

// MarkCertificateSent commits the OFFER_SENT -> COMPLETED transition.
func (s *Store) MarkCertificateSent(ctx context.Context, id int64) (*models.Intern, error) {
	query := `
		UPDATE interns
		SET status = $1, certificate_sent = TRUE, updated_at = $2
		WHERE id = $3
		RETURNING` + internColumns

	intern, err := scanIntern(s.db.QueryRowContext(ctx, query,
		utils.StatusCompleted, time.Now(), id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NewNotFoundError("intern not found")
		}
		return nil, apperrors.E(apperrors.Dependency, "error updating intern", err)
	}
	return intern, nil
}

// InternIDExists reports whether a generated intern identifier is taken.
func (s *Store) InternIDExists(ctx context.Context, internID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM interns WHERE intern_id = $1)", internID).Scan(&exists)
	if err != nil {
		return false, apperrors.E(apperrors.Dependency, "error checking intern id", err)
	}
	return exists, nil
}

// FindTaskLink returns the newest task link for a role, or nil when the role
// has none registered.
func (s *Store) FindTaskLink(ctx context.Context, role string) (*models.TaskLink, error) {
	var link models.TaskLink
	query := `SELECT id, domain, url, created_at FROM task_links
		WHERE domain = $1 ORDER BY created_at DESC LIMIT 1`

	err := s.db.QueryRowContext(ctx, query, role).Scan(&link.ID, &link.Domain, &link.URL, &link.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, apperrors.E(apperrors.Dependency, "error fetching task link", err)
	}
	return &link, nil
}

// CreateTaskLink registers a task document for a role.
func (s *Store) CreateTaskLink(ctx context.Context, link *models.TaskLink) error {
	query := `INSERT INTO task_links (domain, url) VALUES ($1, $2)
		RETURNING id, created_at`
	err := s.db.QueryRowContext(ctx, query, link.Domain, link.URL).Scan(&link.ID, &link.CreatedAt)
	if err != nil {
		return apperrors.E(apperrors.Dependency, "error inserting task link", err)
	}
	return nil
}

// LatestWhatsAppLink returns the most recently created invite link, or nil
// when none has been created yet.
func (s *Store) LatestWhatsAppLink(ctx context.Context) (*models.WhatsAppLink, error) {
	var link models.WhatsAppLink
	query := `SELECT id, url, created_at FROM whatsapp_links
		ORDER BY created_at DESC, id DESC LIMIT 1`

	err := s.db.QueryRowContext(ctx, query).Scan(&link.ID, &link.URL, &link.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, apperrors.E(apperrors.Dependency, "error fetching whatsapp link", err)
	}
	return &link, nil
}

// CreateWhatsAppLink inserts a new invite link; "latest wins" by recency.
func (s *Store) CreateWhatsAppLink(ctx context.Context, link *models.WhatsAppLink) error {
	query := `INSERT INTO whatsapp_links (url) VALUES ($1)
		RETURNING id, created_at`
	err := s.db.QueryRowContext(ctx, query, link.URL).Scan(&link.ID, &link.CreatedAt)
	if err != nil {
		return apperrors.E(apperrors.Dependency, "error inserting whatsapp link", err)
	}
	return nil
}

// GetAdminByUsername fetches an admin account for login.
func (s *Store) GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var admin models.Admin
	query := `SELECT id, username, password_hash, created_at FROM admins WHERE username = $1`

	err := s.db.QueryRowContext(ctx, query, username).Scan(&admin.ID, &admin.Username, &admin.PasswordHash, &admin.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NewUnauthorizedError("invalid credentials")
		}
		return nil, apperrors.E(apperrors.Dependency, "error fetching admin", err)
	}
	return &admin, nil
}

// StoreDeadLetter parks an undeliverable payload for later inspection.
func (s *Store) StoreDeadLetter(ctx context.Context, dl *models.DeadLetter) error {
	query := `INSERT INTO dead_letters (topic, key, payload, last_error, status)
		VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	err := s.db.QueryRowContext(ctx, query, dl.Topic, dl.Key, dl.Payload, dl.LastError, models.DeadLetterPending).
		Scan(&dl.ID, &dl.CreatedAt)
	if err != nil {
		return apperrors.E(apperrors.Dependency, "error inserting dead letter", err)
	}
	dl.Status = models.DeadLetterPending
	return nil
}

// PendingDeadLetters lists unresolved dead letters, newest first.
func (s *Store) PendingDeadLetters(ctx context.Context, limit int) ([]models.DeadLetter, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT id, topic, key, payload, last_error, status, retry_count, created_at
		FROM dead_letters WHERE status = $1 ORDER BY created_at DESC LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, models.DeadLetterPending, limit)
	if err != nil {
		return nil, apperrors.E(apperrors.Dependency, "error fetching dead letters", err)
	}
	defer rows.Close()

	letters := []models.DeadLetter{}
	for rows.Next() {
		var dl models.DeadLetter
		if err := rows.Scan(&dl.ID, &dl.Topic, &dl.Key, &dl.Payload, &dl.LastError, &dl.Status, &dl.RetryCount, &dl.CreatedAt); err != nil {
			return nil, apperrors.E(apperrors.Dependency, "error scanning dead letter", err)
		}
		letters = append(letters, dl)
	}
	return letters, rows.Err()
}

// GetDeadLetter fetches a single dead letter by id.
func (s *Store) GetDeadLetter(ctx context.Context, id int64) (*models.DeadLetter, error) {
	var dl models.DeadLetter
	query := `SELECT id, topic, key, payload, last_error, status, retry_count, created_at
		FROM dead_letters WHERE id = $1`

	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&dl.ID, &dl.Topic, &dl.Key, &dl.Payload, &dl.LastError, &dl.Status, &dl.RetryCount, &dl.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NewNotFoundError("dead letter not found")
		}
		return nil, apperrors.E(apperrors.Dependency, "error fetching dead letter", err)
	}
	return &dl, nil
}

// ResolveDeadLetter marks a dead letter as handled.
func (s *Store) ResolveDeadLetter(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE dead_letters SET status = $1 WHERE id = $2`, models.DeadLetterResolved, id)
	if err != nil {
		return apperrors.E(apperrors.Dependency, "error resolving dead letter", err)
	}
	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return apperrors.NewNotFoundError("dead letter not found")
	}
	return err
}

// BumpDeadLetterRetry records another delivery attempt.
func (s *Store) BumpDeadLetterRetry(ctx context.Context, id int64, lastError string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE dead_letters SET retry_count = retry_count + 1, last_error = $1 WHERE id = $2`,
		lastError, id)
	if err != nil {
		return apperrors.E(apperrors.Dependency, "error updating dead letter", err)
	}
	return nil
}

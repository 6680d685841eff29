package services

import (
	"context"
	"encoding/json"

	apperrors "intern-portal/errors"
	"intern-portal/logger"
	"intern-portal/models"
)

// DeadLetterStore is the persistence surface for parked event payloads.
type DeadLetterStore interface {
	StoreDeadLetter(ctx context.Context, dl *models.DeadLetter) error
	PendingDeadLetters(ctx context.Context, limit int) ([]models.DeadLetter, error)
	GetDeadLetter(ctx context.Context, id int64) (*models.DeadLetter, error)
	ResolveDeadLetter(ctx context.Context, id int64) error
	BumpDeadLetterRetry(ctx context.Context, id int64, lastError string) error
}

// DLQService lets admins inspect and re-drive undeliverable email events.
type DLQService struct {
	store DeadLetterStore
}

func NewDLQService(store DeadLetterStore) *DLQService {
	return &DLQService{store: store}
}

// Park stores a payload that could not be delivered. Used as the dead
// letter sink for both producer publish failures and consumer processing
// failures.
func (s *DLQService) Park(topic, key string, payload []byte, errMsg string) error {
	dl := &models.DeadLetter{
		Topic:     topic,
		Key:       key,
		Payload:   payload,
		LastError: errMsg,
	}
	if err := s.store.StoreDeadLetter(context.Background(), dl); err != nil {
		logger.Error("Failed to store dead letter for topic %s: %v", topic, err)
		return err
	}
	logger.Warn("Parked undeliverable payload: topic=%s key=%s", topic, key)
	return nil
}

// List returns pending dead letters, newest first.
func (s *DLQService) List(ctx context.Context, limit int) ([]models.DeadLetter, error) {
	return s.store.PendingDeadLetters(ctx, limit)
}

// Retry re-processes a parked payload. Email events are delivered straight
// over SMTP; success resolves the dead letter, failure bumps its retry
// count and keeps it pending.
func (s *DLQService) Retry(ctx context.Context, id int64) error {
	dl, err := s.store.GetDeadLetter(ctx, id)
	if err != nil {
		return err
	}
	if dl.Status == models.DeadLetterResolved {
		return apperrors.NewInvalidStateError("dead letter already resolved")
	}

	var event map[string]interface{}
	if err := json.Unmarshal(dl.Payload, &event); err != nil {
		return apperrors.NewInvalidParamsError("dead letter payload is not valid JSON")
	}

	if err := HandleEmailEvent(event); err != nil {
		if bumpErr := s.store.BumpDeadLetterRetry(ctx, id, err.Error()); bumpErr != nil {
			logger.Error("Failed to record retry for dead letter %d: %v", id, bumpErr)
		}
		return err
	}

	return s.store.ResolveDeadLetter(ctx, id)
}

package services

import (
	"fmt"
	"time"

	"intern-portal/config"
	"intern-portal/logger"
	"intern-portal/models"
	"intern-portal/services/kafka"
)

// Applicant lifecycle event types
const (
	EventApplicantCreated = "applicant.created"
	EventOfferSent        = "offer.sent"
	EventCertificateSent  = "certificate.sent"
)

// InternEvent represents an applicant lifecycle event for Kafka
type InternEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	InternID  int64     `json:"intern_id"`
	InternRef string    `json:"intern_ref,omitempty"` // assigned GWING identifier
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// PublishInternEvent publishes an applicant lifecycle event to Kafka.
// Best-effort and non-blocking; a publish failure never fails the workflow
// that triggered it.
func PublishInternEvent(eventType string, intern *models.Intern) {
	event := InternEvent{
		EventID:   fmt.Sprintf("intern-%d-%d", intern.ID, time.Now().UnixNano()),
		EventType: eventType,
		InternID:  intern.ID,
		FullName:  intern.FullName,
		Email:     intern.Email,
		Role:      intern.Role,
		Status:    intern.Status,
		Timestamp: time.Now().UTC(),
	}
	if intern.InternID != nil {
		event.InternRef = *intern.InternID
	}

	go func() {
		key := fmt.Sprintf("intern-%d", intern.ID)
		if err := kafka.Publish(config.AppConfig.KafkaEventsTopic, key, event); err != nil {
			logger.Warn("Failed to publish %s event for intern %d: %v", eventType, intern.ID, err)
		}
	}()
}

package models

import "time"

// Dead letter statuses
const (
	DeadLetterPending  = "PENDING"
	DeadLetterResolved = "RESOLVED"
)

// DeadLetter is an event payload that could not be delivered, parked for
// inspection and manual retry
type DeadLetter struct {
	ID         int64     `json:"id"`
	Topic      string    `json:"topic"`
	Key        string    `json:"key"`
	Payload    []byte    `json:"payload"`
	LastError  string    `json:"last_error"`
	Status     string    `json:"status"`
	RetryCount int       `json:"retry_count"`
	CreatedAt  time.Time `json:"created_at"`
}

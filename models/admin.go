package models

import "time"

// Admin represents a portal administrator account.
// PasswordHash holds a bcrypt hash and is never serialized.
type Admin struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

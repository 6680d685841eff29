package models

import "time"

// TaskLink maps an internship role to a document describing its tasks
type TaskLink struct {
	ID        int64     `json:"id"`
	Domain    string    `json:"domain"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// WhatsAppLink is a community invite link; only the newest one is ever served
type WhatsAppLink struct {
	ID        int64     `json:"id"`
	URL       string    `json:"whatsapp"`
	CreatedAt time.Time `json:"created_at"`
}

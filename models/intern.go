package models

import (
	"time"
)

// Intern represents an internship applicant and its lifecycle state
type Intern struct {
	ID              int64      `json:"id"`
	FullName        string     `json:"full_name"`
	Email           string     `json:"email"`
	Mobile          string     `json:"mobile"`
	Qualification   string     `json:"qualification"`
	Role            string     `json:"role"`
	Duration        string     `json:"duration"`
	College         string     `json:"college"`
	Status          string     `json:"status"`
	InternID        *string    `json:"intern_id,omitempty"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	OfferLetterSent bool       `json:"offer_letter_sent"`
	CertificateSent bool       `json:"certificate_sent"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// InternResponse is the structured response for API responses
type InternResponse struct {
	ID              int64   `json:"id"`
	FullName        string  `json:"full_name"`
	Email           string  `json:"email"`
	Mobile          string  `json:"mobile"`
	Qualification   string  `json:"qualification"`
	Role            string  `json:"role"`
	Duration        string  `json:"duration"`
	College         string  `json:"college"`
	Status          string  `json:"status"`
	InternID        *string `json:"intern_id,omitempty"`
	StartDate       *string `json:"start_date,omitempty"`
	EndDate         *string `json:"end_date,omitempty"`
	OfferLetterSent bool    `json:"offer_letter_sent"`
	CertificateSent bool    `json:"certificate_sent"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

// ToResponse converts Intern to InternResponse with formatted timestamps
func (i *Intern) ToResponse() InternResponse {
	formatDate := func(t *time.Time) *string {
		if t == nil {
			return nil
		}
		formatted := t.Format(time.RFC3339)
		return &formatted
	}
	return InternResponse{
		ID:              i.ID,
		FullName:        i.FullName,
		Email:           i.Email,
		Mobile:          i.Mobile,
		Qualification:   i.Qualification,
		Role:            i.Role,
		Duration:        i.Duration,
		College:         i.College,
		Status:          i.Status,
		InternID:        i.InternID,
		StartDate:       formatDate(i.StartDate),
		EndDate:         formatDate(i.EndDate),
		OfferLetterSent: i.OfferLetterSent,
		CertificateSent: i.CertificateSent,
		CreatedAt:       i.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       i.UpdatedAt.Format(time.RFC3339),
	}
}

package utils

// Applicant lifecycle status constants
const (
	StatusPending   = "PENDING"
	StatusOfferSent = "OFFER_SENT"
	StatusCompleted = "COMPLETED"
)

// InternIDPrefix is the prefix of generated internship identifiers
const InternIDPrefix = "GWING"

// OfferDurationDays is the length of the internship assigned at offer time
const OfferDurationDays = 30

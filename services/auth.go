package services

import (
	"context"

	apperrors "intern-portal/errors"
	"intern-portal/logger"
	"intern-portal/models"

	"golang.org/x/crypto/bcrypt"
)

// AdminStore is the persistence surface the auth service needs.
type AdminStore interface {
	GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error)
}

// AuthService handles admin login.
type AuthService struct {
	store AdminStore
}

func NewAuthService(store AdminStore) *AuthService {
	return &AuthService{store: store}
}

// Login checks credentials against the stored bcrypt hash and issues a
// signed bearer token. Unknown usernames and wrong passwords are both
// reported as the same Unauthorized error.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", apperrors.NewUnauthorizedError("invalid credentials")
	}

	admin, err := s.store.GetAdminByUsername(ctx, username)
	if err != nil {
		if apperrors.IsKind(err, apperrors.Unauthorized) {
			return "", err
		}
		return "", apperrors.E(apperrors.Dependency, "error looking up admin", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		logger.Warn("Failed login attempt for admin: %s", username)
		return "", apperrors.NewUnauthorizedError("invalid credentials")
	}

	return IssueToken(admin.ID)
}

package services

import (
	"testing"

	"intern-portal/config"
	apperrors "intern-portal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	token, err := IssueToken(7)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	adminID, err := VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), adminID)
}

func TestVerifyTokenRejectsTampering(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	token, err := IssueToken(7)
	require.NoError(t, err)

	_, err = VerifyToken(token + "x")
	require.Error(t, err)
	assert.Equal(t, apperrors.Forbidden, apperrors.KindOf(err))
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	token, err := IssueToken(7)
	require.NoError(t, err)

	config.AppConfig.JWTSecret = "another-secret"
	defer func() { config.AppConfig.JWTSecret = "test-secret" }()

	_, err = VerifyToken(token)
	require.Error(t, err)
	assert.Equal(t, apperrors.Forbidden, apperrors.KindOf(err))
}

func TestIssueTokenRequiresSecret(t *testing.T) {
	config.AppConfig.JWTSecret = ""
	defer func() { config.AppConfig.JWTSecret = "test-secret" }()

	_, err := IssueToken(7)
	require.Error(t, err)
}

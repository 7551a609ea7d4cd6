package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-timetable-dss/internal/models"
	appErrors "github.com/noah-isme/sma-timetable-dss/pkg/errors"
)

func TestTokenServiceIssueAndValidate(t *testing.T) {
	svc := NewTokenService("secret", "sma-idp")

	token, err := svc.IssueToken("user-1", models.RolePlanner, time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.RolePlanner, claims.Role)
}

func TestTokenServiceRejectsForeignIssuerAndExpiry(t *testing.T) {
	other := NewTokenService("secret", "someone-else")
	token, err := other.IssueToken("user-1", models.RoleAdmin, time.Hour)
	require.NoError(t, err)

	_, err = NewTokenService("secret", "sma-idp").ValidateToken(token)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)

	svc := NewTokenService("secret", "")
	past := time.Now().Add(-3 * time.Hour)
	svc.now = func() time.Time { return past }
	expired, err := svc.IssueToken("user-1", models.RoleAdmin, time.Hour)
	require.NoError(t, err)
	svc.now = time.Now
	_, err = svc.ValidateToken(expired)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

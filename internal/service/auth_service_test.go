package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"courseforge/internal/model"
)

func TestLoginRoles(t *testing.T) {
	svc := NewAuthService("secret-code", "test-jwt-secret")

	resp, err := svc.Login("")
	require.NoError(t, err)
	require.Equal(t, model.RolePublic, resp.Role)

	resp, err = svc.Login("secret-code")
	require.NoError(t, err)
	require.Equal(t, model.RoleAdmin, resp.Role)

	_, err = svc.Login("wrong")
	require.ErrorIs(t, err, ErrInvalidCode)
}

func TestValidateTokenRoundTrip(t *testing.T) {
	svc := NewAuthService("secret-code", "test-jwt-secret")

	resp, err := svc.Login("secret-code")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	require.Equal(t, model.RoleAdmin, claims.Role)
	require.NotEmpty(t, claims.SubjectID)
}

func TestValidateTokenRejectsForgeries(t *testing.T) {
	svc := NewAuthService("secret-code", "test-jwt-secret")
	other := NewAuthService("secret-code", "another-secret")

	resp, err := other.Login("secret-code")
	require.NoError(t, err)

	_, err = svc.ValidateToken(resp.Token)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateToken("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

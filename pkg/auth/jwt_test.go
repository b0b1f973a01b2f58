package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := NewTokenService("unit-secret", time.Hour)

	token, err := svc.Generate("doc@clinic.test", "Eva", "Rios")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "doc@clinic.test", claims.Email)
	assert.Equal(t, "Eva", claims.FirstName)
	assert.Equal(t, "Rios", claims.LastName)
}

func TestValidateExpiredToken(t *testing.T) {
	svc := NewTokenService("unit-secret", -time.Minute)

	token, err := svc.Generate("doc@clinic.test", "Eva", "Rios")
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, err := issuer.Generate("doc@clinic.test", "Eva", "Rios")
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateGarbage(t *testing.T) {
	svc := NewTokenService("unit-secret", time.Hour)

	_, err := svc.Validate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

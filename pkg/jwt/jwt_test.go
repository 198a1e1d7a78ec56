package jwt_test

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cafe-pos-api/pkg/jwt"
)

const secret = "jwt-test-secret"

func TestGenerateParse(t *testing.T) {
	tok, err := jwt.Generate(secret, "user-1", "barista", "cafe-pos", 5)
	require.NoError(t, err)

	userID, role, err := jwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "barista", role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := jwt.Generate(secret, "user-1", "admin", "cafe-pos", 5)
	require.NoError(t, err)

	_, _, err = jwt.Parse("otro-secret", tok)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := jwt.Generate(secret, "user-1", "admin", "cafe-pos", -1)
	require.NoError(t, err)

	_, _, err = jwt.Parse(secret, tok)
	assert.ErrorIs(t, err, gojwt.ErrTokenExpired)
}

func TestParse_RechazaAlgoritmoNone(t *testing.T) {
	claims := jwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           "user-1",
		Role:             "admin",
	}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, claims).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, _, err = jwt.Parse(secret, tok)
	assert.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "user-1", "admin", "cafe-pos", 5)
	assert.Error(t, err)

	_, _, err = jwt.Parse("", "x.y.z")
	assert.Error(t, err)
}

package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTServiceRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.GenerateToken("ops-dashboard", time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ops-dashboard", claims.Client)
	assert.Equal(t, "ops-dashboard", claims.Subject)
}

func TestJWTServiceRejects(t *testing.T) {
	svc := NewJWTService("test-secret")
	valid, err := svc.GenerateToken("ops", time.Hour)
	require.NoError(t, err)

	expiring := NewJWTService("test-secret")
	expiring.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiring.GenerateToken("ops", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name  string
		svc   *JWTService
		token string
	}{
		{name: "wrong secret", svc: NewJWTService("other-secret"), token: valid},
		{name: "expired", svc: svc, token: expired},
		{name: "garbage", svc: svc, token: "not-a-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := tt.svc.ValidateToken(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTServiceRejectsNoneAlgorithm(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Client: "ops"})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTService("test-secret").ValidateToken(signed)
	assert.Error(t, err)
}

func TestGenerateTokenRequiresClient(t *testing.T) {
	_, err := NewJWTService("s").GenerateToken("", time.Hour)
	assert.Error(t, err)
}

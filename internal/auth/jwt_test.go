package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() JWTConfig {
	return JWTConfig{
		Secret:    "test-secret-key",
		ExpiresIn: 15 * time.Minute,
		Issuer:    "test-issuer",
	}
}

var alice = UserRecord{ID: 7, Username: "alice", Authorities: []string{"USER"}, Enabled: true}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := NewJWTService(testJWTConfig())

	before := time.Now()
	token, expiresAt, err := svc.GenerateToken(alice)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, before.Add(15*time.Minute), expiresAt, 2*time.Second)

	assert.Equal(t, "alice", svc.ExtractUsername(token))
	assert.True(t, svc.IsTokenValid(token, alice))

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), claims.UserID)
	assert.Equal(t, "test-issuer", claims.Issuer)
	assert.Equal(t, int64(900), svc.ExpiresInSeconds())
}

func TestJWTService_SubjectMismatch(t *testing.T) {
	svc := NewJWTService(testJWTConfig())

	token, _, err := svc.GenerateToken(alice)
	require.NoError(t, err)

	bob := UserRecord{ID: 8, Username: "bob", Enabled: true}
	assert.False(t, svc.IsTokenValid(token, bob))
}

func TestJWTService_ExpiredToken(t *testing.T) {
	issuer := NewJWTService(testJWTConfig())
	issuer.now = func() time.Time { return time.Now().Add(-time.Hour) }

	token, _, err := issuer.GenerateToken(alice)
	require.NoError(t, err)

	svc := NewJWTService(testJWTConfig())
	// The subject is still readable, only verification fails.
	assert.Equal(t, "alice", svc.ExtractUsername(token))
	assert.False(t, svc.IsTokenValid(token, alice))

	_, err = svc.ParseToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_WrongSecret(t *testing.T) {
	other := testJWTConfig()
	other.Secret = "another-secret"
	token, _, err := NewJWTService(other).GenerateToken(alice)
	require.NoError(t, err)

	svc := NewJWTService(testJWTConfig())
	assert.Equal(t, "alice", svc.ExtractUsername(token))
	assert.False(t, svc.IsTokenValid(token, alice))

	_, err = svc.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_WrongIssuer(t *testing.T) {
	other := testJWTConfig()
	other.Issuer = "someone-else"
	token, _, err := NewJWTService(other).GenerateToken(alice)
	require.NoError(t, err)

	assert.False(t, NewJWTService(testJWTConfig()).IsTokenValid(token, alice))
}

func TestJWTService_RejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{
		UserID: alice.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "test-issuer",
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	svc := NewJWTService(testJWTConfig())
	assert.False(t, svc.IsTokenValid(token, alice))
}

func TestJWTService_RequiresExpiry(t *testing.T) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:  "test-issuer",
			Subject: "alice",
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret-key"))
	require.NoError(t, err)

	assert.False(t, NewJWTService(testJWTConfig()).IsTokenValid(token, alice))
}

func TestJWTService_ExtractUsernameMalformed(t *testing.T) {
	svc := NewJWTService(testJWTConfig())

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"two segments", "abc.def"},
		{"bad base64", "###.###.###"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Equal(t, "", svc.ExtractUsername(tt.token))
			})
		})
	}
}

func TestPrincipalContext(t *testing.T) {
	ctx := context.Background()

	_, ok := PrincipalFromContext(ctx)
	assert.False(t, ok)

	p := NewPrincipal(alice, "10.0.0.1")
	ctx = WithPrincipal(ctx, p)

	got, ok := PrincipalFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, uint64(7), got.UserID)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "10.0.0.1", got.RemoteAddr)
	assert.True(t, got.HasAuthority("USER"))
	assert.False(t, got.HasAuthority("ADMIN"))
}

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(4)

	hash, err := h.Hash("supersecret")
	require.NoError(t, err)
	assert.NotEqual(t, "supersecret", hash)
	assert.True(t, h.Verify("supersecret", hash))
	assert.False(t, h.Verify("wrong", hash))
}

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// JWTConfig holds the signing parameters for access tokens.
type JWTConfig struct {
	Secret    string
	ExpiresIn time.Duration
	Issuer    string
}

// TokenService issues and checks bearer tokens.
type TokenService interface {
	GenerateToken(user UserRecord) (string, time.Time, error)
	// ExtractUsername decodes the subject without verifying the signature.
	// It returns "" for anything it cannot decode.
	ExtractUsername(token string) string
	IsTokenValid(token string, user UserRecord) bool
}

// Claims are the claims carried by an access token. The subject is the username.
type Claims struct {
	UserID uint64 `json:"uid"`
	jwt.RegisteredClaims
}

// JWTService is an HS256 TokenService.
type JWTService struct {
	config JWTConfig
	now    func() time.Time
}

var _ TokenService = (*JWTService)(nil)

func NewJWTService(config JWTConfig) *JWTService {
	return &JWTService{
		config: config,
		now:    time.Now,
	}
}

// GenerateToken signs a token whose subject is the user's username.
func (s *JWTService) GenerateToken(user UserRecord) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.config.ExpiresIn)

	claims := Claims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   user.Username,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func (s *JWTService) ExtractUsername(token string) string {
	if token == "" {
		return ""
	}
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	return claims.Subject
}

func (s *JWTService) IsTokenValid(token string, user UserRecord) bool {
	claims, err := s.ParseToken(token)
	if err != nil {
		return false
	}
	return claims.Subject != "" && claims.Subject == user.Username
}

// ParseToken verifies signature, algorithm, issuer and expiry and returns the claims.
func (s *JWTService) ParseToken(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.config.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.config.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ExpiresInSeconds returns the configured token lifetime in seconds.
func (s *JWTService) ExpiresInSeconds() int64 {
	return int64(s.config.ExpiresIn.Seconds())
}

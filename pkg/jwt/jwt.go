package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Purpose scopes what a token may be used for.
type Purpose string

const (
	PurposeAPI            Purpose = "api"
	PurposeConfirm        Purpose = "confirm"
	PurposeChangePassword Purpose = "change_password"
	PurposeResetPassword  Purpose = "reset_password"
	PurposeResetEmail     Purpose = "reset_email"
)

func (p Purpose) Valid() bool {
	switch p {
	case PurposeAPI, PurposeConfirm, PurposeChangePassword, PurposeResetPassword, PurposeResetEmail:
		return true
	}
	return false
}

const DefaultTTL = time.Hour

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrNoSecret     = errors.New("signing secret is empty")
)

// Claims is the signed payload: subject, purpose and an optional value
// (the new address for reset_email).
type Claims struct {
	UserID  string  `json:"user_id"`
	Purpose Purpose `json:"use_for"`
	Value   string  `json:"value,omitempty"`
	jwt.RegisteredClaims
}

type Service struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

type Option func(*Service)

// WithTTL overrides DefaultTTL for tokens issued without an explicit lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock replaces time.Now for issuing and validating.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(secretKey string, opts ...Option) *Service {
	s := &Service{
		secretKey: []byte(secretKey),
		ttl:       DefaultTTL,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) GenerateToken(userID string, purpose Purpose, value string) (string, error) {
	return s.GenerateTokenWithTTL(userID, purpose, value, s.ttl)
}

func (s *Service) GenerateTokenWithTTL(userID string, purpose Purpose, value string, ttl time.Duration) (string, error) {
	if !purpose.Valid() {
		return "", fmt.Errorf("unknown token purpose %q", purpose)
	}
	if len(s.secretKey) == 0 {
		return "", ErrNoSecret
	}
	now := s.now()
	claims := Claims{
		UserID:  userID,
		Purpose: purpose,
		Value:   value,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// ValidateToken checks signature and expiry. Any failure is reported as
// ErrInvalidToken or ErrTokenExpired; the parser error is wrapped.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || !claims.Purpose.Valid() || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"blad_backend/internal/common"
	"blad_backend/internal/config"
	"blad_backend/internal/shared"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// ErrEmptySecret is returned when the service is built without a signing secret.
var ErrEmptySecret = errors.New("jwt signing secret is empty")

// clockSkew tolerates small clock differences between instances on iat and exp.
const clockSkew = 5 * time.Second

// JWTService issues and verifies HS256 credentials.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
	logger *zap.Logger
}

var _ shared.TokenService = (*JWTService)(nil)

// NewJWTService creates a new JWT service. A missing secret is a startup
// failure, not something a request can recover from.
func NewJWTService(cfg *config.Config, logger *zap.Logger) (*JWTService, error) {
	if strings.TrimSpace(cfg.AccessTokenSecret) == "" {
		return nil, ErrEmptySecret
	}
	ttl := cfg.AccessTokenTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &JWTService{
		secret: []byte(cfg.AccessTokenSecret),
		ttl:    ttl,
		issuer: cfg.TokenIssuer,
		now:    time.Now,
		logger: logger,
	}, nil
}

// WithClock replaces the time source. Used by tests to move past expiry.
func (s *JWTService) WithClock(now func() time.Time) *JWTService {
	s.now = now
	return s
}

func (s *JWTService) TTL() time.Duration { return s.ttl }

// IssueToken signs a credential for identity. The identity is trusted as given.
func (s *JWTService) IssueToken(identity shared.Identity) (string, time.Time, error) {
	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.ttl)
	email := common.NormalizeEmail(identity.Email)

	claims := &shared.Claims{
		Email: email,
		Name:  identity.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		s.logger.Error("Failed to sign access token", zap.Error(err))
		return "", time.Time{}, fmt.Errorf("could not sign access token: %w", err)
	}
	return tokenString, expiresAt, nil
}

// ValidateToken checks signature, algorithm, issuer and expiry and returns the claims.
func (s *JWTService) ValidateToken(tokenString string) (*shared.Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(clockSkew),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	claims := &shared.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Email == "" {
		return nil, errors.New("invalid token claims: email missing")
	}
	return claims, nil
}

package services

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/adsboard-api/domain"
	"github.com/adsboard-api/dto"
	"github.com/adsboard-api/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenConfig holds signing settings for TokenService
type TokenConfig struct {
	Secret           string
	AccessTTL        time.Duration
	RefreshTTL       time.Duration
	PasswordResetTTL time.Duration
}

// TokenService issues and validates HS256 JWTs
type TokenService struct {
	secret []byte
	cfg    TokenConfig
	now    func() time.Time
}

// NewTokenService creates a token service
func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("JWT secret must not be empty")
	}
	return &TokenService{secret: []byte(cfg.Secret), cfg: cfg, now: time.Now}, nil
}

// IssuePair generates an access and a refresh token for a user
func (s *TokenService) IssuePair(user *models.User) (*dto.TokenPairResponse, error) {
	access, err := s.issue(user, dto.TokenTypeAccess, s.cfg.AccessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.issue(user, dto.TokenTypeRefresh, s.cfg.RefreshTTL)
	if err != nil {
		return nil, err
	}
	return &dto.TokenPairResponse{Access: access, Refresh: refresh}, nil
}

// IssueAccess generates an access token for a user
func (s *TokenService) IssueAccess(user *models.User) (string, error) {
	return s.issue(user, dto.TokenTypeAccess, s.cfg.AccessTTL)
}

// IssuePasswordReset generates a single-purpose reset token bound to the
// user's current password hash
func (s *TokenService) IssuePasswordReset(user *models.User) (string, error) {
	now := s.now()
	claims := dto.TokenClaims{
		UserID:      user.ID,
		TokenType:   dto.TokenTypePasswordReset,
		Fingerprint: passwordFingerprint(user.Password),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.PasswordResetTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return s.sign(claims)
}

func (s *TokenService) issue(user *models.User, tokenType string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := dto.TokenClaims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      string(user.Role),
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	return s.sign(claims)
}

func (s *TokenService) sign(claims dto.TokenClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate parses a token and checks its signature, expiry and type.
// Any failure is reported as domain.ErrUnauthenticated.
func (s *TokenService) Validate(tokenString, tokenType string) (*dto.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &dto.TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}

	claims, ok := token.Claims.(*dto.TokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token claims", domain.ErrUnauthenticated)
	}
	if claims.TokenType != tokenType {
		return nil, fmt.Errorf("%w: expected %s token, got %q", domain.ErrUnauthenticated, tokenType, claims.TokenType)
	}
	return claims, nil
}

// CheckPasswordReset reports whether token is a live reset token for user.
// It stops matching once the user's password changes.
func (s *TokenService) CheckPasswordReset(tokenString string, user *models.User) bool {
	claims, err := s.Validate(tokenString, dto.TokenTypePasswordReset)
	if err != nil {
		return false
	}
	return claims.UserID == user.ID && claims.Fingerprint == passwordFingerprint(user.Password)
}

func passwordFingerprint(hash string) string {
	sum := sha256.Sum256([]byte(hash))
	return hex.EncodeToString(sum[:8])
}

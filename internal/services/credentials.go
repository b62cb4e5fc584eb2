package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AnshRaj112/lessonhub-backend/internal/apperr"
	"github.com/AnshRaj112/lessonhub-backend/pkg/utils"
)

// CredentialConfig is the signing configuration handed to NewCredentialService.
type CredentialConfig struct {
	Secret   []byte
	TokenTTL time.Duration
}

// Claims is the token payload: {id, iat, exp}.
type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// CredentialService hashes passwords and issues/verifies HS256 tokens.
// It holds no state beyond its configuration.
type CredentialService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewCredentialService(cfg CredentialConfig) (*CredentialService, error) {
	if len(cfg.Secret) == 0 {
		return nil, fmt.Errorf("%w: token signing secret is empty", apperr.ErrConfig)
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("%w: token ttl must be positive", apperr.ErrConfig)
	}
	return &CredentialService{
		secret: append([]byte(nil), cfg.Secret...),
		ttl:    cfg.TokenTTL,
		now:    time.Now,
	}, nil
}

func (s *CredentialService) HashPassword(plaintext string) (string, error) {
	hash, err := utils.HashPassword(plaintext)
	if errors.Is(err, utils.ErrEmptyPassword) {
		v := &apperr.ValidationError{}
		v.Add("password", "password is required")
		return "", v
	}
	return hash, err
}

// VerifyPassword reports whether plaintext matches hash. A malformed hash never matches.
func (s *CredentialService) VerifyPassword(plaintext, hash string) bool {
	ok, err := utils.VerifyPassword(plaintext, hash)
	return err == nil && ok
}

func (s *CredentialService) IssueToken(userID string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("issue token: %w", apperr.ErrBadRequest)
	}
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken checks signature, algorithm and expiry. Every failure matches
// apperr.ErrInvalidToken; expiry additionally matches apperr.ErrExpiredToken.
func (s *CredentialService) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", apperr.ErrInvalidToken, apperr.ErrExpiredToken)
		}
		return nil, fmt.Errorf("%w: %v", apperr.ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == "" {
		return nil, apperr.ErrInvalidToken
	}
	return claims, nil
}

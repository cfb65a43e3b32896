// Package auth provides JWT issuance and verification for the scheduler
// gateway's account-scoped endpoints (zone CRUD). The scheduling kernel
// itself has no notion of accounts or tokens.
package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/chrisharrington/irrigo/pkg/dto"
	"github.com/chrisharrington/irrigo/pkg/types"
)

const (
	tokenExpiry        = time.Hour
	refreshTokenExpiry = 7 * 24 * time.Hour
)

// tokenBlacklist records revoked tokens for the lifetime of the process.
var tokenBlacklist sync.Map

// Claims extends jwt.RegisteredClaims with the fields the gateway's
// middleware needs to authorize a zone-scoped request.
type Claims struct {
	AccountID   string `json:"aid"`
	Email       string `json:"email"`
	JTI         string `json:"jti"`
	Environment string `json:"env"`
	jwt.RegisteredClaims
}

// GenerateToken signs a new access token for account, bound to cfg's
// environment so a staging-issued token is rejected by production.
func GenerateToken(account *dto.AccountResponse, cfg *types.ServiceConfig) (string, error) {
	if account == nil || cfg == nil {
		return "", errors.New("invalid input parameters")
	}

	jti, err := randomID()
	if err != nil {
		return "", fmt.Errorf("failed to generate token id: %w", err)
	}

	claims := &Claims{
		AccountID:   account.ID,
		Email:       account.Email,
		JTI:         jti,
		Environment: cfg.Environment,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "irrigo-scheduler",
			Subject:   account.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.API.JWTSigningKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// GenerateRefreshToken signs a long-lived refresh token for account.
func GenerateRefreshToken(account *dto.AccountResponse, cfg *types.ServiceConfig) (string, error) {
	if account == nil || cfg == nil {
		return "", errors.New("invalid input parameters")
	}

	jti, err := randomID()
	if err != nil {
		return "", fmt.Errorf("failed to generate token id: %w", err)
	}

	claims := &Claims{
		AccountID:   account.ID,
		JTI:         jti,
		Environment: cfg.Environment,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(refreshTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "irrigo-scheduler",
			Subject:   account.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.API.JWTSigningKey))
}

// ValidateToken parses tokenString, rejecting it if blacklisted, signed
// with an unexpected method, expired, or minted for a different
// environment.
func ValidateToken(tokenString string, cfg *types.ServiceConfig) (*jwt.Token, error) {
	if _, blacklisted := tokenBlacklist.Load(tokenString); blacklisted {
		return nil, errors.New("token has been revoked")
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(cfg.API.JWTSigningKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	if claims.Environment != cfg.Environment {
		return nil, errors.New("invalid token environment")
	}

	return token, nil
}

// ExtractAccount pulls the account identity out of a validated token.
func ExtractAccount(token *jwt.Token) (*dto.AccountResponse, error) {
	if token == nil {
		return nil, errors.New("nil token provided")
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	if claims.AccountID == "" {
		return nil, errors.New("incomplete token claims")
	}
	return &dto.AccountResponse{ID: claims.AccountID, Email: claims.Email}, nil
}

// RevokeToken blacklists tokenString for the remainder of the process
// lifetime.
func RevokeToken(tokenString string) {
	tokenBlacklist.Store(tokenString, time.Now())
}

func randomID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// Package auth implements password hashing and the bearer token pair
// used by the API.
package auth

import (
	"errors"
	"time"

	"github.com/culturabase/backend/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidToken  = errors.New("the token is invalid or expired")
	ErrNotRefresh    = errors.New("a refresh token is required for this endpoint")
	ErrWrongPassword = errors.New("the credentials are incorrect")
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// Claims are the JWT claims carried by both access and refresh tokens.
type Claims struct {
	UserID    uuid.UUID `json:"userId"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	TokenType string    `json:"tokenType"`
	jwt.RegisteredClaims
}

// TokenPair is returned by the credential exchange and by refreshes.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Authenticator issues and verifies token pairs. It is constructed once
// at startup from the loaded configuration.
type Authenticator struct {
	secret          []byte
	issuer          string
	accessLifetime  time.Duration
	refreshLifetime time.Duration
}

func New(cfg config.AuthConfig) *Authenticator {
	return &Authenticator{
		secret:          []byte(cfg.Secret),
		issuer:          cfg.Issuer,
		accessLifetime:  cfg.AccessLifetime,
		refreshLifetime: cfg.RefreshLifetime,
	}
}

// NewTokenPair issues a fresh access and refresh token for a user.
func (a *Authenticator) NewTokenPair(userID uuid.UUID, email, role string) (TokenPair, error) {
	access, err := a.sign(userID, email, role, tokenTypeAccess, a.accessLifetime)
	if err != nil {
		return TokenPair{}, err
	}

	refresh, err := a.sign(userID, email, role, tokenTypeRefresh, a.refreshLifetime)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{Access: access, Refresh: refresh}, nil
}

func (a *Authenticator) sign(userID uuid.UUID, email, role, tokenType string, lifetime time.Duration) (string, error) {
	claims := Claims{
		UserID:    userID,
		Email:     email,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(lifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    a.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// VerifyAccess parses an access token and returns its claims.
func (a *Authenticator) VerifyAccess(tokenString string) (*Claims, error) {
	claims, err := a.verify(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.TokenType != tokenTypeAccess {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// VerifyRefresh parses a refresh token and returns its claims.
func (a *Authenticator) VerifyRefresh(tokenString string) (*Claims, error) {
	claims, err := a.verify(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.TokenType != tokenTypeRefresh {
		return nil, ErrNotRefresh
	}

	return claims, nil
}

func (a *Authenticator) verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(_ *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// HashPassword hashes a plain text password for storage.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash reports whether the password matches the stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

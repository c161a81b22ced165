package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// for registration
type RegisterRequest struct {
	Name            string `json:"name" validate:"required,min=2,max=80"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// AuthResult is what the commerce backend returns for register and login.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// for login response
type LoginResponse struct {
	Success        bool   `json:"success"`
	Token          string `json:"token,omitempty"`
	User           *User  `json:"user,omitempty"`
	RemainingTries int    `json:"remaining_tries,omitempty"`
	RetryAfter     int    `json:"retry_after,omitempty"`
	Message        string `json:"message,omitempty"`
}

// Claims are the identity fields the commerce backend puts in its tokens.
type Claims struct {
	UserID string `json:"id,omitempty"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Subject returns the user identity carried by the token, if any.
func (c *Claims) Subject() string {
	if c.UserID != "" {
		return c.UserID
	}

	return c.RegisteredClaims.Subject
}

// Principal is the caller behind a bearer token. SessionKey names the redis
// session that holds the caller's cart and favorites. It is derived from the
// whole token, so two tokens never share a session even when they carry the
// same subject.
type Principal struct {
	Token      string
	SessionKey string
	UserID     string
	Email      string
	ExpiresAt  time.Time
}

// NewPrincipal inspects token without checking its signature. Identity fields
// are informational; the session is keyed by the token hash.
func NewPrincipal(token string) *Principal {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		claims = nil
	}

	return principalFor(token, claims)
}

// NewVerifiedPrincipal parses token as an HMAC signed JWT under key and fails
// on a bad signature, a foreign algorithm or an expired token.
func NewVerifiedPrincipal(token string, key []byte) (*Principal, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return key, nil
	})
	if err != nil {
		return nil, err
	}

	return principalFor(token, claims), nil
}

func principalFor(token string, claims *Claims) *Principal {
	sum := sha256.Sum256([]byte(token))
	p := &Principal{
		Token:      token,
		SessionKey: "token:" + hex.EncodeToString(sum[:16]),
	}

	if claims != nil {
		p.UserID = claims.Subject()
		p.Email = claims.Email
		if claims.ExpiresAt != nil {
			p.ExpiresAt = claims.ExpiresAt.Time
		}
	}

	return p
}

// Expired reports whether the token carries an expiry that has passed.
func (p *Principal) Expired(now time.Time) bool {
	return !p.ExpiresAt.IsZero() && !now.Before(p.ExpiresAt)
}

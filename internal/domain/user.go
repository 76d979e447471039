package domain

import (
	"net/mail"
	"strings"
	"time"
)

// User is an account that can obtain bearer tokens.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	IsActive     bool
	DateJoined   time.Time
	LastLogin    *time.Time
}

// TokenPair is issued on register and login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type TokenKind string

const (
	TokenAccess  TokenKind = "access"
	TokenRefresh TokenKind = "refresh"
)

// TokenClaims is the identity carried by a verified token.
type TokenClaims struct {
	UserID   int64
	Username string
	Kind     TokenKind
	ID       string
	Expires  time.Time
}

// ErrUsernameTaken is reported to clients as a field failure.
var ErrUsernameTaken = ValidationErrors{{Field: "username", Message: "username already taken"}}

// ValidateCredentials checks registration/login input. Email is optional.
func ValidateCredentials(username, password, email string) error {
	var errs ValidationErrors

	username = strings.TrimSpace(username)
	if username == "" {
		errs.Add("username", "username is required")
	} else if len(username) > 150 {
		errs.Add("username", "username must not exceed 150 characters")
	}

	if password == "" {
		errs.Add("password", "password is required")
	}

	if email = strings.TrimSpace(email); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			errs.Add("email", "enter a valid email address")
		}
	}

	return errs.Err()
}

package token

import (
	"fmt"
	"strconv"
	"time"

	"github.com/YelzhanWeb/restaurant/internal/domain"
	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"
)

// claims is the JWT payload for both access and refresh tokens.
type claims struct {
	jwt.RegisteredClaims
	Username  string           `json:"username"`
	TokenType domain.TokenKind `json:"token_type"`
}

// Issuer signs HS256 tokens with a shared secret.
type Issuer struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewIssuer(secret, issuer string, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{
		secret:     []byte(secret),
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (i *Issuer) IssuePair(user *domain.User) (domain.TokenPair, error) {
	access, err := i.sign(user, domain.TokenAccess, i.accessTTL)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := i.sign(user, domain.TokenRefresh, i.refreshTTL)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{Access: access, Refresh: refresh}, nil
}

func (i *Issuer) IssueAccess(user *domain.User) (string, error) {
	return i.sign(user, domain.TokenAccess, i.accessTTL)
}

func (i *Issuer) sign(user *domain.User, kind domain.TokenKind, ttl time.Duration) (string, error) {
	jti, err := uuid.NewV4()
	if err != nil {
		return "", fmt.Errorf("failed to generate token id: %w", err)
	}

	now := i.now()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        jti.String(),
		},
		Username:  user.Username,
		TokenType: kind,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies signature, issuer, expiry and token kind. Every failure is
// reported as domain.ErrInvalidToken.
func (i *Issuer) Parse(raw string, kind domain.TokenKind) (*domain.TokenClaims, error) {
	var c claims
	_, err := jwt.ParseWithClaims(raw, &c, func(*jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidToken, err)
	}
	if c.TokenType != kind {
		return nil, fmt.Errorf("%w: expected %s token", domain.ErrInvalidToken, kind)
	}

	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject", domain.ErrInvalidToken)
	}

	return &domain.TokenClaims{
		UserID:   userID,
		Username: c.Username,
		Kind:     c.TokenType,
		ID:       c.ID,
		Expires:  c.ExpiresAt.Time,
	}, nil
}

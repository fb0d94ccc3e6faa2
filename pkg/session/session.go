// Package session issues and verifies the signed access tokens that identify
// a logged-in user.
//
// Tokens are HS256 JWTs carried in an HttpOnly cookie named "accessToken".
// They are stateless: the server keeps no session table, and a token stays
// valid until it expires. Every authenticated request re-issues the token so
// expiry is measured from the last access.
//
// # Usage
//
//	issuer, err := session.NewIssuer(secret, session.DefaultTTL)
//	tok, err := issuer.Issue(user.ID, user.Email)
//	http.SetCookie(w, session.Cookie(tok, true))
//
//	claims, err := issuer.Verify(cookie.Value)
//	if errors.Is(err, session.ErrExpired) {
//	    // ask the user to log in again
//	}
package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Sentinel errors for token verification.
var (
	// ErrInvalidToken is returned for malformed, tampered or unsigned tokens.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpired is returned when a token has exceeded its TTL.
	ErrExpired = errors.New("expired")

	// ErrNoSecret is returned when an issuer is created without a secret.
	ErrNoSecret = errors.New("token secret is required")
)

// Default values.
const (
	// DefaultTTL is how long an access token stays valid after its last use.
	DefaultTTL = 7 * 24 * time.Hour

	// CookieName is the name of the access token cookie.
	CookieName = "accessToken"

	// DefaultIssuer is the iss claim stamped on every token.
	DefaultIssuer = "pagecraft"

	signingMethod = "HS256"
)

// Claims are the verified contents of an access token.
type Claims struct {
	UserID    string
	Email     string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Token is a signed access token.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// tokenClaims is the JWT payload.
type tokenClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Issuer signs and verifies access tokens with a shared secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	issuer string

	// Now returns the current time. Tests replace it to control expiry.
	Now func() time.Time
}

// NewIssuer returns an issuer for the given secret. A non-positive ttl
// selects DefaultTTL.
func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrNoSecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: DefaultIssuer,
		Now:    time.Now,
	}, nil
}

// TTL returns the token lifetime.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue signs a token for the user.
func (i *Issuer) Issue(userID, email string) (Token, error) {
	if userID == "" {
		return Token{}, fmt.Errorf("issue token: empty user id")
	}
	jti, err := GenerateID()
	if err != nil {
		return Token{}, fmt.Errorf("generate token id: %w", err)
	}

	now := i.now()
	exp := now.Add(i.ttl)
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   userID,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Email: email,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return Token{}, fmt.Errorf("sign token: %w", err)
	}
	return Token{Value: signed, ExpiresAt: exp}, nil
}

// Verify checks the signature, issuer and expiry of a token. Any failure
// returns ErrInvalidToken or ErrExpired and zero claims.
func (i *Issuer) Verify(token string) (Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Claims{}, ErrInvalidToken
	}

	var parsed tokenClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{signingMethod}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return Claims{}, mapJWTError(err)
	}

	if parsed.Issuer != i.issuer || parsed.Subject == "" {
		return Claims{}, ErrInvalidToken
	}
	if parsed.ExpiresAt == nil {
		return Claims{}, ErrInvalidToken
	}
	exp := parsed.ExpiresAt.Time.UTC()
	if !exp.After(i.now().UTC()) {
		return Claims{}, ErrExpired
	}

	claims := Claims{
		UserID:    parsed.Subject,
		Email:     parsed.Email,
		TokenID:   parsed.ID,
		ExpiresAt: exp,
	}
	if parsed.IssuedAt != nil {
		claims.IssuedAt = parsed.IssuedAt.Time.UTC()
	}
	return claims, nil
}

func (i *Issuer) now() time.Time {
	if i.Now == nil {
		return time.Now()
	}
	return i.Now()
}

// mapJWTError translates jwt library errors to session errors.
func mapJWTError(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return ErrExpired
	}
	return fmt.Errorf("%w: %v", ErrInvalidToken, err)
}

// Cookie returns the access token cookie. secure should only be false for
// plain-HTTP local development.
func Cookie(tok Token, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    tok.Value,
		Path:     "/",
		Expires:  tok.ExpiresAt,
		MaxAge:   int(time.Until(tok.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// ClearCookie returns a cookie that removes the access token.
func ClearCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// GenerateID creates a cryptographically secure random token id.
func GenerateID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

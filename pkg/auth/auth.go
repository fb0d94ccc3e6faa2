// Package auth registers and logs in users and resolves the current user
// from an access token.
//
// Passwords are hashed with bcrypt and never leave this package. Failures
// are *errors.Error values whose messages are safe to show to the user:
// "User already exists" for a taken email and "Invalid credentials" for an
// unknown email or a wrong password.
package auth

import (
	"context"
	stderrors "errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/matzehuels/pagecraft/pkg/errors"
	"github.com/matzehuels/pagecraft/pkg/observability"
	"github.com/matzehuels/pagecraft/pkg/session"
	"github.com/matzehuels/pagecraft/pkg/storage"
)

// DefaultCost is the bcrypt work factor for new password hashes.
const DefaultCost = 10

// User-facing messages.
const (
	msgUserExists         = "User already exists"
	msgInvalidCredentials = "Invalid credentials"
)

// UserInfo is the public view of an account.
type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Service implements the account operations.
type Service struct {
	users  storage.UserStore
	tokens *session.Issuer
	cost   int
}

// NewService returns a service over the given store and token issuer.
func NewService(users storage.UserStore, tokens *session.Issuer) *Service {
	return &Service{users: users, tokens: tokens, cost: DefaultCost}
}

// WithCost returns a copy of s hashing with the given bcrypt cost. Tests use
// bcrypt.MinCost to stay fast.
func (s *Service) WithCost(cost int) *Service {
	c := *s
	c.cost = cost
	return &c
}

// Register creates an account. The email must be valid and the password at
// least errors.MinPasswordLength characters.
func (s *Service) Register(ctx context.Context, email, password string) (info UserInfo, err error) {
	defer func() { observability.Auth().OnRegister(ctx, err) }()

	if err := errors.ValidateEmail(email); err != nil {
		return UserInfo{}, err
	}
	if err := errors.ValidatePassword(password); err != nil {
		return UserInfo{}, err
	}

	email = storage.NormalizeEmail(email)
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return UserInfo{}, errors.New(errors.ErrCodeUserExists, msgUserExists)
	} else if !stderrors.Is(err, storage.ErrNotFound) {
		return UserInfo{}, errors.Wrap(errors.ErrCodeInternal, err, "look up user")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return UserInfo{}, errors.Wrap(errors.ErrCodeInternal, err, "hash password")
	}

	u, err := s.users.Create(ctx, email, string(hash))
	if stderrors.Is(err, storage.ErrDuplicate) {
		return UserInfo{}, errors.New(errors.ErrCodeUserExists, msgUserExists)
	}
	if err != nil {
		return UserInfo{}, errors.Wrap(errors.ErrCodeInternal, err, "create user")
	}
	return infoOf(u), nil
}

// Login checks a password against the stored hash.
func (s *Service) Login(ctx context.Context, email, password string) (info UserInfo, err error) {
	defer func() { observability.Auth().OnLogin(ctx, err) }()

	if err := errors.ValidateEmail(email); err != nil {
		return UserInfo{}, err
	}

	u, err := s.users.FindByEmail(ctx, email)
	if stderrors.Is(err, storage.ErrNotFound) {
		return UserInfo{}, errors.New(errors.ErrCodeInvalidCredentials, msgInvalidCredentials)
	}
	if err != nil {
		return UserInfo{}, errors.Wrap(errors.ErrCodeInternal, err, "look up user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return UserInfo{}, errors.New(errors.ErrCodeInvalidCredentials, msgInvalidCredentials)
	}
	return infoOf(u), nil
}

// Issue signs an access token for the user.
func (s *Service) Issue(u UserInfo) (session.Token, error) {
	tok, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return session.Token{}, errors.Wrap(errors.ErrCodeInternal, err, "issue token")
	}
	return tok, nil
}

// CurrentUser resolves the user behind a token. It returns nil on any
// failure, including a valid token for an account that no longer exists.
func (s *Service) CurrentUser(ctx context.Context, token string) *UserInfo {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		reason := "invalid"
		if stderrors.Is(err, session.ErrExpired) {
			reason = "expired"
		}
		if token != "" {
			observability.Auth().OnTokenRejected(ctx, reason)
		}
		return nil
	}

	u, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		observability.Auth().OnTokenRejected(ctx, "unknown user")
		return nil
	}
	info := infoOf(u)
	return &info
}

func infoOf(u storage.User) UserInfo {
	return UserInfo{ID: u.ID, Email: u.Email}
}

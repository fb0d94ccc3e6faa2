package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/matzehuels/pagecraft/pkg/errors"
	"github.com/matzehuels/pagecraft/pkg/observability"
	"github.com/matzehuels/pagecraft/pkg/session"
	"github.com/matzehuels/pagecraft/pkg/storage"
)

func newTestService(t *testing.T) (*Service, *storage.MemoryStore, *session.Issuer) {
	t.Helper()
	store := storage.NewMemoryStore()
	issuer, err := session.NewIssuer("test-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return NewService(store, issuer).WithCost(bcrypt.MinCost), store, issuer
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	s, store, _ := newTestService(t)

	info, err := s.Register(ctx, "Ada@Example.com", "secret1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if info.ID == "" || info.Email != "ada@example.com" {
		t.Errorf("info = %+v", info)
	}

	u, err := store.FindByEmail(ctx, "ada@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if u.PasswordHash == "secret1" {
		t.Error("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
}

func TestRegisterErrors(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestService(t)
	if _, err := s.Register(ctx, "taken@example.com", "secret1"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		code     errors.Code
		message  string
	}{
		{"duplicate", "taken@example.com", "another1", errors.ErrCodeUserExists, "User already exists"},
		{"duplicate different case", "TAKEN@example.com", "another1", errors.ErrCodeUserExists, "User already exists"},
		{"bad email", "not-an-email", "secret1", errors.ErrCodeInvalidEmail, ""},
		{"short password", "new@example.com", "12345", errors.ErrCodeInvalidPassword, ""},
		{"password over bcrypt limit", "long@example.com", strings.Repeat("a", 80), errors.ErrCodeInvalidPassword, "Password must be at most 72 bytes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Register(ctx, tt.email, tt.password)
			if !errors.Is(err, tt.code) {
				t.Fatalf("err = %v, want code %s", err, tt.code)
			}
			if tt.message != "" && errors.UserMessage(err) != tt.message {
				t.Errorf("message = %q, want %q", errors.UserMessage(err), tt.message)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestService(t)
	reg, err := s.Register(ctx, "ada@example.com", "secret1")
	if err != nil {
		t.Fatal(err)
	}

	info, err := s.Login(ctx, "ada@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if info != reg {
		t.Errorf("Login = %+v, want %+v", info, reg)
	}

	tests := []struct {
		name, email, password string
	}{
		{"wrong password", "ada@example.com", "wrong!!"},
		{"unknown user", "bob@example.com", "secret1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Login(ctx, tt.email, tt.password)
			if !errors.Is(err, errors.ErrCodeInvalidCredentials) {
				t.Fatalf("err = %v, want INVALID_CREDENTIALS", err)
			}
			if errors.UserMessage(err) != "Invalid credentials" {
				t.Errorf("message = %q", errors.UserMessage(err))
			}
		})
	}
}

func TestCurrentUser(t *testing.T) {
	ctx := context.Background()
	s, _, issuer := newTestService(t)
	info, err := s.Register(ctx, "ada@example.com", "secret1")
	if err != nil {
		t.Fatal(err)
	}
	tok, err := s.Issue(info)
	if err != nil {
		t.Fatal(err)
	}

	got := s.CurrentUser(ctx, tok.Value)
	if got == nil || *got != info {
		t.Fatalf("CurrentUser = %v, want %+v", got, info)
	}

	ghost, err := issuer.Issue("no-such-user", "ghost@example.com")
	if err != nil {
		t.Fatal(err)
	}

	for name, token := range map[string]string{
		"empty":        "",
		"garbage":      "abc.def.ghi",
		"unknown user": ghost.Value,
	} {
		if s.CurrentUser(ctx, token) != nil {
			t.Errorf("%s: CurrentUser should fail closed", name)
		}
	}

	issuer.Now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if s.CurrentUser(ctx, tok.Value) != nil {
		t.Error("expired token should fail closed")
	}
}

type recordingAuthHooks struct {
	observability.NoopAuthHooks
	registers, logins int
	rejected          []string
}

func (h *recordingAuthHooks) OnRegister(context.Context, error) { h.registers++ }
func (h *recordingAuthHooks) OnLogin(context.Context, error)    { h.logins++ }
func (h *recordingAuthHooks) OnTokenRejected(_ context.Context, reason string) {
	h.rejected = append(h.rejected, reason)
}

func TestAuthHooks(t *testing.T) {
	hooks := &recordingAuthHooks{}
	observability.SetAuthHooks(hooks)
	defer observability.Reset()

	ctx := context.Background()
	s, _, _ := newTestService(t)
	s.Register(ctx, "ada@example.com", "secret1")
	s.Login(ctx, "ada@example.com", "nope!!")
	s.CurrentUser(ctx, "garbage")
	s.CurrentUser(ctx, "")

	if hooks.registers != 1 || hooks.logins != 1 {
		t.Errorf("registers = %d, logins = %d", hooks.registers, hooks.logins)
	}
	if len(hooks.rejected) != 1 || hooks.rejected[0] != "invalid" {
		t.Errorf("rejected = %v, want [invalid]", hooks.rejected)
	}
}

package server

import (
	"context"
	"net/http"

	"github.com/matzehuels/pagecraft/pkg/auth"
	"github.com/matzehuels/pagecraft/pkg/session"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	s.authenticate(w, r, http.StatusCreated, s.auth.Register)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	s.authenticate(w, r, http.StatusOK, s.auth.Login)
}

// authenticate runs a credential check and, on success, sets the access
// token cookie and writes the user.
func (s *Server) authenticate(w http.ResponseWriter, r *http.Request, status int,
	check func(ctx context.Context, email, password string) (auth.UserInfo, error)) {
	var in credentials
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, s.logger, err)
		return
	}

	user, err := check(r.Context(), in.Email, in.Password)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	if err := s.setSessionCookie(w, user); err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, status, user)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, session.ClearCookie(s.secureCookies))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userFromContext(r.Context()))
}

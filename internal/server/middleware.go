package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/pagecraft/pkg/auth"
	"github.com/matzehuels/pagecraft/pkg/errors"
	"github.com/matzehuels/pagecraft/pkg/observability"
	"github.com/matzehuels/pagecraft/pkg/session"
)

type ctxKey int

const userKey ctxKey = 0

func withUser(ctx context.Context, u *auth.UserInfo) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// userFromContext returns the authenticated user, or nil outside requireAuth.
func userFromContext(ctx context.Context) *auth.UserInfo {
	u, _ := ctx.Value(userKey).(*auth.UserInfo)
	return u
}

// requestLogger logs each request with its status and duration and reports
// it to the HTTP hooks.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			elapsed := time.Since(start)
			observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, status, elapsed)

			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration", elapsed.Round(time.Microsecond),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

// requireAuth rejects requests without a valid access token cookie and
// re-issues the cookie for those that have one.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(session.CookieName)
		if err != nil || strings.TrimSpace(cookie.Value) == "" {
			writeError(w, s.logger, errors.New(errors.ErrCodeUnauthorized, "Unauthorized"))
			return
		}

		user := s.auth.CurrentUser(r.Context(), cookie.Value)
		if user == nil {
			http.SetCookie(w, session.ClearCookie(s.secureCookies))
			writeError(w, s.logger, errors.New(errors.ErrCodeUnauthorized, "Unauthorized"))
			return
		}

		if err := s.setSessionCookie(w, *user); err != nil {
			s.logger.Warn("refresh access token", "err", err)
		}
		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
	})
}

func (s *Server) setSessionCookie(w http.ResponseWriter, u auth.UserInfo) error {
	tok, err := s.auth.Issue(u)
	if err != nil {
		return err
	}
	http.SetCookie(w, session.Cookie(tok, s.secureCookies))
	return nil
}

package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pagecraft/pkg/errors"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError maps err to a status and writes its user message. Errors that
// are not safe to show are logged and replaced with a generic message.
func writeError(w http.ResponseWriter, logger *log.Logger, err error) {
	status := statusFor(err)
	if !errors.Public(err) {
		logger.Error("request failed", "err", err)
		writeJSON(w, status, errorResponse{Error: "Something went wrong"})
		return
	}
	writeJSON(w, status, errorResponse{Error: errors.UserMessage(err), Code: string(errors.GetCode(err))})
}

func statusFor(err error) int {
	code := errors.GetCode(err)
	switch code {
	case errors.ErrCodeUserExists:
		return http.StatusConflict
	case errors.ErrCodeInvalidCredentials, errors.ErrCodeUnauthorized, errors.ErrCodeSessionExpired:
		return http.StatusUnauthorized
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	}
	if strings.HasPrefix(string(code), "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// decodeJSON reads a JSON body into v. Malformed bodies are INVALID_INPUT.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "Invalid request body")
	}
	return nil
}

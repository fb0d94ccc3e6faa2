package errors

import (
	"net/mail"
	"strings"
	"unicode"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

// MaxPasswordLength is the bcrypt input limit in bytes.
const MaxPasswordLength = 72

// maxEmailLength follows the RFC 5321 path limit.
const maxEmailLength = 254

// ValidateEmail validates an email address for registration and login.
// The address must parse as a bare addr-spec (no display name) with a
// dotted domain.
func ValidateEmail(email string) error {
	if email == "" {
		return New(ErrCodeInvalidEmail, "Email is required")
	}
	if len(email) > maxEmailLength {
		return New(ErrCodeInvalidEmail, "Email is too long")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return New(ErrCodeInvalidEmail, "Invalid email address")
	}

	at := strings.LastIndex(email, "@")
	domain := email[at+1:]
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return New(ErrCodeInvalidEmail, "Invalid email address")
	}
	return nil
}

// ValidatePassword enforces the password length bounds. The password
// itself is never included in the returned error.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return New(ErrCodeInvalidPassword, "Password must be at least %d characters", MinPasswordLength)
	}
	if len(password) > MaxPasswordLength {
		return New(ErrCodeInvalidPassword, "Password must be at most %d bytes", MaxPasswordLength)
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidURL, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidURL, "URL must use http or https scheme")
	}

	for _, r := range rawURL {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidURL, "URL contains invalid control characters")
		}
	}
	return nil
}

// ValidateFilename validates an output filename for safety.
// It ensures the filename is a simple basename without path components.
func ValidateFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidPath, "filename cannot be empty")
	}

	// Must be a simple filename, not a path
	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidPath, "filename cannot contain path separators")
	}

	if filename == "." || filename == ".." || strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidPath, "filename cannot be a hidden file")
	}

	for _, r := range filename {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "filename contains invalid characters")
		}
	}
	return nil
}

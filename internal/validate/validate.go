package validate

import (
	"regexp"
	"strings"
)

var (
	rePhone = regexp.MustCompile(`^\+?[0-9 \-()]{6,20}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

// Name validates a displayable person or entity name.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 100 {
		return "", false
	}
	return s, true
}

// Phone validates a dialable phone number (digits, spaces, dashes, optional +).
func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return s, rePhone.MatchString(s)
}

// Message validates free-form inquiry text; only presence and a sane cap.
func Message(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 4000 {
		return "", false
	}
	return s, true
}

// ID validates a category/series/inquiry identifier.
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Username validates the admin login name.
func Username(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 50 {
		return "", false
	}
	return s, true
}

// Password enforces a simple length window for login checks.
func Password(s string) bool {
	return len(s) >= 6 && len(s) <= 72
}

package validation

import (
	"regexp"
	"strings"
	"time"

	"reviewhub/internal/api/apierr"
)

const (
	MaxUsernameLen = 150
	MaxEmailLen    = 254
	MaxSlugLen     = 50
	MaxTitleLen    = 256
	MinScore       = 1
	MaxScore       = 10
)

var (
	usernameRegex = regexp.MustCompile(`^[\w.@+-]+$`)
	slugRegex     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
	// good enough for an API boundary; real deliverability is the
	// mailer's problem
	emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// Username rejects the reserved literal "me", anything outside
// [\w.@+-] and anything longer than 150 characters.
func Username(s string) error {
	if s == "" {
		return apierr.Validation("username is required")
	}
	if s == "me" {
		return apierr.Validation(`username "me" is reserved`)
	}
	if len(s) > MaxUsernameLen {
		return apierr.Validation("username must be at most %d characters", MaxUsernameLen)
	}
	if !usernameRegex.MatchString(s) {
		return apierr.Validation("username may only contain letters, digits and @/./+/-/_")
	}
	return nil
}

func Email(s string) error {
	if s == "" {
		return apierr.Validation("email is required")
	}
	if len(s) > MaxEmailLen {
		return apierr.Validation("email must be at most %d characters", MaxEmailLen)
	}
	if !emailRegex.MatchString(s) {
		return apierr.Validation("invalid email address")
	}
	return nil
}

func Slug(s string) error {
	if s == "" {
		return apierr.Validation("slug is required")
	}
	if len(s) > MaxSlugLen {
		return apierr.Validation("slug must be at most %d characters", MaxSlugLen)
	}
	if !slugRegex.MatchString(s) {
		return apierr.Validation("slug may only contain letters, digits, hyphens and underscores")
	}
	return nil
}

// Year rejects titles that have not been released yet. The current
// calendar year is accepted.
func Year(y int) error {
	if y > time.Now().Year() {
		return apierr.Validation("year %d is in the future", y)
	}
	return nil
}

func Score(n int) error {
	if n < MinScore || n > MaxScore {
		return apierr.Validation("score must be between %d and %d", MinScore, MaxScore)
	}
	return nil
}

// TitleName caps the title name length.
func TitleName(s string) error {
	if strings.TrimSpace(s) == "" {
		return apierr.Validation("name is required")
	}
	if len(s) > MaxTitleLen {
		return apierr.Validation("name must be at most %d characters", MaxTitleLen)
	}
	return nil
}

// UsernamePattern and SlugPattern are exposed for binding-level rules.
func UsernamePattern(s string) bool { return s != "me" && usernameRegex.MatchString(s) }
func SlugPattern(s string) bool     { return slugRegex.MatchString(s) }

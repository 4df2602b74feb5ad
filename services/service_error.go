package services

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/yashrajoria/streetwear-backend/repository"
)

// ServiceError represents a typed error with an HTTP status code.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return e.Message
}

func badRequest(msg string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusBadRequest, Message: msg}
}

func notFound(msg string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusNotFound, Message: msg}
}

func conflict(msg string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusConflict, Message: msg}
}

func unauthorized() *ServiceError {
	return &ServiceError{StatusCode: http.StatusUnauthorized, Message: "Unauthorized"}
}

// internal passes the underlying store message through to the client.
func internal(err error) *ServiceError {
	return &ServiceError{StatusCode: http.StatusInternalServerError, Message: err.Error()}
}

// lookupError maps ErrNotFound to a 404 with msg and anything else to a 500.
func lookupError(err error, msg string) *ServiceError {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(msg)
	}
	return internal(err)
}

const (
	DefaultPageLimit = 12
	MaxPageLimit     = 100
)

// NormalizePage clamps page and limit to usable values.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
	dashRuns     = regexp.MustCompile(`-+`)
)

// Slugify lowercases s and joins its ASCII alphanumeric runs with dashes.
// Names with none, such as Devanagari titles, get a random "item-" slug.
func Slugify(s string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
	slug = strings.Trim(dashRuns.ReplaceAllString(slug, "-"), "-")
	if slug == "" {
		return "item-" + uuid.NewString()[:8]
	}
	return slug
}

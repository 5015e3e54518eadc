package ops

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/newshub/baitscan/internal/clickbait"
	"github.com/newshub/baitscan/internal/errors"
)

// Pagination limits
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Pagination contains pagination metadata for list operations.
type Pagination struct {
	Limit   int  `json:"limit" yaml:"limit"`
	Offset  int  `json:"offset" yaml:"offset"`
	HasMore bool `json:"has_more" yaml:"has_more"`
	Total   int  `json:"total" yaml:"total"`
}

// ParseCategory validates a category filter. Empty or nil means no filter.
func ParseCategory(s *string) (*clickbait.Category, error) {
	if s == nil {
		return nil, nil
	}
	name := strings.ToLower(strings.TrimSpace(*s))
	if name == "" {
		return nil, nil
	}
	info, ok := clickbait.LookupCategory(name)
	if !ok {
		return nil, errors.NewInvalidRequest("category must be one of: safe, warning, suspicious, danger")
	}
	return &info.Category, nil
}

// cleanOptionalString trims s and maps blank values to nil.
func cleanOptionalString(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// generateULID generates a new ULID.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

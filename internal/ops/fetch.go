package ops

import (
	"context"
	"database/sql"
	"strings"

	"github.com/newshub/baitscan/internal/clickbait"
	"github.com/newshub/baitscan/internal/db"
	"github.com/newshub/baitscan/internal/errors"
)

// FetchInput contains parameters for the Fetch operation.
type FetchInput struct {
	ID             string
	IncludeDeleted bool
}

// FetchOutput contains the result of the Fetch operation.
type FetchOutput struct {
	clickbait.Record `yaml:",inline"` // embedded (copy, not pointer)
}

// Fetch retrieves a stored analysis by ID.
func Fetch(ctx context.Context, database *sql.DB, input FetchInput) (*FetchOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}

	r, err := db.GetByID(ctx, database, id, input.IncludeDeleted)
	if err != nil {
		return nil, err
	}

	return &FetchOutput{Record: *r}, nil
}

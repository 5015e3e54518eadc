package ops

import (
	"context"
	"database/sql"

	"github.com/newshub/baitscan/internal/clickbait"
	"github.com/newshub/baitscan/internal/db"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	Category       *string // optional: safe, warning, suspicious, danger
	ClickbaitOnly  bool
	Query          *string // optional substring of the title, case-insensitive
	Limit          int     // default: 20, max: 100
	Offset         int     // default: 0
	IncludeDeleted bool
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Items      []clickbait.RecordSummary `json:"items" yaml:"items"`
	Pagination Pagination                `json:"pagination" yaml:"pagination"`
	Sort       string                    `json:"sort" yaml:"sort"`
}

// List retrieves analysis summaries, newest first, with pagination.
func List(ctx context.Context, database *sql.DB, input ListInput) (*ListOutput, error) {
	category, err := ParseCategory(input.Category)
	if err != nil {
		return nil, err
	}

	// Apply limit defaults and bounds
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	// Ensure offset is non-negative
	offset := max(input.Offset, 0)

	filter := db.Filter{
		Category:       category,
		ClickbaitOnly:  input.ClickbaitOnly,
		Query:          cleanOptionalString(input.Query),
		IncludeDeleted: input.IncludeDeleted,
	}
	summaries, total, err := db.List(ctx, database, filter, limit, offset)
	if err != nil {
		return nil, err
	}

	// Ensure we return an empty array rather than nil
	if summaries == nil {
		summaries = []clickbait.RecordSummary{}
	}

	return &ListOutput{
		Items: summaries,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+len(summaries) < total,
			Total:   total,
		},
		Sort: "created_at_desc",
	}, nil
}

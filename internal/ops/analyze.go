package ops

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/newshub/baitscan/internal/clickbait"
	"github.com/newshub/baitscan/internal/config"
	"github.com/newshub/baitscan/internal/db"
	"github.com/newshub/baitscan/internal/errors"
)

// AnalyzeInput contains parameters for the Analyze operation.
type AnalyzeInput struct {
	Title  string
	Save   bool    // persist the result to history
	Source *string // optional, stored only with Save
	Link   *string // optional, stored only with Save
}

// AnalyzeOutput contains the result of the Analyze operation.
type AnalyzeOutput struct {
	ID               string `json:"id,omitempty" yaml:"id,omitempty"` // set only when saved
	Title            string `json:"title" yaml:"title"`
	clickbait.Result `yaml:",inline"`
}

// Analyze scores a headline and optionally stores the result.
func Analyze(ctx context.Context, database *sql.DB, cfg *config.Config, input AnalyzeInput) (*AnalyzeOutput, error) {
	result := clickbait.Analyze(input.Title)
	output := &AnalyzeOutput{
		Title:  input.Title,
		Result: result,
	}

	if !input.Save {
		return output, nil
	}

	if strings.TrimSpace(input.Title) == "" {
		return nil, errors.NewInvalidRequest("title is required")
	}
	chars := clickbait.CountChars(input.Title)
	if chars > cfg.TitleMaxChars {
		return nil, errors.NewTitleTooLarge(cfg.TitleMaxChars, chars)
	}

	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	r := &clickbait.Record{
		ID:         id,
		Title:      input.Title,
		TitleNorm:  clickbait.Normalize(input.Title),
		TitleChars: chars,
		Source:     cleanOptionalString(input.Source),
		Link:       cleanOptionalString(input.Link),
		Result:     result,
		CreatedAt:  time.Now().Unix(),
	}
	if err := db.Insert(ctx, database, r); err != nil {
		return nil, err
	}

	output.ID = id
	return output, nil
}

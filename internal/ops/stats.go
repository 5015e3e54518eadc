package ops

import (
	"context"
	"database/sql"

	"github.com/newshub/baitscan/internal/db"
)

// StatsOutput contains the result of the Stats operation.
type StatsOutput struct {
	db.Stats `yaml:",inline"`

	// ClickbaitRate is Clickbait/Total, 0 when the history is empty
	ClickbaitRate float64 `json:"clickbait_rate" yaml:"clickbait_rate"`
}

// Stats summarizes the active analysis history.
func Stats(ctx context.Context, database *sql.DB) (*StatsOutput, error) {
	s, err := db.GetStats(ctx, database)
	if err != nil {
		return nil, err
	}

	out := &StatsOutput{Stats: *s}
	if s.Total > 0 {
		out.ClickbaitRate = float64(s.Clickbait) / float64(s.Total)
	}
	return out, nil
}

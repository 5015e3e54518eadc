package ops

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/newshub/baitscan/internal/clickbait"
	"github.com/newshub/baitscan/internal/config"
	"github.com/newshub/baitscan/internal/errors"
)

// TagInput contains parameters for the Tag operation.
type TagInput struct {
	Titles    []string
	WithScore bool // also run the full analyzer per title
}

// TagItem is the verdict for one title, in caller order.
type TagItem struct {
	Index       int                 `json:"index" yaml:"index"`
	Title       string              `json:"title" yaml:"title"`
	IsClickbait bool                `json:"is_clickbait" yaml:"is_clickbait"`
	Score       *int                `json:"score,omitempty" yaml:"score,omitempty"`
	Category    *clickbait.Category `json:"category,omitempty" yaml:"category,omitempty"`
}

// TagOutput contains the result of the Tag operation.
type TagOutput struct {
	Items          []TagItem `json:"items" yaml:"items"`
	Count          int       `json:"count" yaml:"count"`
	ClickbaitCount int       `json:"clickbait_count" yaml:"clickbait_count"`
}

// Tag flags a batch of titles with the quick classifier.
// Work is spread over cfg.TagWorkers goroutines; output order matches input order.
func Tag(ctx context.Context, cfg *config.Config, input TagInput) (*TagOutput, error) {
	if len(input.Titles) == 0 {
		return nil, errors.NewInvalidRequest("titles must not be empty")
	}
	if len(input.Titles) > cfg.TagMaxItems {
		return nil, errors.NewBatchTooLarge(cfg.TagMaxItems, len(input.Titles))
	}

	items := make([]TagItem, len(input.Titles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.TagWorkers, 1))
	for i, title := range input.Titles {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// Each goroutine owns items[i]; no locking needed.
			item := TagItem{
				Index:       i,
				Title:       title,
				IsClickbait: clickbait.IsLikelyClickbait(title),
			}
			if input.WithScore {
				r := clickbait.Analyze(title)
				item.Score = &r.Score
				item.Category = &r.Category
			}
			items[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.NewCancelled("tag")
	}
	if ctx.Err() != nil {
		return nil, errors.NewCancelled("tag")
	}

	output := &TagOutput{Items: items, Count: len(items)}
	for _, it := range items {
		if it.IsClickbait {
			output.ClickbaitCount++
		}
	}
	return output, nil
}

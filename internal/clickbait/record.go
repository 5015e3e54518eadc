package clickbait

// Record is a persisted analysis of one headline.
type Record struct {
	// ID is a ULID that uniquely identifies this analysis
	ID string `json:"id" yaml:"id"`

	// Title is the headline exactly as analyzed
	Title string `json:"title" yaml:"title"`

	// TitleNorm is the normalized title used for history search
	TitleNorm string `json:"title_norm" yaml:"title_norm"`

	// TitleChars is the title length in runes
	TitleChars int `json:"title_chars" yaml:"title_chars"`

	// Source names where the headline came from (e.g., "newsdata", "manual")
	Source *string `json:"source,omitempty" yaml:"source,omitempty"`

	// Link is the article URL, if known
	Link *string `json:"link,omitempty" yaml:"link,omitempty"`

	// Result is the breakdown produced by Analyze
	Result Result `json:"result" yaml:"result"`

	// CreatedAt is the Unix timestamp when the analysis was stored
	CreatedAt int64 `json:"created_at" yaml:"created_at"`

	// DeletedAt is the Unix timestamp for soft delete (nullable)
	DeletedAt *int64 `json:"deleted_at,omitempty" yaml:"deleted_at,omitempty"`
}

// RecordSummary is a Record without the trigger breakdown, for history listings.
type RecordSummary struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Source      *string  `json:"source,omitempty" yaml:"source,omitempty"`
	Link        *string  `json:"link,omitempty" yaml:"link,omitempty"`
	Score       int      `json:"score" yaml:"score"`
	Category    Category `json:"category" yaml:"category"`
	IsClickbait bool     `json:"is_clickbait" yaml:"is_clickbait"`
	CreatedAt   int64    `json:"created_at" yaml:"created_at"`
	DeletedAt   *int64   `json:"deleted_at,omitempty" yaml:"deleted_at,omitempty"`
}

// ToSummary strips the trigger breakdown.
func (r *Record) ToSummary() RecordSummary {
	return RecordSummary{
		ID:          r.ID,
		Title:       r.Title,
		Source:      r.Source,
		Link:        r.Link,
		Score:       r.Result.Score,
		Category:    r.Result.Category,
		IsClickbait: r.Result.IsClickbait,
		CreatedAt:   r.CreatedAt,
		DeletedAt:   r.DeletedAt,
	}
}

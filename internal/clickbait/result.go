package clickbait

// Kind identifies which detector produced a Trigger.
type Kind string

const (
	KindLexicalWord Kind = "sensational_word"
	KindPunctuation Kind = "punctuation"
	KindCaps        Kind = "caps"
	KindLength      Kind = "length"
	KindListicle    Kind = "listicle"
	KindEmoji       Kind = "emoji"
)

// Category is one of the four score buckets.
type Category string

const (
	CategorySafe       Category = "safe"
	CategoryWarning    Category = "warning"
	CategorySuspicious Category = "suspicious"
	CategoryDanger     Category = "danger"
)

// MaxScore is the saturation point of the aggregated score.
const MaxScore = 100

// ClickbaitThreshold is the minimum score flagged as clickbait.
const ClickbaitThreshold = 30

// Trigger is one detected clickbait signal.
type Trigger struct {
	// Kind is the detector that fired
	Kind Kind `json:"kind" yaml:"kind"`

	// MatchedText is what the detector saw (phrase label, "!!!", "135 karakter", ...)
	MatchedText string `json:"matched_text" yaml:"matched_text"`

	// Description is a human-readable explanation in the headline's language
	Description string `json:"description" yaml:"description"`

	// Weight is the contribution to the score; may be 0 for the length band 121..129
	Weight int `json:"weight" yaml:"weight"`
}

// Result is the full breakdown returned by Analyze.
type Result struct {
	Score               int       `json:"score" yaml:"score"`
	MaxScore            int       `json:"max_score" yaml:"max_score"`
	Triggers            []Trigger `json:"triggers" yaml:"triggers"`
	IsClickbait         bool      `json:"is_clickbait" yaml:"is_clickbait"`
	Category            Category  `json:"category" yaml:"category"`
	CategoryLabel       string    `json:"category_label" yaml:"category_label"`
	CategoryDescription string    `json:"category_description" yaml:"category_description"`
}

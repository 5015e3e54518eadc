// Package clickbait scores news headlines for clickbait likelihood.
//
// Analyze runs six independent signal detectors over the raw title and sums
// their weights into a 0..100 score with a category. IsLikelyClickbait is a
// separate, cheaper boolean heuristic for tagging feed items in bulk.
//
// Both entry points are pure: rule tables are compiled once at package init
// and never mutated, so any number of goroutines may call them concurrently.
package clickbait

import "strings"

// CategoryInfo describes one score bucket.
type CategoryInfo struct {
	Category    Category
	MinScore    int // inclusive
	Label       string
	Description string
}

// categories is ascending by MinScore; the last entry whose MinScore <= score wins.
var categories = []CategoryInfo{
	{Category: CategorySafe, MinScore: 0, Label: "Aman", Description: "Judul terlihat informatif dan tidak sensasional."},
	{Category: CategoryWarning, MinScore: 20, Label: "Perlu Perhatian", Description: "Judul memiliki beberapa elemen yang perlu diperhatikan."},
	{Category: CategorySuspicious, MinScore: 40, Label: "Mencurigakan", Description: "Judul mengandung cukup banyak indikator clickbait."},
	{Category: CategoryDanger, MinScore: 60, Label: "Clickbait Tinggi", Description: "Judul sangat mungkin adalah clickbait!"},
}

// Categories returns the score buckets in ascending order.
func Categories() []CategoryInfo {
	out := make([]CategoryInfo, len(categories))
	copy(out, categories)
	return out
}

// Categorize maps a score to its bucket. Scores outside 0..100 are clamped first.
func Categorize(score int) CategoryInfo {
	score = clamp(score)
	info := categories[0]
	for _, c := range categories[1:] {
		if score < c.MinScore {
			break
		}
		info = c
	}
	return info
}

// LookupCategory returns the bucket for a category name.
func LookupCategory(name string) (CategoryInfo, bool) {
	for _, c := range categories {
		if string(c.Category) == name {
			return c, true
		}
	}
	return CategoryInfo{}, false
}

// Analyze scores a headline and explains which signals contributed.
//
// The title is expected to be valid UTF-8. Invalid sequences are not an
// error, but each bad byte is counted as one rune, so the length, caps and
// emoji signals may be skewed.
func Analyze(title string) Result {
	if strings.TrimSpace(title) == "" {
		return aggregate(nil)
	}

	triggers := detectLexical(title)
	triggers = append(triggers, detectPunctuation(title)...)
	for _, detect := range []func(string) (Trigger, bool){
		detectCaps,
		detectLength,
		detectListicle,
		detectEmoji,
	} {
		if t, ok := detect(title); ok {
			triggers = append(triggers, t)
		}
	}

	return aggregate(triggers)
}

// aggregate sums weights, clamps, and derives the category.
func aggregate(triggers []Trigger) Result {
	if triggers == nil {
		triggers = []Trigger{}
	}

	sum := 0
	for _, t := range triggers {
		sum += t.Weight
	}
	score := clamp(sum)
	info := Categorize(score)

	return Result{
		Score:               score,
		MaxScore:            MaxScore,
		Triggers:            triggers,
		IsClickbait:         score >= ClickbaitThreshold,
		Category:            info.Category,
		CategoryLabel:       info.Label,
		CategoryDescription: info.Description,
	}
}

func clamp(score int) int {
	return max(0, min(score, MaxScore))
}

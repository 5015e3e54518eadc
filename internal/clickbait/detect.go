package clickbait

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Detector thresholds. Changing any of these changes scoring compatibility.
const (
	exclamationWeight    = 8
	exclamationCap       = 20
	questionMinCount     = 2
	questionWeight       = 5
	questionCap          = 15
	capsMinWordChars     = 3
	capsMinWords         = 3
	capsWeight           = 4
	capsCap              = 15
	lengthLimit          = 120
	lengthStep           = 10
	lengthStepWeight     = 3
	lengthCap            = 15
	listicleMinNumber    = 11
	listicleWeight       = 8
	emojiMinCount        = 3
	emojiWeight          = 4
	emojiCap             = 12
	emojiPreviewCount    = 3
	capsMatchedText      = "HURUF KAPITAL"
	lengthDescription    = "Judul terlalu panjang (>120 karakter)"
	listicleDescription  = "Format listicle dengan angka tinggi"
	emojiPreviewEllipsis = "..."
)

// detectLexical emits one trigger per matching rule, in table order.
func detectLexical(title string) []Trigger {
	var triggers []Trigger
	for _, r := range compiledLexical {
		if !r.re.MatchString(title) {
			continue
		}
		triggers = append(triggers, Trigger{
			Kind:        KindLexicalWord,
			MatchedText: r.Label,
			Description: r.Description,
			Weight:      r.Weight,
		})
	}
	return triggers
}

// detectPunctuation may emit an exclamation trigger and a question trigger.
func detectPunctuation(title string) []Trigger {
	var triggers []Trigger

	if e := strings.Count(title, "!"); e > 0 {
		triggers = append(triggers, Trigger{
			Kind:        KindPunctuation,
			MatchedText: strings.Repeat("!", e),
			Description: fmt.Sprintf("Tanda seru berlebihan (%dx)", e),
			Weight:      min(e*exclamationWeight, exclamationCap),
		})
	}

	// A single question mark is a normal question, not a signal.
	if q := strings.Count(title, "?"); q >= questionMinCount {
		triggers = append(triggers, Trigger{
			Kind:        KindPunctuation,
			MatchedText: strings.Repeat("?", q),
			Description: fmt.Sprintf("Tanda tanya berlebihan (%dx)", q),
			Weight:      min((q-1)*questionWeight, questionCap),
		})
	}

	return triggers
}

// detectCaps counts shouting words.
func detectCaps(title string) (Trigger, bool) {
	upper := cases.Upper(language.Indonesian)

	count := 0
	for _, word := range strings.Fields(title) {
		if CountChars(word) < capsMinWordChars {
			continue
		}
		if !hasLetter(word) {
			continue
		}
		if upper.String(word) == word {
			count++
		}
	}

	if count < capsMinWords {
		return Trigger{}, false
	}
	return Trigger{
		Kind:        KindCaps,
		MatchedText: capsMatchedText,
		Description: fmt.Sprintf("Penggunaan huruf kapital berlebihan (%d kata)", count),
		Weight:      min(count*capsWeight, capsCap),
	}, true
}

// detectLength flags titles over 120 runes. Lengths 121..129 fire with weight 0.
func detectLength(title string) (Trigger, bool) {
	n := CountChars(title)
	if n <= lengthLimit {
		return Trigger{}, false
	}
	return Trigger{
		Kind:        KindLength,
		MatchedText: fmt.Sprintf("%d karakter", n),
		Description: lengthDescription,
		Weight:      min((n-lengthLimit)/lengthStep*lengthStepWeight, lengthCap),
	}, true
}

// detectListicle looks only at the first "<number> <connector>" occurrence.
func detectListicle(title string) (Trigger, bool) {
	loc := listiclePattern.FindStringSubmatchIndex(title)
	if loc == nil {
		return Trigger{}, false
	}

	// loc[2:4] is the number, loc[4:6] the connector.
	digits := title[loc[2]:loc[3]]
	n, err := strconv.Atoi(digits)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Trigger{}, false
	}
	if err == nil && n < listicleMinNumber {
		return Trigger{}, false
	}

	return Trigger{
		Kind:        KindListicle,
		MatchedText: title[loc[2]:loc[5]],
		Description: listicleDescription,
		Weight:      listicleWeight,
	}, true
}

// detectEmoji counts runes inside emojiTable.
func detectEmoji(title string) (Trigger, bool) {
	var preview strings.Builder
	count := 0
	for _, r := range title {
		if !unicode.Is(emojiTable, r) {
			continue
		}
		if count < emojiPreviewCount {
			preview.WriteRune(r)
		}
		count++
	}

	if count < emojiMinCount {
		return Trigger{}, false
	}
	return Trigger{
		Kind:        KindEmoji,
		MatchedText: preview.String() + emojiPreviewEllipsis,
		Description: fmt.Sprintf("Emoji berlebihan (%dx)", count),
		Weight:      min(count*emojiWeight, emojiCap),
	}, true
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

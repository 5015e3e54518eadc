package clickbait

import (
	"regexp"
	"unicode"
)

// lexicalRule is one entry of the sensational phrase table.
type lexicalRule struct {
	// Body is the regexp body without flags or boundaries
	Body        string
	Label       string
	Weight      int
	Description string

	// Quick marks the phrases also used by IsLikelyClickbait
	Quick bool
}

// lexicalRules is ordered; the order only affects trigger presentation.
//
// TODO: rule "tidak (akan )?percaya" misses "tidak akan kamu percaya"; kept as-is
// until product decides whether scores may change (see DESIGN.md).
var lexicalRules = []lexicalRule{
	{Body: `heboh`, Label: "heboh", Weight: 15, Description: `Kata sensasional "heboh"`, Quick: true},
	{Body: `wow`, Label: "wow", Weight: 12, Description: `Ekspresi berlebihan "wow"`, Quick: true},
	{Body: `gempar`, Label: "gempar", Weight: 15, Description: `Kata sensasional "gempar"`, Quick: true},
	{Body: `ternyata`, Label: "ternyata", Weight: 10, Description: `Kata pemancing rasa penasaran "ternyata"`, Quick: true},
	{Body: `menghebohkan`, Label: "menghebohkan", Weight: 15, Description: `Kata sensasional "menghebohkan"`, Quick: true},
	{Body: `mengagetkan`, Label: "mengagetkan", Weight: 12, Description: `Kata pemancing emosi "mengagetkan"`, Quick: true},
	{Body: `tak disangka`, Label: "tak disangka", Weight: 12, Description: "Frasa pemancing rasa penasaran", Quick: true},
	{Body: `bikin kaget`, Label: "bikin kaget", Weight: 12, Description: "Frasa sensasional"},
	{Body: `gak nyangka`, Label: "gak nyangka", Weight: 12, Description: "Frasa informal sensasional"},
	{Body: `viral`, Label: "viral", Weight: 10, Description: `Kata pemancing ketertarikan "viral"`},
	{Body: `syok`, Label: "syok", Weight: 12, Description: `Kata emosional "syok"`},
	{Body: `shocking`, Label: "shocking", Weight: 12, Description: `Kata emosional "shocking"`},
	{Body: `luar biasa|sangat mengejutkan`, Label: "luar biasa/sangat mengejutkan", Weight: 8, Description: "Frasa berlebihan"},
	{Body: `rahasia|tersembunyi`, Label: "rahasia/tersembunyi", Weight: 8, Description: "Kata pemancing rasa penasaran"},
	{Body: `terbongkar|terungkap`, Label: "terbongkar/terungkap", Weight: 10, Description: "Kata sensasional"},
	{Body: `wajib (?:baca|tahu|lihat)`, Label: "wajib baca/tahu/lihat", Weight: 15, Description: "Frasa memaksa pembaca"},
	{Body: `harus (?:baca|tahu|lihat)`, Label: "harus baca/tahu/lihat", Weight: 12, Description: "Frasa memaksa pembaca"},
	{Body: `tidak (?:akan )?percaya`, Label: "tidak percaya", Weight: 12, Description: "Frasa berlebihan"},
	{Body: `bikin (?:merinding|melongo|tercengang)`, Label: "bikin merinding/melongo/tercengang", Weight: 14, Description: "Frasa emosional berlebihan"},
}

// Go's \b is ASCII-only, so word boundaries are spelled out against Unicode
// letters and digits. Callers only ask "does it occur", so consuming the
// neighbouring rune is harmless.
const (
	wordStart = `(?:^|[^\p{L}\p{N}_])`
	wordEnd   = `(?:[^\p{L}\p{N}_]|$)`
)

// compiledRule pairs a table entry with its anchored pattern.
type compiledRule struct {
	lexicalRule
	re *regexp.Regexp
}

var compiledLexical = compileLexical(lexicalRules)

// quickPatterns are the unanchored Quick phrases; substring semantics.
var quickPatterns = compileQuick(lexicalRules)

// listiclePattern captures the number and connector of "50 cara ...".
var listiclePattern = regexp.MustCompile(`(?i)` + wordStart + `(\d+)\s+(cara|tips|alasan|fakta|hal|rahasia)`)

// emojiTable covers faces, symbols and pictographs, transport, misc symbols and dingbats.
var emojiTable = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x2600, Hi: 0x26FF, Stride: 1},
		{Lo: 0x2700, Hi: 0x27BF, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x1F300, Hi: 0x1F5FF, Stride: 1},
		{Lo: 0x1F600, Hi: 0x1F64F, Stride: 1},
		{Lo: 0x1F680, Hi: 0x1F6FF, Stride: 1},
	},
}

func compileLexical(rules []lexicalRule) []compiledRule {
	out := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		out = append(out, compiledRule{
			lexicalRule: r,
			re:          regexp.MustCompile(`(?i)` + wordStart + `(?:` + r.Body + `)` + wordEnd),
		})
	}
	return out
}

func compileQuick(rules []lexicalRule) []*regexp.Regexp {
	var out []*regexp.Regexp
	for _, r := range rules {
		if !r.Quick {
			continue
		}
		out = append(out, regexp.MustCompile(`(?i)`+regexp.QuoteMeta(r.Body)))
	}
	return out
}

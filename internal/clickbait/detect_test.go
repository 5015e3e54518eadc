package clickbait

import (
	"strconv"
	"strings"
	"testing"
)

func TestDetectLexical_WordBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  []string
	}{
		{"standalone", "Kabar heboh hari ini", []string{"heboh"}},
		{"case insensitive", "GEMPAR di kota", []string{"gempar"}},
		{"punctuation boundary", "(Viral) video kucing", []string{"viral"}},
		{"prefix glued", "xheboh", nil},
		{"suffix glued", "heboh123", nil},
		{"non-ASCII letter glued", "éheboh", nil},
		{"derived word is its own rule", "Menghebohkan warga", []string{"menghebohkan"}},
		{"alternation", "Fakta tersembunyi terungkap", []string{"rahasia/tersembunyi", "terbongkar/terungkap"}},
		{"compulsion", "Kamu harus tahu ini", []string{"harus baca/tahu/lihat"}},
		{"tidak percaya", "Kamu tidak percaya", []string{"tidak percaya"}},
		{"tidak akan percaya", "Kamu tidak akan percaya", []string{"tidak percaya"}},
		{"tidak akan kamu percaya", "Hal yang tidak akan kamu percaya", nil},
		{"bikin needs adjacency", "Bikin Netizen Melongo", nil},
		{"bikin adjacent", "bikin tercengang", []string{"bikin merinding/melongo/tercengang"}},
		{"gak nyangka", "Gak nyangka, ternyata", []string{"ternyata", "gak nyangka"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, tr := range detectLexical(tt.title) {
				got = append(got, tr.MatchedText)
				if tr.Kind != KindLexicalWord {
					t.Errorf("Kind = %s, want %s", tr.Kind, KindLexicalWord)
				}
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("detectLexical(%q) = %v, want %v", tt.title, got, tt.want)
			}
		})
	}
}

func TestLexicalRules_Table(t *testing.T) {
	if len(lexicalRules) != 19 {
		t.Fatalf("len(lexicalRules) = %d, want 19", len(lexicalRules))
	}
	quick := 0
	for _, r := range lexicalRules {
		if r.Weight < 8 || r.Weight > 15 {
			t.Errorf("rule %q weight %d outside 8..15", r.Label, r.Weight)
		}
		if r.Quick {
			quick++
		}
	}
	if quick != 7 {
		t.Errorf("quick phrases = %d, want 7", quick)
	}
	if len(quickPatterns) != quick {
		t.Errorf("len(quickPatterns) = %d, want %d", len(quickPatterns), quick)
	}
}

func TestDetectPunctuation(t *testing.T) {
	tests := []struct {
		title string
		want  []Trigger
	}{
		{"Apa kabar?", nil},
		{"Benarkah!", []Trigger{{KindPunctuation, "!", "Tanda seru berlebihan (1x)", 8}}},
		{"Benarkah!!", []Trigger{{KindPunctuation, "!!", "Tanda seru berlebihan (2x)", 16}}},
		{"Benarkah!!!!!", []Trigger{{KindPunctuation, "!!!!!", "Tanda seru berlebihan (5x)", 20}}},
		{"Apa??", []Trigger{{KindPunctuation, "??", "Tanda tanya berlebihan (2x)", 5}}},
		{"Apa????", []Trigger{{KindPunctuation, "????", "Tanda tanya berlebihan (4x)", 15}}},
		{"Apa?????", []Trigger{{KindPunctuation, "?????", "Tanda tanya berlebihan (5x)", 15}}},
		{"Apa?! Masa?!", []Trigger{
			{KindPunctuation, "!!", "Tanda seru berlebihan (2x)", 16},
			{KindPunctuation, "??", "Tanda tanya berlebihan (2x)", 5},
		}},
	}

	for _, tt := range tests {
		got := detectPunctuation(tt.title)
		if len(got) != len(tt.want) {
			t.Fatalf("detectPunctuation(%q) = %v, want %v", tt.title, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("detectPunctuation(%q)[%d] = %+v, want %+v", tt.title, i, got[i], tt.want[i])
			}
		}
	}
}

func TestDetectCaps(t *testing.T) {
	tests := []struct {
		name       string
		title      string
		wantFire   bool
		wantWeight int
		wantDesc   string
	}{
		{"three shouting words", "INI BERITA PENTING hari ini", true, 12, "Penggunaan huruf kapital berlebihan (3 kata)"},
		{"two is not enough", "INI BERITA penting", false, 0, ""},
		{"short words ignored", "AB CD EF GH", false, 0, ""},
		{"numbers ignored", "123 456 789 000", false, 0, ""},
		{"mixed tokens", "BESAR SEKALI 2024 DI SINI", true, 12, "Penggunaan huruf kapital berlebihan (3 kata)"},
		{"punctuation attached", "HEBOH! GEMPAR!! WOW!!!", true, 12, "Penggunaan huruf kapital berlebihan (3 kata)"},
		{"capped", "SATU DUA TIGA EMPAT LIMA", true, 15, "Penggunaan huruf kapital berlebihan (5 kata)"},
		{"non-ASCII uppercase", "ÉCOLE ÅRHUS ÜBER", true, 12, "Penggunaan huruf kapital berlebihan (3 kata)"},
		{"title case", "Ini Berita Penting Sekali", false, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := detectCaps(tt.title)
			if ok != tt.wantFire {
				t.Fatalf("detectCaps(%q) fired = %v, want %v", tt.title, ok, tt.wantFire)
			}
			if !ok {
				return
			}
			if got.Weight != tt.wantWeight {
				t.Errorf("Weight = %d, want %d", got.Weight, tt.wantWeight)
			}
			if got.Description != tt.wantDesc {
				t.Errorf("Description = %q, want %q", got.Description, tt.wantDesc)
			}
			if got.MatchedText != "HURUF KAPITAL" {
				t.Errorf("MatchedText = %q, want HURUF KAPITAL", got.MatchedText)
			}
		})
	}
}

func TestDetectLength_Banding(t *testing.T) {
	tests := []struct {
		length     int
		wantFire   bool
		wantWeight int
	}{
		{50, false, 0},
		{120, false, 0},
		{121, true, 0},
		{129, true, 0},
		{130, true, 3},
		{139, true, 3},
		{140, true, 6},
		{169, true, 12},
		{170, true, 15},
		{1000, true, 15},
	}

	for _, tt := range tests {
		// Multi-byte runes make sure length is counted in characters.
		title := strings.Repeat("é", tt.length)
		got, ok := detectLength(title)
		if ok != tt.wantFire {
			t.Fatalf("length %d fired = %v, want %v", tt.length, ok, tt.wantFire)
		}
		if !ok {
			continue
		}
		if got.Weight != tt.wantWeight {
			t.Errorf("length %d weight = %d, want %d", tt.length, got.Weight, tt.wantWeight)
		}
		if want := strconv.Itoa(tt.length) + " karakter"; got.MatchedText != want {
			t.Errorf("MatchedText = %q, want %q", got.MatchedText, want)
		}
	}
}

func TestAnalyze_LengthTriggerWithZeroWeight(t *testing.T) {
	r := Analyze(strings.Repeat("a", 125))
	if len(r.Triggers) != 1 || r.Triggers[0].Kind != KindLength {
		t.Fatalf("Triggers = %+v, want single length trigger", r.Triggers)
	}
	if r.Score != 0 || r.Category != CategorySafe {
		t.Errorf("Score = %d (%s), want 0 (safe)", r.Score, r.Category)
	}
}

func TestDetectListicle(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		wantFire    bool
		wantMatched string
	}{
		{"ten is not high", "10 Cara Hemat Listrik", false, ""},
		{"eleven fires", "11 cara hemat listrik", true, "11 cara"},
		{"mid title", "Ini 25 TIPS Sukses", true, "25 TIPS"},
		{"wide gap", "50   alasan pindah", true, "50   alasan"},
		{"glued to letters", "abc50 cara", false, ""},
		{"first match only", "5 cara dan 20 fakta", false, ""},
		{"connector prefix", "Baca 50 halaman", true, "50 hal"},
		{"overflowing number", "99999999999999999999999 fakta", true, "99999999999999999999999 fakta"},
		{"no connector", "50 orang hadir", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := detectListicle(tt.title)
			if ok != tt.wantFire {
				t.Fatalf("detectListicle(%q) fired = %v, want %v", tt.title, ok, tt.wantFire)
			}
			if !ok {
				return
			}
			if got.MatchedText != tt.wantMatched {
				t.Errorf("MatchedText = %q, want %q", got.MatchedText, tt.wantMatched)
			}
			if got.Weight != 8 {
				t.Errorf("Weight = %d, want 8", got.Weight)
			}
		})
	}
}

func TestDetectEmoji(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		wantFire    bool
		wantWeight  int
		wantMatched string
		wantDesc    string
	}{
		{"two is fine", "Wow 😱😱", false, 0, "", ""},
		{"three faces", "Lihat 😱😂😍", true, 12, "😱😂😍...", "Emoji berlebihan (3x)"},
		{"capped", "🚀🚀🚀🚀🚀", true, 12, "🚀🚀🚀...", "Emoji berlebihan (5x)"},
		{"misc symbols and dingbats", "☀ ✈ ✅ ok", true, 12, "☀✈✅...", "Emoji berlebihan (3x)"},
		{"variation selector not counted", "☀️☀️", false, 0, "", ""},
		{"outside ranges", "🧠🧠🧠", false, 0, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := detectEmoji(tt.title)
			if ok != tt.wantFire {
				t.Fatalf("detectEmoji(%q) fired = %v, want %v", tt.title, ok, tt.wantFire)
			}
			if !ok {
				return
			}
			if got.Weight != tt.wantWeight {
				t.Errorf("Weight = %d, want %d", got.Weight, tt.wantWeight)
			}
			if got.MatchedText != tt.wantMatched {
				t.Errorf("MatchedText = %q, want %q", got.MatchedText, tt.wantMatched)
			}
			if got.Description != tt.wantDesc {
				t.Errorf("Description = %q, want %q", got.Description, tt.wantDesc)
			}
		})
	}
}

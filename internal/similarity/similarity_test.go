package similarity

import (
	"math"
	"strings"
	"testing"

	"github.com/matsen/citematch/internal/citation"
	"github.com/matsen/citematch/internal/reference"
)

const epsilon = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestAuthorScore(t *testing.T) {
	tests := []struct {
		name    string
		cited   string
		refText string
		primary string
		want    float64
	}{
		{"exact", "Smith", "Smith, J. (2020).", "Smith", AuthorExact},
		{"exact ignores case", "smith", "Smith, J. (2020).", "SMITH", AuthorExact},
		{"primary contains cited", "Smith", "Smith J. Title.", "Smith J", AuthorContained},
		{"cited contains primary", "Smith & Doe", "Smith, J., & Doe, A. (2019).", "Smith", AuthorContained},
		{"near in text", "Li", "Zhang, W., Li, H. (2020).", "Zhang", AuthorNear},
		{"mid in text", "Li", "Zhang. " + strings.Repeat("a", 120) + "Li", "Zhang", AuthorMid},
		{"far in text", "Li", "Zhang. " + strings.Repeat("a", 250) + "Li", "Zhang", AuthorFar},
		{"fuzzy fallback", "Smyth", "Smith, J. (2020).", "Smith", 0.4},
		{"no shared characters", "Kim", "Brown, T. (2018).", "Brown", 0},
		{"empty cited author", "", "Smith, J.", "Smith", 0},
		{"empty primary falls through to text", "Smith", "Smith (2020)", "", AuthorNear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AuthorScore(tt.cited, tt.refText, tt.primary)
			if !approxEqual(got, tt.want) {
				t.Errorf("AuthorScore(%q, %q, %q) = %v, want %v", tt.cited, tt.refText, tt.primary, got, tt.want)
			}
		})
	}
}

func TestAuthorScore_ChinesePositionCountsRunes(t *testing.T) {
	// 40 CJK runes is 120 bytes; the rune offset keeps this in the near tier.
	text := strings.Repeat("张", 40) + "李四"
	if got := AuthorScore("李四", text, "王五"); !approxEqual(got, AuthorNear) {
		t.Errorf("AuthorScore() = %v, want %v", got, AuthorNear)
	}
}

func TestYearScore(t *testing.T) {
	tests := []struct {
		name    string
		cited   string
		refText string
		refYear string
		want    float64
	}{
		{"exact", "2020", "Smith (2020).", "2020", YearExact},
		{"ocr letters", "2O2O", "Smith (2020).", "2020", YearOCR},
		{"single digit slip", "2021", "Smith (2020).", "2020", YearOCR},
		{"found in text", "2019", "Smith (2020). Reprinted 2019.", "2020", YearInText},
		{"found in text without extracted year", "2019", "Smith. Reprinted 2019", "", YearInText},
		{"no evidence", "1999", "Smith (2020).", "2020", YearNoEvidence},
		{"empty cited year", "", "Smith (2020).", "2020", YearNoEvidence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := YearScore(tt.cited, tt.refText, tt.refYear)
			if !approxEqual(got, tt.want) {
				t.Errorf("YearScore(%q, %q, %q) = %v, want %v", tt.cited, tt.refText, tt.refYear, got, tt.want)
			}
		})
	}
}

func TestIsOCRConfusable(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"2O2O", "2020", true},
		{"2o2o", "2020", true},
		{"ZOZO", "2020", true},
		{"l999", "1999", true},
		{"2O2D", "2020", true},
		{"2021", "2020", true},
		{"2017", "2071", true},
		{"2012", "2021", true},
		{"2080", "2008", true},
		{"2019", "2091", false},
		{"2010", "2021", false},
		{"1999", "2020", false},
		{"1987", "2020", false},
		{"202", "2020", false},
		{"20200", "2020", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			if got := IsOCRConfusable(tt.a, tt.b); got != tt.want {
				t.Errorf("IsOCRConfusable(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := IsOCRConfusable(tt.b, tt.a); got != tt.want {
				t.Errorf("IsOCRConfusable(%q, %q) = %v, want %v (symmetry)", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestIsOCRConfusable_SingleSubstitution(t *testing.T) {
	// Every single OCR look-alike substitution of a real year is confusable
	// and scores as an OCR match.
	base := "2016"
	for letter, digit := range ocrDigits {
		for i, r := range base {
			if r != digit {
				continue
			}
			corrupted := base[:i] + string(letter) + base[i+1:]
			if !IsOCRConfusable(corrupted, base) {
				t.Errorf("IsOCRConfusable(%q, %q) = false, want true", corrupted, base)
			}
			if got := YearScore(corrupted, "", base); !approxEqual(got, YearOCR) {
				t.Errorf("YearScore(%q, %q) = %v, want %v", corrupted, base, got, YearOCR)
			}
		}
	}
}

func TestIsOCRConfusable_ThreeDifferences(t *testing.T) {
	years := []string{"1234", "5678", "9012", "3456"}
	for _, a := range years {
		for _, b := range years {
			if a == b {
				continue
			}
			if IsOCRConfusable(a, b) {
				t.Errorf("IsOCRConfusable(%q, %q) = true, want false", a, b)
			}
		}
	}
}

func TestNormalizeOCRYear(t *testing.T) {
	if got := NormalizeOCRYear("2O1S"); got != "2015" {
		t.Errorf("NormalizeOCRYear() = %q, want %q", got, "2015")
	}
	if got := NormalizeOCRYear("1999"); got != "1999" {
		t.Errorf("NormalizeOCRYear() = %q, want %q", got, "1999")
	}
}

func TestRatio(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"abcd", "bcde", 0.75},
		{"smith", "smyth", 0.8},
		{"kitten", "sitting", 0.6153846153846154},
		{"abc", "abc", 1.0},
		{"", "", 1.0},
		{"a", "", 0.0},
		{"张三", "张四", 0.5},
		{"kim", "brown", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			if got := Ratio(tt.a, tt.b); !approxEqual(got, tt.want) {
				t.Errorf("Ratio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestWeights_Combine(t *testing.T) {
	got := DefaultWeights.Combine(Components{Author: 1.0, Year: 0.5})
	if !approxEqual(got, 0.8) {
		t.Errorf("Combine() = %v, want 0.8", got)
	}

	custom := Weights{Author: 0.5, Year: 0.5}
	if got := custom.Combine(Components{Author: 0.2, Year: 0.6}); !approxEqual(got, 0.4) {
		t.Errorf("Combine() = %v, want 0.4", got)
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name         string
		citation     string
		reference    string
		wantAuthor   float64
		wantYear     float64
		wantCombined float64
	}{
		{
			name:         "chinese exact",
			citation:     "张三（2024）",
			reference:    "张三，李四. 标题. 期刊, 2024.",
			wantAuthor:   1.0,
			wantYear:     1.0,
			wantCombined: 1.0,
		},
		{
			name:         "ocr corrupted year",
			citation:     "Smith（2O2O）",
			reference:    "Smith, J. (2020).",
			wantAuthor:   1.0,
			wantYear:     0.9,
			wantCombined: 0.96,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := citation.Parse(tt.citation)
			if !ok {
				t.Fatalf("citation.Parse(%q) failed", tt.citation)
			}
			c := Score(m, reference.Parse(0, tt.reference))
			if !approxEqual(c.Author, tt.wantAuthor) {
				t.Errorf("Author = %v, want %v", c.Author, tt.wantAuthor)
			}
			if !approxEqual(c.Year, tt.wantYear) {
				t.Errorf("Year = %v, want %v", c.Year, tt.wantYear)
			}
			if got := DefaultWeights.Combine(c); !approxEqual(got, tt.wantCombined) {
				t.Errorf("Combine() = %v, want %v", got, tt.wantCombined)
			}
		})
	}
}

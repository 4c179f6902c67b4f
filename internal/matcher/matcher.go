package matcher

import (
	"regexp"

	"go.uber.org/zap"

	"github.com/matsen/citematch/internal/citation"
	"github.com/matsen/citematch/internal/format"
	"github.com/matsen/citematch/internal/reference"
	"github.com/matsen/citematch/internal/similarity"
)

// Matcher matches citations against references. It holds no per-run state
// and is safe for concurrent use.
type Matcher struct {
	opts   Options
	logger *zap.Logger
}

// New returns a Matcher. A nil logger discards all output.
func New(opts Options, logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{opts: opts, logger: logger}
}

// Run matches every citation against the reference list and builds the
// report. Each citation matches at most one reference.
func (m *Matcher) Run(citations, references []string) Report {
	entries := reference.ParseAll(references)
	used := make(map[int]bool)

	report := Report{
		Results: make([]Result, 0, len(citations)),
		Stats: Stats{
			TotalCitations:  len(citations),
			TotalReferences: len(entries),
		},
	}

	for i, raw := range citations {
		res := m.resolve(i, raw, entries)
		if res.Matched {
			used[res.ReferenceIndex] = true
			report.Stats.Matched++
		} else {
			report.Stats.Unmatched++
		}
		if res.NeedsCorrection {
			report.Stats.Corrected++
		}
		if res.NeedsFormatting {
			report.Stats.Formatted++
		}
		report.Results = append(report.Results, res)
	}

	report.UnusedReferences = []reference.Entry{}
	for _, e := range entries {
		if !used[e.Index] {
			report.UnusedReferences = append(report.UnusedReferences, e)
		}
	}
	report.Stats.Unused = len(report.UnusedReferences)
	if report.Stats.TotalCitations > 0 {
		report.Stats.MatchRate = float64(report.Stats.Matched) / float64(report.Stats.TotalCitations)
	}

	m.logger.Info("match run complete",
		zap.Int("citations", report.Stats.TotalCitations),
		zap.Int("references", report.Stats.TotalReferences),
		zap.Int("matched", report.Stats.Matched),
		zap.Int("corrected", report.Stats.Corrected),
		zap.Int("formatted", report.Stats.Formatted),
		zap.Int("unused", report.Stats.Unused),
	)
	return report
}

func (m *Matcher) resolve(i int, raw string, entries []reference.Entry) Result {
	text := citation.Unwrap(raw)
	res := Result{
		CitationIndex:  i,
		Citation:       text,
		ReferenceIndex: NoReference,
		CorrectedText:  text,
		FormattedText:  text,
	}

	if citation.IsNumeric(text) {
		res.Kind = KindNumeric
		for _, e := range entries {
			if e.Label == text {
				res.Matched = true
				res.ReferenceIndex = e.Index
				res.Reference = e.Raw
				break
			}
		}
		m.logger.Debug("numeric citation",
			zap.Int("citation", i),
			zap.String("label", text),
			zap.Bool("matched", res.Matched),
		)
		return res
	}

	mention, ok := citation.Parse(text)
	if !ok {
		res.Kind = KindUnparseable
		m.logger.Debug("unparseable citation", zap.Int("citation", i), zap.String("text", text))
		return res
	}
	res.Kind = KindAuthorYear
	res.Mention = &mention

	best, bestScore, bestComponents := -1, -1.0, similarity.Components{}
	for j, e := range entries {
		if !e.Scoreable() {
			continue
		}
		c := similarity.Score(mention, e)
		// Strict comparison keeps the earliest of equally scored entries.
		if s := m.opts.Weights.Combine(c); s > bestScore {
			best, bestScore, bestComponents = j, s, c
		}
	}

	if best < 0 || bestScore <= m.opts.Threshold {
		if best >= 0 {
			res.Score = bestScore
			res.Components = bestComponents
		}
		m.logger.Debug("no candidate above threshold",
			zap.Int("citation", i),
			zap.String("author", mention.Author),
			zap.Float64("best_score", res.Score),
		)
		return res
	}

	entry := entries[best]
	res.Matched = true
	res.ReferenceIndex = entry.Index
	res.Reference = entry.Raw
	res.Score = bestScore
	res.Components = bestComponents

	if entry.Year != "" && entry.Year != mention.Year {
		res.CorrectedText = mention.Author + "（" + entry.Year + "）"
	}

	year := entry.Year
	if year == "" {
		year = digitYear(mention.Year)
	}
	if len(entry.Authors) > 0 && year != "" {
		res.FormattedText = format.Format(m.opts.Style, entry.Authors, year, entry.HasEtAl)
	} else {
		res.FormattedText = res.CorrectedText
	}

	res.NeedsCorrection = res.CorrectedText != res.Citation
	res.NeedsFormatting = res.FormattedText != res.CorrectedText

	m.logger.Debug("citation matched",
		zap.Int("citation", i),
		zap.Int("reference", entry.Index),
		zap.Float64("score", res.Score),
		zap.String("corrected", res.CorrectedText),
		zap.String("formatted", res.FormattedText),
	)
	return res
}

var digitYearRe = regexp.MustCompile(`^\d{4}$`)

// digitYear returns the cited year with OCR look-alikes replaced, or ""
// when the result is not four digits.
func digitYear(cited string) string {
	if y := similarity.NormalizeOCRYear(cited); digitYearRe.MatchString(y) {
		return y
	}
	return ""
}

package metrics

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"stylemirror/internal/segment"
	"stylemirror/internal/textnorm"
)

// LongSentenceRunes is the length above which a sentence counts as long.
const LongSentenceRunes = 50

type SentenceLength struct {
	Mean       float64 `json:"mean"`
	P50        float64 `json:"p50"`
	P90        float64 `json:"p90"`
	LongRate50 float64 `json:"longRate50"`
}

// PunctuationDensity is expressed per 1000 body characters.
type PunctuationDensity struct {
	Comma       float64 `json:"comma"`
	Semicolon   float64 `json:"semicolon"`
	Parenthesis float64 `json:"parenthesis"`
}

type ConnectorCounts struct {
	Causal      int `json:"causal"`
	Adversative int `json:"adversative"`
	Additive    int `json:"additive"`
	Emphatic    int `json:"emphatic"`
	Total       int `json:"total"`
}

// Get returns the tally for one category.
func (c ConnectorCounts) Get(cat ConnectorCategory) int {
	switch cat {
	case Causal:
		return c.Causal
	case Adversative:
		return c.Adversative
	case Additive:
		return c.Additive
	case Emphatic:
		return c.Emphatic
	}
	return 0
}

type TemplateDensity struct {
	Count            int     `json:"count"`
	PerThousandChars float64 `json:"perThousandChars"`
}

// DetailedMetrics is a value snapshot of one document's style.
type DetailedMetrics struct {
	SentenceLength  SentenceLength     `json:"sentenceLength"`
	Punctuation     PunctuationDensity `json:"punctuation"`
	Connectors      ConnectorCounts    `json:"connectors"`
	Templates       TemplateDensity    `json:"templates"`
	TextLengthChars int                `json:"textLengthChars"`
	SentenceCount   int                `json:"sentenceCount"`
}

var commaMarks = []string{"，", ","}
var semicolonMarks = []string{"；", ";"}
var parenthesisMarks = []string{"（", "）", "(", ")"}

// Calculate extracts metrics with the default lexicon.
func Calculate(text string) DetailedMetrics {
	return CalculateWith(text, DefaultLexicon())
}

// CalculateWith extracts metrics using the given lexicon.
func CalculateWith(text string, lex Lexicon) DetailedMetrics {
	normalized := textnorm.Normalize(text)
	body := textnorm.BodyText(normalized)
	length := utf8.RuneCountInString(body)
	sentences := segment.Split(normalized)

	lengths := make([]float64, 0, len(sentences))
	long := 0
	for _, s := range sentences {
		n := utf8.RuneCountInString(strings.TrimSpace(s.Text))
		lengths = append(lengths, float64(n))
		if n > LongSentenceRunes {
			long++
		}
	}

	m := DetailedMetrics{
		TextLengthChars: length,
		SentenceCount:   len(sentences),
	}
	m.SentenceLength = SentenceLength{
		Mean:       Round(mean(lengths), 1),
		P50:        Round(Percentile(lengths, 50), 1),
		P90:        Round(Percentile(lengths, 90), 1),
		LongRate50: Round(ratio(long, len(lengths))*100, 1),
	}
	m.Punctuation = PunctuationDensity{
		Comma:       Round(PerThousand(countAll(body, commaMarks), length), 1),
		Semicolon:   Round(PerThousand(countAll(body, semicolonMarks), length), 1),
		Parenthesis: Round(PerThousand(countAll(body, parenthesisMarks), length), 1),
	}
	m.Connectors = countConnectors(body, lex)

	templates := 0
	for _, re := range lex.Templates {
		templates += len(re.FindAllStringIndex(body, -1))
	}
	m.Templates = TemplateDensity{
		Count:            templates,
		PerThousandChars: Round(PerThousand(templates, length), 2),
	}
	return m
}

func countConnectors(body string, lex Lexicon) ConnectorCounts {
	var c ConnectorCounts
	for _, cat := range ConnectorCategories {
		n := countAll(body, lex.Connectors[cat])
		switch cat {
		case Causal:
			c.Causal = n
		case Adversative:
			c.Adversative = n
		case Additive:
			c.Additive = n
		case Emphatic:
			c.Emphatic = n
		}
		c.Total += n
	}
	return c
}

// countAll sums non-overlapping occurrences of every word.
func countAll(text string, words []string) int {
	total := 0
	for _, w := range words {
		if w == "" {
			continue
		}
		total += strings.Count(text, w)
	}
	return total
}

// Percentile interpolates linearly between order statistics (R-7).
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	idx := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(idx))
	hi := int(math.Ceil(idx))
	if lo < 0 {
		lo = 0
	}
	if hi > len(sorted)-1 {
		hi = len(sorted) - 1
	}
	frac := idx - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// PerThousand is count*1000/length, or 0 for an empty text.
func PerThousand(count, length int) float64 {
	if length == 0 {
		return 0
	}
	return float64(count) * 1000 / float64(length)
}

// Round rounds half away from zero to the given number of decimals.
func Round(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}

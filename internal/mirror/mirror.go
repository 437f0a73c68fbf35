package mirror

import (
	"math"

	"stylemirror/internal/metrics"
)

// Weights combine the four sub-distances. They are not required to sum to 1.
type Weights struct {
	Sentence    float64 `json:"sentence"`
	Connectors  float64 `json:"connectors"`
	Punctuation float64 `json:"punctuation"`
	Templates   float64 `json:"templates"`
}

func DefaultWeights() Weights {
	return Weights{Sentence: 0.4, Connectors: 0.25, Punctuation: 0.15, Templates: 0.2}
}

// Differences at or above these values saturate to a distance of 1.
const (
	maxMeanDiff        = 50.0
	maxP50Diff         = 50.0
	maxP90Diff         = 80.0
	maxLongRateDiff    = 100.0
	maxCommaDiff       = 60.0
	maxSemicolonDiff   = 10.0
	maxParenthesisDiff = 20.0
	maxTemplateDiff    = 5.0
)

// MirrorScore compares the draft and the standard rewrite against the sample.
type MirrorScore struct {
	DraftToSample    float64 `json:"draftToSample"`
	StandardToSample float64 `json:"standardToSample"`
	Improvement      float64 `json:"improvement"`
	Weights          Weights `json:"weights"`
}

// Score returns the 0-100 similarity of target to sample.
func Score(target, sample metrics.DetailedMetrics, w Weights) float64 {
	d := w.Sentence*SentenceDistance(target, sample) +
		w.Connectors*ConnectorDistance(target, sample) +
		w.Punctuation*PunctuationDistance(target, sample) +
		w.Templates*TemplateDistance(target, sample)
	score := metrics.Round((1-d)*100, 1)
	return math.Min(100, math.Max(0, score))
}

// Generate scores draft and standard against sample.
func Generate(sample, draft, standard metrics.DetailedMetrics, w Weights) MirrorScore {
	d := Score(draft, sample, w)
	s := Score(standard, sample, w)
	return MirrorScore{
		DraftToSample:    d,
		StandardToSample: s,
		Improvement:      metrics.Round(s-d, 1),
		Weights:          w,
	}
}

func SentenceDistance(a, b metrics.DetailedMetrics) float64 {
	x, y := a.SentenceLength, b.SentenceLength
	return 0.4*normDiff(x.Mean, y.Mean, maxMeanDiff) +
		0.3*normDiff(x.P50, y.P50, maxP50Diff) +
		0.2*normDiff(x.P90, y.P90, maxP90Diff) +
		0.1*normDiff(x.LongRate50, y.LongRate50, maxLongRateDiff)
}

// ConnectorDistance is half the L1 distance between category proportions.
func ConnectorDistance(a, b metrics.DetailedMetrics) float64 {
	ta := float64(a.Connectors.Total)
	if ta == 0 {
		ta = 1
	}
	tb := float64(b.Connectors.Total)
	if tb == 0 {
		tb = 1
	}
	l1 := 0.0
	for _, cat := range metrics.ConnectorCategories {
		l1 += math.Abs(float64(a.Connectors.Get(cat))/ta - float64(b.Connectors.Get(cat))/tb)
	}
	return math.Min(1, l1/2)
}

func PunctuationDistance(a, b metrics.DetailedMetrics) float64 {
	x, y := a.Punctuation, b.Punctuation
	return 0.5*normDiff(x.Comma, y.Comma, maxCommaDiff) +
		0.25*normDiff(x.Semicolon, y.Semicolon, maxSemicolonDiff) +
		0.25*normDiff(x.Parenthesis, y.Parenthesis, maxParenthesisDiff)
}

func TemplateDistance(a, b metrics.DetailedMetrics) float64 {
	return normDiff(a.Templates.PerThousandChars, b.Templates.PerThousandChars, maxTemplateDiff)
}

func normDiff(a, b, maxExpected float64) float64 {
	return math.Min(1, math.Abs(a-b)/maxExpected)
}

package report

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"stylemirror/internal/citation"
	"stylemirror/internal/fidelity"
	"stylemirror/internal/logger"
	"stylemirror/internal/metrics"
	"stylemirror/internal/mirror"
)

type Status string

const (
	StatusCompleted  Status = "completed"
	StatusDraftOnly  Status = "draft_only"
	StatusEmptyInput Status = "empty_input"
)

// StyleComparison embeds the metric profiles the scores were derived from.
type StyleComparison struct {
	Sample   metrics.DetailedMetrics  `json:"sample"`
	Draft    metrics.DetailedMetrics  `json:"draft"`
	Standard *metrics.DetailedMetrics `json:"standard,omitempty"`
}

type Report struct {
	RunID               string               `json:"runId"`
	GeneratedAt         time.Time            `json:"generatedAt"`
	Status              Status               `json:"status"`
	MirrorScore         *mirror.MirrorScore  `json:"mirrorScore,omitempty"`
	StyleComparison     *StyleComparison     `json:"styleComparison,omitempty"`
	FidelityGuardrails  *fidelity.Guardrails `json:"fidelityGuardrails,omitempty"`
	CitationSuggestions *citation.Result     `json:"citationSuggestions,omitempty"`
}

// Input is the raw text triple. Standard may be empty when no rewrite exists yet.
type Input struct {
	Sample   string
	Draft    string
	Standard string
}

// Config is fixed when the Analyzer is built.
type Config struct {
	Weights  mirror.Weights
	Lexicon  metrics.Lexicon
	Rules    citation.Rules
	CacheTTL time.Duration
}

func DefaultConfig() Config {
	return Config{
		Weights:  mirror.DefaultWeights(),
		Lexicon:  metrics.DefaultLexicon(),
		Rules:    citation.DefaultRules(),
		CacheTTL: 30 * time.Minute,
	}
}

// Analyzer runs the independent analyses over a text triple. It holds no
// per-run state; the metrics cache only memoizes pure results.
type Analyzer struct {
	cfg    Config
	cache  *cache.Cache
	logger logger.Logger
	now    func() time.Time
}

func NewAnalyzer(cfg Config, log logger.Logger) *Analyzer {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Analyzer{
		cfg:    cfg,
		cache:  cache.New(ttl, 2*ttl),
		logger: logger.OrNop(log),
		now:    time.Now,
	}
}

// Analyze evaluates metrics, fidelity and citations concurrently, then the
// mirror score from the finished metrics.
func (a *Analyzer) Analyze(ctx context.Context, in Input) (Report, error) {
	started := a.now()
	rep := Report{
		RunID:       uuid.NewString(),
		GeneratedAt: started.UTC(),
		Status:      StatusCompleted,
	}
	if strings.TrimSpace(in.Draft) == "" {
		rep.Status = StatusEmptyInput
		a.logger.Log(logger.LevelRisk, "REPORT", "Draft is empty", "run_id="+rep.RunID)
		return rep, nil
	}
	hasStandard := strings.TrimSpace(in.Standard) != ""
	if !hasStandard {
		rep.Status = StatusDraftOnly
	}
	a.logger.Log(logger.LevelAnalysis, "REPORT", "Analysis started", fmt.Sprintf("run_id=%s has_standard=%t", rep.RunID, hasStandard))

	var sampleM, draftM, standardM metrics.DetailedMetrics
	var guard fidelity.Guardrails
	var cites citation.Result

	g, gctx := errgroup.WithContext(ctx)
	run := func(fn func()) {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn()
			return nil
		})
	}
	run(func() { sampleM = a.metrics(in.Sample) })
	run(func() { draftM = a.metrics(in.Draft) })
	run(func() { cites = a.cfg.Rules.Detect(in.Draft) })
	if hasStandard {
		run(func() { standardM = a.metrics(in.Standard) })
		run(func() { guard = fidelity.Calculate(in.Draft, in.Standard) })
	}
	if err := g.Wait(); err != nil {
		return Report{}, fmt.Errorf("analyze run %s: %w", rep.RunID, err)
	}

	rep.StyleComparison = &StyleComparison{Sample: sampleM, Draft: draftM}
	rep.CitationSuggestions = &cites
	if hasStandard {
		rep.StyleComparison.Standard = &standardM
		score := mirror.Generate(sampleM, draftM, standardM, a.cfg.Weights)
		rep.MirrorScore = &score
		rep.FidelityGuardrails = &guard
		if len(guard.Alerts) > 0 {
			a.logger.Log(logger.LevelRisk, "FIDELITY", "Invariant tokens lost in rewrite", fmt.Sprintf("run_id=%s alerts=%d numbers=%.1f acronyms=%.1f", rep.RunID, len(guard.Alerts), guard.NumberRetentionRate, guard.AcronymRetentionRate))
		}
	}

	a.logger.Log(logger.LevelAnalysis, "REPORT", "Analysis completed", fmt.Sprintf("run_id=%s status=%s citations=%d duration_ms=%d", rep.RunID, rep.Status, len(cites.Items), a.now().Sub(started).Milliseconds()))
	return rep, nil
}

// Metrics returns the (memoized) profile of text.
func (a *Analyzer) Metrics(text string) metrics.DetailedMetrics {
	return a.metrics(text)
}

func (a *Analyzer) metrics(text string) metrics.DetailedMetrics {
	key := textKey(text)
	if v, ok := a.cache.Get(key); ok {
		return v.(metrics.DetailedMetrics)
	}
	m := metrics.CalculateWith(text, a.cfg.Lexicon)
	a.cache.SetDefault(key, m)
	return m
}

func textKey(text string) string {
	sum := sha1.Sum([]byte(text))
	return hex.EncodeToString(sum[:])
}

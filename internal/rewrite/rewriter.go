package rewrite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"stylemirror/internal/chunk"
	"stylemirror/internal/logger"
	"stylemirror/internal/pipeline"
	"stylemirror/internal/prompts"
)

const systemPrompt = "严守 JSON 输出，禁止输出额外说明。"

type Options struct {
	Workers      int
	ChunkChars   int
	ContextChars int
	Timeout      time.Duration
}

// Result is the assembled output of one rewrite run. Errors lists chunks
// that kept their original text because the rewrite failed.
type Result struct {
	StyleGuide StyleGuide      `json:"styleGuide"`
	Context    DocumentContext `json:"documentContext"`
	Chunks     []Variants      `json:"chunks"`
	Document   Variants        `json:"document"`
	Errors     []string        `json:"errors,omitempty"`
}

type Rewriter struct {
	client Client
	opts   Options
	logger logger.Logger
}

func NewRewriter(client Client, opts Options, log logger.Logger) (*Rewriter, error) {
	if client == nil {
		return nil, fmt.Errorf("llm client is required")
	}
	if opts.ChunkChars <= 0 {
		opts.ChunkChars = 1200
	}
	if opts.ContextChars < 0 {
		opts.ContextChars = 0
	}
	return &Rewriter{client: client, opts: opts, logger: logger.OrNop(log)}, nil
}

func (r *Rewriter) StyleGuide(ctx context.Context, sample string) (StyleGuide, error) {
	raw, err := r.complete(ctx, prompts.StyleGuidePrompt(sample))
	if err != nil {
		return StyleGuide{}, fmt.Errorf("style guide: %w", err)
	}
	guide, err := parseStyleGuide(raw)
	if err != nil {
		return StyleGuide{}, fmt.Errorf("style guide: %w", err)
	}
	return guide, nil
}

func (r *Rewriter) DocumentContext(ctx context.Context, draft string) (DocumentContext, error) {
	raw, err := r.complete(ctx, prompts.DocumentContextPrompt(draft))
	if err != nil {
		return DocumentContext{}, fmt.Errorf("document context: %w", err)
	}
	dc, err := parseDocumentContext(raw)
	if err != nil {
		return DocumentContext{}, fmt.Errorf("document context: %w", err)
	}
	return dc, nil
}

// RewriteChunk rewrites one chunk with its neighbouring context.
func (r *Rewriter) RewriteChunk(ctx context.Context, c chunk.Chunk, before, after string, guide StyleGuide, dc DocumentContext) (Variants, error) {
	styleJSON, err := json.Marshal(guide)
	if err != nil {
		return Variants{}, fmt.Errorf("encode style guide: %w", err)
	}
	raw, err := r.complete(ctx, prompts.RewritePrompt(string(styleJSON), dc.DocumentSummary, c.SectionTitle, before, after, c.Text))
	if err != nil {
		return Variants{}, err
	}
	return parseVariants(raw)
}

// Rewrite runs the whole workflow: style guide, document context, then all
// chunks on the worker pool, reassembled in source order.
func (r *Rewriter) Rewrite(ctx context.Context, sample, draft string) (Result, error) {
	started := time.Now()
	guide, err := r.StyleGuide(ctx, sample)
	if err != nil {
		return Result{}, err
	}
	r.logger.Log(logger.LevelAnalysis, "REWRITE", "Style guide extracted", fmt.Sprintf("tone=%s transitions=%d", guide.Tone, len(guide.CommonTransitions)))

	dc, err := r.DocumentContext(ctx, draft)
	if err != nil {
		return Result{}, err
	}

	chunks := chunk.Split(draft, r.opts.ChunkChars)
	r.logger.Log(logger.LevelAnalysis, "REWRITE", "Draft chunked", fmt.Sprintf("chunks=%d max_chars=%d", len(chunks), r.opts.ChunkChars))

	out := make([]Variants, len(chunks))
	for i, c := range chunks {
		out[i] = Variants{Conservative: c.Text, Standard: c.Text, Enhanced: c.Text}
	}
	errs := pipeline.Run(ctx, chunks, r.opts.Workers, func(ctx context.Context, c chunk.Chunk) error {
		v, err := r.RewriteChunk(ctx, c,
			chunk.ContextBefore(chunks, c.Index, r.opts.ContextChars),
			chunk.ContextAfter(chunks, c.Index, r.opts.ContextChars),
			guide, dc)
		if err != nil {
			return err
		}
		out[c.Index] = v
		return nil
	})

	res := Result{StyleGuide: guide, Context: dc, Chunks: out}
	for _, e := range errs {
		res.Errors = append(res.Errors, e.Error())
		r.logger.Log(logger.LevelRisk, "REWRITE", "Chunk rewrite failed; original kept", e.Error())
	}
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("rewrite: %w", err)
	}

	var cons, std, enh []string
	for _, v := range out {
		cons = append(cons, v.Conservative)
		std = append(std, v.Standard)
		enh = append(enh, v.Enhanced)
	}
	res.Document = Variants{
		Conservative: chunk.Join(cons),
		Standard:     chunk.Join(std),
		Enhanced:     chunk.Join(enh),
	}
	r.logger.Log(logger.LevelAnalysis, "REWRITE", "Rewrite completed", fmt.Sprintf("chunks=%d failed=%d duration_ms=%d", len(chunks), len(errs), time.Since(started).Milliseconds()))
	return res, nil
}

func (r *Rewriter) complete(ctx context.Context, user string) (string, error) {
	if r.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.Timeout)
		defer cancel()
	}
	raw, err := r.client.Complete(ctx, systemPrompt, user)
	if err != nil {
		return "", err
	}
	return raw, nil
}

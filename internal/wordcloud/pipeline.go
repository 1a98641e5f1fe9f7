// Package wordcloud turns raw news text into a ranked, size-normalized word
// cloud.
//
// A run goes through five steps, each a plain function over slices:
//
//	text -> Tokenize -> CombinePhrases -> CountTerms -> Rank -> Normalize
//
// Nothing is kept between runs.
package wordcloud

import (
	"strings"

	"github.com/wrobbinz/newspoint/internal/model"
)

// SourceResult is the outcome of fetching one source. Text is nil when the
// fetch failed.
type SourceResult struct {
	Source string
	Text   *string
}

// Found wraps a fetched payload.
func Found(source, text string) SourceResult {
	return SourceResult{Source: source, Text: &text}
}

// Missing records a source that contributed nothing.
func Missing(source string) SourceResult {
	return SourceResult{Source: source}
}

// Options tunes ranking and normalization.
type Options struct {
	CloudSize int
	SizeScale int
	MaxSize   int
}

// DefaultOptions returns the stock cloud settings.
func DefaultOptions() Options {
	return Options{
		CloudSize: DefaultCloudSize,
		SizeScale: DefaultSizeScale,
		MaxSize:   DefaultMaxSize,
	}
}

// Pipeline wires the cloud steps together.
type Pipeline struct {
	tokenizer *Tokenizer
	opts      Options
}

// NewPipeline creates a pipeline. Zero option fields fall back to defaults.
func NewPipeline(tokenizer *Tokenizer, opts Options) *Pipeline {
	def := DefaultOptions()
	if opts.CloudSize <= 0 {
		opts.CloudSize = def.CloudSize
	}
	if opts.SizeScale <= 0 {
		opts.SizeScale = def.SizeScale
	}
	if opts.MaxSize <= 0 {
		opts.MaxSize = def.MaxSize
	}
	if tokenizer == nil {
		tokenizer = NewTokenizer(nil)
	}
	return &Pipeline{tokenizer: tokenizer, opts: opts}
}

// Run builds the cloud for one batch of source results. Missing results are
// skipped and the rest are concatenated in order with no separator.
func (p *Pipeline) Run(results []SourceResult) []model.CloudEntry {
	return p.Build(JoinBatch(results))
}

// Build runs every step over an already joined text.
func (p *Pipeline) Build(text string) []model.CloudEntry {
	tokens := p.tokenizer.Tokenize(text)
	terms := CombinePhrases(tokens)
	counts := CountTerms(terms)
	entries := Rank(counts, p.opts.SizeScale, p.opts.CloudSize)
	return Normalize(entries, p.opts.MaxSize)
}

// JoinBatch concatenates the payloads of successful results.
func JoinBatch(results []SourceResult) string {
	var b strings.Builder
	for _, r := range results {
		if r.Text == nil {
			continue
		}
		b.WriteString(*r.Text)
	}
	return b.String()
}

package wordcloud

import (
	"fmt"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
	"github.com/wrobbinz/newspoint/internal/model"
)

func TestCountTerms(t *testing.T) {
	got := CountTerms([]string{"a", "b", "a"})

	assert.Equal(t, []TermCount{{Term: "a", Count: 2}, {Term: "b", Count: 1}}, got)
}

func TestCountTermsDoesNotMutateInput(t *testing.T) {
	in := []string{"zeta", "alpha", "zeta"}

	CountTerms(in)

	assert.Equal(t, []string{"zeta", "alpha", "zeta"}, in)
}

func TestCountTermsEmpty(t *testing.T) {
	assert.Equal(t, 0, len(CountTerms(nil)))
}

func TestRank(t *testing.T) {
	counts := []TermCount{{Term: "a", Count: 2}, {Term: "b", Count: 1}}

	got := Rank(counts, DefaultSizeScale, DefaultCloudSize)

	want := []model.CloudEntry{
		{ID: 1, Text: "a", Size: 4},
		{ID: 2, Text: "b", Size: 2},
	}
	assert.Equal(t, want, got)
}

func TestRankKeepsInputOrderOnTies(t *testing.T) {
	counts := []TermCount{
		{Term: "apple", Count: 1},
		{Term: "banana", Count: 3},
		{Term: "cherry", Count: 1},
	}

	got := Rank(counts, 2, 10)

	assert.Equal(t, "banana", got[0].Text)
	assert.Equal(t, "apple", got[1].Text)
	assert.Equal(t, "cherry", got[2].Text)
}

func TestRankTruncates(t *testing.T) {
	counts := make([]TermCount, 250)
	for i := range counts {
		counts[i] = TermCount{Term: fmt.Sprintf("w%03d", i), Count: i%7 + 1}
	}

	got := Rank(counts, DefaultSizeScale, DefaultCloudSize)

	assert.Equal(t, 200, len(got))
	assertContiguous(t, got)
}

func TestNormalize(t *testing.T) {
	entries := []model.CloudEntry{{ID: 1, Text: "a", Size: 4}, {ID: 2, Text: "b", Size: 2}}

	got := Normalize(entries, DefaultMaxSize)

	assert.Equal(t, 250, got[0].Size)
	assert.Equal(t, 125, got[1].Size)
	assert.Equal(t, "a", got[0].Text)
	assert.Equal(t, 2, got[1].ID)
}

func TestNormalizeRounds(t *testing.T) {
	entries := []model.CloudEntry{{ID: 1, Size: 6}, {ID: 2, Size: 4}, {ID: 3, Size: 2}}

	got := Normalize(entries, DefaultMaxSize)

	assert.Equal(t, 250, got[0].Size)
	assert.Equal(t, 167, got[1].Size)
	assert.Equal(t, 83, got[2].Size)
}

func TestNormalizeDegenerateInput(t *testing.T) {
	assert.Equal(t, 0, len(Normalize(nil, DefaultMaxSize)))

	zero := []model.CloudEntry{{ID: 1, Text: "a", Size: 0}}
	assert.Equal(t, []model.CloudEntry{{ID: 1, Text: "a", Size: 0}}, Normalize(zero, DefaultMaxSize))
}

func TestPipelineRun(t *testing.T) {
	p := NewPipeline(NewTokenizer([]string{"the", "and"}), DefaultOptions())

	got := p.Run([]SourceResult{
		Found("bbc-news", "The White House, and the WHITE House!"),
	})

	assert.Equal(t, []model.CloudEntry{{ID: 1, Text: "white house", Size: 250}}, got)
}

func TestPipelineSkipsMissingSources(t *testing.T) {
	p := NewPipeline(NewTokenizer(nil), DefaultOptions())

	got := p.Run([]SourceResult{
		Found("one", "alpha beta, "),
		Missing("two"),
		Found("three", "alpha gamma, "),
	})

	assert.Equal(t, 3, len(got))
	assert.Equal(t, "alpha", got[0].Text)
	assert.Equal(t, 250, got[0].Size)
	assert.Equal(t, 125, got[1].Size)
	assertContiguous(t, got)
}

func TestPipelineEmptyBatch(t *testing.T) {
	p := NewPipeline(NewTokenizer(nil), DefaultOptions())

	got := p.Run([]SourceResult{Missing("a"), Missing("b")})
	assert.Equal(t, 0, len(got))

	got = p.Run(nil)
	assert.Equal(t, 0, len(got))
}

func TestPipelineCapsCloudSize(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 250; i++ {
		word := fmt.Sprintf("w%03d", i)
		for n := 0; n <= i%4; n++ {
			b.WriteString(word + " ")
		}
	}

	p := NewPipeline(NewTokenizer(nil), DefaultOptions())
	got := p.Build(b.String())

	assert.Equal(t, 200, len(got))
	assert.Equal(t, 250, got[0].Size)
	assertContiguous(t, got)
}

func TestJoinBatch(t *testing.T) {
	got := JoinBatch([]SourceResult{Found("a", "one, "), Missing("b"), Found("c", "two, ")})

	assert.Equal(t, "one, two, ", got)
}

func TestNewPipelineAppliesDefaults(t *testing.T) {
	p := NewPipeline(nil, Options{CloudSize: 5})

	assert.Equal(t, 5, p.opts.CloudSize)
	assert.Equal(t, DefaultSizeScale, p.opts.SizeScale)
	assert.Equal(t, DefaultMaxSize, p.opts.MaxSize)
}

func assertContiguous(t *testing.T, entries []model.CloudEntry) {
	t.Helper()
	for i, e := range entries {
		if e.ID != i+1 {
			t.Fatalf("entry %d has id %d, want %d", i, e.ID, i+1)
		}
		if i > 0 && e.Size > entries[i-1].Size {
			t.Fatalf("entry %d size %d exceeds previous %d", i, e.Size, entries[i-1].Size)
		}
	}
}

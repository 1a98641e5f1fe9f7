package wordcloud

import (
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestTokenizeDropsStopwordsAndPunctuation(t *testing.T) {
	tokenizer := NewTokenizer([]string{"the", "and"})

	got := tokenizer.Tokenize("The White House, and the WHITE House!")

	assert.Equal(t, []string{"white", "house", "white", "house"}, got)
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name      string
		stopwords []string
		input     string
		want      []string
	}{
		{
			name:  "hyphens and dashes split words",
			input: "Self-driving cars – a review—today",
			want:  []string{"self", "driving", "cars", "a", "review", "today"},
		},
		{
			name:  "periods and possessives are stripped",
			input: "U.S. officials' statement's end...",
			want:  []string{"us", "officials", "statement", "end"},
		},
		{
			name:  "smart quotes are stripped in place",
			input: "Trump’s ‘deal’",
			want:  []string{"trumps", "deal"},
		},
		{
			name:  "reddit prefix and pipes",
			input: "posted on/r/worldnews | Reuters",
			want:  []string{"posted", "on", "worldnews", "reuters"},
		},
		{
			name:  "colons questions and bullets",
			input: "Breaking: why?•now",
			want:  []string{"breaking", "why", "now"},
		},
		{
			name:      "stopwords match after lowercasing",
			stopwords: []string{"of", "In"},
			input:     "OF mice In men",
			want:      []string{"mice", "in", "men"},
		},
		{
			name:  "quotes before punctuation are trimmed",
			input: "Trump says 'no', again",
			want:  []string{"trump", "says", "no", "again"},
		},
		{
			name:  "stripping repeats until stable",
			input: "''ss a''ss",
			want:  []string{"a"},
		},
		{
			name:  "uppercase possessive",
			input: "WHITE HOUSE'S reply",
			want:  []string{"white", "house", "reply"},
		},
		{
			name:  "whitespace only",
			input: "    ",
			want:  []string{},
		},
		{
			name:  "empty input",
			input: "",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewTokenizer(tt.stopwords).Tokenize(tt.input)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenizeIsIdempotent(t *testing.T) {
	tokenizer := NewTokenizer([]string{"the", "a", "of"})

	inputs := []string{
		"The White House, and the WHITE House!",
		"Bernie Sanders: a \"revolution\" – of sorts... (maybe)",
		"Apple’s new iPhone | The Verge",
		"Trump says 'no', again",
		"Senate says 'maybe': later",
		"''ss and a''ss",
		"WHITE HOUSE'S reply",
		"on /r./ today",
	}

	for _, in := range inputs {
		once := tokenizer.Tokenize(in)
		twice := tokenizer.Tokenize(strings.Join(once, " "))
		assert.Equal(t, once, twice)
	}
}

func TestTokenizeNormalizesComposedForms(t *testing.T) {
	tokenizer := NewTokenizer(nil)

	composed := tokenizer.Tokenize("caf\u00e9")
	decomposed := tokenizer.Tokenize("cafe\u0301")

	assert.Equal(t, composed, decomposed)
	assert.Equal(t, []string{"caf\u00e9"}, decomposed)
}

func TestRetainReturnsNewSlice(t *testing.T) {
	in := []string{"a", "", "b", removedToken, "c"}

	out := retain(in, func(s string) bool { return s != "" && s != removedToken })

	assert.Equal(t, []string{"a", "b", "c"}, out)
	assert.Equal(t, []string{"a", "", "b", removedToken, "c"}, in)
}

package wordcloud

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Glyphs that separate words. Alternation is leftmost-first, so "' " wins over
// a bare space and "  " collapses to one separator.
var separatorPattern = regexp.MustCompile(`–|"|,|!|\?|\x{2022}|-|—|:|' | '|/r/| {2}`)

// Glyphs dropped without leaving a gap.
var strippedPattern = regexp.MustCompile(`\.|…|'s|[\x{2018}\x{2019}\x{201A}\x{201B}\x{2032}\x{2035}]|\|`)

// removedToken marks a stop-word hit. It cannot occur in cleaned text because
// it is a control character.
const removedToken = "\x00"

// Tokenizer cleans raw article text into lowercase words.
type Tokenizer struct {
	stopwords map[string]struct{}
}

// NewTokenizer creates a tokenizer that drops the given stop-words. Matching
// happens after lowercasing and is case-sensitive, so an entry with capitals
// never matches.
func NewTokenizer(stopwords []string) *Tokenizer {
	stops := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		stops[w] = struct{}{}
	}
	return &Tokenizer{stopwords: stops}
}

// Tokenize returns the non-empty, lowercase, stop-word free tokens of text in
// their original order. Feeding the joined result back in yields the same
// tokens.
func (t *Tokenizer) Tokenize(text string) []string {
	text = clean(norm.NFC.String(text))

	parts := strings.Split(text, " ")
	for i, p := range parts {
		p = strings.Trim(p, "'")
		if t.IsStopword(p) {
			p = removedToken
		}
		parts[i] = p
	}

	return retain(parts, func(tok string) bool {
		return tok != "" && tok != removedToken
	})
}

// clean applies the separator and strip passes and lowercases until the text
// stops changing. A single pass can expose new matches, e.g. "''ss" leaves
// "'s" behind.
func clean(text string) string {
	for {
		next := separatorPattern.ReplaceAllLiteralString(text, " ")
		next = strippedPattern.ReplaceAllLiteralString(next, "")
		next = strings.ToLower(next)
		if next == text {
			return next
		}
		text = next
	}
}

// IsStopword reports whether token is on the stop list.
func (t *Tokenizer) IsStopword(token string) bool {
	_, ok := t.stopwords[token]
	return ok
}

// Stopwords returns the number of configured stop-words.
func (t *Tokenizer) Stopwords() int {
	return len(t.stopwords)
}

// retain returns a new slice holding the elements of in for which keep is true.
func retain(in []string, keep func(string) bool) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}

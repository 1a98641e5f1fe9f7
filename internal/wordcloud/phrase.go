package wordcloud

// endOfSequence stands in for the successor of the final token. Cleaned tokens
// are never empty, so it cannot collide with a real word.
const endOfSequence = ""

// CombinePhrases merges a token with the word that follows it when every
// occurrence of the token (at least two) is followed by that same word, so
// "bernie sanders" repeated across articles becomes one term. The consumed
// successor is not emitted on its own.
func CombinePhrases(tokens []string) []string {
	successors := make(map[string][]string, len(tokens))
	for i, tok := range tokens {
		next := endOfSequence
		if i+1 < len(tokens) {
			next = tokens[i+1]
		}
		successors[tok] = append(successors[tok], next)
	}

	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if next, ok := consistentSuccessor(successors[tok]); ok {
			out = append(out, tok+" "+next)
			i++
			continue
		}
		out = append(out, tok)
	}
	return out
}

func consistentSuccessor(next []string) (string, bool) {
	if len(next) < 2 {
		return "", false
	}
	for _, n := range next[1:] {
		if n != next[0] {
			return "", false
		}
	}
	if next[0] == endOfSequence {
		return "", false
	}
	return next[0], true
}

package news

import (
	"context"
	"fmt"
	"strings"
	"time"
)

type Article struct {
	Title       string
	Description string
	URL         string
	Source      string
	PublishedAt time.Time
}

type NewsClient interface {
	Fetch(ctx context.Context, limit int) ([]Article, error)
	Name() string
}

// FetchError reports a source that could not be read during a run.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// fieldDelimiter ends every joined field so payloads from different articles
// and sources never run together.
const fieldDelimiter = ", "

// JoinArticles builds the text a source contributes to a run: all titles
// followed by all descriptions. Empty fields are skipped.
func JoinArticles(articles []Article) string {
	var sb strings.Builder
	for _, a := range articles {
		if a.Title != "" {
			sb.WriteString(a.Title)
			sb.WriteString(fieldDelimiter)
		}
	}
	for _, a := range articles {
		if a.Description != "" {
			sb.WriteString(a.Description)
			sb.WriteString(fieldDelimiter)
		}
	}
	return sb.String()
}

func truncate(articles []Article, limit int) []Article {
	if limit > 0 && len(articles) > limit {
		return articles[:limit]
	}
	return articles
}

package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const newsAPIEndpoint = "https://newsapi.org/v1/articles"

// NewsAPIClient reads the top articles of one newsapi.org source.
type NewsAPIClient struct {
	apiKey     string
	source     string
	sortBy     string
	httpClient *http.Client
}

func NewNewsAPIClient(apiKey, source, sortBy string) *NewsAPIClient {
	return &NewsAPIClient{
		apiKey:     apiKey,
		source:     source,
		sortBy:     sortBy,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *NewsAPIClient) Name() string {
	return c.source
}

func (c *NewsAPIClient) Fetch(ctx context.Context, limit int) ([]Article, error) {
	q := url.Values{}
	q.Set("source", c.source)
	if c.sortBy != "" {
		q.Set("sortBy", c.sortBy)
	}
	q.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, newsAPIEndpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("newsapi request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi fetch: %w", err)
	}
	defer resp.Body.Close()

	var raw newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("newsapi decode: %w", err)
	}

	if resp.StatusCode != http.StatusOK || raw.Status != "ok" {
		return nil, fmt.Errorf("newsapi status %d: %s %s", resp.StatusCode, raw.Code, raw.Message)
	}

	articles := make([]Article, 0, len(raw.Articles))
	for _, item := range raw.Articles {
		publishedAt, err := time.Parse(time.RFC3339, item.PublishedAt)
		if err != nil {
			publishedAt = time.Time{}
		}

		articles = append(articles, Article{
			Title:       PlainText(item.Title),
			Description: PlainText(item.Description),
			URL:         item.URL,
			Source:      c.Name(),
			PublishedAt: publishedAt,
		})
	}

	return truncate(articles, limit), nil
}

type newsAPIResponse struct {
	Status   string           `json:"status"`
	Code     string           `json:"code"`
	Message  string           `json:"message"`
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

package news

import (
	"context"
	"fmt"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
)

type FinnHubClient struct {
	client   *finnhub.DefaultApiService
	name     string
	category string
}

// NewFinnHubClient reads market news in category, "general" when empty, and
// reports itself as name.
func NewFinnHubClient(apiKey, name, category string) *FinnHubClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	client := finnhub.NewAPIClient(cfg).DefaultApi
	if category == "" {
		category = "general"
	}
	return &FinnHubClient{client: client, name: name, category: category}
}

func (c *FinnHubClient) Fetch(ctx context.Context, limit int) ([]Article, error) {
	res, _, err := c.client.MarketNews(ctx).Category(c.category).Execute()
	if err != nil {
		return nil, fmt.Errorf("finnhub fetch: %w", err)
	}

	var articles []Article

	for _, news := range res {
		a := Article{
			Source: c.Name(),
		}

		if news.Headline != nil {
			a.Title = PlainText(*news.Headline)
		}

		if news.Summary != nil {
			a.Description = PlainText(*news.Summary)
		}

		if news.Url != nil {
			a.URL = *news.Url
		}

		if news.Datetime != nil {
			a.PublishedAt = time.Unix(*news.Datetime, 0)
		}

		articles = append(articles, a)
	}

	return truncate(articles, limit), nil
}

func (c *FinnHubClient) Name() string {
	return c.name
}

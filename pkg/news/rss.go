package news

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
)

// RSSClient reads items from an RSS or Atom feed.
type RSSClient struct {
	name   string
	url    string
	parser *gofeed.Parser
}

func NewRSSClient(name, feedURL string) *RSSClient {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: 30 * time.Second}
	return &RSSClient{name: name, url: feedURL, parser: parser}
}

func (c *RSSClient) Name() string {
	return c.name
}

func (c *RSSClient) Fetch(ctx context.Context, limit int) ([]Article, error) {
	feed, err := c.parser.ParseURLWithContext(c.url, ctx)
	if err != nil {
		return nil, fmt.Errorf("rss fetch: %w", err)
	}

	articles := make([]Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		a := Article{
			Title:       PlainText(item.Title),
			Description: PlainText(item.Description),
			URL:         item.Link,
			Source:      c.Name(),
		}
		if item.PublishedParsed != nil {
			a.PublishedAt = *item.PublishedParsed
		}
		articles = append(articles, a)
	}

	return truncate(articles, limit), nil
}

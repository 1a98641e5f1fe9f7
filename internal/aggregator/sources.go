package aggregator

import (
	"fmt"

	"github.com/wrobbinz/newspoint/internal/config"
	"github.com/wrobbinz/newspoint/internal/wordcloud"
	"github.com/wrobbinz/newspoint/pkg/news"
)

// BuildClients creates one news client per configured source.
func BuildClients(cfg *config.Config) ([]news.NewsClient, error) {
	clients := make([]news.NewsClient, 0, len(cfg.Sources))
	for _, src := range cfg.Sources {
		switch src.KindOrDefault() {
		case config.KindNewsAPI:
			clients = append(clients, news.NewNewsAPIClient(cfg.NewsAPIKey, src.Name, src.Sort))
		case config.KindRSS:
			clients = append(clients, news.NewRSSClient(src.Name, src.URL))
		case config.KindFinnHub:
			clients = append(clients, news.NewFinnHubClient(cfg.FinnHubKey, src.Name, src.Category))
		default:
			return nil, fmt.Errorf("%w: %q", config.ErrUnknownSourceKind, src.Kind)
		}
	}
	return clients, nil
}

// NewPipeline builds the cloud pipeline from the configured stopwords and
// cloud settings.
func NewPipeline(cfg *config.Config) *wordcloud.Pipeline {
	return wordcloud.NewPipeline(
		wordcloud.NewTokenizer(cfg.Stopwords),
		wordcloud.Options{
			CloudSize: cfg.Cloud.Size,
			SizeScale: cfg.Cloud.SizeScale,
			MaxSize:   cfg.Cloud.MaxSize,
		},
	)
}

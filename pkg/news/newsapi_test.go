package news

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestNewsAPIFetch(t *testing.T) {
	payload := map[string]interface{}{
		"status": "ok",
		"source": "bbc-news",
		"sortBy": "top",
		"articles": []map[string]interface{}{
			{
				"title":       "Senate Passes Budget Bill",
				"description": "The <b>Senate</b> approved the bill late on Friday.",
				"url":         "https://example.com/budget",
				"publishedAt": "2026-10-18T09:30:00Z",
			},
			{
				"title":       "Storm Hits Coast",
				"description": nil,
				"url":         "https://example.com/storm",
				"publishedAt": "not-a-date",
			},
		},
	}

	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	client := newTestNewsAPIClient(srv)

	articles, err := client.Fetch(context.Background(), 0)

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(articles))
	assert.Equal(t, []string{"bbc-news"}, gotQuery["source"])
	assert.Equal(t, []string{"top"}, gotQuery["sortBy"])
	assert.Equal(t, []string{"test-key"}, gotQuery["apiKey"])

	a := articles[0]
	assert.Equal(t, "Senate Passes Budget Bill", a.Title)
	assert.Equal(t, "The Senate approved the bill late on Friday.", a.Description)
	assert.Equal(t, "https://example.com/budget", a.URL)
	assert.Equal(t, "bbc-news", a.Source)
	assert.Equal(t, 2026, a.PublishedAt.Year())

	assert.Equal(t, "", articles[1].Description)
	assert.Equal(t, time.Time{}, articles[1].PublishedAt)
}

func TestNewsAPIFetchLimit(t *testing.T) {
	payload := map[string]interface{}{
		"status": "ok",
		"articles": []map[string]interface{}{
			{"title": "one"}, {"title": "two"}, {"title": "three"},
		},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	articles, err := newTestNewsAPIClient(srv).Fetch(context.Background(), 2)

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(articles))
}

func TestNewsAPIFetchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{
			"status":  "error",
			"code":    "apiKeyInvalid",
			"message": "Your API key is invalid",
		})
	}))
	defer srv.Close()

	articles, err := newTestNewsAPIClient(srv).Fetch(context.Background(), 0)

	assert.NotEqual(t, nil, err)
	assert.Equal(t, 0, len(articles))
}

func TestNewsAPIFetchMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway timeout</html>"))
	}))
	defer srv.Close()

	_, err := newTestNewsAPIClient(srv).Fetch(context.Background(), 0)

	assert.NotEqual(t, nil, err)
}

func newTestNewsAPIClient(srv *httptest.Server) *NewsAPIClient {
	client := NewNewsAPIClient("test-key", "bbc-news", "top")
	client.httpClient = srv.Client()
	client.httpClient.Transport = &rewriteTransport{base: srv.URL, inner: http.DefaultTransport}
	return client
}

// rewriteTransport redirects all requests to a fixed base URL (test server).
type rewriteTransport struct {
	base  string
	inner http.RoundTripper
}

func (rt *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req2 := req.Clone(req.Context())
	parsed, _ := http.NewRequest("GET", rt.base, nil)
	req2.URL.Host = parsed.URL.Host
	req2.URL.Scheme = parsed.URL.Scheme
	return rt.inner.RoundTrip(req2)
}

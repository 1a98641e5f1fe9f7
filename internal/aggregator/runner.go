// Package aggregator runs the fetch, build and store cycle behind the word
// cloud. The HTTP handler and the scheduler both start runs through a Runner.
package aggregator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/wrobbinz/newspoint/internal/model"
	"github.com/wrobbinz/newspoint/internal/repository"
	"github.com/wrobbinz/newspoint/internal/wordcloud"
	"github.com/wrobbinz/newspoint/pkg/news"
	"golang.org/x/sync/errgroup"
)

// ErrRunInProgress is returned when a run is requested while another one holds
// the guard, in this process or, with a Locker, in another one.
var ErrRunInProgress = errors.New("cloud run already in progress")

const (
	defaultFetchTimeout = 10 * time.Second
	defaultArticleLimit = 10
)

type CloudWriter interface {
	UpdateAllNews(ctx context.Context, entries []model.CloudEntry) (repository.UpdateResult, error)
}

// Locker guards runs across processes. db.RunLock implements it over Redis.
type Locker interface {
	TryLock(ctx context.Context) (unlock func(), ok bool, err error)
}

type Options struct {
	FetchTimeout time.Duration
	ArticleLimit int
	Lock         Locker
}

// RunReport describes one finished run.
type RunReport struct {
	ID            string
	StartedAt     time.Time
	FinishedAt    time.Time
	SourcesOK     int
	SourcesFailed int
	Entries       int
	FailedWrites  int
}

func (r RunReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

type Runner struct {
	clients  []news.NewsClient
	pipeline *wordcloud.Pipeline
	writer   CloudWriter
	opts     Options

	running atomic.Bool
	wg      sync.WaitGroup
}

// NewRunner builds a runner. A nil writer makes Run build the cloud without
// storing it.
func NewRunner(clients []news.NewsClient, pipeline *wordcloud.Pipeline, writer CloudWriter, opts Options) *Runner {
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = defaultFetchTimeout
	}
	if opts.ArticleLimit <= 0 {
		opts.ArticleLimit = defaultArticleLimit
	}
	return &Runner{
		clients:  clients,
		pipeline: pipeline,
		writer:   writer,
		opts:     opts,
	}
}

// Run fetches every source, builds the cloud and stores it. Failed sources and
// failed row writes are logged and counted in the report; they do not fail the
// run. An empty cloud is not stored, so the previous one stays visible.
func (r *Runner) Run(ctx context.Context) (RunReport, error) {
	if !r.running.CompareAndSwap(false, true) {
		return RunReport{}, ErrRunInProgress
	}
	defer r.running.Store(false)

	if r.opts.Lock != nil {
		unlock, ok, err := r.opts.Lock.TryLock(ctx)
		if err != nil {
			return RunReport{}, fmt.Errorf("acquire run lock: %w", err)
		}
		if !ok {
			return RunReport{}, ErrRunInProgress
		}
		defer unlock()
	}

	entries, report := r.Build(ctx)

	if len(entries) == 0 {
		slog.Warn("empty cloud, keeping stored news", "run_id", report.ID)
	} else if r.writer != nil {
		res, err := r.writer.UpdateAllNews(ctx, entries)
		report.FailedWrites = len(res.Failed)
		if err != nil {
			slog.Error("error storing cloud", "run_id", report.ID, "written", res.Written, "failed", len(res.Failed), "error", err)
		}
	}

	report.FinishedAt = time.Now()
	slog.Info("run complete",
		"run_id", report.ID,
		"sources_ok", report.SourcesOK,
		"sources_failed", report.SourcesFailed,
		"entries", report.Entries,
		"failed_writes", report.FailedWrites,
		"duration", report.Duration(),
	)

	return report, nil
}

// Build fetches every source and returns the cloud without storing it or
// taking the run guard.
func (r *Runner) Build(ctx context.Context) ([]model.CloudEntry, RunReport) {
	report := RunReport{
		ID:        ulid.Make().String(),
		StartedAt: time.Now(),
	}

	results := r.fetchAll(ctx)
	for _, res := range results {
		if res.Text == nil {
			report.SourcesFailed++
		} else {
			report.SourcesOK++
		}
	}

	entries := r.pipeline.Run(results)
	report.Entries = len(entries)
	report.FinishedAt = time.Now()

	return entries, report
}

// Trigger starts a run in the background.
func (r *Runner) Trigger() {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.Tick(context.Background())
	}()
}

// Tick runs once and logs the outcome instead of returning it. A run rejected
// by the guard is dropped.
func (r *Runner) Tick(ctx context.Context) {
	defer func() {
		if p := recover(); p != nil {
			slog.Error("panic in cloud run", "panic", p)
		}
	}()

	_, err := r.Run(ctx)
	if errors.Is(err, ErrRunInProgress) {
		slog.Info("run skipped", "reason", err)
		return
	}
	if err != nil {
		slog.Error("error running cloud update", "error", err)
	}
}

// Wait blocks until every triggered run has returned.
func (r *Runner) Wait() {
	r.wg.Wait()
}

// fetchAll queries every client concurrently. Results keep client order.
func (r *Runner) fetchAll(ctx context.Context) []wordcloud.SourceResult {
	results := make([]wordcloud.SourceResult, len(r.clients))

	var g errgroup.Group
	for i, client := range r.clients {
		g.Go(func() error {
			results[i] = r.fetch(ctx, client)
			return nil
		})
	}
	g.Wait()

	return results
}

// fetch runs one client. Errors, timeouts and panics all turn into a missing
// result for that source.
func (r *Runner) fetch(ctx context.Context, client news.NewsClient) (result wordcloud.SourceResult) {
	source := client.Name()

	defer func() {
		if p := recover(); p != nil {
			ferr := &news.FetchError{Source: source, Err: fmt.Errorf("panic: %v", p)}
			slog.Error("error fetching source", "source", source, "error", ferr)
			result = wordcloud.Missing(source)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, r.opts.FetchTimeout)
	defer cancel()

	articles, err := client.Fetch(ctx, r.opts.ArticleLimit)
	if err != nil {
		ferr := &news.FetchError{Source: source, Err: err}
		slog.Error("error fetching source", "source", source, "error", ferr)
		return wordcloud.Missing(source)
	}

	slog.Debug("fetched source", "source", source, "articles", len(articles))
	return wordcloud.Found(source, news.JoinArticles(articles))
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/wrobbinz/newspoint/db"
	"github.com/wrobbinz/newspoint/internal/model"
	"golang.org/x/sync/errgroup"
)

const schema = `
CREATE TABLE IF NOT EXISTS news (
	id INTEGER PRIMARY KEY,
	word TEXT NOT NULL,
	size INTEGER NOT NULL
)`

// WriteError reports a cloud row that could not be stored.
type WriteError struct {
	ID  int
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write news row %d: %v", e.ID, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// UpdateResult summarizes one UpdateAllNews call.
type UpdateResult struct {
	Written int
	Failed  []*WriteError
	Pruned  int64
}

type NewsRepository struct {
	db         *sql.DB
	driver     string
	writeLimit int
}

// NewNewsRepository stores the cloud in conn. writeLimit bounds concurrent row
// writes; values below 1 mean one writer.
func NewNewsRepository(conn *sql.DB, driver string, writeLimit int) *NewsRepository {
	if writeLimit < 1 {
		writeLimit = 1
	}
	return &NewsRepository{db: conn, driver: driver, writeLimit: writeLimit}
}

func (r *NewsRepository) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

func (r *NewsRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *NewsRepository) GetAllNews(ctx context.Context) ([]model.NewsRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, word, size
		FROM news
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	news := []model.NewsRow{}
	for rows.Next() {
		var n model.NewsRow
		if err := rows.Scan(&n.ID, &n.Word, &n.Size); err != nil {
			return nil, err
		}
		news = append(news, n)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return news, nil
}

// UpdateAllNews upserts every entry by id and then drops rows ranked past the
// new cloud. Rows are written independently: a failed row is logged and
// reported in the result while the others still land. The returned error
// joins all row failures. An empty entry slice leaves the table alone.
func (r *NewsRepository) UpdateAllNews(ctx context.Context, entries []model.CloudEntry) (UpdateResult, error) {
	var res UpdateResult
	if len(entries) == 0 {
		return res, nil
	}

	upsert := db.Rebind(r.driver, `
		INSERT INTO news (id, word, size)
		VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET word = excluded.word, size = excluded.size
	`)

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(r.writeLimit)

	for _, e := range entries {
		g.Go(func() error {
			_, err := r.db.ExecContext(ctx, upsert, e.ID, e.Text, e.Size)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				werr := &WriteError{ID: e.ID, Err: err}
				slog.Error("error writing news row", "id", e.ID, "word", e.Text, "error", err)
				res.Failed = append(res.Failed, werr)
				return nil
			}
			res.Written++
			return nil
		})
	}
	g.Wait()

	pruned, err := r.db.ExecContext(ctx, db.Rebind(r.driver, `DELETE FROM news WHERE id > ?`), len(entries))
	if err != nil {
		slog.Error("error pruning news rows", "keep", len(entries), "error", err)
	} else if n, err := pruned.RowsAffected(); err == nil {
		res.Pruned = n
	}

	errs := make([]error, 0, len(res.Failed))
	for _, f := range res.Failed {
		errs = append(errs, f)
	}
	return res, errors.Join(errs...)
}

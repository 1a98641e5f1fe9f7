package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

var DB *sql.DB

// Driver names accepted by Open.
const (
	Postgres = "postgres"
	SQLite   = "sqlite"
)

// Connect opens the shared connection pool and pings it.
func Connect(driver, url string) error {
	var err error
	DB, err = Open(driver, url)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return DB.PingContext(ctx)
}

// Open opens a pool for driver without pinging it.
func Open(driver, url string) (*sql.DB, error) {
	if url == "" {
		return nil, fmt.Errorf("%s connection url is not set", driver)
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, err
	}

	switch driver {
	case SQLite:
		// One connection serializes writers and keeps :memory: databases alive.
		conn.SetMaxOpenConns(1)
		if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
			conn.Close()
			return nil, err
		}
	default:
		conn.SetMaxOpenConns(25)
		conn.SetMaxIdleConns(25)
		conn.SetConnMaxLifetime(5 * time.Minute)
	}

	return conn, nil
}

func Close() {
	if DB != nil {
		DB.Close()
	}
}

// Rebind rewrites '?' placeholders into the form driver expects.
func Rebind(driver, query string) string {
	if driver != Postgres {
		return query
	}

	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/feedback-board/cliparse"
)

// sqliteParams are appended to SQLite DSNs unless the caller already set them.
var sqliteParams = []string{
	"_pragma=foreign_keys(1)",
	"_pragma=busy_timeout(5000)",
	"_time_format=sqlite",
}

// Open connects to the database of the given type and verifies the
// connection. dbType is one of the cliparse.Database* constants.
func Open(ctx context.Context, dbType, url string) (*sql.DB, error) {
	driver, dsn, err := driverFor(dbType, url)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dbType, err)
	}

	if driver == "sqlite" {
		// SQLite allows one writer; a single connection keeps
		// transactions from failing with SQLITE_BUSY on upgrade.
		conn.SetMaxOpenConns(1)
	} else {
		conn.SetMaxOpenConns(25)
		conn.SetMaxIdleConns(5)
		conn.SetConnMaxLifetime(30 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping %s: %w", dbType, err)
	}

	return conn, nil
}

func driverFor(dbType, url string) (driver, dsn string, err error) {
	switch dbType {
	case cliparse.DatabaseSQLite, "":
		return "sqlite", sqliteDSN(url), nil
	case cliparse.DatabasePostgres:
		return "postgres", url, nil
	case cliparse.DatabasePGX:
		return "pgx", url, nil
	}
	return "", "", fmt.Errorf("unsupported database type %q", dbType)
}

func sqliteDSN(url string) string {
	if url == "" {
		url = "feedback.db"
	}
	var missing []string
	for _, p := range sqliteParams {
		key := p[:strings.Index(p, "=")+1]
		if key == "_pragma=" {
			key = p[:strings.Index(p, "(")]
		}
		if !strings.Contains(url, key) {
			missing = append(missing, p)
		}
	}
	if len(missing) == 0 {
		return url
	}
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + strings.Join(missing, "&")
}

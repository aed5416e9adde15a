package migrations

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	pgstore "resilience-lab/internal/storage/postgres"
)

// RunPostgresMigrations connects to Postgres and applies all embedded SQL
// files in name order. Statements are idempotent (IF NOT EXISTS), so
// re-running on an existing database is safe. Returns the pool for reuse.
func RunPostgresMigrations(ctx context.Context, dsn string) (*pgstore.Pool, error) {
	pool, err := pgstore.NewPool(ctx, dsn)
	if err != nil {
		return nil, err
	}

	files, err := sqlFiles(PostgresFS, "postgres")
	if err != nil {
		pool.Close()
		return nil, err
	}

	for _, file := range files {
		data, err := fs.ReadFile(PostgresFS, "postgres/"+file)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("read migration %s: %w", file, err)
		}
		if _, err := pool.Exec(ctx, string(data)); err != nil {
			pool.Close()
			return nil, fmt.Errorf("apply migration %s: %w", file, err)
		}
	}

	return pool, nil
}

// sqlFiles lists the .sql entries of an embedded directory, sorted by name
// (001_, 002_, ...).
func sqlFiles(fsys fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read embedded %s migrations: %w", dir, err)
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

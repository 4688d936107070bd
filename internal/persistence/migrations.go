package persistence

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const migrationsDir = "migrations"

// RunMigrations applies every .sql file under the migrations directory in
// lexical order. Files are plain statements run once per boot; the schema
// uses IF NOT EXISTS guards so reruns are harmless.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	if pool == nil {
		logger.Warn("no postgres pool available; skipping migrations")
		return nil
	}

	dirEntries, err := os.ReadDir(migrationsDir)
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}

	var scripts []string
	for _, entry := range dirEntries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		scripts = append(scripts, entry.Name())
	}
	sort.Strings(scripts)

	for _, script := range scripts {
		sql, err := os.ReadFile(filepath.Join(migrationsDir, script))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", script, err)
		}

		logger.Info("applying migration", zap.String("file", script))
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("apply migration %s: %w", script, err)
		}
	}

	logger.Info("schema up to date", zap.Int("migrations", len(scripts)))
	return nil
}

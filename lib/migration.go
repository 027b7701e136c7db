package lib

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

type Migration struct {
	Name    string
	UpSQL   string
	DownSQL string
}

// HistoryMigrations returns the migrations shipped with the binary.
func HistoryMigrations() ([]*Migration, error) {
	return ReadMigrations(migrationFiles, "migrations")
}

// ReadMigrations pairs NAME.up.sql and NAME.down.sql files in dir, sorted by
// name.
func ReadMigrations(fsys fs.FS, dir string) ([]*Migration, error) {
	files, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	migrations := map[string]*Migration{}

	withMigration := func(name string) *Migration {
		m, ok := migrations[name]
		if !ok {
			m = &Migration{
				Name: name,
			}
			migrations[name] = m
		}
		return m
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		bytes, err := fs.ReadFile(fsys, path.Join(dir, file.Name()))
		if err != nil {
			return nil, err
		}

		name, isUp := parseMigrationFileName(file.Name())
		migration := withMigration(name)
		if isUp {
			migration.UpSQL = string(bytes)
		} else {
			migration.DownSQL = string(bytes)
		}
	}

	keys := []string{}
	for k := range migrations {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := []*Migration{}
	for _, k := range keys {
		if migrations[k].UpSQL == "" {
			return nil, fmt.Errorf("Migration '%s' has no up.sql", k)
		}
		result = append(result, migrations[k])
	}
	return result, nil
}

func parseMigrationFileName(fileName string) (string, bool) {
	return getMigrationName(fileName), getUpness(fileName)
}

func getMigrationName(fileName string) string {
	dotParts := strings.Split(fileName, ".")
	return dotParts[0]
}

func getUpness(fileName string) bool {
	return !strings.HasSuffix(fileName, ".down.sql")
}

// RunMigrations applies every migration not yet recorded in the migrations
// table and returns the names of the ones it ran.
func RunMigrations(ctx context.Context, db *sql.DB, migrations []*Migration) ([]string, error) {
	err := requireMigrationsTable(ctx, db)
	if err != nil {
		return nil, err
	}

	applied := []string{}
	for _, migration := range migrations {
		ran, err := execMigration(ctx, db, migration)
		if err != nil {
			return applied, fmt.Errorf("migration %s: %w", migration.Name, err)
		}
		if ran {
			applied = append(applied, migration.Name)
		}
	}

	return applied, nil
}

func requireMigrationsTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, "CREATE TABLE IF NOT EXISTS migrations (name VARCHAR(255) PRIMARY KEY, at TIMESTAMP WITH TIME ZONE NOT NULL)")
	return err
}

func execMigration(ctx context.Context, db *sql.DB, migration *Migration) (bool, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM migrations WHERE name = $1)", migration.Name).Scan(&exists)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	if _, err = tx.ExecContext(ctx, migration.UpSQL); err != nil {
		return false, err
	}

	_, err = tx.ExecContext(ctx, "INSERT INTO migrations (name, at) VALUES ($1, $2)", migration.Name, time.Now().UTC())
	if err != nil {
		return false, err
	}

	return true, tx.Commit()
}

package db

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
)

//go:embed migrations/postgres/*.up.sql migrations/sqlite/*.up.sql
var migrations embed.FS

// Migrate применяет миграции для выбранного драйвера
func (db *DB) Migrate() error {
	db.log.Debug("running tasksDB migrations", "driver", db.driver)

	dir := "migrations/postgres"
	if db.driver == DriverSQLite {
		dir = "migrations/sqlite"
	}

	files, err := fs.Glob(migrations, path.Join(dir, "*.up.sql"))
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, name := range files {
		stmt, err := migrations.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := db.conn.Exec(string(stmt)); err != nil {
			return fmt.Errorf("apply migration %s: %w", path.Base(name), err)
		}
	}

	db.log.Debug("tasksDB migrations finished", "applied", len(files))
	return nil
}

package migration

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
)

const migrationsDir = "migrations"

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// LatestMigrationVersion returns the highest embedded migration version.
func LatestMigrationVersion() (uint, error) {
	entries, err := fs.ReadDir(embeddedMigrations, migrationsDir)
	if err != nil {
		return 0, fmt.Errorf("list migrations: %w", err)
	}

	var latest uint
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".up.sql") {
			continue
		}
		version, ok := parseMigrationVersion(name)
		if !ok {
			return 0, fmt.Errorf("invalid migration filename: %s", name)
		}
		latest = max(latest, version)
	}
	if latest == 0 {
		return 0, errors.New("no embedded migrations found")
	}
	return latest, nil
}

func parseMigrationVersion(name string) (uint, bool) {
	prefix, _, ok := strings.Cut(name, "_")
	if !ok || prefix == "" {
		return 0, false
	}
	parsed, err := strconv.ParseUint(prefix, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(parsed), true
}

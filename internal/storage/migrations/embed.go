// Package migrations embeds the schema files applied by the test
// harnesses and by fresh deployments. Files run in name order; each
// ClickHouse file holds a single statement.
package migrations

import (
	"embed"
	"fmt"
	"sort"
)

// PostgresFS embeds all PostgreSQL schema files.
//
//go:embed postgres/*.sql
var PostgresFS embed.FS

// ClickhouseFS embeds all ClickHouse schema files.
//
//go:embed clickhouse/*.sql
var ClickhouseFS embed.FS

// Statements returns the contents of every .sql file under dir in the
// given filesystem, sorted by file name.
func Statements(fsys embed.FS, dir string) ([]string, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read schema dir %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	stmts := make([]string, 0, len(names))
	for _, name := range names {
		data, err := fsys.ReadFile(dir + "/" + name)
		if err != nil {
			return nil, fmt.Errorf("read schema file %s: %w", name, err)
		}
		stmts = append(stmts, string(data))
	}
	return stmts, nil
}

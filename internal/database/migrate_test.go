package database

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrationsArePaired(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	assert.NoError(t, err)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		}
	}

	assert.NotEmpty(t, ups)
	assert.Equal(t, ups, downs)
}

func TestSchemaCoversPersistedTables(t *testing.T) {
	body, err := fs.ReadFile(migrationsFS, "migrations/000001_init_schema.up.sql")
	assert.NoError(t, err)

	for _, table := range []string{
		"employees", "projects", "tasks", "task_details", "leave_types", "leave_requests",
		"expense_types", "expenses", "employee_profiles", "wiki_categories", "wiki_pages",
		"wiki_views", "policies", "careers", "assets", "asset_allocations", "asset_issues",
	} {
		assert.Contains(t, string(body), "CREATE TABLE IF NOT EXISTS "+table+" (", table)
	}
}

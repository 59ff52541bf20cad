package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func migratedDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func schemaObjects(t *testing.T, db *sql.DB, kind string) []string {
	t.Helper()
	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type = ? AND name NOT LIKE 'sqlite_%' ORDER BY name`, kind)
	require.NoError(t, err)
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	return names
}

func TestMigrate_RerunIsHarmless(t *testing.T) {
	db := migratedDB(t)
	before := schemaObjects(t, db, "table")

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
	assert.Equal(t, before, schemaObjects(t, db, "table"))
}

func TestMigrate_ProgressSchema(t *testing.T) {
	db := migratedDB(t)

	assert.Equal(t, []string{
		"checklist_items", "packages", "progress_events",
		"progress_overlays", "services", "subpackages",
	}, schemaObjects(t, db, "table"))
	assert.Subset(t, schemaObjects(t, db, "index"), []string{
		"idx_subpackages_package",
		"idx_services_subpackage",
		"idx_progress_events_service",
	})
}

func TestMigrate_ChecklistConstraints(t *testing.T) {
	db := migratedDB(t)

	_, err := db.Exec(`INSERT INTO packages (id, name, created_at) VALUES ('p', 'P', '2024-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO subpackages (id, package_id, name, created_at) VALUES ('sp', 'p', 'SP', '2024-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO services (id, subpackage_id, name, created_at, updated_at) VALUES ('s', 'sp', 'S', '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO checklist_items (id, service_id, weight, progress, updated_at) VALUES ('i', 's', 120, 0, '2024-01-01T00:00:00Z')`)
	assert.Error(t, err, "weight above 100 rejected")

	_, err = db.Exec(`INSERT INTO checklist_items (id, service_id, weight, progress, updated_at) VALUES ('i', 'missing', 10, 0, '2024-01-01T00:00:00Z')`)
	assert.Error(t, err, "foreign key enforced")
}

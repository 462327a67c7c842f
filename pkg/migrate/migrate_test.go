package migrate

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"001_create_widgets.up.sql":   {Data: []byte("CREATE TABLE widgets (id INTEGER PRIMARY KEY)")},
		"001_create_widgets.down.sql": {Data: []byte("DROP TABLE widgets")},
		"002_add_name.up.sql":         {Data: []byte("ALTER TABLE widgets ADD COLUMN name TEXT")},
		"002_add_name.down.sql":       {Data: []byte("ALTER TABLE widgets DROP COLUMN name")},
		"README.md":                   {Data: []byte("not a migration")},
	}
}

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestGetMigrations(t *testing.T) {
	migrations, err := NewFSProvider(testFS(), "").GetMigrations()
	if err != nil {
		t.Fatalf("GetMigrations returned error: %v", err)
	}
	if len(migrations) != 2 {
		t.Fatalf("got %d migrations, expected 2", len(migrations))
	}
	if migrations[0].Version != 1 || migrations[0].Name != "create widgets" {
		t.Errorf("first migration = %+v", migrations[0])
	}
	if migrations[1].Up == "" || migrations[1].Down == "" {
		t.Errorf("second migration missing SQL: %+v", migrations[1])
	}
}

func TestMigrateUpAndDown(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	m := NewMigrator(db, NewFSProvider(testFS(), ""), nil)

	if err := m.MigrateUp(ctx); err != nil {
		t.Fatalf("MigrateUp returned error: %v", err)
	}
	if v, err := m.CurrentVersion(ctx); err != nil || v != 2 {
		t.Fatalf("CurrentVersion = %d, %v; expected 2", v, err)
	}
	if _, err := db.Exec("INSERT INTO widgets (id, name) VALUES (1, 'a')"); err != nil {
		t.Fatalf("insert after migration failed: %v", err)
	}

	// Running again is a no-op.
	if err := m.MigrateUp(ctx); err != nil {
		t.Fatalf("second MigrateUp returned error: %v", err)
	}

	if err := m.MigrateTo(ctx, 1); err != nil {
		t.Fatalf("MigrateTo(1) returned error: %v", err)
	}
	if v, err := m.CurrentVersion(ctx); err != nil || v != 1 {
		t.Fatalf("CurrentVersion = %d, %v; expected 1", v, err)
	}
	if _, err := db.Exec("INSERT INTO widgets (id, name) VALUES (2, 'b')"); err == nil {
		t.Error("name column still present after rollback")
	}

	if err := m.MigrateTo(ctx, 0); err != nil {
		t.Fatalf("MigrateTo(0) returned error: %v", err)
	}
	if v, _ := m.CurrentVersion(ctx); v != 0 {
		t.Errorf("CurrentVersion = %d, expected 0", v)
	}
}

func TestMigrateFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	fsys := fstest.MapFS{
		"001_ok.up.sql":     {Data: []byte("CREATE TABLE ok (id INTEGER)")},
		"002_broken.up.sql": {Data: []byte("CREATE TABLE broken (")},
	}
	m := NewMigrator(db, NewFSProvider(fsys, "versions"), nil)

	if err := m.MigrateUp(ctx); err == nil {
		t.Fatal("MigrateUp succeeded with broken SQL")
	}
	if v, _ := m.CurrentVersion(ctx); v != 1 {
		t.Errorf("CurrentVersion = %d, expected 1", v)
	}
}

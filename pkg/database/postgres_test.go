package database

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

type testItem struct {
	ID   int64
	Name string
}

type testLog struct {
	ID      int64
	Message string
}

func TestOpen_SQLiteMigrate(t *testing.T) {
	db, err := Open(Options{DSN: ":memory:", LogLevel: "silent"}, zap.NewNop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if IsPostgres(db) {
		t.Fatal("expected sqlite dialector")
	}

	manager, err := Migrate(context.Background(), db, zap.NewNop(), MigrateOptions{
		Models:            []interface{}{&testItem{}},
		PartitionedModels: []interface{}{&testLog{}},
	})
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if manager != nil {
		t.Error("partition manager should be nil on sqlite")
	}
	for _, table := range []string{"test_items", "test_logs"} {
		if !db.Migrator().HasTable(table) {
			t.Errorf("table %s not created", table)
		}
	}
}

func TestIsSQLiteDSN(t *testing.T) {
	cases := map[string]bool{
		":memory:":                   true,
		"file:erp.db?cache=shared":   true,
		"host=localhost dbname=erp":  false,
		"postgres://u:p@localhost/x": false,
	}
	for dsn, want := range cases {
		if got := isSQLiteDSN(dsn); got != want {
			t.Errorf("isSQLiteDSN(%q) = %v, want %v", dsn, got, want)
		}
	}
}

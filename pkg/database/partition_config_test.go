package database

import (
	"testing"
	"testing/fstest"
	"time"
)

func TestParsePartitionConfig(t *testing.T) {
	cfg, err := parsePartitionConfig("# comment\n\nstock_movements,0\nactivity_logs, 24\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(cfg.Tables) != 2 {
		t.Fatalf("tables = %d, want 2", len(cfg.Tables))
	}
	if cfg.Tables[1].Name != "activity_logs" || cfg.Tables[1].RetentionMonths != 24 {
		t.Errorf("table[1] = %+v", cfg.Tables[1])
	}
	if !cfg.Has("stock_movements") || cfg.Has("sales") {
		t.Error("Has() mismatch")
	}
}

func TestParsePartitionConfig_Invalid(t *testing.T) {
	for _, content := range []string{"stock_movements", "stock_movements,abc", "x,-1"} {
		if _, err := parsePartitionConfig(content); err == nil {
			t.Errorf("parse(%q) expected error", content)
		}
	}
}

func TestLoadPartitionConfig(t *testing.T) {
	fsys := fstest.MapFS{
		"p/partition_tables.conf": {Data: []byte("logs,6\n")},
		"p/logs.sql":              {Data: []byte("CREATE TABLE logs ();")},
	}
	cfg, err := LoadPartitionConfig(fsys, "p")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Tables[0].DDL != "CREATE TABLE logs ();" {
		t.Errorf("DDL = %q", cfg.Tables[0].DDL)
	}

	if _, err := LoadPartitionConfig(fstest.MapFS{"p/partition_tables.conf": {Data: []byte("missing,1")}}, "p"); err == nil {
		t.Error("expected error for missing sql file")
	}
}

func TestEmbeddedPartitions(t *testing.T) {
	cfg, err := LoadPartitionConfig(PartitionSQL, "partitions")
	if err != nil {
		t.Fatalf("load embedded: %v", err)
	}
	for _, name := range []string{"stock_movements", "activity_logs"} {
		if !cfg.Has(name) {
			t.Errorf("embedded config missing %s", name)
		}
	}
}

func TestPartitionNameRoundTrip(t *testing.T) {
	month := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	name := PartitionName("activity_logs", month)
	if name != "activity_logs_y2026m03" {
		t.Fatalf("name = %s", name)
	}
	got, ok := parsePartitionMonth(name, "activity_logs")
	if !ok || !got.Equal(month) {
		t.Errorf("parse = %v %v, want %v", got, ok, month)
	}
	if _, ok := parsePartitionMonth("other_y2026m03", "activity_logs"); ok {
		t.Error("foreign partition should not parse")
	}
}

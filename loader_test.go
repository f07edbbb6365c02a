package osm2sql

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSQLiteLoader(t *testing.T) {
	outDir := t.TempDir()
	if _, err := NewConverter("./testdata/sample.osm", WithOutputDir(outDir)).Run(); err != nil {
		t.Fatal(err)
	}
	dbPath := filepath.Join(outDir, "osm.db")
	loader := NewSQLiteLoader(dbPath, DefaultSchema(), false)
	stats, err := loader.Load(outDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(stats.RowErrors) != 0 {
		t.Fatalf("Expected no row errors, but got %v", stats.RowErrors)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	counts := map[string]int{
		"nodes":      3,
		"nodes_tags": 4,
		"ways":       1,
		"ways_tags":  3,
		"ways_nodes": 3,
	}
	for table, expected := range counts {
		var got int
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&got); err != nil {
			t.Fatal(err)
		}
		if got != expected {
			t.Errorf("Table '%s' must hold %d rows, but got %d", table, expected, got)
		}
		if stats.Inserted[table] != expected {
			t.Errorf("Loader stats for '%s' must be %d, but got %d", table, expected, stats.Inserted[table])
		}
	}

	var surface string
	err = db.QueryRow(`SELECT value FROM ways_tags WHERE key = 'surface'`).Scan(&surface)
	if err != nil {
		t.Fatal(err)
	}
	if surface != "unpaved" {
		t.Errorf("Expected loaded surface value 'unpaved', but got '%s'", surface)
	}

	var lat float64
	err = db.QueryRow(`SELECT lat FROM nodes WHERE id = 101`).Scan(&lat)
	if err != nil {
		t.Fatal(err)
	}
	if lat != 25.2048 {
		t.Errorf("Expected lat 25.2048 for node 101, but got %f", lat)
	}
}

func TestSQLiteLoaderRebuild(t *testing.T) {
	outDir := t.TempDir()
	if _, err := NewConverter("./testdata/sample.osm", WithOutputDir(outDir)).Run(); err != nil {
		t.Fatal(err)
	}
	dbPath := filepath.Join(outDir, "osm.db")
	loader := NewSQLiteLoader(dbPath, DefaultSchema(), false)
	if _, err := loader.Load(outDir); err != nil {
		t.Fatal(err)
	}
	// Second run must drop and recreate, not append
	stats, err := loader.Load(outDir)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Inserted["nodes"] != 3 {
		t.Errorf("Rebuild must start from empty tables, but got %d node rows", stats.Inserted["nodes"])
	}
}

func TestSQLiteLoaderBadRow(t *testing.T) {
	outDir := t.TempDir()
	csvContent := "id,lat,lon,user,uid,version,changeset,timestamp\n" +
		"1,25.0,55.0,mapper,7,1,900,2017-03-10T10:00:00Z\n" +
		"not-a-number,25.0,55.0,mapper,7,1,900,2017-03-10T10:00:00Z\n" +
		"2,25.1,55.1,mapper,7,1,900,2017-03-10T10:00:00Z\n"
	if err := os.WriteFile(filepath.Join(outDir, "nodes.csv"), []byte(csvContent), 0644); err != nil {
		t.Fatal(err)
	}
	schema := DefaultSchema()[:1]
	loader := NewSQLiteLoader(filepath.Join(outDir, "osm.db"), schema, false)
	stats, err := loader.Load(outDir)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Inserted["nodes"] != 2 {
		t.Errorf("Good rows around a bad one must still load, but got %d", stats.Inserted["nodes"])
	}
	if len(stats.RowErrors) != 1 {
		t.Errorf("Expected 1 row error, but got %d", len(stats.RowErrors))
	}
}

func TestTableStatements(t *testing.T) {
	var nodesTags Table
	for _, table := range DefaultSchema() {
		if table.Name == "nodes_tags" {
			nodesTags = table
		}
	}
	create := nodesTags.CreateStatement()
	if !strings.Contains(create, "FOREIGN KEY (id) REFERENCES nodes(id)") {
		t.Errorf("Expected declarative foreign key in DDL, but got:\n%s", create)
	}
	insert := nodesTags.InsertStatement()
	if insert != "INSERT INTO nodes_tags (id, key, value, type) VALUES (?, ?, ?, ?)" {
		t.Errorf("Unexpected insert statement: %s", insert)
	}
}

package osm2sql

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return records
}

func TestConverterRun(t *testing.T) {
	outDir := t.TempDir()
	converter := NewConverter("./testdata/sample.osm", WithOutputDir(outDir))
	stats, err := converter.Run()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Nodes != 3 {
		t.Errorf("Expected 3 nodes, but got %d", stats.Nodes)
	}
	if stats.Ways != 1 {
		t.Errorf("Expected 1 way, but got %d", stats.Ways)
	}
	if stats.DroppedTags != 2 {
		t.Errorf("Expected 2 dropped tags, but got %d", stats.DroppedTags)
	}

	nodes := readCSV(t, filepath.Join(outDir, "nodes.csv"))
	// Header plus one row per node consumed, no duplication and no loss
	if len(nodes) != 4 {
		t.Fatalf("Expected 4 rows in nodes.csv, but got %d", len(nodes))
	}
	if strings.Join(nodes[0], ",") != "id,lat,lon,user,uid,version,changeset,timestamp" {
		t.Errorf("Unexpected nodes.csv header: %v", nodes[0])
	}

	ways := readCSV(t, filepath.Join(outDir, "ways.csv"))
	if len(ways) != 2 {
		t.Fatalf("Expected 2 rows in ways.csv, but got %d", len(ways))
	}

	wayNodes := readCSV(t, filepath.Join(outDir, "ways_nodes.csv"))
	if len(wayNodes) != 4 {
		t.Fatalf("Expected 4 rows in ways_nodes.csv, but got %d", len(wayNodes))
	}
	for i, record := range wayNodes[1:] {
		if record[2] != [...]string{"0", "1", "2"}[i] {
			t.Errorf("Way node positions must be contiguous from 0, but got %v", record)
		}
	}

	wayTags := readCSV(t, filepath.Join(outDir, "ways_tags.csv"))
	cleaned := make(map[string]string)
	for _, record := range wayTags[1:] {
		cleaned[record[1]] = record[2]
	}
	if cleaned["surface"] != "unpaved" {
		t.Errorf("Expected surface cleaned to 'unpaved', but got '%s'", cleaned["surface"])
	}
	if cleaned["oneway"] != NoneValue {
		t.Errorf("Expected oneway cleaned to '%s', but got '%s'", NoneValue, cleaned["oneway"])
	}

	nodeTags := readCSV(t, filepath.Join(outDir, "nodes_tags.csv"))
	if len(nodeTags) != 5 {
		t.Fatalf("Expected 5 rows in nodes_tags.csv, but got %d", len(nodeTags))
	}
}

func TestConverterDeterministic(t *testing.T) {
	firstDir := t.TempDir()
	secondDir := t.TempDir()
	if _, err := NewConverter("./testdata/sample.osm", WithOutputDir(firstDir)).Run(); err != nil {
		t.Fatal(err)
	}
	if _, err := NewConverter("./testdata/sample.osm", WithOutputDir(secondDir)).Run(); err != nil {
		t.Fatal(err)
	}
	for _, table := range DefaultSchema() {
		first, err := os.ReadFile(filepath.Join(firstDir, table.FileName))
		if err != nil {
			t.Fatal(err)
		}
		second, err := os.ReadFile(filepath.Join(secondDir, table.FileName))
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(first, second) {
			t.Errorf("Re-running the pipeline must produce byte-identical '%s'", table.FileName)
		}
	}
}

func TestConverterMalformedInput(t *testing.T) {
	converter := NewConverter("./testdata/malformed.osm", WithOutputDir(t.TempDir()))
	if _, err := converter.Run(); err == nil {
		t.Error("Expected a fatal error for malformed input")
	}
}

func TestConverterGeoJSONExport(t *testing.T) {
	outDir := t.TempDir()
	geojsonPath := filepath.Join(outDir, "points.geojson")
	converter := NewConverter("./testdata/sample.osm",
		WithOutputDir(outDir),
		WithGeoJSON(geojsonPath),
	)
	if _, err := converter.Run(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(geojsonPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "FeatureCollection") {
		t.Error("Expected a GeoJSON FeatureCollection")
	}
	if !strings.Contains(string(data), "123 Main Street") {
		t.Error("Expected cleaned street value among feature properties")
	}
}

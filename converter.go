package osm2sql

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Converter runs the full transformation: stream elements from the OSM
// file, clean and shape them, stage rows as CSV files.
type Converter struct {
	filename    string
	outputDir   string
	geojsonPath string
	cleaner     *Cleaner
	schema      []Table
	verbose     bool
}

func (converter *Converter) String() string {
	return fmt.Sprintf(`
Converter parameters:
	filename: '%s'
	output_dir: '%s'
	geojson: '%s'
	tables: '%s'
	verbose?: %t
	`,
		converter.filename,
		converter.outputDir,
		converter.geojsonPath,
		strings.Join(tableNames(converter.schema), ","),
		converter.verbose,
	)
}

func tableNames(schema []Table) []string {
	names := make([]string, len(schema))
	for i := range schema {
		names[i] = schema[i].Name
	}
	return names
}

func NewConverter(fileName string, options ...func(*Converter)) *Converter {
	converter := &Converter{
		filename:  fileName,
		outputDir: ".",
		cleaner:   NewCleaner(DefaultCleanRules()),
		schema:    DefaultSchema(),
	}
	for _, option := range options {
		option(converter)
	}
	return converter
}

func WithOutputDir(outputDir string) func(*Converter) {
	return func(converter *Converter) {
		converter.outputDir = outputDir
	}
}

func WithCleaner(cleaner *Cleaner) func(*Converter) {
	return func(converter *Converter) {
		converter.cleaner = cleaner
	}
}

func WithSchema(schema []Table) func(*Converter) {
	return func(converter *Converter) {
		converter.schema = schema
	}
}

func WithGeoJSON(geojsonPath string) func(*Converter) {
	return func(converter *Converter) {
		converter.geojsonPath = geojsonPath
	}
}

func WithVerbose(verbose bool) func(*Converter) {
	return func(converter *Converter) {
		converter.verbose = verbose
	}
}

type ConvertStats struct {
	Duration    time.Duration
	Nodes       int
	Ways        int
	TagRows     int
	WayNodeRows int
	DroppedTags int
}

// Run streams the input file once and stages every row. CSV files are
// fully flushed and closed before Run returns, so a follow-up load
// never races the conversion. A parse error aborts the whole run.
func (converter *Converter) Run() (*ConvertStats, error) {
	if converter.verbose {
		fmt.Printf("Converting file: '%s'...\n", converter.filename)
	}
	st := time.Now()

	reader, err := NewElementReader(converter.filename)
	if err != nil {
		return nil, errors.Wrap(err, "Can't prepare element reader")
	}
	defer reader.Close()

	emitter, err := NewCSVEmitter(converter.outputDir, converter.schema)
	if err != nil {
		return nil, errors.Wrap(err, "Can't prepare CSV emitter")
	}

	var geojsonExport *geoJSONExport
	if converter.geojsonPath != "" {
		geojsonExport = newGeoJSONExport()
	}

	shaper := NewShaper(converter.cleaner)
	stats := &ConvertStats{}
	for reader.Next() {
		elem := reader.Element()
		shaped := shaper.Shape(elem)
		if err := emitter.WriteElement(shaped); err != nil {
			emitter.Close()
			return nil, errors.Wrap(err, "Can't stage element rows")
		}
		if shaped.Node != nil {
			stats.Nodes++
		}
		if shaped.Way != nil {
			stats.Ways++
		}
		stats.TagRows += len(shaped.Tags)
		stats.WayNodeRows += len(shaped.WayNodes)
		stats.DroppedTags += shaped.DroppedTags
		if geojsonExport != nil && shaped.Node != nil && len(shaped.Tags) > 0 {
			geojsonExport.addPoint(shaped.Node, shaped.Tags)
		}
	}
	if err := reader.Err(); err != nil {
		emitter.Close()
		return nil, errors.Wrap(err, "Can't parse OSM data")
	}
	if err := emitter.Close(); err != nil {
		return nil, errors.Wrap(err, "Can't finalize CSV files")
	}
	if geojsonExport != nil {
		if err := geojsonExport.writeFile(converter.geojsonPath); err != nil {
			return nil, errors.Wrap(err, "Can't export GeoJSON")
		}
	}
	stats.Duration = time.Since(st)
	if converter.verbose {
		fmt.Printf("Done in %v\n\tNodes: %d\n\tWays: %d\n\tTag rows: %d\n\tWay node rows: %d\n\tDropped tags: %d\n",
			stats.Duration, stats.Nodes, stats.Ways, stats.TagRows, stats.WayNodeRows, stats.DroppedTags)
	}
	return stats, nil
}

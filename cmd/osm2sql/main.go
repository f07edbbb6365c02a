package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dxbgeo/osm2sql"
)

var (
	osmFileName = flag.String("file", "dubai_abu-dhabi.osm", "Filename of *.osm (or *.osm.pbf) file to process")
	outDir      = flag.String("out", ".", "Directory for output CSV files (nodes.csv, nodes_tags.csv, ways.csv, ways_tags.csv, ways_nodes.csv)")
	dbPath      = flag.String("db", "osm.db", "Path of SQLite database to (re)build from the CSV files. Empty value skips the load step")
	sampleOut   = flag.String("sample-out", "", "Filename for a reduced-size sample document. Empty value skips sampling")
	sampleSize  = flag.Int("sample-size", 60, "Take every k-th top level element when writing the sample file")
	doAudit     = flag.Bool("audit", false, "Print the audit report for the default checks before converting")
	geojsonPath = flag.String("geojson", "", "Filename for GeoJSON export of tagged point features. Empty value skips the export")
	verbose     = flag.Bool("verbose", true, "Print progress")
)

func main() {
	flag.Parse()

	if *sampleOut != "" {
		written, err := osm2sql.WriteSample(*osmFileName, *sampleOut, *sampleSize)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		if *verbose {
			fmt.Printf("Sample file '%s' written (%d elements)\n", *sampleOut, written)
		}
	}

	if *doAudit {
		report, err := osm2sql.AuditFile(*osmFileName, osm2sql.DefaultAuditChecks()...)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		for _, check := range osm2sql.DefaultAuditChecks() {
			failing := report.Failing(check.Name)
			fmt.Printf("Check '%s': %d failing values\n", check.Name, len(failing))
			for _, value := range failing {
				fmt.Printf("\t%s\n", value)
			}
		}
	}

	options := []func(*osm2sql.Converter){
		osm2sql.WithOutputDir(*outDir),
		osm2sql.WithVerbose(*verbose),
	}
	if *geojsonPath != "" {
		options = append(options, osm2sql.WithGeoJSON(*geojsonPath))
	}
	converter := osm2sql.NewConverter(*osmFileName, options...)
	if _, err := converter.Run(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if *dbPath != "" {
		loader := osm2sql.NewSQLiteLoader(*dbPath, osm2sql.DefaultSchema(), *verbose)
		stats, err := loader.Load(*outDir)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		if len(stats.RowErrors) > 0 {
			fmt.Printf("Rows skipped during load: %d\n", len(stats.RowErrors))
			for _, rowErr := range stats.RowErrors {
				fmt.Printf("\t%s\n", rowErr)
			}
		}
		if *verbose {
			fmt.Printf("Database '%s' rebuilt in %v\n", *dbPath, stats.Duration)
		}
	}
}

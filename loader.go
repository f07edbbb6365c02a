package osm2sql

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// RowError records a single row which could not be loaded. The load
// keeps going; these surface in LoadStats afterwards.
type RowError struct {
	Err   error
	Table string
	Line  int
}

func (rowErr RowError) String() string {
	return fmt.Sprintf("table '%s' line %d: %s", rowErr.Table, rowErr.Line, rowErr.Err)
}

type LoadStats struct {
	Inserted  map[string]int
	RowErrors []RowError
	Duration  time.Duration
}

// SQLiteLoader creates the schema tables in a SQLite database and
// bulk-loads the staged CSV files into them. Every run is a full
// rebuild: existing tables are dropped first. The load is best-effort,
// a failing row is recorded and skipped, never rolled back.
type SQLiteLoader struct {
	dbPath  string
	schema  []Table
	verbose bool
}

func NewSQLiteLoader(dbPath string, schema []Table, verbose bool) *SQLiteLoader {
	return &SQLiteLoader{
		dbPath:  dbPath,
		schema:  schema,
		verbose: verbose,
	}
}

// Load rebuilds every schema table from its CSV file in csvDir.
func (loader *SQLiteLoader) Load(csvDir string) (*LoadStats, error) {
	start := time.Now()
	db, err := sql.Open("sqlite", loader.dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "Can't open database")
	}
	defer db.Close()

	stats := &LoadStats{
		Inserted: make(map[string]int, len(loader.schema)),
	}
	for _, table := range loader.schema {
		if loader.verbose {
			fmt.Printf("\tLoading table '%s'... ", table.Name)
		}
		st := time.Now()
		if _, err := db.Exec("DROP TABLE IF EXISTS " + table.Name); err != nil {
			return nil, errors.Wrapf(err, "Can't drop table '%s'", table.Name)
		}
		if _, err := db.Exec(table.CreateStatement()); err != nil {
			return nil, errors.Wrapf(err, "Can't create table '%s'", table.Name)
		}
		if err := loader.loadTable(db, table, filepath.Join(csvDir, table.FileName), stats); err != nil {
			return nil, err
		}
		if loader.verbose {
			fmt.Printf("Done in %v (%d rows)\n", time.Since(st), stats.Inserted[table.Name])
		}
	}
	stats.Duration = time.Since(start)
	return stats, nil
}

func (loader *SQLiteLoader) loadTable(db *sql.DB, table Table, csvPath string, stats *LoadStats) error {
	file, err := os.Open(csvPath)
	if err != nil {
		return errors.Wrapf(err, "Can't open CSV file for table '%s'", table.Name)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Header row
	if _, err := reader.Read(); err != nil {
		return errors.Wrapf(err, "Can't read CSV header for table '%s'", table.Name)
	}
	stmt, err := db.Prepare(table.InsertStatement())
	if err != nil {
		return errors.Wrapf(err, "Can't prepare insert for table '%s'", table.Name)
	}
	defer stmt.Close()

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			stats.RowErrors = append(stats.RowErrors, RowError{Table: table.Name, Line: line, Err: err})
			continue
		}
		args, err := coerceRecord(table, record)
		if err != nil {
			stats.RowErrors = append(stats.RowErrors, RowError{Table: table.Name, Line: line, Err: err})
			continue
		}
		if _, err := stmt.Exec(args...); err != nil {
			stats.RowErrors = append(stats.RowErrors, RowError{Table: table.Name, Line: line, Err: err})
			continue
		}
		stats.Inserted[table.Name]++
	}
	return nil
}

// coerceRecord converts the CSV fields to the declared column types.
// Empty optional fields become NULL.
func coerceRecord(table Table, record []string) ([]interface{}, error) {
	if len(record) != len(table.Columns) {
		return nil, fmt.Errorf("expected %d fields, got %d", len(table.Columns), len(record))
	}
	args := make([]interface{}, len(record))
	for i, column := range table.Columns {
		field := record[i]
		if field == "" && !column.NotNull {
			args[i] = nil
			continue
		}
		switch column.Type {
		case COLUMN_INTEGER:
			value, err := strconv.ParseInt(field, 10, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "column '%s'", column.Name)
			}
			args[i] = value
		case COLUMN_REAL:
			value, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "column '%s'", column.Name)
			}
			args[i] = value
		default:
			args[i] = field
		}
	}
	return args, nil
}

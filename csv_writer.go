package osm2sql

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// CSVEmitter stages shaped rows into one CSV file per schema table.
// Files are created eagerly with their header rows; Close flushes and
// closes every file regardless of how far the run got.
type CSVEmitter struct {
	writers map[string]*csv.Writer
	files   []*os.File
	schema  []Table
}

// NewCSVEmitter creates the per-table CSV files inside dir and writes
// the header rows. On any failure already opened files are closed.
func NewCSVEmitter(dir string, schema []Table) (*CSVEmitter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "Can't prepare output directory")
	}
	emitter := &CSVEmitter{
		writers: make(map[string]*csv.Writer, len(schema)),
		schema:  schema,
	}
	for _, table := range schema {
		file, err := os.Create(filepath.Join(dir, table.FileName))
		if err != nil {
			emitter.Close()
			return nil, errors.Wrapf(err, "Can't create file for table '%s'", table.Name)
		}
		emitter.files = append(emitter.files, file)
		writer := csv.NewWriter(file)
		if err := writer.Write(table.Header()); err != nil {
			emitter.Close()
			return nil, errors.Wrapf(err, "Can't write header for table '%s'", table.Name)
		}
		emitter.writers[table.Name] = writer
	}
	return emitter, nil
}

// WriteElement appends every row of the shaped element to its table.
func (emitter *CSVEmitter) WriteElement(shaped *ShapedElement) error {
	if shaped.Node != nil {
		if err := emitter.writers["nodes"].Write(shaped.Node.Record()); err != nil {
			return errors.Wrap(err, "Can't write node row")
		}
		for i := range shaped.Tags {
			if err := emitter.writers["nodes_tags"].Write(shaped.Tags[i].Record()); err != nil {
				return errors.Wrap(err, "Can't write node tag row")
			}
		}
	}
	if shaped.Way != nil {
		if err := emitter.writers["ways"].Write(shaped.Way.Record()); err != nil {
			return errors.Wrap(err, "Can't write way row")
		}
		for i := range shaped.Tags {
			if err := emitter.writers["ways_tags"].Write(shaped.Tags[i].Record()); err != nil {
				return errors.Wrap(err, "Can't write way tag row")
			}
		}
		for i := range shaped.WayNodes {
			if err := emitter.writers["ways_nodes"].Write(shaped.WayNodes[i].Record()); err != nil {
				return errors.Wrap(err, "Can't write way node row")
			}
		}
	}
	return nil
}

// Close flushes every writer and closes every file. The first error
// met is returned but all files are closed either way.
func (emitter *CSVEmitter) Close() error {
	var firstErr error
	for _, writer := range emitter.writers {
		writer.Flush()
		if err := writer.Error(); err != nil && firstErr == nil {
			firstErr = errors.Wrap(err, "Can't flush CSV writer")
		}
	}
	for _, file := range emitter.files {
		if err := file.Close(); err != nil && firstErr == nil {
			firstErr = errors.Wrap(err, "Can't close CSV file")
		}
	}
	return firstErr
}

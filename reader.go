package osm2sql

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
)

type OSMScanner interface {
	Scan() bool
	Close() error
	Err() error
	Object() osm.Object
}

// ElementReader streams top-level elements (nodes and ways) from an OSM
// file without materializing the whole document. Not restartable: once
// the scan reaches EOF a new reader must be created.
type ElementReader struct {
	file    *os.File
	scanner OSMScanner
	current *Element
	err     error
}

// NewElementReader opens the given file and prepares a streaming
// scanner for it. Format is guessed from the file extension the same
// way as for full imports: '.osm'/'.xml' or '.pbf'/'.osm.pbf'.
func NewElementReader(filename string) (*ElementReader, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "Can't open OSM file")
	}
	var scanner OSMScanner
	ext := filepath.Ext(filename)
	switch ext {
	case ".osm", ".xml":
		scanner = osmxml.New(context.Background(), file)
	case ".pbf", ".osm.pbf":
		scanner = osmpbf.New(context.Background(), file, 4)
	default:
		file.Close()
		return nil, fmt.Errorf("File extension '%s' for file '%s' is not handled yet", ext, filename)
	}
	return &ElementReader{
		file:    file,
		scanner: scanner,
	}, nil
}

// Next advances to the next node or way element. It returns false when
// the scan is done or has failed; check Err afterwards.
func (reader *ElementReader) Next() bool {
	if reader.err != nil {
		return false
	}
	for reader.scanner.Scan() {
		obj := reader.scanner.Object()
		switch obj.ObjectID().Type() {
		case "node":
			reader.current = elementFromNode(obj.(*osm.Node))
			return true
		case "way":
			reader.current = elementFromWay(obj.(*osm.Way))
			return true
		default:
			// Relations and metadata objects are out of scope
			continue
		}
	}
	reader.current = nil
	if err := reader.scanner.Err(); err != nil {
		reader.err = errors.Wrap(err, "Scanner error")
	}
	return false
}

// Element returns the element produced by the last successful call to
// Next. The returned value is owned by the caller.
func (reader *ElementReader) Element() *Element {
	return reader.current
}

func (reader *ElementReader) Err() error {
	return reader.err
}

func (reader *ElementReader) Close() error {
	scanErr := reader.scanner.Close()
	fileErr := reader.file.Close()
	if scanErr != nil {
		return scanErr
	}
	return fileErr
}

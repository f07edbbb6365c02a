package osm2sql

import (
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
)

// WriteSample extracts every k-th top-level element from the source
// document into a small well-formed OSM file. Working the audit and
// cleaning tables out on a multi-hundred-megabyte extract directly is
// too slow, so sample files of a few sizes come first.
func WriteSample(srcFilename, dstFilename string, every int) (int, error) {
	if every < 1 {
		return 0, fmt.Errorf("Sample size must be positive, got %d", every)
	}
	ext := filepath.Ext(srcFilename)
	if ext != ".osm" && ext != ".xml" {
		return 0, fmt.Errorf("File extension '%s' for file '%s' is not handled for sampling", ext, srcFilename)
	}
	src, err := os.Open(srcFilename)
	if err != nil {
		return 0, errors.Wrap(err, "Can't open source OSM file")
	}
	defer src.Close()

	dst, err := os.Create(dstFilename)
	if err != nil {
		return 0, errors.Wrap(err, "Can't create sample file")
	}
	defer dst.Close()

	if _, err := dst.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<osm>\n"); err != nil {
		return 0, errors.Wrap(err, "Can't write sample header")
	}

	scanner := osmxml.New(context.Background(), src)
	defer scanner.Close()

	encoder := xml.NewEncoder(dst)
	written := 0
	index := 0
	for scanner.Scan() {
		obj := scanner.Object()
		objType := obj.ObjectID().Type()
		if objType != "node" && objType != "way" && objType != "relation" {
			continue
		}
		if index%every == 0 {
			if err := encoder.Encode(obj); err != nil {
				return written, errors.Wrap(err, "Can't encode sampled element")
			}
			written++
		}
		index++
	}
	if err := scanner.Err(); err != nil {
		return written, errors.Wrap(err, "Scanner error while sampling")
	}
	if err := encoder.Flush(); err != nil {
		return written, errors.Wrap(err, "Can't flush sampled elements")
	}
	if _, err := dst.WriteString("\n</osm>\n"); err != nil {
		return written, errors.Wrap(err, "Can't write sample footer")
	}
	return written, nil
}

package osm2sql

import (
	"fmt"
	"strings"
)

type ColumnType uint16

const (
	COLUMN_INTEGER = ColumnType(iota + 1)
	COLUMN_REAL
	COLUMN_TEXT
)

func (iotaIdx ColumnType) String() string {
	return [...]string{"INTEGER", "REAL", "TEXT"}[iotaIdx-1]
}

type Column struct {
	Name       string
	Type       ColumnType
	PrimaryKey bool
	NotNull    bool
}

type ForeignKey struct {
	Column    string
	RefTable  string
	RefColumn string
}

// Table declares one output table: its database name, the CSV file it
// is staged through, the ordered column set and declarative foreign
// keys. Column order is the single source of truth for both the CSV
// header and the SQL statements.
type Table struct {
	Name        string
	FileName    string
	Columns     []Column
	ForeignKeys []ForeignKey
}

// Header returns the CSV header row in declared column order.
func (table Table) Header() []string {
	header := make([]string, len(table.Columns))
	for i, column := range table.Columns {
		header[i] = column.Name
	}
	return header
}

// CreateStatement renders the CREATE TABLE DDL. Foreign keys are
// declared for documentation purposes; enforcement is left off so a
// referential mismatch can not abort a load.
func (table Table) CreateStatement() string {
	defs := make([]string, 0, len(table.Columns)+len(table.ForeignKeys))
	for _, column := range table.Columns {
		def := fmt.Sprintf("%s %s", column.Name, column.Type)
		if column.PrimaryKey {
			def += " PRIMARY KEY"
		}
		if column.NotNull {
			def += " NOT NULL"
		}
		defs = append(defs, def)
	}
	for _, fk := range table.ForeignKeys {
		defs = append(defs, fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s(%s)", fk.Column, fk.RefTable, fk.RefColumn))
	}
	return fmt.Sprintf("CREATE TABLE %s (\n    %s\n)", table.Name, strings.Join(defs, ",\n    "))
}

// InsertStatement renders the prepared INSERT matching Header order.
func (table Table) InsertStatement() string {
	placeholders := make([]string, len(table.Columns))
	for i := range table.Columns {
		placeholders[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table.Name,
		strings.Join(table.Header(), ", "),
		strings.Join(placeholders, ", "),
	)
}

// DefaultSchema declares the five output tables. The CSV files and the
// database tables share names, column order and types.
func DefaultSchema() []Table {
	return []Table{
		{
			Name:     "nodes",
			FileName: "nodes.csv",
			Columns: []Column{
				{Name: "id", Type: COLUMN_INTEGER, PrimaryKey: true, NotNull: true},
				{Name: "lat", Type: COLUMN_REAL},
				{Name: "lon", Type: COLUMN_REAL},
				{Name: "user", Type: COLUMN_TEXT},
				{Name: "uid", Type: COLUMN_INTEGER},
				{Name: "version", Type: COLUMN_INTEGER},
				{Name: "changeset", Type: COLUMN_INTEGER},
				{Name: "timestamp", Type: COLUMN_TEXT},
			},
		},
		{
			Name:     "nodes_tags",
			FileName: "nodes_tags.csv",
			Columns: []Column{
				{Name: "id", Type: COLUMN_INTEGER},
				{Name: "key", Type: COLUMN_TEXT},
				{Name: "value", Type: COLUMN_TEXT},
				{Name: "type", Type: COLUMN_TEXT},
			},
			ForeignKeys: []ForeignKey{
				{Column: "id", RefTable: "nodes", RefColumn: "id"},
			},
		},
		{
			Name:     "ways",
			FileName: "ways.csv",
			Columns: []Column{
				{Name: "id", Type: COLUMN_INTEGER, PrimaryKey: true, NotNull: true},
				{Name: "user", Type: COLUMN_TEXT},
				{Name: "uid", Type: COLUMN_INTEGER},
				{Name: "version", Type: COLUMN_INTEGER},
				{Name: "changeset", Type: COLUMN_INTEGER},
				{Name: "timestamp", Type: COLUMN_TEXT},
			},
		},
		{
			Name:     "ways_tags",
			FileName: "ways_tags.csv",
			Columns: []Column{
				{Name: "id", Type: COLUMN_INTEGER, NotNull: true},
				{Name: "key", Type: COLUMN_TEXT, NotNull: true},
				{Name: "value", Type: COLUMN_TEXT, NotNull: true},
				{Name: "type", Type: COLUMN_TEXT},
			},
			ForeignKeys: []ForeignKey{
				{Column: "id", RefTable: "ways", RefColumn: "id"},
			},
		},
		{
			Name:     "ways_nodes",
			FileName: "ways_nodes.csv",
			Columns: []Column{
				{Name: "id", Type: COLUMN_INTEGER, NotNull: true},
				{Name: "node_id", Type: COLUMN_INTEGER, NotNull: true},
				{Name: "position", Type: COLUMN_INTEGER, NotNull: true},
			},
			ForeignKeys: []ForeignKey{
				{Column: "id", RefTable: "ways", RefColumn: "id"},
				{Column: "node_id", RefTable: "nodes", RefColumn: "id"},
			},
		},
	}
}

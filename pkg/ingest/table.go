// Package ingest turns tabular input — CSV files or msgpack-encoded
// fixtures — into a ColumnarTable ready for pkg/magds.Store.Ingest, per
// spec.md §4.5.1. Grounded on original_source/src/simple/parser.rs and
// dynamic/parser.rs (magds_from_df, sensor_from_datavec), which read a
// dataframe and build one sensor per column plus one object neuron per row.
package ingest

import "github.com/asagraphs/magds/pkg/core"

// Column is one attribute of a ColumnarTable: a name, its inferred scalar
// tag, and the values for every row (absent cells are holes in Values,
// carried via TaggedVector's presence bitmap).
type Column struct {
	Name   string
	Tag    core.ScalarTag
	Values *core.TaggedVector
}

// ColumnarTable is the ingest boundary's output: a named dataset (the
// object neurons' ParentID) and its columns (each becoming a sensor keyed
// by Column.Name).
type ColumnarTable struct {
	Name    string
	Columns []Column
	Rows    int
}

// Column looks up a column by name.
func (t *ColumnarTable) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

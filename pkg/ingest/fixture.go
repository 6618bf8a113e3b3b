package ingest

import (
	"fmt"

	"github.com/asagraphs/magds/pkg/core"
	"github.com/vmihailenco/msgpack/v5"
)

// Wire types mirror qubicDB-qubicdb/pkg/persistence/codec.go's msgpack
// encoding of its Matrix, repurposed here for a ColumnarTable fixture
// instead of graph-state persistence (the latter is an explicit spec
// Non-goal — this codec is only ever used at the ingest boundary). Columns
// are encoded as parallel text/presence slices so the full 17-tag scalar
// space round-trips through core.FromText/TaggedValue.String without a
// msgpack extension per Go numeric type.
type datasetColumnWire struct {
	Name    string   `msgpack:"name"`
	Tag     int      `msgpack:"tag"`
	Values  []string `msgpack:"values"`
	Present []bool   `msgpack:"present"`
}

type datasetWire struct {
	Name    string              `msgpack:"name"`
	Rows    int                 `msgpack:"rows"`
	Columns []datasetColumnWire `msgpack:"columns"`
}

// EncodeTable serializes a ColumnarTable to the msgpack fixture format.
func EncodeTable(table *ColumnarTable) ([]byte, error) {
	wire := datasetWire{Name: table.Name, Rows: table.Rows}
	for _, col := range table.Columns {
		cw := datasetColumnWire{Name: col.Name, Tag: int(col.Tag)}
		for i := 0; i < col.Values.Len(); i++ {
			v, ok := col.Values.At(i)
			cw.Present = append(cw.Present, ok)
			if ok {
				cw.Values = append(cw.Values, v.String())
			} else {
				cw.Values = append(cw.Values, "")
			}
		}
		wire.Columns = append(wire.Columns, cw)
	}
	return msgpack.Marshal(wire)
}

// DecodeTable deserializes a ColumnarTable previously written by
// EncodeTable.
func DecodeTable(data []byte) (*ColumnarTable, error) {
	var wire datasetWire
	if err := msgpack.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("decoding dataset fixture: %w", err)
	}

	table := &ColumnarTable{Name: wire.Name, Rows: wire.Rows}
	for _, cw := range wire.Columns {
		tag := core.ScalarTag(cw.Tag)
		vec, err := core.NewVector(tag)
		if err != nil {
			return nil, fmt.Errorf("dataset fixture column %q: %w", cw.Name, err)
		}
		for i, text := range cw.Values {
			present := i < len(cw.Present) && cw.Present[i]
			if !present {
				vec.AppendAbsent()
				continue
			}
			v, err := core.FromText(text, tag)
			if err != nil {
				return nil, fmt.Errorf("dataset fixture column %q, row %d: %w", cw.Name, i, err)
			}
			if err := vec.Append(v); err != nil {
				return nil, fmt.Errorf("dataset fixture column %q, row %d: %w", cw.Name, i, err)
			}
		}
		table.Columns = append(table.Columns, Column{Name: cw.Name, Tag: tag, Values: vec})
	}
	return table, nil
}

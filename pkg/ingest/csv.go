package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strconv"

	"github.com/asagraphs/magds/pkg/core"
)

// Options configures the CSV adapter's null handling and type inference.
// Mirrors pkg/config.IngestConfig without creating an import-time
// dependency between the two packages.
type Options struct {
	// NullTokens are the raw field values treated as "no value" — an
	// absent cell contributes no sensor insertion and no defining edge
	// for that row.
	NullTokens []string
	// InferenceSampleSize caps how many non-null rows of a column are
	// sampled to infer its ScalarTag.
	InferenceSampleSize int
}

func (o Options) isNull(field string) bool {
	for _, tok := range o.NullTokens {
		if field == tok {
			return true
		}
	}
	return false
}

// FromCSV reads a CSV document (header row plus data rows) into a
// ColumnarTable named name. Each column's ScalarTag is inferred from a
// sample of its non-null values: bool, then i64, then f64, falling back to
// a string column. CSV carries only text, so the full 17-tag scalar space
// is reachable only through the msgpack fixture codec or the direct Go
// API — a column whose every sampled value fails every numeric/bool parse
// becomes a TagOwnedString column, never an error.
func FromCSV(name string, r io.Reader, opts Options) (*ColumnarTable, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV rows: %w", err)
	}

	table := &ColumnarTable{Name: name, Rows: len(records)}

	for col, colName := range header {
		sample := make([]string, 0, opts.InferenceSampleSize)
		for _, row := range records {
			if col >= len(row) || opts.isNull(row[col]) {
				continue
			}
			sample = append(sample, row[col])
			if opts.InferenceSampleSize > 0 && len(sample) >= opts.InferenceSampleSize {
				break
			}
		}

		tag, ok := inferTag(sample)
		if !ok {
			log.Printf("ingest: column %q has no non-null sampled values, skipping", colName)
			continue
		}

		vec, err := core.NewVector(tag)
		if err != nil {
			log.Printf("ingest: column %q: %v, skipping", colName, err)
			continue
		}

		for _, row := range records {
			if col >= len(row) || opts.isNull(row[col]) {
				vec.AppendAbsent()
				continue
			}
			v, err := core.FromText(row[col], tag)
			if err != nil {
				log.Printf("ingest: column %q: %v, treating cell as absent", colName, err)
				vec.AppendAbsent()
				continue
			}
			if err := vec.Append(v); err != nil {
				log.Printf("ingest: column %q: %v, treating cell as absent", colName, err)
				vec.AppendAbsent()
			}
		}

		table.Columns = append(table.Columns, Column{Name: colName, Tag: tag, Values: vec})
	}

	return table, nil
}

func inferTag(sample []string) (core.ScalarTag, bool) {
	if len(sample) == 0 {
		return core.TagUnknown, false
	}

	allBool, allInt, allFloat := true, true, true
	for _, s := range sample {
		if _, err := strconv.ParseBool(s); err != nil {
			allBool = false
		}
		if _, err := strconv.ParseInt(s, 10, 64); err != nil {
			allInt = false
		}
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			allFloat = false
		}
	}

	switch {
	case allBool:
		return core.TagBool, true
	case allInt:
		return core.TagI64, true
	case allFloat:
		return core.TagF64, true
	default:
		return core.TagOwnedString, true
	}
}

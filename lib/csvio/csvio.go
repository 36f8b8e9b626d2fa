// Package csvio moves dataframes in and out of CSV files so the CLI can load
// payloads from disk and export reads back out.
package csvio

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/quarry-data/quarry/lib/arrowutil"
	"github.com/quarry-data/quarry/lib/typing"
	"github.com/quarry-data/quarry/lib/typing/values"
)

// WriteRecord writes the record to filePath with a header row of column names.
// NULL cells are written empty.
func WriteRecord(filePath string, record arrow.Record) error {
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	schema := record.Schema()
	header := make([]string, schema.NumFields())
	kinds := make([]typing.KindDetails, schema.NumFields())
	for i := range schema.NumFields() {
		field := schema.Field(i)
		header[i] = field.Name

		kind, err := arrowutil.KindForField(field)
		if err != nil {
			return err
		}
		kinds[i] = kind
	}

	if err = writer.Write(header); err != nil {
		return err
	}

	row := make([]string, schema.NumFields())
	for rowIdx := range int(record.NumRows()) {
		for colIdx := range row {
			value, err := arrowutil.ValueAt(record, colIdx, rowIdx)
			if err != nil {
				return err
			}

			if value == nil {
				row[colIdx] = ""
				continue
			}

			rendered, err := values.ToString(value, kinds[colIdx])
			if err != nil {
				return fmt.Errorf("column %q, row %d: %w", header[colIdx], rowIdx, err)
			}
			row[colIdx] = rendered
		}

		if err = writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// ReadRecord reads a headered CSV file into a record, parsing each column with
// the kind declared for its header name. Empty cells become NULL, except for
// string columns where an empty cell is an empty string.
func ReadRecord(filePath string, kindsByColumn map[string]typing.KindDetails) (arrow.Record, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	lines, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", filePath, err)
	}

	if len(lines) == 0 {
		return nil, fmt.Errorf("file %q has no header row", filePath)
	}

	header := lines[0]
	kinds := make([]typing.KindDetails, len(header))
	for i, name := range header {
		kind, ok := kindsByColumn[name]
		if !ok {
			return nil, fmt.Errorf("no kind declared for column %q", name)
		}
		kinds[i] = kind
	}

	schema, err := arrowutil.NewSchema(header, kinds)
	if err != nil {
		return nil, err
	}

	rows := make([][]any, 0, len(lines)-1)
	for lineIdx, line := range lines[1:] {
		row := make([]any, len(header))
		for colIdx, cell := range line {
			if cell == "" && kinds[colIdx] != typing.String {
				continue
			}

			parsed, err := values.FromString(cell, kinds[colIdx])
			if err != nil {
				return nil, fmt.Errorf("column %q, line %d: %w", header[colIdx], lineIdx+2, err)
			}
			row[colIdx] = parsed
		}

		rows = append(rows, row)
	}

	return arrowutil.RecordFromRows(schema, rows)
}

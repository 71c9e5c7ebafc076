// Package dataset persists flat records into CSV files, merging with any
// rows already present. There is no uniqueness constraint: every append adds
// a row.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Append merges the record into the CSV file at path, creating the file and
// its parent directories when absent. Existing rows and columns are
// preserved; columns introduced by the record are added to the header and
// back-filled with empty values for prior rows.
func Append(path string, record map[string]string) error {
	header, rows, err := read(path)
	if err != nil {
		return err
	}

	header = mergeColumns(header, record)

	row := make([]string, len(header))
	for i, column := range header {
		row[i] = record[column]
	}
	rows = append(rows, row)

	return write(path, header, rows)
}

func read(path string) ([]string, [][]string, error) {
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open dataset: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	if len(all) == 0 {
		return nil, nil, nil
	}
	return all[0], all[1:], nil
}

func write(path string, header []string, rows [][]string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dataset directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write dataset header: %w", err)
	}

	for _, row := range rows {
		// Back-fill rows that predate newly introduced columns.
		padded := make([]string, len(header))
		copy(padded, row)
		if err := writer.Write(padded); err != nil {
			return fmt.Errorf("write dataset row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// mergeColumns keeps the existing column order and appends any new record
// keys sorted for determinism.
func mergeColumns(header []string, record map[string]string) []string {
	known := make(map[string]bool, len(header))
	for _, column := range header {
		known[column] = true
	}

	added := make([]string, 0, len(record))
	for column := range record {
		if !known[column] {
			added = append(added, column)
		}
	}
	sort.Strings(added)

	return append(header, added...)
}

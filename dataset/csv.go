package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// row gives header-keyed access to one CSV record.
type row struct {
	columns map[string]int
	fields  []string
}

func (r row) get(name string) string {
	idx, ok := r.columns[name]
	if !ok || idx >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[idx])
}

// asInt coerces a cell to an integer; anything non-numeric becomes 0.
func (r row) asInt(name string) int {
	v := r.get(name)
	if v == "" {
		return 0
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return int(f)
	}
	return 0
}

// asFloat coerces a cell to a float; anything non-numeric becomes NaN.
func (r row) asFloat(name string) float64 {
	if f, err := strconv.ParseFloat(r.get(name), 64); err == nil {
		return f
	}
	return math.NaN()
}

// readTable streams a CSV file row by row. Headers are trimmed and
// lowercased so readers are insensitive to header casing.
func readTable(path string, fn func(row) error) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrMissingSource, path)
		}
		return fmt.Errorf("dataset: open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return fmt.Errorf("dataset: read header of %s: %w", path, err)
	}

	columns := make(map[string]int, len(header))
	for i, h := range header {
		columns[strings.ToLower(strings.TrimSpace(h))] = i
	}

	for {
		fields, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("dataset: read %s: %w", path, err)
		}
		if err := fn(row{columns: columns, fields: fields}); err != nil {
			return err
		}
	}
}

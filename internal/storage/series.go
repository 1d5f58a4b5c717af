package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// Table is a run's series.csv read back into memory.
type Table struct {
	Header []string
	Rows   [][]float64
}

func (t *Table) Index(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Column returns every value of the named column.
func (t *Table) Column(name string) ([]float64, error) {
	idx := t.Index(name)
	if idx < 0 {
		return nil, fmt.Errorf("unknown column %q", name)
	}
	out := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r[idx]
	}
	return out, nil
}

func (s *Store) LoadSeries(runID string) (*Table, error) {
	file, err := os.Open(s.SeriesPath(runID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return &Table{}, nil
	}

	table := &Table{
		Header: records[0],
		Rows:   make([][]float64, 0, len(records)-1),
	}
	for line, record := range records[1:] {
		row := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", seriesFile, line+2, err)
			}
			row[j] = v
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

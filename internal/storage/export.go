package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

type ExportData struct {
	Run     RunMetadata          `json:"run"`
	Columns map[string][]float64 `json:"columns"`
}

// ExportJSON writes a run's metadata and every series column to path, or to
// stdout when path is empty or "-".
func (s *Store) ExportJSON(runID, path string) error {
	if path == "" || path == "-" {
		return s.WriteJSON(runID, os.Stdout)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := s.WriteJSON(runID, file); err != nil {
		return err
	}
	return file.Close()
}

func (s *Store) WriteJSON(runID string, w io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	table, err := s.LoadSeries(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		Run:     *meta,
		Columns: make(map[string][]float64, len(table.Header)),
	}
	for _, name := range table.Header {
		col, err := table.Column(name)
		if err != nil {
			return err
		}
		data.Columns[name] = col
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// CopySeries streams a run's raw CSV to w.
func (s *Store) CopySeries(runID string, w io.Writer) error {
	file, err := os.Open(s.SeriesPath(runID))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return err
	}
	defer file.Close()

	_, err = io.Copy(w, file)
	return err
}

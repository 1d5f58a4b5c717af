package storage

import (
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/san-kum/circsim/internal/circulation"
	"github.com/san-kum/circsim/internal/config"
	"github.com/san-kum/circsim/internal/experiment"
	"github.com/san-kum/circsim/internal/report"
)

const (
	catalogFile = "catalog.db"
	seriesFile  = "series.csv"
	configFile  = "config.yaml"
	timeLayout  = "2006-01-02T15:04:05.000000000Z"
)

var ErrRunNotFound = errors.New("run not found")

// Store keeps one directory per run plus a sqlite catalog at the root.
type Store struct {
	baseDir string
	db      *sqlx.DB
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Init creates the base directory and opens the catalog.
func (s *Store) Init() error {
	if s.db != nil {
		return nil
	}
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return err
	}

	path := filepath.Join(s.baseDir, catalogFile)
	db, err := sqlx.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	s.db = db
	if err := s.migrate(); err != nil {
		db.Close()
		s.db = nil
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		preset TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		heart_rate REAL NOT NULL,
		samples INTEGER NOT NULL,
		integrator TEXT NOT NULL,
		status TEXT NOT NULL,
		iterations INTEGER NOT NULL,
		max_drift REAL NOT NULL,
		indices_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp);
	`
	_, err := s.db.Exec(schema)
	return err
}

type RunMetadata struct {
	ID         string         `json:"id"`
	Preset     string         `json:"preset"`
	Timestamp  time.Time      `json:"timestamp"`
	HeartRate  float64        `json:"heart_rate"`
	Samples    int            `json:"samples"`
	Integrator string         `json:"integrator"`
	Status     string         `json:"status"`
	Iterations int            `json:"iterations"`
	MaxDrift   float64        `json:"max_drift"`
	Indices    report.Indices `json:"indices"`
}

type runRow struct {
	ID          string  `db:"id"`
	Preset      string  `db:"preset"`
	Timestamp   string  `db:"timestamp"`
	HeartRate   float64 `db:"heart_rate"`
	Samples     int     `db:"samples"`
	Integrator  string  `db:"integrator"`
	Status      string  `db:"status"`
	Iterations  int     `db:"iterations"`
	MaxDrift    float64 `db:"max_drift"`
	IndicesJSON string  `db:"indices_json"`
}

func (r runRow) metadata() (RunMetadata, error) {
	ts, err := time.Parse(timeLayout, r.Timestamp)
	if err != nil {
		return RunMetadata{}, fmt.Errorf("run %s: bad timestamp: %w", r.ID, err)
	}
	meta := RunMetadata{
		ID:         r.ID,
		Preset:     r.Preset,
		Timestamp:  ts,
		HeartRate:  r.HeartRate,
		Samples:    r.Samples,
		Integrator: r.Integrator,
		Status:     r.Status,
		Iterations: r.Iterations,
		MaxDrift:   r.MaxDrift,
	}
	if err := json.Unmarshal([]byte(r.IndicesJSON), &meta.Indices); err != nil {
		return RunMetadata{}, fmt.Errorf("run %s: bad indices: %w", r.ID, err)
	}
	return meta, nil
}

// Save writes the run directory and then records the run in the catalog.
func (s *Store) Save(out *experiment.Outcome) (string, error) {
	if s.db == nil {
		return "", fmt.Errorf("store not initialised")
	}

	now := time.Now().UTC()
	name := out.Config.Name
	if name == "" {
		name = "custom"
	}
	runID := fmt.Sprintf("%s_%d", safeName(name), now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	saved := false
	defer func() {
		if !saved {
			os.RemoveAll(runDir)
		}
	}()
	if err := config.Save(filepath.Join(runDir, configFile), out.Config); err != nil {
		return "", err
	}
	if err := writeSeries(filepath.Join(runDir, seriesFile), out); err != nil {
		return "", err
	}

	indices, err := json.Marshal(out.Indices)
	if err != nil {
		return "", err
	}
	row := runRow{
		ID:          runID,
		Preset:      name,
		Timestamp:   now.Format(timeLayout),
		HeartRate:   out.Params.HeartRate,
		Samples:     out.Result.Grid.Len(),
		Integrator:  out.Config.Solver.Integrator,
		Status:      out.Result.Status.String(),
		Iterations:  out.Result.Iterations,
		MaxDrift:    out.Result.Drift.Max(),
		IndicesJSON: string(indices),
	}
	_, err = s.db.NamedExec(`
		INSERT INTO runs (id, preset, timestamp, heart_rate, samples, integrator, status, iterations, max_drift, indices_json)
		VALUES (:id, :preset, :timestamp, :heart_rate, :samples, :integrator, :status, :iterations, :max_drift, :indices_json)`, row)
	if err != nil {
		return "", fmt.Errorf("record run: %w", err)
	}
	saved = true
	return runID, nil
}

// safeName keeps run ids to a single path element.
func safeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
}

// List returns the catalog oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	if s.db == nil {
		return nil, fmt.Errorf("store not initialised")
	}

	var rows []runRow
	if err := s.db.Select(&rows, "SELECT * FROM runs ORDER BY timestamp, id"); err != nil {
		return nil, err
	}

	runs := make([]RunMetadata, 0, len(rows))
	for _, r := range rows {
		meta, err := r.metadata()
		if err != nil {
			return nil, err
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	if s.db == nil {
		return nil, fmt.Errorf("store not initialised")
	}

	var r runRow
	if err := s.db.Get(&r, "SELECT * FROM runs WHERE id = ?", runID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	meta, err := r.metadata()
	if err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadConfig reads back the configuration a run was produced with.
func (s *Store) LoadConfig(runID string) (*config.Config, error) {
	cfg, err := config.Load(filepath.Join(s.baseDir, runID, configFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return cfg, err
}

// SeriesPath is the CSV file holding a run's samples.
func (s *Store) SeriesPath(runID string) string {
	return filepath.Join(s.baseDir, runID, seriesFile)
}

// SeriesHeader lists the CSV columns in order.
func SeriesHeader() []string {
	header := []string{"time"}
	for _, c := range circulation.Compartments() {
		header = append(header, "v_"+c.String())
	}
	for _, c := range circulation.Compartments() {
		header = append(header, "p_"+c.String())
	}
	for v := circulation.Valve(0); v < circulation.NumValves; v++ {
		header = append(header, "valve_"+v.String())
	}
	for p := circulation.Path(0); p < circulation.NumPaths; p++ {
		header = append(header, "q_"+p.String())
	}
	return header
}

func writeSeries(path string, out *experiment.Outcome) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(SeriesHeader()); err != nil {
		return err
	}

	series := out.Result.Series
	row := make([]string, 0, len(SeriesHeader()))
	for i, t := range out.Result.Grid.Times {
		row = row[:0]
		row = append(row, formatFloat(t))
		for _, v := range series.Volumes[i] {
			row = append(row, formatFloat(v))
		}
		for _, p := range series.Pressures[i] {
			row = append(row, formatFloat(p))
		}
		for _, open := range out.Valves[i] {
			if open {
				row = append(row, "1")
			} else {
				row = append(row, "0")
			}
		}
		for _, q := range out.Flows[i] {
			row = append(row, formatFloat(q))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return file.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

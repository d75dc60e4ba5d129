package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/san-kum/epid/internal/config"
	"github.com/san-kum/epid/internal/sim"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
)

// Store keeps one directory per run under baseDir, named by the run's ULID.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID            string             `json:"id"`
	Name          string             `json:"name,omitempty"`
	Timestamp     time.Time          `json:"timestamp"`
	Plant         string             `json:"plant"`
	Integrator    string             `json:"integrator"`
	Mode          string             `json:"mode"`
	SamplePeriod  float64            `json:"sample_period"`
	Duration      float64            `json:"duration"`
	Steps         int                `json:"steps"`
	NaNs          int                `json:"nans"`
	Metrics       map[string]float64 `json:"metrics"`
	Labels        map[string]string  `json:"labels,omitempty"`
	Errors        []string           `json:"errors,omitempty"`
	StateLabels   []string           `json:"state_labels"`
	ControlLabels []string           `json:"control_labels"`
	Config        *config.Config     `json:"config,omitempty"`
}

// Save writes the run and returns its id. meta.ID and meta.Timestamp are
// filled in when empty.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	if meta.ID == "" {
		id := ulid.Make()
		meta.ID = id.String()
		meta.Timestamp = ulid.Time(id.Time())
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	meta.Steps = result.StepsTaken
	for _, err := range result.Errors {
		meta.Errors = append(meta.Errors, err.Error())
	}
	if meta.Metrics == nil {
		meta.Metrics = result.Metrics
	}

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	samples := NewSamples(result, meta.StateLabels, meta.ControlLabels)
	f, err := os.Create(filepath.Join(runDir, samplesFile))
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := samples.ExportCSV(f); err != nil {
		return "", err
	}
	return meta.ID, f.Close()
}

func writeJSON(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return f.Close()
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].ID < runs[j].ID })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadSamples(runID string) (*Samples, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("storage: %s: %w", runID, err)
	}
	if len(records) == 0 {
		return &Samples{}, nil
	}

	out := &Samples{
		Columns: records[0],
		Rows:    make([][]float64, 0, len(records)-1),
	}
	for i, record := range records[1:] {
		row := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("storage: %s row %d: %w", runID, i+1, err)
			}
			row[j] = v
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/numint/internal/experiment"
)

// Store persists integration runs under a base directory: one directory
// per run with metadata.json and history.csv (the refinement trace).
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
	ID        string    `json:"id"`
	Function  string    `json:"function"`
	Timestamp time.Time `json:"timestamp"`
	Lower     float64   `json:"lower"`
	Upper     float64   `json:"upper"`
	Rule      string    `json:"rule"`
	Strategy  string    `json:"strategy"`
	Value     float64   `json:"value"`
	Steps     int       `json:"steps"`
	Exact     float64   `json:"exact,omitempty"`
	HasExact  bool      `json:"has_exact"`
	Failure   string    `json:"failure,omitempty"`
}

// Save persists one result and returns the run ID.
func (s *Store) Save(res *experiment.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", res.Job.Function, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Function:  res.Job.Function,
		Timestamp: time.Now(),
		Lower:     res.Job.Lower,
		Upper:     res.Job.Upper,
		Rule:      res.Job.Rule,
		Strategy:  res.Job.Strategy,
		Value:     res.Value,
		Steps:     res.Steps,
		Exact:     res.Exact,
		HasExact:  res.HasExact,
	}
	if res.Err != nil {
		meta.Failure = res.Err.Error()
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "history.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"level", "step_proxy", "estimate"}); err != nil {
		return "", err
	}
	for i := range res.Estimates {
		row := []string{
			strconv.Itoa(i + 1),
			strconv.FormatFloat(res.Proxies[i], 'g', -1, 64),
			strconv.FormatFloat(res.Estimates[i], 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// List returns the metadata of all stored runs.
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
		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

// Load returns one run's metadata.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadHistory returns one run's refinement trace.
func (s *Store) LoadHistory(runID string) (proxies, estimates []float64, err error) {
	csvPath := filepath.Join(s.baseDir, runID, "history.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return []float64{}, []float64{}, nil
	}

	for _, record := range records[1:] {
		if len(record) < 3 {
			continue
		}
		p, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, nil, err
		}
		e, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, nil, err
		}
		proxies = append(proxies, p)
		estimates = append(estimates, e)
	}
	return proxies, estimates, nil
}

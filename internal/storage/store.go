package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/indigodrigo/rk4-wind-solution/internal/wind"
)

// Store persists solver runs under a base directory, one subdirectory per
// run holding metadata.json plus one CSV per solution branch. All stored
// samples are raw SI; unit conversion happens on export.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type BranchMeta struct {
	Slug      string `json:"slug"`
	Label     string `json:"label"`
	Samples   int    `json:"samples"`
	Truncated bool   `json:"truncated"`
}

type RunMetadata struct {
	ID             string          `json:"id"`
	Timestamp      time.Time       `json:"timestamp"`
	Params         wind.Parameters `json:"params"`
	SoundSpeed     float64         `json:"sound_speed"`
	CriticalRadius float64         `json:"critical_radius"`
	Epsilon        float64         `json:"epsilon"`
	Steps          int             `json:"steps"`
	OuterRadius    float64         `json:"outer_radius"`
	Branches       []BranchMeta    `json:"branches"`
}

// Save writes one run and returns its id.
func (s *Store) Save(m *wind.Model, opts wind.Options, sols []wind.Solution) (string, error) {
	runID := fmt.Sprintf("wind_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:             runID,
		Timestamp:      time.Now(),
		Params:         m.Params,
		SoundSpeed:     m.SoundSpeed(),
		CriticalRadius: m.CriticalRadius(),
		Epsilon:        opts.Epsilon,
		Steps:          opts.Steps,
		OuterRadius:    opts.OuterRadius,
	}

	for _, sol := range sols {
		meta.Branches = append(meta.Branches, BranchMeta{
			Slug:      sol.Branch.Slug(),
			Label:     sol.Branch.String(),
			Samples:   len(sol.Points),
			Truncated: sol.Truncated,
		})
		if err := s.writeBranch(runDir, sol); err != nil {
			return "", err
		}
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	return runID, nil
}

func (s *Store) writeBranch(runDir string, sol wind.Solution) error {
	f, err := os.Create(filepath.Join(runDir, sol.Branch.Slug()+".csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"r", "v"}); err != nil {
		return err
	}
	for _, p := range sol.Points {
		row := []string{
			strconv.FormatFloat(p.R, 'e', 9, 64),
			strconv.FormatFloat(p.V, 'e', 9, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// List returns metadata for every stored run.
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
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSolutions reads every branch CSV of a run back into solutions, in the
// order recorded in the metadata.
func (s *Store) LoadSolutions(runID string) ([]wind.Solution, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	sols := make([]wind.Solution, 0, len(meta.Branches))
	for _, bm := range meta.Branches {
		branch, ok := wind.ParseBranch(bm.Slug)
		if !ok {
			return nil, fmt.Errorf("run %s: unknown branch %q", runID, bm.Slug)
		}

		points, err := s.readBranch(runID, bm.Slug)
		if err != nil {
			return nil, err
		}
		sols = append(sols, wind.Solution{
			Branch:    branch,
			Points:    points,
			Truncated: bm.Truncated,
		})
	}
	return sols, nil
}

func (s *Store) readBranch(runID, slug string) ([]wind.Point, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, slug+".csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return nil, nil
	}

	points := make([]wind.Point, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) < 2 {
			continue
		}
		rv, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			continue
		}
		vv, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			continue
		}
		points = append(points, wind.Point{R: rv, V: vv})
	}
	return points, nil
}

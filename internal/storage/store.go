package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/san-kum/dtqw/internal/analysis"
	"github.com/san-kum/dtqw/internal/experiment"
	"github.com/san-kum/dtqw/internal/walk"
)

const (
	metadataFile     = "metadata.json"
	distributionFile = "distribution.csv"
	stateFile        = "state.msgpack"
	indexFile        = "index.db"
)

var ErrNoIndex = errors.New("storage: run index not open")

type Store struct {
	baseDir string
	index   *Index
	log     zerolog.Logger
}

func New(baseDir string, log zerolog.Logger) *Store {
	return &Store{
		baseDir: baseDir,
		log:     log.With().Str("component", "storage").Logger(),
	}
}

// Init creates the data directory and opens the run index.
func (s *Store) Init() error {
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return err
	}
	ix, err := OpenIndex(filepath.Join(s.baseDir, indexFile))
	if err != nil {
		return fmt.Errorf("open index: %w", err)
	}
	s.index = ix
	return nil
}

func (s *Store) Close() error {
	if s.index == nil {
		return nil
	}
	err := s.index.Close()
	s.index = nil
	return err
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Timestamp  time.Time          `json:"timestamp"`
	N          int                `json:"n"`
	Steps      int                `json:"steps"`
	StepsTaken int                `json:"steps_taken"`
	Theta      float64            `json:"theta"`
	Xi         float64            `json:"xi"`
	Zeta       float64            `json:"zeta"`
	Phi        float64            `json:"phi"`
	Phase      float64            `json:"phase"`
	Boundary   string             `json:"boundary"`
	Strategy   string             `json:"strategy"`
	MatrixFree bool               `json:"matrix_free"`
	Elapsed    float64            `json:"elapsed_seconds"`
	Drift      string             `json:"drift,omitempty"`
	Metrics    map[string]float64 `json:"metrics"`
	Summary    analysis.Summary   `json:"summary"`
}

func newRunID(n int, now time.Time) string {
	return fmt.Sprintf("n%d_%s_%s", n, now.Format("20060102-150405"), uuid.New().String()[:8])
}

// Save writes a run directory with metadata, distribution and final state.
func (s *Store) Save(res *experiment.Result) (string, error) {
	out := res.Outcome
	p := out.Params
	now := time.Now()
	runID := newRunID(p.N, now)
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Timestamp:  now,
		N:          p.N,
		Steps:      p.Steps,
		StepsTaken: out.StepsTaken,
		Theta:      p.Theta,
		Xi:         p.Xi,
		Zeta:       p.Zeta,
		Phi:        p.Phi,
		Phase:      p.Phase,
		Boundary:   p.Boundary.String(),
		Strategy:   p.Strategy.String(),
		MatrixFree: p.MatrixFree,
		Elapsed:    res.Elapsed.Seconds(),
		Metrics:    res.Metrics,
		Summary:    res.Summary,
	}
	if res.Drift != nil {
		meta.Drift = res.Drift.Error()
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, distributionFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()
	if err := WriteDistributionCSV(csvFile, out.Distribution); err != nil {
		return "", err
	}

	if err := saveSnapshot(filepath.Join(runDir, stateFile), out.Final); err != nil {
		return "", err
	}

	if s.index != nil {
		if err := s.index.Add(meta); err != nil {
			s.log.Warn().Err(err).Str("run", runID).Msg("failed to index run")
		}
	}

	s.log.Debug().Str("run", runID).Int("n", p.N).Int("steps", out.StepsTaken).Msg("saved run")
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// List scans the data directory, newest run first.
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
			s.log.Debug().Err(err).Str("dir", entry.Name()).Msg("skipping directory")
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

// Find queries the run index.
func (s *Store) Find(f Filter) ([]IndexEntry, error) {
	if s.index == nil {
		return nil, ErrNoIndex
	}
	return s.index.Query(f)
}

// Reindex rebuilds the index from the run directories on disk.
func (s *Store) Reindex() (int, error) {
	if s.index == nil {
		return 0, ErrNoIndex
	}
	runs, err := s.List()
	if err != nil {
		return 0, err
	}
	for _, meta := range runs {
		if err := s.index.Add(meta); err != nil {
			return 0, err
		}
	}
	s.log.Info().Int("runs", len(runs)).Msg("reindexed")
	return len(runs), nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadDistribution reads a run's distribution.csv back.
func (s *Store) LoadDistribution(runID string) (walk.Distribution, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, distributionFile))
	if err != nil {
		return walk.Distribution{}, err
	}
	defer file.Close()
	return ReadDistributionCSV(file)
}

// LoadState reads the final amplitudes of a run.
func (s *Store) LoadState(runID string) (walk.State, error) {
	return loadSnapshot(filepath.Join(s.baseDir, runID, stateFile))
}

// WriteDistributionCSV writes a position,probability table.
func WriteDistributionCSV(w io.Writer, d walk.Distribution) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"position", "probability"}); err != nil {
		return err
	}
	for _, pp := range d.Pairs() {
		row := []string{
			strconv.Itoa(pp.Position),
			strconv.FormatFloat(pp.Probability, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadDistributionCSV parses the output of [WriteDistributionCSV].
func ReadDistributionCSV(r io.Reader) (walk.Distribution, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return walk.Distribution{}, err
	}
	if len(records) < 2 {
		return walk.Distribution{}, fmt.Errorf("distribution: no rows")
	}
	rows := records[1:]

	l, err := walk.LatticeForSize(len(rows))
	if err != nil {
		return walk.Distribution{}, err
	}

	probs := make([]float64, l.Size())
	for i, rec := range rows {
		if len(rec) != 2 {
			return walk.Distribution{}, fmt.Errorf("distribution: row %d has %d fields", i+1, len(rec))
		}
		pos, err := strconv.Atoi(rec[0])
		if err != nil {
			return walk.Distribution{}, fmt.Errorf("distribution: row %d: %w", i+1, err)
		}
		if !l.Contains(pos) {
			return walk.Distribution{}, fmt.Errorf("distribution: position %d outside [-%d, %d]", pos, l.N, l.N)
		}
		prob, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return walk.Distribution{}, fmt.Errorf("distribution: row %d: %w", i+1, err)
		}
		probs[l.Site(pos)] = prob
	}

	return walk.Distribution{Lattice: l, Probs: probs}, nil
}

package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/dtqw/internal/walk"
)

type ExportData struct {
	Run          RunMetadata                `json:"run"`
	Distribution []walk.PositionProbability `json:"distribution"`
}

// ExportJSON writes a run's metadata and distribution as one JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	d, err := s.LoadDistribution(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Run: *meta, Distribution: d.Pairs()})
}

// ExportCSV writes a run's distribution table.
func (s *Store) ExportCSV(w io.Writer, runID string) error {
	d, err := s.LoadDistribution(runID)
	if err != nil {
		return err
	}
	return WriteDistributionCSV(w, d)
}

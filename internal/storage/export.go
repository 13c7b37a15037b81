package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/chaossim/internal/dynamo"
)

type ExportData struct {
	RunMetadata
	Times  []float64    `json:"times"`
	States [][3]float64 `json:"states"`
}

// WriteJSON encodes a run and its trajectory as indented JSON.
func WriteJSON(w io.Writer, meta *RunMetadata, states []dynamo.State, times []float64) error {
	data := ExportData{
		RunMetadata: *meta,
		Times:       times,
		States:      make([][3]float64, len(states)),
	}
	for i, s := range states {
		data.States[i] = s
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportJSON loads a stored run and writes it to w.
func (s *Store) ExportJSON(runID string, w io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	states, times, err := s.LoadStates(runID)
	if err != nil {
		return err
	}
	return WriteJSON(w, meta, states, times)
}

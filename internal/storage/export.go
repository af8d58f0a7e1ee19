package storage

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/san-kum/holesim/internal/engine"
	"github.com/san-kum/holesim/internal/experiment"
)

type ExportData struct {
	Meta   SessionMetadata  `json:"meta"`
	Steps  int              `json:"steps"`
	Trace  experiment.Trace `json:"trace"`
	Events []engine.Event   `json:"events"`
}

// ExportJSON writes a stored session as one JSON document to w.
func (s *Store) ExportJSON(w io.Writer, id string) error {
	meta, err := s.Load(id)
	if err != nil {
		return err
	}
	trace, err := s.LoadTrace(id)
	if err != nil {
		return err
	}
	events, err := s.LoadEvents(id)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Meta: *meta, Steps: len(trace), Trace: trace, Events: events})
}

// ExportJSONFile is ExportJSON into a new file at path.
func (s *Store) ExportJSONFile(path, id string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return s.ExportJSON(f, id)
}

// ExportCSV copies the stored trace to w.
func (s *Store) ExportCSV(w io.Writer, id string) error {
	f, err := os.Open(filepath.Join(s.baseDir, id, traceFile))
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}

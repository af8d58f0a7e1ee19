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

	"github.com/google/uuid"
	"github.com/san-kum/holesim/internal/dynamo"
	"github.com/san-kum/holesim/internal/engine"
	"github.com/san-kum/holesim/internal/experiment"
)

const (
	metadataFile = "metadata.json"
	traceFile    = "trace.csv"
	eventsFile   = "events.json"
)

var traceHeader = []string{"time", "x", "y", "vx", "vy", "phase", "alpha", "scale"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// SessionMetadata describes a recorded session.
type SessionMetadata struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Layout     string             `json:"layout"`
	Gesture    string             `json:"gesture"`
	Integrator string             `json:"integrator"`
	FrameRate  int                `json:"frame_rate"`
	Duration   float64            `json:"duration"`
	Frames     int                `json:"frames"`
	Captures   int                `json:"captures"`
	Surface    dynamo.Vec2        `json:"surface"`
	BallSize   dynamo.Vec2        `json:"ball_size"`
	Holes      []dynamo.Rect      `json:"holes"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes meta, the trace and the events into a new session directory
// and returns its id. A random id is assigned when meta.ID is empty.
func (s *Store) Save(meta SessionMetadata, result *experiment.Result) (string, error) {
	if meta.ID == "" {
		meta.ID = uuid.NewString()
	}
	meta.Timestamp = time.Now()
	meta.Frames = result.Frames
	meta.Captures = result.Captures
	meta.Duration = result.Duration
	meta.Metrics = result.Metrics

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, eventsFile), result.Events); err != nil {
		return "", err
	}
	if err := writeTrace(filepath.Join(runDir, traceFile), result.Trace); err != nil {
		return "", err
	}
	return meta.ID, nil
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

func writeTrace(path string, trace experiment.Trace) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(traceHeader); err != nil {
		return err
	}
	for _, smp := range trace {
		row := []string{
			formatFloat(smp.Time),
			formatFloat(smp.X),
			formatFloat(smp.Y),
			formatFloat(smp.VX),
			formatFloat(smp.VY),
			smp.Phase.String(),
			formatFloat(smp.Alpha),
			formatFloat(smp.Scale),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// List returns every readable session, newest first.
func (s *Store) List() ([]SessionMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []SessionMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]SessionMetadata, 0)
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(id string) (*SessionMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta SessionMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadEvents(id string) ([]engine.Event, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, eventsFile))
	if err != nil {
		return nil, err
	}
	var events []engine.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// LoadTrace reads the per-frame trace. Malformed rows are skipped.
func (s *Store) LoadTrace(id string) (experiment.Trace, error) {
	file, err := os.Open(filepath.Join(s.baseDir, id, traceFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return experiment.Trace{}, nil
	}

	trace := make(experiment.Trace, 0, len(records)-1)
	for _, record := range records[1:] {
		smp, err := parseSample(record)
		if err != nil {
			continue
		}
		trace = append(trace, smp)
	}
	return trace, nil
}

func parseSample(record []string) (experiment.Sample, error) {
	if len(record) != len(traceHeader) {
		return experiment.Sample{}, fmt.Errorf("want %d fields, got %d", len(traceHeader), len(record))
	}
	var vals [7]float64
	idx := 0
	for i, field := range record {
		if i == 5 {
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return experiment.Sample{}, err
		}
		vals[idx] = v
		idx++
	}
	phase, ok := engine.ParsePhase(record[5])
	if !ok {
		return experiment.Sample{}, fmt.Errorf("unknown phase %q", record[5])
	}
	return experiment.Sample{
		Time:  vals[0],
		X:     vals[1],
		Y:     vals[2],
		VX:    vals[3],
		VY:    vals[4],
		Phase: phase,
		Alpha: vals[5],
		Scale: vals[6],
	}, nil
}

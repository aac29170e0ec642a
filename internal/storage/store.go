package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/sim"
)

const (
	metadataFile = "metadata.json"
	statesFile   = "states.csv"
)

type Store struct {
	baseDir string
	log     *log.Logger
}

func New(baseDir string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{baseDir: baseDir, log: logger}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type BodyMeta struct {
	Name   string  `json:"name"`
	Mass   float64 `json:"mass"`
	Radius float64 `json:"radius"`
	Color  string  `json:"color"`
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Timestamp   time.Time          `json:"timestamp"`
	Gravity     float64            `json:"gravity"`
	StepScale   float64            `json:"step_scale"`
	Ticks       int                `json:"ticks"`
	Separation  string             `json:"separation,omitempty"`
	Viewport    dynamo.Viewport    `json:"viewport"`
	Bodies      []BodyMeta         `json:"bodies"`
	Metrics     map[string]float64 `json:"metrics"`
	EnergyDrift float64            `json:"energy_drift"`
	Contacts    int                `json:"contacts"`
	Errors      []string           `json:"errors,omitempty"`
}

// BodiesMeta describes the static properties of a body set.
func BodiesMeta(bodies []dynamo.BodyState) []BodyMeta {
	out := make([]BodyMeta, len(bodies))
	for i, b := range bodies {
		c, _ := colorful.MakeColor(b.Color)
		out[i] = BodyMeta{Name: b.Name, Mass: b.Mass, Radius: b.Radius, Color: c.Hex()}
	}
	return out
}

// Save writes a run directory and returns its id. Result metrics, drift,
// contacts and errors are copied into meta before it is written.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", meta.Name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Metrics = result.Metrics
	meta.EnergyDrift = result.EnergyDrift
	meta.Contacts = result.Contacts
	for _, err := range result.Errors {
		meta.Errors = append(meta.Errors, err.Error())
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeFrames(filepath.Join(runDir, statesFile), result.Frames); err != nil {
		return "", err
	}

	s.log.Debug("saved run", "id", runID, "frames", len(result.Frames), "dir", runDir)
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

func writeFrames(path string, frames []sim.Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	n := 0
	if len(frames) > 0 {
		n = len(frames[0].Positions)
	}

	header := []string{"tick", "time"}
	for i := range n {
		header = append(header,
			fmt.Sprintf("x%d", i), fmt.Sprintf("y%d", i),
			fmt.Sprintf("vx%d", i), fmt.Sprintf("vy%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, fr := range frames {
		row := []string{strconv.Itoa(fr.Tick), formatFloat(fr.Time)}
		for i := range fr.Positions {
			row = append(row,
				formatFloat(fr.Positions[i].X), formatFloat(fr.Positions[i].Y),
				formatFloat(fr.Velocities[i].X), formatFloat(fr.Velocities[i].Y))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// List returns the metadata of every readable run, newest first.
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
			s.log.Warn("skipping run", "dir", entry.Name(), "err", err)
			continue
		}
		runs = append(runs, *meta)
	}

	slices.SortFunc(runs, func(a, b RunMetadata) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadFrames reads the recorded kinematics of a run.
func (s *Store) LoadFrames(runID string) ([]sim.Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, statesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	if len(records) < 2 {
		return []sim.Frame{}, nil
	}

	n := (len(records[0]) - 2) / 4
	frames := make([]sim.Frame, 0, len(records)-1)
	for line, rec := range records[1:] {
		fr, err := parseFrame(rec, n)
		if err != nil {
			return nil, fmt.Errorf("run %s line %d: %w", runID, line+2, err)
		}
		frames = append(frames, fr)
	}
	return frames, nil
}

func parseFrame(rec []string, n int) (sim.Frame, error) {
	tick, err := strconv.Atoi(rec[0])
	if err != nil {
		return sim.Frame{}, err
	}
	t, err := strconv.ParseFloat(rec[1], 64)
	if err != nil {
		return sim.Frame{}, err
	}

	fr := sim.Frame{
		Tick:       tick,
		Time:       t,
		Positions:  make([]dynamo.Vec2, n),
		Velocities: make([]dynamo.Vec2, n),
	}
	vals := make([]float64, 4)
	for i := range n {
		for k := range vals {
			vals[k], err = strconv.ParseFloat(rec[2+4*i+k], 64)
			if err != nil {
				return sim.Frame{}, err
			}
		}
		fr.Positions[i] = dynamo.V(vals[0], vals[1])
		fr.Velocities[i] = dynamo.V(vals[2], vals[3])
	}
	return fr, nil
}

type ExportData struct {
	Metadata RunMetadata `json:"metadata"`
	Frames   []sim.Frame `json:"frames"`
}

// ExportJSON writes a stored run, metadata and frames, as indented JSON.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Metadata: *meta, Frames: frames})
}

// ExportCSV copies the raw states file of a run.
func (s *Store) ExportCSV(w io.Writer, runID string) error {
	f, err := os.Open(filepath.Join(s.baseDir, runID, statesFile))
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(w, f)
	return err
}

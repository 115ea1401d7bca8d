package storage

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/facette/natsort"
	"github.com/san-kum/bethesim/internal/physics"
	"github.com/san-kum/bethesim/internal/sweep"
)

const metadataFile = "metadata.json"

var ErrNoCurve = errors.New("storage: curve not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string {
	return s.baseDir
}

// CurveFile is the file name of a variant's text output. The shell variant
// keeps its historical "layer" name.
func CurveFile(v physics.Variant) string {
	if v == physics.ShellCorrection {
		return "fstopping_layer_corrections.txt"
	}
	return "fstopping_" + v.String() + ".txt"
}

func (s *Store) CurvePath(v physics.Variant) string {
	return filepath.Join(s.baseDir, CurveFile(v))
}

// SaveCurve writes one "energy<TAB>dE/dx" line per point and returns the path.
func (s *Store) SaveCurve(v physics.Variant, curve sweep.Curve) (string, error) {
	path := s.CurvePath(v)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}

	if err := WriteCurve(f, curve); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}

func (s *Store) LoadCurve(v physics.Variant) (sweep.Curve, error) {
	f, err := os.Open(s.CurvePath(v))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoCurve, v)
		}
		return nil, err
	}
	defer f.Close()

	return ReadCurve(f)
}

// WriteCurve formats energies with one decimal and stopping powers in the
// shortest exponential form that parses back to the same float64.
func WriteCurve(w io.Writer, curve sweep.Curve) error {
	bw := bufio.NewWriter(w)
	for _, p := range curve {
		if _, err := fmt.Fprintf(bw, "%.1f\t%s\n", p.EnergyMeV, strconv.FormatFloat(p.StoppingPower, 'e', -1, 64)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func ReadCurve(r io.Reader) (sweep.Curve, error) {
	var curve sweep.Curve

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		if len(parts) != 2 {
			return nil, fmt.Errorf("line %d: expected 2 columns, got %d", line, len(parts))
		}

		e, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		sp, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		curve = append(curve, sweep.EnergyPoint{EnergyMeV: e, StoppingPower: sp})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return curve, nil
}

type VariantRecord struct {
	Variant string             `json:"variant"`
	File    string             `json:"file"`
	Plot    string             `json:"plot,omitempty"`
	Metrics map[string]float64 `json:"metrics"`
}

type RunMetadata struct {
	ID         string                       `json:"id"`
	Timestamp  time.Time                    `json:"timestamp"`
	Parameters physics.CorrectionParameters `json:"parameters"`
	Points     int                          `json:"points"`
	StepMeV    float64                      `json:"step_mev"`
	Variants   []VariantRecord              `json:"variants"`
}

// NewRunMetadata stamps a fresh record for a run started now.
func NewRunMetadata(p physics.CorrectionParameters, cfg sweep.Config) *RunMetadata {
	now := time.Now()
	return &RunMetadata{
		ID:         fmt.Sprintf("run_%d", now.Unix()),
		Timestamp:  now,
		Parameters: p,
		Points:     cfg.Points,
		StepMeV:    cfg.StepMeV,
	}
}

// MarshalJSON omits metrics that JSON cannot represent (NaN, Inf).
func (r VariantRecord) MarshalJSON() ([]byte, error) {
	type record VariantRecord
	out := record(r)
	out.Metrics = make(map[string]float64, len(r.Metrics))
	for name, v := range r.Metrics {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out.Metrics[name] = v
	}
	return json.Marshal(out)
}

// SaveMetadata writes metadata.json through a temporary file so a failed
// write never replaces a previous record.
func (s *Store) SaveMetadata(meta *RunMetadata) error {
	f, err := os.CreateTemp(s.baseDir, ".metadata-*.json")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := f.Chmod(0644); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode metadata: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, filepath.Join(s.baseDir, metadataFile)); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

func (s *Store) Load() (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

type Entry struct {
	Name string
	Size int64
}

// List returns the regular files of the output directory in natural order.
// A missing directory yields an empty list.
func (s *Store) List() ([]Entry, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, err
	}

	names := make([]string, 0, len(entries))
	sizes := make(map[string]int64, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		names = append(names, entry.Name())
		sizes[entry.Name()] = info.Size()
	}
	natsort.Sort(names)

	out := make([]Entry, len(names))
	for i, name := range names {
		out[i] = Entry{Name: name, Size: sizes[name]}
	}
	return out, nil
}

// LoadAll reads every variant curve present, in variant order.
func (s *Store) LoadAll() ([]sweep.Result, error) {
	var out []sweep.Result
	for _, v := range physics.Variants() {
		curve, err := s.LoadCurve(v)
		if errors.Is(err, ErrNoCurve) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, sweep.Result{Variant: v, Curve: curve})
	}
	return out, nil
}

package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/linesaver/internal/config"
	"github.com/san-kum/linesaver/internal/motion"
	"github.com/san-kum/linesaver/internal/session"
)

var ErrNoResult = errors.New("storage: nothing to save")

const (
	metadataFile = "metadata.json"
	linesFile    = "lines.csv"
)

var linesHeader = []string{"frame", "hue", "x0", "y0", "x1", "y1", "lit"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type SessionMetadata struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Timestamp    time.Time          `json:"timestamp"`
	Seed         int64              `json:"seed"`
	Width        int                `json:"width"`
	Height       int                `json:"height"`
	Lines        int                `json:"lines"`
	Hues         int                `json:"hues"`
	Shades       int                `json:"shades"`
	AverageSpeed int                `json:"average_speed"`
	Frames       int                `json:"frames"`
	FinalLit     int                `json:"final_lit"`
	MeanLit      float64            `json:"mean_lit"`
	ElapsedMS    int64              `json:"elapsed_ms"`
	Metrics      map[string]float64 `json:"metrics"`
}

// Config rebuilds the tunables the session ran with.
func (m *SessionMetadata) Config() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Width, cfg.Height = m.Width, m.Height
	cfg.Lines = m.Lines
	cfg.Hues, cfg.Shades = m.Hues, m.Shades
	cfg.AverageSpeed = m.AverageSpeed
	cfg.Seed = m.Seed
	return cfg
}

func newMetadata(id, name string, cfg *config.Config, result *session.Result) SessionMetadata {
	meta := SessionMetadata{
		ID:           id,
		Name:         name,
		Timestamp:    time.Now(),
		Seed:         result.Seed,
		Width:        cfg.Width,
		Height:       cfg.Height,
		Lines:        cfg.Lines,
		Hues:         cfg.Hues,
		Shades:       cfg.Shades,
		AverageSpeed: cfg.AverageSpeed,
		Frames:       len(result.Frames),
		FinalLit:     result.Stats.Lit,
		ElapsedMS:    result.Elapsed.Milliseconds(),
		Metrics:      result.Metrics,
	}
	if n := len(result.Frames); n > 0 {
		sum := 0
		for _, f := range result.Frames {
			sum += f.Lit
		}
		meta.MeanLit = float64(sum) / float64(n)
	}
	return meta
}

// Save writes a session directory holding metadata.json and lines.csv, one
// row per frame, and returns its id. A directory left incomplete by a
// failed write is removed.
func (s *Store) Save(name string, cfg *config.Config, result *session.Result) (id string, err error) {
	if result == nil || len(result.Frames) == 0 {
		return "", ErrNoResult
	}
	id = fmt.Sprintf("%s_%d_%d", name, result.Seed, time.Now().Unix())
	dir := filepath.Join(s.baseDir, id)

	_, statErr := os.Stat(dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	if os.IsNotExist(statErr) {
		defer func() {
			if err != nil {
				os.RemoveAll(dir)
			}
		}()
	}

	if err := writeMetadata(filepath.Join(dir, metadataFile), newMetadata(id, name, cfg, result)); err != nil {
		return "", err
	}
	if err := writeLines(filepath.Join(dir, linesFile), result.Frames); err != nil {
		return "", err
	}
	return id, nil
}

func writeMetadata(path string, meta SessionMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeLines(path string, frames []session.Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(linesHeader); err != nil {
		f.Close()
		return err
	}
	for _, fr := range frames {
		row := []string{
			strconv.Itoa(fr.Index),
			strconv.Itoa(fr.Line.Hue),
			strconv.Itoa(fr.Line.Beginning.X),
			strconv.Itoa(fr.Line.Beginning.Y),
			strconv.Itoa(fr.Line.End.X),
			strconv.Itoa(fr.Line.End.Y),
			strconv.Itoa(fr.Lit),
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// List returns every readable session, oldest first. Directories without
// valid metadata are skipped.
func (s *Store) List() ([]SessionMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []SessionMetadata{}, nil
		}
		return nil, err
	}

	sessions := make([]SessionMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		sessions = append(sessions, *meta)
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Timestamp.Before(sessions[j].Timestamp)
	})
	return sessions, nil
}

func (s *Store) Load(id string) (*SessionMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta SessionMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("session %s: %w", id, err)
	}

	return &meta, nil
}

// LoadLines reads back the per-frame trajectory of a session.
func (s *Store) LoadLines(id string) ([]session.Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, id, linesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(linesHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", id, err)
	}
	if len(records) < 2 {
		return []session.Frame{}, nil
	}

	frames := make([]session.Frame, 0, len(records)-1)
	for i, record := range records[1:] {
		var v [7]int
		for j, field := range record {
			n, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("session %s: row %d: %w", id, i+1, err)
			}
			v[j] = n
		}
		frames = append(frames, session.Frame{
			Index: v[0],
			Line: motion.Line{
				Hue:       v[1],
				Beginning: image.Pt(v[2], v[3]),
				End:       image.Pt(v[4], v[5]),
			},
			Lit: v[6],
		})
	}

	return frames, nil
}

// Lit returns the lit pixel series of a stored session.
func Lit(frames []session.Frame) []float64 {
	out := make([]float64, len(frames))
	for i, f := range frames {
		out[i] = float64(f.Lit)
	}
	return out
}

package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/cubesim/internal/cube"
)

var ErrNotFound = errors.New("snapshot not found")

const (
	metadataFile = "metadata.json"
	imageFile    = "image.png"
	posesFile    = "cubies.csv"
)

// PNGWriter is satisfied by a gg drawing context.
type PNGWriter interface {
	SavePNG(path string) error
}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type SnapshotMetadata struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Preset    string             `json:"preset,omitempty"`
	Turns     []string           `json:"turns"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	Scale     float32            `json:"scale"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
}

// Save writes a new snapshot directory holding the metadata, the rendered
// image and one pose row per cubie. It returns the snapshot ID.
func (s *Store) Save(meta SnapshotMetadata, img PNGWriter, store *cube.Store) (string, error) {
	now := time.Now()
	id := fmt.Sprintf("snapshot_%d", now.UnixNano())
	dir := filepath.Join(s.baseDir, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	meta.ID = id
	meta.Timestamp = now
	meta.Scale = store.Scale()
	if meta.Turns == nil {
		meta.Turns = []string{}
	}

	metaFile, err := os.Create(filepath.Join(dir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if img != nil {
		if err := img.SavePNG(filepath.Join(dir, imageFile)); err != nil {
			return "", fmt.Errorf("write image: %w", err)
		}
	}

	if err := writePoses(filepath.Join(dir, posesFile), store); err != nil {
		return "", err
	}
	return id, nil
}

func writePoses(path string, store *cube.Store) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"slot", "x", "y", "z"}
	for i := 0; i < 9; i++ {
		header = append(header, fmt.Sprintf("r%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, c := range store.All() {
		row := []string{strconv.Itoa(i)}
		for _, v := range c.Position {
			row = append(row, strconv.FormatFloat(float64(v), 'f', 6, 32))
		}
		for _, v := range c.Orientation.Mat3() {
			row = append(row, strconv.FormatFloat(float64(v), 'f', 6, 32))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable snapshot, oldest first.
func (s *Store) List() ([]SnapshotMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []SnapshotMetadata{}, nil
		}
		return nil, err
	}

	snaps := make([]SnapshotMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		snaps = append(snaps, *meta)
	}
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].Timestamp.Before(snaps[j].Timestamp) })
	return snaps, nil
}

func (s *Store) Load(id string) (*SnapshotMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
		}
		return nil, err
	}

	var meta SnapshotMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}
	return &meta, nil
}

// ImagePath is where the snapshot's PNG lives.
func (s *Store) ImagePath(id string) string {
	return filepath.Join(s.baseDir, id, imageFile)
}

// Pose is one cubie row of a snapshot.
type Pose struct {
	Slot        int
	Position    [3]float64
	Orientation [9]float64
}

// LoadPoses reads back the per-cubie rows of a snapshot for inspection.
func (s *Store) LoadPoses(id string) ([]Pose, error) {
	file, err := os.Open(filepath.Join(s.baseDir, id, posesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []Pose{}, nil
	}

	poses := make([]Pose, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != 13 {
			continue
		}
		var p Pose
		if p.Slot, err = strconv.Atoi(record[0]); err != nil {
			continue
		}
		vals := make([]float64, 0, 12)
		for _, field := range record[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				break
			}
			vals = append(vals, v)
		}
		if len(vals) != 12 {
			continue
		}
		copy(p.Position[:], vals[:3])
		copy(p.Orientation[:], vals[3:])
		poses = append(poses, p)
	}
	return poses, nil
}

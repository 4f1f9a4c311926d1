package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/cubesim/internal/camera"
	"github.com/san-kum/cubesim/internal/cube"
	"github.com/san-kum/cubesim/internal/render"
)

type fakePNG struct{ calls int }

func (f *fakePNG) SavePNG(path string) error {
	f.calls++
	return os.WriteFile(path, []byte("png"), 0644)
}

func TestSaveAndLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}
	s := cube.New(1)
	cube.NewTurner(s).TurnFace(cube.Front)
	img := &fakePNG{}

	id, err := st.Save(SnapshotMetadata{Turns: []string{"front"}, Width: 10, Height: 20}, img, s)
	if err != nil {
		t.Fatal(err)
	}
	if img.calls != 1 {
		t.Errorf("expected one PNG write, got %d", img.calls)
	}
	if _, err := os.Stat(st.ImagePath(id)); err != nil {
		t.Errorf("image missing: %v", err)
	}

	meta, err := st.Load(id)
	if err != nil {
		t.Fatal(err)
	}
	if meta.ID != id || meta.Width != 10 || meta.Height != 20 || meta.Scale != 1 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if len(meta.Turns) != 1 || meta.Turns[0] != "front" {
		t.Errorf("turns %v", meta.Turns)
	}
}

func TestLoadPoses(t *testing.T) {
	st := New(t.TempDir())
	s := cube.New(2)
	id, err := st.Save(SnapshotMetadata{}, nil, s)
	if err != nil {
		t.Fatal(err)
	}
	poses, err := st.LoadPoses(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(poses) != cube.Size {
		t.Fatalf("expected %d poses, got %d", cube.Size, len(poses))
	}
	last := poses[cube.Size-1]
	if last.Slot != 26 || last.Position != [3]float64{2, 2, 2} {
		t.Errorf("unexpected last pose %+v", last)
	}
	if last.Orientation != [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1} {
		t.Errorf("solved orientation stored as %v", last.Orientation)
	}
}

func TestList(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "snaps"))
	snaps, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 0 {
		t.Fatalf("expected empty archive, got %d", len(snaps))
	}

	s := cube.New(1)
	first, _ := st.Save(SnapshotMetadata{Preset: "classic"}, nil, s)
	second, _ := st.Save(SnapshotMetadata{Preset: "ortho"}, nil, s)
	if err := os.MkdirAll(filepath.Join(st.baseDir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	snaps, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(snaps))
	}
	if snaps[0].ID != first || snaps[1].ID != second {
		t.Errorf("unexpected order %s, %s", snaps[0].ID, snaps[1].ID)
	}
}

func TestLoadNotFound(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := st.LoadPoses("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveRenderedSnapshot(t *testing.T) {
	st := New(t.TempDir())
	s := cube.New(1)
	cam := camera.New(64, 64, camera.DefaultParams())
	dc := render.Snapshot(s, cam, render.DefaultBackground)
	defer dc.Close()

	id, err := st.Save(SnapshotMetadata{Width: 64, Height: 64}, dc, s)
	if err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(st.ImagePath(id))
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("empty PNG")
	}
}

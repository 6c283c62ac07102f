package telemetry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/flocking/config"
	"github.com/pthm-cable/flocking/geom"
	"github.com/pthm-cable/flocking/systems"
)

func TestNilOutputManager(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v; want nil, nil", om, err)
	}

	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Error(err)
	}
	if err := om.WriteCaptures([]CaptureEvent{{}}); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
	if om.Dir() != "" {
		t.Error("nil manager should have empty dir")
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	for _, end := range []int32{200, 400} {
		if err := om.WriteTelemetry(WindowStats{WindowEndTick: end, PreyCount: 20, Polarization: 0.5}); err != nil {
			t.Fatal(err)
		}
		if err := om.WritePerf(PerfStats{}, end); err != nil {
			t.Fatal(err)
		}
	}

	captures := []CaptureEvent{
		NewCaptureEvent(17, systems.Capture{PreyID: 3, PredatorID: 21, Pos: geom.Vec2{X: 1.5, Y: 2}}),
		NewCaptureEvent(17, systems.Capture{PreyID: 8, PredatorID: 22, Pos: geom.Vec2{X: 4, Y: 5}}),
	}
	if err := om.WriteCaptures(captures); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteCaptures(nil); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteBookmark(Bookmark{Type: BookmarkPreyExtinct, Tick: 400, Description: "gone"}); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(config.MustDefaults()); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	var windows []WindowStats
	readCSV(t, filepath.Join(dir, "telemetry.csv"), &windows)
	if len(windows) != 2 || windows[1].WindowEndTick != 400 || windows[0].PreyCount != 20 {
		t.Errorf("telemetry rows = %+v", windows)
	}

	var perf []PerfStatsCSV
	readCSV(t, filepath.Join(dir, "perf.csv"), &perf)
	if len(perf) != 2 {
		t.Errorf("perf rows = %d, want 2", len(perf))
	}

	var got []CaptureEvent
	readCSV(t, filepath.Join(dir, "captures.csv"), &got)
	if len(got) != 2 || got[0] != captures[0] || got[1] != captures[1] {
		t.Errorf("captures = %+v, want %+v", got, captures)
	}

	var bookmarks []Bookmark
	readCSV(t, filepath.Join(dir, "bookmarks.csv"), &bookmarks)
	if len(bookmarks) != 1 || bookmarks[0].Type != BookmarkPreyExtinct {
		t.Errorf("bookmarks = %+v", bookmarks)
	}

	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("written config does not load: %v", err)
	}
}

func readCSV(t *testing.T, path string, out any) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	if err := gocsv.UnmarshalFile(f, out); err != nil {
		t.Fatalf("unmarshal %s: %v", path, err)
	}
}

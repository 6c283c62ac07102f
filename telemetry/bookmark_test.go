package telemetry

import "testing"

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_CaptureSpike(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{
			WindowEndTick: int32(i * 200),
			PreyCount:     20,
			Captures:      1,
			CaptureRate:   5,
		})
	}

	bookmarks := bd.Check(WindowStats{
		WindowEndTick: 1200,
		PreyCount:     20,
		Captures:      4,
		CaptureRate:   20,
	})
	if !hasBookmark(bookmarks, BookmarkCaptureSpike) {
		t.Error("expected capture_spike bookmark")
	}
}

func TestBookmarkDetector_NoSpikeWithoutHistory(t *testing.T) {
	bd := NewBookmarkDetector(10)
	bookmarks := bd.Check(WindowStats{Captures: 10, CaptureRate: 50, PreyCount: 20})
	if hasBookmark(bookmarks, BookmarkCaptureSpike) {
		t.Error("capture spike needs history")
	}
}

func TestBookmarkDetector_FlockFormedOnce(t *testing.T) {
	bd := NewBookmarkDetector(10)

	bd.Check(WindowStats{PreyCount: 20, Polarization: 0.2})
	if !hasBookmark(bd.Check(WindowStats{PreyCount: 20, Polarization: 0.95}), BookmarkFlockFormed) {
		t.Fatal("expected flock_formed bookmark")
	}
	if hasBookmark(bd.Check(WindowStats{PreyCount: 20, Polarization: 0.97}), BookmarkFlockFormed) {
		t.Error("flock_formed should not repeat while the flock stays aligned")
	}

	bd.Check(WindowStats{PreyCount: 20, Polarization: 0.3})
	if !hasBookmark(bd.Check(WindowStats{PreyCount: 20, Polarization: 0.92}), BookmarkFlockFormed) {
		t.Error("flock_formed should re-arm after the flock scatters")
	}
}

func TestBookmarkDetector_PreyCrash(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 3; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i * 200), PreyCount: 20, PredCount: 2})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 800, PreyCount: 10, PredCount: 2})
	if !hasBookmark(bookmarks, BookmarkPreyCrash) {
		t.Error("expected prey_crash bookmark")
	}
}

func TestBookmarkDetector_PreyExtinct(t *testing.T) {
	bd := NewBookmarkDetector(10)

	if hasBookmark(bd.Check(WindowStats{PreyCount: 0, PredCount: 2}), BookmarkPreyExtinct) {
		t.Error("a world that never had prey is not an extinction")
	}

	bd.Check(WindowStats{PreyCount: 5, PredCount: 2})
	if !hasBookmark(bd.Check(WindowStats{PreyCount: 0, PredCount: 2}), BookmarkPreyExtinct) {
		t.Fatal("expected prey_extinct bookmark")
	}
	if hasBookmark(bd.Check(WindowStats{PreyCount: 0, PredCount: 2}), BookmarkPreyExtinct) {
		t.Error("prey_extinct should trigger once")
	}

	bd.Reset()
	bd.Check(WindowStats{PreyCount: 5})
	if !hasBookmark(bd.Check(WindowStats{PreyCount: 0}), BookmarkPreyExtinct) {
		t.Error("prey_extinct should trigger again after reset")
	}
}

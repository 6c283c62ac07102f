package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkCaptureSpike BookmarkType = "capture_spike"
	BookmarkFlockFormed  BookmarkType = "flock_formed"
	BookmarkPreyCrash    BookmarkType = "prey_crash"
	BookmarkPreyExtinct  BookmarkType = "prey_extinct"
)

// Polarization thresholds for flock formation. The detector re-arms once the
// flock falls back below polarizationLow.
const (
	polarizationHigh = 0.9
	polarizationLow  = 0.5
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int32        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in the simulation.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	recentPreyPeak int
	flockArmed     bool
	extinctSeen    bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
		flockArmed:  true,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	for _, check := range []func(WindowStats) *Bookmark{
		bd.checkCaptureSpike,
		bd.checkFlockFormed,
		bd.checkPreyCrash,
		bd.checkPreyExtinct,
	} {
		if b := check(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	bd.addToHistory(stats)
	if stats.PreyCount > bd.recentPreyPeak {
		bd.recentPreyPeak = stats.PreyCount
	}

	return bookmarks
}

// Reset forgets all history, e.g. after a relaunch.
func (bd *BookmarkDetector) Reset() {
	*bd = *NewBookmarkDetector(bd.historySize)
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkCaptureSpike(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total float64
	for _, h := range history {
		total += h.CaptureRate
	}
	avg := total / float64(len(history))
	if avg == 0 {
		return nil
	}

	if stats.CaptureRate > avg*2 && stats.Captures >= 3 {
		return &Bookmark{
			Type:        BookmarkCaptureSpike,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Capture rate %.2f is %.1fx average (%.2f)", stats.CaptureRate, stats.CaptureRate/avg, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkFlockFormed(stats WindowStats) *Bookmark {
	if stats.Polarization < polarizationLow {
		bd.flockArmed = true
		return nil
	}
	if !bd.flockArmed || stats.Polarization < polarizationHigh || stats.PreyCount < 2 {
		return nil
	}

	bd.flockArmed = false
	return &Bookmark{
		Type:        BookmarkFlockFormed,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Flock aligned with polarization %.2f across %d prey", stats.Polarization, stats.PreyCount),
	}
}

func (bd *BookmarkDetector) checkPreyCrash(stats WindowStats) *Bookmark {
	if bd.recentPreyPeak == 0 || stats.PreyCount == 0 {
		return nil
	}

	drop := 1.0 - float64(stats.PreyCount)/float64(bd.recentPreyPeak)
	if drop > 0.30 && stats.PreyCount <= bd.recentPreyPeak-3 {
		oldPeak := bd.recentPreyPeak
		bd.recentPreyPeak = stats.PreyCount

		return &Bookmark{
			Type:        BookmarkPreyCrash,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Prey crashed %.0f%% from peak %d to %d", drop*100, oldPeak, stats.PreyCount),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkPreyExtinct(stats WindowStats) *Bookmark {
	if bd.extinctSeen || stats.PreyCount > 0 || bd.recentPreyPeak == 0 {
		return nil
	}
	bd.extinctSeen = true
	return &Bookmark{
		Type:        BookmarkPreyExtinct,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Last prey captured, %d predators remain", stats.PredCount),
	}
}

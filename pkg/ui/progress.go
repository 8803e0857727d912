package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
)

// MirrorTracker tracks a catalog mirror run for the console progress
// line printed by the download command.
type MirrorTracker struct {
	Total     int
	Done      int
	Skipped   int
	Failed    int
	StartTime time.Time

	bar progress.Model
}

// NewMirrorTracker creates a tracker over the given item count.
func NewMirrorTracker(total int) *MirrorTracker {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 30
	return &MirrorTracker{
		Total:     total,
		StartTime: time.Now(),
		bar:       bar,
	}
}

// Downloaded records one fetched file.
func (mt *MirrorTracker) Downloaded() { mt.Done++ }

// SkippedExisting records one file already present on disk.
func (mt *MirrorTracker) SkippedExisting() {
	mt.Skipped++
	mt.Done++
}

// DownloadFailed records one failed file.
func (mt *MirrorTracker) DownloadFailed() {
	mt.Failed++
	mt.Done++
}

// Fraction returns completion in [0,1].
func (mt *MirrorTracker) Fraction() float64 {
	if mt.Total == 0 {
		return 1
	}
	return float64(mt.Done) / float64(mt.Total)
}

// Rate returns the average throughput in items per minute.
func (mt *MirrorTracker) Rate() float64 {
	elapsed := time.Since(mt.StartTime).Minutes()
	if elapsed == 0 {
		return 0
	}
	return float64(mt.Done) / elapsed
}

// PrintProgress redraws the single-line progress view.
func (mt *MirrorTracker) PrintProgress() {
	if Quiet {
		return
	}
	fmt.Printf("\r%s %s %d/%d (%d skipped, %d failed)",
		Green("[MIRROR]"),
		mt.bar.ViewAs(mt.Fraction()),
		mt.Done, mt.Total, mt.Skipped, mt.Failed)
}

// PrintSummary prints the final totals once the run ends.
func (mt *MirrorTracker) PrintSummary() {
	if Quiet {
		return
	}
	fmt.Println()
	PrintInfo("Downloaded", fmt.Sprintf("%d", mt.Done-mt.Skipped-mt.Failed))
	PrintInfo("Skipped", fmt.Sprintf("%d", mt.Skipped))
	if mt.Failed > 0 {
		PrintWarning("Failed", mt.Failed)
	}
	PrintInfo("Elapsed", time.Since(mt.StartTime).Round(time.Second).String())
}

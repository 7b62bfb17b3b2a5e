// Package diag carries every diagnostic/progress message the checker
// prints that is NOT part of the contractual result-line
// output in spec.md §6 — track count, total sample count, per-track
// length, and track-boundary crossings. Those lines go to stderr via a
// structured logger so they never collide with the byte-exact stdout
// contract.
package diag

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Logger wraps charmbracelet/log with the handful of call sites this
// repository's drivers need.
type Logger struct {
	*log.Logger
}

// New builds a Logger writing to w with a prefix identifying the
// program, matching how the reference tool tagged every progress line
// with what it was doing.
func New(w io.Writer, prefix string) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		Prefix:          prefix,
	})
	return &Logger{Logger: l}
}

// NewStderr is the default Logger used by the command-line drivers.
func NewStderr(prefix string) *Logger {
	return New(os.Stderr, prefix)
}

// TrackCounts reports the parsed header, mirroring the original tool's
// "track count" / "entries per track" / "total_length" lines.
func (l *Logger) TrackCounts(trackCount, pairsPerTrack, totalLength int) {
	l.Info("parsed arguments", "tracks", trackCount, "candidatesPerTrack", pairsPerTrack, "totalSamples", totalLength)
}

// TrackLength reports one track's length in CD frames, as given on the
// command line.
func (l *Logger) TrackLength(index, length int) {
	l.Debug("track length table", "index", index, "length", length)
}

// TrackBoundary reports a leading-cursor track transition, mirroring the
// original tool's "At <di> track <n> (...)" line.
func (l *Logger) TrackBoundary(position, track, trackCount int) {
	l.Info("track boundary", "position", position, "track", track, "accumulating", track < trackCount, "deriving", track > 0)
}

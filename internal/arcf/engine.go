// Package arcf implements the AccurateRip v1/v2 and frame-450 checksum
// engine: a single forward pass over a disc's worth of PCM samples that
// derives every possible drive-offset variant of the v1 checksum for
// every track, alongside the offset-0 v2 checksum and a frame-450 probe
// CRC, in O(tracks·samples) time.
//
// The derivation is a direct port of the reference ckcdda.c tool
// (update_arcf/update_framecrc/main): arcf[track][0] accumulates a
// weighted running sum for the window that starts CheckRadius samples
// before the track's nominal start, and arcf[track][o] for o>0 is
// derived from arcf[track][o-1] by subtracting the outgoing sample's
// contribution and adding the incoming one, one sample at a time, as
// the stream advances.
package arcf

const (
	// SamplesPerFrame is the number of stereo samples in one CD frame
	// (44100 Hz / 75 frames-per-second).
	SamplesPerFrame = 588

	// CheckRadius is the largest drive read-offset, in samples, that the
	// engine tolerates in either direction.
	CheckRadius = 5*SamplesPerFrame - 1

	// OffsetsPerTrack is the number of offset slots derived per track:
	// one for every integer offset in [-CheckRadius, +CheckRadius].
	OffsetsPerTrack = 2*CheckRadius + 1

	frame450Start = 451*SamplesPerFrame - 1 - CheckRadius
)

// Engine accumulates the v1/v2/frame-450 checksums for every track of a
// disc across a single forward pass of packed stereo samples.
//
// Two cursors advance in lockstep, one sample per Step call: the leading
// cursor (track, ti, tr) drives the base accumulation and the
// offset-by-offset derivation described in spec.md §4.1; the trailing
// cursor (track2, ti2), CheckRadius samples behind, drives the v2
// accumulator and the frame-450 probe described in §4.2–§4.3.
type Engine struct {
	trackCount int
	length     []int // length[0..trackCount], sentinel-adjusted

	sum  []uint32 // trackCount
	crc2 []uint32 // trackCount

	arcf    []uint32 // trackCount * OffsetsPerTrack
	arcf450 []uint32 // trackCount * OffsetsPerTrack

	frame    [SamplesPerFrame]uint32
	framesum uint32
	framecrc uint32

	track, ti, tr, lastTr int
	track2, ti2           int

	di    int
	total int
}

// NewEngine prepares an Engine for a disc whose tracks have the given
// lengths in CD frames. It returns an error if trackLengths is empty.
func NewEngine(trackLengths []int) (*Engine, error) {
	T := len(trackLengths)
	if T == 0 {
		return nil, errTrackCount
	}

	length := make([]int, T+1)
	total := 0
	for k, frames := range trackLengths {
		length[k] = frames * SamplesPerFrame
		total += length[k]
	}

	// Sentinel tail: shrink the last track so its trailing CheckRadius+1
	// samples are supplied by a synthetic extra "track" of length
	// OffsetsPerTrack, letting the same per-sample loop finish sliding
	// the last track's windows without special-casing it.
	length[T-1] -= CheckRadius + 1
	length[T] = OffsetsPerTrack

	return &Engine{
		trackCount: T,
		length:     length,
		sum:        make([]uint32, T),
		crc2:       make([]uint32, T),
		arcf:       make([]uint32, T*OffsetsPerTrack),
		arcf450:    make([]uint32, T*OffsetsPerTrack),
		ti:         CheckRadius,
		total:      total,
	}, nil
}

// Done reports whether the engine has consumed every sample required to
// finish deriving all offsets for every track.
func (e *Engine) Done() bool { return e.di >= e.total }

// TotalSamples returns the number of samples Step must be called with to
// reach Done.
func (e *Engine) TotalSamples() int { return e.total }

// TrackIndex returns the track currently receiving base accumulation
// (may equal TrackCount once the leading cursor has entered the
// sentinel tail).
func (e *Engine) TrackIndex() int { return e.track }

// Position returns the number of samples consumed so far.
func (e *Engine) Position() int { return e.di }

// Step folds one packed stereo sample into the engine's running state.
// Callers must not call Step again once Done reports true.
func (e *Engine) Step(value uint32) {
	e.updateARCF(value)
	if e.di >= CheckRadius && e.track2 < e.trackCount {
		e.updateV2AndFrame450(value)
	}

	e.di++
	e.ti++
	e.tr++
	e.ti2++

	if e.ti == e.length[e.track] {
		e.lastTr = e.tr
		e.ti = 0
		e.tr = 0
		e.track++
	}
	if e.track2 < e.trackCount && e.ti2 == e.length[e.track2] {
		e.ti2 = 0
		e.framesum = 0
		e.framecrc = 0
		for i := range e.frame {
			e.frame[i] = 0
		}
		e.track2++
	}
}

// updateARCF is the direct port of update_arcf in ckcdda.c: it feeds the
// base accumulator for the currently-open track and derives the next
// offset slot for the track that just closed.
func (e *Engine) updateARCF(value uint32) {
	const W = OffsetsPerTrack
	track := e.track

	if track < e.trackCount {
		base := track * W
		if e.tr < W-1 {
			// Stash this sample; it becomes "first" once this offset
			// slot is derived into the next one.
			e.arcf[base+e.tr+1] = value
		}
		e.sum[track] += value
		e.arcf[base+0] += value * uint32(e.ti+1)
	}

	if track > 0 && e.tr < W-1 {
		prev := track - 1
		base := prev * W
		// A previous track shorter than W-1 leading-cursor steps could not
		// stash every window's first sample itself; the missing ones
		// arrive now, lastTr steps before the slot is read.
		if j := e.tr + e.lastTr + 1; j < W {
			e.arcf[base+j] = value
		}
		first := e.arcf[base+e.tr+1]

		e.arcf[base+e.tr+1] = e.arcf[base+e.tr] -
			uint32(e.length[prev]-e.lastTr)*first -
			e.sum[prev] +
			uint32(e.length[prev])*value

		e.sum[prev] += value - first
	}
}

// updateV2AndFrame450 is the direct port of the "if (di >= CHECK_RADIUS)"
// block of main(): it runs off the trailing cursor (track2, ti2), which
// lags the leading cursor by exactly CheckRadius samples and never
// enters the sentinel tail.
func (e *Engine) updateV2AndFrame450(value uint32) {
	track2 := e.track2

	calc := uint64(value) * uint64(e.ti2+1)
	e.crc2[track2] += uint32(calc & 0xFFFFFFFF)
	e.crc2[track2] += uint32(calc >> 32)

	offset := e.ti2 - frame450Start
	if offset < OffsetsPerTrack {
		e.updateFrameCRC(value)
		if offset >= 0 {
			e.arcf450[track2*OffsetsPerTrack+offset] = e.framecrc
		}
	}
}

// updateFrameCRC is the direct port of update_framecrc: a 588-sample
// ring buffer holding a rolling v1-style CRC anchored at CD frame 450.
func (e *Engine) updateFrameCRC(value uint32) {
	idx := e.ti2 % SamplesPerFrame
	var subtr uint32
	if e.ti2 < SamplesPerFrame {
		e.frame[idx] = value
		e.framecrc += value * uint32(e.ti2+1)
	} else {
		subtr = e.frame[idx]
		e.frame[idx] = value
		e.framecrc += value*SamplesPerFrame - e.framesum
	}
	e.framesum += value - subtr
}

// TrackCount returns the number of real tracks (excluding the sentinel).
func (e *Engine) TrackCount() int { return e.trackCount }

// CRC returns the v1 ARCF checksum for the given track at array index o
// (signed drive offset o-CheckRadius).
func (e *Engine) CRC(track, o int) uint32 { return e.arcf[track*OffsetsPerTrack+o] }

// CRC450 returns the frame-450 probe checksum for the given track at
// array index o.
func (e *Engine) CRC450(track, o int) uint32 { return e.arcf450[track*OffsetsPerTrack+o] }

// CRC2 returns the v2 checksum for the given track (offset 0 only).
func (e *Engine) CRC2(track int) uint32 { return e.crc2[track] }

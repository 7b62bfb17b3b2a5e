package arcf

// Candidate is one AccurateRip database entry for a track: a v1 checksum
// paired with its frame-450 probe checksum, as submitted by some other
// rip of the same pressing.
type Candidate struct {
	CRC    uint32
	CRC450 uint32
}

// Line is one reported result: either the offset-0 summary line (CRC2
// set) or a matching non-zero-offset line (CRC2 nil).
type Line struct {
	Track  int
	Offset int // signed, in [-CheckRadius, +CheckRadius]
	CRC    uint32
	CRC450 uint32
	CRC2   *uint32
}

// Report walks every track and every offset and returns, in the same
// order the reference tool prints them (track by track, offsets from
// -CheckRadius to +CheckRadius): the track's offset-0 line, plus one
// line per (offset, candidate) pair whose v1 or frame-450 checksum
// matches — the two checks are independent ORs, so a single offset can
// be reported once per matching candidate.
//
// candidates[k] holds the database entries for track k; it may be nil
// for a track with no candidates.
func (e *Engine) Report(candidates [][]Candidate) []Line {
	var lines []Line
	for k := 0; k < e.trackCount; k++ {
		for o := 0; o < OffsetsPerTrack; o++ {
			offset := o - CheckRadius
			crc := e.CRC(k, o)
			crc450 := e.CRC450(k, o)

			if offset == 0 {
				v2 := e.CRC2(k)
				lines = append(lines, Line{Track: k, Offset: 0, CRC: crc, CRC450: crc450, CRC2: &v2})
				continue
			}

			for _, cand := range candidates[k] {
				if crc == cand.CRC || crc450 == cand.CRC450 {
					lines = append(lines, Line{Track: k, Offset: offset, CRC: crc, CRC450: crc450})
				}
			}
		}
	}
	return lines
}

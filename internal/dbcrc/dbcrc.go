// Package dbcrc supplies the AccurateRip candidate checksums that the
// reporter matches offset CRCs against, either parsed from the
// positional CLI layout in spec.md §6 or, as an enrichment, loaded from
// a YAML sidecar file (SPEC_FULL.md §6.2) for discs with more candidate
// pairs than fit comfortably on a command line.
package dbcrc

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/spadev/cdrip-tools/internal/arcf"
)

// Candidate is one (v1 CRC, frame-450 CRC) pair as submitted by some
// other rip of the same pressing.
type Candidate struct {
	CRC    uint32 `yaml:"crc"`
	CRC450 uint32 `yaml:"crc450"`
}

// TrackSpec is one track's entry in a YAML candidate database: its
// length in CD frames plus the candidates to check it against.
type TrackSpec struct {
	Length     int         `yaml:"length"`
	Candidates []Candidate `yaml:"candidates"`
}

// Database is the top-level shape of a YAML candidate database file.
type Database struct {
	Tracks []TrackSpec `yaml:"tracks"`
}

// Load parses a YAML candidate database from path.
func Load(path string) (*Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dbcrc: read %s: %w", path, err)
	}
	var db Database
	if err := yaml.Unmarshal(data, &db); err != nil {
		return nil, fmt.Errorf("dbcrc: parse %s: %w", path, err)
	}
	for i, tr := range db.Tracks {
		if tr.Length <= 0 {
			return nil, fmt.Errorf("dbcrc: %s: track %d: length must be positive", path, i)
		}
	}
	return &db, nil
}

// TrackLengths returns the per-track CD-frame counts, in order, for
// feeding arcf.NewEngine.
func (db *Database) TrackLengths() []int {
	lengths := make([]int, len(db.Tracks))
	for i, tr := range db.Tracks {
		lengths[i] = tr.Length
	}
	return lengths
}

// Candidates returns the per-track candidate lists in the shape
// (*arcf.Engine).Report expects.
func (db *Database) Candidates() [][]arcf.Candidate {
	out := make([][]arcf.Candidate, len(db.Tracks))
	for i, tr := range db.Tracks {
		cs := make([]arcf.Candidate, len(tr.Candidates))
		for j, c := range tr.Candidates {
			cs[j] = arcf.Candidate{CRC: c.CRC, CRC450: c.CRC450}
		}
		out[i] = cs
	}
	return out
}

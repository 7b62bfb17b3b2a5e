package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/spadev/cdrip-tools/internal/arcf"
	"github.com/spadev/cdrip-tools/internal/dbcrc"
)

// config is the fully-resolved set of inputs the driver needs, after
// either the legacy positional contract (spec.md §6) or the --db
// enrichment (SPEC_FULL.md §6.2) has been parsed.
type config struct {
	trackLengths []int
	candidates   [][]arcf.Candidate
	verbose      bool
	live         bool
	sampleRate   float64
	listDrives   bool
}

// parseArgs resolves argv (excluding the program name) into a config.
// Flags are parsed first via pflag, which leaves the mandatory
// positional block in fs.Args() untouched — flags never appear ahead of
// or inside that block in practice, since every positional value is a
// bare decimal integer.
func parseArgs(argv []string) (*config, error) {
	fs := pflag.NewFlagSet("ckcdda", pflag.ContinueOnError)
	dbPath := fs.String("db", "", "path to a YAML candidate database (SPEC_FULL.md §6.2); when set, argv carries only track lengths")
	verbose := fs.BoolP("verbose", "v", false, "emit per-sample track-boundary diagnostics")
	live := fs.Bool("live", false, "capture PCM from the default input device instead of reading stdin (SPEC_FULL.md §6.5)")
	sampleRate := fs.Float64("rate", 44100, "sample rate in Hz for --live capture")
	listDrives := fs.Bool("list-drives", false, "list attached optical drives and exit (SPEC_FULL.md §6.6)")
	if err := fs.Parse(argv); err != nil {
		return nil, err
	}
	if *listDrives {
		return &config{listDrives: true}, nil
	}
	rest := fs.Args()

	if *dbPath == "" {
		trackLengths, candidates, err := dbcrc.ParsePositional(rest)
		if err != nil {
			return nil, err
		}
		return &config{trackLengths: trackLengths, candidates: candidates, verbose: *verbose, live: *live, sampleRate: *sampleRate}, nil
	}

	db, err := dbcrc.Load(*dbPath)
	if err != nil {
		return nil, err
	}
	trackLengths, err := parseLengths(rest)
	if err != nil {
		return nil, err
	}
	if len(trackLengths) != len(db.Tracks) {
		return nil, fmt.Errorf("ckcdda: %d track lengths on the command line but %d tracks in %s", len(trackLengths), len(db.Tracks), *dbPath)
	}
	return &config{trackLengths: trackLengths, candidates: db.Candidates(), verbose: *verbose, live: *live, sampleRate: *sampleRate}, nil
}

func parseLengths(args []string) ([]int, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("ckcdda: need at least one track length")
	}
	lengths := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("ckcdda: invalid track length %q: %w", a, err)
		}
		lengths[i] = v
	}
	return lengths, nil
}

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/pflag"
)

type config struct {
	format       string // "wav" or "flac"
	pattern      string
	trackLengths []int
}

func parseArgs(argv []string) (*config, error) {
	fs := pflag.NewFlagSet("splitaudio", pflag.ContinueOnError)
	format := fs.String("fmt", "wav", "output format: wav or flac")
	pattern := fs.String("pattern", "fixed%03d", "output filename pattern; %03d is replaced by the zero-padded track index, the rest is an lestrrat-go/strftime layout")
	if err := fs.Parse(argv); err != nil {
		return nil, err
	}
	if *format != "wav" && *format != "flac" {
		return nil, fmt.Errorf("splitaudio: unknown --fmt %q, want wav or flac", *format)
	}

	rest := fs.Args()
	if len(rest) == 0 {
		return &config{format: *format, pattern: *pattern}, nil
	}
	lengths := make([]int, len(rest))
	for i, a := range rest {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("splitaudio: invalid track length %q: %w", a, err)
		}
		if v <= 0 {
			return nil, fmt.Errorf("splitaudio: track length must be positive, got %d", v)
		}
		lengths[i] = v
	}
	return &config{format: *format, pattern: *pattern, trackLengths: lengths}, nil
}

// Command ckcdda reads 16-bit stereo PCM from stdin, derives every
// AccurateRip v1 CRC at every read-offset from -2939 to +2939 samples
// for each track in one pass, and prints every track's offset-0 CRCs
// plus each other offset whose CRC matches a supplied candidate
// (implying a constant drive read-offset across the whole disc). See
// SPEC_FULL.md §6 for the exact input and output contracts.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"

	"github.com/spadev/cdrip-tools/internal/arcf"
	"github.com/spadev/cdrip-tools/internal/capture"
	"github.com/spadev/cdrip-tools/internal/diag"
	"github.com/spadev/cdrip-tools/internal/drive"
	"github.com/spadev/cdrip-tools/internal/pcmio"
	"github.com/spadev/cdrip-tools/internal/stdinmode"
)

// sampleSource is satisfied by both internal/pcmio.Reader (stdin) and
// internal/capture.Source (live device input), so the driver loop below
// doesn't care which one fed it.
type sampleSource interface {
	ReadSample() (uint32, error)
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(argv []string, in io.Reader, out io.Writer) error {
	cfg, err := parseArgs(argv)
	if err != nil {
		return err
	}

	log := diag.NewStderr("ckcdda")
	if cfg.verbose {
		log.SetLevel(charmlog.DebugLevel)
	}

	if cfg.listDrives {
		return listDrives(out)
	}

	var source sampleSource
	if cfg.live {
		liveSource, err := capture.Open(cfg.sampleRate, 4096)
		if err != nil {
			return fmt.Errorf("ckcdda: %w", err)
		}
		defer liveSource.Close()
		source = liveSource
	} else {
		if err := stdinmode.Rebind(); err != nil {
			return fmt.Errorf("ckcdda: %w", err)
		}
		source = pcmio.NewReader(bufio.NewReaderSize(in, 1<<16))
	}

	engine, err := arcf.NewEngine(cfg.trackLengths)
	if err != nil {
		return fmt.Errorf("ckcdda: %w", err)
	}

	log.TrackCounts(engine.TrackCount(), candidatesPerTrack(cfg.candidates), engine.TotalSamples())
	for i, l := range cfg.trackLengths {
		log.TrackLength(i, l)
	}

	lastTrack := engine.TrackIndex()
	for !engine.Done() {
		v, err := source.ReadSample()
		if err != nil {
			return fmt.Errorf("ckcdda: reading sample %d: %w", engine.Position(), err)
		}
		engine.Step(v)
		if tr := engine.TrackIndex(); tr != lastTrack {
			log.TrackBoundary(engine.Position(), tr, engine.TrackCount())
			lastTrack = tr
		}
	}

	w := bufio.NewWriter(out)
	defer w.Flush()
	for _, line := range engine.Report(cfg.candidates) {
		if err := writeLine(w, line); err != nil {
			return fmt.Errorf("ckcdda: %w", err)
		}
	}
	return nil
}

// writeLine emits exactly the printf formats spec.md §6 fixes: the
// offset-0 line always carries v1 CRC, frame-450 CRC, then v2 CRC, in
// that order; every other reported offset omits the v2 CRC.
func writeLine(w io.Writer, l arcf.Line) error {
	if l.Offset == 0 {
		var v2 uint32
		if l.CRC2 != nil {
			v2 = *l.CRC2
		}
		_, err := fmt.Fprintf(w, "%03d,%d: %08X %08X %08X\n", l.Track, l.Offset, l.CRC, l.CRC450, v2)
		return err
	}
	_, err := fmt.Fprintf(w, "%03d,%d: %08X %08X\n", l.Track, l.Offset, l.CRC, l.CRC450)
	return err
}

func candidatesPerTrack(c [][]arcf.Candidate) int {
	if len(c) == 0 {
		return 0
	}
	return len(c[0])
}

// listDrives prints one line per attached optical drive and returns.
// It never touches stdin or the checksum engine.
func listDrives(out io.Writer) error {
	drives, err := drive.List()
	if err != nil {
		return fmt.Errorf("ckcdda: %w", err)
	}
	for _, d := range drives {
		if _, err := fmt.Fprintf(out, "%s\t%s %s\n", d.DevNode, d.Vendor, d.Model); err != nil {
			return err
		}
	}
	return nil
}

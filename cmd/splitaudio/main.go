// Command splitaudio reads the same concatenated 16-bit stereo PCM
// stream ckcdda checks and writes one output file per track boundary.
// It carries no algorithmic content: track boundaries are exactly the
// positional CD-frame lengths given on argv, identical to
// original_source/splitaudio.c.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/lestrrat-go/strftime"
	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/meta"

	"github.com/spadev/cdrip-tools/internal/pcmio"
)

const samplesPerFrame = 588

func main() {
	if err := run(os.Args[1:], os.Stdin); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(argv []string, in io.Reader) error {
	cfg, err := parseArgs(argv)
	if err != nil {
		return err
	}
	if len(cfg.trackLengths) == 0 {
		return nil
	}

	reader := pcmio.NewReader(bufio.NewReaderSize(in, 1<<16))
	now := time.Now()

	for i, lengthFrames := range cfg.trackLengths {
		name, err := filename(cfg.pattern, cfg.format, i, now)
		if err != nil {
			return fmt.Errorf("splitaudio: building filename for track %d: %w", i, err)
		}
		samples := lengthFrames * samplesPerFrame
		if err := writeTrack(name, cfg.format, reader, samples); err != nil {
			return fmt.Errorf("splitaudio: track %d (%s): %w", i, name, err)
		}
	}
	return nil
}

// filename substitutes the zero-padded track index for the literal
// "%03d" token before handing the rest of the pattern to strftime, so a
// caller can mix a calendar-aware prefix with the mandatory index.
func filename(pattern, format string, index int, t time.Time) (string, error) {
	const placeholder = "\x00TRACKIDX\x00"
	withPlaceholder := strings.Replace(pattern, "%03d", placeholder, 1)
	expanded, err := strftime.Format(withPlaceholder, t)
	if err != nil {
		return "", err
	}
	name := strings.Replace(expanded, placeholder, fmt.Sprintf("%03d", index), 1)
	if format == "flac" {
		return name + ".flac", nil
	}
	return name + ".wav", nil
}

func writeTrack(name, format string, r *pcmio.Reader, samples int) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()

	if format == "flac" {
		return writeFLACTrack(f, r, samples)
	}
	return writeWAVTrack(f, r, samples)
}

func writeWAVTrack(f *os.File, r *pcmio.Reader, samples int) error {
	enc := wav.NewEncoder(f, 44100, 16, 2, 1)
	buf := &audio.IntBuffer{
		Format: &audio.Format{NumChannels: 2, SampleRate: 44100},
		Data:   make([]int, 0, 4096),
	}
	const chunk = 2048
	for remaining := samples; remaining > 0; {
		n := chunk
		if n > remaining {
			n = remaining
		}
		buf.Data = buf.Data[:0]
		for i := 0; i < n; i++ {
			v, err := r.ReadSample()
			if err != nil {
				return err
			}
			left := int16(v & 0xFFFF)
			right := int16(v >> 16)
			buf.Data = append(buf.Data, int(left), int(right))
		}
		if err := enc.Write(buf); err != nil {
			return err
		}
		remaining -= n
	}
	return enc.Close()
}

// writeFLACTrack drives mewkiz/flac's Encoder directly: one Write call
// per sample chunk, two int32 slices (left, right), then Close to seek
// back and patch in the final StreamInfo.
func writeFLACTrack(f *os.File, r *pcmio.Reader, samples int) error {
	info := &meta.StreamInfo{
		BlockSizeMin:  4096,
		BlockSizeMax:  4096,
		SampleRate:    44100,
		NChannels:     2,
		BitsPerSample: 16,
		NSamples:      uint64(samples),
	}
	enc, err := flac.NewEncoder(f, info)
	if err != nil {
		return err
	}

	const blockSize = 4096
	for remaining := samples; remaining > 0; {
		n := blockSize
		if n > remaining {
			n = remaining
		}
		left := make([]int32, n)
		right := make([]int32, n)
		for i := 0; i < n; i++ {
			v, err := r.ReadSample()
			if err != nil {
				return err
			}
			left[i] = int32(int16(v & 0xFFFF))
			right[i] = int32(int16(v >> 16))
		}
		if err := enc.Write([][]int32{left, right}); err != nil {
			return err
		}
		remaining -= n
	}
	return enc.Close()
}

// Package capture streams packed stereo samples read live from the
// default input device, as an alternative to piping a file through
// stdin. It produces samples in the same (right<<16)|left shape
// internal/pcmio reads off a byte stream, so callers can treat the two
// sources interchangeably.
package capture

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// Source is an open live capture stream. Callers must call Close when
// done to release the device and the PortAudio runtime.
type Source struct {
	stream *portaudio.Stream
	buf    []int16
	pos    int
}

// Open initializes PortAudio and starts capturing from the default
// input device in stereo 16-bit signed PCM at sampleRate, buffering
// framesPerBuffer stereo frames at a time.
func Open(sampleRate float64, framesPerBuffer int) (*Source, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("capture: initialize: %w", err)
	}
	buf := make([]int16, framesPerBuffer*2)
	stream, err := portaudio.OpenDefaultStream(2, 0, sampleRate, framesPerBuffer, buf)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("capture: open default input stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("capture: start stream: %w", err)
	}
	// pos == len(buf) forces the first ReadSample call to pull a buffer.
	return &Source{stream: stream, buf: buf, pos: len(buf)}, nil
}

// ReadSample returns the next packed stereo sample, blocking on the
// device when the current buffer is exhausted. It never returns io.EOF;
// a live capture only ends when the caller stops pulling from it.
func (s *Source) ReadSample() (uint32, error) {
	if s.pos >= len(s.buf) {
		if err := s.stream.Read(); err != nil {
			return 0, fmt.Errorf("capture: read: %w", err)
		}
		s.pos = 0
	}
	left := uint16(s.buf[s.pos])
	right := uint16(s.buf[s.pos+1])
	s.pos += 2
	return uint32(right)<<16 | uint32(left), nil
}

// Close stops the stream and releases the PortAudio runtime.
func (s *Source) Close() error {
	defer portaudio.Terminate()
	if err := s.stream.Stop(); err != nil {
		s.stream.Close()
		return fmt.Errorf("capture: stop: %w", err)
	}
	return s.stream.Close()
}

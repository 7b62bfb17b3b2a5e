// Package pcmio reads the raw 16-bit little-endian stereo PCM stream
// that feeds the ARCF engine: one packed 32-bit sample value per 4-byte
// record, high 16 bits = right channel, low 16 bits = left channel.
package pcmio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrTruncated is wrapped into the error returned by ReadSample when the
// stream ends partway through a 4-byte sample record.
var ErrTruncated = errors.New("pcmio: truncated sample record")

// Reader reads packed stereo sample values from an underlying byte
// stream, one 4-byte record at a time, in strict forward order.
type Reader struct {
	r   io.Reader
	buf [4]byte
}

// NewReader wraps r. Callers that expect many small reads (e.g. stdin)
// should pass a buffered reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// ReadSample reads the next packed sample value: (right<<16)|left. It
// returns io.EOF only when the stream ends exactly on a record boundary
// with no bytes read; any other short read is a truncated stream, which
// spec.md §7 classes as a fatal stream error.
func (r *Reader) ReadSample() (uint32, error) {
	n, err := io.ReadFull(r.r, r.buf[:])
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || (err == io.EOF && n > 0) {
			return 0, fmt.Errorf("%w: got %d of 4 bytes", ErrTruncated, n)
		}
		return 0, err
	}
	left := binary.LittleEndian.Uint16(r.buf[0:2])
	right := binary.LittleEndian.Uint16(r.buf[2:4])
	return uint32(right)<<16 | uint32(left), nil
}

package dbcrc

import (
	"fmt"
	"strconv"

	"github.com/spadev/cdrip-tools/internal/arcf"
)

// ParsePositional decodes the original positional argument contract from
// spec.md §6: args[0] is P (candidate pairs per track), followed by T
// blocks of (1+2P) decimal integers, one block per track:
// len_k, crc_k_0..crc_k_{P-1}, crc450_k_0..crc450_k_{P-1}.
//
// It returns the per-track CD-frame lengths and the per-track candidate
// lists in the shape (*arcf.Engine).Report expects.
func ParsePositional(args []string) (trackLengths []int, candidates [][]arcf.Candidate, err error) {
	if len(args) < 1 {
		return nil, nil, fmt.Errorf("dbcrc: need at least one argument (P)")
	}

	p, err := strconv.Atoi(args[0])
	if err != nil || p < 0 {
		return nil, nil, fmt.Errorf("dbcrc: P must be a non-negative integer: %q", args[0])
	}

	blockSize := 2*p + 1
	rest := args[1:]
	if blockSize == 0 || len(rest)%blockSize != 0 {
		return nil, nil, fmt.Errorf("dbcrc: argument count %d is not a multiple of block size %d", len(rest), blockSize)
	}
	trackCount := len(rest) / blockSize
	if trackCount < 1 {
		return nil, nil, fmt.Errorf("dbcrc: need at least one track")
	}

	trackLengths = make([]int, trackCount)
	candidates = make([][]arcf.Candidate, trackCount)

	for k := 0; k < trackCount; k++ {
		block := rest[k*blockSize : (k+1)*blockSize]

		length, err := strconv.Atoi(block[0])
		if err != nil {
			return nil, nil, fmt.Errorf("dbcrc: track %d: invalid length %q: %w", k, block[0], err)
		}
		trackLengths[k] = length

		cs := make([]arcf.Candidate, p)
		for j := 0; j < p; j++ {
			crc, err := strconv.ParseUint(block[1+j], 10, 32)
			if err != nil {
				return nil, nil, fmt.Errorf("dbcrc: track %d: invalid crc %q: %w", k, block[1+j], err)
			}
			crc450, err := strconv.ParseUint(block[1+p+j], 10, 32)
			if err != nil {
				return nil, nil, fmt.Errorf("dbcrc: track %d: invalid crc450 %q: %w", k, block[1+p+j], err)
			}
			cs[j] = arcf.Candidate{CRC: uint32(crc), CRC450: uint32(crc450)}
		}
		candidates[k] = cs
	}

	return trackLengths, candidates, nil
}

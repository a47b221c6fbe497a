// Package consensus combines independently Viterbi-decoded replicate
// reads of one logical message into a single best-guess message. It
// is a supplement to the core decoder, not a replacement for it:
// every replicate is still decoded on its own by fst.Decode; this
// package only combines the results, reconstructing any replicate
// that failed to decode from the parity shards of the ones that did.
package consensus

import (
	"errors"
	"fmt"

	"github.com/klauspost/reedsolomon"
	"github.com/snksoft/crc"
)

// Shard is one replicate's decoded message, as raw bytes. Present is
// false when that replicate produced no valid Viterbi decoding --
// such a shard is erasure-reconstructed rather than trusted.
type Shard struct {
	Data    []byte
	Present bool
}

// Group is a set of replicate shards for one logical message, laid
// out as dataShards data rows followed by ParityShards parity rows,
// the layout reedsolomon.New(dataShards, parityShards) expects. Every
// shard (data or parity) must be the same length; callers pad short
// decodes with trailing zero bytes before building a Group.
type Group struct {
	Name         string
	Shards       []Shard
	ParityShards int
}

var errTooFewShards = errors.New("consensus: no more shards than parity shards")
var errShardLenMismatch = errors.New("consensus: present shards have inconsistent lengths")

// Combine reconstructs any missing/erased shards with Reed-Solomon,
// concatenates the data shards into the recovered message, and
// computes its CRC-64 checksum. recovered is true only if every
// shard was either present or could be reconstructed and the result
// verifies against the parity shards.
func Combine(g Group) (message []byte, checksum uint64, recovered bool, err error) {
	n := len(g.Shards)
	if n <= g.ParityShards {
		return nil, 0, false, errTooFewShards
	}
	dataShards := n - g.ParityShards

	shardLen, err := presentShardLen(g.Shards)
	if err != nil {
		return nil, 0, false, err
	}

	shards := make([][]byte, n)
	missing := 0
	for i, s := range g.Shards {
		if s.Present {
			shards[i] = s.Data
		} else {
			shards[i] = nil
			missing++
		}
	}

	enc, err := reedsolomon.New(dataShards, g.ParityShards)
	if err != nil {
		return nil, 0, false, fmt.Errorf("consensus: %w", err)
	}

	if missing > 0 {
		if err := enc.Reconstruct(shards); err != nil {
			return nil, 0, false, fmt.Errorf("consensus: reconstruct: %w", err)
		}
	}

	ok, err := enc.Verify(shards)
	if err != nil {
		return nil, 0, false, fmt.Errorf("consensus: verify: %w", err)
	}

	message = make([]byte, 0, dataShards*shardLen)
	for i := 0; i < dataShards; i++ {
		message = append(message, shards[i]...)
	}
	checksum = crc.CalculateCRC(crc.CRC64ISO, message)

	return message, checksum, ok, nil
}

func presentShardLen(shards []Shard) (int, error) {
	n := -1
	for _, s := range shards {
		if !s.Present {
			continue
		}
		if n == -1 {
			n = len(s.Data)
		} else if len(s.Data) != n {
			return 0, errShardLenMismatch
		}
	}
	if n == -1 {
		return 0, errors.New("consensus: no present shards")
	}
	return n, nil
}

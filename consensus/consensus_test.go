package consensus

import (
	"bytes"
	"testing"

	"github.com/klauspost/reedsolomon"
	"github.com/snksoft/crc"
)

// encodeFixture builds a valid data+parity shard set for "message",
// padded to a multiple of dataShards, the same way a caller would
// before building a Group.
func encodeFixture(t *testing.T, message []byte, dataShards, parityShards int) [][]byte {
	t.Helper()

	shardLen := (len(message) + dataShards - 1) / dataShards
	padded := make([]byte, shardLen*dataShards)
	copy(padded, message)

	shards := make([][]byte, dataShards+parityShards)
	for i := 0; i < dataShards; i++ {
		shards[i] = padded[i*shardLen : (i+1)*shardLen]
	}
	for i := dataShards; i < dataShards+parityShards; i++ {
		shards[i] = make([]byte, shardLen)
	}

	enc, err := reedsolomon.New(dataShards, parityShards)
	if err != nil {
		t.Fatalf("reedsolomon.New: %v", err)
	}
	if err := enc.Encode(shards); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return shards
}

func TestCombineAllPresent(t *testing.T) {
	message := []byte("ABCDEFGHIJKLMNOPQRSTUVWX") // 24 bytes, a clean multiple of dataShards
	shards := encodeFixture(t, message, 4, 2)

	g := Group{Name: "g1", ParityShards: 2}
	for _, s := range shards {
		g.Shards = append(g.Shards, Shard{Data: s, Present: true})
	}

	got, checksum, recovered, err := Combine(g)
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	if !recovered {
		t.Errorf("expected recovered = true")
	}
	if !bytes.Equal(got, message) {
		t.Errorf("Combine() = %q, want %q", got, message)
	}
	want := crc.CalculateCRC(crc.CRC64ISO, message)
	if checksum != want {
		t.Errorf("checksum = %d, want %d", checksum, want)
	}
}

func TestCombineReconstructsMissingShards(t *testing.T) {
	message := []byte("ABCDEFGHIJKLMNOPQRSTUVWX") // 24 bytes, a clean multiple of dataShards
	shards := encodeFixture(t, message, 4, 2)

	g := Group{Name: "g1", ParityShards: 2}
	for i, s := range shards {
		present := i != 1 // erase shard 1 (a data shard)
		g.Shards = append(g.Shards, Shard{Data: s, Present: present})
	}

	got, _, recovered, err := Combine(g)
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	if !recovered {
		t.Errorf("expected recovered = true")
	}
	if !bytes.Equal(got, message) {
		t.Errorf("Combine() = %q, want %q", got, message)
	}
}

func TestCombineTooFewShards(t *testing.T) {
	g := Group{Name: "g1", ParityShards: 2, Shards: []Shard{
		{Data: []byte("ab"), Present: true},
		{Data: []byte("cd"), Present: true},
	}}
	if _, _, _, err := Combine(g); err == nil {
		t.Errorf("expected an error when shard count <= parity count")
	}
}

func TestCombineShardLenMismatch(t *testing.T) {
	g := Group{Name: "g1", ParityShards: 1, Shards: []Shard{
		{Data: []byte("ab"), Present: true},
		{Data: []byte("abc"), Present: true},
		{Data: []byte("cd"), Present: true},
	}}
	if _, _, _, err := Combine(g); err == nil {
		t.Errorf("expected an error for mismatched shard lengths")
	}
}

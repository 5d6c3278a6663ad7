package core

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// RunFingerprint identifies the exact inputs and outcome stream of one run.
// Two runs with the same seed and trial count must produce equal fingerprints.
type RunFingerprint Hash

func (h RunFingerprint) String() string { return Hash(h).String() }

// ComputeRunFingerprint hashes the run parameters plus the ordered outcome
// stream. The outcome bytes are appended trial by trial in emission order,
// so the fingerprint doubles as a determinism check across executions.
func ComputeRunFingerprint(seed int64, trials int, outcomes []byte) RunFingerprint {
	buf := make([]byte, 0, 16+len(outcomes))
	buf = binary.BigEndian.AppendUint64(buf, uint64(seed))
	buf = binary.BigEndian.AppendUint64(buf, uint64(trials))
	buf = append(buf, outcomes...)
	return RunFingerprint(NewHash(buf))
}

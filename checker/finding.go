package checker

import (
	"encoding/binary"

	"github.com/minio/highwayhash"
	"github.com/solguard/solguard/checker/mir"
)

var fingerprintKey = []byte("solguard-fingerprint-v1-32bytes!")

// Finding is the per-detector result handed to the diagnostic reporter.
type Finding struct {
	Function    string   `yaml:"function"`         // Analyzed function name
	Kind        Kind     `yaml:"kind"`             // Vulnerability class
	Triggered   bool     `yaml:"triggered"`        // Whether the pattern was observed
	Span        mir.Span `yaml:"span,omitempty"`   // Evidence location, empty unless triggered
	Fingerprint uint64   `yaml:"fingerprint,omitempty"` // Stable id for deduplication across runs
}

// fingerprint hashes the identifying parts of a positive finding so repeated
// runs over the same program report the same id.
func fingerprint(function string, kind Kind, span mir.Span) uint64 {
	hash, err := highwayhash.New64(fingerprintKey)
	if err != nil {
		return 0
	}
	_, _ = hash.Write([]byte(function))
	_, _ = hash.Write([]byte(kind.String()))
	var offsets [16]byte
	binary.LittleEndian.PutUint64(offsets[:8], uint64(span.Start))
	binary.LittleEndian.PutUint64(offsets[8:], uint64(span.End))
	_, _ = hash.Write(offsets[:])
	return hash.Sum64()
}

// Package codec serializes usage ledger state into compressed blobs.
//
// The encoding is canonical: JSON with lexicographically sorted keys
// wrapped in a gzip stream that carries no timestamps, so identical totals
// encoded at the same level produce byte-identical blobs. Determinism
// keeps persisted state diffable and lets tests compare raw bytes.
package codec

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Compression levels span the gzip range. Level 0 stores the payload
// without compression but keeps the gzip framing.
const (
	MinLevel     = 0
	MaxLevel     = 9
	DefaultLevel = 6
)

var (
	// ErrInvalidLevel reports a compression level outside the supported
	// range. It is a configuration error; no encoding work happens before
	// the level check.
	ErrInvalidLevel = errors.New("compression level out of range (0-9)")

	// ErrCorruptState reports persisted bytes that cannot be decoded back
	// into usage totals.
	ErrCorruptState = errors.New("corrupt usage state")
)

// Config controls the codec's compression effort.
type Config struct {
	// Level is the gzip compression level, MinLevel through MaxLevel.
	Level int
}

// DefaultConfig returns the codec configuration used when none is given.
func DefaultConfig() Config {
	return Config{Level: DefaultLevel}
}

// Validate rejects levels outside the supported range.
func (c Config) Validate() error {
	if c.Level < MinLevel || c.Level > MaxLevel {
		return fmt.Errorf("%w: %d", ErrInvalidLevel, c.Level)
	}
	return nil
}

// Encode serializes usage totals into a compressed state blob.
//
// The level is validated before any serialization work. A nil map encodes
// the same as an empty one.
func Encode(totals map[string]uint64, cfg Config) ([]byte, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if totals == nil {
		totals = map[string]uint64{}
	}

	payload, err := json.Marshal(totals)
	if err != nil {
		return nil, fmt.Errorf("encoding state: %w", err)
	}

	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLevel, cfg.Level)
	}
	if _, err := zw.Write(payload); err != nil {
		return nil, fmt.Errorf("compressing state: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compressing state: %w", err)
	}

	return buf.Bytes(), nil
}

// Decode parses a state blob produced by Encode.
//
// Truncated or non-gzip input, payloads that are not a JSON object of
// name to byte totals, and trailing data after the state object are all
// rejected with an error matching ErrCorruptState. No partial result is
// ever returned.
func Decode(blob []byte) (map[string]uint64, error) {
	zr, err := gzip.NewReader(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	defer zr.Close()

	payload, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}

	dec := json.NewDecoder(bytes.NewReader(payload))
	var totals map[string]uint64
	if err := dec.Decode(&totals); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	if totals == nil {
		return nil, fmt.Errorf("%w: state is not an object", ErrCorruptState)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after state object", ErrCorruptState)
	}

	return totals, nil
}

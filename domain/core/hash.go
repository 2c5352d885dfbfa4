package core

import (
	"crypto/sha256"
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

// InputDigest identifies the exact input bytes a report was generated from.
// Logged alongside the ReportID so a workbook can be matched to its source CSV.
type InputDigest Hash

func NewInputDigest(data []byte) InputDigest {
	return InputDigest(NewHash(data))
}

func (d InputDigest) String() string { return Hash(d).String() }

// Short returns a truncated digest for log lines.
func (d InputDigest) Short() string {
	s := string(d)
	if len(s) > 12 {
		return s[:12]
	}
	return s
}

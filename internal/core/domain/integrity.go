package domain

import (
	"encoding/hex"
	"strings"
)

// HashAlgorithm names a digest algorithm carried by an integrity descriptor.
type HashAlgorithm string

const (
	// HashSha512 is the default algorithm for registry tarball integrity.
	HashSha512 HashAlgorithm = "sha512"
	// HashSha1 is accepted for older registry entries.
	HashSha1 HashAlgorithm = "sha1"
)

// IntegrityKind discriminates the descriptor variants.
type IntegrityKind uint8

const (
	// IntegrityNone asserts nothing; verification always succeeds.
	IntegrityNone IntegrityKind = iota
	// IntegrityHashed is an SRI-style "<algorithm>-<base64>" descriptor.
	IntegrityHashed
	// IntegrityLegacyHex is a bare hex-encoded sha1 shasum.
	IntegrityLegacyHex
	// IntegrityUnknown carries an algorithm this implementation does not
	// support; verification must fail loudly rather than skip it.
	IntegrityUnknown
)

// IntegrityDescriptor describes the expected checksum of a downloaded
// tarball, as recorded in registry metadata or the lockfile.
type IntegrityDescriptor struct {
	Kind      IntegrityKind
	Algorithm HashAlgorithm
	// Value holds the expected digest in the descriptor's own encoding:
	// base64 for Hashed, lowercase hex for LegacyHex. Empty for None.
	Value string
}

// NoIntegrity is the descriptor that asserts nothing.
var NoIntegrity = IntegrityDescriptor{Kind: IntegrityNone}

// ParseIntegrity interprets an integrity string from registry dist metadata
// or the lockfile. Recognized forms are "<alg>-<base64>" (SRI) and a bare
// 40-char hex sha1 shasum; an empty string asserts nothing. An unrecognized
// algorithm is preserved as IntegrityUnknown so verification can reject it.
func ParseIntegrity(s string) IntegrityDescriptor {
	if s == "" {
		return NoIntegrity
	}
	if alg, val, ok := strings.Cut(s, "-"); ok {
		d := IntegrityDescriptor{Kind: IntegrityHashed, Algorithm: HashAlgorithm(alg), Value: val}
		if d.Algorithm != HashSha512 && d.Algorithm != HashSha1 {
			d.Kind = IntegrityUnknown
		}
		return d
	}
	if isSha1Hex(s) {
		return IntegrityDescriptor{Kind: IntegrityLegacyHex, Algorithm: HashSha1, Value: strings.ToLower(s)}
	}
	return IntegrityDescriptor{Kind: IntegrityUnknown, Algorithm: HashAlgorithm(s)}
}

// String renders the descriptor back into its lockfile form.
func (d IntegrityDescriptor) String() string {
	switch d.Kind {
	case IntegrityHashed:
		return string(d.Algorithm) + "-" + d.Value
	case IntegrityLegacyHex:
		return d.Value
	case IntegrityUnknown:
		return string(d.Algorithm)
	default:
		return ""
	}
}

func isSha1Hex(s string) bool {
	if len(s) != 40 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

// DistInfo is the distribution metadata of one registry package version.
type DistInfo struct {
	Tarball   string `json:"tarball"`
	Integrity string `json:"integrity,omitempty"`
	Shasum    string `json:"shasum,omitempty"`
}

// Descriptor derives the integrity descriptor for this distribution,
// preferring the SRI integrity string over the legacy shasum.
func (d DistInfo) Descriptor() IntegrityDescriptor {
	if d.Integrity != "" {
		return ParseIntegrity(d.Integrity)
	}
	if d.Shasum != "" {
		return IntegrityDescriptor{Kind: IntegrityLegacyHex, Algorithm: HashSha1, Value: strings.ToLower(d.Shasum)}
	}
	return NoIntegrity
}

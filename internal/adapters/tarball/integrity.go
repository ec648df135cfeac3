// Package tarball implements tarball integrity verification and safe
// extraction into the package cache.
package tarball

import (
	"crypto/sha1" //nolint:gosec // sha1 is part of the registry integrity format
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"

	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/zerr"
)

// VerifyIntegrity computes the digest matching the descriptor over data,
// encodes it the way the descriptor does, and compares.
//
// An unsupported kind or algorithm is a fatal "not implemented" error; it is
// never skipped or retried, and a mismatch is never silently accepted: this
// is the last defense against a corrupted or tampered download.
func VerifyIntegrity(nv domain.PackageVersion, data []byte, desc domain.IntegrityDescriptor) error {
	switch desc.Kind {
	case domain.IntegrityNone:
		return nil

	case domain.IntegrityHashed:
		var sum []byte
		switch desc.Algorithm {
		case domain.HashSha512:
			s := sha512.Sum512(data)
			sum = s[:]
		case domain.HashSha1:
			s := sha1.Sum(data) //nolint:gosec // dictated by the descriptor
			sum = s[:]
		default:
			return notImplemented(nv, string(desc.Algorithm))
		}
		return compare(nv, desc.Value, base64.StdEncoding.EncodeToString(sum))

	case domain.IntegrityLegacyHex:
		s := sha1.Sum(data) //nolint:gosec // legacy shasum format
		return compare(nv, desc.Value, hex.EncodeToString(s[:]))

	default:
		return notImplemented(nv, string(desc.Algorithm))
	}
}

func notImplemented(nv domain.PackageVersion, kind string) error {
	err := zerr.With(zerr.Wrap(domain.ErrNotImplemented, "unsupported integrity kind"), "package", nv.String())
	return zerr.With(err, "integrity_kind", kind)
}

func compare(nv domain.PackageVersion, expected, actual string) error {
	if expected == actual {
		return nil
	}
	err := zerr.With(zerr.Wrap(domain.ErrChecksumMismatch, "tarball digest does not match descriptor"), "package", nv.String())
	err = zerr.With(err, "expected", expected)
	return zerr.With(err, "actual", actual)
}

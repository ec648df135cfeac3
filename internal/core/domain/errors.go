package domain

import "go.trai.ch/zerr"

var (
	// ErrNotImplemented is returned for integrity descriptors whose encoding
	// or algorithm this implementation does not support. Never retried and
	// never silently skipped.
	ErrNotImplemented = zerr.New("not implemented")

	// ErrChecksumMismatch is returned when a downloaded tarball's digest does
	// not match its integrity descriptor. Metadata carries both values.
	ErrChecksumMismatch = zerr.New("mismatched checksum")

	// ErrPathEscape is returned when a tar entry path would resolve outside
	// the extraction output folder.
	ErrPathEscape = zerr.New("tar entry path escapes output folder")

	// ErrPackageNotFound is the recoverable "no such package or version"
	// signal from a registry, distinct from transient network failure.
	ErrPackageNotFound = zerr.New("package not found")

	// ErrLockfileChanged is returned when lockfile content changed underneath
	// an installer call; the call fails without mutating anything.
	ErrLockfileChanged = zerr.New("lockfile content changed concurrently")

	// ErrFolderIncomplete marks a cache folder still carrying its sync-lock
	// sentinel; readers treat it as a cache miss.
	ErrFolderIncomplete = zerr.New("package folder is incomplete")

	// ErrMalformedSpecifier is returned for lockfile specifier or identity
	// strings that cannot be parsed.
	ErrMalformedSpecifier = zerr.New("malformed specifier")

	// ErrCacheOnly is returned when a download would be required but the
	// cache setting forbids network access.
	ErrCacheOnly = zerr.New("package not cached and cache-only mode is active")
)

package tarball

import (
	"archive/tar"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/pakt/internal/core/ports"
	"go.trai.ch/zerr"
)

// Rename contention constants, tuned for realistic multi-process contention.
const (
	renameAttempts    = 5
	renameBackoffStep = 20 * time.Millisecond
	renameBackoffMax  = 100 * time.Millisecond
)

// ExtractMode selects how VerifyAndExtract materializes the output folder.
type ExtractMode uint8

const (
	// ModeOverwrite extracts directly into the output folder.
	ModeOverwrite ExtractMode = iota
	// ModeAtomicSibling extracts into a freshly-named sibling temp directory
	// and renames it into place, healing races with concurrent writers.
	ModeAtomicSibling
)

// Extractor unpacks registry tarballs.
type Extractor struct {
	logger ports.Logger
}

// NewExtractor creates a new Extractor.
func NewExtractor(logger ports.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// VerifyAndExtract verifies data against the distribution's integrity
// descriptor and unpacks it into outputDir according to mode.
func (e *Extractor) VerifyAndExtract(nv domain.PackageVersion, data []byte, dist domain.DistInfo, outputDir string, mode ExtractMode) error {
	if err := VerifyIntegrity(nv, data, dist.Descriptor()); err != nil {
		return err
	}

	if mode == ModeOverwrite {
		return e.Extract(data, outputDir)
	}

	// Sibling temp dir in the same parent so the final rename stays on one
	// filesystem. Orphans from killed processes are never adopted; each run
	// gets a fresh random name.
	tempDir := fmt.Sprintf("%s.tmp-%08x", outputDir, rand.Uint32())
	if err := e.Extract(data, tempDir); err != nil {
		_ = os.RemoveAll(tempDir) //nolint:errcheck // best effort
		return err
	}
	return e.renameWithRetry(nv, tempDir, outputDir)
}

// Extract decompresses and unpacks the tarball entry by entry, stripping the
// single leading path component the ecosystem wraps contents in.
//
// Every directory implied by an entry path is created, canonicalized, and
// asserted to still be a descendant of outputDir; an entry that would escape
// aborts extraction before further entries are processed. Entry kinds other
// than files and directories come from an untrusted source and are logged
// and ignored, never followed.
func (e *Extractor) Extract(data []byte, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create output folder"), "path", outputDir)
	}
	canonicalOut, err := filepath.EvalSymlinks(outputDir)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to canonicalize output folder"), "path", outputDir)
	}

	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return zerr.Wrap(err, "failed to decompress tarball")
	}
	defer gz.Close() //nolint:errcheck // read-only stream

	checkedDirs := make(map[string]struct{})
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return zerr.Wrap(err, "failed to read tarball entry")
		}

		rel, ok, escaped := stripLeadingComponent(hdr.Name)
		if escaped {
			return zerr.With(zerr.Wrap(domain.ErrPathEscape, "lexically invalid entry"), "entry_path", hdr.Name)
		}
		if !ok {
			continue
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := e.ensureDir(canonicalOut, rel, checkedDirs); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := e.extractFile(canonicalOut, rel, hdr, tr, checkedDirs); err != nil {
				return err
			}
		default:
			// Symlinks and hardlinks in a downloaded archive are never
			// followed.
			e.logger.Warn(fmt.Sprintf("skipping unsupported tar entry %q (type %d)", hdr.Name, hdr.Typeflag))
		}
	}
}

func (e *Extractor) extractFile(canonicalOut, rel string, hdr *tar.Header, r io.Reader, checkedDirs map[string]struct{}) error {
	if err := e.ensureDir(canonicalOut, path.Dir(rel), checkedDirs); err != nil {
		return err
	}

	target := filepath.Join(canonicalOut, filepath.FromSlash(rel))
	perm := hdr.FileInfo().Mode().Perm()
	if perm == 0 {
		perm = 0o644
	}
	f, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm) //nolint:gosec // path is escape-checked
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create file"), "path", target)
	}
	if _, err := io.Copy(f, r); err != nil { //nolint:gosec // size bounded by the downloaded tarball
		_ = f.Close() //nolint:errcheck // already failing
		return zerr.With(zerr.Wrap(err, "failed to write file"), "path", target)
	}
	if err := f.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to close file"), "path", target)
	}
	return nil
}

// ensureDir creates the directory for rel under canonicalOut and asserts its
// canonical path is still a descendant of canonicalOut.
func (e *Extractor) ensureDir(canonicalOut, rel string, checkedDirs map[string]struct{}) error {
	if rel == "." || rel == "" {
		return nil
	}

	full := filepath.Join(canonicalOut, filepath.FromSlash(rel))
	if _, done := checkedDirs[full]; done {
		return nil
	}

	if err := os.MkdirAll(full, 0o755); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", full)
	}
	canon, err := filepath.EvalSymlinks(full)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to canonicalize directory"), "path", full)
	}
	if canon != canonicalOut && !strings.HasPrefix(canon, canonicalOut+string(filepath.Separator)) {
		return zerr.With(zerr.Wrap(domain.ErrPathEscape, "directory resolves outside output folder"), "entry_path", rel)
	}

	checkedDirs[full] = struct{}{}
	return nil
}

// stripLeadingComponent drops the tar's single wrapper directory from an
// entry name. Entries that lexically escape (absolute paths or ".."
// segments) are flagged before anything touches the filesystem.
func stripLeadingComponent(name string) (rel string, ok, escaped bool) {
	clean := path.Clean(filepath.ToSlash(name))
	if clean == ".." || strings.HasPrefix(clean, "../") || strings.HasPrefix(clean, "/") {
		return "", false, true
	}
	if clean == "." {
		return "", false, false
	}
	cut := strings.Index(clean, "/")
	if cut < 0 {
		// The wrapper directory itself.
		return "", false, false
	}
	rel = clean[cut+1:]
	if rel == "" || rel == "." {
		return "", false, false
	}
	return rel, true, false
}

// renameWithRetry moves the extracted temp directory into place. A rename
// failure with the destination already present means another process
// completed equivalent work; the loser's temp directory is discarded and the
// call succeeds. Other failures are retried with backoff.
func (e *Extractor) renameWithRetry(nv domain.PackageVersion, tempDir, outputDir string) error {
	var lastErr error
	for attempt := 1; attempt <= renameAttempts; attempt++ {
		if attempt > 1 {
			time.Sleep(min(renameBackoffMax, time.Duration(attempt-1)*renameBackoffStep))
		}

		err := os.Rename(tempDir, outputDir)
		if err == nil {
			return nil
		}
		lastErr = err

		if _, statErr := os.Stat(outputDir); statErr == nil {
			_ = os.RemoveAll(tempDir) //nolint:errcheck // loser's copy
			return nil
		}
	}

	_ = os.RemoveAll(tempDir) //nolint:errcheck // best effort
	err := zerr.Wrap(lastErr, "failed to move extracted package into place")
	err = zerr.With(err, "package", nv.String())
	return zerr.With(err, "path", outputDir)
}

package tarball

import (
	"archive/tar"
	"bytes"
	"crypto/sha512"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pakt/internal/core/domain"
)

type recordingLogger struct {
	warns []string
}

func (l *recordingLogger) Info(string)     {}
func (l *recordingLogger) Warn(msg string) { l.warns = append(l.warns, msg) }
func (l *recordingLogger) Error(error)     {}

type tarEntry struct {
	name     string
	typeflag byte
	body     string
	linkname string
}

func makeTarball(t *testing.T, entries []tarEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for _, e := range entries {
		typeflag := e.typeflag
		if typeflag == 0 {
			typeflag = tar.TypeReg
		}
		mode := int64(0o644)
		if typeflag == tar.TypeDir {
			mode = 0o755
		}
		hdr := &tar.Header{
			Name:     e.name,
			Typeflag: typeflag,
			Mode:     mode,
			Size:     int64(len(e.body)),
			Linkname: e.linkname,
		}
		require.NoError(t, tw.WriteHeader(hdr))
		if typeflag == tar.TypeReg {
			_, err := tw.Write([]byte(e.body))
			require.NoError(t, err)
		}
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

func TestExtract_StripsLeadingComponent(t *testing.T) {
	data := makeTarball(t, []tarEntry{
		{name: "package/", typeflag: tar.TypeDir},
		{name: "package/package.json", body: `{"name":"left-pad"}`},
		{name: "package/lib/index.js", body: "module.exports = pad"},
	})

	dir := t.TempDir()
	e := NewExtractor(&recordingLogger{})
	require.NoError(t, e.Extract(data, dir))

	got, err := os.ReadFile(filepath.Join(dir, "package.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"name":"left-pad"}`, string(got))

	got, err = os.ReadFile(filepath.Join(dir, "lib", "index.js"))
	require.NoError(t, err)
	assert.Equal(t, "module.exports = pad", string(got))
}

func TestExtract_SkipsSymlinkEntries(t *testing.T) {
	data := makeTarball(t, []tarEntry{
		{name: "package/index.js", body: "ok"},
		{name: "package/evil", typeflag: tar.TypeSymlink, linkname: "/etc/passwd"},
		{name: "package/hard", typeflag: tar.TypeLink, linkname: "package/index.js"},
	})

	dir := t.TempDir()
	log := &recordingLogger{}
	require.NoError(t, NewExtractor(log).Extract(data, dir))

	assert.Len(t, log.warns, 2)
	_, err := os.Lstat(filepath.Join(dir, "evil"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Lstat(filepath.Join(dir, "hard"))
	assert.True(t, os.IsNotExist(err))
}

func TestExtract_RejectsPathEscape(t *testing.T) {
	dir := t.TempDir()
	e := NewExtractor(&recordingLogger{})

	// Lexical escapes abort before touching the filesystem.
	data := makeTarball(t, []tarEntry{
		{name: "package/../../outside.txt", body: "nope"},
	})
	err := e.Extract(data, dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPathEscape)
	_, statErr := os.Stat(filepath.Join(filepath.Dir(dir), "outside.txt"))
	assert.True(t, os.IsNotExist(statErr))

	// A directory that canonicalizes outside the output folder aborts.
	outside := t.TempDir()
	victim := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(outside, victim))
	data = makeTarball(t, []tarEntry{
		{name: "package/link/escaped.txt", body: "nope"},
	})
	err = e.Extract(data, dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPathEscape)
	_, statErr = os.Stat(filepath.Join(outside, "escaped.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestVerifyAndExtract_AtomicSibling(t *testing.T) {
	nv := domain.NewPackageVersion("left-pad", "1.3.0")
	data := makeTarball(t, []tarEntry{
		{name: "package/index.js", body: "pad"},
	})
	sum := sha512.Sum512(data)
	dist := domain.DistInfo{
		Integrity: "sha512-" + base64.StdEncoding.EncodeToString(sum[:]),
	}

	parent := t.TempDir()
	dest := filepath.Join(parent, "1.3.0")
	e := NewExtractor(&recordingLogger{})

	require.NoError(t, e.VerifyAndExtract(nv, data, dist, dest, ModeAtomicSibling))
	got, err := os.ReadFile(filepath.Join(dest, "index.js"))
	require.NoError(t, err)
	assert.Equal(t, "pad", string(got))

	// No temp siblings left behind.
	entries, err := os.ReadDir(parent)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "1.3.0", entries[0].Name())
}

func TestVerifyAndExtract_DestinationAlreadyPopulated(t *testing.T) {
	nv := domain.NewPackageVersion("left-pad", "1.3.0")
	data := makeTarball(t, []tarEntry{
		{name: "package/index.js", body: "pad"},
	})

	parent := t.TempDir()
	dest := filepath.Join(parent, "1.3.0")
	require.NoError(t, os.MkdirAll(dest, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dest, "index.js"), []byte("winner"), 0o600))

	// Rename over a non-empty directory fails, which converges on the copy
	// some other process already completed.
	e := NewExtractor(&recordingLogger{})
	require.NoError(t, e.VerifyAndExtract(nv, data, domain.DistInfo{}, dest, ModeAtomicSibling))

	got, err := os.ReadFile(filepath.Join(dest, "index.js"))
	require.NoError(t, err)
	assert.Equal(t, "winner", string(got))

	entries, err := os.ReadDir(parent)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestVerifyAndExtract_ChecksumMismatch(t *testing.T) {
	nv := domain.NewPackageVersion("left-pad", "1.3.0")
	data := makeTarball(t, []tarEntry{{name: "package/index.js", body: "pad"}})
	dist := domain.DistInfo{Shasum: "0000000000000000000000000000000000000000"}

	dir := filepath.Join(t.TempDir(), "1.3.0")
	err := NewExtractor(&recordingLogger{}).VerifyAndExtract(nv, data, dist, dir, ModeAtomicSibling)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrChecksumMismatch)
	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
}

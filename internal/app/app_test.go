package app_test

import (
	"archive/tar"
	"bytes"
	"crypto/sha512"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"go.trai.ch/pakt/internal/adapters/config"
	"go.trai.ch/pakt/internal/adapters/lockfileio"
	"go.trai.ch/pakt/internal/adapters/shell"
	"go.trai.ch/pakt/internal/adapters/tarball"
	"go.trai.ch/pakt/internal/adapters/telemetry"
	"go.trai.ch/pakt/internal/app"
	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/pakt/internal/core/ports/mocks"
)

func relaxedLogger(t *testing.T) *mocks.MockLogger {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()
	return log
}

func packTarball(t *testing.T, files map[string]string) ([]byte, string) {
	t.Helper()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for name, body := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     "package/" + name,
			Typeflag: tar.TypeReg,
			Mode:     0o644,
			Size:     int64(len(body)),
		}))
		_, err := tw.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())

	sum := sha512.Sum512(buf.Bytes())
	return buf.Bytes(), "sha512-" + base64.StdEncoding.EncodeToString(sum[:])
}

// newRegistryServer serves a two-package registry: "a" depending on "b",
// plus the type-definitions package the installer injects implicitly.
func newRegistryServer(t *testing.T) *httptest.Server {
	t.Helper()

	tarA, integrityA := packTarball(t, map[string]string{"index.js": "module.exports = 'a'"})
	tarB, integrityB := packTarball(t, map[string]string{"index.js": "module.exports = 'b'"})

	metadata := func(r *http.Request, name, version string, deps map[string]string, integrity string) *domain.RegistryPackageData {
		return &domain.RegistryPackageData{
			Name:     name,
			DistTags: map[string]string{"latest": version},
			Versions: map[string]domain.RegistryVersionData{
				version: {
					Version:      version,
					Dependencies: deps,
					Dist: domain.DistInfo{
						Tarball:   fmt.Sprintf("http://%s/%s/-/%s-%s.tgz", r.Host, name, name, version),
						Integrity: integrity,
					},
				},
			},
		}
	}

	// Scoped names arrive with an escaped separator ("@types%2Fnode"), so
	// routing keys off the escaped path instead of a ServeMux pattern.
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON := func(v any) {
			require.NoError(t, json.NewEncoder(w).Encode(v))
		}
		switch r.URL.EscapedPath() {
		case "/a":
			writeJSON(metadata(r, "a", "1.2.0", map[string]string{"b": "^2.0.0"}, integrityA))
		case "/b":
			writeJSON(metadata(r, "b", "2.1.0", nil, integrityB))
		case "/@types%2Fnode":
			writeJSON(metadata(r, "@types/node", "22.0.0", nil, ""))
		case "/a/-/a-1.2.0.tgz":
			_, _ = w.Write(tarA)
		case "/b/-/b-2.1.0.tgz":
			_, _ = w.Write(tarB)
		default:
			http.NotFound(w, r)
		}
	})

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func writeProject(t *testing.T, registryURL, cacheDir string) string {
	t.Helper()
	dir := t.TempDir()
	content := fmt.Sprintf(`version: "1"
registry: %s
jsrRegistry: %s
cacheDir: %s
dependencies:
  a: ^1.0.0
`, registryURL, registryURL, cacheDir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.Filename), []byte(content), 0o600))
	return dir
}

func newApp(t *testing.T) *app.App {
	t.Helper()
	log := relaxedLogger(t)
	return app.New(
		config.NewLoader(log),
		tarball.NewExtractor(log),
		shell.NewRunner(log),
		telemetry.NewNoOp(),
		log,
	)
}

func TestApp_Install_EndToEnd(t *testing.T) {
	server := newRegistryServer(t)
	cacheDir := t.TempDir()
	projectDir := writeProject(t, server.URL, cacheDir)

	a := newApp(t)
	require.NoError(t, a.Install(t.Context(), app.Options{Dir: projectDir}))

	store := lockfileio.NewStore(filepath.Join(projectDir, "pakt.lock"))
	content, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, "a@1.2.0", content.Specifiers["npm:a@^1.0.0"])
	entryA, ok := content.Npm["a@1.2.0"]
	require.True(t, ok, "root package body must be recorded")
	assert.Equal(t, map[string]string{"b": "b@2.1.0"}, entryA.Dependencies)
	_, ok = content.Npm["b@2.1.0"]
	assert.True(t, ok, "transitive dependency body must be recorded")

	host, err := url.Parse(server.URL)
	require.NoError(t, err)
	for _, folder := range []string{"a/1.2.0", "b/2.1.0"} {
		path := filepath.Join(cacheDir, host.Host, filepath.FromSlash(folder), "index.js")
		assert.FileExists(t, path, "cache copy for %s", folder)
	}
}

func TestApp_Install_Idempotent(t *testing.T) {
	server := newRegistryServer(t)
	cacheDir := t.TempDir()
	projectDir := writeProject(t, server.URL, cacheDir)

	require.NoError(t, newApp(t).Install(t.Context(), app.Options{Dir: projectDir}))
	require.NoError(t, newApp(t).Install(t.Context(), app.Options{Dir: projectDir}))

	content, err := lockfileio.NewStore(filepath.Join(projectDir, "pakt.lock")).Load()
	require.NoError(t, err)
	assert.Len(t, content.Specifiers, 1)
}

func TestApp_Install_FrozenRejectsMissingLockfile(t *testing.T) {
	server := newRegistryServer(t)
	projectDir := writeProject(t, server.URL, t.TempDir())

	err := newApp(t).Install(t.Context(), app.Options{Dir: projectDir, Frozen: true})
	require.ErrorIs(t, err, domain.ErrLockfileChanged)
	assert.NoFileExists(t, filepath.Join(projectDir, "pakt.lock"))
}

func TestApp_Remove_KeepsRegistryBody(t *testing.T) {
	server := newRegistryServer(t)
	projectDir := writeProject(t, server.URL, t.TempDir())

	a := newApp(t)
	require.NoError(t, a.Install(t.Context(), app.Options{Dir: projectDir}))
	require.NoError(t, a.Remove(t.Context(), app.Options{Dir: projectDir}, []string{"a"}))

	content, err := lockfileio.NewStore(filepath.Join(projectDir, "pakt.lock")).Load()
	require.NoError(t, err)
	assert.NotContains(t, content.Specifiers, "npm:a@^1.0.0")
	_, ok := content.Npm["a@1.2.0"]
	assert.True(t, ok, "registry package bodies survive root removal for reuse")
}

func TestApp_Add_RecordsNewRoot(t *testing.T) {
	server := newRegistryServer(t)
	projectDir := writeProject(t, server.URL, t.TempDir())

	a := newApp(t)
	require.NoError(t, a.Install(t.Context(), app.Options{Dir: projectDir}))
	require.NoError(t, a.Add(t.Context(), app.Options{Dir: projectDir}, []string{"npm:b@^2.0.0"}))

	content, err := lockfileio.NewStore(filepath.Join(projectDir, "pakt.lock")).Load()
	require.NoError(t, err)
	assert.Equal(t, "b@2.1.0", content.Specifiers["npm:b@^2.0.0"])
	assert.Equal(t, "a@1.2.0", content.Specifiers["npm:a@^1.0.0"], "existing roots survive an add")
}

func TestApp_CachePackages_DoesNotTouchLockfile(t *testing.T) {
	server := newRegistryServer(t)
	cacheDir := t.TempDir()
	projectDir := writeProject(t, server.URL, cacheDir)

	a := newApp(t)
	require.NoError(t, a.CachePackages(t.Context(), app.Options{Dir: projectDir}, nil))

	assert.NoFileExists(t, filepath.Join(projectDir, "pakt.lock"))
	host, err := url.Parse(server.URL)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(cacheDir, host.Host, "a", "1.2.0", "index.js"))
}

package registry_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pakt/internal/adapters/cache"
	"go.trai.ch/pakt/internal/adapters/registry"
	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/pakt/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func testLogger(t *testing.T) *mocks.MockLogger {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	return log
}

func newFixtureServer(t *testing.T, hits *atomic.Int64) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/left-pad", func(w http.ResponseWriter, _ *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		data := domain.RegistryPackageData{
			Name:     "left-pad",
			DistTags: map[string]string{"latest": "1.3.0"},
			Versions: map[string]domain.RegistryVersionData{
				"1.3.0": {Version: "1.3.0"},
				"1.2.0": {Version: "1.2.0"},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(data))
	})
	mux.HandleFunc("/left-pad/-/left-pad-1.3.0.tgz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("tarball bytes"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, srv *httptest.Server, setting domain.CacheSetting) *registry.Client {
	t.Helper()
	c, err := cache.New(t.TempDir(), srv.URL, setting, testLogger(t))
	require.NoError(t, err)
	return registry.NewClient(srv.URL, c, testLogger(t))
}

func TestPackageInfo_FetchesAndCaches(t *testing.T) {
	var hits atomic.Int64
	srv := newFixtureServer(t, &hits)
	client := newTestClient(t, srv, domain.CacheSetting{Kind: domain.CacheUse})

	info, err := client.PackageInfo(t.Context(), "left-pad")
	require.NoError(t, err)
	assert.Equal(t, "1.3.0", info.DistTags["latest"])
	assert.Equal(t, int64(1), hits.Load())

	// Second lookup is served from the metadata cache.
	info, err = client.PackageInfo(t.Context(), "left-pad")
	require.NoError(t, err)
	assert.Len(t, info.Versions, 2)
	assert.Equal(t, int64(1), hits.Load())
}

func TestPackageInfo_NotFound(t *testing.T) {
	srv := newFixtureServer(t, nil)
	client := newTestClient(t, srv, domain.CacheSetting{Kind: domain.CacheUse})

	_, err := client.PackageInfo(t.Context(), "no-such-package")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPackageNotFound)
}

func TestPackageInfo_CacheOnly(t *testing.T) {
	var hits atomic.Int64
	srv := newFixtureServer(t, &hits)
	client := newTestClient(t, srv, domain.CacheSetting{Kind: domain.CacheOnly})

	_, err := client.PackageInfo(t.Context(), "left-pad")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCacheOnly)
	assert.Zero(t, hits.Load())
}

func TestPackageVersionInfo(t *testing.T) {
	srv := newFixtureServer(t, nil)
	client := newTestClient(t, srv, domain.CacheSetting{Kind: domain.CacheUse})

	version, err := client.PackageVersionInfo(t.Context(), domain.NewPackageVersion("left-pad", "1.2.0"))
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", version.Version)

	_, err = client.PackageVersionInfo(t.Context(), domain.NewPackageVersion("left-pad", "9.9.9"))
	assert.ErrorIs(t, err, domain.ErrPackageNotFound)
}

func TestFetchTarball(t *testing.T) {
	srv := newFixtureServer(t, nil)
	client := newTestClient(t, srv, domain.CacheSetting{Kind: domain.CacheUse})

	nv := domain.NewPackageVersion("left-pad", "1.3.0")
	body, err := client.FetchTarball(t.Context(), client.TarballURL(nv))
	require.NoError(t, err)
	assert.Equal(t, "tarball bytes", string(body))
}

func TestRefreshPackageInfo_BypassesCache(t *testing.T) {
	var hits atomic.Int64
	srv := newFixtureServer(t, &hits)
	client := newTestClient(t, srv, domain.CacheSetting{Kind: domain.CacheUse})

	_, err := client.PackageInfo(t.Context(), "left-pad")
	require.NoError(t, err)
	_, err = client.RefreshPackageInfo(t.Context(), "left-pad")
	require.NoError(t, err)
	assert.Equal(t, int64(2), hits.Load())
}

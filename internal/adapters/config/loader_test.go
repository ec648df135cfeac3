package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pakt/internal/adapters/config"
	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/pakt/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, config.Filename)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return tmpDir
}

func TestLoad_Success(t *testing.T) {
	dir := writeConfig(t, `
version: "1"
registry: https://registry.example.com
cacheDir: /var/cache/pakt
lockfile: deps.lock
cache: reload:left-pad
dependencies:
  lodash: "^4.17.0"
  "@std/path": "jsr:^1.0.0"
`)

	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))
	cfg, err := loader.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "https://registry.example.com", cfg.RegistryURL)
	assert.Equal(t, config.DefaultJsrURL, cfg.JsrURL)
	assert.Equal(t, "/var/cache/pakt", cfg.CacheDir)
	assert.Equal(t, "deps.lock", cfg.LockfilePath)
	assert.Equal(t, domain.CacheReloadSome, cfg.CacheSetting.Kind)
	assert.Equal(t, []string{"left-pad"}, cfg.CacheSetting.Names)

	// Name order is deterministic.
	require.Len(t, cfg.Dependencies, 2)
	assert.Equal(t, domain.NewRequirement(domain.KindJsr, "@std/path", "^1.0.0"), cfg.Dependencies[0])
	assert.Equal(t, domain.NewRequirement(domain.KindRegistry, "lodash", "^4.17.0"), cfg.Dependencies[1])
}

func TestLoad_Defaults(t *testing.T) {
	dir := writeConfig(t, `
version: "1"
dependencies:
  lodash: "*"
`)

	ctrl := gomock.NewController(t)
	cfg, err := config.NewLoader(mocks.NewMockLogger(ctrl)).Load(dir)
	require.NoError(t, err)

	assert.Equal(t, config.DefaultRegistryURL, cfg.RegistryURL)
	assert.Equal(t, config.DefaultLockfileName, cfg.LockfilePath)
	assert.Equal(t, domain.CacheUse, cfg.CacheSetting.Kind)
	assert.NotEmpty(t, cfg.CacheDir)
}

func TestLoad_MissingFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	_, err := config.NewLoader(mocks.NewMockLogger(ctrl)).Load(t.TempDir())
	require.Error(t, err)
}

func TestParseCacheSetting(t *testing.T) {
	tests := []struct {
		in      string
		want    domain.CacheSetting
		wantErr bool
	}{
		{in: "", want: domain.CacheSetting{Kind: domain.CacheUse}},
		{in: "use", want: domain.CacheSetting{Kind: domain.CacheUse}},
		{in: "only", want: domain.CacheSetting{Kind: domain.CacheOnly}},
		{in: "reload-all", want: domain.CacheSetting{Kind: domain.CacheReloadAll}},
		{in: "reload:a,b", want: domain.CacheSetting{Kind: domain.CacheReloadSome, Names: []string{"a", "b"}}},
		{in: "never", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := config.ParseCacheSetting(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

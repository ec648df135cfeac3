// Package registry implements the HTTP client for npm-style package
// registries, with metadata served through the package cache.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.trai.ch/pakt/internal/adapters/cache"
	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/pakt/internal/core/ports"
	"go.trai.ch/zerr"
)

const requestTimeout = 30 * time.Second

// Client implements ports.RegistryClient and ports.TarballFetcher against an
// npm-style registry.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *cache.Cache
	logger  ports.Logger
}

// NewClient creates a Client for the registry at baseURL. Metadata lookups
// go through the given cache according to its trust policy.
func NewClient(baseURL string, c *cache.Cache, logger ports.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: requestTimeout},
		cache:   c,
		logger:  logger,
	}
}

// PackageInfo returns the full metadata blob for name. When the cache
// setting trusts the cached copy it is served without a network round trip;
// a malformed cached blob is treated as a miss, not a crash.
func (c *Client) PackageInfo(ctx context.Context, name string) (*domain.RegistryPackageData, error) {
	if c.cache.Setting().ShouldUse(name) {
		data, err := c.cache.LoadPackageInfo(name)
		if err != nil {
			c.logger.Warn(fmt.Sprintf("discarding unreadable cached metadata for %s: %v", name, err))
		}
		if data != nil {
			return data, nil
		}
	}

	if !c.cache.Setting().AllowsNetwork() {
		return nil, zerr.With(zerr.Wrap(domain.ErrCacheOnly, "metadata not cached"), "package", name)
	}
	return c.RefreshPackageInfo(ctx, name)
}

// RefreshPackageInfo bypasses the metadata cache, fetches fresh metadata,
// and writes it back for later runs.
func (c *Client) RefreshPackageInfo(ctx context.Context, name string) (*domain.RegistryPackageData, error) {
	body, err := c.get(ctx, c.baseURL+"/"+escapeName(name), name)
	if err != nil {
		return nil, err
	}

	var data domain.RegistryPackageData
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse registry metadata"), "package", name)
	}
	if data.Name == "" {
		data.Name = name
	}

	if err := c.cache.SavePackageInfo(&data); err != nil {
		// A cache write failure costs a refetch next run, nothing more.
		c.logger.Warn(fmt.Sprintf("failed to cache metadata for %s: %v", name, err))
	}
	return &data, nil
}

// PackageVersionInfo returns the metadata of one concrete version.
func (c *Client) PackageVersionInfo(ctx context.Context, nv domain.PackageVersion) (*domain.RegistryVersionData, error) {
	info, err := c.PackageInfo(ctx, nv.Name.String())
	if err != nil {
		return nil, err
	}
	version, ok := info.Versions[nv.Version]
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrPackageNotFound, "unknown version"), "package", nv.String())
	}
	return &version, nil
}

// FetchTarball downloads the archive at the given URL.
func (c *Client) FetchTarball(ctx context.Context, tarballURL string) ([]byte, error) {
	if !c.cache.Setting().AllowsNetwork() {
		return nil, zerr.With(zerr.Wrap(domain.ErrCacheOnly, "tarball download forbidden"), "url", tarballURL)
	}
	return c.get(ctx, tarballURL, tarballURL)
}

// TarballURL returns the registry's conventional archive location for nv,
// used when version metadata carries no explicit tarball override.
func (c *Client) TarballURL(nv domain.PackageVersion) string {
	name := nv.Name.String()
	base := name
	if i := strings.LastIndex(name, "/"); i >= 0 {
		base = name[i+1:]
	}
	return fmt.Sprintf("%s/%s/-/%s-%s.tgz", c.baseURL, name, base, nv.Version)
}

func (c *Client) get(ctx context.Context, rawURL, subject string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to build registry request"), "url", rawURL)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "registry request failed"), "url", rawURL)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only stream

	switch {
	case resp.StatusCode == http.StatusNotFound:
		// Distinct recoverable signal: a resolver can try other candidates.
		return nil, zerr.With(zerr.Wrap(domain.ErrPackageNotFound, "registry returned 404"), "subject", subject)
	case resp.StatusCode != http.StatusOK:
		err := zerr.With(zerr.New("unexpected registry response"), "status", resp.Status)
		return nil, zerr.With(err, "url", rawURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read registry response"), "url", rawURL)
	}
	return body, nil
}

// escapeName encodes the scope separator the way registries expect for
// metadata lookups.
func escapeName(name string) string {
	return strings.ReplaceAll(name, "/", "%2F")
}

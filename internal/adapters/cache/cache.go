// Package cache owns the on-disk package cache layout, registry metadata
// caching, and copy duplication for diamond dependencies.
//
// Layout: <root>/<registry-host>/<name>/<version>[_<copy>], with a per-name
// registry.json metadata blob next to the version folders. Folders are
// append-only and immutable once their sync sentinel is gone.
package cache

import (
	"net/url"
	"sync"

	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/pakt/internal/core/ports"
	"go.trai.ch/zerr"
)

// Cache is the on-disk package cache for one registry.
type Cache struct {
	root    string
	host    string
	setting domain.CacheSetting
	logger  ports.Logger

	mu       sync.Mutex
	reloaded map[domain.PackageVersion]struct{}
}

// New creates a Cache rooted at root for the registry at registryURL.
//
// The reload bookkeeping is scoped to this instance, not the process, so
// separate instances never interfere.
func New(root, registryURL string, setting domain.CacheSetting, logger ports.Logger) (*Cache, error) {
	u, err := url.Parse(registryURL)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse registry url"), "url", registryURL)
	}
	host := u.Host
	if host == "" {
		return nil, zerr.With(zerr.New("registry url has no host"), "url", registryURL)
	}
	return &Cache{
		root:     root,
		host:     host,
		setting:  setting,
		logger:   logger,
		reloaded: make(map[domain.PackageVersion]struct{}),
	}, nil
}

// Setting returns the cache trust policy this instance runs under.
func (c *Cache) Setting() domain.CacheSetting {
	return c.setting
}

// ShouldReload reports whether an existing copy of nv must be re-downloaded
// under the current setting. It returns true at most once per package per
// instance: later references within the same run use the freshly reloaded
// copy instead of reloading repeatedly.
func (c *Cache) ShouldReload(nv domain.PackageVersion) bool {
	if c.setting.ShouldUse(nv.Name.String()) {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, done := c.reloaded[nv]; done {
		return false
	}
	c.reloaded[nv] = struct{}{}
	return true
}

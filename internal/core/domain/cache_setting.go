package domain

// CacheSettingKind enumerates the trust policies for existing cache entries.
type CacheSettingKind uint8

const (
	// CacheUse trusts every existing cache entry.
	CacheUse CacheSettingKind = iota
	// CacheOnly forbids network access; only existing entries may be used.
	CacheOnly
	// CacheReloadAll distrusts every existing entry once per run.
	CacheReloadAll
	// CacheReloadSome distrusts entries for an explicit set of names.
	CacheReloadSome
)

// CacheSetting governs whether existing cache entries are trusted for a run.
type CacheSetting struct {
	Kind  CacheSettingKind
	Names []string
}

// ShouldUse reports whether an existing cache entry for the named package may
// be used. It is false only under ReloadAll, or under ReloadSome when the
// name is listed.
func (s CacheSetting) ShouldUse(name string) bool {
	switch s.Kind {
	case CacheReloadAll:
		return false
	case CacheReloadSome:
		for _, n := range s.Names {
			if n == name {
				return false
			}
		}
	}
	return true
}

// AllowsNetwork reports whether the setting permits downloads at all.
func (s CacheSetting) AllowsNetwork() bool {
	return s.Kind != CacheOnly
}

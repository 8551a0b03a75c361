package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/mod/module"
)

// LatestSpec selects the newest stable release.
const LatestSpec = "latest"

// RemoteCatalog lists published versions of the managed tools.
type RemoteCatalog struct {
	fetcher  Fetcher
	settings *Settings
	cache    *catalogCache
	log      *zap.Logger
}

// NewRemoteCatalog creates a catalog client.
func NewRemoteCatalog(fetcher Fetcher, settings *Settings, paths Paths, log *zap.Logger) *RemoteCatalog {
	if log == nil {
		log = zap.NewNop()
	}
	return &RemoteCatalog{
		fetcher:  fetcher,
		settings: settings,
		cache:    &catalogCache{paths: paths},
		log:      log,
	}
}

// Fetch downloads the version list for a tool, newest first.
func (c *RemoteCatalog) Fetch(ctx context.Context, t Tool) ([]RemoteVersionInfo, error) {
	if t.IsAuxiliary() {
		return c.fetchModuleVersions(ctx, t)
	}
	return c.fetchGoReleases(ctx)
}

func (c *RemoteCatalog) fetchGoReleases(ctx context.Context) ([]RemoteVersionInfo, error) {
	url := c.settings.CatalogURL
	c.log.Debug("fetching go catalog", zap.String("url", url))
	data, err := c.fetcher.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, &FetchError{URL: url, Err: errors.New("invalid JSON in catalog response")}
	}

	var versions []RemoteVersionInfo
	gjson.ParseBytes(data).ForEach(func(_, entry gjson.Result) bool {
		v := strings.TrimPrefix(entry.Get("version").String(), "go")
		if v == "" {
			return true
		}
		versions = append(versions, RemoteVersionInfo{
			Version: v,
			Stable:  entry.Get("stable").Bool(),
		})
		return true
	})
	return versions, nil
}

func (c *RemoteCatalog) fetchModuleVersions(ctx context.Context, t Tool) ([]RemoteVersionInfo, error) {
	url, err := c.proxyURL(t, "@v/list")
	if err != nil {
		return nil, err
	}
	c.log.Debug("fetching module versions", zap.String("tool", t.Name), zap.String("url", url))
	data, err := c.fetcher.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	var versions []RemoteVersionInfo
	for _, line := range strings.Split(string(data), "\n") {
		v := strings.TrimSpace(line)
		if v == "" {
			continue
		}
		versions = append(versions, RemoteVersionInfo{Version: v, Stable: isStableVersion(v)})
	}
	sortNewestFirst(versions)
	return versions, nil
}

// Latest returns the newest published version of an auxiliary tool as
// reported by the module proxy.
func (c *RemoteCatalog) Latest(ctx context.Context, t Tool) (string, error) {
	url, err := c.proxyURL(t, "@latest")
	if err != nil {
		return "", err
	}
	data, err := c.fetcher.Get(ctx, url)
	if err != nil {
		return "", err
	}
	v := gjson.GetBytes(data, "Version").String()
	if v == "" {
		return "", &FetchError{URL: url, Err: errors.New("response has no Version field")}
	}
	return v, nil
}

func (c *RemoteCatalog) proxyURL(t Tool, suffix string) (string, error) {
	escaped, err := module.EscapePath(t.Module)
	if err != nil {
		return "", fmt.Errorf("escaping module path %s: %w", t.Module, err)
	}
	return c.settings.ProxyURL + "/" + escaped + "/" + suffix, nil
}

// List returns the catalog for a tool, falling back to the cached snapshot
// when the network is unavailable. A fetch whose newest entry matches the
// cache's is served from the cache without rewriting it.
func (c *RemoteCatalog) List(ctx context.Context, t Tool) (ListResult, error) {
	cached := c.cache.read(t.Name)

	fetched, err := c.Fetch(ctx, t)
	if err != nil {
		if len(cached) == 0 {
			return ListResult{}, err
		}
		c.log.Warn("catalog fetch failed, using cache", zap.String("tool", t.Name), zap.Error(err))
		return ListResult{
			Versions:  cached,
			FromCache: true,
			Degraded:  true,
			Warnings:  []string{fmt.Sprintf("Failed to fetch latest versions (%v). Showing cached results.", err)},
		}, nil
	}

	if len(cached) > 0 && len(fetched) > 0 && cached[0].Version == fetched[0].Version {
		return ListResult{Versions: cached, FromCache: true}, nil
	}

	result := ListResult{Versions: fetched}
	if err := c.cache.write(t.Name, fetched); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Failed to update cache: %v", err))
	}
	return result, nil
}

// Resolve turns a user spec into a concrete published version.
func (c *RemoteCatalog) Resolve(ctx context.Context, t Tool, spec string) (string, error) {
	spec = CleanVersion(t.Name, spec)
	if t.IsAuxiliary() {
		if spec == LatestSpec {
			return c.Latest(ctx, t)
		}
		if !IsPartialSpec(spec) {
			return ensureVPrefix(spec), nil
		}
	}
	res, err := c.List(ctx, t)
	if err != nil {
		return "", err
	}
	for _, w := range res.Warnings {
		c.log.Warn(w)
	}
	return Match(t.Name, spec, res.Versions)
}

// Match selects the catalog entry satisfying spec. catalog is ordered
// newest first.
//
//	"latest"  the first stable entry
//	"1.22.3"  that exact entry
//	"1.22"    the highest stable 1.22.x, unless "1.22" is itself an entry
//
// An exact entry always wins, so "1.20" selects the 1.20 release.
func Match(tool, spec string, catalog []RemoteVersionInfo) (string, error) {
	spec = CleanVersion(tool, spec)
	if spec == "" {
		return "", userInputf("empty version for %s", tool)
	}

	if spec == LatestSpec {
		for _, v := range catalog {
			if v.Stable {
				return v.Version, nil
			}
		}
		return "", ErrNoStableVersion
	}

	for _, v := range catalog {
		if v.Version == spec || (tool != GoToolName && v.Version == ensureVPrefix(spec)) {
			return v.Version, nil
		}
	}

	if IsPartialSpec(spec) {
		stable := make([]string, 0, len(catalog))
		for _, v := range catalog {
			if v.Stable {
				stable = append(stable, v.Version)
			}
		}
		if match, ok := matchPartial(spec, stable); ok {
			return match, nil
		}
	}
	return "", &VersionNotFoundError{Tool: tool, Spec: spec}
}

func ensureVPrefix(v string) string {
	if strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}

func sortNewestFirst(versions []RemoteVersionInfo) {
	sort.SliceStable(versions, func(i, j int) bool {
		vi, errI := semver.NewVersion(versions[i].Version)
		vj, errJ := semver.NewVersion(versions[j].Version)
		if errI != nil || errJ != nil {
			return errI == nil && errJ != nil
		}
		return vi.GreaterThan(vj)
	})
}

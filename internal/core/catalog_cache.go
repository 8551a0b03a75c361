package core

import (
	"encoding/json"
	"fmt"
	"os"
)

// catalogCache stores the last fetched catalog of each tool. It is never
// authoritative: unreadable or corrupt snapshots count as empty.
type catalogCache struct {
	paths Paths
}

func (c *catalogCache) read(tool string) []RemoteVersionInfo {
	data, err := os.ReadFile(c.paths.CatalogCacheFile(tool))
	if err != nil {
		return nil
	}
	var versions []RemoteVersionInfo
	if err := json.Unmarshal(data, &versions); err != nil {
		return nil
	}
	return versions
}

func (c *catalogCache) write(tool string, versions []RemoteVersionInfo) error {
	data, err := json.MarshalIndent(versions, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling catalog: %w", err)
	}
	data = append(data, '\n')
	return writeConfigFile(c.paths.CatalogCacheFile(tool), string(data))
}

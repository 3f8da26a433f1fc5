// Package registry reads the local plugin registry (installed plugins
// plus known marketplaces) and compares installed versions against the
// marketplace clones on disk. It never touches the network: remote
// state is whatever the local clone last fetched.
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// UpdateStatus is the outcome of one plugin check.
type UpdateStatus string

const (
	StatusUpToDate        UpdateStatus = "up_to_date"
	StatusUpdateAvailable UpdateStatus = "update_available"
	StatusUnknownVersion  UpdateStatus = "unknown_version"
	StatusError           UpdateStatus = "error"
)

// InstalledPlugin is one entry of installed_plugins.json.
type InstalledPlugin struct {
	Scope       string `json:"scope"`
	InstallPath string `json:"installPath"`
	Version     string `json:"version"`
}

// installedFile models installed_plugins.json. Plugin values are kept
// raw because v1 wrote a single object where v2 writes an array.
type installedFile struct {
	Version int                        `json:"version"`
	Plugins map[string]json.RawMessage `json:"plugins"`
}

// MarketplaceSource describes where a marketplace came from.
type MarketplaceSource struct {
	Source string `json:"source"` // github | git | local
	Repo   string `json:"repo,omitempty"`
	URL    string `json:"url,omitempty"`
	Path   string `json:"path,omitempty"`
}

// knownMarketplace is one entry of known_marketplaces.json.
type knownMarketplace struct {
	Source MarketplaceSource `json:"source"`
}

// MarketplacePlugin is one entry of a marketplace.json plugin list.
type MarketplacePlugin struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Commit  string `json:"commit,omitempty"`
}

// marketplaceFile models .claude-plugin/marketplace.json in a clone.
type marketplaceFile struct {
	Name    string              `json:"name"`
	Plugins []MarketplacePlugin `json:"plugins"`
}

// PluginStatus is the check result for one installed plugin.
type PluginStatus struct {
	Name            string       `json:"name"`
	Marketplace     string       `json:"marketplace"`
	LocalVersion    string       `json:"local_version"`
	RemoteVersion   string       `json:"remote_version,omitempty"`
	Status          UpdateStatus `json:"status"`
	InstallPath     string       `json:"install_path"`
	GitCommitSHA    string       `json:"git_commit_sha,omitempty"`
	RemoteCommitSHA string       `json:"remote_commit_sha,omitempty"`
	ErrorMessage    string       `json:"error_message,omitempty"`
}

// DefaultPluginsDir returns the conventional plugin registry location.
func DefaultPluginsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".claude", "plugins")
	}
	return filepath.Join(home, ".claude", "plugins")
}

// LoadInstalled reads installed_plugins.json under dir. A missing file
// is an empty registry, not an error.
func LoadInstalled(dir string) (map[string][]InstalledPlugin, error) {
	b, err := os.ReadFile(filepath.Join(dir, "installed_plugins.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return map[string][]InstalledPlugin{}, nil
		}
		return nil, fmt.Errorf("cannot read installed plugins: %w", err)
	}

	var f installedFile
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("cannot parse installed plugins: %w", err)
	}

	out := make(map[string][]InstalledPlugin, len(f.Plugins))
	for key, raw := range f.Plugins {
		var list []InstalledPlugin
		if err := json.Unmarshal(raw, &list); err != nil {
			// v1 wrote a single object here.
			var one InstalledPlugin
			if err := json.Unmarshal(raw, &one); err != nil {
				continue
			}
			list = []InstalledPlugin{one}
		}
		out[key] = list
	}
	return out, nil
}

// LoadMarketplaces reads known_marketplaces.json under dir. A missing
// file yields an empty map.
func LoadMarketplaces(dir string) (map[string]MarketplaceSource, error) {
	b, err := os.ReadFile(filepath.Join(dir, "known_marketplaces.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]MarketplaceSource{}, nil
		}
		return nil, fmt.Errorf("cannot read known marketplaces: %w", err)
	}

	var raw map[string]knownMarketplace
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("cannot parse known marketplaces: %w", err)
	}

	out := make(map[string]MarketplaceSource, len(raw))
	for name, m := range raw {
		out[name] = m.Source
	}
	return out, nil
}

// loadMarketplaceClone reads the marketplace.json of a local clone.
func loadMarketplaceClone(dir, marketplace string) (*marketplaceFile, error) {
	path := filepath.Join(dir, "marketplaces", marketplace, ".claude-plugin", "marketplace.json")
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f marketplaceFile
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// ParsePluginKey splits an installed-plugin key into name and
// marketplace. Keys without a marketplace suffix map to "unknown".
func ParsePluginKey(key string) (name, marketplace string) {
	if i := strings.LastIndex(key, "@"); i >= 0 {
		return key[:i], key[i+1:]
	}
	return key, "unknown"
}

// CheckAll compares every installed plugin against its marketplace
// clone. Results come back sorted by plugin key. A per-plugin failure
// degrades that entry to StatusError and never aborts the run.
func CheckAll(dir string) ([]PluginStatus, error) {
	installed, err := LoadInstalled(dir)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(installed))
	for k := range installed {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []PluginStatus
	for _, key := range keys {
		name, marketplace := ParsePluginKey(key)
		for _, inst := range installed[key] {
			out = append(out, checkOne(dir, name, marketplace, inst))
		}
	}
	return out, nil
}

func checkOne(dir, name, marketplace string, inst InstalledPlugin) PluginStatus {
	st := PluginStatus{
		Name:         name,
		Marketplace:  marketplace,
		LocalVersion: inst.Version,
		InstallPath:  inst.InstallPath,
	}

	clone, err := loadMarketplaceClone(dir, marketplace)
	if err != nil {
		st.Status = StatusError
		st.ErrorMessage = fmt.Sprintf("marketplace %s has no local clone", marketplace)
		return st
	}

	var entry *MarketplacePlugin
	for i := range clone.Plugins {
		if clone.Plugins[i].Name == name {
			entry = &clone.Plugins[i]
			break
		}
	}
	if entry == nil {
		st.Status = StatusUnknownVersion
		return st
	}
	st.RemoteVersion = entry.Version
	st.RemoteCommitSHA = entry.Commit

	if sha, ok := HeadSHA(inst.InstallPath); ok {
		st.GitCommitSHA = sha
	}

	switch {
	case st.GitCommitSHA != "" && st.RemoteCommitSHA != "":
		if ShortSHAEqual(st.GitCommitSHA, st.RemoteCommitSHA) {
			st.Status = StatusUpToDate
		} else {
			st.Status = StatusUpdateAvailable
		}
	case st.LocalVersion != "" && st.RemoteVersion != "":
		if st.LocalVersion == st.RemoteVersion {
			st.Status = StatusUpToDate
		} else {
			st.Status = StatusUpdateAvailable
		}
	default:
		st.Status = StatusUnknownVersion
	}
	return st
}

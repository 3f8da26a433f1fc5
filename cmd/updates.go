package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/tanaer/skillguard/internal/registry"
)

// updatesFlags holds flag values for the `skillguard updates` command.
type updatesFlags struct {
	pluginsDir string
	plugin     string
	jsonOut    bool
}

var updatesOpts updatesFlags

var updatesCmd = &cobra.Command{
	Use:   "updates",
	Short: "Check installed plugins against their local marketplace clones",
	Long: `Updates reads the installed-plugin registry and compares each
plugin against the marketplace clone on disk. Versions are compared as
strings; when both sides record a git commit, the commit wins (short
SHAs match by prefix).

No network traffic: the remote side is whatever the local marketplace
clone last fetched.

Examples:
  skillguard updates
  skillguard updates --plugin skill-creator
  skillguard updates --json`,
	RunE: runUpdates,
}

func init() {
	updatesCmd.Flags().StringVar(&updatesOpts.pluginsDir, "plugins-dir", "", "Plugin registry directory (default ~/.claude/plugins)")
	updatesCmd.Flags().StringVar(&updatesOpts.plugin, "plugin", "", "Check a single plugin by name")
	updatesCmd.Flags().BoolVarP(&updatesOpts.jsonOut, "json", "j", false, "Emit JSON instead of the plugin listing")
	rootCmd.AddCommand(updatesCmd)
}

func runUpdates(_ *cobra.Command, _ []string) error {
	dir := updatesOpts.pluginsDir
	if dir == "" {
		dir = registry.DefaultPluginsDir()
	} else {
		expanded, err := expandPath(dir)
		if err != nil {
			return err
		}
		dir = expanded
	}

	// One checker at a time per registry: concurrent runs would
	// interleave their git probes and their output.
	lock := flock.New(filepath.Join(dir, ".skillguard.lock"))
	locked, err := lock.TryLock()
	if err == nil && !locked {
		return fmt.Errorf("another skillguard run holds the registry lock")
	}
	if locked {
		defer lock.Unlock()
	}

	statuses, err := registry.CheckAll(dir)
	if err != nil {
		return err
	}

	if updatesOpts.plugin != "" {
		filtered := statuses[:0]
		for _, st := range statuses {
			if st.Name == updatesOpts.plugin {
				filtered = append(filtered, st)
			}
		}
		statuses = filtered
		if len(statuses) == 0 {
			return fmt.Errorf("plugin %q is not installed", updatesOpts.plugin)
		}
	}

	if updatesOpts.jsonOut {
		return writeUpdatesJSON(statuses)
	}

	if len(statuses) == 0 {
		printSkip("", "no plugins installed")
		return nil
	}

	updates := 0
	for _, st := range statuses {
		switch st.Status {
		case registry.StatusUpToDate:
			fmt.Printf("  ✓  [%s] %s (up to date)\n", st.Marketplace, st.Name)
		case registry.StatusUpdateAvailable:
			updates++
			fmt.Printf("  ⚠  [%s] %s %s → %s\n", st.Marketplace, st.Name,
				emptyAsNA(st.LocalVersion), emptyAsNA(st.RemoteVersion))
		case registry.StatusUnknownVersion:
			fmt.Printf("  ○  [%s] %s (version unknown)\n", st.Marketplace, st.Name)
		case registry.StatusError:
			fmt.Printf("  ✗  [%s] %s (%s)\n", st.Marketplace, st.Name, st.ErrorMessage)
		}
	}
	if updates > 0 {
		fmt.Printf("\n%d update(s) available\n", updates)
	}
	return nil
}

func writeUpdatesJSON(statuses []registry.PluginStatus) error {
	doc := struct {
		Version     string                  `json:"version"`
		GeneratedAt string                  `json:"generated_at"`
		Plugins     []registry.PluginStatus `json:"plugins"`
	}{
		Version:     version,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Plugins:     statuses,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

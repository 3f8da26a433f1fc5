package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var flagVersion bool

var rootCmd = &cobra.Command{
	Use:           "skillguard",
	Short:         "Skillguard — security auditor for installed agent skills",
	SilenceUsage:  true, // don't print usage on operational errors
	SilenceErrors: true, // we'll print errors once in Execute()
	Long: `Skillguard scans a tree of installed skills, matches every file
against a catalog of dangerous patterns, and assigns each skill a
quantified risk score. It also checks installed plugins against their
local marketplace clones for pending updates.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagVersion {
			fmt.Fprintln(os.Stdout, version)
			os.Exit(0)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagVersion {
			fmt.Fprintln(os.Stdout, version)
			return nil
		}
		return cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVersion, "version", "v", false, "Print skillguard version and exit")
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// expandPath expands a leading ~ to the user's home directory.
func expandPath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand ~: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tanaer/skillguard/internal/audit"
	"github.com/tanaer/skillguard/internal/report"
)

// auditFlags holds flag values for the `skillguard audit` command.
type auditFlags struct {
	root     string
	jsonOut  bool
	output   string
	minLevel string
	noColor  bool
	verbose  bool
}

var auditOpts auditFlags

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Scan installed skills and report per-skill risk scores",
	Long: `Audit walks every skill directory under the skills root, matches
each file against the dangerous-pattern catalog, and aggregates the
findings into a 0-100 risk score per skill.

Exit code is 1 when any skill is classified dangerous, 0 otherwise.

Examples:
  skillguard audit                         # scan ~/.claude/skills
  skillguard audit --json                  # machine-readable report
  skillguard audit -o report.json --json   # save report to a file
  skillguard audit --min-level high        # hide low-risk skills`,
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().StringVarP(&auditOpts.root, "root", "r", "", "Skills root directory (default ~/.claude/skills)")
	auditCmd.Flags().BoolVarP(&auditOpts.jsonOut, "json", "j", false, "Emit the structured JSON report instead of the terminal report")
	auditCmd.Flags().StringVarP(&auditOpts.output, "output", "o", "", "Write the report to a file instead of stdout")
	auditCmd.Flags().StringVarP(&auditOpts.minLevel, "min-level", "m", "safe", "Minimum risk level to include (safe|low|medium|high|dangerous)")
	auditCmd.Flags().BoolVar(&auditOpts.noColor, "no-color", false, "Disable ANSI colors in the terminal report")
	auditCmd.Flags().BoolVar(&auditOpts.verbose, "verbose", false, "Show all findings per skill, with snippets")
	rootCmd.AddCommand(auditCmd)
}

func runAudit(_ *cobra.Command, _ []string) error {
	minLevel, ok := audit.ParseRiskLevel(auditOpts.minLevel)
	if !ok {
		return fmt.Errorf("invalid --min-level %q (want safe|low|medium|high|dangerous)", auditOpts.minLevel)
	}

	root := auditOpts.root
	if root == "" {
		root = audit.DefaultRoot()
	} else {
		expanded, err := expandPath(root)
		if err != nil {
			return err
		}
		root = expanded
	}

	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return fmt.Errorf("skills root does not exist: %s", root)
	}

	printInfo("", fmt.Sprintf("scanning %s", root))
	start := time.Now()

	skills := audit.DiscoverSkills(root)
	printInfo("", fmt.Sprintf("found %d skills, analyzing...", len(skills)))

	results := audit.AuditAll(skills)
	elapsed := time.Since(start)

	filtered := make([]audit.Result, 0, len(results))
	for _, r := range results {
		if r.RiskLevel.Rank() >= minLevel.Rank() {
			filtered = append(filtered, r)
		}
	}

	out := os.Stdout
	if auditOpts.output != "" {
		f, err := os.Create(auditOpts.output)
		if err != nil {
			return fmt.Errorf("cannot write report: %w", err)
		}
		defer f.Close()
		out = f
	}

	// Colors only make sense on an interactive stdout.
	color.NoColor = auditOpts.noColor ||
		auditOpts.output != "" ||
		!term.IsTerminal(int(os.Stdout.Fd()))

	if auditOpts.jsonOut {
		rep := report.Build(filtered, elapsed, time.Now())
		if err := report.WriteJSON(out, rep); err != nil {
			return fmt.Errorf("cannot encode report: %w", err)
		}
	} else {
		report.Terminal{Verbose: auditOpts.verbose}.Render(out, filtered, elapsed)
	}

	if auditOpts.output != "" {
		printOK("", fmt.Sprintf("report saved to %s", auditOpts.output))
	}

	// The exit code reflects the scored results before --min-level
	// filtering: hiding a dangerous skill must not hide the failure.
	for _, r := range results {
		if r.RiskLevel == audit.RiskDangerous {
			os.Exit(1)
		}
	}
	return nil
}

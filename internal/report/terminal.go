package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/tanaer/skillguard/internal/audit"
)

// maxShownFindings caps the per-skill listing unless verbose.
const maxShownFindings = 5

var (
	bold   = color.New(color.Bold)
	red    = color.New(color.FgHiRed)
	green  = color.New(color.FgHiGreen)
	yellow = color.New(color.FgHiYellow)
	blue   = color.New(color.FgHiBlue)
	cyan   = color.New(color.FgHiCyan)
	orange = color.New(38, 5, 208)
)

var riskColors = map[audit.RiskLevel]*color.Color{
	audit.RiskSafe:      green,
	audit.RiskLow:       blue,
	audit.RiskMedium:    yellow,
	audit.RiskHigh:      orange,
	audit.RiskDangerous: red,
}

var riskIcons = map[audit.RiskLevel]string{
	audit.RiskSafe:      "🟢",
	audit.RiskLow:       "🔵",
	audit.RiskMedium:    "🟡",
	audit.RiskHigh:      "🟠",
	audit.RiskDangerous: "🔴",
}

var severityColors = map[audit.Severity]*color.Color{
	audit.SeverityLow:      blue,
	audit.SeverityMedium:   yellow,
	audit.SeverityHigh:     orange,
	audit.SeverityCritical: red,
}

// Terminal renders audit results for humans. Color suppression is
// global (color.NoColor), decided by the caller from the TTY probe and
// the no-color flag.
type Terminal struct {
	Verbose bool
}

// Render writes the full terminal report.
func (t Terminal) Render(w io.Writer, results []audit.Result, scanTime time.Duration) {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(bold.Sprint("╔══════════════════════════════════════════════════════════════╗") + "\n")
	b.WriteString(bold.Sprint("║              Skill Security Audit Report                      ║") + "\n")
	b.WriteString(bold.Sprint("╚══════════════════════════════════════════════════════════════╝") + "\n")
	b.WriteString("\n")

	b.WriteString(t.statsLine(results, scanTime) + "\n\n")

	for _, res := range sortByRisk(results) {
		t.renderSkill(&b, res)
		b.WriteString("\n")
	}

	io.WriteString(w, b.String())
}

func (t Terminal) statsLine(results []audit.Result, scanTime time.Duration) string {
	totalFindings := 0
	dangerous := 0
	high := 0
	for _, r := range results {
		totalFindings += len(r.Findings)
		switch r.RiskLevel {
		case audit.RiskDangerous:
			dangerous++
		case audit.RiskHigh:
			high++
		}
	}

	stats := fmt.Sprintf("Scanned: %d skills | Findings: %d | Time: %.1fs",
		len(results), totalFindings, scanTime.Seconds())
	if dangerous > 0 {
		stats += " | " + bold.Sprint(red.Sprintf("DANGEROUS: %d", dangerous))
	}
	if high > 0 {
		stats += " | " + bold.Sprint(orange.Sprintf("HIGH: %d", high))
	}
	return stats
}

// sortByRisk orders skills most dangerous first, then by score; ties
// keep scanner enumeration order.
func sortByRisk(results []audit.Result) []audit.Result {
	sorted := make([]audit.Result, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].RiskLevel.Rank() != sorted[j].RiskLevel.Rank() {
			return sorted[i].RiskLevel.Rank() > sorted[j].RiskLevel.Rank()
		}
		return sorted[i].TotalScore > sorted[j].TotalScore
	})
	return sorted
}

func (t Terminal) renderSkill(b *strings.Builder, res audit.Result) {
	c := riskColors[res.RiskLevel]
	levelName := strings.ToUpper(string(res.RiskLevel))

	line := fmt.Sprintf("%s %s %s Score: %d",
		riskIcons[res.RiskLevel],
		c.Sprint(runewidth.FillRight(levelName, 10)),
		bold.Sprint(runewidth.FillRight(res.SkillName, 25)),
		res.TotalScore)
	if res.HasHardTrigger {
		line += red.Sprint(" [HARD TRIGGER]")
	}
	b.WriteString(line + "\n")

	if len(res.Findings) == 0 {
		return
	}

	shown := res.Findings
	if !t.Verbose && len(shown) > maxShownFindings {
		shown = shown[:maxShownFindings]
	}

	for _, f := range shown {
		sevName := strings.ToUpper(string(f.Severity))
		fmt.Fprintf(b, "   └─ [%s] %s at %s:%d\n",
			severityColors[f.Severity].Sprint(sevName),
			f.RuleName, f.FilePath, f.LineNumber)
		if t.Verbose {
			fmt.Fprintf(b, "      %s\n", cyan.Sprint(f.Snippet))
		}
	}

	if suppressed := len(res.Findings) - len(shown); suppressed > 0 {
		fmt.Fprintf(b, "   └─ ... and %d more findings\n", suppressed)
	}
}

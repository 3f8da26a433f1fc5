package audit

import "strings"

// snippetLimit caps the reported line excerpt at 100 characters.
const snippetLimit = 100

// ScanContent applies every catalog rule to every line of content and
// returns the findings in (line, rule) order. Within one rule only the
// first match on a line is reported; distinct rules matching the same
// line each produce their own finding.
//
// Findings in non-script markdown carry half the rule's base weight:
// documentation examples are evidence, but weaker evidence.
func ScanContent(content, relPath string, isScript bool) []Finding {
	var findings []Finding
	halve := !isScript && strings.HasSuffix(relPath, ".md")

	for i, line := range strings.Split(content, "\n") {
		for _, rule := range Rules() {
			if !rule.Pattern.MatchString(line) {
				continue
			}
			weight := rule.Weight
			if halve {
				weight = rule.Weight / 2
			}
			findings = append(findings, Finding{
				RuleID:      rule.ID,
				RuleName:    rule.Name,
				Severity:    rule.Severity,
				Category:    rule.Category,
				FilePath:    relPath,
				LineNumber:  i + 1,
				Snippet:     makeSnippet(line),
				Weight:      weight,
				HardTrigger: rule.HardTrigger,
			})
		}
	}
	return findings
}

// makeSnippet trims surrounding whitespace and truncates to
// snippetLimit characters, appending an ellipsis when content was cut.
func makeSnippet(line string) string {
	s := strings.TrimSpace(line)
	runes := []rune(s)
	if len(runes) <= snippetLimit {
		return s
	}
	return string(runes[:snippetLimit]) + "…"
}

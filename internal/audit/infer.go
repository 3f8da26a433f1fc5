package audit

import (
	"regexp"
	"sort"
)

// Capability classes a script can exercise. The inference is advisory:
// it is attached to the audit result for declared-vs-observed
// consistency checks but does not feed the score.
const (
	CapNetwork         = "network"
	CapShell           = "shell"
	CapFilesystemWrite = "filesystem_write"
)

var networkProbes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)urllib\.request`),
	regexp.MustCompile(`(?i)http\.client`),
	regexp.MustCompile(`(?i)requests\.`),
	regexp.MustCompile(`(?i)\bcurl\b`),
	regexp.MustCompile(`(?i)\bwget\b`),
}

var shellProbes = []*regexp.Regexp{
	regexp.MustCompile(`subprocess\.`),
	regexp.MustCompile(`os\.system`),
	regexp.MustCompile(`os\.popen`),
	regexp.MustCompile(`\beval\b`),
	regexp.MustCompile(`\bexec\b`),
}

var fsWriteProbes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)open\s*\([^)]*["']w`),
	regexp.MustCompile(`(?i)\.write\s*\(`),
	regexp.MustCompile(`(?i)>\s*["'/~]`),
	regexp.MustCompile(`(?i)>>\s*["'/~]`),
}

// InferCapabilities reports which capability classes the content
// appears to exercise, by coarse pattern presence. An empty result is
// normal for prose-only content.
func InferCapabilities(content string) []string {
	var caps []string

	if anyMatch(networkProbes, content) {
		caps = append(caps, CapNetwork)
	}
	if anyMatch(shellProbes, content) {
		caps = append(caps, CapShell)
	}
	if anyMatch(fsWriteProbes, content) {
		caps = append(caps, CapFilesystemWrite)
	}
	return caps
}

func anyMatch(probes []*regexp.Regexp, content string) bool {
	for _, re := range probes {
		if re.MatchString(content) {
			return true
		}
	}
	return false
}

// mergeCaps unions capability lists into sorted, deduplicated form.
func mergeCaps(sets ...[]string) []string {
	seen := map[string]bool{}
	var out []string
	for _, set := range sets {
		for _, c := range set {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	sort.Strings(out)
	return out
}

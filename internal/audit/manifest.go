package audit

import (
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// The manifest may declare its capability list in three surface
// syntaxes, tried in order:
//
//  1. an inline "allowed-tools: Read, Write(...)" directive anywhere
//  2. a YAML front-matter key, as inline or block list
//  3. a markdown "allowed-tools" heading followed by bullets
//
// The first syntax that yields at least one token wins.

var (
	inlineDirectiveRe = regexp.MustCompile(`(?i)allowed[-_]tools\s*:\s*(.+)$`)
	toolTokenRe       = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*(?:\([^)]*\))?`)
	sectionHeadingRe  = regexp.MustCompile(`(?i)^#+\s*allowed[-_]tools\s*$`)
	bulletItemRe      = regexp.MustCompile(`^\s*[*-]\s+(.+)$`)
)

// ParseManifest reads a skill manifest and extracts the declared
// allowed-tools list. Any I/O or decode failure yields (nil, false);
// the audit continues without a declaration.
func ParseManifest(path string) ([]string, bool) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return ExtractAllowedTools(string(b))
}

// ExtractAllowedTools applies the three accepted syntaxes to the
// manifest body and returns the first non-empty token list found.
func ExtractAllowedTools(content string) ([]string, bool) {
	if tools := fromInlineDirective(content); len(tools) > 0 {
		return tools, true
	}
	if tools := fromFrontmatter(content); len(tools) > 0 {
		return tools, true
	}
	if tools := fromMarkdownSection(content); len(tools) > 0 {
		return tools, true
	}
	return nil, false
}

// fromInlineDirective matches the first "allowed-tools: ..." line and
// tokenizes the remainder as identifiers with optional parenthesized
// arguments.
func fromInlineDirective(content string) []string {
	for _, line := range strings.Split(content, "\n") {
		m := inlineDirectiveRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		tools := toolTokenRe.FindAllString(strings.TrimSpace(m[1]), -1)
		if len(tools) > 0 {
			return tools
		}
	}
	return nil
}

// fromFrontmatter parses a leading "---" block the way the hub search
// index does: BOM strip, split on the delimiters, yaml into a loose
// map. Both the dash and underscore key spellings are accepted, as is
// an inline "[a, b, c]" string value.
func fromFrontmatter(content string) []string {
	s := strings.TrimPrefix(content, "\ufeff")
	if !strings.HasPrefix(s, "---") {
		return nil
	}
	parts := strings.SplitN(s, "---", 3)
	if len(parts) < 3 {
		return nil
	}

	var raw map[string]any
	if err := yaml.Unmarshal([]byte(parts[1]), &raw); err != nil {
		return nil
	}

	for k, v := range raw {
		switch strings.ToLower(k) {
		case "allowed-tools", "allowed_tools":
			return toolsFromYAMLValue(v)
		}
	}
	return nil
}

func toolsFromYAMLValue(v any) []string {
	var tools []string
	switch val := v.(type) {
	case []any:
		for _, item := range val {
			if s, ok := item.(string); ok {
				if t := trimToolToken(s); t != "" {
					tools = append(tools, t)
				}
			}
		}
	case string:
		// Inline "[a, b, c]" or bare comma-separated string.
		s := strings.TrimSpace(val)
		s = strings.TrimPrefix(s, "[")
		s = strings.TrimSuffix(s, "]")
		for _, part := range strings.Split(s, ",") {
			if t := trimToolToken(part); t != "" {
				tools = append(tools, t)
			}
		}
	}
	return tools
}

// fromMarkdownSection matches a heading whose text is "allowed-tools"
// and collects the bullet items immediately below it.
func fromMarkdownSection(content string) []string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if !sectionHeadingRe.MatchString(strings.TrimRight(line, "\r")) {
			continue
		}
		var tools []string
		for j := i + 1; j < len(lines); j++ {
			m := bulletItemRe.FindStringSubmatch(strings.TrimRight(lines[j], "\r"))
			if m == nil {
				break
			}
			if t := trimToolToken(m[1]); t != "" {
				tools = append(tools, t)
			}
		}
		if len(tools) > 0 {
			return tools
		}
	}
	return nil
}

func trimToolToken(s string) string {
	return strings.Trim(strings.TrimSpace(s), "`\"'")
}

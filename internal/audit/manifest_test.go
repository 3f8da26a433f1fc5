package audit

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestExtractAllowedToolsThreeSyntaxes(t *testing.T) {
	want := []string{"Read", "Write", "Bash"}

	cases := []struct {
		name    string
		content string
	}{
		{
			"inline directive",
			"# My Skill\n\nallowed-tools: Read, Write, Bash\n\nBody text.\n",
		},
		{
			"front-matter inline list",
			"---\nname: demo\nallowed-tools: [Read, Write, Bash]\n---\n\n# Body\n",
		},
		{
			"front-matter block list",
			"---\nname: demo\nallowed-tools:\n  - Read\n  - Write\n  - Bash\n---\n\n# Body\n",
		},
		{
			"markdown section",
			"# My Skill\n\n## Allowed-Tools\n- `Read`\n- `Write`\n- `Bash`\n",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tools, ok := ExtractAllowedTools(tc.content)
			if !ok {
				t.Fatal("expected a successful parse")
			}
			if !reflect.DeepEqual(tools, want) {
				t.Fatalf("tools = %v, want %v", tools, want)
			}
		})
	}
}

func TestExtractAllowedToolsParenthesizedArgs(t *testing.T) {
	tools, ok := ExtractAllowedTools("allowed-tools: Read, Bash(git status), Write\n")
	if !ok {
		t.Fatal("expected a successful parse")
	}
	want := []string{"Read", "Bash(git status)", "Write"}
	if !reflect.DeepEqual(tools, want) {
		t.Fatalf("tools = %v, want %v", tools, want)
	}
}

func TestExtractAllowedToolsUnderscoreSpelling(t *testing.T) {
	tools, ok := ExtractAllowedTools("allowed_tools: Glob, Grep\n")
	if !ok || len(tools) != 2 {
		t.Fatalf("underscore spelling not accepted: %v %v", tools, ok)
	}
}

func TestExtractAllowedToolsNoDeclaration(t *testing.T) {
	cases := []string{
		"",
		"# Just a skill\n\nNothing declared here.\n",
		"---\nname: demo\n---\n\nbody\n",
		"## Allowed-Tools\n\nNo bullets follow.\n",
	}
	for _, content := range cases {
		if tools, ok := ExtractAllowedTools(content); ok || tools != nil {
			t.Fatalf("expected no declaration for %q, got %v", content, tools)
		}
	}
}

func TestExtractAllowedToolsMalformedFrontmatter(t *testing.T) {
	// Broken YAML degrades; the markdown section below still parses.
	content := "---\nname: [unclosed\n---\n\n## allowed-tools\n- Read\n"
	tools, ok := ExtractAllowedTools(content)
	if !ok || len(tools) != 1 || tools[0] != "Read" {
		t.Fatalf("expected fallback to markdown section, got %v %v", tools, ok)
	}
}

func TestParseManifestMissingFile(t *testing.T) {
	tools, ok := ParseManifest(filepath.Join(t.TempDir(), "skill.md"))
	if ok || tools != nil {
		t.Fatalf("missing manifest must degrade, got %v %v", tools, ok)
	}
}

func TestParseManifestReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "SKILL.md")
	content := "---\nallowed-tools: [Read, Edit]\n---\n# Demo\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	tools, ok := ParseManifest(path)
	if !ok {
		t.Fatal("expected a successful parse")
	}
	want := []string{"Read", "Edit"}
	if !reflect.DeepEqual(tools, want) {
		t.Fatalf("tools = %v, want %v", tools, want)
	}
}

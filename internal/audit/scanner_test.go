package audit

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, path string, content []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverSkillsQualification(t *testing.T) {
	root := t.TempDir()

	// Qualifies: manifest (each case variant), scripts/ dir, __main__.py.
	writeFile(t, filepath.Join(root, "alpha", "skill.md"), []byte("# alpha\n"))
	writeFile(t, filepath.Join(root, "bravo", "SKILL.md"), []byte("# bravo\n"))
	writeFile(t, filepath.Join(root, "charlie", "Skill.md"), []byte("# charlie\n"))
	writeFile(t, filepath.Join(root, "delta", "scripts", "run.sh"), []byte("echo hi\n"))
	writeFile(t, filepath.Join(root, "echo", "__main__.py"), []byte("print('hi')\n"))

	// Does not qualify: bare directory, hidden directory, plain file.
	writeFile(t, filepath.Join(root, "notes", "readme.txt"), []byte("hello\n"))
	writeFile(t, filepath.Join(root, ".hidden", "skill.md"), []byte("# hidden\n"))
	writeFile(t, filepath.Join(root, "stray.md"), []byte("# stray\n"))

	skills := DiscoverSkills(root)

	var names []string
	for _, s := range skills {
		names = append(names, s.Name)
	}
	want := []string{"alpha", "bravo", "charlie", "delta", "echo"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("skills = %v, want %v", names, want)
	}

	if skills[0].ManifestPath == "" || skills[3].ManifestPath != "" {
		t.Fatalf("manifest detection wrong: %q / %q", skills[0].ManifestPath, skills[3].ManifestPath)
	}
}

func TestDiscoverSkillsMissingRoot(t *testing.T) {
	if skills := DiscoverSkills(filepath.Join(t.TempDir(), "nope")); skills != nil {
		t.Fatalf("expected nil for missing root, got %v", skills)
	}
}

func TestScanSkillDirFilters(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "skill.md"), []byte("# demo\n"))
	writeFile(t, filepath.Join(dir, "scripts", "run.py"), []byte("print('x')\n"))

	// Ignored directories are not descended into.
	writeFile(t, filepath.Join(dir, "node_modules", "mod.js"), []byte("x\n"))
	writeFile(t, filepath.Join(dir, ".git", "config"), []byte("x\n"))
	writeFile(t, filepath.Join(dir, "__pycache__", "a.pyc"), []byte("x\n"))

	// Binary content (NUL in the first 8 KiB) is skipped.
	writeFile(t, filepath.Join(dir, "blob.dat"), []byte{0x7f, 0x00, 0x01, 0x02})

	// Oversized files are skipped.
	writeFile(t, filepath.Join(dir, "big.txt"), bytes.Repeat([]byte("a"), maxFileSize+1))

	info := ScanSkillDir(dir)

	got := map[string]bool{}
	for _, f := range info.Files {
		got[f.RelativePath] = true
	}
	want := []string{"skill.md", "scripts/run.py"}
	if len(got) != len(want) {
		t.Fatalf("files = %v, want %v", got, want)
	}
	for _, rel := range want {
		if !got[rel] {
			t.Fatalf("missing %s in %v", rel, got)
		}
	}
}

func TestScanSkillDirClassification(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "skill.md"), []byte("# demo\n"))
	writeFile(t, filepath.Join(dir, "tool.PY"), []byte("print('x')\n"))
	writeFile(t, filepath.Join(dir, "runner"), []byte("#!/bin/sh\necho hi\n"))
	writeFile(t, filepath.Join(dir, "notes.txt"), []byte("plain\n"))

	info := ScanSkillDir(dir)

	byRel := map[string]ScannedFile{}
	for _, f := range info.Files {
		byRel[f.RelativePath] = f
	}

	if f := byRel["tool.PY"]; !f.IsScript || f.Extension != ".py" || f.HasShebang {
		t.Fatalf("extension classification wrong: %+v", f)
	}
	if f := byRel["runner"]; !f.IsScript || !f.HasShebang {
		t.Fatalf("shebang classification wrong: %+v", f)
	}
	if f := byRel["notes.txt"]; f.IsScript {
		t.Fatalf("plain text misclassified as script: %+v", f)
	}
	if f := byRel["skill.md"]; f.IsScript {
		t.Fatalf("markdown misclassified as script: %+v", f)
	}
}

func TestDiscoverSkillsDeterministic(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		writeFile(t, filepath.Join(root, name, "skill.md"), []byte("# "+name+"\n"))
		writeFile(t, filepath.Join(root, name, "scripts", "go.sh"), []byte("echo "+name+"\n"))
	}

	first := DiscoverSkills(root)
	second := DiscoverSkills(root)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("two scans over an unchanged tree differ")
	}
	if first[0].Name != "alpha" || first[2].Name != "zeta" {
		t.Fatalf("enumeration not sorted: %s, %s", first[0].Name, first[2].Name)
	}
}

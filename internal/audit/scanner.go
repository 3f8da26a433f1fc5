package audit

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Directories that are never descended into during a skill walk.
var skipDirs = map[string]bool{
	".git":          true,
	"node_modules":  true,
	"__pycache__":   true,
	".venv":         true,
	"venv":          true,
	"dist":          true,
	"build":         true,
	".cache":        true,
	".pytest_cache": true,
	"coverage":      true,
}

// Extensions classified as scripts regardless of content.
var scriptExtensions = map[string]bool{
	".py": true, ".sh": true, ".bash": true, ".zsh": true,
	".js": true, ".ts": true, ".rb": true, ".pl": true,
	".ps1": true, ".cmd": true, ".bat": true,
}

// maxFileSize caps scanned files at 2 MiB.
const maxFileSize = 2 * 1024 * 1024

// manifestNames are the accepted case variants of a skill manifest.
var manifestNames = []string{"skill.md", "SKILL.md", "Skill.md"}

// FindManifest returns the path of the skill manifest inside dir, or ""
// when no case variant exists.
func FindManifest(dir string) string {
	for _, name := range manifestNames {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// probeFile reads the first 8 KiB once and answers both filter
// questions: a NUL byte means binary (a deliberate approximation), and
// a leading "#!" marks a script. An unreadable file counts as binary so
// it is skipped.
func probeFile(path string) (binary, shebang bool) {
	f, err := os.Open(path)
	if err != nil {
		return true, false
	}
	defer f.Close()

	buf := make([]byte, 8192)
	n, err := f.Read(buf)
	if err != nil && n == 0 {
		return true, false
	}

	binary = bytes.IndexByte(buf[:n], 0) >= 0
	shebang = n >= 2 && buf[0] == '#' && buf[1] == '!'
	return binary, shebang
}

// ScanSkillDir walks one skill directory and collects every file that
// passes the size and binary filters. Individual I/O errors drop the
// affected file and never fail the walk.
func ScanSkillDir(dir string) SkillInfo {
	info := SkillInfo{
		Name:         filepath.Base(dir),
		Path:         dir,
		ManifestPath: FindManifest(dir),
	}

	filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != dir && skipDirs[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}

		fi, err := d.Info()
		if err != nil || fi.Size() > maxFileSize {
			return nil
		}
		binary, shebang := probeFile(path)
		if binary {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		isScript := scriptExtensions[ext] || shebang

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return nil
		}

		info.Files = append(info.Files, ScannedFile{
			Path:         path,
			RelativePath: filepath.ToSlash(rel),
			Extension:    ext,
			Size:         fi.Size(),
			IsScript:     isScript,
			HasShebang:   shebang,
		})
		return nil
	})

	return info
}

// DiscoverSkills enumerates skill directories under root. A child
// directory qualifies when it holds a manifest, a scripts/ subdirectory,
// or a __main__.py entry point; anything else is skipped silently.
// Enumeration order is the sorted directory order of os.ReadDir, so two
// runs over an unchanged tree produce identical output.
func DiscoverSkills(root string) []SkillInfo {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil
	}

	var skills []SkillInfo
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		dir := filepath.Join(root, e.Name())

		qualifies := FindManifest(dir) != ""
		if !qualifies {
			for _, marker := range []string{"scripts", "__main__.py"} {
				if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
					qualifies = true
					break
				}
			}
		}
		if !qualifies {
			continue
		}

		skills = append(skills, ScanSkillDir(dir))
	}
	return skills
}

// DefaultRoot returns the conventional skills location under the user's
// home directory.
func DefaultRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".claude", "skills")
	}
	return filepath.Join(home, ".claude", "skills")
}

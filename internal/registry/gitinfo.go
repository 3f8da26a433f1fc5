package registry

import (
	"os/exec"
	"strings"
)

// HeadSHA returns the HEAD commit of the git repository containing
// dir. Any failure (no git, not a repo, dir missing) reports ok=false;
// version comparison then falls back to version strings.
func HeadSHA(dir string) (string, bool) {
	if dir == "" {
		return "", false
	}
	if _, err := exec.LookPath("git"); err != nil {
		return "", false
	}
	out, err := exec.Command("git", "-C", dir, "rev-parse", "HEAD").Output()
	if err != nil {
		return "", false
	}
	sha := strings.TrimSpace(string(out))
	if sha == "" {
		return "", false
	}
	return sha, true
}

// ShortSHAEqual compares two commit SHAs by min-length prefix
// equality, so a short SHA recorded in a marketplace entry matches the
// full local HEAD.
func ShortSHAEqual(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	return strings.EqualFold(a[:n], b[:n])
}

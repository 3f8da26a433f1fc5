package audit

import "regexp"

// Rule is one detection rule of the catalog. Patterns are applied per
// line; a rule with HardTrigger set classifies the skill as dangerous on
// its own, regardless of any other evidence.
type Rule struct {
	ID          string
	Name        string
	Pattern     *regexp.Regexp
	Severity    Severity
	Category    Category
	Weight      int
	HardTrigger bool
}

// catalog is the process-wide rule table. It is initialized once and
// never mutated; Rules returns it without copying on the assumption
// that callers treat it as read-only.
var catalog = []Rule{
	// Destructive operations
	{
		ID: "RM_RF_ROOT", Name: "Recursive delete of root",
		Pattern:  regexp.MustCompile(`(?i)rm\s+(-[a-zA-Z]*)*\s*-r[a-zA-Z]*\s+(-[a-zA-Z]*\s+)*/($|\s|;|\|)`),
		Severity: SeverityCritical, Category: CategoryDestructive,
		Weight: 100, HardTrigger: true,
	},
	{
		ID: "RM_RF_HOME", Name: "Recursive delete of home",
		Pattern:  regexp.MustCompile(`(?i)rm\s+(-[a-zA-Z]*)*\s*-r[a-zA-Z]*\s+(-[a-zA-Z]*\s+)*(~|\$HOME)`),
		Severity: SeverityCritical, Category: CategoryDestructive,
		Weight: 90, HardTrigger: true,
	},
	{
		ID: "DD_WIPE", Name: "Raw device overwrite",
		Pattern:  regexp.MustCompile(`(?i)dd\s+.*of=/dev/(sd[a-z]|nvme|hd[a-z]|vd[a-z])`),
		Severity: SeverityCritical, Category: CategoryDestructive,
		Weight: 100, HardTrigger: true,
	},
	{
		ID: "MKFS_FORMAT", Name: "Filesystem creation on device",
		Pattern:  regexp.MustCompile(`(?i)mkfs(\.[a-z0-9]+)?\s+/dev/`),
		Severity: SeverityCritical, Category: CategoryDestructive,
		Weight: 100, HardTrigger: true,
	},

	// Remote execution
	{
		ID: "CURL_PIPE_SH", Name: "Curl piped to shell",
		Pattern:  regexp.MustCompile(`(?i)curl\s+[^|]*\|\s*(ba)?sh`),
		Severity: SeverityCritical, Category: CategoryRemoteExec,
		Weight: 90, HardTrigger: true,
	},
	{
		ID: "WGET_PIPE_SH", Name: "Wget piped to shell",
		Pattern:  regexp.MustCompile(`(?i)wget\s+[^|]*\|\s*(ba)?sh`),
		Severity: SeverityCritical, Category: CategoryRemoteExec,
		Weight: 90, HardTrigger: true,
	},
	{
		ID: "BASE64_EXEC", Name: "Base64 decode piped to shell",
		Pattern:  regexp.MustCompile(`(?i)base64\s+(-d|--decode)[^|]*\|\s*(ba)?sh`),
		Severity: SeverityCritical, Category: CategoryRemoteExec,
		Weight: 85, HardTrigger: true,
	},

	// Command injection
	{
		ID: "PY_EVAL", Name: "Dynamic eval",
		Pattern:  regexp.MustCompile(`\beval\s*\(`),
		Severity: SeverityHigh, Category: CategoryInjection,
		Weight: 70,
	},
	{
		ID: "PY_EXEC", Name: "Dynamic exec",
		Pattern:  regexp.MustCompile(`\bexec\s*\(`),
		Severity: SeverityHigh, Category: CategoryInjection,
		Weight: 70,
	},
	{
		ID: "OS_SYSTEM", Name: "Shell via os.system",
		Pattern:  regexp.MustCompile(`os\.system\s*\(`),
		Severity: SeverityHigh, Category: CategoryInjection,
		Weight: 65,
	},
	{
		ID: "SUBPROCESS_SHELL", Name: "Subprocess with shell=True",
		Pattern:  regexp.MustCompile(`subprocess\.(run|call|Popen)\s*\([^)]*shell\s*=\s*True`),
		Severity: SeverityHigh, Category: CategoryInjection,
		Weight: 65,
	},

	// Network exfiltration
	{
		ID: "CURL_POST", Name: "Outbound curl POST",
		Pattern:  regexp.MustCompile(`(?i)curl\s+[^;|]*-X\s*POST`),
		Severity: SeverityMedium, Category: CategoryExfil,
		Weight: 40,
	},
	{
		ID: "NETCAT", Name: "Netcat connection",
		Pattern:  regexp.MustCompile(`(?i)\bnc\s+(-[a-z]*\s+)*[a-zA-Z0-9.-]+\s+\d+`),
		Severity: SeverityHigh, Category: CategoryExfil,
		Weight: 60,
	},
	{
		ID: "PY_URLLIB", Name: "URL fetch via urllib",
		Pattern:  regexp.MustCompile(`urllib\.request\.urlopen\s*\(`),
		Severity: SeverityMedium, Category: CategoryExfil,
		Weight: 35,
	},

	// Privilege escalation
	{
		ID: "SUDO", Name: "Privilege elevation",
		Pattern:  regexp.MustCompile(`(?i)\bsudo\s+`),
		Severity: SeverityHigh, Category: CategoryPrivilege,
		Weight: 60,
	},
	{
		ID: "CHMOD_777", Name: "World-writable permissions",
		Pattern:  regexp.MustCompile(`chmod\s+(-[a-zA-Z]*\s+)*7[0-7]{2}`),
		Severity: SeverityHigh, Category: CategoryPrivilege,
		Weight: 55,
	},
	{
		ID: "SUDOERS", Name: "Sudoers policy modification",
		Pattern:  regexp.MustCompile(`(?i)(/etc/sudoers|visudo|NOPASSWD)`),
		Severity: SeverityCritical, Category: CategoryPrivilege,
		Weight: 95, HardTrigger: true,
	},

	// Persistence
	{
		ID: "CRONTAB", Name: "Cron installation",
		Pattern:  regexp.MustCompile(`(?i)(crontab\s+-|/etc/cron)`),
		Severity: SeverityHigh, Category: CategoryPersistence,
		Weight: 65,
	},
	{
		ID: "SSH_KEYS", Name: "SSH authorized_keys append",
		Pattern:  regexp.MustCompile(`(?i)(>>|>)\s*~?/?(\.ssh/authorized_keys|\.ssh/id_)`),
		Severity: SeverityCritical, Category: CategoryPersistence,
		Weight: 90, HardTrigger: true,
	},

	// Secret exposure
	{
		ID: "PRIVATE_KEY", Name: "Private key material",
		Pattern:  regexp.MustCompile(`(?i)-----BEGIN\s+(RSA|OPENSSH|EC|DSA)?\s*PRIVATE KEY-----`),
		Severity: SeverityCritical, Category: CategorySecrets,
		Weight: 85, HardTrigger: true,
	},
	{
		ID: "API_KEY", Name: "Hardcoded API key",
		Pattern:  regexp.MustCompile(`(?i)(api[_-]?key|apikey|api_secret)\s*[=:]\s*["'][a-zA-Z0-9_-]{16,}["']`),
		Severity: SeverityHigh, Category: CategorySecrets,
		Weight: 60,
	},
	{
		ID: "PASSWORD", Name: "Hardcoded password",
		Pattern:  regexp.MustCompile(`(?i)(password|passwd|pwd)\s*[=:]\s*["'][^"']{4,}["']`),
		Severity: SeverityHigh, Category: CategorySecrets,
		Weight: 55,
	},
	{
		ID: "AWS_KEY", Name: "Cloud access key",
		Pattern:  regexp.MustCompile(`(AKIA|ASIA)[A-Z0-9]{16}`),
		Severity: SeverityCritical, Category: CategorySecrets,
		Weight: 80,
	},
	{
		ID: "GITHUB_TOKEN", Name: "Personal access token",
		Pattern:  regexp.MustCompile(`ghp_[a-zA-Z0-9]{36}`),
		Severity: SeverityCritical, Category: CategorySecrets,
		Weight: 80,
	},
}

// Rules returns the full rule catalog in evaluation order.
func Rules() []Rule { return catalog }

// HardTriggerRules returns the subset of the catalog whose single match
// classifies a skill as dangerous.
func HardTriggerRules() []Rule {
	var out []Rule
	for _, r := range catalog {
		if r.HardTrigger {
			out = append(out, r)
		}
	}
	return out
}

package cmd

import (
	"fmt"
	"os"
)

// ── Diagnostic output helpers ─────────────────────────────────────────────────
// All commands use these for progress and status lines. Everything goes
// to stderr: stdout is reserved for reports.
//
// Icon semantics:
//   ✓  success / up to date
//   ✗  error / failure
//   ⚠  warning / update available
//   ○  skipped / not applicable
//   ~  neutral info / in progress

// printOK prints a success line.
//   name = "" → "  ✓  msg"
//   name set  → "  ✓  [name] msg"
func printOK(name, msg string) {
	if name == "" {
		fmt.Fprintf(os.Stderr, "  ✓  %s\n", msg)
	} else {
		fmt.Fprintf(os.Stderr, "  ✓  [%s] %s\n", name, msg)
	}
}

// printErr prints an error line.
func printErr(name, msg string) {
	if name == "" {
		fmt.Fprintf(os.Stderr, "  ✗  %s\n", msg)
	} else {
		fmt.Fprintf(os.Stderr, "  ✗  [%s] %s\n", name, msg)
	}
}

// printWarn prints a warning line.
func printWarn(name, msg string) {
	if name == "" {
		fmt.Fprintf(os.Stderr, "  ⚠  %s\n", msg)
	} else {
		fmt.Fprintf(os.Stderr, "  ⚠  [%s] %s\n", name, msg)
	}
}

// printSkip prints a skipped / not-applicable line.
func printSkip(name, msg string) {
	if name == "" {
		fmt.Fprintf(os.Stderr, "  ○  %s\n", msg)
	} else {
		fmt.Fprintf(os.Stderr, "  ○  [%s] %s\n", name, msg)
	}
}

// printInfo prints a neutral informational line.
func printInfo(name, msg string) {
	if name == "" {
		fmt.Fprintf(os.Stderr, "  ~  %s\n", msg)
	} else {
		fmt.Fprintf(os.Stderr, "  ~  [%s] %s\n", name, msg)
	}
}

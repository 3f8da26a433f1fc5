// Package report renders audit results as a machine-readable JSON
// document or as a colorized terminal listing.
package report

import (
	"encoding/json"
	"io"
	"math"
	"time"

	"github.com/tanaer/skillguard/internal/audit"
)

// Version tags the structured report schema.
const Version = "1.0.0"

// Report is the top-level structured document.
type Report struct {
	Version         string        `json:"version"`
	GeneratedAt     string        `json:"generated_at"`
	ScanTimeSeconds float64       `json:"scan_time_seconds"`
	Summary         Summary       `json:"summary"`
	Skills          []SkillRecord `json:"skills"`
}

// Summary aggregates counts over the skills array.
type Summary struct {
	TotalSkills   int         `json:"total_skills"`
	TotalFindings int         `json:"total_findings"`
	ByRiskLevel   LevelCounts `json:"by_risk_level"`
}

// LevelCounts always carries all five levels, zero included.
type LevelCounts struct {
	Safe      int `json:"safe"`
	Low       int `json:"low"`
	Medium    int `json:"medium"`
	High      int `json:"high"`
	Dangerous int `json:"dangerous"`
}

// SkillRecord is one audited skill.
type SkillRecord struct {
	Name                 string          `json:"name"`
	Path                 string          `json:"path"`
	RiskLevel            audit.RiskLevel `json:"risk_level"`
	TotalScore           int             `json:"total_score"`
	HasHardTrigger       bool            `json:"has_hard_trigger"`
	FileCount            int             `json:"file_count"`
	ScriptCount          int             `json:"script_count"`
	AllowedTools         []string        `json:"allowed_tools"`
	AllowedToolsParsed   bool            `json:"allowed_tools_parsed"`
	InferredCapabilities []string        `json:"inferred_capabilities"`
	Findings             []FindingRecord `json:"findings"`
}

// FindingRecord is one rule match.
type FindingRecord struct {
	RuleID      string         `json:"rule_id"`
	RuleName    string         `json:"rule_name"`
	Severity    audit.Severity `json:"severity"`
	Category    audit.Category `json:"category"`
	File        string         `json:"file"`
	Line        int            `json:"line"`
	Snippet     string         `json:"snippet"`
	Weight      int            `json:"weight"`
	HardTrigger bool           `json:"hard_trigger"`
}

// Build assembles the structured report for a set of audit results.
func Build(results []audit.Result, scanTime time.Duration, now time.Time) Report {
	r := Report{
		Version:         Version,
		GeneratedAt:     now.Format(time.RFC3339),
		ScanTimeSeconds: math.Round(scanTime.Seconds()*100) / 100,
		Skills:          make([]SkillRecord, 0, len(results)),
	}

	for _, res := range results {
		r.Skills = append(r.Skills, makeSkillRecord(res))
	}
	r.Summary = summarize(results)
	return r
}

func summarize(results []audit.Result) Summary {
	var s Summary
	s.TotalSkills = len(results)
	for _, res := range results {
		s.TotalFindings += len(res.Findings)
		switch res.RiskLevel {
		case audit.RiskSafe:
			s.ByRiskLevel.Safe++
		case audit.RiskLow:
			s.ByRiskLevel.Low++
		case audit.RiskMedium:
			s.ByRiskLevel.Medium++
		case audit.RiskHigh:
			s.ByRiskLevel.High++
		case audit.RiskDangerous:
			s.ByRiskLevel.Dangerous++
		}
	}
	return s
}

func makeSkillRecord(res audit.Result) SkillRecord {
	rec := SkillRecord{
		Name:                 res.SkillName,
		Path:                 res.SkillPath,
		RiskLevel:            res.RiskLevel,
		TotalScore:           res.TotalScore,
		HasHardTrigger:       res.HasHardTrigger,
		FileCount:            res.FileCount,
		ScriptCount:          res.ScriptCount,
		AllowedTools:         emptyNotNull(res.AllowedTools),
		AllowedToolsParsed:   res.ManifestParsed,
		InferredCapabilities: emptyNotNull(res.InferredCaps),
		Findings:             make([]FindingRecord, 0, len(res.Findings)),
	}
	for _, f := range res.Findings {
		rec.Findings = append(rec.Findings, FindingRecord{
			RuleID:      f.RuleID,
			RuleName:    f.RuleName,
			Severity:    f.Severity,
			Category:    f.Category,
			File:        f.FilePath,
			Line:        f.LineNumber,
			Snippet:     f.Snippet,
			Weight:      f.Weight,
			HardTrigger: f.HardTrigger,
		})
	}
	return rec
}

func emptyNotNull(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// WriteJSON encodes the report with two-space indentation. HTML
// escaping is off so non-ASCII snippets and skill names pass through
// literally.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

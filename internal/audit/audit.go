package audit

import (
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// AuditSkill runs the full pipeline for one skill: manifest parse,
// per-file pattern scan, capability inference, score aggregation.
// Unreadable files are skipped; nothing in the scanned content can
// fail the audit.
func AuditSkill(skill SkillInfo) Result {
	result := Result{
		SkillName: skill.Name,
		SkillPath: skill.Path,
		FileCount: len(skill.Files),
	}

	if skill.ManifestPath != "" {
		result.AllowedTools, result.ManifestParsed = ParseManifest(skill.ManifestPath)
	}

	var capSets [][]string
	for _, file := range skill.Files {
		if file.IsScript {
			result.ScriptCount++
		}

		b, err := os.ReadFile(file.Path)
		if err != nil {
			continue
		}
		content := string(b)

		result.Findings = append(result.Findings, ScanContent(content, file.RelativePath, file.IsScript)...)
		capSets = append(capSets, InferCapabilities(content))
	}
	result.InferredCaps = mergeCaps(capSets...)

	result.TotalScore, result.RiskLevel, result.HasHardTrigger = Score(result.Findings)
	return result
}

// AuditAll audits every skill, fanning out across workers. Results
// come back in the same order the scanner enumerated the skills; each
// worker owns its own findings list, so no state is shared.
func AuditAll(skills []SkillInfo) []Result {
	results := make([]Result, len(skills))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, skill := range skills {
		g.Go(func() error {
			results[i] = AuditSkill(skill)
			return nil
		})
	}
	g.Wait()

	return results
}

package audit

// Risk-level thresholds over the clamped total score.
const (
	thresholdLow       = 1
	thresholdMedium    = 25
	thresholdHigh      = 50
	thresholdDangerous = 75
)

// hardTriggerFloor is the minimum total score once any hard-triggered
// rule has matched.
const hardTriggerFloor = 75

// maxScore clamps the total.
const maxScore = 100

// Score aggregates the findings of one skill into a total score, a
// risk level, and the hard-trigger flag.
//
// Repeated matches of the same rule decay: the first occurrence seen
// contributes its full effective weight, every later one half of its
// own. Decay is keyed on the rule ID, not the category.
func Score(findings []Finding) (int, RiskLevel, bool) {
	if len(findings) == 0 {
		return 0, RiskSafe, false
	}

	hard := false
	seen := map[string]bool{}
	total := 0

	for _, f := range findings {
		if f.HardTrigger {
			hard = true
		}
		if seen[f.RuleID] {
			total += f.Weight / 2
		} else {
			seen[f.RuleID] = true
			total += f.Weight
		}
	}

	if hard && total < hardTriggerFloor {
		total = hardTriggerFloor
	}
	if total > maxScore {
		total = maxScore
	}

	return total, levelFor(total, hard), hard
}

func levelFor(score int, hardTrigger bool) RiskLevel {
	switch {
	case hardTrigger || score >= thresholdDangerous:
		return RiskDangerous
	case score >= thresholdHigh:
		return RiskHigh
	case score >= thresholdMedium:
		return RiskMedium
	case score >= thresholdLow:
		return RiskLow
	default:
		return RiskSafe
	}
}

package audit

import "testing"

func mkFinding(ruleID string, weight int, hard bool) Finding {
	return Finding{RuleID: ruleID, Weight: weight, HardTrigger: hard}
}

func TestScoreEmpty(t *testing.T) {
	score, level, hard := Score(nil)
	if score != 0 || level != RiskSafe || hard {
		t.Fatalf("empty findings: got (%d, %s, %v)", score, level, hard)
	}
}

func TestScoreDecayLaw(t *testing.T) {
	// k matches of one rule at weight w score w + (k-1)*floor(w/2),
	// clamped at 100.
	cases := []struct {
		weight int
		k      int
		want   int
	}{
		{60, 1, 60},
		{60, 2, 90},
		{60, 3, 100}, // 120 clamped
		{40, 2, 60},
		{35, 3, 69}, // 35 + 17 + 17
		{55, 1, 55},
	}
	for _, tc := range cases {
		var findings []Finding
		for i := 0; i < tc.k; i++ {
			findings = append(findings, mkFinding("R", tc.weight, false))
		}
		score, _, _ := Score(findings)
		if score != tc.want {
			t.Errorf("w=%d k=%d: score %d, want %d", tc.weight, tc.k, score, tc.want)
		}
	}
}

func TestScoreDecayIsPerRuleID(t *testing.T) {
	findings := []Finding{
		mkFinding("A", 60, false),
		mkFinding("B", 60, false),
		mkFinding("A", 60, false),
	}
	score, _, _ := Score(findings)
	// A contributes 60 + 30, B contributes 60: 150 clamped to 100.
	if score != 100 {
		t.Fatalf("score %d, want 100", score)
	}

	findings = []Finding{
		mkFinding("A", 40, false),
		mkFinding("B", 40, false),
	}
	score, _, _ = Score(findings)
	if score != 80 {
		t.Fatalf("distinct rules must not decay: score %d, want 80", score)
	}
}

func TestScoreHardTriggerFloor(t *testing.T) {
	// A lone hard trigger below 75 is floored to 75.
	score, level, hard := Score([]Finding{mkFinding("X", 40, true)})
	if score != 75 || level != RiskDangerous || !hard {
		t.Fatalf("got (%d, %s, %v), want (75, dangerous, true)", score, level, hard)
	}

	// A hard trigger above the floor keeps its own score.
	score, level, _ = Score([]Finding{mkFinding("CURL_PIPE_SH", 90, true)})
	if score != 90 || level != RiskDangerous {
		t.Fatalf("got (%d, %s), want (90, dangerous)", score, level)
	}
}

func TestScoreLevels(t *testing.T) {
	cases := []struct {
		weight int
		want   RiskLevel
	}{
		{100, RiskDangerous},
		{75, RiskDangerous},
		{74, RiskHigh},
		{50, RiskHigh},
		{49, RiskMedium},
		{25, RiskMedium},
		{24, RiskLow},
		{1, RiskLow},
	}
	for _, tc := range cases {
		_, level, _ := Score([]Finding{mkFinding("R", tc.weight, false)})
		if level != tc.want {
			t.Errorf("weight %d: level %s, want %s", tc.weight, level, tc.want)
		}
	}
}

func TestScoreMonotonicity(t *testing.T) {
	base := []Finding{mkFinding("A", 40, false)}
	baseScore, baseLevel, _ := Score(base)

	extended := append([]Finding{}, base...)
	extended = append(extended, mkFinding("B", 35, false))
	extScore, extLevel, _ := Score(extended)

	if extScore < baseScore {
		t.Fatalf("adding a finding lowered the score: %d -> %d", baseScore, extScore)
	}
	if extLevel.Rank() < baseLevel.Rank() {
		t.Fatalf("adding a finding lowered the level: %s -> %s", baseLevel, extLevel)
	}
}

func TestScoreHardTriggerDominance(t *testing.T) {
	findings := []Finding{
		mkFinding("PY_URLLIB", 35, false),
		mkFinding("SSH_KEYS", 90, true),
	}
	score, level, hard := Score(findings)
	if !hard || level != RiskDangerous {
		t.Fatalf("hard trigger must dominate: got (%d, %s, %v)", score, level, hard)
	}
	if score < 75 {
		t.Fatalf("hard-trigger result below floor: %d", score)
	}
}

func TestScoreBounds(t *testing.T) {
	var findings []Finding
	for i := 0; i < 50; i++ {
		findings = append(findings, mkFinding("RM_RF_ROOT", 100, true))
	}
	score, level, _ := Score(findings)
	if score != 100 || level != RiskDangerous {
		t.Fatalf("got (%d, %s), want clamped (100, dangerous)", score, level)
	}
}

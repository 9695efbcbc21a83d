package hybrid

import (
	"strings"
	"time"

	"github.com/jonathan/ats-analyzer/internal/rules"
	"github.com/jonathan/ats-analyzer/internal/types"
)

// Emergency builds a minimal heuristic result for total-outage conditions:
// base score 30, +15 for an email, +10 for a phone number, and +15/+10/+10
// for experience/education/skills keyword presence. It always returns a
// schema-complete result.
func Emergency(resumeText string) *types.AnalysisResult {
	lower := strings.ToLower(resumeText)
	score := 30

	var strengths, issues []string

	if rules.EmailRe.MatchString(resumeText) {
		score += 15
		strengths = append(strengths, "Email address present")
	} else {
		issues = append(issues, "No email address found")
	}

	if rules.PhoneRe.MatchString(resumeText) {
		score += 10
		strengths = append(strengths, "Phone number present")
	} else {
		issues = append(issues, "No phone number found")
	}

	sectionCredit := []struct {
		keyword string
		bonus   int
	}{
		{"experience", 15},
		{"education", 10},
		{"skills", 10},
	}
	for _, sc := range sectionCredit {
		if strings.Contains(lower, sc.keyword) {
			score += sc.bonus
			strengths = append(strengths, "Has "+sc.keyword+" content")
		} else {
			issues = append(issues, "Missing "+sc.keyword+" content")
		}
	}

	result := &types.AnalysisResult{
		ATSScore:       types.ClampScore(score),
		Strengths:      strengths,
		CriticalIssues: issues,
		ActionableSteps: []types.ActionableStep{
			{Priority: types.PriorityHigh, Action: "Retry the analysis later for a full category breakdown"},
		},
		OverallAssessment: "Limited analysis: full scoring was unavailable, so this estimate uses basic resume signals only.",
		Metadata: types.Metadata{
			Source:    types.SourceFallback,
			Timestamp: time.Now().UTC(),
		},
	}
	result.Sanitize()
	return result
}

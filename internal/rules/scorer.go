// Package rules implements the deterministic rule-based résumé scorer. It is
// the system of record whenever the AI analysis path is unavailable.
package rules

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/ats-analyzer/internal/types"
)

// ScoreResume computes a deterministic ATS score across eight categories.
// It never fails; poor input simply lands in a low band with explanatory
// detail strings. Identical input always yields identical output.
func ScoreResume(text string) *types.AnalysisResult {
	lower := strings.ToLower(text)

	keywordsBreakdown, industry := analyzeKeywords(text, lower)

	breakdown := map[types.Category]*types.CategoryBreakdown{
		types.CategoryContactInfo: analyzeContactInfo(text, lower),
		types.CategoryStructure:   analyzeStructure(text, lower),
		types.CategoryContent:     analyzeContent(text, lower),
		types.CategoryKeywords:    keywordsBreakdown,
		types.CategoryFormatting:  analyzeFormatting(text, lower),
		types.CategoryExperience:  analyzeExperience(text, lower),
		types.CategoryEducation:   analyzeEducation(text, lower),
		types.CategorySkills:      analyzeSkills(text, lower),
	}

	weighted := 0.0
	for cat, b := range breakdown {
		weighted += float64(b.Score) * categoryWeights[cat]
	}
	atsScore := types.ClampScoreF(weighted)

	result := &types.AnalysisResult{
		ATSScore:  atsScore,
		Breakdown: breakdown,
		KeywordAnalysis: types.KeywordAnalysis{
			Industry: industry.industry,
			Found:    industry.hits,
			Missing:  industry.missing,
		},
		Strengths:         collectStrengths(breakdown),
		CriticalIssues:    collectCriticalIssues(breakdown),
		ActionableSteps:   collectActionableSteps(breakdown),
		OverallAssessment: assessScore(atsScore),
		Metadata: types.Metadata{
			Source:    types.SourceRules,
			Timestamp: time.Now().UTC(),
		},
	}
	result.Sanitize()
	return result
}

// collectStrengths turns high-scoring categories into strength statements,
// in canonical category order so output stays deterministic.
func collectStrengths(breakdown map[types.Category]*types.CategoryBreakdown) []string {
	var strengths []string
	for _, cat := range types.Categories() {
		b := breakdown[cat]
		if b.Score >= 80 {
			strengths = append(strengths, fmt.Sprintf("Strong %s (%d/100)", categoryLabel(cat), b.Score))
		}
		if b.Score >= 60 && len(b.Details) > 0 {
			strengths = append(strengths, b.Details[0])
		}
	}
	return types.DedupeCap(strengths, types.MaxStrengths)
}

// collectCriticalIssues turns low-scoring categories into issue statements.
func collectCriticalIssues(breakdown map[types.Category]*types.CategoryBreakdown) []string {
	var issues []string
	for _, cat := range types.Categories() {
		b := breakdown[cat]
		if b.Score < 40 {
			issues = append(issues, fmt.Sprintf("Weak %s (%d/100)", categoryLabel(cat), b.Score))
		}
	}
	return types.DedupeCap(issues, types.MaxCriticalIssues)
}

// collectActionableSteps promotes category suggestions into prioritized
// steps. Heavier-weighted categories yield higher priorities.
func collectActionableSteps(breakdown map[types.Category]*types.CategoryBreakdown) []types.ActionableStep {
	var steps []types.ActionableStep
	for _, cat := range types.Categories() {
		b := breakdown[cat]
		priority := priorityFor(cat, b.Score)
		for _, suggestion := range b.Suggestions {
			steps = append(steps, types.ActionableStep{Priority: priority, Action: suggestion})
		}
	}
	return types.DedupeCapSteps(steps, types.MaxActionableSteps)
}

// priorityFor derives step priority from the category weight and its score.
func priorityFor(cat types.Category, score int) string {
	weight := categoryWeights[cat]
	switch {
	case weight >= 0.20 && score < 60:
		return types.PriorityHigh
	case weight >= 0.10 && score < 50:
		return types.PriorityHigh
	case score < 60:
		return types.PriorityMedium
	default:
		return types.PriorityLow
	}
}

// assessScore maps the composite score to an overall assessment string.
func assessScore(score int) string {
	switch {
	case score >= 85:
		return "Excellent ATS compatibility. This resume should parse cleanly and rank well in automated screening."
	case score >= 70:
		return "Good ATS compatibility with room for improvement in a few categories."
	case score >= 50:
		return "Moderate ATS compatibility. Address the critical issues to avoid automated filtering."
	case score >= 30:
		return "Below-average ATS compatibility. Significant restructuring is recommended."
	default:
		return "Poor ATS compatibility. This resume is likely to be filtered out before human review."
	}
}

// categoryLabel returns a human-readable name for a category.
func categoryLabel(cat types.Category) string {
	switch cat {
	case types.CategoryContactInfo:
		return "contact information"
	case types.CategoryStructure:
		return "structure"
	case types.CategoryContent:
		return "content quality"
	case types.CategoryKeywords:
		return "keyword alignment"
	case types.CategoryFormatting:
		return "formatting"
	case types.CategoryExperience:
		return "experience section"
	case types.CategoryEducation:
		return "education section"
	case types.CategorySkills:
		return "skills section"
	default:
		return string(cat)
	}
}

package hybrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-analyzer/internal/types"
)

func TestBlendScores(t *testing.T) {
	assert.Equal(t, 60, blendScores(100, 0))
	assert.Equal(t, 40, blendScores(0, 100))
	assert.Equal(t, 72, blendScores(80, 60))
	assert.Equal(t, 65, blendScores(75, 50))
	assert.Equal(t, 0, blendScores(0, 0))
	assert.Equal(t, 100, blendScores(100, 100))
}

func TestUnionStrings(t *testing.T) {
	out := unionStrings(
		[]string{"Add metrics", "Fix dates", ""},
		[]string{"add metrics", "Trim length", "  fix DATES "},
	)
	assert.Equal(t, []string{"Add metrics", "Fix dates", "Trim length"}, out)
}

func TestMerge_BlendsAndUnions(t *testing.T) {
	jobMatch := 82
	ai := &types.AnalysisResult{
		ATSScore:      90,
		JobMatchScore: &jobMatch,
		Breakdown: map[types.Category]*types.CategoryBreakdown{
			types.CategoryContent: {Score: 80, MaxScore: 100, Details: []string{"AI detail"}},
		},
		KeywordAnalysis:   types.KeywordAnalysis{Found: []string{"go"}},
		Strengths:         []string{"Strong content"},
		OverallAssessment: "AI assessment",
		Metadata:          types.Metadata{Source: types.SourceAI},
	}
	rulesResult := &types.AnalysisResult{
		ATSScore: 60,
		Breakdown: map[types.Category]*types.CategoryBreakdown{
			types.CategoryContent:  {Score: 50, MaxScore: 100, Details: []string{"Rules detail"}},
			types.CategoryKeywords: {Score: 40, MaxScore: 100},
		},
		KeywordAnalysis:   types.KeywordAnalysis{Industry: "tech", Found: []string{"sql"}},
		Strengths:         []string{"strong content", "Good structure"},
		OverallAssessment: "Rules assessment",
		Metadata:          types.Metadata{Source: types.SourceRules},
	}

	combined := merge(ai, rulesResult)

	assert.Equal(t, blendScores(90, 60), combined.ATSScore)
	require.NotNil(t, combined.JobMatchScore)
	assert.Equal(t, 82, *combined.JobMatchScore)
	assert.Equal(t, types.SourceHybrid, combined.Metadata.Source)
	assert.Equal(t, "AI assessment", combined.OverallAssessment)
	assert.Equal(t, "tech", combined.KeywordAnalysis.Industry)
	assert.Equal(t, []string{"go", "sql"}, combined.KeywordAnalysis.Found)
	assert.Equal(t, []string{"Strong content", "Good structure"}, combined.Strengths)

	content := combined.Breakdown[types.CategoryContent]
	assert.Equal(t, blendScores(80, 50), content.Score)
	assert.Equal(t, []string{"AI detail", "Rules detail"}, content.Details)

	// Present on one side only: passed through.
	assert.Equal(t, 40, combined.Breakdown[types.CategoryKeywords].Score)
	// Sanitize guarantees all eight categories.
	assert.Len(t, combined.Breakdown, 8)
}

func TestMerge_CapsUnionedLists(t *testing.T) {
	ai := &types.AnalysisResult{ATSScore: 70}
	rulesResult := &types.AnalysisResult{ATSScore: 50}
	for i := 0; i < 6; i++ {
		ai.Strengths = append(ai.Strengths, "ai strength "+string(rune('a'+i)))
		rulesResult.Strengths = append(rulesResult.Strengths, "rules strength "+string(rune('a'+i)))
	}

	combined := merge(ai, rulesResult)
	assert.Len(t, combined.Strengths, types.MaxStrengths)
	assert.Equal(t, "ai strength a", combined.Strengths[0])
}

func TestMerge_FallsBackToRulesAssessment(t *testing.T) {
	ai := &types.AnalysisResult{ATSScore: 70}
	rulesResult := &types.AnalysisResult{ATSScore: 50, OverallAssessment: "Rules assessment"}

	combined := merge(ai, rulesResult)
	assert.Equal(t, "Rules assessment", combined.OverallAssessment)
}

func TestEmergency_FullSignals(t *testing.T) {
	text := "jane@example.com 555-123-4567 experience education skills"

	result := Emergency(text)

	// 30 base +15 email +10 phone +15 experience +10 education +10 skills.
	assert.Equal(t, 90, result.ATSScore)
	assert.Equal(t, types.SourceFallback, result.Metadata.Source)
	assert.Len(t, result.Breakdown, 8)
	assert.NotEmpty(t, result.ActionableSteps)
	assert.NotEmpty(t, result.OverallAssessment)
}

func TestEmergency_NoSignals(t *testing.T) {
	result := Emergency("")

	assert.Equal(t, 30, result.ATSScore)
	assert.Len(t, result.CriticalIssues, 5)
	assert.Empty(t, result.Strengths)
	assert.Len(t, result.Breakdown, 8)
}

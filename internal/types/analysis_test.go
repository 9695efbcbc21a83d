package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0, ClampScore(-5))
	assert.Equal(t, 0, ClampScore(0))
	assert.Equal(t, 57, ClampScore(57))
	assert.Equal(t, 100, ClampScore(100))
	assert.Equal(t, 100, ClampScore(140))
}

func TestClampScoreF_Rounds(t *testing.T) {
	assert.Equal(t, 58, ClampScoreF(57.5))
	assert.Equal(t, 57, ClampScoreF(57.4))
	assert.Equal(t, 0, ClampScoreF(-0.6))
	assert.Equal(t, 100, ClampScoreF(100.2))
}

func TestDedupeCap(t *testing.T) {
	in := []string{"Add metrics", "add metrics", "  ", "Fix dates", "Add metrics", "Trim length"}
	out := DedupeCap(in, 2)

	assert.Equal(t, []string{"Add metrics", "Fix dates"}, out)
}

func TestDedupeCap_PreservesOrder(t *testing.T) {
	in := []string{"c", "a", "b", "a", "c"}
	out := DedupeCap(in, 10)
	assert.Equal(t, []string{"c", "a", "b"}, out)
}

func TestDedupeCapSteps_DefaultsPriority(t *testing.T) {
	in := []ActionableStep{
		{Priority: "urgent", Action: "Fix contact info"},
		{Priority: PriorityLow, Action: "fix contact info"},
		{Priority: PriorityHigh, Action: "Add keywords"},
	}
	out := DedupeCapSteps(in, 10)

	require.Len(t, out, 2)
	assert.Equal(t, PriorityMedium, out[0].Priority)
	assert.Equal(t, "Fix contact info", out[0].Action)
	assert.Equal(t, PriorityHigh, out[1].Priority)
}

func TestSanitize_FillsAllCategories(t *testing.T) {
	r := &AnalysisResult{ATSScore: 150}
	r.Sanitize()

	assert.Equal(t, 100, r.ATSScore)
	require.Len(t, r.Breakdown, 8)
	for _, cat := range Categories() {
		b := r.Breakdown[cat]
		require.NotNil(t, b, "missing category %s", cat)
		assert.Equal(t, 100, b.MaxScore)
		assert.NotNil(t, b.Details)
		assert.NotNil(t, b.Suggestions)
	}
	assert.False(t, r.Metadata.Timestamp.IsZero())
}

func TestSanitize_ClampsAndCaps(t *testing.T) {
	jobMatch := 180
	r := &AnalysisResult{
		ATSScore:      -20,
		JobMatchScore: &jobMatch,
		Breakdown: map[Category]*CategoryBreakdown{
			CategoryContent: {Score: 300},
		},
	}
	for i := 0; i < 20; i++ {
		r.Strengths = append(r.Strengths, string(rune('a'+i)))
		r.CriticalIssues = append(r.CriticalIssues, string(rune('a'+i)))
		r.ActionableSteps = append(r.ActionableSteps, ActionableStep{Priority: PriorityLow, Action: string(rune('a' + i))})
	}
	r.Sanitize()

	assert.Equal(t, 0, r.ATSScore)
	assert.Equal(t, 100, *r.JobMatchScore)
	assert.Equal(t, 100, r.Breakdown[CategoryContent].Score)
	assert.Len(t, r.Strengths, MaxStrengths)
	assert.Len(t, r.CriticalIssues, MaxCriticalIssues)
	assert.Len(t, r.ActionableSteps, MaxActionableSteps)
}

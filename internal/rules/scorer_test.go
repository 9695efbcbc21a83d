package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-analyzer/internal/types"
)

func strongResume() string {
	return `Jane Doe
jane@janedoe.dev | +1 555-123-4567 | linkedin.com/in/janedoe | https://github.com/janedoe | Remote

Summary
Senior software engineer with 8 years of experience building cloud infrastructure.

Experience
Senior Software Engineer, Acme Inc.
2019 - Present
- Led migration to Kubernetes, improved deploy frequency 3x
- Built data pipeline processing 2M events for 40 customers
- Reduced infrastructure costs by 30%
- Designed API gateway used by 12 teams
- Mentored 5 engineers

Software Engineer, Beta LLC
2016 - 2019
- Developed backend services in Go and Python
- Automated testing, increased coverage by 45%

Education
Bachelor of Science in Computer Science, State University, GPA: 3.7

Skills
Go, Python, SQL, React, Docker, Kubernetes, Terraform, AWS, PostgreSQL, Communication, Leadership
`
}

func basicsOnlyResume() string {
	return `John Doe
john.doe@gmail.com
(555) 123-4567

Experience
Worked at a company helping customers with their accounts.

Education
Studied general topics.

Skills
communication, writing, email
`
}

func TestScoreResume_Deterministic(t *testing.T) {
	a := ScoreResume(strongResume())
	b := ScoreResume(strongResume())

	a.Metadata.Timestamp = time.Time{}
	b.Metadata.Timestamp = time.Time{}
	assert.Equal(t, a, b)
}

func TestScoreResume_CompositeMatchesWeights(t *testing.T) {
	result := ScoreResume(strongResume())

	weighted := 0.0
	for cat, b := range result.Breakdown {
		require.GreaterOrEqual(t, b.Score, 0)
		require.LessOrEqual(t, b.Score, 100)
		weighted += float64(b.Score) * categoryWeights[cat]
	}
	assert.Equal(t, types.ClampScoreF(weighted), result.ATSScore)
}

func TestScoreResume_StrongResumeScoresWell(t *testing.T) {
	result := ScoreResume(strongResume())

	assert.GreaterOrEqual(t, result.ATSScore, 70)
	assert.Equal(t, types.SourceRules, result.Metadata.Source)
	assert.NotEmpty(t, result.Strengths)
	assert.LessOrEqual(t, len(result.Strengths), types.MaxStrengths)
	assert.NotEmpty(t, result.OverallAssessment)
	require.Len(t, result.Breakdown, 8)
}

func TestScoreResume_BasicsOnlyLandsLowBand(t *testing.T) {
	// Contact details and section headers but no action verbs, quantifiers,
	// or industry keywords: contact and structure carry the score while
	// content and keywords stay at zero.
	result := ScoreResume(basicsOnlyResume())

	assert.Equal(t, 0, result.Breakdown[types.CategoryContent].Score)
	assert.Equal(t, 0, result.Breakdown[types.CategoryKeywords].Score)
	assert.Equal(t, 45, result.Breakdown[types.CategoryContactInfo].Score)
	assert.GreaterOrEqual(t, result.ATSScore, 10)
	assert.LessOrEqual(t, result.ATSScore, 35)
	assert.NotEmpty(t, result.CriticalIssues)
	assert.NotEmpty(t, result.ActionableSteps)
}

func TestScoreResume_NeverFails(t *testing.T) {
	for _, text := range []string{"", "x", "\n\n\n", "!!!"} {
		result := ScoreResume(text)
		require.NotNil(t, result)
		assert.GreaterOrEqual(t, result.ATSScore, 0)
		assert.LessOrEqual(t, result.ATSScore, 100)
		assert.Len(t, result.Breakdown, 8)
	}
}

func TestPriorityFor(t *testing.T) {
	assert.Equal(t, types.PriorityHigh, priorityFor(types.CategoryContent, 30))
	assert.Equal(t, types.PriorityHigh, priorityFor(types.CategoryStructure, 40))
	assert.Equal(t, types.PriorityMedium, priorityFor(types.CategoryEducation, 30))
	assert.Equal(t, types.PriorityLow, priorityFor(types.CategoryContent, 90))
}

func TestAssessScore_Bands(t *testing.T) {
	assert.Contains(t, assessScore(90), "Excellent")
	assert.Contains(t, assessScore(75), "Good")
	assert.Contains(t, assessScore(55), "Moderate")
	assert.Contains(t, assessScore(35), "Below-average")
	assert.Contains(t, assessScore(10), "Poor")
}

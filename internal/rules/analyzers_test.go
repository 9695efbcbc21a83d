package rules

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeContactInfo_FullDetails(t *testing.T) {
	text := "Jane Doe\njane@janedoe.dev\n+1 555-123-4567\nlinkedin.com/in/janedoe\nhttps://github.com/janedoe\nRemote"

	b := analyzeContactInfo(text, strings.ToLower(text))

	// 25+5 email with custom domain, 20 phone, 15 linkedin, 15 location,
	// 10 URL, 15 github: clamped to 100.
	assert.Equal(t, 100, b.Score)
	assert.Contains(t, b.Details, "Custom email domain")
}

func TestAnalyzeContactInfo_FreemailNoDomainBonus(t *testing.T) {
	text := "jane.doe@gmail.com"

	b := analyzeContactInfo(text, strings.ToLower(text))

	assert.Equal(t, 25, b.Score)
	assert.NotContains(t, b.Details, "Custom email domain")
	assert.Contains(t, b.Suggestions, "Add a phone number")
}

func TestAnalyzeContent_StrongContent(t *testing.T) {
	text := strings.Join([]string{
		"- Led migration, improved latency by 40%",
		"- Built pipeline processing $2M in transactions",
		"- Designed rollout, 3x faster deploys",
		"- Launched beta program",
		"- Improved onboarding flow",
	}, "\n")

	b := analyzeContent(text, strings.ToLower(text))

	// 5+ action verbs (+30), 3 quantifiers (+25), 5 bullet lines (+15).
	assert.Equal(t, 70, b.Score)
}

func TestAnalyzeContent_PenalizesWeakPhrasing(t *testing.T) {
	text := "I was responsible for reports. I helped with filing. My duties included typing."

	b := analyzeContent(text, strings.ToLower(text))

	assert.Equal(t, 0, b.Score)
	assert.NotEmpty(t, b.Suggestions)
}

func TestAnalyzeStructure_AllSections(t *testing.T) {
	text := "Summary\nx\nExperience\nx\nEducation\nx\nSkills\nx\nProjects\nx\nCertifications\nx"

	b := analyzeStructure(text, strings.ToLower(text))

	// Section credit capped at 90 plus experience-before-education.
	assert.Equal(t, 100, b.Score)
}

func TestAnalyzeStructure_NoSections(t *testing.T) {
	text := "just a short paragraph describing a career without any headers"

	b := analyzeStructure(text, strings.ToLower(text))

	assert.Equal(t, 0, b.Score)
	assert.NotEmpty(t, b.Suggestions)
}

func TestAnalyzeExperience_RichHistory(t *testing.T) {
	text := strings.Join([]string{
		"Senior Software Engineer, Acme Inc.",
		"January 2018",
		"2019 - 2022",
		"Engineering Manager, Beta LLC",
		"2022 - Present",
		"Promoted to manager; solutions architect with 5 years of experience",
	}, "\n")

	b := analyzeExperience(text, strings.ToLower(text))

	// 3 titles (+25), 3 dates (+25), 2 company suffixes (+15),
	// promotion (+15), tenure (+10).
	assert.Equal(t, 90, b.Score)
}

func TestAnalyzeEducationAt_RecencyUsesClock(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

	text := "Bachelor of Science, Stanford University, 2025"
	b := analyzeEducationAt(text, strings.ToLower(text), now)
	// Degree (+25), institution (+15), recent year (+15).
	assert.Equal(t, 55, b.Score)

	old := "Bachelor of Science, Stanford University, 2015"
	b = analyzeEducationAt(old, strings.ToLower(old), now)
	assert.Equal(t, 40, b.Score)
}

func TestAnalyzeEducationAt_GPABands(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

	strong := "bachelor degree gpa: 3.8"
	b := analyzeEducationAt(strong, strong, now)
	assert.Equal(t, 40, b.Score)

	mid := "bachelor degree gpa: 3.2"
	b = analyzeEducationAt(mid, mid, now)
	assert.Equal(t, 35, b.Score)

	low := "bachelor degree gpa: 2.5"
	b = analyzeEducationAt(low, low, now)
	assert.Equal(t, 25, b.Score)
}

func TestAnalyzeSkills_RequiresSection(t *testing.T) {
	text := "Python and Go mentioned inline without a header"

	b := analyzeSkills(text, strings.ToLower(text))

	assert.Equal(t, 0, b.Score)
	assert.Contains(t, b.Suggestions, "Add a dedicated skills section")
}

func TestAnalyzeSkills_RichList(t *testing.T) {
	text := "Skills\nPython, Go, React, Docker, SQL, AWS, Kubernetes, Communication, Leadership, Terraform, PostgreSQL"

	b := analyzeSkills(text, strings.ToLower(text))

	// 11 items (+40), technical/soft mix (+10), stack depth capped at 30.
	assert.Equal(t, 80, b.Score)
}

func TestAnalyzeFormatting_CleanText(t *testing.T) {
	text := "Header\n- one\n- two\n- three\n- four"

	b := analyzeFormatting(text, strings.ToLower(text))

	// Baseline 50, consistent bullets (+25), no double-spacing (+25).
	assert.Equal(t, 100, b.Score)
}

func TestAnalyzeFormatting_SymbolsAndSpacing(t *testing.T) {
	text := "★ decorated ✓ resume  with double spaces"

	b := analyzeFormatting(text, strings.ToLower(text))

	// Baseline 50 minus two symbols, no bullet or spacing bonus.
	assert.Equal(t, 40, b.Score)
	assert.NotEmpty(t, b.Suggestions)
}

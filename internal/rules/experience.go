package rules

import (
	"fmt"

	"github.com/jonathan/ats-analyzer/internal/types"
)

// analyzeExperience scores work history signals: job titles, date ranges,
// company names, promotion language, and tenure language.
func analyzeExperience(text, lower string) *types.CategoryBreakdown {
	b := &types.CategoryBreakdown{MaxScore: 100, Details: []string{}, Suggestions: []string{}}
	score := 0

	titles := countContains(lower, jobTitleKeywords)
	switch {
	case titles >= 3:
		score += 25
		b.Details = append(b.Details, fmt.Sprintf("Multiple job titles found (%d)", titles))
	case titles >= 1:
		score += 15
		b.Details = append(b.Details, "Job title found")
	default:
		b.Suggestions = append(b.Suggestions, "State your job titles explicitly for each role")
	}

	dates := len(yearRangeRe.FindAllString(text, -1)) + len(monthYearRe.FindAllString(text, -1))
	switch {
	case dates >= 3:
		score += 25
		b.Details = append(b.Details, fmt.Sprintf("Date ranges found for %d entries", dates))
	case dates >= 2:
		score += 20
		b.Details = append(b.Details, "Date ranges found")
	case dates >= 1:
		score += 10
		b.Suggestions = append(b.Suggestions, "Add start and end dates to every role")
	default:
		b.Suggestions = append(b.Suggestions, "Add employment dates (e.g. '2021 - present')")
	}

	companies := countContains(lower, companySuffixes)
	switch {
	case companies >= 2:
		score += 15
		b.Details = append(b.Details, "Company names identified")
	case companies >= 1:
		score += 10
	}

	if containsAny(lower, promotionLanguage) {
		score += 15
		b.Details = append(b.Details, "Career progression highlighted")
	}

	if containsAny(lower, tenureLanguage) {
		score += 10
		b.Details = append(b.Details, "Tenure emphasized")
	}

	b.Score = types.ClampScore(score)
	return b
}

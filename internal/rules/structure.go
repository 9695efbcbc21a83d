package rules

import (
	"fmt"
	"strings"

	"github.com/jonathan/ats-analyzer/internal/types"
)

// analyzeStructure scores section organization: +15 per canonical section
// (capped at 90), +10 when Experience appears before Education, +10 for a
// word count in the optimal 300-800 band.
func analyzeStructure(text, lower string) *types.CategoryBreakdown {
	b := &types.CategoryBreakdown{MaxScore: 100, Details: []string{}, Suggestions: []string{}}
	score := 0

	sectionCredit := 0
	for _, section := range canonicalSections {
		if hasSection(lower, section.aliases) {
			sectionCredit += 15
			b.Details = append(b.Details, fmt.Sprintf("Found %s section", section.canonical))
		} else {
			b.Suggestions = append(b.Suggestions, fmt.Sprintf("Add a clearly labeled %s section", section.canonical))
		}
	}
	if sectionCredit > 90 {
		sectionCredit = 90
	}
	score += sectionCredit

	expPos := sectionPosition(lower, aliasesFor("experience"))
	eduPos := sectionPosition(lower, aliasesFor("education"))
	if expPos != -1 && eduPos != -1 && expPos < eduPos {
		score += 10
		b.Details = append(b.Details, "Experience listed before education")
	} else if expPos != -1 && eduPos != -1 {
		b.Suggestions = append(b.Suggestions, "List experience before education for experienced roles")
	}

	words := len(strings.Fields(text))
	if words >= optimalWordsMin && words <= optimalWordsMax {
		score += 10
		b.Details = append(b.Details, fmt.Sprintf("Word count in optimal range (%d words)", words))
	} else if words < optimalWordsMin {
		b.Suggestions = append(b.Suggestions, "Resume is brief; expand on accomplishments and responsibilities")
	} else {
		b.Suggestions = append(b.Suggestions, "Resume is long; trim to the most relevant content")
	}

	b.Score = types.ClampScore(score)
	return b
}

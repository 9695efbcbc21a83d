package rules

import (
	"fmt"
	"strings"

	"github.com/jonathan/ats-analyzer/internal/types"
)

// industryMatch is the outcome of industry classification.
type industryMatch struct {
	industry string
	hits     []string
	missing  []string
}

// classifyIndustry picks the industry whose vocabulary has the most hits.
// Industries are checked in fixed order and ties keep the first-checked
// industry, which keeps classification deterministic.
func classifyIndustry(lower string) industryMatch {
	best := industryMatch{industry: industryOrder[0]}
	bestCount := -1

	for _, industry := range industryOrder {
		var hits, missing []string
		for _, kw := range industryVocabularies[industry] {
			if strings.Contains(lower, kw) {
				hits = append(hits, kw)
			} else {
				missing = append(missing, kw)
			}
		}
		if len(hits) > bestCount {
			bestCount = len(hits)
			best = industryMatch{industry: industry, hits: hits, missing: missing}
		}
	}
	return best
}

// analyzeKeywords scores industry keyword alignment: tiered bonus by hit
// count, a stuffing penalty above 5% keyword density, tech-specific bonuses
// for languages and frameworks, and a soft-skill balance bonus.
func analyzeKeywords(text, lower string) (*types.CategoryBreakdown, industryMatch) {
	b := &types.CategoryBreakdown{MaxScore: 100, Details: []string{}, Suggestions: []string{}}
	score := 0

	match := classifyIndustry(lower)
	hits := len(match.hits)

	switch {
	case hits >= 8:
		score += 50
		b.Details = append(b.Details, fmt.Sprintf("Strong %s keyword coverage (%d terms)", match.industry, hits))
	case hits >= 5:
		score += 35
		b.Details = append(b.Details, fmt.Sprintf("Good %s keyword coverage (%d terms)", match.industry, hits))
	case hits >= 3:
		score += 20
		b.Details = append(b.Details, fmt.Sprintf("Some %s keywords found (%d terms)", match.industry, hits))
	default:
		b.Suggestions = append(b.Suggestions, "Include more industry-specific terminology from target job postings")
	}

	// Keyword stuffing check: total keyword occurrences against word count.
	words := len(strings.Fields(lower))
	if words > 0 {
		occurrences := 0
		for _, kw := range industryVocabularies[match.industry] {
			occurrences += countOccurrences(lower, kw)
		}
		density := float64(occurrences) / float64(words)
		if density > stuffingDensityThreshold {
			score -= 15
			b.Suggestions = append(b.Suggestions, "Keyword density is high; reads as keyword stuffing to reviewers")
		}
	}

	if match.industry == "tech" {
		langs := countContains(lower, programmingLanguages)
		switch {
		case langs >= 3:
			score += 15
			b.Details = append(b.Details, fmt.Sprintf("Multiple programming languages listed (%d)", langs))
		case langs >= 1:
			score += 10
			b.Details = append(b.Details, "Programming language listed")
		}

		fw := countContains(lower, frameworks)
		switch {
		case fw >= 2:
			score += 10
			b.Details = append(b.Details, fmt.Sprintf("Frameworks and tooling listed (%d)", fw))
		case fw >= 1:
			score += 5
		}
	}

	if countContains(lower, softSkills) >= 2 {
		score += 10
		b.Details = append(b.Details, "Balanced with soft skills")
	} else {
		b.Suggestions = append(b.Suggestions, "Mention a couple of soft skills such as collaboration or communication")
	}

	b.Score = types.ClampScore(score)
	return b, match
}

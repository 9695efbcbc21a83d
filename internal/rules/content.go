package rules

import (
	"fmt"
	"strings"

	"github.com/jonathan/ats-analyzer/internal/types"
)

// analyzeContent scores writing quality: action verb usage, quantified
// achievements, bullet-point density, and penalties for weak phrasing and
// first-person pronouns.
func analyzeContent(text, lower string) *types.CategoryBreakdown {
	b := &types.CategoryBreakdown{MaxScore: 100, Details: []string{}, Suggestions: []string{}}
	score := 0

	verbCount := 0
	for _, verb := range actionVerbs {
		verbCount += countOccurrences(lower, verb)
	}
	switch {
	case verbCount >= 10:
		score += 40
		b.Details = append(b.Details, fmt.Sprintf("Strong action verb usage (%d occurrences)", verbCount))
	case verbCount >= 5:
		score += 30
		b.Details = append(b.Details, fmt.Sprintf("Good action verb usage (%d occurrences)", verbCount))
	case verbCount >= 1:
		score += 15
		b.Suggestions = append(b.Suggestions, "Start more bullet points with strong action verbs")
	default:
		b.Suggestions = append(b.Suggestions, "Use action verbs like 'led', 'built', or 'improved' to describe your work")
	}

	quantifiers := 0
	for _, re := range quantifierRes {
		quantifiers += len(re.FindAllString(text, -1))
	}
	switch {
	case quantifiers >= 5:
		score += 35
		b.Details = append(b.Details, fmt.Sprintf("Well-quantified achievements (%d metrics)", quantifiers))
	case quantifiers >= 3:
		score += 25
		b.Details = append(b.Details, fmt.Sprintf("Some quantified achievements (%d metrics)", quantifiers))
	case quantifiers >= 1:
		score += 15
		b.Suggestions = append(b.Suggestions, "Quantify more achievements with percentages, dollar amounts, or team sizes")
	default:
		b.Suggestions = append(b.Suggestions, "Add measurable results (e.g. 'reduced costs by 20%')")
	}

	bullets := countBulletLines(text)
	switch {
	case bullets >= 5:
		score += 15
		b.Details = append(b.Details, "Consistent bullet-point formatting")
	case bullets >= 3:
		score += 10
	default:
		b.Suggestions = append(b.Suggestions, "Use bullet points to present accomplishments")
	}

	for _, weak := range weakPatterns {
		if strings.Contains(lower, weak) {
			score -= 5
			b.Suggestions = append(b.Suggestions, fmt.Sprintf("Replace passive phrasing like %q with an action verb", weak))
		}
	}

	pronounCount := 0
	padded := " " + lower + " "
	for _, pronoun := range firstPersonPronouns {
		pronounCount += countOccurrences(padded, pronoun)
	}
	if pronounCount > 2 {
		score -= 5
		b.Suggestions = append(b.Suggestions, "Remove first-person pronouns; resumes are written in implied first person")
	}

	b.Score = types.ClampScore(score)
	return b
}

// countBulletLines counts lines beginning with a recognized bullet marker.
func countBulletLines(text string) int {
	count := 0
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		for _, marker := range bulletMarkers {
			if strings.HasPrefix(trimmed, marker) {
				count++
				break
			}
		}
	}
	return count
}

// bulletMarkerStyles returns the distinct bullet markers used in the text.
func bulletMarkerStyles(text string) []string {
	seen := make(map[string]bool)
	var styles []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		for _, marker := range bulletMarkers {
			if strings.HasPrefix(trimmed, marker) {
				if !seen[marker] {
					seen[marker] = true
					styles = append(styles, marker)
				}
				break
			}
		}
	}
	return styles
}

package rules

import (
	"fmt"
	"strings"

	"github.com/jonathan/ats-analyzer/internal/types"
)

// analyzeFormatting scores parse-friendliness from a baseline of 50:
// problematic symbols cost 5 each, consistent bullet usage and the absence
// of double-spacing earn bonuses.
func analyzeFormatting(text, _ string) *types.CategoryBreakdown {
	b := &types.CategoryBreakdown{MaxScore: 100, Details: []string{}, Suggestions: []string{}}
	score := 50

	badSymbols := 0
	for _, sym := range problematicSymbols {
		if strings.Contains(text, sym) {
			badSymbols++
			score -= 5
		}
	}
	if badSymbols > 0 {
		b.Suggestions = append(b.Suggestions, fmt.Sprintf("Remove %d decorative symbol(s); many ATS parsers mangle them", badSymbols))
	} else {
		b.Details = append(b.Details, "No problematic symbols")
	}

	styles := bulletMarkerStyles(text)
	switch {
	case len(styles) == 1 && countBulletLines(text) >= 3:
		score += 25
		b.Details = append(b.Details, "Consistent bullet style")
	case len(styles) > 1:
		score += 10
		b.Suggestions = append(b.Suggestions, "Use one bullet style throughout")
	}

	if !strings.Contains(text, "  ") {
		score += 25
		b.Details = append(b.Details, "No double-spacing")
	} else {
		b.Suggestions = append(b.Suggestions, "Remove double spaces between words")
	}

	b.Score = types.ClampScore(score)
	return b
}

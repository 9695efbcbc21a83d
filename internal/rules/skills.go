package rules

import (
	"fmt"
	"strings"

	"github.com/jonathan/ats-analyzer/internal/types"
)

// analyzeSkills scores the skills section: item count estimated by the
// maximum split count across separators, technical/soft balance, proficiency
// language, and stack-depth bonuses for five named stacks (capped at 30).
func analyzeSkills(text, lower string) *types.CategoryBreakdown {
	b := &types.CategoryBreakdown{MaxScore: 100, Details: []string{}, Suggestions: []string{}}
	score := 0

	section := extractSection(text, aliasesFor("skills"))
	if section == "" {
		b.Suggestions = append(b.Suggestions, "Add a dedicated skills section")
		b.Score = 0
		return b
	}
	sectionLower := strings.ToLower(section)

	items := estimateSkillCount(section)
	switch {
	case items >= 10:
		score += 40
		b.Details = append(b.Details, fmt.Sprintf("Comprehensive skill list (~%d items)", items))
	case items >= 6:
		score += 30
		b.Details = append(b.Details, fmt.Sprintf("Solid skill list (~%d items)", items))
	case items >= 3:
		score += 15
		b.Suggestions = append(b.Suggestions, "Expand the skills section with more relevant tools and technologies")
	default:
		b.Suggestions = append(b.Suggestions, "List skills as a delimited list so parsers can pick them up")
	}

	hasTechnical := countContains(sectionLower, programmingLanguages)+countContains(sectionLower, frameworks) > 0
	hasSoft := countContains(sectionLower, softSkills) > 0
	if hasTechnical && hasSoft {
		score += 10
		b.Details = append(b.Details, "Mix of technical and soft skills")
	} else if hasTechnical {
		b.Suggestions = append(b.Suggestions, "Balance technical skills with one or two soft skills")
	}

	if containsAny(sectionLower, proficiencyLanguage) {
		score += 10
		b.Details = append(b.Details, "Proficiency levels indicated")
	}

	stackBonus := 0
	for _, stack := range stackOrder {
		hits := countContains(lower, technicalStacks[stack])
		if hits == 0 {
			continue
		}
		bonus := hits * 5
		if bonus > 10 {
			bonus = 10
		}
		stackBonus += bonus
		b.Details = append(b.Details, fmt.Sprintf("Depth in %s stack", stack))
	}
	if stackBonus > 30 {
		stackBonus = 30
	}
	score += stackBonus

	b.Score = types.ClampScore(score)
	return b
}

// estimateSkillCount estimates items in a skill list by taking the maximum
// split count across the recognized separators.
func estimateSkillCount(section string) int {
	max := 0
	for _, sep := range skillSeparators {
		parts := 0
		for _, p := range strings.Split(section, sep) {
			if strings.TrimSpace(p) != "" {
				parts++
			}
		}
		if parts > max {
			max = parts
		}
	}
	return max
}

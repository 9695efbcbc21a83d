package rules

import (
	"strings"

	"github.com/jonathan/ats-analyzer/internal/types"
)

// analyzeContactInfo scores the presence of reachable contact details.
// Email +25 (+5 for a non-freemail domain), phone +20, linkedin +15,
// location +15, any URL +10, github +15.
func analyzeContactInfo(text, lower string) *types.CategoryBreakdown {
	b := &types.CategoryBreakdown{MaxScore: 100, Details: []string{}, Suggestions: []string{}}
	score := 0

	if email := emailRe.FindString(text); email != "" {
		score += 25
		b.Details = append(b.Details, "Email address found")
		if !freemailRe.MatchString(strings.ToLower(email)) {
			score += 5
			b.Details = append(b.Details, "Custom email domain")
		}
	} else {
		b.Suggestions = append(b.Suggestions, "Add a professional email address")
	}

	if phoneRe.MatchString(text) {
		score += 20
		b.Details = append(b.Details, "Phone number found")
	} else {
		b.Suggestions = append(b.Suggestions, "Add a phone number")
	}

	if strings.Contains(lower, "linkedin") {
		score += 15
		b.Details = append(b.Details, "LinkedIn profile mentioned")
	} else {
		b.Suggestions = append(b.Suggestions, "Add your LinkedIn profile URL")
	}

	if containsAny(lower, locationKeywords) {
		score += 15
		b.Details = append(b.Details, "Location information found")
	} else {
		b.Suggestions = append(b.Suggestions, "Add your city/state or note that you are open to remote work")
	}

	if urlRe.MatchString(text) {
		score += 10
		b.Details = append(b.Details, "Web link found")
	}

	if strings.Contains(lower, "github") {
		score += 15
		b.Details = append(b.Details, "GitHub profile mentioned")
	}

	b.Score = types.ClampScore(score)
	return b
}

// containsAny reports whether lower contains any of the keywords.
func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// countContains returns how many of the keywords appear in lower.
func countContains(lower string, keywords []string) int {
	count := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			count++
		}
	}
	return count
}

// countOccurrences returns the total number of occurrences of needle in lower.
func countOccurrences(lower, needle string) int {
	return strings.Count(lower, needle)
}

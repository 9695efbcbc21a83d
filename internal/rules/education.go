package rules

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jonathan/ats-analyzer/internal/types"
)

// analyzeEducation scores academic credentials: degree, institution, GPA,
// honors, certifications, and a recency bonus when a current or recent year
// appears literally in the text.
func analyzeEducation(text, lower string) *types.CategoryBreakdown {
	return analyzeEducationAt(text, lower, time.Now())
}

// analyzeEducationAt is the clock-injected form used by tests.
func analyzeEducationAt(text, lower string, now time.Time) *types.CategoryBreakdown {
	b := &types.CategoryBreakdown{MaxScore: 100, Details: []string{}, Suggestions: []string{}}
	score := 0

	if containsAny(lower, degreeKeywords) {
		score += 25
		b.Details = append(b.Details, "Degree found")
	} else {
		b.Suggestions = append(b.Suggestions, "List your degree or highest level of education")
	}

	if containsAny(lower, institutionKeywords) {
		score += 15
		b.Details = append(b.Details, "Institution found")
	} else {
		b.Suggestions = append(b.Suggestions, "Name the institution where you studied")
	}

	if m := gpaRe.FindStringSubmatch(text); len(m) == 2 {
		if gpa, err := strconv.ParseFloat(m[1], 64); err == nil {
			switch {
			case gpa >= 3.5:
				score += 15
				b.Details = append(b.Details, fmt.Sprintf("Strong GPA listed (%.2f)", gpa))
			case gpa >= 3.0:
				score += 10
				b.Details = append(b.Details, fmt.Sprintf("GPA listed (%.2f)", gpa))
			}
		}
	}

	if containsAny(lower, honorsKeywords) {
		score += 10
		b.Details = append(b.Details, "Academic honors mentioned")
	}

	certs := countContains(lower, certificationKeywords)
	switch {
	case certs >= 2:
		score += 20
		b.Details = append(b.Details, fmt.Sprintf("Certifications found (%d)", certs))
	case certs >= 1:
		score += 10
		b.Details = append(b.Details, "Certification found")
	}

	year := now.Year()
	for offset := 0; offset <= 2; offset++ {
		if countOccurrences(lower, strconv.Itoa(year-offset)) > 0 {
			score += 15
			b.Details = append(b.Details, "Recent dates present")
			break
		}
	}

	b.Score = types.ClampScore(score)
	return b
}

// Package normalize cleans and validates raw résumé and job description text
// before any scoring or prompt construction happens.
package normalize

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Length bounds for the two supported input kinds.
const (
	ResumeMinLen = 100
	ResumeMaxLen = 30000
	JobMinLen    = 0
	JobMaxLen    = 10000
)

// injectionPatterns are prompt-injection markers that cause a hard rejection.
// The input feeds a remote model prompt, so matching text is rejected rather
// than cleaned.
var injectionPatterns = []string{
	"ignore previous instructions",
	"ignore all previous",
	"disregard previous",
	"system prompt",
	"you are now",
	"new instructions:",
	"<|im_start|>",
	"<|im_end|>",
	"[system]",
	"\nassistant:",
}

var (
	innerWhitespaceRe = regexp.MustCompile(`[ \t]+`)
	blankLinesRe      = regexp.MustCompile(`\n{3,}`)
)

// Resume cleans and validates résumé text.
func Resume(text string) (string, error) {
	return Normalize(text, ResumeMinLen, ResumeMaxLen)
}

// Job cleans and validates job description text. Empty input is allowed and
// returns an empty string, meaning "no job description".
func Job(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	return Normalize(text, JobMinLen, JobMaxLen)
}

// Normalize cleans text and enforces length bounds on the cleaned form.
// It strips control characters (newline and tab survive), normalizes line
// endings, collapses runs of spaces and blank lines, and rejects text
// containing prompt-injection markers. Pure and safe for concurrent use.
func Normalize(text string, minLen, maxLen int) (string, error) {
	cleaned := Clean(text)

	if utf8.RuneCountInString(cleaned) < minLen {
		return "", &ValidationError{
			Reason:  ReasonTooShort,
			Message: fmt.Sprintf("text must be at least %d characters after cleaning", minLen),
		}
	}
	if utf8.RuneCountInString(cleaned) > maxLen {
		return "", &ValidationError{
			Reason:  ReasonTooLong,
			Message: fmt.Sprintf("text must be at most %d characters", maxLen),
		}
	}

	if pattern := findInjection(cleaned); pattern != "" {
		return "", &ValidationError{
			Reason:  ReasonInjection,
			Message: fmt.Sprintf("text contains a disallowed pattern: %q", pattern),
		}
	}

	return cleaned, nil
}

// Clean normalizes text without validating it.
func Clean(content string) string {
	if content == "" {
		return ""
	}

	// Normalize line endings (CRLF → LF)
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	content = stripControlChars(content)

	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		line = innerWhitespaceRe.ReplaceAllString(line, " ")
		cleanedLines = append(cleanedLines, strings.TrimRight(line, " "))
	}
	result := strings.Join(cleanedLines, "\n")

	// Reduce 3+ consecutive newlines to 2
	result = blankLinesRe.ReplaceAllString(result, "\n\n")

	return strings.TrimSpace(result)
}

// stripControlChars removes control characters except newline and tab.
func stripControlChars(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if r == '\n' || r == '\t' {
			sb.WriteRune(r)
			continue
		}
		if r < 0x20 || r == 0x7f {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// findInjection returns the first matching injection pattern, or "".
func findInjection(text string) string {
	lower := strings.ToLower(text)
	for _, pattern := range injectionPatterns {
		if strings.Contains(lower, pattern) {
			return strings.TrimSpace(pattern)
		}
	}
	return ""
}

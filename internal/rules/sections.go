package rules

import "strings"

// findHeader returns the byte offset of the first case-insensitive match of
// any alias in text, and the offset just past the matched alias. Returns
// (-1, -1) when no alias matches. Aliases must appear at the start of a line
// to count as headers; a plain word occurrence inside a sentence does not
// begin a section.
func findHeader(lower string, aliases []string) (start, end int) {
	best := -1
	bestEnd := -1
	for _, alias := range aliases {
		idx := indexAtLineStart(lower, alias)
		if idx == -1 {
			continue
		}
		if best == -1 || idx < best {
			best = idx
			bestEnd = idx + len(alias)
		}
	}
	return best, bestEnd
}

// indexAtLineStart finds the first occurrence of alias that begins a line
// (ignoring leading spaces) in the already-lowercased text.
func indexAtLineStart(lower, alias string) int {
	offset := 0
	for {
		idx := strings.Index(lower[offset:], alias)
		if idx == -1 {
			return -1
		}
		abs := offset + idx
		if isLineStart(lower, abs) && isHeaderBoundary(lower, abs+len(alias)) {
			return abs
		}
		offset = abs + 1
	}
}

// isLineStart reports whether only spaces/tabs precede pos on its line.
func isLineStart(s string, pos int) bool {
	for i := pos - 1; i >= 0; i-- {
		switch s[i] {
		case '\n':
			return true
		case ' ', '\t':
			continue
		default:
			return false
		}
	}
	return true
}

// isHeaderBoundary reports whether the character after an alias match ends a
// header line (end of text, newline, or header punctuation).
func isHeaderBoundary(s string, pos int) bool {
	if pos >= len(s) {
		return true
	}
	switch s[pos] {
	case '\n', ':', ' ', '\t':
		return true
	}
	return false
}

// extractSection returns the body of the named section: the text from the
// first match of any of its aliases to the start of the nearest following
// recognized header, or end of text. Headers are assumed not to be nested.
// Returns "" when the section is not present.
func extractSection(text string, aliases []string) string {
	lower := strings.ToLower(text)

	start, headerEnd := findHeader(lower, aliases)
	if start == -1 {
		return ""
	}

	// Nearest following recognized header bounds the section.
	bodyStart := headerEnd
	end := len(text)
	for _, other := range allHeaderAliases() {
		idx := indexAtLineStart(lower[bodyStart:], other)
		if idx == -1 {
			continue
		}
		abs := bodyStart + idx
		if abs < end {
			end = abs
		}
	}

	return strings.TrimSpace(text[bodyStart:end])
}

// hasSection reports whether any alias of the section appears as a header.
func hasSection(lower string, aliases []string) bool {
	start, _ := findHeader(lower, aliases)
	return start != -1
}

// sectionPosition returns the offset of a section header, or -1.
func sectionPosition(lower string, aliases []string) int {
	start, _ := findHeader(lower, aliases)
	return start
}

// aliasesFor returns the aliases for a canonical section name.
func aliasesFor(canonical string) []string {
	for _, s := range canonicalSections {
		if s.canonical == canonical {
			return s.aliases
		}
	}
	return nil
}

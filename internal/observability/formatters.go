// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/ats-analyzer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintAnalysis outputs a human-readable summary of an analysis result.
func (p *Printer) PrintAnalysis(result *types.AnalysisResult) {
	if result == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("ATS Score:  %d/100\n", result.ATSScore))
	if result.JobMatchScore != nil {
		sb.WriteString(fmt.Sprintf("Job Match:  %d/100\n", *result.JobMatchScore))
	}
	sb.WriteString(fmt.Sprintf("Source:     %s\n", result.Metadata.Source))
	sb.WriteString("\n")

	sb.WriteString("Categories:\n")
	for _, cat := range types.Categories() {
		if b, ok := result.Breakdown[cat]; ok {
			sb.WriteString(fmt.Sprintf("  %-12s %3d/100\n", string(cat), b.Score))
		}
	}

	p.printBox("ATS ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))

	p.printList("STRENGTHS", result.Strengths)
	p.printList("CRITICAL ISSUES", result.CriticalIssues)
	p.printSteps(result.ActionableSteps)

	if result.OverallAssessment != "" {
		p.printBox("ASSESSMENT", wrapText(result.OverallAssessment, boxWidth-6))
	}
}

// printList prints up to maxItemsToShow items in a box.
func (p *Printer) printList(title string, items []string) {
	if len(items) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("• %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(items)-maxItemsToShow))
	}

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// printSteps prints prioritized next steps.
func (p *Printer) printSteps(steps []types.ActionableStep) {
	if len(steps) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(steps), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("[%s] %s\n", strings.ToUpper(steps[i].Priority), steps[i].Action))
	}
	if len(steps) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(steps)-maxItemsToShow))
	}

	p.printBox("NEXT STEPS", strings.TrimSuffix(sb.String(), "\n"))
}

// wrapText wraps text at width, breaking on spaces.
func wrapText(text string, width int) string {
	words := strings.Fields(text)
	var sb strings.Builder
	lineLen := 0
	for i, word := range words {
		if lineLen+len(word) > width && lineLen > 0 {
			sb.WriteString("\n")
			lineLen = 0
		} else if i > 0 {
			sb.WriteString(" ")
			lineLen++
		}
		sb.WriteString(word)
		lineLen += len(word)
	}
	return sb.String()
}

// Package types provides type definitions for structured data used throughout the ats-analyzer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"math"
	"strings"
	"time"
)

// Source identifies which analysis path produced a result.
type Source string

// Source constants for AnalysisResult metadata.
const (
	// SourceAI means the result came from the AI path alone
	SourceAI Source = "ai"
	// SourceRules means the result came from the rule-based scorer alone
	SourceRules Source = "rules"
	// SourceHybrid means the result is a blend of AI and rule-based scores
	SourceHybrid Source = "hybrid"
	// SourceFallback means the result came from the emergency heuristic
	SourceFallback Source = "fallback"
)

// Category identifies one of the eight scored résumé categories.
type Category string

// Category constants. Categories returns them in canonical order.
const (
	CategoryContactInfo Category = "contactInfo"
	CategoryStructure   Category = "structure"
	CategoryContent     Category = "content"
	CategoryKeywords    Category = "keywords"
	CategoryFormatting  Category = "formatting"
	CategoryExperience  Category = "experience"
	CategoryEducation   Category = "education"
	CategorySkills      Category = "skills"
)

// Categories returns all categories in canonical order.
func Categories() []Category {
	return []Category{
		CategoryContactInfo,
		CategoryStructure,
		CategoryContent,
		CategoryKeywords,
		CategoryFormatting,
		CategoryExperience,
		CategoryEducation,
		CategorySkills,
	}
}

// Priority levels for actionable steps.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// List caps applied before any result is returned.
const (
	MaxStrengths       = 8
	MaxCriticalIssues  = 8
	MaxActionableSteps = 10
)

// CategoryBreakdown holds the score and feedback for a single category
type CategoryBreakdown struct {
	Score       int      `json:"score"`
	MaxScore    int      `json:"max_score"`
	Details     []string `json:"details"`
	Suggestions []string `json:"suggestions"`
}

// KeywordAnalysis reports which industry keywords were found and which are missing
type KeywordAnalysis struct {
	Industry string   `json:"industry,omitempty"`
	Found    []string `json:"found"`
	Missing  []string `json:"missing"`
}

// ActionableStep is a prioritized improvement suggestion
type ActionableStep struct {
	Priority string `json:"priority"`
	Action   string `json:"action"`
}

// Metadata records provenance for an analysis result
type Metadata struct {
	Source    Source    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

// AnalysisResult is the complete outcome of a résumé analysis.
// It is constructed once and treated as a value object afterwards.
type AnalysisResult struct {
	ATSScore          int                             `json:"ats_score"`
	JobMatchScore     *int                            `json:"job_match_score,omitempty"`
	Breakdown         map[Category]*CategoryBreakdown `json:"breakdown"`
	KeywordAnalysis   KeywordAnalysis                 `json:"keyword_analysis"`
	Strengths         []string                        `json:"strengths"`
	CriticalIssues    []string                        `json:"critical_issues"`
	ActionableSteps   []ActionableStep                `json:"actionable_steps"`
	OverallAssessment string                          `json:"overall_assessment"`
	Metadata          Metadata                        `json:"metadata"`
}

// ClampScore clamps a score to the [0, 100] range.
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// ClampScoreF clamps a float score to [0, 100] and rounds to the nearest integer.
func ClampScoreF(score float64) int {
	return ClampScore(int(math.Round(score)))
}

// DedupeCap returns items with duplicates removed (case-insensitive, first
// occurrence wins) and the list capped at max entries. Order is preserved.
func DedupeCap(items []string, max int) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, trimmed)
		if len(out) == max {
			break
		}
	}
	return out
}

// DedupeCapSteps is DedupeCap for actionable steps, keyed on the action text.
func DedupeCapSteps(steps []ActionableStep, max int) []ActionableStep {
	out := make([]ActionableStep, 0, len(steps))
	seen := make(map[string]bool, len(steps))
	for _, step := range steps {
		action := strings.TrimSpace(step.Action)
		if action == "" {
			continue
		}
		key := strings.ToLower(action)
		if seen[key] {
			continue
		}
		seen[key] = true
		if step.Priority != PriorityHigh && step.Priority != PriorityMedium && step.Priority != PriorityLow {
			step.Priority = PriorityMedium
		}
		out = append(out, ActionableStep{Priority: step.Priority, Action: action})
		if len(out) == max {
			break
		}
	}
	return out
}

// Sanitize enforces the result invariants in place: every score clamped to
// [0,100], every list deduplicated and capped, every breakdown category present.
func (r *AnalysisResult) Sanitize() {
	r.ATSScore = ClampScore(r.ATSScore)
	if r.JobMatchScore != nil {
		clamped := ClampScore(*r.JobMatchScore)
		r.JobMatchScore = &clamped
	}

	if r.Breakdown == nil {
		r.Breakdown = make(map[Category]*CategoryBreakdown, len(Categories()))
	}
	for _, cat := range Categories() {
		b, ok := r.Breakdown[cat]
		if !ok || b == nil {
			b = &CategoryBreakdown{MaxScore: 100}
			r.Breakdown[cat] = b
		}
		b.Score = ClampScore(b.Score)
		b.MaxScore = 100
		if b.Details == nil {
			b.Details = []string{}
		}
		if b.Suggestions == nil {
			b.Suggestions = []string{}
		}
	}

	r.Strengths = DedupeCap(r.Strengths, MaxStrengths)
	r.CriticalIssues = DedupeCap(r.CriticalIssues, MaxCriticalIssues)
	r.ActionableSteps = DedupeCapSteps(r.ActionableSteps, MaxActionableSteps)
	r.KeywordAnalysis.Found = DedupeCap(r.KeywordAnalysis.Found, 20)
	r.KeywordAnalysis.Missing = DedupeCap(r.KeywordAnalysis.Missing, 20)
	if r.Metadata.Timestamp.IsZero() {
		r.Metadata.Timestamp = time.Now().UTC()
	}
}

package hybrid

import (
	"strings"
	"time"

	"github.com/jonathan/ats-analyzer/internal/types"
)

// Blend weights for the hybrid tier. The AI path carries more signal when
// it is available; the rule-based path anchors it.
const (
	aiWeight    = 0.6
	rulesWeight = 0.4
)

// merge blends an AI result with a rules result into a single hybrid
// result: weighted scores, per-category blending, and order-preserving
// union of the list fields.
func merge(ai, rules *types.AnalysisResult) *types.AnalysisResult {
	combined := &types.AnalysisResult{
		ATSScore:      blendScores(ai.ATSScore, rules.ATSScore),
		JobMatchScore: ai.JobMatchScore,
		Breakdown:     mergeBreakdowns(ai.Breakdown, rules.Breakdown),
		KeywordAnalysis: types.KeywordAnalysis{
			Industry: rules.KeywordAnalysis.Industry,
			Found:    unionStrings(ai.KeywordAnalysis.Found, rules.KeywordAnalysis.Found),
			Missing:  unionStrings(ai.KeywordAnalysis.Missing, rules.KeywordAnalysis.Missing),
		},
		Strengths:         unionStrings(ai.Strengths, rules.Strengths),
		CriticalIssues:    unionStrings(ai.CriticalIssues, rules.CriticalIssues),
		ActionableSteps:   append(append([]types.ActionableStep{}, ai.ActionableSteps...), rules.ActionableSteps...),
		OverallAssessment: ai.OverallAssessment,
		Metadata: types.Metadata{
			Source:    types.SourceHybrid,
			Timestamp: time.Now().UTC(),
		},
	}
	if combined.OverallAssessment == "" {
		combined.OverallAssessment = rules.OverallAssessment
	}
	combined.Sanitize()
	return combined
}

// blendScores applies the 0.6/0.4 weighting and rounds.
func blendScores(ai, rules int) int {
	return types.ClampScoreF(aiWeight*float64(ai) + rulesWeight*float64(rules))
}

// mergeBreakdowns blends per-category scores with the same weighting. A
// category present in only one source passes through unchanged.
func mergeBreakdowns(ai, rules map[types.Category]*types.CategoryBreakdown) map[types.Category]*types.CategoryBreakdown {
	merged := make(map[types.Category]*types.CategoryBreakdown, len(types.Categories()))
	for _, cat := range types.Categories() {
		aiB, aiOK := ai[cat]
		rulesB, rulesOK := rules[cat]
		switch {
		case aiOK && rulesOK:
			merged[cat] = &types.CategoryBreakdown{
				Score:       blendScores(aiB.Score, rulesB.Score),
				MaxScore:    100,
				Details:     unionStrings(aiB.Details, rulesB.Details),
				Suggestions: unionStrings(aiB.Suggestions, rulesB.Suggestions),
			}
		case aiOK:
			merged[cat] = aiB
		case rulesOK:
			merged[cat] = rulesB
		}
	}
	return merged
}

// unionStrings is the order-preserving, case-insensitive set union of a and
// b: a's items first, then b's items not already present.
func unionStrings(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	seen := make(map[string]bool, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, item := range list {
			key := strings.ToLower(strings.TrimSpace(item))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, item)
		}
	}
	return out
}

package llm

import (
	"encoding/json"
	"time"

	"github.com/jonathan/ats-analyzer/internal/schemas"
	"github.com/jonathan/ats-analyzer/internal/types"
)

// rawResult mirrors the schema contract given to the model. Every field is
// optional at this stage; defaulting and clamping happen in toResult.
type rawResult struct {
	ATSScore        *float64                 `json:"atsScore"`
	JobMatchScore   *float64                 `json:"jobMatchScore"`
	Breakdown       map[string]*rawBreakdown `json:"breakdown"`
	KeywordAnalysis *rawKeywords             `json:"keywordAnalysis"`
	Strengths       []string                 `json:"strengths"`
	CriticalIssues  []string                 `json:"criticalIssues"`
	ActionableSteps []rawStep                `json:"actionableSteps"`
	Overall         string                   `json:"overallAssessment"`
}

type rawBreakdown struct {
	Score       *float64 `json:"score"`
	Details     []string `json:"details"`
	Suggestions []string `json:"suggestions"`
}

type rawKeywords struct {
	Found   []string `json:"found"`
	Missing []string `json:"missing"`
}

type rawStep struct {
	Priority string `json:"priority"`
	Action   string `json:"action"`
}

// ParseAnalysisResponse turns raw provider output into a sanitized result.
// It extracts the first balanced {...} substring (falling back to the whole
// response), validates the top-level shape against the embedded JSON
// Schema, then defaults and clamps field by field. Out-of-range or missing
// values never propagate into the result.
func ParseAnalysisResponse(raw string, hasJobDescription bool) (*types.AnalysisResult, error) {
	cleaned := cleanJSONBlock(raw)

	candidate := extractBalancedObject(cleaned)
	if candidate == "" {
		candidate = cleaned
	}

	parsed, err := decodeCandidate(candidate)
	if err != nil && candidate != cleaned {
		// The balanced substring failed; try the entire response.
		parsed, err = decodeCandidate(cleaned)
	}
	if err != nil {
		return nil, err
	}

	return toResult(parsed, hasJobDescription), nil
}

// decodeCandidate validates shape then decodes.
func decodeCandidate(candidate string) (*rawResult, error) {
	if err := schemas.ValidateAnalysisResult(candidate); err != nil {
		return nil, &ParseError{Message: "response failed schema validation", Cause: err}
	}
	var parsed rawResult
	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
		return nil, &ParseError{Message: "failed to decode response JSON", Cause: err}
	}
	return &parsed, nil
}

// extractBalancedObject returns the first balanced {...} substring, or "".
// Braces inside JSON strings are skipped.
func extractBalancedObject(text string) string {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 {
					return text[start : i+1]
				}
			}
		}
	}
	return ""
}

// toResult converts a decoded response into a sanitized AnalysisResult.
func toResult(parsed *rawResult, hasJobDescription bool) *types.AnalysisResult {
	result := &types.AnalysisResult{
		Breakdown: make(map[types.Category]*types.CategoryBreakdown, len(types.Categories())),
		Metadata: types.Metadata{
			Source:    types.SourceAI,
			Timestamp: time.Now().UTC(),
		},
	}

	if parsed.ATSScore != nil {
		result.ATSScore = types.ClampScoreF(*parsed.ATSScore)
	}
	if hasJobDescription && parsed.JobMatchScore != nil {
		score := types.ClampScoreF(*parsed.JobMatchScore)
		result.JobMatchScore = &score
	}

	for _, cat := range types.Categories() {
		b := &types.CategoryBreakdown{MaxScore: 100, Details: []string{}, Suggestions: []string{}}
		if raw, ok := parsed.Breakdown[string(cat)]; ok && raw != nil {
			if raw.Score != nil {
				b.Score = types.ClampScoreF(*raw.Score)
			}
			b.Details = types.DedupeCap(raw.Details, 10)
			b.Suggestions = types.DedupeCap(raw.Suggestions, 10)
		}
		result.Breakdown[cat] = b
	}

	if parsed.KeywordAnalysis != nil {
		result.KeywordAnalysis.Found = parsed.KeywordAnalysis.Found
		result.KeywordAnalysis.Missing = parsed.KeywordAnalysis.Missing
	}

	result.Strengths = parsed.Strengths
	result.CriticalIssues = parsed.CriticalIssues
	for _, step := range parsed.ActionableSteps {
		result.ActionableSteps = append(result.ActionableSteps, types.ActionableStep{
			Priority: step.Priority,
			Action:   step.Action,
		})
	}

	result.OverallAssessment = parsed.Overall
	if result.OverallAssessment == "" {
		result.OverallAssessment = "Automated analysis completed."
	}

	result.Sanitize()
	return result
}

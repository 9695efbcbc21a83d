package hybrid

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-analyzer/internal/cache"
	"github.com/jonathan/ats-analyzer/internal/rules"
	"github.com/jonathan/ats-analyzer/internal/types"
)

type fakeAI struct {
	result *types.AnalysisResult
	err    error
	calls  int32
}

func (f *fakeAI) AnalyzeResume(context.Context, string, string) (*types.AnalysisResult, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func aiResult(score int) *types.AnalysisResult {
	r := &types.AnalysisResult{
		ATSScore:          score,
		Strengths:         []string{"AI strength"},
		OverallAssessment: "AI assessment",
		Metadata:          types.Metadata{Source: types.SourceAI},
	}
	r.Sanitize()
	return r
}

const engineResume = "Experience\nLed a team at Acme Inc.\nEducation\nBSc\nSkills\nGo, SQL"

func TestCombine_HybridWhenBothSucceed(t *testing.T) {
	ai := &fakeAI{result: aiResult(90)}
	engine := NewEngine(ai, nil, nil)

	result := engine.Combine(context.Background(), engineResume, "")
	require.NotNil(t, result)

	expectedRules := rules.ScoreResume(engineResume)
	assert.Equal(t, types.SourceHybrid, result.Metadata.Source)
	assert.Equal(t, blendScores(90, expectedRules.ATSScore), result.ATSScore)
	assert.Contains(t, result.Strengths, "AI strength")
}

func TestCombine_RulesOnlyWhenAIFails(t *testing.T) {
	ai := &fakeAI{err: errors.New("provider down")}
	engine := NewEngine(ai, nil, nil)

	result := engine.Combine(context.Background(), engineResume, "")
	require.NotNil(t, result)

	assert.Equal(t, types.SourceRules, result.Metadata.Source)
	assert.Nil(t, result.JobMatchScore)
}

func TestCombine_RulesOnlyWithoutAIClient(t *testing.T) {
	engine := NewEngine(nil, nil, nil)

	result := engine.Combine(context.Background(), engineResume, "")
	require.NotNil(t, result)
	assert.Equal(t, types.SourceRules, result.Metadata.Source)
}

func TestCombine_CachesAIResult(t *testing.T) {
	ai := &fakeAI{result: aiResult(85)}
	engine := NewEngine(ai, cache.NewTiered(nil, nil, nil), nil)

	first := engine.Combine(context.Background(), engineResume, "")
	second := engine.Combine(context.Background(), engineResume, "")

	assert.Equal(t, int32(1), atomic.LoadInt32(&ai.calls))
	assert.Equal(t, first.ATSScore, second.ATSScore)
}

func TestCombine_CacheKeyVariesWithJob(t *testing.T) {
	ai := &fakeAI{result: aiResult(85)}
	engine := NewEngine(ai, cache.NewTiered(nil, nil, nil), nil)

	engine.Combine(context.Background(), engineResume, "")
	engine.Combine(context.Background(), engineResume, "backend engineer role")

	assert.Equal(t, int32(2), atomic.LoadInt32(&ai.calls))
}

func TestCombine_NeverReturnsNil(t *testing.T) {
	engine := NewEngine(&fakeAI{err: errors.New("down")}, nil, nil)

	for _, text := range []string{"", "short", engineResume} {
		result := engine.Combine(context.Background(), text, "")
		require.NotNil(t, result)
		assert.GreaterOrEqual(t, result.ATSScore, 0)
		assert.LessOrEqual(t, result.ATSScore, 100)
		assert.Len(t, result.Breakdown, 8)
	}
}

// Package hybrid implements the merge engine combining the rule-based
// scorer with the AI analysis path. It degrades gracefully through four
// tiers and never fails: callers always receive a well-formed result,
// regardless of AI provider health.
package hybrid

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/ats-analyzer/internal/cache"
	"github.com/jonathan/ats-analyzer/internal/rules"
	"github.com/jonathan/ats-analyzer/internal/types"
)

// AIClient is the AI analysis dependency. The concrete implementation is
// llm.Analyzer; tests inject fakes.
type AIClient interface {
	AnalyzeResume(ctx context.Context, resumeText, jobDescription string) (*types.AnalysisResult, error)
}

// Engine orchestrates the rule-based scorer and the AI client. A nil
// aiClient disables the AI path entirely (rules-only operation).
type Engine struct {
	aiClient AIClient
	cache    *cache.Tiered
	log      *zap.Logger
}

// aiCacheOp namespaces AI-path cache keys.
const aiCacheOp = "ai-analysis"

// NewEngine constructs an Engine. aiClient and resultCache may be nil.
func NewEngine(aiClient AIClient, resultCache *cache.Tiered, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{aiClient: aiClient, cache: resultCache, log: log}
}

// Combine produces one result from both analysis paths. The fallback ladder:
//
//  1. AI and rules both succeed: weighted hybrid blend.
//  2. Only AI succeeds: AI result passed through.
//  3. Only rules succeed: rules result reshaped (jobMatchScore absent).
//  4. Both fail: emergency heuristic, guaranteed schema-valid.
//
// Combine never returns an error.
func (e *Engine) Combine(ctx context.Context, resumeText, jobDescription string) *types.AnalysisResult {
	var (
		aiResult    *types.AnalysisResult
		rulesResult *types.AnalysisResult
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rulesResult = e.scoreWithRules(resumeText)
		return nil
	})

	g.Go(func() error {
		aiResult = e.analyzeWithAI(gctx, resumeText, jobDescription)
		return nil
	})

	// Both branches swallow their own failures.
	_ = g.Wait()

	switch {
	case aiResult != nil && rulesResult != nil:
		return merge(aiResult, rulesResult)
	case aiResult != nil:
		return aiResult
	case rulesResult != nil:
		return rulesResult
	default:
		return Emergency(resumeText)
	}
}

// scoreWithRules runs the deterministic scorer, converting a panic into a
// nil result so the ladder can continue downward.
func (e *Engine) scoreWithRules(resumeText string) (result *types.AnalysisResult) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("rule-based scorer panicked", zap.Any("panic", r))
			result = nil
		}
	}()
	return rules.ScoreResume(resumeText)
}

// analyzeWithAI resolves the AI result through the cache. Every failure is
// absorbed here and logged; the return is nil on any problem.
func (e *Engine) analyzeWithAI(ctx context.Context, resumeText, jobDescription string) *types.AnalysisResult {
	if e.aiClient == nil {
		return nil
	}

	producer := func(ctx context.Context) (*types.AnalysisResult, error) {
		return e.aiClient.AnalyzeResume(ctx, resumeText, jobDescription)
	}

	if e.cache == nil {
		result, err := producer(ctx)
		if err != nil {
			e.log.Warn("AI analysis failed, falling back to rules", zap.Error(err))
			return nil
		}
		return result
	}

	key := cache.Key(aiCacheOp, resumeText, jobDescription)
	result, err := e.cache.GetOrCompute(ctx, key, producer)
	if err != nil {
		e.log.Warn("AI analysis failed, falling back to rules", zap.Error(err))
		return nil
	}
	return result
}

// Package pipeline provides the high-level orchestration for résumé
// analysis: input normalization, cache resolution, and the hybrid merge.
package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/ats-analyzer/internal/cache"
	"github.com/jonathan/ats-analyzer/internal/config"
	"github.com/jonathan/ats-analyzer/internal/hybrid"
	"github.com/jonathan/ats-analyzer/internal/llm"
	"github.com/jonathan/ats-analyzer/internal/normalize"
	"github.com/jonathan/ats-analyzer/internal/types"
)

// Analyzer is the library entry point. All shared state (key pool, cache,
// request log) is owned here and injected downward; there are no package
// globals. Construct once, share across goroutines.
type Analyzer struct {
	engine *hybrid.Engine
	ai     *llm.Analyzer
	store  *cache.PostgresStore
	log    *zap.Logger
}

// New wires an Analyzer from configuration. A missing API key pool disables
// the AI path (rules-only operation); an unreachable durable store degrades
// to process-memory-only caching. Neither condition is an error.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Analyzer, error) {
	if cfg == nil {
		cfg = &config.Config{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &Analyzer{log: log}

	var aiClient hybrid.AIClient
	if pool, err := llm.NewKeyPool(cfg.APIKeys); err == nil {
		llmCfg := llm.DefaultConfig()
		if cfg.Model != "" {
			llmCfg.Model = cfg.Model
		}
		llmCfg.RequestTimeout = cfg.RequestTimeout(llmCfg.RequestTimeout)
		if cfg.MaxAttempts > 0 {
			llmCfg.MaxAttempts = cfg.MaxAttempts
		}
		a.ai = llm.NewAnalyzer(llmCfg, pool, nil, log)
		aiClient = a.ai
	} else {
		log.Info("no API keys configured, running rules-only")
	}

	var store cache.Store
	if cfg.DatabaseURL != "" {
		pg, err := cache.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Warn("durable cache unavailable, using memory-only caching", zap.Error(err))
		} else if err := pg.EnsureSchema(ctx); err != nil {
			log.Warn("durable cache schema setup failed, using memory-only caching", zap.Error(err))
			pg.Close()
		} else {
			a.store = pg
			store = pg
		}
	}

	resultCache := cache.NewTiered(store, log, &cache.Options{
		Capacity:  cfg.CacheCapacity,
		MemoryTTL: cfg.MemoryTTL(cache.DefaultMemoryTTL),
		StoreTTL:  cfg.StoreTTL(cache.DefaultStoreTTL),
	})

	a.engine = hybrid.NewEngine(aiClient, resultCache, log)
	return a, nil
}

// Analyze scores a résumé against an optional job description. The only
// error ever returned is *normalize.ValidationError; AI and cache failures
// are absorbed by the fallback ladder and reflected in the result metadata.
func (a *Analyzer) Analyze(ctx context.Context, resumeText, jobDescription string) (*types.AnalysisResult, error) {
	started := time.Now()

	cleanResume, err := normalize.Resume(resumeText)
	if err != nil {
		return nil, err
	}
	cleanJob, err := normalize.Job(jobDescription)
	if err != nil {
		return nil, err
	}

	result := a.engine.Combine(ctx, cleanResume, cleanJob)

	a.log.Info("analysis complete",
		zap.Int("ats_score", result.ATSScore),
		zap.String("source", string(result.Metadata.Source)),
		zap.Duration("elapsed", time.Since(started)))

	return result, nil
}

// RequestLog exposes the AI attempt log, or nil when the AI path is off.
func (a *Analyzer) RequestLog() *llm.RequestLog {
	if a.ai == nil {
		return nil
	}
	return a.ai.RequestLog()
}

// Close releases provider handles and the durable store connection.
func (a *Analyzer) Close() {
	if a.ai != nil {
		a.ai.Close()
	}
	if a.store != nil {
		a.store.Close()
	}
}

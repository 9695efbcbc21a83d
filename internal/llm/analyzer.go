package llm

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/ats-analyzer/internal/prompts"
	"github.com/jonathan/ats-analyzer/internal/types"
)

// Analyzer runs résumé analysis requests against the generative-text
// provider. It owns the shared key pool and the request log; both are
// mutated only under single-writer discipline. Per-key client handles are
// created lazily and reused across requests.
type Analyzer struct {
	cfg     *Config
	pool    *KeyPool
	factory ClientFactory
	log     *zap.Logger
	reqLog  *RequestLog

	mu      sync.Mutex
	clients map[string]Client
}

// NewAnalyzer constructs an Analyzer. The factory defaults to Gemini with
// the configured model; tests inject fakes through it.
func NewAnalyzer(cfg *Config, pool *KeyPool, factory ClientFactory, log *zap.Logger) *Analyzer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if factory == nil {
		factory = GeminiFactory(cfg.Model)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Analyzer{
		cfg:     cfg,
		pool:    pool,
		factory: factory,
		log:     log,
		reqLog:  NewRequestLog(cfg.LogSize),
	}
}

// RequestLog exposes the attempt log for metrics and tests.
func (a *Analyzer) RequestLog() *RequestLog {
	return a.reqLog
}

// Close releases all provider handles.
func (a *Analyzer) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, c := range a.clients {
		_ = c.Close()
	}
	a.clients = nil
}

// AnalyzeResume sends the résumé (and optional job description) to the
// provider and returns a sanitized result. It makes up to MaxAttempts
// attempts with exponential backoff; a quota error rotates the key pool and
// retries immediately without backoff (rotation is itself a recovery
// action, but still consumes an attempt). Fatal credential errors abort at
// once. After exhaustion it returns ServiceUnavailableError; callers fall
// back to the rule-based scorer.
func (a *Analyzer) AnalyzeResume(ctx context.Context, resumeText, jobDescription string) (*types.AnalysisResult, error) {
	prompt := BuildPrompt(resumeText, jobDescription)
	requestID := uuid.New()

	var lastErr error
	keysTried := 1
	skipBackoff := false

	for attempt := 1; attempt <= a.cfg.MaxAttempts; attempt++ {
		if attempt > 1 && !skipBackoff {
			delay := a.cfg.backoffFor(attempt - 1)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, &ServiceUnavailableError{Attempts: attempt - 1, Cause: ctx.Err()}
			}
		}
		skipBackoff = false

		key, keyIndex := a.pool.Current()
		started := time.Now()
		raw, err := a.generate(ctx, key, prompt)
		elapsed := time.Since(started)

		if err == nil {
			result, perr := ParseAnalysisResponse(raw, jobDescription != "")
			if perr == nil {
				a.reqLog.Add(Record{ID: requestID, KeyIndex: keyIndex, Attempt: attempt, Outcome: OutcomeSuccess, Duration: elapsed})
				return result, nil
			}
			// Unparseable output is a retriable failure with backoff.
			a.reqLog.Add(Record{ID: requestID, KeyIndex: keyIndex, Attempt: attempt, Outcome: OutcomeParse, Duration: elapsed})
			a.log.Warn("provider returned unparseable output",
				zap.String("request_id", requestID.String()),
				zap.Int("attempt", attempt),
				zap.Error(perr))
			lastErr = perr
			continue
		}

		lastErr = err
		a.pool.MarkFailure(keyIndex)

		if isFatalError(err) {
			a.reqLog.Add(Record{ID: requestID, KeyIndex: keyIndex, Attempt: attempt, Outcome: OutcomeFatal, Duration: elapsed})
			a.log.Error("fatal provider error",
				zap.String("request_id", requestID.String()),
				zap.Int("key_index", keyIndex),
				zap.Error(err))
			return nil, &ServiceUnavailableError{Attempts: attempt, Cause: err}
		}

		if isQuotaError(err) && keysTried < a.pool.Len() {
			_, newIndex := a.pool.Rotate()
			keysTried++
			skipBackoff = true
			a.reqLog.Add(Record{ID: requestID, KeyIndex: keyIndex, Attempt: attempt, Outcome: OutcomeRotated, Rotated: true, Duration: elapsed})
			a.log.Info("rotated API key after quota error",
				zap.String("request_id", requestID.String()),
				zap.Int("from_key", keyIndex),
				zap.Int("to_key", newIndex))
			continue
		}

		if !isRetriableError(err) {
			a.reqLog.Add(Record{ID: requestID, KeyIndex: keyIndex, Attempt: attempt, Outcome: OutcomeFatal, Duration: elapsed})
			return nil, &ServiceUnavailableError{Attempts: attempt, Cause: err}
		}

		a.reqLog.Add(Record{ID: requestID, KeyIndex: keyIndex, Attempt: attempt, Outcome: OutcomeRetried, Duration: elapsed})
		a.log.Warn("retriable provider error",
			zap.String("request_id", requestID.String()),
			zap.Int("attempt", attempt),
			zap.Error(err))
	}

	return nil, &ServiceUnavailableError{Attempts: a.cfg.MaxAttempts, Cause: lastErr}
}

// generate runs one provider call bounded by the configured wall-clock
// timeout. The context race makes a hung call cancellable so a timed-out
// request does not leak a goroutine or hold the key under use.
func (a *Analyzer) generate(ctx context.Context, key, prompt string) (string, error) {
	client, err := a.clientFor(ctx, key)
	if err != nil {
		return "", err
	}

	callCtx, cancel := context.WithTimeout(ctx, a.cfg.RequestTimeout)
	defer cancel()

	type outcome struct {
		text string
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		text, err := client.GenerateJSON(callCtx, prompt)
		done <- outcome{text, err}
	}()

	select {
	case out := <-done:
		return out.text, out.err
	case <-callCtx.Done():
		return "", callCtx.Err()
	}
}

// clientFor returns (building if needed) the provider handle for a key.
func (a *Analyzer) clientFor(ctx context.Context, key string) (Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.clients == nil {
		a.clients = make(map[string]Client)
	}
	if c, ok := a.clients[key]; ok {
		return c, nil
	}
	c, err := a.factory(ctx, key)
	if err != nil {
		return nil, err
	}
	a.clients[key] = c
	return c, nil
}

// BuildPrompt assembles the analysis prompt from the embedded templates.
// The template embeds the exact response schema contract; the response is
// still never trusted to be well-formed.
func BuildPrompt(resumeText, jobDescription string) string {
	template := prompts.MustGet("analysis.json", "ats-analysis")

	var jobSection string
	if jobDescription != "" {
		jobSection = prompts.Format(prompts.MustGet("analysis.json", "job-section"), map[string]string{
			"JobDescription": jobDescription,
		})
	} else {
		jobSection = prompts.MustGet("analysis.json", "no-job-section")
	}

	return prompts.Format(template, map[string]string{
		"ResumeText": resumeText,
		"JobSection": jobSection,
	})
}

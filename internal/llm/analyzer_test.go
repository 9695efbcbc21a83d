package llm

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validResponse = `{"atsScore": 72, "strengths": ["Clear formatting"], "overallAssessment": "Solid"}`

// scriptStep is one scripted provider reply.
type scriptStep struct {
	text  string
	err   error
	delay time.Duration
}

// script replays steps in order across all fake clients and records which
// key served each call.
type script struct {
	mu       sync.Mutex
	steps    []scriptStep
	keysUsed []string
}

func (s *script) next(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	if len(s.steps) == 0 {
		s.mu.Unlock()
		return "", errors.New("script exhausted")
	}
	step := s.steps[0]
	s.steps = s.steps[1:]
	s.keysUsed = append(s.keysUsed, key)
	s.mu.Unlock()

	if step.delay > 0 {
		select {
		case <-time.After(step.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return step.text, step.err
}

func (s *script) keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.keysUsed))
	copy(out, s.keysUsed)
	return out
}

type fakeClient struct {
	key    string
	script *script
}

func (c *fakeClient) GenerateJSON(ctx context.Context, _ string) (string, error) {
	return c.script.next(ctx, c.key)
}

func (c *fakeClient) Close() error { return nil }

func fakeFactory(s *script) ClientFactory {
	return func(_ context.Context, apiKey string) (Client, error) {
		return &fakeClient{key: apiKey, script: s}, nil
	}
}

func testConfig() *Config {
	return &Config{
		Model:          "test-model",
		RequestTimeout: 100 * time.Millisecond,
		MaxAttempts:    3,
		BaseBackoff:    time.Millisecond,
		MaxBackoff:     4 * time.Millisecond,
		LogSize:        16,
	}
}

func newTestAnalyzer(t *testing.T, keys []string, s *script) *Analyzer {
	t.Helper()
	pool, err := NewKeyPool(keys)
	require.NoError(t, err)
	return NewAnalyzer(testConfig(), pool, fakeFactory(s), nil)
}

func outcomes(a *Analyzer) []Outcome {
	var out []Outcome
	for _, rec := range a.RequestLog().Snapshot() {
		out = append(out, rec.Outcome)
	}
	return out
}

func TestAnalyzeResume_Success(t *testing.T) {
	s := &script{steps: []scriptStep{{text: validResponse}}}
	a := newTestAnalyzer(t, []string{"key-a"}, s)
	defer a.Close()

	result, err := a.AnalyzeResume(context.Background(), "resume text", "")
	require.NoError(t, err)

	assert.Equal(t, 72, result.ATSScore)
	assert.Len(t, result.Breakdown, 8)
	assert.Equal(t, []Outcome{OutcomeSuccess}, outcomes(a))
}

func TestAnalyzeResume_QuotaErrorRotatesKey(t *testing.T) {
	s := &script{steps: []scriptStep{
		{err: errors.New("googleapi: Error 429: quota exceeded")},
		{text: validResponse},
	}}
	a := newTestAnalyzer(t, []string{"key-a", "key-b"}, s)
	defer a.Close()
	// Rotation must not sleep before the retry.
	a.cfg.BaseBackoff = 5 * time.Second

	started := time.Now()
	result, err := a.AnalyzeResume(context.Background(), "resume text", "")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Less(t, time.Since(started), time.Second)

	assert.Equal(t, []string{"key-a", "key-b"}, s.keys())
	assert.Equal(t, []Outcome{OutcomeRotated, OutcomeSuccess}, outcomes(a))
	assert.Equal(t, []int{1, 0}, a.pool.Failures())
}

func TestAnalyzeResume_QuotaWithSingleKeyRetries(t *testing.T) {
	quota := scriptStep{err: errors.New("rate limit exceeded")}
	s := &script{steps: []scriptStep{quota, quota, quota}}
	a := newTestAnalyzer(t, []string{"key-a"}, s)
	defer a.Close()

	_, err := a.AnalyzeResume(context.Background(), "resume text", "")
	require.Error(t, err)

	assert.True(t, IsServiceUnavailable(err))
	var sue *ServiceUnavailableError
	require.ErrorAs(t, err, &sue)
	assert.Equal(t, 3, sue.Attempts)
	assert.Equal(t, []Outcome{OutcomeRetried, OutcomeRetried, OutcomeRetried}, outcomes(a))
}

func TestAnalyzeResume_FatalErrorAbortsImmediately(t *testing.T) {
	s := &script{steps: []scriptStep{
		{err: errors.New("API key not valid. Please pass a valid API key.")},
		{text: validResponse},
	}}
	a := newTestAnalyzer(t, []string{"key-a", "key-b"}, s)
	defer a.Close()

	_, err := a.AnalyzeResume(context.Background(), "resume text", "")
	require.Error(t, err)

	assert.True(t, IsServiceUnavailable(err))
	assert.Equal(t, []Outcome{OutcomeFatal}, outcomes(a))
	assert.Equal(t, []string{"key-a"}, s.keys())
}

func TestAnalyzeResume_UnparseableOutputExhaustsRetries(t *testing.T) {
	garbage := scriptStep{text: "sorry, no JSON today"}
	s := &script{steps: []scriptStep{garbage, garbage, garbage}}
	a := newTestAnalyzer(t, []string{"key-a"}, s)
	defer a.Close()

	_, err := a.AnalyzeResume(context.Background(), "resume text", "")
	require.Error(t, err)

	assert.True(t, IsServiceUnavailable(err))
	assert.Equal(t, []Outcome{OutcomeParse, OutcomeParse, OutcomeParse}, outcomes(a))
}

func TestAnalyzeResume_TimeoutRetried(t *testing.T) {
	s := &script{steps: []scriptStep{
		{text: validResponse, delay: time.Second},
		{text: validResponse},
	}}
	a := newTestAnalyzer(t, []string{"key-a"}, s)
	defer a.Close()

	result, err := a.AnalyzeResume(context.Background(), "resume text", "")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, []Outcome{OutcomeRetried, OutcomeSuccess}, outcomes(a))
}

func TestAnalyzeResume_CancelledContext(t *testing.T) {
	s := &script{steps: []scriptStep{
		{err: errors.New("transient server error")},
		{text: validResponse},
	}}
	a := newTestAnalyzer(t, []string{"key-a"}, s)
	defer a.Close()
	a.cfg.BaseBackoff = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := a.AnalyzeResume(ctx, "resume text", "")
	require.Error(t, err)
	assert.True(t, IsServiceUnavailable(err))
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("RESUME BODY", "")
	assert.Contains(t, prompt, "RESUME BODY")

	withJob := BuildPrompt("RESUME BODY", "JOB POSTING")
	assert.Contains(t, withJob, "RESUME BODY")
	assert.Contains(t, withJob, "JOB POSTING")
	assert.NotEqual(t, prompt, withJob)
}

func TestErrorClassification(t *testing.T) {
	assert.True(t, isQuotaError(errors.New("RESOURCE_EXHAUSTED: quota")))
	assert.True(t, isQuotaError(errors.New("googleapi: Error 429")))
	assert.False(t, isQuotaError(errors.New("connection reset")))

	assert.True(t, isFatalError(errors.New("403 permission denied")))
	assert.False(t, isFatalError(errors.New("connection reset")))

	assert.True(t, isRetriableError(context.DeadlineExceeded))
	assert.True(t, isRetriableError(errors.New("connection reset")))
	assert.False(t, isRetriableError(errors.New("401 unauthenticated")))
	assert.False(t, isRetriableError(nil))
}

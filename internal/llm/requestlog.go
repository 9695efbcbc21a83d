package llm

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Outcome classifies a single provider attempt.
type Outcome string

// Attempt outcomes.
const (
	OutcomeSuccess Outcome = "success"
	OutcomeRetried Outcome = "retried"
	OutcomeRotated Outcome = "rotated"
	OutcomeFatal   Outcome = "fatal"
	OutcomeParse   Outcome = "parse_failed"
)

// Record is one entry in the request log.
type Record struct {
	ID       uuid.UUID
	KeyIndex int
	Attempt  int
	Outcome  Outcome
	Rotated  bool
	Duration time.Duration
	When     time.Time
}

// RequestLog is a fixed-capacity ring buffer of attempt records. It is safe
// for concurrent use; once full, new records overwrite the oldest.
type RequestLog struct {
	mu      sync.Mutex
	records []Record
	next    int
	full    bool
}

// DefaultRequestLogSize is the ring capacity used when none is given.
const DefaultRequestLogSize = 128

// NewRequestLog creates a ring buffer with the given capacity.
func NewRequestLog(capacity int) *RequestLog {
	if capacity <= 0 {
		capacity = DefaultRequestLogSize
	}
	return &RequestLog{records: make([]Record, capacity)}
}

// Add appends a record, overwriting the oldest when the ring is full.
func (l *RequestLog) Add(rec Record) {
	if rec.When.IsZero() {
		rec.When = time.Now().UTC()
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records[l.next] = rec
	l.next++
	if l.next == len(l.records) {
		l.next = 0
		l.full = true
	}
}

// Snapshot returns the records in insertion order, oldest first.
func (l *RequestLog) Snapshot() []Record {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.full {
		out := make([]Record, l.next)
		copy(out, l.records[:l.next])
		return out
	}

	out := make([]Record, 0, len(l.records))
	out = append(out, l.records[l.next:]...)
	out = append(out, l.records[:l.next]...)
	return out
}

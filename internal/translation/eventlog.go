package translation

import (
	"sync"
	"time"
)

// DefaultEventLogCapacity bounds the in-memory event log.
const DefaultEventLogCapacity = 1000

// Level classifies one event log record.
type Level string

const (
	LevelInfo    Level = "INFO"
	LevelWarn    Level = "WARN"
	LevelError   Level = "ERROR"
	LevelSuccess Level = "SUCCESS"
)

// Record is one structured orchestration event. Records are immutable after
// they are appended.
type Record struct {
	Timestamp time.Time      `json:"timestamp"`
	Level     Level          `json:"level"`
	Provider  string         `json:"provider,omitempty"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
}

// EventLog is a bounded append-only record sequence. When the capacity is
// exceeded the oldest records are evicted first.
type EventLog struct {
	mu       sync.Mutex
	capacity int
	records  []Record
}

func NewEventLog(capacity int) *EventLog {
	if capacity <= 0 {
		capacity = DefaultEventLogCapacity
	}
	return &EventLog{
		capacity: capacity,
		records:  make([]Record, 0, capacity),
	}
}

// Append adds one record, stamping it when the caller left Timestamp zero.
func (l *EventLog) Append(record Record) {
	if l == nil {
		return
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append(l.records, record)
	if overflow := len(l.records) - l.capacity; overflow > 0 {
		l.records = append(l.records[:0], l.records[overflow:]...)
	}
}

// Clear empties the log. The caller is responsible for logging the clear
// itself, so the log never records its own lifecycle.
func (l *EventLog) Clear() {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = l.records[:0]
}

// Snapshot returns a read-only copy of the current records, oldest first.
func (l *EventLog) Snapshot() []Record {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

func (l *EventLog) Len() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

package translation

import (
	"sort"
	"sync"
)

// FailureTracker is the sticky set of providers currently excluded from
// routing after a rate-limit error. Membership has no expiry: a provider
// stays excluded until its next success or an explicit reset.
type FailureTracker struct {
	mu     sync.Mutex
	failed map[string]struct{}
}

func NewFailureTracker() *FailureTracker {
	return &FailureTracker{failed: make(map[string]struct{})}
}

func (t *FailureTracker) MarkFailed(name string) {
	if t == nil || name == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failed[name] = struct{}{}
}

func (t *FailureTracker) Clear(name string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.failed, name)
}

func (t *FailureTracker) ResetAll() {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failed = make(map[string]struct{})
}

func (t *FailureTracker) Contains(name string) bool {
	if t == nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.failed[name]
	return ok
}

// Snapshot returns the currently excluded provider names, sorted.
func (t *FailureTracker) Snapshot() []string {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	names := make([]string, 0, len(t.failed))
	for name := range t.failed {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

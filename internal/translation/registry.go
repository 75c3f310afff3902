package translation

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Descriptor binds one provider to its routing policy. Name and Priority are
// fixed at registration; Enabled may be toggled by an operator.
type Descriptor struct {
	Name     string
	Priority int
	Enabled  bool
	Provider Provider
}

// ProviderStatus is one row of the operator-facing provider overview.
type ProviderStatus struct {
	Name     string `json:"name"`
	Enabled  bool   `json:"enabled"`
	Failed   bool   `json:"failed"`
	Priority int    `json:"priority"`
}

// Registry holds provider descriptors in declaration order. Declaration
// order breaks priority ties during candidate selection.
type Registry struct {
	mu          sync.Mutex
	descriptors []*Descriptor
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds one provider with its routing policy.
func (r *Registry) Register(provider Provider, priority int, enabled bool) error {
	if r == nil {
		return fmt.Errorf("registry is nil")
	}
	if provider == nil {
		return fmt.Errorf("provider is nil")
	}
	name := normalizeProviderName(provider.Name())
	if name == "" {
		return fmt.Errorf("provider name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, d := range r.descriptors {
		if d.Name == name {
			return fmt.Errorf("provider %q is already registered", name)
		}
	}
	r.descriptors = append(r.descriptors, &Descriptor{
		Name:     name,
		Priority: priority,
		Enabled:  enabled,
		Provider: provider,
	})
	return nil
}

// SetEnabled toggles one provider in or out of the rotation.
func (r *Registry) SetEnabled(name string, enabled bool) error {
	if r == nil {
		return fmt.Errorf("registry is nil")
	}
	resolved := normalizeProviderName(name)

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, d := range r.descriptors {
		if d.Name == resolved {
			d.Enabled = enabled
			return nil
		}
	}
	return fmt.Errorf("provider %q is not registered (available: %s)", resolved, strings.Join(r.namesLocked(), ", "))
}

// Candidates returns the providers eligible for the current call: enabled
// and not excluded by the failure tracker, sorted ascending by priority.
// The sort is stable so priority ties keep declaration order.
func (r *Registry) Candidates(failures *FailureTracker) []*Descriptor {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	candidates := make([]*Descriptor, 0, len(r.descriptors))
	for _, d := range r.descriptors {
		if !d.Enabled {
			continue
		}
		if failures.Contains(d.Name) {
			continue
		}
		candidates = append(candidates, d)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Priority < candidates[j].Priority
	})
	return candidates
}

// Status reports all providers in declaration order.
func (r *Registry) Status(failures *FailureTracker) []ProviderStatus {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]ProviderStatus, 0, len(r.descriptors))
	for _, d := range r.descriptors {
		out = append(out, ProviderStatus{
			Name:     d.Name,
			Enabled:  d.Enabled,
			Failed:   failures.Contains(d.Name),
			Priority: d.Priority,
		})
	}
	return out
}

func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.namesLocked()
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.descriptors))
	for _, d := range r.descriptors {
		names = append(names, d.Name)
	}
	return names
}

func normalizeProviderName(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

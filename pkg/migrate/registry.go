package migrate

import (
	"cmp"
	"maps"
	"slices"
	"sync"

	"github.com/yaklabco/jsxmigrate/pkg/config"
)

// Registry holds all registered migration steps.
type Registry struct {
	mu      sync.RWMutex
	byID    map[string]Step
	byName  map[string]Step
	aliases map[string]string // alias -> canonical ID
}

// NewRegistry creates an empty step registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:    make(map[string]Step),
		byName:  make(map[string]Step),
		aliases: make(map[string]string),
	}
}

// Register adds a step to the registry.
// If a step with the same ID already exists, it is replaced.
func (r *Registry) Register(step Step) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.byID[step.ID()]; ok {
		delete(r.byName, prev.Name())
	}
	r.byID[step.ID()] = step
	r.byName[step.Name()] = step
}

// RegisterAlias maps an alias to a canonical step ID.
func (r *Registry) RegisterAlias(alias, stepID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[alias] = stepID
}

// Get retrieves a step by ID or name.
func (r *Registry) Get(key string) (Step, bool) {
	_, step, ok := r.Resolve(key)
	return step, ok
}

// Resolve returns the canonical ID and step for a given key.
// The key can be a step ID, name, or alias.
func (r *Registry) Resolve(key string) (string, Step, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if step, ok := r.byID[key]; ok {
		return step.ID(), step, true
	}
	if step, ok := r.byName[key]; ok {
		return step.ID(), step, true
	}
	if targetID, ok := r.aliases[key]; ok {
		if step, ok := r.byID[targetID]; ok {
			return step.ID(), step, true
		}
	}
	return "", nil, false
}

// Steps returns all registered steps sorted by ID.
func (r *Registry) Steps() []Step {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := slices.Collect(maps.Values(r.byID))
	slices.SortFunc(result, func(a, b Step) int {
		return cmp.Compare(a.ID(), b.ID())
	})
	return result
}

// IDs returns all registered step IDs in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.byID))
}

// Clone returns an independent copy of the registry. Use it to add
// config-declared steps without touching DefaultRegistry.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return &Registry{
		byID:    maps.Clone(r.byID),
		byName:  maps.Clone(r.byName),
		aliases: maps.Clone(r.aliases),
	}
}

// StepInfos returns template metadata for every registered step.
func (r *Registry) StepInfos() []config.StepInfo {
	steps := r.Steps()
	infos := make([]config.StepInfo, 0, len(steps))
	for _, s := range steps {
		infos = append(infos, config.StepInfo{
			ID:          s.ID(),
			Name:        s.Name(),
			Description: s.Description(),
			Enabled:     s.DefaultEnabled(),
			Pattern:     s.Pattern().String(),
			Tags:        s.Tags(),
		})
	}
	return infos
}

// DefaultRegistry is the global registry for built-in steps.
// Steps register themselves during init().
//
//nolint:gochecknoglobals // Global registry is intentional for step registration
var DefaultRegistry = NewRegistry()

//nolint:gochecknoinits // wires template generation to the registry
func init() {
	config.DefaultStepInfoProvider = DefaultRegistry.StepInfos
}

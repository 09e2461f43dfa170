package lint

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// DuplicateRuleError is returned when registering a rule whose ID or name
// is already taken.
type DuplicateRuleError struct {
	ID   string
	Name string
}

func (e *DuplicateRuleError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("duplicate rule %s (%s)", e.ID, e.Name)
	}
	return "duplicate rule " + e.ID
}

type keyKind uint8

const (
	keyID keyKind = iota
	keyName
	keyAlias
)

// ruleKey is what a lookup key refers to: a registered rule for IDs and
// names, or the target ID for aliases. Aliases resolve lazily so they may
// be registered before their rule.
type ruleKey struct {
	kind   keyKind
	rule   Rule
	target string
}

// Registry holds rules in registration order and resolves rule IDs, names
// and aliases to them. Rules are never replaced or removed. It is safe for
// concurrent use.
type Registry struct {
	mu    sync.RWMutex
	rules []Rule
	keys  map[string]ruleKey
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{keys: make(map[string]ruleKey)}
}

// Register adds rule. A rule whose ID or name is already registered is
// rejected with a *DuplicateRuleError and nothing is added.
func (r *Registry) Register(rule Rule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, name := rule.ID(), rule.Name()
	if r.taken(id) || (name != "" && r.taken(name)) {
		return &DuplicateRuleError{ID: id, Name: name}
	}

	r.keys[id] = ruleKey{kind: keyID, rule: rule}
	if name != "" {
		r.keys[name] = ruleKey{kind: keyName, rule: rule}
	}
	r.rules = append(r.rules, rule)
	return nil
}

// taken reports whether key names a registered rule. Aliases do not count.
func (r *Registry) taken(key string) bool {
	k, ok := r.keys[key]
	return ok && k.kind != keyAlias
}

// MustRegister registers rules during init and panics on a duplicate.
func (r *Registry) MustRegister(rules ...Rule) {
	for _, rule := range rules {
		if err := r.Register(rule); err != nil {
			panic(err)
		}
	}
}

// RegisterAlias makes alias resolve to the rule with ID ruleID. An alias
// never shadows a rule ID or name.
func (r *Registry) RegisterAlias(alias, ruleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.taken(alias) {
		r.keys[alias] = ruleKey{kind: keyAlias, target: ruleID}
	}
}

func (r *Registry) lookup(key string, kinds ...keyKind) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	k, ok := r.keys[key]
	if !ok || !slices.Contains(kinds, k.kind) {
		return nil, false
	}
	if k.kind == keyAlias {
		target, ok := r.keys[k.target]
		if !ok || target.kind != keyID {
			return nil, false
		}
		return target.rule, true
	}
	return k.rule, true
}

// Get finds a rule by ID or name.
func (r *Registry) Get(key string) (Rule, bool) {
	return r.lookup(key, keyID, keyName)
}

// GetByID finds a rule by ID only.
func (r *Registry) GetByID(id string) (Rule, bool) {
	return r.lookup(id, keyID)
}

// GetByName finds a rule by name only.
func (r *Registry) GetByName(name string) (Rule, bool) {
	return r.lookup(name, keyName)
}

// Resolve finds a rule by ID, name or alias and returns its canonical ID.
func (r *Registry) Resolve(key string) (string, Rule, bool) {
	rule, ok := r.lookup(key, keyID, keyName, keyAlias)
	if !ok {
		return "", nil, false
	}
	return rule.ID(), rule, true
}

// Rules returns a copy of the registered rules in registration order.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.rules)
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules)
}

// IDs returns rule IDs in registration order.
func (r *Registry) IDs() []string {
	rules := r.Rules()
	ids := make([]string, len(rules))
	for i, rule := range rules {
		ids[i] = rule.ID()
	}
	return ids
}

// Snapshot returns an independent copy of the registry. A lint run works
// from a snapshot so that later registrations cannot change a pass already
// under way.
func (r *Registry) Snapshot() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return &Registry{
		rules: slices.Clone(r.rules),
		keys:  maps.Clone(r.keys),
	}
}

// DefaultRegistry holds the built-in rules, which register themselves
// from package rules.
//
//nolint:gochecknoglobals // init-time rule registration
var DefaultRegistry = NewRegistry()

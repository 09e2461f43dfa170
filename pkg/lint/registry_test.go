package lint_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/bracelint/pkg/lint"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	reg := lint.NewRegistry()
	rule := newViolationRule("BL900", "test-rule")
	require.NoError(t, reg.Register(rule))

	got, ok := reg.Get("BL900")
	require.True(t, ok)
	assert.Same(t, rule, got)

	got, ok = reg.Get("test-rule")
	require.True(t, ok)
	assert.Same(t, rule, got)

	_, ok = reg.Get("nope")
	assert.False(t, ok)

	_, ok = reg.GetByID("test-rule")
	assert.False(t, ok)
	_, ok = reg.GetByName("BL900")
	assert.False(t, ok)
}

func TestRegistry_DuplicateID(t *testing.T) {
	t.Parallel()

	reg := lint.NewRegistry()
	require.NoError(t, reg.Register(newViolationRule("BL900", "first")))

	err := reg.Register(newViolationRule("BL900", "second"))
	require.Error(t, err)

	var dup *lint.DuplicateRuleError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "BL900", dup.ID)
	assert.Equal(t, 1, reg.Len())

	got, _ := reg.Get("BL900")
	assert.Equal(t, "first", got.Name())
}

func TestRegistry_DuplicateName(t *testing.T) {
	t.Parallel()

	reg := lint.NewRegistry()
	require.NoError(t, reg.Register(newViolationRule("BL900", "same")))

	err := reg.Register(newViolationRule("BL901", "same"))
	var dup *lint.DuplicateRuleError
	require.ErrorAs(t, err, &dup)
	assert.Contains(t, err.Error(), "BL901")

	_, ok := reg.GetByID("BL901")
	assert.False(t, ok)
}

func TestRegistry_MustRegisterPanicsOnDuplicate(t *testing.T) {
	t.Parallel()

	reg := lint.NewRegistry()
	reg.MustRegister(newViolationRule("BL900", "a"))

	assert.Panics(t, func() {
		reg.MustRegister(newViolationRule("BL900", "b"))
	})
}

func TestRegistry_RegistrationOrder(t *testing.T) {
	t.Parallel()

	reg := lint.NewRegistry()
	reg.MustRegister(
		newViolationRule("BL903", "c"),
		newViolationRule("BL901", "a"),
		newViolationRule("BL902", "b"),
	)

	assert.Equal(t, []string{"BL903", "BL901", "BL902"}, reg.IDs())

	rules := reg.Rules()
	require.Len(t, rules, 3)
	assert.Equal(t, "BL903", rules[0].ID())

	// The returned slice is a copy.
	rules[0] = nil
	assert.NotNil(t, reg.Rules()[0])
}

func TestRegistry_Resolve(t *testing.T) {
	t.Parallel()

	reg := lint.NewRegistry()
	reg.MustRegister(newViolationRule("BL900", "test-rule"))
	reg.RegisterAlias("old-name", "BL900")

	for _, key := range []string{"BL900", "test-rule", "old-name"} {
		id, rule, ok := reg.Resolve(key)
		require.True(t, ok, key)
		assert.Equal(t, "BL900", id)
		assert.Equal(t, "BL900", rule.ID())
	}

	_, _, ok := reg.Resolve("missing")
	assert.False(t, ok)
}

func TestRegistry_Snapshot(t *testing.T) {
	t.Parallel()

	reg := lint.NewRegistry()
	reg.MustRegister(newViolationRule("BL900", "a"))

	snap := reg.Snapshot()
	reg.MustRegister(newViolationRule("BL901", "b"))

	assert.Equal(t, []string{"BL900"}, snap.IDs())
	assert.Equal(t, []string{"BL900", "BL901"}, reg.IDs())
}

func TestRegistry_ConcurrentReads(t *testing.T) {
	t.Parallel()

	reg := lint.NewRegistry()
	for i := range 20 {
		reg.MustRegister(newViolationRule(fmt.Sprintf("BL%03d", i), fmt.Sprintf("rule-%d", i)))
	}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				assert.Len(t, reg.Rules(), 20)
				_, ok := reg.Get("rule-7")
				assert.True(t, ok)
			}
		}()
	}
	wg.Wait()
}

func TestRegistry_AliasRules(t *testing.T) {
	t.Parallel()

	reg := lint.NewRegistry()
	reg.RegisterAlias("early", "BL900")
	reg.MustRegister(newViolationRule("BL900", "test-rule"), newViolationRule("BL901", "other"))
	reg.RegisterAlias("other", "BL900")
	reg.RegisterAlias("dangling", "BL999")

	id, _, ok := reg.Resolve("early")
	require.True(t, ok, "alias registered before its rule")
	assert.Equal(t, "BL900", id)

	id, _, ok = reg.Resolve("other")
	require.True(t, ok)
	assert.Equal(t, "BL901", id, "alias must not shadow a rule name")

	_, _, ok = reg.Resolve("dangling")
	assert.False(t, ok)

	_, ok = reg.Get("early")
	assert.False(t, ok, "Get does not follow aliases")

	require.NoError(t, reg.Register(newViolationRule("BL902", "dangling")), "aliases do not block names")
	id, _, _ = reg.Resolve("dangling")
	assert.Equal(t, "BL902", id)
}

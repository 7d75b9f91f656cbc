package gc

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crossbind/crossbind/errors"
	"github.com/crossbind/crossbind/ir"
	"github.com/crossbind/crossbind/typedb"
)

func record(name string, deps ...string) ir.API {
	api := ir.API{Name: name, Kind: ir.APIType}
	for _, d := range deps {
		api.Deps = append(api.Deps, ir.ParseTypeRef(d))
	}
	return api
}

func names(apis []ir.API) []string {
	out := make([]string, len(apis))
	for i, a := range apis {
		out[i] = a.Name
	}
	return out
}

func TestReachabilityClosure(t *testing.T) {
	// Foo → Bar → Baz, Qux isolated
	apis := []ir.API{
		record("Foo", "Bar"),
		record("Bar", "Baz"),
		record("Baz"),
		record("Qux"),
	}
	db := typedb.NewStatic().Allow("Foo")

	survivors, err := FilterByAllowlist(apis, db)
	require.NoError(t, err)
	assert.Equal(t, []string{"Foo", "Bar", "Baz"}, names(survivors))
}

func TestMissingRootIsTolerated(t *testing.T) {
	apis := []ir.API{record("Foo")}
	db := typedb.NewStatic().Allow("Foo", "NoSuchThing")

	survivors, err := FilterByAllowlist(apis, db)
	require.NoError(t, err)
	assert.Equal(t, []string{"Foo"}, names(survivors))
}

func TestEdgeToExternalTypeIsSkipped(t *testing.T) {
	apis := []ir.API{record("Foo", "std::string", "Bar"), record("Bar")}
	db := typedb.NewStatic().Allow("Foo")

	survivors, err := FilterByAllowlist(apis, db)
	require.NoError(t, err)
	assert.Equal(t, []string{"Foo", "Bar"}, names(survivors))
}

func TestCyclesDoNotLoop(t *testing.T) {
	apis := []ir.API{
		record("A", "B"),
		record("B", "A"),
		record("C"),
	}
	db := typedb.NewStatic().Allow("A")

	survivors, err := FilterByAllowlist(apis, db)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, names(survivors))
}

func TestMonotonicInAllowlist(t *testing.T) {
	apis := []ir.API{
		record("Foo", "Bar"),
		record("Bar"),
		record("Qux", "Quux"),
		record("Quux"),
		record("Orphan"),
	}

	base, err := FilterByAllowlist(apis, typedb.NewStatic().Allow("Foo"))
	require.NoError(t, err)
	wider, err := FilterByAllowlist(apis, typedb.NewStatic().Allow("Foo", "Qux"))
	require.NoError(t, err)

	// Adding a root can only add survivors, never remove any
	baseSet := make(map[string]bool)
	for _, n := range names(wider) {
		baseSet[n] = true
	}
	for _, n := range names(base) {
		assert.True(t, baseSet[n], "record %s lost after widening the allowlist", n)
	}
	assert.Greater(t, len(wider), len(base))
}

func TestOrderIndependentResult(t *testing.T) {
	apis := []ir.API{
		record("Foo", "Bar", "Baz", "Qux"),
		record("Bar", "Baz"),
		record("Baz"),
		record("Qux", "Bar"),
		record("Dead", "Deader"),
		record("Deader"),
	}
	db := typedb.NewStatic().Allow("Foo")

	want, err := FilterByAllowlist(apis, db)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := make([]ir.API, len(apis))
		copy(shuffled, apis)
		for j := range shuffled {
			// Shuffle each record's edge order; the surviving set must
			// not change
			deps := make([]ir.TypeRef, len(shuffled[j].Deps))
			copy(deps, shuffled[j].Deps)
			rng.Shuffle(len(deps), func(a, b int) { deps[a], deps[b] = deps[b], deps[a] })
			shuffled[j].Deps = deps
		}

		got, err := FilterByAllowlist(shuffled, db)
		require.NoError(t, err)
		assert.ElementsMatch(t, names(want), names(got))
	}
}

func TestEmptyAllowlistPrunesEverything(t *testing.T) {
	apis := []ir.API{record("Foo"), record("Bar")}

	survivors, err := FilterByAllowlist(apis, typedb.NewStatic())
	require.NoError(t, err)
	assert.Empty(t, survivors)
}

func TestDuplicateRecordIsGraphInconsistency(t *testing.T) {
	apis := []ir.API{record("Foo"), record("Foo")}

	_, err := FilterByAllowlist(apis, typedb.NewStatic().Allow("Foo"))
	require.Error(t, err)
	assert.True(t, errors.IsGraphInconsistency(err))
}

func TestSurvivorsAreNotMutated(t *testing.T) {
	apis := []ir.API{record("Foo", "Bar"), record("Bar")}
	db := typedb.NewStatic().Allow("Foo")

	survivors, err := FilterByAllowlist(apis, db)
	require.NoError(t, err)

	require.Len(t, survivors, 2)
	assert.Equal(t, apis[0], survivors[0])
	assert.Equal(t, apis[1], survivors[1])
}

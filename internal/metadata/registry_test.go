package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enercore/internal/domain/resources/bond"
)

func TestDescribeFromBond(t *testing.T) {
	meta := Describe(bond.QueryConfig(), bond.Transitions(), []string{"fixed_rate", "variable_rate", "zero_coupon"})

	assert.Equal(t, "bond", meta.Name)
	assert.Equal(t, bond.StatusDraft, meta.InitialStatus)

	assert.ElementsMatch(t,
		[]string{"draft", "approved", "rejected", "active", "matured", "cancelled"},
		meta.Statuses)
	assert.ElementsMatch(t,
		[]string{"approve", "reject", "activate", "mature", "cancel"},
		meta.Actions)
	assert.ElementsMatch(t, []string{"rejected", "matured", "cancelled"}, meta.Terminal)

	assert.Contains(t, meta.Sortable, "interest_rate")
	assert.Contains(t, meta.Filterable, "type")
	assert.Contains(t, meta.Searchable, "code")
}

func TestRegistryLookup(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Describe(bond.QueryConfig(), bond.Transitions(), nil))

	meta, ok := reg.Get("bond")
	require.True(t, ok)
	assert.Equal(t, "bond", meta.Name)

	_, ok = reg.Get("nope")
	assert.False(t, ok)

	assert.Equal(t, []string{"bond"}, reg.Names())
	require.Len(t, reg.All(), 1)
}

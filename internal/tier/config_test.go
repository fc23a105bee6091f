package tier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/bartier/internal/model"
)

func TestTable_HasExactlyThreeTiers(t *testing.T) {
	tbl := Table()
	require.Len(t, tbl, 3)

	for _, tier := range model.Tiers() {
		cfg, ok := tbl[tier]
		require.True(t, ok, "missing config for %s", tier)
		assert.Equal(t, tier, cfg.Tier)
		assert.GreaterOrEqual(t, cfg.MaxDrinks, 0)
		assert.GreaterOrEqual(t, cfg.MaxEvents, 0)
		assert.GreaterOrEqual(t, cfg.MaxSocial, 0)
	}
}

func TestTable_ReturnsCopy(t *testing.T) {
	tbl := Table()
	tbl[model.TierBronze] = model.TierConfig{MaxDrinks: 99}
	delete(tbl, model.TierGold)

	cfg, ok := Lookup(model.TierBronze)
	require.True(t, ok)
	assert.Equal(t, 2, cfg.MaxDrinks)

	_, ok = Lookup(model.TierGold)
	assert.True(t, ok)
}

func TestTable_LimitsGrowWithTier(t *testing.T) {
	bronze := MustLookup(model.TierBronze)
	silver := MustLookup(model.TierSilver)
	gold := MustLookup(model.TierGold)

	assert.LessOrEqual(t, bronze.MaxDrinks, silver.MaxDrinks)
	assert.LessOrEqual(t, silver.MaxDrinks, gold.MaxDrinks)
	assert.LessOrEqual(t, bronze.MaxEvents, silver.MaxEvents)
	assert.LessOrEqual(t, silver.MaxEvents, gold.MaxEvents)
	assert.LessOrEqual(t, bronze.MaxSocial, silver.MaxSocial)
	assert.LessOrEqual(t, silver.MaxSocial, gold.MaxSocial)

	assert.False(t, bronze.ShowQuickInfo)
	assert.True(t, silver.ShowQuickInfo)
	assert.False(t, silver.ShowStoryLong)
	assert.True(t, gold.ShowStoryLong)
}

func TestLookup_Unknown(t *testing.T) {
	_, ok := Lookup(model.Tier("platinum"))
	assert.False(t, ok)

	_, ok = Lookup(model.TierNone)
	assert.False(t, ok)

	assert.Panics(t, func() { MustLookup(model.Tier("platinum")) })
}

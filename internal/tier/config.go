package tier

import (
	"fmt"
	"maps"

	"github.com/ppiankov/bartier/internal/model"
)

var table = map[model.Tier]model.TierConfig{
	model.TierBronze: {
		Tier:          model.TierBronze,
		MaxDrinks:     2,
		MaxEvents:     0,
		MaxSocial:     0,
		ShowQuickTags: true,
	},
	model.TierSilver: {
		Tier:          model.TierSilver,
		MaxDrinks:     3,
		MaxEvents:     2,
		MaxSocial:     3,
		ShowQuickTags: true,
		ShowQuickInfo: true,
		ShowChallenge: true,
		ShowCrowdTags: true,
		ShowBartender: true,
	},
	model.TierGold: {
		Tier:          model.TierGold,
		MaxDrinks:     6,
		MaxEvents:     5,
		MaxSocial:     9,
		ShowQuickTags: true,
		ShowQuickInfo: true,
		ShowChallenge: true,
		ShowCrowdTags: true,
		ShowBartender: true,
		ShowTeam:      true,
		ShowRewards:   true,
		ShowStoryLong: true,
	},
}

// Lookup returns the display config for t
func Lookup(t model.Tier) (model.TierConfig, bool) {
	cfg, ok := table[t]
	return cfg, ok
}

// MustLookup is Lookup for tiers already known to be valid
func MustLookup(t model.Tier) model.TierConfig {
	cfg, ok := table[t]
	if !ok {
		panic(fmt.Sprintf("tier: no config for %q", t))
	}
	return cfg
}

// Table returns a copy of the full tier table
func Table() map[model.Tier]model.TierConfig {
	return maps.Clone(table)
}

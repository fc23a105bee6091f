package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTier is returned when a tier name is not one of the known labels
var ErrUnknownTier = errors.New("unknown tier")

// Tier labels how complete a bar record is.
// The zero value means no tier was supplied.
type Tier string

const (
	TierNone   Tier = ""
	TierBronze Tier = "bronze"
	TierSilver Tier = "silver"
	TierGold   Tier = "gold"
)

// Tiers lists every label from least to most complete
func Tiers() []Tier {
	return []Tier{TierBronze, TierSilver, TierGold}
}

func (t Tier) String() string {
	if t == TierNone {
		return "none"
	}
	return string(t)
}

// Rank orders tiers by completeness: bronze=1, silver=2, gold=3.
// Unknown labels rank 0.
func (t Tier) Rank() int {
	switch t {
	case TierBronze:
		return 1
	case TierSilver:
		return 2
	case TierGold:
		return 3
	default:
		return 0
	}
}

// Valid reports whether t is one of the three known labels
func (t Tier) Valid() bool {
	return t.Rank() > 0
}

// AtLeast reports whether t is as complete as other
func (t Tier) AtLeast(other Tier) bool {
	return t.Rank() >= other.Rank()
}

// ParseTier parses a user-supplied tier name. An empty string yields TierNone.
func ParseTier(s string) (Tier, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return TierNone, nil
	}
	t := Tier(s)
	if !t.Valid() {
		return TierNone, fmt.Errorf("%w: %q (want bronze, silver or gold)", ErrUnknownTier, s)
	}
	return t, nil
}

// TierConfig bundles the display limits and feature flags for one tier
type TierConfig struct {
	Tier Tier `json:"tier" yaml:"tier"`

	MaxDrinks int `json:"max_drinks" yaml:"max_drinks"`
	MaxEvents int `json:"max_events" yaml:"max_events"`
	MaxSocial int `json:"max_social" yaml:"max_social"`

	ShowQuickTags bool `json:"show_quick_tags" yaml:"show_quick_tags"`
	ShowQuickInfo bool `json:"show_quick_info" yaml:"show_quick_info"`
	ShowChallenge bool `json:"show_challenge" yaml:"show_challenge"`
	ShowCrowdTags bool `json:"show_crowd_tags" yaml:"show_crowd_tags"`
	ShowBartender bool `json:"show_bartender" yaml:"show_bartender"`
	ShowTeam      bool `json:"show_team" yaml:"show_team"`
	ShowRewards   bool `json:"show_rewards" yaml:"show_rewards"`
	ShowStoryLong bool `json:"show_story_long" yaml:"show_story_long"`
}

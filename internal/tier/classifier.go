// Package tier infers how complete a bar record is and maps each tier to its
// display limits. Everything here is pure and safe for concurrent use.
package tier

import (
	"fmt"

	"github.com/ppiankov/bartier/internal/model"
)

// Classification is the inferred tier together with the rules that put the
// record there. Reasons only lists rules of the winning tier.
type Classification struct {
	Tier    model.Tier
	Reasons []model.Reason
}

// InferBarTier returns the tier a record qualifies for
func InferBarTier(c model.BarContent) model.Tier {
	return Classify(c).Tier
}

// Classify evaluates gold rules, then silver rules, and falls back to bronze.
// The first tier with at least one matching rule wins.
func Classify(c model.BarContent) Classification {
	counts := countsOf(c)

	if reasons := goldReasons(c, counts); len(reasons) > 0 {
		return Classification{Tier: model.TierGold, Reasons: reasons}
	}
	if reasons := silverReasons(c, counts); len(reasons) > 0 {
		return Classification{Tier: model.TierSilver, Reasons: reasons}
	}

	return Classification{
		Tier: model.TierBronze,
		Reasons: []model.Reason{{
			Rule:        model.RuleDefault,
			Tier:        model.TierBronze,
			Description: "No silver or gold content",
		}},
	}
}

type contentCounts struct {
	drinks int
	events int
	social int
	team   int
	reward int
	crowd  int
}

func countsOf(c model.BarContent) contentCounts {
	return contentCounts{
		drinks: len(c.SignatureDrinks),
		events: len(c.Events),
		social: len(c.Social),
		team:   len(c.Team),
		reward: len(c.Rewards),
		crowd:  len(c.CrowdTags),
	}
}

func goldReasons(c model.BarContent, n contentCounts) []model.Reason {
	var reasons []model.Reason
	add := func(rule model.RuleID, desc string, data map[string]int) {
		reasons = append(reasons, model.Reason{Rule: rule, Tier: model.TierGold, Description: desc, Data: data})
	}

	if n.team >= 1 {
		add(model.RuleTeam, fmt.Sprintf("Team listed (%d members)", n.team), map[string]int{"team": n.team})
	}
	if n.reward >= 1 {
		add(model.RuleRewards, fmt.Sprintf("Rewards listed (%d)", n.reward), map[string]int{"rewards": n.reward})
	}
	if c.Story != nil && c.Story.Long != "" {
		add(model.RuleStoryLong, "Long story present", nil)
	}
	if n.events >= 3 {
		add(model.RuleManyEvents, fmt.Sprintf("%d events (>= 3)", n.events), map[string]int{"events": n.events})
	}
	if n.drinks >= 4 {
		add(model.RuleManyDrinks, fmt.Sprintf("%d signature drinks (>= 4)", n.drinks), map[string]int{"drinks": n.drinks})
	}
	if n.social >= 3 {
		add(model.RuleManySocial, fmt.Sprintf("%d social posts (>= 3)", n.social), map[string]int{"social": n.social})
	}
	if c.Challenge != nil && (n.events >= 2 || n.drinks >= 3) {
		add(model.RuleChallengeCombo, "Challenge backed by events or drinks",
			map[string]int{"events": n.events, "drinks": n.drinks})
	}

	return reasons
}

func silverReasons(c model.BarContent, n contentCounts) []model.Reason {
	var reasons []model.Reason
	add := func(rule model.RuleID, desc string, data map[string]int) {
		reasons = append(reasons, model.Reason{Rule: rule, Tier: model.TierSilver, Description: desc, Data: data})
	}

	if c.QuickInfo != nil {
		add(model.RuleQuickInfo, "Quick info present", nil)
	}
	if n.drinks >= 2 && n.drinks <= 3 {
		add(model.RuleSomeDrinks, fmt.Sprintf("%d signature drinks (2-3)", n.drinks), map[string]int{"drinks": n.drinks})
	}
	if n.events >= 1 && n.events <= 2 {
		add(model.RuleSomeEvents, fmt.Sprintf("%d events (1-2)", n.events), map[string]int{"events": n.events})
	}
	if n.crowd >= 1 {
		add(model.RuleCrowdTags, fmt.Sprintf("%d crowd tags", n.crowd), map[string]int{"crowd_tags": n.crowd})
	}
	if c.Bartender != nil {
		add(model.RuleBartender, "Bartender featured", nil)
	}
	// Only reached when the gold challenge thresholds failed
	if c.Challenge != nil {
		add(model.RuleChallenge, "Challenge present", nil)
	}

	return reasons
}

// Package section turns a bar record and a tier config into the ordered list
// of sections a detail view renders.
package section

import (
	"slices"

	"github.com/ppiankov/bartier/internal/model"
)

// Assemble builds the section list for c under cfg.
//
// Order is fixed: hero, quick tags, quick info, signature drinks, challenge,
// events, bar vibes, social, story. Every list limit in cfg is applied here
// and nowhere else. The result never aliases slices of c.
func Assemble(c model.BarContent, cfg model.TierConfig) []model.ContentItem {
	items := []model.ContentItem{
		model.HeroSection{Name: c.Name, Hero: c.Hero},
	}

	if cfg.ShowQuickTags && len(c.QuickTags) > 0 {
		items = append(items, model.QuickTagsSection{Tags: slices.Clone(c.QuickTags)})
	}

	if cfg.ShowQuickInfo && c.QuickInfo != nil {
		items = append(items, model.QuickInfoSection{Info: *c.QuickInfo})
	}

	if drinks := firstN(c.SignatureDrinks, cfg.MaxDrinks); len(drinks) > 0 {
		items = append(items, model.SignatureDrinksSection{Drinks: drinks})
	}

	if cfg.ShowChallenge && c.Challenge != nil {
		s := model.ChallengeSection{Challenge: *c.Challenge}
		if cfg.ShowRewards {
			s.Rewards = slices.Clone(c.Rewards)
		}
		items = append(items, s)
	}

	if cfg.MaxEvents > 0 {
		if events := firstN(c.Events, cfg.MaxEvents); len(events) > 0 {
			items = append(items, model.EventsSection{Events: events})
		}
	}

	// Bronze never shows vibes, whatever its flags say
	if cfg.Tier.AtLeast(model.TierSilver) && c.Vibes != nil {
		items = append(items, barVibes(c, cfg))
	}

	if posts := firstN(c.Social, cfg.MaxSocial); len(posts) > 0 {
		items = append(items, model.SocialSection{Posts: posts})
	}

	if c.Story != nil && c.Story.Short != "" {
		s := model.StorySection{
			Short:      c.Story.Short,
			Long:       c.Story.Long,
			Expandable: cfg.ShowStoryLong && c.Story.Long != "",
		}
		if cfg.ShowTeam {
			s.Team = slices.Clone(c.Team)
		}
		items = append(items, s)
	}

	return items
}

func barVibes(c model.BarContent, cfg model.TierConfig) model.BarVibesSection {
	s := model.BarVibesSection{Vibes: *c.Vibes}
	if cfg.ShowCrowdTags {
		s.CrowdTags = slices.Clone(c.CrowdTags)
	}
	if cfg.ShowBartender && c.Bartender != nil {
		b := *c.Bartender
		s.Bartender = &b
	}
	return s
}

// firstN copies at most n leading elements of s
func firstN[T any](s []T, n int) []T {
	if n <= 0 || len(s) == 0 {
		return nil
	}
	if n > len(s) {
		n = len(s)
	}
	return slices.Clone(s[:n])
}

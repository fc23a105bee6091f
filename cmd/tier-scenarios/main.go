// Demo program that builds layouts for a handful of canned bars and prints
// the tier decision and resulting sections for each.
package main

import (
	"fmt"
	"strings"

	"github.com/ppiankov/bartier/internal/model"
	"github.com/ppiankov/bartier/internal/pipeline"
)

type scenario struct {
	title  string
	bar    model.BarContent
	manual model.Tier
}

func drinks(n int) []model.SignatureDrink {
	out := make([]model.SignatureDrink, n)
	for i := range out {
		out[i] = model.SignatureDrink{Name: fmt.Sprintf("Drink %d", i+1)}
	}
	return out
}

func events(n int) []model.Event {
	out := make([]model.Event, n)
	for i := range out {
		out[i] = model.Event{Title: fmt.Sprintf("Event %d", i+1), DateISO: fmt.Sprintf("2025-07-%02d", i+1)}
	}
	return out
}

func scenarios() []scenario {
	hero := model.Hero{Image: "hero.jpg"}
	return []scenario{
		{
			title: "Bare record",
			bar:   model.BarContent{ID: "bare", Name: "Bare Bar", Hero: hero, QuickTags: []string{"Beer"}},
		},
		{
			title: "Two events",
			bar:   model.BarContent{ID: "evented", Name: "Evented Bar", Hero: hero, Events: events(2), SignatureDrinks: drinks(2)},
		},
		{
			title: "Team listed",
			bar: model.BarContent{
				ID: "staffed", Name: "Staffed Bar", Hero: hero,
				SignatureDrinks: drinks(8),
				Team:            []model.TeamMember{{Name: "Ana", Role: "owner"}},
				Story:           &model.Story{Short: "Family run.", Long: "Three generations behind the bar."},
			},
		},
		{
			title: "Manual bronze on a gold record",
			bar: model.BarContent{
				ID: "demoted", Name: "Demoted Bar", Hero: hero,
				SignatureDrinks: drinks(6), Events: events(4),
				Vibes: &model.Vibes{CrowdAndAtmosphere: "Loud"},
			},
			manual: model.TierBronze,
		},
	}
}

func main() {
	fmt.Println("=== Tier Scenarios ===")
	fmt.Println()

	p := pipeline.NewPipeline(nil)
	for _, sc := range scenarios() {
		fmt.Println(sc.title)
		fmt.Println(strings.Repeat("-", 60))

		layout := p.Build(sc.bar, sc.manual)
		fmt.Printf("  Inferred: %s\n", layout.InferredTier)
		for _, r := range layout.Reasons {
			fmt.Printf("     - %s: %s\n", r.Rule, r.Description)
		}
		if layout.Overridden {
			fmt.Printf("  Manual:   %s\n", layout.Tier)
		}

		fmt.Printf("  Limits:   drinks %d, events %d, social %d\n",
			layout.Config.MaxDrinks, layout.Config.MaxEvents, layout.Config.MaxSocial)

		kinds := make([]string, len(layout.Sections))
		for i, k := range model.Kinds(layout.Sections) {
			kinds[i] = string(k)
		}
		fmt.Printf("  Sections: %s\n", strings.Join(kinds, ", "))
		fmt.Println()
	}
}

package tier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/bartier/internal/model"
)

func baseBar() model.BarContent {
	return model.BarContent{
		ID:   "bar-1",
		Name: "The Test Bar",
		Hero: model.Hero{Image: "hero.jpg"},
	}
}

func drinks(n int) []model.SignatureDrink {
	out := make([]model.SignatureDrink, n)
	for i := range out {
		out[i] = model.SignatureDrink{Name: "drink", Image: "d.jpg"}
	}
	return out
}

func events(n int) []model.Event {
	out := make([]model.Event, n)
	for i := range out {
		out[i] = model.Event{Title: "event", DateISO: "2025-06-01"}
	}
	return out
}

func posts(n int) []model.SocialPost {
	out := make([]model.SocialPost, n)
	for i := range out {
		out[i] = model.SocialPost{Image: "p.jpg"}
	}
	return out
}

func TestInferBarTier(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *model.BarContent)
		want   model.Tier
	}{
		{"empty record", func(c *model.BarContent) {}, model.TierBronze},
		{"empty slices", func(c *model.BarContent) {
			c.QuickTags = []string{}
			c.SignatureDrinks = []model.SignatureDrink{}
			c.Events = []model.Event{}
			c.Team = []model.TeamMember{}
			c.Rewards = []model.Reward{}
			c.Social = []model.SocialPost{}
			c.CrowdTags = []string{}
		}, model.TierBronze},
		{"one drink and quick tags", func(c *model.BarContent) {
			c.SignatureDrinks = drinks(1)
			c.QuickTags = []string{"Cozy"}
		}, model.TierBronze},
		{"short story only", func(c *model.BarContent) {
			c.Story = &model.Story{Short: "s"}
		}, model.TierBronze},
		{"vibes only", func(c *model.BarContent) {
			c.Vibes = &model.Vibes{TravelTips: "go early"}
		}, model.TierBronze},
		{"two social posts", func(c *model.BarContent) { c.Social = posts(2) }, model.TierBronze},

		{"quick info", func(c *model.BarContent) { c.QuickInfo = &model.QuickInfo{} }, model.TierSilver},
		{"two drinks", func(c *model.BarContent) { c.SignatureDrinks = drinks(2) }, model.TierSilver},
		{"three drinks", func(c *model.BarContent) { c.SignatureDrinks = drinks(3) }, model.TierSilver},
		{"one event", func(c *model.BarContent) { c.Events = events(1) }, model.TierSilver},
		{"two events", func(c *model.BarContent) { c.Events = events(2) }, model.TierSilver},
		{"crowd tags", func(c *model.BarContent) { c.CrowdTags = []string{"locals"} }, model.TierSilver},
		{"bartender", func(c *model.BarContent) { c.Bartender = &model.Bartender{Name: "Sam"} }, model.TierSilver},
		{"challenge alone", func(c *model.BarContent) { c.Challenge = &model.Challenge{Title: "c"} }, model.TierSilver},
		{"challenge with one event", func(c *model.BarContent) {
			c.Challenge = &model.Challenge{Title: "c"}
			c.Events = events(1)
		}, model.TierSilver},
		{"challenge with two drinks", func(c *model.BarContent) {
			c.Challenge = &model.Challenge{Title: "c"}
			c.SignatureDrinks = drinks(2)
		}, model.TierSilver},
		{"empty long story", func(c *model.BarContent) {
			c.Story = &model.Story{Short: "s", Long: ""}
			c.QuickInfo = &model.QuickInfo{}
		}, model.TierSilver},

		{"team", func(c *model.BarContent) { c.Team = []model.TeamMember{{Name: "Ana"}} }, model.TierGold},
		{"rewards", func(c *model.BarContent) { c.Rewards = []model.Reward{{Name: "r", XP: 10}} }, model.TierGold},
		{"long story", func(c *model.BarContent) { c.Story = &model.Story{Long: "l"} }, model.TierGold},
		{"three events", func(c *model.BarContent) { c.Events = events(3) }, model.TierGold},
		{"four drinks", func(c *model.BarContent) { c.SignatureDrinks = drinks(4) }, model.TierGold},
		{"three social posts", func(c *model.BarContent) { c.Social = posts(3) }, model.TierGold},
		{"challenge with two events", func(c *model.BarContent) {
			c.Challenge = &model.Challenge{Title: "c"}
			c.Events = events(2)
		}, model.TierGold},
		{"challenge with three drinks", func(c *model.BarContent) {
			c.Challenge = &model.Challenge{Title: "c"}
			c.SignatureDrinks = drinks(3)
		}, model.TierGold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := baseBar()
			tt.mutate(&c)
			assert.Equal(t, tt.want, InferBarTier(c))
		})
	}
}

func TestInferBarTier_TeamAlwaysGold(t *testing.T) {
	c := baseBar()
	c.Team = []model.TeamMember{{Name: "Ana", Role: "owner"}}
	c.QuickInfo = &model.QuickInfo{Music: "jazz"}
	c.SignatureDrinks = drinks(1)
	c.CrowdTags = []string{"students"}
	c.Challenge = &model.Challenge{Title: "c"}

	assert.Equal(t, model.TierGold, InferBarTier(c))
}

func TestInferBarTier_Idempotent(t *testing.T) {
	c := baseBar()
	c.Events = events(2)
	c.Bartender = &model.Bartender{Name: "Sam"}

	first := InferBarTier(c)
	second := InferBarTier(c)
	assert.Equal(t, first, second)
	assert.Len(t, c.Events, 2, "classifier must not touch its input")
}

func TestClassify_Reasons(t *testing.T) {
	c := baseBar()
	c.Team = []model.TeamMember{{Name: "Ana"}}
	c.SignatureDrinks = drinks(5)
	c.QuickInfo = &model.QuickInfo{}

	got := Classify(c)
	require.Equal(t, model.TierGold, got.Tier)
	require.Len(t, got.Reasons, 2)
	assert.Equal(t, model.RuleTeam, got.Reasons[0].Rule)
	assert.Equal(t, model.RuleManyDrinks, got.Reasons[1].Rule)
	assert.Equal(t, 5, got.Reasons[1].Data["drinks"])
	for _, r := range got.Reasons {
		assert.Equal(t, model.TierGold, r.Tier, "silver rules must not be reported for a gold record")
	}
}

func TestClassify_BronzeDefaultReason(t *testing.T) {
	got := Classify(baseBar())
	require.Len(t, got.Reasons, 1)
	assert.Equal(t, model.RuleDefault, got.Reasons[0].Rule)
	assert.Equal(t, model.TierBronze, got.Reasons[0].Tier)
}

func TestClassify_ChallengeAloneIsSilverChallengeRule(t *testing.T) {
	c := baseBar()
	c.Challenge = &model.Challenge{Title: "Shot roulette"}

	got := Classify(c)
	require.Equal(t, model.TierSilver, got.Tier)
	require.Len(t, got.Reasons, 1)
	assert.Equal(t, model.RuleChallenge, got.Reasons[0].Rule)
}

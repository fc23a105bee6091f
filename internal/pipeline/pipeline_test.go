package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ppiankov/bartier/internal/catalog"
	"github.com/ppiankov/bartier/internal/model"
)

var fixedNow = time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC)

func newTestPipeline(logger *zap.Logger) *Pipeline {
	p := NewPipeline(logger)
	p.now = func() time.Time { return fixedNow }
	return p
}

func richBar() model.BarContent {
	return model.BarContent{
		ID:        "velvet",
		Name:      "Velvet Room",
		Hero:      model.Hero{Image: "velvet.jpg", Location: "Porto", XPReward: 50},
		QuickTags: []string{"Jazz", "Cozy"},
		QuickInfo: &model.QuickInfo{Music: "Live jazz", HappyHour: "18-20"},
		SignatureDrinks: []model.SignatureDrink{
			{Name: "Smoked Negroni", Price: "€12"},
			{Name: "Velvet Sour"},
		},
		Events: []model.Event{
			{Title: "Quartet night", DateISO: "2025-06-06", City: "Porto"},
		},
		Challenge: &model.Challenge{Title: "Try three sours", CTA: "Accept"},
		CrowdTags: []string{"Locals"},
		Bartender: &model.Bartender{Name: "Rui", Quote: "Stir, never shake."},
		Story:     &model.Story{Short: "Small jazz bar.", Long: "Opened in 1962 by two brothers."},
		Team:      []model.TeamMember{{Name: "Ana", Role: "owner"}},
		Rewards:   []model.Reward{{Name: "Regular", XP: 100}},
		Social:    []model.SocialPost{{Image: "p1.jpg", Handle: "velvet"}},
		Vibes:     &model.Vibes{CrowdAndAtmosphere: "Mellow", DressCodeAndEntry: "Smart casual"},
	}
}

func sparseBar() model.BarContent {
	return model.BarContent{
		ID:        "corner",
		Name:      "Corner Pub",
		Hero:      model.Hero{Image: "corner.jpg"},
		QuickTags: []string{"Beer"},
	}
}

func TestBuild_InferredTier(t *testing.T) {
	p := newTestPipeline(nil)

	layout := p.Build(richBar(), model.TierNone)
	assert.Equal(t, "velvet", layout.BarID)
	assert.Equal(t, model.TierGold, layout.Tier)
	assert.Equal(t, model.TierGold, layout.InferredTier)
	assert.False(t, layout.Overridden)
	assert.Equal(t, fixedNow, layout.Built)
	assert.Equal(t, model.TierGold, layout.Config.Tier)
	assert.NotEmpty(t, layout.Reasons)
	assert.Equal(t, []model.SectionKind{
		model.SectionHero,
		model.SectionQuickTags,
		model.SectionQuickInfo,
		model.SectionSignatureDrinks,
		model.SectionChallenge,
		model.SectionEvents,
		model.SectionBarVibes,
		model.SectionSocial,
		model.SectionStory,
	}, model.Kinds(layout.Sections))
}

func TestBuild_ManualOverride(t *testing.T) {
	p := newTestPipeline(nil)

	layout := p.Build(richBar(), model.TierBronze)
	assert.Equal(t, model.TierBronze, layout.Tier)
	assert.Equal(t, model.TierGold, layout.InferredTier)
	assert.True(t, layout.Overridden)
	assert.Equal(t, []model.SectionKind{
		model.SectionHero,
		model.SectionQuickTags,
		model.SectionSignatureDrinks,
		model.SectionStory,
	}, model.Kinds(layout.Sections))
}

func TestBuild_ManualMatchingInferredIsNotOverride(t *testing.T) {
	layout := newTestPipeline(nil).Build(sparseBar(), model.TierBronze)
	assert.Equal(t, model.TierBronze, layout.Tier)
	assert.False(t, layout.Overridden)
}

func TestBuild_UnknownManualTierFallsBack(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	p := newTestPipeline(zap.New(core))

	layout := p.Build(sparseBar(), model.Tier("platinum"))
	assert.Equal(t, model.TierBronze, layout.Tier)
	assert.False(t, layout.Overridden)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "platinum", logs.All()[0].ContextMap()["manual"])
}

func TestBuildByID(t *testing.T) {
	cat, err := catalog.New([]model.BarContent{richBar(), sparseBar()})
	require.NoError(t, err)
	p := newTestPipeline(nil)

	layout, err := p.BuildByID(cat, "corner", model.TierNone)
	require.NoError(t, err)
	assert.Equal(t, model.TierBronze, layout.Tier)

	_, err = p.BuildByID(cat, "ghost", model.TierNone)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

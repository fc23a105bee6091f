package model

import "time"

// Layout is the assembled detail view for one bar
type Layout struct {
	BarID string    `json:"bar_id"`
	Name  string    `json:"name"`
	Built time.Time `json:"built_at"`

	Tier         Tier `json:"tier"`          // Tier the sections were assembled for
	InferredTier Tier `json:"inferred_tier"` // Tier the classifier picked
	Overridden   bool `json:"overridden"`    // Whether a manual tier replaced the inferred one

	Reasons  []Reason   `json:"reasons,omitempty"` // Rules that produced InferredTier
	Config   TierConfig `json:"config"`
	Sections Sections   `json:"sections"`
}

// Reason is one classification rule that matched, with the counts it saw
type Reason struct {
	Rule        RuleID         `json:"rule"`
	Tier        Tier           `json:"tier"`
	Description string         `json:"description"`
	Data        map[string]int `json:"data,omitempty"`
}

// RuleID names a classification rule
type RuleID string

const (
	RuleTeam           RuleID = "team"
	RuleRewards        RuleID = "rewards"
	RuleStoryLong      RuleID = "story_long"
	RuleManyEvents     RuleID = "many_events"
	RuleManyDrinks     RuleID = "many_drinks"
	RuleManySocial     RuleID = "many_social"
	RuleChallengeCombo RuleID = "challenge_combo"
	RuleQuickInfo      RuleID = "quick_info"
	RuleSomeDrinks     RuleID = "some_drinks"
	RuleSomeEvents     RuleID = "some_events"
	RuleCrowdTags      RuleID = "crowd_tags"
	RuleBartender      RuleID = "bartender"
	RuleChallenge      RuleID = "challenge"
	RuleDefault        RuleID = "default"
)

// TierSummary is the per-bar line of a batch run
type TierSummary struct {
	BarID    string `json:"bar_id"`
	Name     string `json:"name"`
	Tier     Tier   `json:"tier"`
	Sections int    `json:"sections"`
}

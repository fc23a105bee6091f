package model

import (
	"encoding/json"
	"fmt"
)

// SectionKind tags a ContentItem variant
type SectionKind string

const (
	SectionHero            SectionKind = "hero"
	SectionQuickTags       SectionKind = "quickTags"
	SectionQuickInfo       SectionKind = "quickInfo"
	SectionSignatureDrinks SectionKind = "signatureDrinks"
	SectionChallenge       SectionKind = "challenge"
	SectionEvents          SectionKind = "events"
	SectionBarVibes        SectionKind = "barVibes"
	SectionSocial          SectionKind = "social"
	SectionStory           SectionKind = "story"
)

// ContentItem is one section of a bar detail view.
// The set of variants is closed: only types in this package implement it.
type ContentItem interface {
	Kind() SectionKind
	section()
}

type HeroSection struct {
	Name string `json:"name"`
	Hero Hero   `json:"hero"`
}

type QuickTagsSection struct {
	Tags []string `json:"tags"`
}

type QuickInfoSection struct {
	Info QuickInfo `json:"info"`
}

type SignatureDrinksSection struct {
	Drinks []SignatureDrink `json:"drinks"`
}

// ChallengeSection carries the bar's rewards only when the tier shows them
type ChallengeSection struct {
	Challenge Challenge `json:"challenge"`
	Rewards   []Reward  `json:"rewards,omitempty"`
}

type EventsSection struct {
	Events []Event `json:"events"`
}

// BarVibesSection groups the vibe facets with the crowd and bartender blocks
// the tier allows.
type BarVibesSection struct {
	Vibes     Vibes      `json:"vibes"`
	CrowdTags []string   `json:"crowdTags,omitempty"`
	Bartender *Bartender `json:"bartender,omitempty"`
}

type SocialSection struct {
	Posts []SocialPost `json:"posts"`
}

// StorySection always carries Long when the record has one. Whether it is
// shown expanded is up to the renderer; Expandable says the tier allows it.
type StorySection struct {
	Short      string       `json:"short"`
	Long       string       `json:"long,omitempty"`
	Expandable bool         `json:"expandable"`
	Team       []TeamMember `json:"team,omitempty"`
}

func (HeroSection) Kind() SectionKind            { return SectionHero }
func (QuickTagsSection) Kind() SectionKind       { return SectionQuickTags }
func (QuickInfoSection) Kind() SectionKind       { return SectionQuickInfo }
func (SignatureDrinksSection) Kind() SectionKind { return SectionSignatureDrinks }
func (ChallengeSection) Kind() SectionKind       { return SectionChallenge }
func (EventsSection) Kind() SectionKind          { return SectionEvents }
func (BarVibesSection) Kind() SectionKind        { return SectionBarVibes }
func (SocialSection) Kind() SectionKind          { return SectionSocial }
func (StorySection) Kind() SectionKind           { return SectionStory }

func (HeroSection) section()            {}
func (QuickTagsSection) section()       {}
func (QuickInfoSection) section()       {}
func (SignatureDrinksSection) section() {}
func (ChallengeSection) section()       {}
func (EventsSection) section()          {}
func (BarVibesSection) section()        {}
func (SocialSection) section()          {}
func (StorySection) section()           {}

// Kinds returns the kind of every item, in order
func Kinds(items []ContentItem) []SectionKind {
	kinds := make([]SectionKind, len(items))
	for i, item := range items {
		kinds[i] = item.Kind()
	}
	return kinds
}

// Sections is an ordered section list with a tagged JSON encoding:
// each element becomes {"kind": ..., "data": {...}}.
type Sections []ContentItem

type taggedSection struct {
	Kind SectionKind     `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// MarshalJSON implements json.Marshaler
func (s Sections) MarshalJSON() ([]byte, error) {
	out := make([]taggedSection, 0, len(s))
	for _, item := range s {
		data, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("marshal %s section: %w", item.Kind(), err)
		}
		out = append(out, taggedSection{Kind: item.Kind(), Data: data})
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler
func (s *Sections) UnmarshalJSON(data []byte) error {
	var raw []taggedSection
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	items := make(Sections, 0, len(raw))
	for _, r := range raw {
		item, err := decodeSection(r.Kind, r.Data)
		if err != nil {
			return err
		}
		items = append(items, item)
	}
	*s = items
	return nil
}

func decodeSection(kind SectionKind, data json.RawMessage) (ContentItem, error) {
	var (
		item ContentItem
		err  error
	)
	switch kind {
	case SectionHero:
		var v HeroSection
		err = json.Unmarshal(data, &v)
		item = v
	case SectionQuickTags:
		var v QuickTagsSection
		err = json.Unmarshal(data, &v)
		item = v
	case SectionQuickInfo:
		var v QuickInfoSection
		err = json.Unmarshal(data, &v)
		item = v
	case SectionSignatureDrinks:
		var v SignatureDrinksSection
		err = json.Unmarshal(data, &v)
		item = v
	case SectionChallenge:
		var v ChallengeSection
		err = json.Unmarshal(data, &v)
		item = v
	case SectionEvents:
		var v EventsSection
		err = json.Unmarshal(data, &v)
		item = v
	case SectionBarVibes:
		var v BarVibesSection
		err = json.Unmarshal(data, &v)
		item = v
	case SectionSocial:
		var v SocialSection
		err = json.Unmarshal(data, &v)
		item = v
	case SectionStory:
		var v StorySection
		err = json.Unmarshal(data, &v)
		item = v
	default:
		return nil, fmt.Errorf("unknown section kind %q", kind)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s section: %w", kind, err)
	}
	return item, nil
}

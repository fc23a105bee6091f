package model

// BarContent is a bar record as loaded from a catalog.
// Only ID, Name and Hero are required; every other field is optional and
// an empty slice means the same thing as a missing one. Image and avatar
// fields hold http(s) URLs or relative paths.
type BarContent struct {
	ID   string `json:"id" yaml:"id" validate:"required"`
	Name string `json:"name" yaml:"name" validate:"required"`
	Hero Hero   `json:"hero" yaml:"hero"`

	QuickTags       []string         `json:"quickTags,omitempty" yaml:"quickTags,omitempty"`
	QuickInfo       *QuickInfo       `json:"quickInfo,omitempty" yaml:"quickInfo,omitempty"`
	SignatureDrinks []SignatureDrink `json:"signatureDrinks,omitempty" yaml:"signatureDrinks,omitempty" validate:"dive"`
	Events          []Event          `json:"events,omitempty" yaml:"events,omitempty" validate:"dive"`
	Challenge       *Challenge       `json:"challenge,omitempty" yaml:"challenge,omitempty"`
	CrowdTags       []string         `json:"crowdTags,omitempty" yaml:"crowdTags,omitempty"`
	Bartender       *Bartender       `json:"bartender,omitempty" yaml:"bartender,omitempty"`
	Story           *Story           `json:"story,omitempty" yaml:"story,omitempty"`
	Team            []TeamMember     `json:"team,omitempty" yaml:"team,omitempty" validate:"dive"`
	Rewards         []Reward         `json:"rewards,omitempty" yaml:"rewards,omitempty" validate:"dive"`
	Social          []SocialPost     `json:"social,omitempty" yaml:"social,omitempty" validate:"dive"`
	Vibes           *Vibes           `json:"vibes,omitempty" yaml:"vibes,omitempty"`
}

// Hero is the header block shown at the top of every detail view
type Hero struct {
	Image    string `json:"image" yaml:"image" validate:"required,image_url"`
	Location string `json:"location,omitempty" yaml:"location,omitempty"`
	XPReward int    `json:"xpReward,omitempty" yaml:"xpReward,omitempty" validate:"gte=0"`
}

// QuickInfo holds the short named facts about a bar
type QuickInfo struct {
	Music         string `json:"music,omitempty" yaml:"music,omitempty"`
	Vibe          string `json:"vibe,omitempty" yaml:"vibe,omitempty"`
	Menu          string `json:"menu,omitempty" yaml:"menu,omitempty"`
	PopularNights string `json:"popularNights,omitempty" yaml:"popularNights,omitempty"`
	HappyHour     string `json:"happyHour,omitempty" yaml:"happyHour,omitempty"`
}

type SignatureDrink struct {
	Image   string `json:"image" yaml:"image" validate:"omitempty,image_url"`
	Name    string `json:"name" yaml:"name" validate:"required"`
	Tagline string `json:"tagline,omitempty" yaml:"tagline,omitempty"`
	Price   string `json:"price,omitempty" yaml:"price,omitempty"`
}

type Event struct {
	Title   string `json:"title" yaml:"title" validate:"required"`
	DateISO string `json:"dateISO" yaml:"dateISO" validate:"required,datetime=2006-01-02"`
	Time    string `json:"time,omitempty" yaml:"time,omitempty"`
	City    string `json:"city,omitempty" yaml:"city,omitempty"`
}

type Challenge struct {
	Image string `json:"image" yaml:"image" validate:"omitempty,image_url"`
	Title string `json:"title" yaml:"title" validate:"required"`
	Copy  string `json:"copy,omitempty" yaml:"copy,omitempty"`
	CTA   string `json:"cta,omitempty" yaml:"cta,omitempty"`
}

type Bartender struct {
	Name   string `json:"name" yaml:"name" validate:"required"`
	Avatar string `json:"avatar" yaml:"avatar" validate:"omitempty,image_url"`
	Quote  string `json:"quote,omitempty" yaml:"quote,omitempty"`
}

// Story is the bar's narrative. Long is what the detail view expands into.
type Story struct {
	Short string `json:"short,omitempty" yaml:"short,omitempty"`
	Long  string `json:"long,omitempty" yaml:"long,omitempty"`
}

type TeamMember struct {
	Name   string `json:"name" yaml:"name" validate:"required"`
	Role   string `json:"role" yaml:"role"`
	Avatar string `json:"avatar" yaml:"avatar" validate:"omitempty,image_url"`
}

type Reward struct {
	Image string `json:"image" yaml:"image" validate:"omitempty,image_url"`
	Name  string `json:"name" yaml:"name" validate:"required"`
	XP    int    `json:"xp" yaml:"xp" validate:"gte=0"`
}

type SocialPost struct {
	Image   string `json:"image" yaml:"image" validate:"required,image_url"`
	Handle  string `json:"handle,omitempty" yaml:"handle,omitempty"`
	Caption string `json:"caption,omitempty" yaml:"caption,omitempty"`
}

// Vibes are the structured facets rendered in the bar vibes block
type Vibes struct {
	CrowdAndAtmosphere string `json:"crowdAndAtmosphere,omitempty" yaml:"crowdAndAtmosphere,omitempty"`
	Bartender          string `json:"bartender,omitempty" yaml:"bartender,omitempty"`
	TravelTips         string `json:"travelTips,omitempty" yaml:"travelTips,omitempty"`
	DressCodeAndEntry  string `json:"dressCodeAndEntry,omitempty" yaml:"dressCodeAndEntry,omitempty"`
}

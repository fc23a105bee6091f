package model

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseTier(t *testing.T) {
	tests := []struct {
		in      string
		want    Tier
		wantErr bool
	}{
		{"", TierNone, false},
		{"  ", TierNone, false},
		{"bronze", TierBronze, false},
		{"Silver", TierSilver, false},
		{" GOLD ", TierGold, false},
		{"platinum", TierNone, true},
		{"none", TierNone, true},
	}

	for _, tt := range tests {
		got, err := ParseTier(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownTier) {
				t.Errorf("ParseTier(%q): expected ErrUnknownTier, got %v", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTier(%q): unexpected error %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseTier(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTierOrdering(t *testing.T) {
	if !TierGold.AtLeast(TierSilver) || !TierSilver.AtLeast(TierSilver) {
		t.Error("gold and silver should be at least silver")
	}
	if TierBronze.AtLeast(TierSilver) {
		t.Error("bronze should not be at least silver")
	}
	if TierNone.Valid() || Tier("platinum").Valid() {
		t.Error("only the three labels are valid")
	}
	if TierNone.String() != "none" || TierGold.String() != "gold" {
		t.Errorf("unexpected String(): %s, %s", TierNone, TierGold)
	}
}

func TestSections_JSONRoundTrip(t *testing.T) {
	in := Sections{
		HeroSection{Name: "Velvet", Hero: Hero{Image: "v.jpg", XPReward: 10}},
		QuickTagsSection{Tags: []string{"Jazz"}},
		BarVibesSection{Vibes: Vibes{TravelTips: "Metro"}, Bartender: &Bartender{Name: "Rui"}},
		StorySection{Short: "s", Long: "l", Expandable: true},
	}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out Sections
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(out) != len(in) {
		t.Fatalf("expected %d sections, got %d", len(in), len(out))
	}
	for i := range in {
		if out[i].Kind() != in[i].Kind() {
			t.Errorf("section %d: kind %s, want %s", i, out[i].Kind(), in[i].Kind())
		}
	}

	vibes, ok := out[2].(BarVibesSection)
	if !ok {
		t.Fatalf("section 2 is %T", out[2])
	}
	if vibes.Bartender == nil || vibes.Bartender.Name != "Rui" || vibes.Vibes.TravelTips != "Metro" {
		t.Errorf("bar vibes not preserved: %+v", vibes)
	}
	if story := out[3].(StorySection); !story.Expandable || story.Long != "l" {
		t.Errorf("story not preserved: %+v", story)
	}
}

func TestSections_UnmarshalUnknownKind(t *testing.T) {
	var s Sections
	err := json.Unmarshal([]byte(`[{"kind": "jukebox", "data": {}}]`), &s)
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestSections_UnmarshalBadData(t *testing.T) {
	var s Sections
	err := json.Unmarshal([]byte(`[{"kind": "quickTags", "data": {"tags": "not-a-list"}}]`), &s)
	if err == nil {
		t.Fatal("expected error for malformed section data")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.HTTP.Timeout <= 0 || cfg.Concurrency.Workers <= 0 {
		t.Errorf("defaults must be positive: %+v", cfg)
	}
	if !cfg.HTTP.RespectRobots {
		t.Error("robots.txt should be respected by default")
	}
	if cfg.Output.Format != "json" {
		t.Errorf("expected json output by default, got %s", cfg.Output.Format)
	}
}

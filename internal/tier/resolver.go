package tier

import "github.com/ppiankov/bartier/internal/model"

// ResolveTier returns manual when it is set, otherwise the inferred tier.
// The override is returned as given; callers parse user input with
// model.ParseTier before it gets here.
func ResolveTier(manual model.Tier, c model.BarContent) model.Tier {
	if manual != model.TierNone {
		return manual
	}
	return InferBarTier(c)
}

// Package pipeline wires the classifier, the tier table and the section
// assembler together and renders the result.
package pipeline

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/bartier/internal/catalog"
	"github.com/ppiankov/bartier/internal/model"
	"github.com/ppiankov/bartier/internal/section"
	"github.com/ppiankov/bartier/internal/tier"
)

// Pipeline builds bar detail layouts
type Pipeline struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewPipeline creates a new pipeline. A nil logger discards output.
func NewPipeline(logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		logger: logger,
		now:    time.Now,
	}
}

// Build resolves the tier for content, looks up its config and assembles the
// sections. A manual tier, when set, replaces the inferred one. An unknown
// manual tier falls back to the inferred tier's config.
func (p *Pipeline) Build(content model.BarContent, manual model.Tier) *model.Layout {
	classification := tier.Classify(content)

	resolved := tier.ResolveTier(manual, content)
	cfg, ok := tier.Lookup(resolved)
	if !ok {
		p.logger.Warn("no config for manual tier, using inferred tier",
			zap.String("bar", content.ID),
			zap.String("manual", string(manual)),
			zap.String("inferred", string(classification.Tier)))
		resolved = classification.Tier
		cfg = tier.MustLookup(resolved)
	}

	items := section.Assemble(content, cfg)

	p.logger.Debug("layout built",
		zap.String("bar", content.ID),
		zap.String("inferred", string(classification.Tier)),
		zap.String("tier", string(resolved)),
		zap.Int("sections", len(items)))

	return &model.Layout{
		BarID:        content.ID,
		Name:         content.Name,
		Built:        p.now().UTC(),
		Tier:         resolved,
		InferredTier: classification.Tier,
		Overridden:   manual != model.TierNone && resolved != classification.Tier,
		Reasons:      classification.Reasons,
		Config:       cfg,
		Sections:     items,
	}
}

// BuildByID looks the bar up in c and builds its layout.
// A missing bar returns catalog.ErrNotFound.
func (p *Pipeline) BuildByID(c *catalog.Catalog, id string, manual model.Tier) (*model.Layout, error) {
	content, err := c.Get(id)
	if err != nil {
		return nil, fmt.Errorf("build layout: %w", err)
	}
	return p.Build(content, manual), nil
}

package pipeline

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/bartier/internal/model"
)

// Renderer writes layouts as JSON, Markdown or HTML
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// Render writes layout to path in the given format (json, md or html)
func (r *Renderer) Render(layout *model.Layout, format, path string) error {
	if _, err := writerFor(r, format); err != nil {
		return err
	}
	return writeFile(path, func(w io.Writer) error { return r.Write(w, layout, format) })
}

// Write writes layout to w in the given format
func (r *Renderer) Write(w io.Writer, layout *model.Layout, format string) error {
	write, err := writerFor(r, format)
	if err != nil {
		return err
	}
	return write(w, layout)
}

func (r *Renderer) RenderJSON(layout *model.Layout, path string) error {
	return r.Render(layout, "json", path)
}

func (r *Renderer) RenderMarkdown(layout *model.Layout, path string) error {
	return r.Render(layout, "md", path)
}

func (r *Renderer) RenderHTML(layout *model.Layout, path string) error {
	return r.Render(layout, "html", path)
}

func writerFor(r *Renderer, format string) (func(io.Writer, *model.Layout) error, error) {
	switch strings.ToLower(format) {
	case "json":
		return r.WriteJSON, nil
	case "md", "markdown":
		return r.WriteMarkdown, nil
	case "html":
		return r.WriteHTML, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// WriteJSON writes the layout as indented JSON
func (r *Renderer) WriteJSON(w io.Writer, layout *model.Layout) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(layout); err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	return nil
}

// WriteMarkdown writes a readable preview of the layout
func (r *Renderer) WriteMarkdown(w io.Writer, layout *model.Layout) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# %s\n\n", layout.Name)
	fmt.Fprintf(bw, "**Tier:** %s", layout.Tier)
	if layout.Overridden {
		fmt.Fprintf(bw, " (manual, inferred %s)", layout.InferredTier)
	}
	fmt.Fprint(bw, "\n\n")

	for _, item := range layout.Sections {
		writeMarkdownSection(bw, item)
	}

	if len(layout.Reasons) > 0 {
		fmt.Fprintf(bw, "## Why %s\n\n", layout.InferredTier)
		for _, reason := range layout.Reasons {
			fmt.Fprintf(bw, "- `%s`: %s\n", reason.Rule, reason.Description)
		}
		fmt.Fprintln(bw)
	}

	if r.includeFooter {
		fmt.Fprintf(bw, "---\n*Generated by bartier at %s*\n", layout.Built.Format("2006-01-02 15:04 MST"))
	}

	return bw.Flush()
}

func writeMarkdownSection(w io.Writer, item model.ContentItem) {
	switch s := item.(type) {
	case model.HeroSection:
		fmt.Fprintf(w, "![%s](%s)\n\n", s.Name, s.Hero.Image)
		if s.Hero.Location != "" {
			fmt.Fprintf(w, "📍 %s\n\n", s.Hero.Location)
		}
		if s.Hero.XPReward > 0 {
			fmt.Fprintf(w, "+%d XP for checking in\n\n", s.Hero.XPReward)
		}
	case model.QuickTagsSection:
		fmt.Fprintf(w, "%s\n\n", strings.Join(s.Tags, " · "))
	case model.QuickInfoSection:
		fmt.Fprint(w, "## Quick info\n\n")
		for _, kv := range [][2]string{
			{"Music", s.Info.Music},
			{"Vibe", s.Info.Vibe},
			{"Menu", s.Info.Menu},
			{"Popular nights", s.Info.PopularNights},
			{"Happy hour", s.Info.HappyHour},
		} {
			if kv[1] != "" {
				fmt.Fprintf(w, "- **%s:** %s\n", kv[0], kv[1])
			}
		}
		fmt.Fprintln(w)
	case model.SignatureDrinksSection:
		fmt.Fprint(w, "## Signature drinks\n\n")
		for _, d := range s.Drinks {
			line := "- **" + d.Name + "**"
			if d.Tagline != "" {
				line += " " + d.Tagline
			}
			if d.Price != "" {
				line += " (" + d.Price + ")"
			}
			fmt.Fprintln(w, line)
		}
		fmt.Fprintln(w)
	case model.ChallengeSection:
		fmt.Fprintf(w, "## Challenge: %s\n\n", s.Challenge.Title)
		if s.Challenge.Copy != "" {
			fmt.Fprintf(w, "%s\n\n", s.Challenge.Copy)
		}
		if s.Challenge.CTA != "" {
			fmt.Fprintf(w, "**%s**\n\n", s.Challenge.CTA)
		}
		for _, rw := range s.Rewards {
			fmt.Fprintf(w, "- 🏆 %s (+%d XP)\n", rw.Name, rw.XP)
		}
		if len(s.Rewards) > 0 {
			fmt.Fprintln(w)
		}
	case model.EventsSection:
		fmt.Fprint(w, "## Events\n\n")
		for _, e := range s.Events {
			line := fmt.Sprintf("- %s: %s", e.DateISO, e.Title)
			if e.Time != "" {
				line += " at " + e.Time
			}
			if e.City != "" {
				line += ", " + e.City
			}
			fmt.Fprintln(w, line)
		}
		fmt.Fprintln(w)
	case model.BarVibesSection:
		fmt.Fprint(w, "## Bar vibes\n\n")
		for _, kv := range [][2]string{
			{"Crowd & atmosphere", s.Vibes.CrowdAndAtmosphere},
			{"Bartender", s.Vibes.Bartender},
			{"Travel tips", s.Vibes.TravelTips},
			{"Dress code & entry", s.Vibes.DressCodeAndEntry},
		} {
			if kv[1] != "" {
				fmt.Fprintf(w, "- **%s:** %s\n", kv[0], kv[1])
			}
		}
		if len(s.CrowdTags) > 0 {
			fmt.Fprintf(w, "- **Crowd:** %s\n", strings.Join(s.CrowdTags, ", "))
		}
		if s.Bartender != nil {
			line := fmt.Sprintf("- **Behind the bar:** %s", s.Bartender.Name)
			if s.Bartender.Quote != "" {
				line += fmt.Sprintf(" (%q)", s.Bartender.Quote)
			}
			fmt.Fprintln(w, line)
		}
		fmt.Fprintln(w)
	case model.SocialSection:
		fmt.Fprint(w, "## Social\n\n")
		for _, p := range s.Posts {
			caption := p.Caption
			if p.Handle != "" {
				caption = strings.TrimSpace("@" + p.Handle + " " + caption)
			}
			fmt.Fprintf(w, "- ![%s](%s)\n", caption, p.Image)
		}
		fmt.Fprintln(w)
	case model.StorySection:
		fmt.Fprint(w, "## Story\n\n")
		fmt.Fprintf(w, "%s\n\n", s.Short)
		if s.Expandable {
			fmt.Fprintf(w, "<details><summary>Read more</summary>\n\n%s\n\n</details>\n\n", s.Long)
		}
		for _, m := range s.Team {
			fmt.Fprintf(w, "- %s, %s\n", m.Name, m.Role)
		}
		if len(s.Team) > 0 {
			fmt.Fprintln(w)
		}
	default:
		panic(fmt.Sprintf("pipeline: unhandled section %T", item))
	}
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()
	return write(f)
}

package pipeline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ppiankov/bartier/internal/model"
)

// WriteHTML writes a standalone HTML preview of the layout. Every section
// becomes a <section data-kind="..."> element in layout order.
func (r *Renderer) WriteHTML(w io.Writer, layout *model.Layout) error {
	body := elem(atom.Body, nil)
	main := elem(atom.Main, attrs("data-tier", string(layout.Tier)))
	body.AppendChild(main)

	for _, item := range layout.Sections {
		main.AppendChild(htmlSection(item))
	}

	if r.includeFooter {
		body.AppendChild(elem(atom.Footer, nil,
			text("Generated by bartier at "+layout.Built.Format("2006-01-02 15:04 MST"))))
	}

	head := elem(atom.Head, nil,
		elem(atom.Meta, attrs("charset", "utf-8")),
		elem(atom.Title, nil, text(layout.Name)),
	)

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(elem(atom.Html, attrs("lang", "en"), head, body))

	if err := html.Render(w, doc); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

func htmlSection(item model.ContentItem) *html.Node {
	sec := elem(atom.Section, attrs("data-kind", string(item.Kind())))

	switch s := item.(type) {
	case model.HeroSection:
		sec.AppendChild(elem(atom.Img, attrs("src", s.Hero.Image, "alt", s.Name)))
		sec.AppendChild(elem(atom.H1, nil, text(s.Name)))
		if s.Hero.Location != "" {
			sec.AppendChild(elem(atom.P, attrs("class", "location"), text(s.Hero.Location)))
		}
		if s.Hero.XPReward > 0 {
			sec.AppendChild(elem(atom.P, attrs("class", "xp"), text("+"+strconv.Itoa(s.Hero.XPReward)+" XP")))
		}
	case model.QuickTagsSection:
		sec.AppendChild(list(s.Tags))
	case model.QuickInfoSection:
		sec.AppendChild(elem(atom.H2, nil, text("Quick info")))
		sec.AppendChild(definitions(
			"Music", s.Info.Music,
			"Vibe", s.Info.Vibe,
			"Menu", s.Info.Menu,
			"Popular nights", s.Info.PopularNights,
			"Happy hour", s.Info.HappyHour,
		))
	case model.SignatureDrinksSection:
		sec.AppendChild(elem(atom.H2, nil, text("Signature drinks")))
		ul := elem(atom.Ul, nil)
		for _, d := range s.Drinks {
			li := elem(atom.Li, nil)
			if d.Image != "" {
				li.AppendChild(elem(atom.Img, attrs("src", d.Image, "alt", d.Name)))
			}
			li.AppendChild(elem(atom.Strong, nil, text(d.Name)))
			if d.Tagline != "" {
				li.AppendChild(text(" " + d.Tagline))
			}
			if d.Price != "" {
				li.AppendChild(elem(atom.Span, attrs("class", "price"), text(d.Price)))
			}
			ul.AppendChild(li)
		}
		sec.AppendChild(ul)
	case model.ChallengeSection:
		sec.AppendChild(elem(atom.H2, nil, text(s.Challenge.Title)))
		if s.Challenge.Copy != "" {
			sec.AppendChild(elem(atom.P, nil, text(s.Challenge.Copy)))
		}
		if s.Challenge.CTA != "" {
			sec.AppendChild(elem(atom.Button, nil, text(s.Challenge.CTA)))
		}
		if len(s.Rewards) > 0 {
			names := make([]string, len(s.Rewards))
			for i, rw := range s.Rewards {
				names[i] = fmt.Sprintf("%s (+%d XP)", rw.Name, rw.XP)
			}
			sec.AppendChild(list(names))
		}
	case model.EventsSection:
		sec.AppendChild(elem(atom.H2, nil, text("Events")))
		ul := elem(atom.Ul, nil)
		for _, e := range s.Events {
			li := elem(atom.Li, nil, elem(atom.Time, attrs("datetime", e.DateISO), text(e.DateISO)))
			li.AppendChild(text(" " + strings.TrimSpace(strings.Join([]string{e.Title, e.Time, e.City}, " "))))
			ul.AppendChild(li)
		}
		sec.AppendChild(ul)
	case model.BarVibesSection:
		sec.AppendChild(elem(atom.H2, nil, text("Bar vibes")))
		sec.AppendChild(definitions(
			"Crowd & atmosphere", s.Vibes.CrowdAndAtmosphere,
			"Bartender", s.Vibes.Bartender,
			"Travel tips", s.Vibes.TravelTips,
			"Dress code & entry", s.Vibes.DressCodeAndEntry,
		))
		if len(s.CrowdTags) > 0 {
			sec.AppendChild(list(s.CrowdTags))
		}
		if s.Bartender != nil {
			fig := elem(atom.Figure, attrs("class", "bartender"))
			if s.Bartender.Avatar != "" {
				fig.AppendChild(elem(atom.Img, attrs("src", s.Bartender.Avatar, "alt", s.Bartender.Name)))
			}
			if s.Bartender.Quote != "" {
				fig.AppendChild(elem(atom.Blockquote, nil, text(s.Bartender.Quote)))
			}
			fig.AppendChild(elem(atom.Figcaption, nil, text(s.Bartender.Name)))
			sec.AppendChild(fig)
		}
	case model.SocialSection:
		for _, p := range s.Posts {
			alt := p.Caption
			if p.Handle != "" {
				alt = strings.TrimSpace("@" + p.Handle + " " + alt)
			}
			sec.AppendChild(elem(atom.Img, attrs("src", p.Image, "alt", alt)))
		}
	case model.StorySection:
		sec.AppendChild(elem(atom.H2, nil, text("Story")))
		sec.AppendChild(elem(atom.P, nil, text(s.Short)))
		if s.Expandable {
			sec.AppendChild(elem(atom.Details, nil,
				elem(atom.Summary, nil, text("Read more")),
				elem(atom.P, nil, text(s.Long)),
			))
		}
		if len(s.Team) > 0 {
			names := make([]string, len(s.Team))
			for i, m := range s.Team {
				names[i] = m.Name + ", " + m.Role
			}
			sec.AppendChild(list(names))
		}
	default:
		panic(fmt.Sprintf("pipeline: unhandled section %T", item))
	}

	return sec
}

func elem(a atom.Atom, attr []html.Attribute, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attr}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// attrs builds attributes from key/value pairs
func attrs(kv ...string) []html.Attribute {
	out := make([]html.Attribute, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, html.Attribute{Key: kv[i], Val: kv[i+1]})
	}
	return out
}

func list(items []string) *html.Node {
	ul := elem(atom.Ul, nil)
	for _, it := range items {
		ul.AppendChild(elem(atom.Li, nil, text(it)))
	}
	return ul
}

// definitions renders label/value pairs, skipping empty values
func definitions(kv ...string) *html.Node {
	dl := elem(atom.Dl, nil)
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] == "" {
			continue
		}
		dl.AppendChild(elem(atom.Dt, nil, text(kv[i])))
		dl.AppendChild(elem(atom.Dd, nil, text(kv[i+1])))
	}
	return dl
}

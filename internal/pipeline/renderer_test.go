package pipeline

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/ppiankov/bartier/internal/model"
)

func TestWriteJSON_RoundTrip(t *testing.T) {
	layout := newTestPipeline(nil).Build(richBar(), model.TierNone)

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(false).WriteJSON(&buf, layout))

	var got model.Layout
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	if diff := cmp.Diff(*layout, got); diff != "" {
		t.Errorf("layout changed after JSON round trip (-want +got):\n%s", diff)
	}
}

func TestWriteJSON_TaggedSections(t *testing.T) {
	layout := newTestPipeline(nil).Build(sparseBar(), model.TierNone)

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(false).WriteJSON(&buf, layout))

	var raw struct {
		Sections []struct {
			Kind string          `json:"kind"`
			Data json.RawMessage `json:"data"`
		} `json:"sections"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	require.Len(t, raw.Sections, 2)
	assert.Equal(t, "hero", raw.Sections[0].Kind)
	assert.Equal(t, "quickTags", raw.Sections[1].Kind)
}

func TestWriteMarkdown(t *testing.T) {
	layout := newTestPipeline(nil).Build(richBar(), model.TierSilver)

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(true).WriteMarkdown(&buf, layout))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "# Velvet Room\n"))
	assert.Contains(t, out, "**Tier:** silver (manual, inferred gold)")
	assert.Contains(t, out, "## Signature drinks")
	assert.Contains(t, out, "- **Smoked Negroni** (€12)")
	assert.Contains(t, out, "## Bar vibes")
	assert.Contains(t, out, "- **Behind the bar:** Rui")
	assert.Contains(t, out, "Small jazz bar.")
	assert.NotContains(t, out, "Read more", "silver does not expand the long story")
	assert.Contains(t, out, "Generated by bartier at 2025-06-01 18:30 UTC")
}

func TestWriteMarkdown_NoFooter(t *testing.T) {
	layout := newTestPipeline(nil).Build(sparseBar(), model.TierNone)

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(false).WriteMarkdown(&buf, layout))
	assert.NotContains(t, buf.String(), "Generated by")
	assert.Contains(t, buf.String(), "Beer")
}

func TestWriteHTML(t *testing.T) {
	layout := newTestPipeline(nil).Build(richBar(), model.TierNone)

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(false).WriteHTML(&buf, layout))

	doc, err := html.Parse(&buf)
	require.NoError(t, err)

	var kinds []string
	var title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "section":
				for _, a := range n.Attr {
					if a.Key == "data-kind" {
						kinds = append(kinds, a.Val)
					}
				}
			case "title":
				if n.FirstChild != nil {
					title = n.FirstChild.Data
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	assert.Equal(t, "Velvet Room", title)
	want := make([]string, len(layout.Sections))
	for i, item := range layout.Sections {
		want[i] = string(item.Kind())
	}
	assert.Equal(t, want, kinds)
}

func TestWriteHTML_EscapesContent(t *testing.T) {
	bar := sparseBar()
	bar.Name = `<script>alert("x")</script>`

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(false).WriteHTML(&buf, newTestPipeline(nil).Build(bar, model.TierNone)))
	assert.NotContains(t, buf.String(), "<script>")
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}

func TestRender_Formats(t *testing.T) {
	layout := newTestPipeline(nil).Build(richBar(), model.TierNone)
	r := NewRenderer(false)
	dir := t.TempDir()

	for _, format := range []string{"json", "md", "html"} {
		path := filepath.Join(dir, "velvet."+format)
		require.NoError(t, r.Render(layout, format, path), format)
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size(), format)
	}

	path := filepath.Join(dir, "velvet.pdf")
	assert.Error(t, r.Render(layout, "pdf", path))
	assert.NoFileExists(t, path)
}

func TestWrite_UnknownFormat(t *testing.T) {
	layout := newTestPipeline(nil).Build(sparseBar(), model.TierNone)
	assert.Error(t, NewRenderer(false).Write(&bytes.Buffer{}, layout, "xml"))
}

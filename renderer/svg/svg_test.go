package svg

import (
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spectraldani/genkouyoushi/layout"
	"github.com/spectraldani/genkouyoushi/renderer"
)

func gridScene(t *testing.T, guides layout.Guides) *renderer.Scene {
	t.Helper()
	page, err := layout.NewBox(40, 30, layout.Spacing{}, layout.Spacing{}, 0)
	require.NoError(t, err)
	cell, err := layout.NewBoxFromOuter(10, 10, layout.Spacing{}, layout.Uniform(1), 0.5)
	require.NoError(t, err)
	res := &layout.Result{
		Plan:  layout.Compute(layout.GridConfig{Page: page, Cell: cell, Style: layout.StyleGrid, Guides: guides}),
		Theme: layout.Theme{Ink: layout.Color{R: 0x4a, G: 0x7e, B: 0xbb}, Brighten: 0.6},
		Meta:  layout.DocumentMeta{Title: "練習"},
	}
	return renderer.Compose(res)
}

func parse(t *testing.T, data []byte) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(data))
	root := doc.SelectElement("svg")
	require.NotNil(t, root)
	return root
}

func TestRenderDocumentHeader(t *testing.T) {
	data, err := New().Render(gridScene(t, layout.Guides{}))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), `<?xml version="1.0" encoding="UTF-8" standalone="no"?>`))

	root := parse(t, data)
	assert.Equal(t, "40mm", root.SelectAttrValue("width", ""))
	assert.Equal(t, "30mm", root.SelectAttrValue("height", ""))
	assert.Equal(t, "0 0 40 30", root.SelectAttrValue("viewBox", ""))
	assert.Equal(t, "練習", root.SelectElement("title").Text())
	assert.Nil(t, root.SelectElement("defs"))
}

func TestRenderLinesAndDashes(t *testing.T) {
	data, err := New().Render(gridScene(t, layout.Guides{}))
	require.NoError(t, err)
	root := parse(t, data)

	lines := root.FindElements("//line")
	require.NotEmpty(t, lines)
	var dashed int
	for _, l := range lines {
		assert.Equal(t, "0.5", l.SelectAttrValue("stroke-width", ""))
		if da := l.SelectAttrValue("stroke-dasharray", ""); da != "" {
			dashed++
			assert.Equal(t, "#b7cbe4", l.SelectAttrValue("stroke", ""))
			assert.Equal(t, da, l.SelectAttrValue("stroke-dashoffset", ""))
		} else {
			assert.Equal(t, "#4a7ebb", l.SelectAttrValue("stroke", ""))
		}
	}
	assert.Positive(t, dashed)
}

func TestRenderGuidesAsUse(t *testing.T) {
	scene := gridScene(t, layout.Guides{Cross: true, InnerBox: true})
	data, err := New().Render(scene)
	require.NoError(t, err)
	root := parse(t, data)

	defs := root.SelectElement("defs")
	require.NotNil(t, defs)
	g := defs.SelectElement("g")
	require.NotNil(t, g)
	assert.Equal(t, renderer.CellGuidesID, g.SelectAttrValue("id", ""))
	assert.Len(t, g.SelectElements("line"), 6)

	uses := root.FindElements("//use")
	assert.Len(t, uses, 12)
	for _, u := range uses {
		assert.Equal(t, "#"+renderer.CellGuidesID, u.SelectAttrValue("href", ""))
	}
}

func TestRenderRect(t *testing.T) {
	scene := &renderer.Scene{
		Width: 20, Height: 20,
		Root: renderer.GroupNode{Children: []renderer.Node{
			renderer.Rect(1.25, 1.25, 9.5, 9.5, "#000000", "", 0.5),
		}},
	}
	data, err := New().Render(scene)
	require.NoError(t, err)
	rect := parse(t, data).SelectElement("rect")
	require.NotNil(t, rect)
	assert.Equal(t, "none", rect.SelectAttrValue("fill", ""))
	assert.Equal(t, "1.25", rect.SelectAttrValue("x", ""))
	assert.Equal(t, "9.5", rect.SelectAttrValue("width", ""))
}

func TestRenderErrors(t *testing.T) {
	_, err := New().Render(nil)
	assert.ErrorContains(t, err, "渲染场景为空")

	_, err = New().Render(&renderer.Scene{Width: -1})
	assert.ErrorContains(t, err, "页面尺寸无效")

	_, err = New().Render(&renderer.Scene{Root: renderer.GroupNode{Children: []renderer.Node{renderer.Use("missing", 0, 0)}}})
	assert.ErrorContains(t, err, "未定义的符号")
}

func TestNum(t *testing.T) {
	assert.Equal(t, "0", num(-0.00001))
	assert.Equal(t, "1.5", num(1.50000001))
	assert.Equal(t, "0.3333", num(1.0/3))
	assert.Equal(t, "210", num(210))
}

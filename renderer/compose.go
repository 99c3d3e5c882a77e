package renderer

import "github.com/spectraldani/genkouyoushi/layout"

// CellGuidesID 是格内辅助线定义的引用名。
const CellGuidesID = "cell-guides"

// Compose 把版面方案翻译成绘制元素。边框用主色，辅助线与合并后的分隔线用提亮后的颜色并画成虚线。
// 没有面积的元素输出为空组。
func Compose(res *layout.Result) *Scene {
	plan := res.Plan
	scene := &Scene{Meta: res.Meta}
	if plan == nil {
		return scene
	}
	scene.Width = plan.Page.OuterWidth()
	scene.Height = plan.Page.OuterHeight()

	ink := res.Theme.Ink.Hex()
	guide := Brighten(res.Theme.Ink, res.Theme.Brighten).Hex()
	stroke := plan.Cell.StrokeWidth

	segmentNode := func(s layout.Segment) Node {
		color := ink
		if s.Role != layout.RoleBorder {
			color = guide
		}
		return Line(s.X0, s.Y0, s.X1, s.Y1, s.Role.DashCount(), color, stroke)
	}

	if len(plan.CellGuides) > 0 {
		sym := Symbol{ID: CellGuidesID}
		for _, s := range plan.CellGuides {
			sym.Children = append(sym.Children, segmentNode(s))
		}
		scene.Symbols = append(scene.Symbols, sym)
	}

	for _, p := range plan.Placements {
		scene.Root.Children = append(scene.Root.Children, composePlacement(plan, p, ink, stroke, segmentNode))
	}
	return scene
}

func composePlacement(plan *layout.Plan, p layout.Placement, ink string, stroke float64, segmentNode func(layout.Segment) Node) Node {
	if p.Width <= 0 || p.Height <= 0 {
		return Group()
	}

	var children []Node
	if p.Edges.AllSolid() {
		children = append(children, Rect(p.X+stroke/2, p.Y+stroke/2, p.Width-stroke, p.Height-stroke, ink, "", stroke))
	} else {
		for _, s := range layout.BorderSegments(p, stroke) {
			children = append(children, segmentNode(s))
		}
	}

	switch p.Kind {
	case layout.KindTitle:
		if y, ok := plan.TitleSplitY(); ok {
			children = append(children, Line(p.X+stroke/2, y, p.X+p.Width-stroke/2, y, 0, ink, stroke))
		}
	case layout.KindCell:
		if len(plan.CellGuides) > 0 {
			children = append(children, Use(CellGuidesID, p.X, p.Y))
		}
	}
	return Group(children...)
}

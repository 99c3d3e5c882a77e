package layout

import "math"

// epsilon 吸收恰好排满时的浮点误差。
const epsilon = 1e-9

// GridConfig 是布局引擎的输入。Page 的 padding 表示可打印区域的内缩；
// Cell 的 margin 是格子之间的间隙，描边是格子边框线宽。
type GridConfig struct {
	Page        Box            `json:"page"`
	Cell        Box            `json:"cell"`
	Style       Style          `json:"style"`
	Guides      Guides         `json:"guides"`
	Title       TitlePlacement `json:"title"`
	TitleLength int            `json:"titleLength"` // 标题字数
}

// span 描述格子沿某一轴重复排列时的尺寸。
type span struct {
	outer  float64
	stroke float64
	before float64 // 左或上 margin
	after  float64 // 右或下 margin
}

func horizontalSpan(b Box) span {
	return span{outer: b.OuterWidth(), stroke: b.StrokeWidth, before: b.Margin.Left, after: b.Margin.Right}
}

func verticalSpan(b Box) span {
	return span{outer: b.OuterHeight(), stroke: b.StrokeWidth, before: b.Margin.Top, after: b.Margin.Bottom}
}

func (s span) merged() float64 { return math.Max(s.before, s.after) }

// enclosed 表示相邻格子在该轴上不接触，每个格子画自己完整的边框。
func (s span) enclosed() bool { return s.merged() > 0 }

// boundary 是首个元素占用的长度：两侧 margin 都要计入。
func (s span) boundary() float64 { return s.outer + s.before + s.after }

// interior 是之后每个元素增加的长度：与前一个共用一条描边和一个间隙。
func (s span) interior() float64 { return s.outer - s.stroke + s.merged() }

// join 是标题列与相邻普通列重叠的宽度：格子互相接触时两者共用一条描边。
func (s span) join() float64 {
	if s.enclosed() {
		return 0
	}
	return s.stroke
}

// count 返回长度 usable 内最多能放下的元素个数。
func (s span) count(usable float64) int {
	if s.outer <= 0 || usable+epsilon < s.boundary() {
		return 0
	}
	step := s.interior()
	if step <= 0 {
		return 0
	}
	n := 1 + int(math.Floor((usable-s.boundary())/step+epsilon))
	if n < 1 {
		return 1
	}
	return n
}

// consumed 返回 n 个元素连续排列时占用的总长度（含两端 margin）。
func (s span) consumed(n int) float64 {
	if n <= 0 {
		return 0
	}
	return s.boundary() + float64(n-1)*s.interior()
}

// columnSlot 是横向上的一列。
type columnSlot struct {
	title      bool
	x          float64
	width      float64
	firstInRun bool
	lastInRun  bool
	// 标题列与普通列共用的一侧
	joinLeft  bool
	joinRight bool
}

// Compute 根据页面、格子与样式计算版面方案。纯函数：cfg 按值传入，调用方的盒子不会被修改。
// 空间不足时返回行列数为 0、没有元素的方案，不视为错误。
func Compute(cfg GridConfig) *Plan {
	page := cfg.Page.Clone()
	cell := cfg.Cell.Clone()
	if cfg.Style == StyleRuled {
		cell.Margin.Top = 0
		cell.Margin.Bottom = 0
	}

	plan := &Plan{
		Page:        page,
		Cell:        cell,
		Style:       cfg.Style,
		Title:       cfg.Title,
		TitleLength: cfg.TitleLength,
		TitleIndex:  -1,
	}
	if cfg.Style == StyleGrid {
		plan.Guides = cfg.Guides
		plan.CellGuides = cellGuides(cell, cfg.Guides)
	}

	h := horizontalSpan(cell)
	v := verticalSpan(cell)
	usableW := page.InnerWidth
	usableH := page.InnerHeight

	rows := v.count(usableH)
	normal, title := countColumns(h, usableW, cell.OuterWidth(), cfg.Title)
	if title == TitleNone && cfg.Title != TitleNone {
		plan.TitleDropped = true
	}
	plan.Title = title
	plan.Rows = rows
	plan.Columns = normal
	if title != TitleNone {
		plan.Columns++
	}

	titleW := 0.0
	if title != TitleNone {
		titleW = cell.OuterWidth()
	}
	plan.ContentWidth = titleW + consumedColumns(h, normal, title) - titleJoins(h, normal, title)
	plan.ContentHeight = v.consumed(rows)
	plan.OffsetX = (usableW - plan.ContentWidth) / 2
	plan.OffsetY = (usableH - plan.ContentHeight) / 2

	if rows == 0 || normal == 0 {
		return plan
	}

	origin := page.InnerOrigin()
	originX := origin.X + plan.OffsetX
	originY := origin.Y + plan.OffsetY

	slots := layoutColumns(h, normal, title, titleW, originX)
	for i, s := range slots {
		if s.title {
			plan.TitleIndex = i
		}
	}

	top := originY + v.before
	columnHeight := float64(rows-1)*v.interior() + v.outer
	for col, s := range slots {
		switch {
		case s.title:
			plan.Placements = append(plan.Placements, Placement{
				Kind:       KindTitle,
				Column:     col,
				X:          s.x,
				Y:          top,
				Width:      s.width,
				Height:     columnHeight,
				FirstRow:   true,
				LastRow:    true,
				FirstInRun: true,
				LastInRun:  true,
				Edges:      titleEdges(s),
			})
		case cfg.Style == StyleRuled:
			plan.Placements = append(plan.Placements, Placement{
				Kind:       KindColumn,
				Column:     col,
				X:          s.x,
				Y:          top,
				Width:      s.width,
				Height:     columnHeight,
				FirstRow:   true,
				LastRow:    true,
				FirstInRun: s.firstInRun,
				LastInRun:  s.lastInRun,
				Edges: Edges{
					Left:  runEdgeStart(h, s.firstInRun),
					Right: runEdgeEnd(h, s.lastInRun),
				},
			})
		default:
			for row := 0; row < rows; row++ {
				first, last := row == 0, row == rows-1
				plan.Placements = append(plan.Placements, Placement{
					Kind:       KindCell,
					Row:        row,
					Column:     col,
					X:          s.x,
					Y:          top + float64(row)*v.interior(),
					Width:      s.width,
					Height:     v.outer,
					FirstRow:   first,
					LastRow:    last,
					FirstInRun: s.firstInRun,
					LastInRun:  s.lastInRun,
					Edges: Edges{
						Top:    runEdgeStart(v, first),
						Right:  runEdgeEnd(h, s.lastInRun),
						Bottom: runEdgeEnd(v, last),
						Left:   runEdgeStart(h, s.firstInRun),
					},
				})
			}
		}
	}
	return plan
}

// countColumns 计算普通列数与实际生效的标题位置。宽度不足以放下所需的标题布局时退化为无标题。
func countColumns(h span, usable, titleW float64, title TitlePlacement) (int, TitlePlacement) {
	switch title {
	case TitleStart, TitleEnd:
		if usable+epsilon < titleW-h.join()+h.boundary() {
			return h.count(usable), TitleNone
		}
		return h.count(usable - titleW + h.join()), title
	case TitleMiddle:
		need := titleW - 2*h.join() + 2*h.boundary()
		if usable+epsilon < need || h.interior() <= 0 {
			return h.count(usable), TitleNone
		}
		interior := int(math.Floor((usable-need)/h.interior() + epsilon))
		interior -= interior % 2
		return 2 + interior, title
	default:
		return h.count(usable), TitleNone
	}
}

func consumedColumns(h span, normal int, title TitlePlacement) float64 {
	if title == TitleMiddle {
		return 2 * h.consumed(normal/2)
	}
	return h.consumed(normal)
}

// titleJoins 返回标题列与相邻段共用的总宽度。
func titleJoins(h span, normal int, title TitlePlacement) float64 {
	switch {
	case normal == 0:
		return 0
	case title == TitleMiddle:
		return 2 * h.join()
	case title == TitleStart, title == TitleEnd:
		return h.join()
	}
	return 0
}

// titleEdges 让标题列把共用的一侧交给相邻格子绘制。
func titleEdges(s columnSlot) Edges {
	e := Edges{}
	if s.joinLeft {
		e.Left = EdgeShared
	}
	if s.joinRight {
		e.Right = EdgeShared
	}
	return e
}

// layoutColumns 从左到右排出所有列。标题列没有自己的 margin，并把普通列分成独立的段；
// 格子互相接触时标题列与相邻段重叠一条描边。
func layoutColumns(h span, normal int, title TitlePlacement, titleW, originX float64) []columnSlot {
	var slots []columnSlot
	run := func(n int, start float64) float64 {
		x := start + h.before
		for i := 0; i < n; i++ {
			slots = append(slots, columnSlot{
				x:          x,
				width:      h.outer,
				firstInRun: i == 0,
				lastInRun:  i == n-1,
			})
			if i < n-1 {
				x += h.interior()
			}
		}
		return x + h.outer + h.after
	}
	join := h.join()
	titleAt := func(x float64, left, right bool) {
		slots = append(slots, columnSlot{
			title:      true,
			x:          x,
			width:      titleW,
			firstInRun: true,
			lastInRun:  true,
			joinLeft:   left && join > 0,
			joinRight:  right && join > 0,
		})
	}

	switch title {
	case TitleStart:
		titleAt(originX, false, true)
		run(normal, originX+titleW-join)
	case TitleEnd:
		end := run(normal, originX)
		titleAt(end-join, true, false)
	case TitleMiddle:
		end := run(normal/2, originX)
		titleAt(end-join, true, true)
		run(normal/2, end-join+titleW-join)
	default:
		run(normal, originX)
	}
	return slots
}

// runEdgeStart 返回一段连续元素中靠前一侧（左或上）的边。
func runEdgeStart(s span, first bool) Edge {
	if s.enclosed() || first {
		return EdgeSolid
	}
	return EdgeMerged
}

// runEdgeEnd 返回靠后一侧（右或下）的边。
func runEdgeEnd(s span, last bool) Edge {
	if s.enclosed() || last {
		return EdgeSolid
	}
	return EdgeShared
}

// TitleSplitY 返回标题列中标题区与下方区域的分隔线纵坐标。
// 标题字数为 0 或不少于行数时没有分隔线，返回 false。
func (p *Plan) TitleSplitY() (float64, bool) {
	if p == nil || p.TitleIndex < 0 || p.TitleLength <= 0 || p.TitleLength >= p.Rows {
		return 0, false
	}
	v := verticalSpan(p.Cell)
	top := p.Page.InnerOrigin().Y + p.OffsetY + v.before
	prevBottom := top + float64(p.TitleLength-1)*v.interior() + v.outer - v.stroke/2
	nextTop := top + float64(p.TitleLength)*v.interior() + v.stroke/2
	return (prevBottom + nextTop) / 2, true
}

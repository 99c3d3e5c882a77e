package layout

import (
	"fmt"
	"math"
)

// 虚线段数：对正方形格子，对角线约长 41%，用 25 段让虚线节距与 19 段的横竖线接近。
const (
	AxisDashCount     = 19
	DiagonalDashCount = 25
)

// Role 标识一条线在格子中的用途，决定其是否为虚线及虚线段数。
type Role int

const (
	RoleBorder    Role = iota // 普通边框，实线
	RoleSeparator             // 合并后的共用分隔线
	RoleCross
	RoleThirds
	RoleDiagonal
	RoleInnerBox
)

func (r Role) String() string {
	switch r {
	case RoleSeparator:
		return "separator"
	case RoleCross:
		return "cross"
	case RoleThirds:
		return "thirds"
	case RoleDiagonal:
		return "diagonal"
	case RoleInnerBox:
		return "inner-box"
	default:
		return "border"
	}
}

func (r Role) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// DashCount 返回该用途的虚线段数；0 表示实线。
func (r Role) DashCount() int {
	switch r {
	case RoleBorder:
		return 0
	case RoleDiagonal:
		return DiagonalDashCount
	default:
		return AxisDashCount
	}
}

// Segment 是一条线段，坐标相对格子外框左上角。
type Segment struct {
	X0   float64 `json:"x0"`
	Y0   float64 `json:"y0"`
	X1   float64 `json:"x1"`
	Y1   float64 `json:"y1"`
	Role Role    `json:"role"`
}

// Length 返回线段长度。
func (s Segment) Length() float64 { return math.Hypot(s.X1-s.X0, s.Y1-s.Y0) }

// Dash 计算长度为 length 的线分成 n 段时的虚线长度与偏移。
// 偏移等于虚线长度，使线段两端看起来对称而不是以空白开头。
// n 为负是调用方错误。
func Dash(length float64, n int) (dash, offset float64) {
	if n < 0 {
		panic(fmt.Sprintf("layout: 虚线段数不能为负: %d", n))
	}
	if n == 0 {
		return 0, 0
	}
	dash = length / float64(n)
	return dash, dash
}

// cellGuides 按策略生成格内辅助线，范围为格子内容区（由 padding 定位）。
func cellGuides(cell Box, g Guides) []Segment {
	o := cell.InnerOrigin()
	e := cell.InnerEnd()
	w, h := cell.InnerWidth, cell.InnerHeight
	if w <= 0 || h <= 0 {
		return nil
	}

	var segs []Segment
	vertical := func(x float64, role Role) {
		segs = append(segs, Segment{X0: x, Y0: o.Y, X1: x, Y1: e.Y, Role: role})
	}
	horizontal := func(y float64, role Role) {
		segs = append(segs, Segment{X0: o.X, Y0: y, X1: e.X, Y1: y, Role: role})
	}

	if g.Cross {
		vertical(o.X+w/2, RoleCross)
		horizontal(o.Y+h/2, RoleCross)
	}
	if g.Thirds {
		vertical(o.X+w/3, RoleThirds)
		vertical(o.X+2*w/3, RoleThirds)
		horizontal(o.Y+h/3, RoleThirds)
		horizontal(o.Y+2*h/3, RoleThirds)
	}
	if g.Diagonal {
		segs = append(segs,
			Segment{X0: o.X, Y0: o.Y, X1: e.X, Y1: e.Y, Role: RoleDiagonal},
			Segment{X0: e.X, Y0: o.Y, X1: o.X, Y1: e.Y, Role: RoleDiagonal},
		)
	}
	if g.InnerBox {
		// 居中的小框，边长为内容区的一半
		x0, y0 := o.X+w/4, o.Y+h/4
		x1, y1 := o.X+3*w/4, o.Y+3*h/4
		segs = append(segs,
			Segment{X0: x0, Y0: y0, X1: x1, Y1: y0, Role: RoleInnerBox},
			Segment{X0: x1, Y0: y0, X1: x1, Y1: y1, Role: RoleInnerBox},
			Segment{X0: x1, Y0: y1, X1: x0, Y1: y1, Role: RoleInnerBox},
			Segment{X0: x0, Y0: y1, X1: x0, Y1: y0, Role: RoleInnerBox},
		)
	}
	return segs
}

// BorderSegments 返回元素需要自行绘制的边框线（坐标为页面坐标）。
// 边框沿描边中心线绘制，跳过 EdgeShared 的边；EdgeMerged 的边标记为分隔线。
func BorderSegments(p Placement, strokeWidth float64) []Segment {
	half := strokeWidth / 2
	x0, y0 := p.X+half, p.Y+half
	x1, y1 := p.X+p.Width-half, p.Y+p.Height-half

	var segs []Segment
	add := func(e Edge, s Segment) {
		switch e {
		case EdgeShared:
			return
		case EdgeMerged:
			s.Role = RoleSeparator
		default:
			s.Role = RoleBorder
		}
		segs = append(segs, s)
	}
	add(p.Edges.Top, Segment{X0: x0, Y0: y0, X1: x1, Y1: y0})
	add(p.Edges.Right, Segment{X0: x1, Y0: y0, X1: x1, Y1: y1})
	add(p.Edges.Bottom, Segment{X0: x1, Y0: y1, X1: x0, Y1: y1})
	add(p.Edges.Left, Segment{X0: x0, Y0: y1, X1: x0, Y1: y0})
	return segs
}

package renderer

import (
	"fmt"
	"math"

	"github.com/spectraldani/genkouyoushi/layout"
)

// Node 是场景中的可绘制元素，由 Line/Rect/Group/Use 构造。
// 坐标单位均为 mm，原点在页面左上角。
type Node interface {
	node()
}

// LineNode 是一条线段。Dashes 为 0 表示实线，否则线段被分成 Dashes 段虚线。
type LineNode struct {
	X0, Y0, X1, Y1 float64
	Dashes         int
	Color          string
	StrokeWidth    float64
}

// RectNode 是一个矩形；Fill 为空表示不填充。
type RectNode struct {
	X, Y, Width, Height float64
	Stroke, Fill        string
	StrokeWidth         float64
}

// GroupNode 组合若干子元素。
type GroupNode struct {
	Children []Node
}

// UseNode 引用 Scene.Symbols 中的可复用定义，并平移到 (X, Y)。
type UseNode struct {
	Ref  string
	X, Y float64
}

func (LineNode) node()  {}
func (RectNode) node()  {}
func (GroupNode) node() {}
func (UseNode) node()   {}

// Line 构造线段。dashes 为负属于调用方错误。
func Line(x0, y0, x1, y1 float64, dashes int, color string, strokeWidth float64) Node {
	if dashes < 0 {
		panic(fmt.Sprintf("renderer: 虚线段数不能为负: %d", dashes))
	}
	return LineNode{X0: x0, Y0: y0, X1: x1, Y1: y1, Dashes: dashes, Color: color, StrokeWidth: strokeWidth}
}

// Rect 构造矩形。
func Rect(x, y, w, h float64, stroke, fill string, strokeWidth float64) Node {
	return RectNode{X: x, Y: y, Width: w, Height: h, Stroke: stroke, Fill: fill, StrokeWidth: strokeWidth}
}

// Group 组合子元素。
func Group(children ...Node) Node {
	return GroupNode{Children: children}
}

// Use 引用 id 对应的可复用定义。
func Use(id string, x, y float64) Node {
	return UseNode{Ref: id, X: x, Y: y}
}

// Length 返回线段长度。
func (l LineNode) Length() float64 { return math.Hypot(l.X1-l.X0, l.Y1-l.Y0) }

// DashPattern 返回虚线长度与起始偏移；实线返回 0, 0。
func (l LineNode) DashPattern() (dash, offset float64) {
	return layout.Dash(l.Length(), l.Dashes)
}

// Symbol 是可被 UseNode 复用的一组元素，坐标相对引用点。
type Symbol struct {
	ID       string
	Children []Node
}

// Scene 是一页稿纸的绘制描述。
type Scene struct {
	Width   float64 // mm
	Height  float64 // mm
	Meta    layout.DocumentMeta
	Symbols []Symbol
	Root    GroupNode
}

// Symbol 按 id 查找可复用定义。
func (s *Scene) Symbol(id string) (Symbol, bool) {
	for _, sym := range s.Symbols {
		if sym.ID == id {
			return sym, true
		}
	}
	return Symbol{}, false
}

// Walk 以深度优先顺序遍历场景，UseNode 会展开为平移后的定义内容。
// fn 收到的坐标已加上累计平移量 (dx, dy)。
func (s *Scene) Walk(fn func(n Node, dx, dy float64) error) error {
	var walk func(n Node, dx, dy float64, depth int) error
	walk = func(n Node, dx, dy float64, depth int) error {
		if depth > 16 {
			return fmt.Errorf("renderer: 引用嵌套过深")
		}
		switch v := n.(type) {
		case GroupNode:
			for _, c := range v.Children {
				if err := walk(c, dx, dy, depth); err != nil {
					return err
				}
			}
			return nil
		case UseNode:
			sym, ok := s.Symbol(v.Ref)
			if !ok {
				return fmt.Errorf("renderer: 未定义的引用 %q", v.Ref)
			}
			for _, c := range sym.Children {
				if err := walk(c, dx+v.X, dy+v.Y, depth+1); err != nil {
					return err
				}
			}
			return nil
		default:
			return fn(n, dx, dy)
		}
	}
	return walk(s.Root, 0, 0, 0)
}

package layout

import (
	"errors"
	"fmt"
)

// ErrNegativeSize 表示盒子的内容尺寸为负。
var ErrNegativeSize = errors.New("盒子尺寸不能为负")

// Point 是页面坐标（mm），原点在左上角。
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Box 以内容尺寸加 margin/padding/描边描述一个矩形。
// 描边以边界为中心绘制，两侧各占一半线宽。
type Box struct {
	InnerWidth  float64 `json:"innerWidth"`
	InnerHeight float64 `json:"innerHeight"`
	Margin      Spacing `json:"margin"`
	Padding     Spacing `json:"padding"`
	StrokeWidth float64 `json:"strokeWidth"`
}

// NewBox 由内向外构造盒子。
func NewBox(innerWidth, innerHeight float64, margin, padding Spacing, strokeWidth float64) (Box, error) {
	if innerWidth < 0 || innerHeight < 0 {
		return Box{}, fmt.Errorf("%w: %gx%g", ErrNegativeSize, innerWidth, innerHeight)
	}
	return Box{
		InnerWidth:  innerWidth,
		InnerHeight: innerHeight,
		Margin:      margin,
		Padding:     padding,
		StrokeWidth: strokeWidth,
	}, nil
}

// NewBoxFromOuter 由外向内构造盒子：内容尺寸由外尺寸扣除 padding 与两侧描边得到。
func NewBoxFromOuter(outerWidth, outerHeight float64, margin, padding Spacing, strokeWidth float64) (Box, error) {
	return NewBox(
		InnerFromOuter(outerWidth, padding.TotalHorizontal(), strokeWidth),
		InnerFromOuter(outerHeight, padding.TotalVertical(), strokeWidth),
		margin, padding, strokeWidth,
	)
}

// OuterFromInner 计算外尺寸：内容 + padding + 两侧描边。
func OuterFromInner(inner, paddingTotal, strokeWidth float64) float64 {
	return inner + paddingTotal + 2*strokeWidth
}

// InnerFromOuter 是 OuterFromInner 的逆运算。
func InnerFromOuter(outer, paddingTotal, strokeWidth float64) float64 {
	return outer - paddingTotal - 2*strokeWidth
}

func (b Box) OuterWidth() float64 {
	return OuterFromInner(b.InnerWidth, b.Padding.TotalHorizontal(), b.StrokeWidth)
}

func (b Box) OuterHeight() float64 {
	return OuterFromInner(b.InnerHeight, b.Padding.TotalVertical(), b.StrokeWidth)
}

// WithOuterWidth 返回外宽为 w 的副本，padding 与描边保持不变。
func (b Box) WithOuterWidth(w float64) Box {
	b.InnerWidth = InnerFromOuter(w, b.Padding.TotalHorizontal(), b.StrokeWidth)
	return b
}

// WithOuterHeight 返回外高为 h 的副本，padding 与描边保持不变。
func (b Box) WithOuterHeight(h float64) Box {
	b.InnerHeight = InnerFromOuter(h, b.Padding.TotalVertical(), b.StrokeWidth)
	return b
}

// InnerOrigin 是内容区左上角相对外框左上角的偏移。
func (b Box) InnerOrigin() Point {
	return Point{X: b.StrokeWidth + b.Padding.Left, Y: b.StrokeWidth + b.Padding.Top}
}

// InnerEnd 是内容区右下角相对外框左上角的偏移。
func (b Box) InnerEnd() Point {
	o := b.InnerOrigin()
	return Point{X: o.X + b.InnerWidth, Y: o.Y + b.InnerHeight}
}

// SVGWidth 是左右两条边框中心线之间的距离：只计一次描边宽度，
// 外侧半条描边与相邻图形共用。
func (b Box) SVGWidth() float64 {
	return b.InnerWidth + b.Padding.TotalHorizontal() + b.StrokeWidth
}

func (b Box) SVGHeight() float64 {
	return b.InnerHeight + b.Padding.TotalVertical() + b.StrokeWidth
}

// Clone 返回深拷贝；margin/padding 都是值类型，引擎对副本的修改不会影响原盒子。
func (b Box) Clone() Box {
	b.Margin = b.Margin.Clone()
	b.Padding = b.Padding.Clone()
	return b
}

// Degenerate 报告外框是否没有可绘制的面积。
func (b Box) Degenerate() bool {
	return b.OuterWidth() <= 0 || b.OuterHeight() <= 0
}

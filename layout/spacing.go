package layout

import (
	"fmt"
	"math"
)

// Spacing 描述矩形四边的独立间距（mm），用于 margin 与 padding。
// 负值不做校验，由调用方保证。
type Spacing struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// NewSpacing 按 CSS 简写语义构造 Spacing。1 个值时四边相同；2 个值依次为 top=bottom、left=right；
// 3 个值依次为 top、left=right、bottom；4 个值依次为 top、right、bottom、left。
func NewSpacing(values ...float64) (Spacing, error) {
	switch len(values) {
	case 1:
		v := values[0]
		return Spacing{Top: v, Right: v, Bottom: v, Left: v}, nil
	case 2:
		return Spacing{Top: values[0], Right: values[1], Bottom: values[0], Left: values[1]}, nil
	case 3:
		return Spacing{Top: values[0], Right: values[1], Bottom: values[2], Left: values[1]}, nil
	case 4:
		return Spacing{Top: values[0], Right: values[1], Bottom: values[2], Left: values[3]}, nil
	default:
		return Spacing{}, fmt.Errorf("间距需要 1 到 4 个数值，实际 %d 个", len(values))
	}
}

// Uniform 返回四边相同的 Spacing。
func Uniform(v float64) Spacing { return Spacing{Top: v, Right: v, Bottom: v, Left: v} }

func (s Spacing) TotalHorizontal() float64 { return s.Left + s.Right }
func (s Spacing) TotalVertical() float64 { return s.Top + s.Bottom }

// MergedHorizontal 是左右相邻两个元素共用一个间隙时的宽度。
func (s Spacing) MergedHorizontal() float64 { return math.Max(s.Left, s.Right) }

// MergedVertical 是上下相邻两个元素共用一个间隙时的高度。
func (s Spacing) MergedVertical() float64 { return math.Max(s.Top, s.Bottom) }

// Clone 返回独立副本。Spacing 是值类型，赋值即复制；保留该方法便于在调用处表达意图。
func (s Spacing) Clone() Spacing { return s }

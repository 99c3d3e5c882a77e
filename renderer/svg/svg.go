package svg

import (
	"fmt"
	"math"
	"strconv"

	"github.com/beevik/etree"

	"github.com/spectraldani/genkouyoushi/renderer"
)

const (
	svgNS   = "http://www.w3.org/2000/svg"
	xlinkNS = "http://www.w3.org/1999/xlink"
)

// Renderer writes a scene as a standalone SVG document sized in millimetres.
// One user unit equals one millimetre.
type Renderer struct {
	// Indent is the number of spaces used to indent nested elements; zero writes compact output.
	Indent int
}

// New returns a Renderer with two-space indentation.
func New() *Renderer {
	return &Renderer{Indent: 2}
}

var _ renderer.Renderer = (*Renderer)(nil)

// Render serializes the scene. Reusable symbols are written once under <defs>
// and referenced with <use>.
func (r *Renderer) Render(scene *renderer.Scene) ([]byte, error) {
	if scene == nil {
		return nil, fmt.Errorf("渲染场景为空")
	}
	if scene.Width < 0 || scene.Height < 0 {
		return nil, fmt.Errorf("页面尺寸无效: %gx%g", scene.Width, scene.Height)
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="no"`)

	// 1 个用户单位 = 1 mm
	root := doc.CreateElement("svg")
	root.CreateAttr("xmlns", svgNS)
	root.CreateAttr("xmlns:xlink", xlinkNS)
	root.CreateAttr("version", "1.1")
	root.CreateAttr("width", num(scene.Width)+"mm")
	root.CreateAttr("height", num(scene.Height)+"mm")
	root.CreateAttr("viewBox", fmt.Sprintf("0 0 %s %s", num(scene.Width), num(scene.Height)))

	if scene.Meta.Title != "" {
		root.CreateElement("title").SetText(scene.Meta.Title)
	}
	if scene.Meta.Subject != "" {
		root.CreateElement("desc").SetText(scene.Meta.Subject)
	}

	if len(scene.Symbols) > 0 {
		defs := root.CreateElement("defs")
		for _, sym := range scene.Symbols {
			g := defs.CreateElement("g")
			g.CreateAttr("id", sym.ID)
			for _, child := range sym.Children {
				if err := writeNode(g, scene, child); err != nil {
					return nil, err
				}
			}
		}
	}

	for _, child := range scene.Root.Children {
		if err := writeNode(root, scene, child); err != nil {
			return nil, err
		}
	}

	if r.Indent > 0 {
		doc.Indent(r.Indent)
	}
	return doc.WriteToBytes()
}

// writeNode 按节点类型写出对应的 SVG 元素，引用的符号必须已在 defs 中定义。
func writeNode(parent *etree.Element, scene *renderer.Scene, n renderer.Node) error {
	switch v := n.(type) {
	case renderer.LineNode:
		el := parent.CreateElement("line")
		el.CreateAttr("x1", num(v.X0))
		el.CreateAttr("y1", num(v.Y0))
		el.CreateAttr("x2", num(v.X1))
		el.CreateAttr("y2", num(v.Y1))
		el.CreateAttr("stroke", v.Color)
		el.CreateAttr("stroke-width", num(v.StrokeWidth))
		if v.Dashes > 0 {
			dash, offset := v.DashPattern()
			el.CreateAttr("stroke-dasharray", num(dash))
			el.CreateAttr("stroke-dashoffset", num(offset))
		}
	case renderer.RectNode:
		el := parent.CreateElement("rect")
		el.CreateAttr("x", num(v.X))
		el.CreateAttr("y", num(v.Y))
		el.CreateAttr("width", num(v.Width))
		el.CreateAttr("height", num(v.Height))
		fill := v.Fill
		if fill == "" {
			fill = "none"
		}
		el.CreateAttr("fill", fill)
		el.CreateAttr("stroke", v.Stroke)
		el.CreateAttr("stroke-width", num(v.StrokeWidth))
	case renderer.GroupNode:
		g := parent.CreateElement("g")
		for _, child := range v.Children {
			if err := writeNode(g, scene, child); err != nil {
				return err
			}
		}
	case renderer.UseNode:
		if _, ok := scene.Symbol(v.Ref); !ok {
			return fmt.Errorf("引用了未定义的符号: %q", v.Ref)
		}
		el := parent.CreateElement("use")
		el.CreateAttr("href", "#"+v.Ref)
		el.CreateAttr("xlink:href", "#"+v.Ref)
		el.CreateAttr("x", num(v.X))
		el.CreateAttr("y", num(v.Y))
	default:
		return fmt.Errorf("不支持的绘制元素: %T", n)
	}
	return nil
}

// num 把坐标四舍五入到 1e-4 mm，并去掉末尾多余的 0。
func num(v float64) string {
	v = math.Round(v*1e4) / 1e4
	if v == 0 {
		v = 0 // 去掉 -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

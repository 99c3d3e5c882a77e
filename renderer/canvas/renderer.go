package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/spectraldani/genkouyoushi/layout"
	"github.com/spectraldani/genkouyoushi/renderer"
)

// Format selects the output encoding of the canvas renderer.
type Format string

const (
	FormatPDF Format = "pdf"
	FormatPNG Format = "png"
)

// DefaultResolution is the PNG resolution in dots per millimetre (about 300 DPI).
const DefaultResolution = 11.811

// Renderer draws scenes via github.com/tdewolff/canvas.
type Renderer struct {
	format     Format
	resolution float64
	background string
}

var _ renderer.Renderer = (*Renderer)(nil)

// Options configures the canvas renderer.
type Options struct {
	Format     Format
	Resolution float64 // dots per mm, PNG only
	Background string  // hex colour painted under the scene, PNG only; empty keeps transparency
}

// NewRenderer creates a PDF renderer.
func NewRenderer() *Renderer { return NewRendererWithOptions(Options{Format: FormatPDF}) }

// NewRendererWithOptions creates a renderer for the given format.
func NewRendererWithOptions(opts Options) *Renderer {
	r := &Renderer{
		format:     opts.Format,
		resolution: opts.Resolution,
		background: opts.Background,
	}
	if r.format == "" {
		r.format = FormatPDF
	}
	if r.resolution <= 0 {
		r.resolution = DefaultResolution
	}
	return r
}

// Render renders the scene into a PDF or PNG byte slice.
func (r *Renderer) Render(scene *renderer.Scene) ([]byte, error) {
	if scene == nil {
		return nil, fmt.Errorf("渲染场景为空")
	}
	if scene.Width <= 0 || scene.Height <= 0 {
		return nil, fmt.Errorf("页面尺寸无效: %gx%g", scene.Width, scene.Height)
	}

	c := canvas.New(scene.Width, scene.Height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

	if r.format == FormatPNG && r.background != "" {
		ctx.SetFillColor(canvas.Hex(r.background))
		ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
		ctx.DrawPath(0, 0, canvas.Rectangle(scene.Width, scene.Height))
	}
	if err := r.drawScene(ctx, scene); err != nil {
		return nil, err
	}

	switch r.format {
	case FormatPDF:
		var buf bytes.Buffer
		writer := pdf.New(&buf, scene.Width, scene.Height, nil)
		applyMeta(writer, scene.Meta)
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 PDF 失败: %w", err)
		}
		return buf.Bytes(), nil
	case FormatPNG:
		img := rasterizer.Draw(c, canvas.DPMM(r.resolution), canvas.DefaultColorSpace)
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("写入 PNG 失败: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("不支持的输出格式: %s", r.format)
	}
}

func applyMeta(writer *pdf.PDF, meta layout.DocumentMeta) {
	if writer == nil {
		return
	}
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}

// drawScene 按场景顺序绘制，引用的定义已由 Walk 展开。
func (r *Renderer) drawScene(ctx *canvas.Context, scene *renderer.Scene) error {
	return scene.Walk(func(n renderer.Node, dx, dy float64) error {
		switch v := n.(type) {
		case renderer.LineNode:
			drawLine(ctx, v, dx, dy)
		case renderer.RectNode:
			drawRect(ctx, v, dx, dy)
		default:
			return fmt.Errorf("不支持的绘制元素: %T", n)
		}
		return nil
	})
}

func drawLine(ctx *canvas.Context, ln renderer.LineNode, dx, dy float64) {
	if ln.StrokeWidth <= 0 || ln.Length() == 0 {
		return
	}
	ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	ctx.SetStrokeColor(canvas.Hex(ln.Color))
	ctx.SetStrokeWidth(ln.StrokeWidth)
	if ln.Dashes > 0 {
		dash, offset := ln.DashPattern()
		ctx.SetDashes(offset, dash, dash)
	} else {
		ctx.SetDashes(0)
	}
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo(ln.X1-ln.X0, ln.Y1-ln.Y0)
	ctx.DrawPath(ln.X0+dx, ln.Y0+dy, p)
}

func drawRect(ctx *canvas.Context, rc renderer.RectNode, dx, dy float64) {
	if rc.Width <= 0 || rc.Height <= 0 {
		return
	}
	if rc.Fill != "" {
		ctx.SetFillColor(canvas.Hex(rc.Fill))
	} else {
		ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	}
	if rc.Stroke != "" && rc.StrokeWidth > 0 {
		ctx.SetStrokeColor(canvas.Hex(rc.Stroke))
		ctx.SetStrokeWidth(rc.StrokeWidth)
	} else {
		ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
	}
	ctx.SetDashes(0)
	ctx.DrawPath(rc.X+dx, rc.Y+dy, canvas.Rectangle(rc.Width, rc.Height))
}

// ParseFormat maps a file format name to a canvas Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "pdf":
		return FormatPDF, nil
	case "png":
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("不支持的输出格式: %s", name)
	}
}

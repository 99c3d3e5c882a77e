package layout

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spectraldani/genkouyoushi/binding"
	"github.com/spectraldani/genkouyoushi/dsl"
)

// Build 根据稿纸描述生成格子配置并计算版面方案。
func Build(sheet *dsl.Sheet, data any, opts BuildOptions) (*Result, error) {
	if sheet == nil {
		return nil, fmt.Errorf("稿纸描述为空")
	}
	defaults := opts.defaults()

	colors, err := collectColors(sheet)
	if err != nil {
		return nil, err
	}
	meta := collectMeta(sheet, data)

	section := sheet.FirstPage()
	if section == nil {
		return nil, fmt.Errorf("稿纸描述中缺少 page 段落")
	}
	cfg, theme, err := buildGridConfig(section, colors, data, defaults)
	if err != nil {
		return nil, err
	}
	if meta.Title == "" {
		meta.Title = sheet.Name
	}

	return &Result{
		Plan:  Compute(cfg),
		Theme: theme,
		Meta:  meta,
	}, nil
}

// buildGridConfig 解析 page 段落。
func buildGridConfig(section *dsl.PageSection, colors map[string]Color, data any, d Defaults) (GridConfig, Theme, error) {
	width, height, err := resolvePageSize(section.Spec)
	if err != nil {
		return GridConfig{}, Theme{}, err
	}
	pagePadding, err := resolvePagePadding(section.Spec.Params, d.PagePadding)
	if err != nil {
		return GridConfig{}, Theme{}, err
	}
	page, err := NewBoxFromOuter(width, height, Spacing{}, pagePadding, 0)
	if err != nil {
		return GridConfig{}, Theme{}, fmt.Errorf("page 内边距超出纸张尺寸: %w", err)
	}

	cell, err := NewBoxFromOuter(d.CellSize, d.CellSize, Spacing{}, Spacing{}, d.CellStroke)
	if err != nil {
		return GridConfig{}, Theme{}, err
	}
	cfg := GridConfig{Page: page, Cell: cell, Style: StyleGrid}
	theme := Theme{Ink: d.Ink, Brighten: d.Brighten}
	titleLength := -1
	titleText := ""

	if section.Block == nil {
		return GridConfig{}, Theme{}, fmt.Errorf("page 段落缺少内容")
	}
	for _, st := range section.Block.Statements {
		if st.Command == nil {
			continue
		}
		cmd := st.Command
		args := argValues(cmd.Args)
		switch cmd.Name {
		case "cell":
			if cfg.Cell, err = parseCell(args, d); err != nil {
				return GridConfig{}, Theme{}, commandError(cmd, err)
			}
		case "style":
			if cfg.Style, err = parseStyle(args); err != nil {
				return GridConfig{}, Theme{}, commandError(cmd, err)
			}
		case "guides":
			if cfg.Guides, err = parseGuides(args); err != nil {
				return GridConfig{}, Theme{}, commandError(cmd, err)
			}
		case "title":
			if cfg.Title, titleLength, err = parseTitle(args); err != nil {
				return GridConfig{}, Theme{}, commandError(cmd, err)
			}
		case "title-text":
			if len(args) == 0 {
				return GridConfig{}, Theme{}, commandError(cmd, fmt.Errorf("缺少标题文本"))
			}
			titleText = binding.Interpolate(args[0], data)
		case "color":
			if theme, err = parseTheme(args, theme, colors); err != nil {
				return GridConfig{}, Theme{}, commandError(cmd, err)
			}
		default:
			return GridConfig{}, Theme{}, commandError(cmd, fmt.Errorf("未知指令"))
		}
	}

	if titleLength < 0 {
		titleLength = utf8.RuneCountInString(titleText)
	}
	cfg.TitleLength = titleLength
	return cfg, theme, nil
}

func commandError(cmd *dsl.Command, err error) error {
	return fmt.Errorf("%s: 指令 %s 无效: %w", cmd.Pos, cmd.Name, err)
}

func argValues(args []*dsl.Lexeme) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		out = append(out, a.Value)
	}
	return out
}

// parseCell 解析 `cell W [H] [margin ...] [padding ...] [stroke v]`，W/H 为外尺寸。
func parseCell(args []string, d Defaults) (Box, error) {
	var size []float64
	margin, padding := Spacing{}, Spacing{}
	stroke := d.CellStroke

	i := 0
	for ; i < len(args) && isLength(args[i]) && len(size) < 2; i++ {
		size = append(size, parseMM(args[i]))
	}
	for i < len(args) {
		key := strings.ToLower(args[i])
		vals, next := collectLengths(args, i+1, 4)
		switch key {
		case "margin", "padding":
			sp, err := NewSpacing(vals...)
			if err != nil {
				return Box{}, fmt.Errorf("%s: %w", key, err)
			}
			if key == "margin" {
				margin = sp
			} else {
				padding = sp
			}
		case "stroke":
			if len(vals) != 1 {
				return Box{}, fmt.Errorf("stroke 需要 1 个长度")
			}
			stroke = vals[0]
		default:
			return Box{}, fmt.Errorf("未知参数 %q", args[i])
		}
		i = next
	}

	w, h := d.CellSize, d.CellSize
	switch len(size) {
	case 1:
		w, h = size[0], size[0]
	case 2:
		w, h = size[0], size[1]
	}
	box, err := NewBoxFromOuter(w, h, margin, padding, stroke)
	if err != nil {
		return Box{}, fmt.Errorf("格子尺寸 %gx%g 放不下 padding 与描边: %w", w, h, err)
	}
	return box, nil
}

// collectLengths 从 start 起最多收集 max 个长度值，遇到非长度的关键字即停止。
func collectLengths(args []string, start, max int) ([]float64, int) {
	var vals []float64
	j := start
	for ; j < len(args) && len(vals) < max; j++ {
		if !isLength(args[j]) {
			break
		}
		vals = append(vals, parseMM(args[j]))
	}
	return vals, j
}

func parseMM(value string) float64 {
	l, err := ParseLength(value)
	if err != nil {
		return 0
	}
	return l.ToMM()
}

func parseStyle(args []string) (Style, error) {
	if len(args) != 1 {
		return StyleNone, fmt.Errorf("style 需要 1 个参数")
	}
	switch strings.ToLower(args[0]) {
	case "none":
		return StyleNone, nil
	case "ruled":
		return StyleRuled, nil
	case "grid":
		return StyleGrid, nil
	default:
		return StyleNone, fmt.Errorf("不支持的样式 %q", args[0])
	}
}

func parseGuides(args []string) (Guides, error) {
	var g Guides
	for _, a := range args {
		switch strings.ToLower(a) {
		case "cross":
			g.Cross = true
		case "diagonal":
			g.Diagonal = true
		case "thirds":
			g.Thirds = true
		case "inner-box", "innerbox":
			g.InnerBox = true
		case "all":
			g = Guides{Cross: true, Diagonal: true, Thirds: true, InnerBox: true}
		case "none":
			g = Guides{}
		default:
			return Guides{}, fmt.Errorf("不支持的辅助线 %q", a)
		}
	}
	return g, nil
}

// parseTitle 解析 `title start|middle|end|none [length N]`；未给出 length 时返回 -1。
func parseTitle(args []string) (TitlePlacement, int, error) {
	if len(args) == 0 {
		return TitleNone, -1, fmt.Errorf("title 需要位置参数")
	}
	var placement TitlePlacement
	switch strings.ToLower(args[0]) {
	case "none":
		placement = TitleNone
	case "start":
		placement = TitleStart
	case "middle":
		placement = TitleMiddle
	case "end":
		placement = TitleEnd
	default:
		return TitleNone, -1, fmt.Errorf("不支持的标题位置 %q", args[0])
	}
	length := -1
	for i := 1; i < len(args); i++ {
		if strings.ToLower(args[i]) != "length" || i+1 >= len(args) {
			return TitleNone, -1, fmt.Errorf("未知参数 %q", args[i])
		}
		n, err := strconv.Atoi(args[i+1])
		if err != nil || n < 0 {
			return TitleNone, -1, fmt.Errorf("标题字数 %q 无效", args[i+1])
		}
		length = n
		i++
	}
	return placement, length, nil
}

// parseTheme 解析 `color <名称|#hex> [brighten f]`。
func parseTheme(args []string, theme Theme, colors map[string]Color) (Theme, error) {
	if len(args) == 0 {
		return theme, fmt.Errorf("color 需要颜色参数")
	}
	c, err := resolveColor(args[0], colors)
	if err != nil {
		return theme, err
	}
	theme.Ink = c
	for i := 1; i < len(args); i++ {
		if strings.ToLower(args[i]) != "brighten" || i+1 >= len(args) {
			return theme, fmt.Errorf("未知参数 %q", args[i])
		}
		f, err := strconv.ParseFloat(args[i+1], 64)
		if err != nil || f < 0 || f > 1 {
			return theme, fmt.Errorf("brighten 取值需在 0 到 1 之间: %q", args[i+1])
		}
		theme.Brighten = f
		i++
	}
	return theme, nil
}

func collectColors(sheet *dsl.Sheet) (map[string]Color, error) {
	colors := map[string]Color{}
	for _, section := range sheet.Sections {
		if section.Resources == nil || section.Resources.Block == nil {
			continue
		}
		for _, st := range section.Resources.Block.Statements {
			cmd := st.Command
			if cmd == nil || cmd.Name != "color" {
				continue
			}
			name, value := parseColorResource(cmd)
			if name == "" || value == "" {
				return nil, commandError(cmd, fmt.Errorf("颜色资源需要名称与取值"))
			}
			c, err := ParseColor(value)
			if err != nil {
				return nil, commandError(cmd, err)
			}
			colors[name] = c
		}
	}
	return colors, nil
}

func parseColorResource(cmd *dsl.Command) (string, string) {
	if len(cmd.Args) == 0 {
		return "", ""
	}
	name := cmd.Args[0].Value
	value := ""
	if len(cmd.Args) > 1 {
		value = cmd.Args[len(cmd.Args)-1].Value
	}
	return name, value
}

func collectMeta(sheet *dsl.Sheet, data any) DocumentMeta {
	meta := DocumentMeta{Creator: "genkouyoushi"}
	for _, section := range sheet.Sections {
		if section.Meta == nil || section.Meta.Block == nil {
			continue
		}
		for _, st := range section.Meta.Block.Statements {
			if st.Assignment == nil {
				continue
			}
			val := st.Assignment.Value
			switch st.Assignment.Key {
			case "title":
				meta.Title = valueToString(val, data)
			case "author":
				meta.Author = valueToString(val, data)
			case "subject":
				meta.Subject = valueToString(val, data)
			case "creator":
				meta.Creator = valueToString(val, data)
			case "keywords":
				meta.Keywords = valueToStringSlice(val, data)
			}
		}
	}
	return meta
}

func resolvePageSize(spec dsl.PageSpec) (float64, float64, error) {
	base, ok := pagePresets[strings.ToUpper(spec.Size)]
	if !ok {
		return 0, 0, fmt.Errorf("暂不支持的纸张尺寸：%s", spec.Size)
	}
	width, height := base[0], base[1]
	for _, token := range spec.Params {
		if token.Value == "landscape" {
			width, height = height, width
		}
	}
	return width, height, nil
}

var pagePresets = map[string][2]float64{
	"A3":     {297, 420},
	"A4":     {210, 297},
	"A5":     {148, 210},
	"B5":     {182, 257},
	"LETTER": {215.9, 279.4},
}

// resolvePagePadding 读取 page 头部的 `padding v1 [v2 [v3 [v4]]]`。
func resolvePagePadding(params []*dsl.Lexeme, fallback float64) (Spacing, error) {
	padding := Uniform(fallback)
	args := argValues(params)
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "padding", "margin":
			vals, next := collectLengths(args, i+1, 4)
			sp, err := NewSpacing(vals...)
			if err != nil {
				return Spacing{}, fmt.Errorf("page %s: %w", args[i], err)
			}
			padding = sp
			i = next - 1
		case "portrait", "landscape":
		default:
			return Spacing{}, fmt.Errorf("page 未知参数 %q", args[i])
		}
	}
	return padding, nil
}

func resolveColor(value string, colors map[string]Color) (Color, error) {
	if c, ok := colors[value]; ok {
		return c, nil
	}
	if strings.HasPrefix(value, "#") {
		return ParseColor(value)
	}
	return Color{}, fmt.Errorf("未定义的颜色 %s", value)
}

// ParseColor 解析 #rgb / #rrggbb / #rrggbbaa（忽略 alpha）。
func ParseColor(value string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(value), "#")
	switch len(hex) {
	case 3:
		hex = strings.Repeat(hex[0:1], 2) + strings.Repeat(hex[1:2], 2) + strings.Repeat(hex[2:3], 2)
	case 6, 8:
	default:
		return Color{}, fmt.Errorf("颜色值 %s 无法解析", value)
	}
	v, err := strconv.ParseUint(hex[:6], 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("颜色值 %s 无法解析: %w", value, err)
	}
	return Color{R: int(v >> 16 & 0xff), G: int(v >> 8 & 0xff), B: int(v & 0xff)}, nil
}

// Hex 返回 #rrggbb 形式。
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", clampByte(c.R), clampByte(c.G), clampByte(c.B))
}

func clampByte(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

func valueToString(val *dsl.Value, data any) string {
	if val == nil {
		return ""
	}
	switch {
	case val.String != nil:
		s := string(*val.String)
		if !binding.HasPlaceholder(s) {
			return s
		}
		return binding.Interpolate(s, data)
	case val.Number != nil:
		return *val.Number
	case val.Color != nil:
		return *val.Color
	case val.Expr != nil:
		parts := make([]string, 0, len(val.Expr.Parts))
		for _, p := range val.Expr.Parts {
			parts = append(parts, p.Value)
		}
		path := strings.Join(parts, "")
		if v, ok := binding.Resolve(data, path); ok {
			return fmt.Sprint(v)
		}
		return path
	default:
		return ""
	}
}

func valueToStringSlice(val *dsl.Value, data any) []string {
	if val == nil {
		return nil
	}
	if val.Array == nil {
		if s := valueToString(val, data); s != "" {
			return []string{s}
		}
		return nil
	}
	out := make([]string, 0, len(val.Array.Values))
	for _, v := range val.Array.Values {
		if s := valueToString(v, data); s != "" {
			out = append(out, s)
		}
	}
	return out
}

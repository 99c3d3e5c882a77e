package layout

import (
	"strings"
	"testing"

	json "github.com/json-iterator/go"

	"github.com/spectraldani/genkouyoushi/dsl"
)

// buildSheet 是测试辅助：用给定稿纸文本与 JSON 数据构建结果。
func buildSheet(t *testing.T, text, dataJSON string) *Result {
	t.Helper()
	res, err := tryBuildSheet(text, dataJSON)
	if err != nil {
		t.Fatalf("构建失败: %v", err)
	}
	return res
}

func tryBuildSheet(text, dataJSON string) (*Result, error) {
	sheet, err := dsl.Parse(strings.NewReader(text))
	if err != nil {
		return nil, err
	}
	var data any
	if dataJSON != "" {
		if err := json.Unmarshal([]byte(dataJSON), &data); err != nil {
			return nil, err
		}
	}
	return Build(sheet, data, BuildOptions{})
}

const practiceSheet = `
sheet Practice v1 {
  meta {
    title: "${student} 練習"
    author: data.teacher
    keywords: ["kanji", "${grade}"]
  }
  resources {
    color Ink = #336699
  }
  page A4 portrait padding 10mm {
    cell 10mm margin 0 2mm padding 1mm stroke 0.3mm
    style grid
    guides cross diagonal inner-box
    title middle length 8
    color Ink brighten 0.5
  }
}
`

func TestBuildPracticeSheet(t *testing.T) {
	res := buildSheet(t, practiceSheet, `{"student":"山田","teacher":"佐藤","grade":3}`)
	plan := res.Plan

	if !eq(plan.Page.InnerWidth, 190) || !eq(plan.Page.InnerHeight, 277) {
		t.Fatalf("页面内容区错误: %gx%g", plan.Page.InnerWidth, plan.Page.InnerHeight)
	}
	if !eq(plan.Cell.OuterWidth(), 10) || !eq(plan.Cell.StrokeWidth, 0.3) {
		t.Fatalf("格子尺寸错误: %+v", plan.Cell)
	}
	if plan.Cell.Margin != (Spacing{Top: 0, Right: 2, Bottom: 0, Left: 2}) {
		t.Fatalf("格子 margin 错误: %+v", plan.Cell.Margin)
	}
	if plan.Cell.Padding != Uniform(1) {
		t.Fatalf("格子 padding 错误: %+v", plan.Cell.Padding)
	}
	if plan.Style != StyleGrid || plan.Guides != (Guides{Cross: true, Diagonal: true, InnerBox: true}) {
		t.Fatalf("样式或辅助线错误: %v %+v", plan.Style, plan.Guides)
	}
	if plan.Title != TitleMiddle || plan.TitleLength != 8 {
		t.Fatalf("标题错误: %v %d", plan.Title, plan.TitleLength)
	}
	// 首列 14mm，后续列 11.7mm：(190-38)/11.7 → 12 个（偶数），共 14 个普通列 + 标题列
	if plan.Columns != 15 || plan.TitleIndex != 7 {
		t.Fatalf("列数错误: columns=%d titleIndex=%d", plan.Columns, plan.TitleIndex)
	}
	if plan.Rows != 28 {
		t.Fatalf("行数错误: %d", plan.Rows)
	}

	if res.Theme.Ink != (Color{R: 0x33, G: 0x66, B: 0x99}) || res.Theme.Brighten != 0.5 {
		t.Fatalf("配色错误: %+v", res.Theme)
	}
	if res.Meta.Title != "山田 練習" || res.Meta.Author != "佐藤" {
		t.Fatalf("元信息错误: %+v", res.Meta)
	}
	if strings.Join(res.Meta.Keywords, ",") != "kanji,3" {
		t.Fatalf("关键词错误: %v", res.Meta.Keywords)
	}
}

// TestTitleTextSetsLength 未给出 length 时，标题字数取 title-text 插值后的字符数。
func TestTitleTextSetsLength(t *testing.T) {
	text := `sheet T v1 {
  page A4 {
    title start
    title-text "${student}"
  }
}`
	res := buildSheet(t, text, `{"student":"山田花子"}`)
	if res.Plan.TitleLength != 4 {
		t.Fatalf("标题字数应为 4，实际 %d", res.Plan.TitleLength)
	}
	if res.Plan.Title != TitleStart || res.Plan.TitleIndex != 0 {
		t.Fatalf("标题位置错误: %v index=%d", res.Plan.Title, res.Plan.TitleIndex)
	}
	if res.Meta.Title != "T" {
		t.Fatalf("缺省标题应取稿纸名称，实际 %q", res.Meta.Title)
	}
}

// TestResolvePagePaddingVariants 验证 padding 参数支持 1~4 个值的语义。
func TestResolvePagePaddingVariants(t *testing.T) {
	get := func(spec string) Spacing {
		res := buildSheet(t, "sheet T v1 {\n page "+spec+" {\n style none\n }\n}", "")
		return res.Plan.Page.Padding
	}

	if p := get("A4 portrait padding 10mm"); p != Uniform(10) {
		t.Fatalf("1 值语义错误: %+v", p)
	}
	if p := get("A4 portrait padding 10mm 5mm"); p != (Spacing{Top: 10, Right: 5, Bottom: 10, Left: 5}) {
		t.Fatalf("2 值语义错误: %+v", p)
	}
	if p := get("A4 portrait padding 12mm 8mm 6mm"); p != (Spacing{Top: 12, Right: 8, Bottom: 6, Left: 8}) {
		t.Fatalf("3 值语义错误: %+v", p)
	}
	p := get("A4 padding 1cm 5mm 2cm 3mm") // 含不同单位
	if !(eq(p.Top, 10) && eq(p.Right, 5) && eq(p.Bottom, 20) && eq(p.Left, 3)) {
		t.Fatalf("4 值语义错误: %+v", p)
	}
	if p := get("A5"); p != Uniform(10) {
		t.Fatalf("缺省 padding 应为 10mm: %+v", p)
	}
}

// TestBuildOptionsDefaults 验证零值选项取内置默认值，显式选项原样保留。
func TestBuildOptionsDefaults(t *testing.T) {
	sheet, err := dsl.Parse(strings.NewReader("sheet T v1 {\n page A5 {\n style grid\n }\n}"))
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}

	res, err := Build(sheet, nil, BuildOptions{})
	if err != nil {
		t.Fatalf("构建失败: %v", err)
	}
	base := DefaultDefaults()
	if res.Plan.Page.Padding != Uniform(10) {
		t.Fatalf("零值选项的 padding 应为 10mm: %+v", res.Plan.Page.Padding)
	}
	if res.Theme.Ink != base.Ink || res.Theme.Brighten != 0.6 {
		t.Fatalf("零值选项的主题错误: %+v", res.Theme)
	}

	explicit := Defaults{Ink: Color{}, Brighten: 0, PagePadding: 0, CellSize: 8, CellStroke: 0.2}
	res, err = Build(sheet, nil, BuildOptions{Defaults: explicit})
	if err != nil {
		t.Fatalf("构建失败: %v", err)
	}
	if res.Plan.Page.Padding != Uniform(0) {
		t.Fatalf("显式 padding 0 不应被覆盖: %+v", res.Plan.Page.Padding)
	}
	if res.Theme.Brighten != 0 || res.Theme.Ink != (Color{}) {
		t.Fatalf("显式 brighten 0 与黑色墨色不应被覆盖: %+v", res.Theme)
	}
	if !eq(res.Plan.Cell.OuterWidth(), 8) || !eq(res.Plan.Cell.StrokeWidth, 0.2) {
		t.Fatalf("显式格子默认值未生效: %g stroke=%g", res.Plan.Cell.OuterWidth(), res.Plan.Cell.StrokeWidth)
	}

	res, err = Build(sheet, nil, BuildOptions{Defaults: Defaults{Brighten: 3, PagePadding: -1, CellSize: -2, CellStroke: -1}})
	if err != nil {
		t.Fatalf("构建失败: %v", err)
	}
	if res.Theme.Brighten != 1 || res.Plan.Page.Padding != Uniform(0) || !eq(res.Plan.Cell.OuterWidth(), base.CellSize) {
		t.Fatalf("越界默认值应被修正: brighten=%g padding=%+v cell=%g", res.Theme.Brighten, res.Plan.Page.Padding, res.Plan.Cell.OuterWidth())
	}
}

func TestLandscape(t *testing.T) {
	res := buildSheet(t, "sheet T v1 {\n page A4 landscape padding 0 {\n }\n}", "")
	if !eq(res.Plan.Page.OuterWidth(), 297) || !eq(res.Plan.Page.OuterHeight(), 210) {
		t.Fatalf("横向纸张尺寸错误: %gx%g", res.Plan.Page.OuterWidth(), res.Plan.Page.OuterHeight())
	}
}

func TestCellRectangular(t *testing.T) {
	res := buildSheet(t, "sheet T v1 {\n page A4 {\n cell 8mm 12mm stroke 0.5mm\n style ruled\n }\n}", "")
	c := res.Plan.Cell
	if !eq(c.OuterWidth(), 8) || !eq(c.OuterHeight(), 12) || !eq(c.StrokeWidth, 0.5) {
		t.Fatalf("格子尺寸错误: %gx%g stroke=%g", c.OuterWidth(), c.OuterHeight(), c.StrokeWidth)
	}
	if res.Plan.Style != StyleRuled {
		t.Fatalf("样式应为 ruled")
	}
}

func TestBuildErrors(t *testing.T) {
	cases := []struct{ name, text string }{
		{"纸张尺寸", "sheet T v1 {\n page Z9 {\n }\n}"},
		{"未知指令", "sheet T v1 {\n page A4 {\n shade dark\n }\n}"},
		{"未定义颜色", "sheet T v1 {\n page A4 {\n color Nope\n }\n}"},
		{"样式", "sheet T v1 {\n page A4 {\n style dotted\n }\n}"},
		{"辅助线", "sheet T v1 {\n page A4 {\n guides stars\n }\n}"},
		{"标题位置", "sheet T v1 {\n page A4 {\n title top\n }\n}"},
		{"margin", "sheet T v1 {\n page A4 {\n cell 10mm margin 1 2 3 4 5\n }\n}"},
		{"格子过小", "sheet T v1 {\n page A4 {\n cell 1mm padding 1mm\n }\n}"},
		{"brighten", "sheet T v1 {\n page A4 {\n color #000 brighten 2\n }\n}"},
		{"缺少 page", "sheet T v1 {\n meta {\n title: \"x\"\n }\n}"},
	}
	for _, tc := range cases {
		if _, err := tryBuildSheet(tc.text, ""); err == nil {
			t.Fatalf("%s: 期望构建失败", tc.name)
		}
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#abc")
	if err != nil || c != (Color{R: 0xaa, G: 0xbb, B: 0xcc}) {
		t.Fatalf("#abc 解析错误: %+v %v", c, err)
	}
	c, err = ParseColor("#11223344")
	if err != nil || c.Hex() != "#112233" {
		t.Fatalf("#11223344 解析错误: %+v %v", c, err)
	}
	if _, err := ParseColor("#12"); err == nil {
		t.Fatalf("期望 #12 解析失败")
	}
	if _, err := ParseColor("#zzzzzz"); err == nil {
		t.Fatalf("期望 #zzzzzz 解析失败")
	}
}

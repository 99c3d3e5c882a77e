package layout

// 该文件定义布局结果，供渲染与调试 JSON 共用。

// Result 保存一次构建得到的版面方案、配色与文档元信息。
type Result struct {
	Plan  *Plan        `json:"plan"`
	Theme Theme        `json:"theme"`
	Meta  DocumentMeta `json:"meta"`
}

// Theme 描述线条配色。辅助线与合并分隔线的颜色由 Ink 按 Brighten 系数向白色提亮得到。
type Theme struct {
	Ink      Color   `json:"ink"`
	Brighten float64 `json:"brighten"`
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// DocumentMeta 保存输出文档的元信息。
type DocumentMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}

// Style 决定格子的绘制方式。
type Style int

const (
	StyleNone  Style = iota // 只画格子边框
	StyleRuled              // 竖线稿纸：每列一个通高矩形，无横向分隔
	StyleGrid               // 格子内按 Guides 绘制辅助线
)

func (s Style) String() string {
	switch s {
	case StyleRuled:
		return "ruled"
	case StyleGrid:
		return "grid"
	default:
		return "none"
	}
}

func (s Style) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Guides 是格内辅助线策略。
type Guides struct {
	Cross    bool `json:"cross"`
	Diagonal bool `json:"diagonal"`
	Thirds   bool `json:"thirds"`
	InnerBox bool `json:"innerBox"`
}

// Any 报告是否启用了任何辅助线。
func (g Guides) Any() bool { return g.Cross || g.Diagonal || g.Thirds || g.InnerBox }

// TitlePlacement 是标题列在列序列中的位置。
type TitlePlacement int

const (
	TitleNone TitlePlacement = iota
	TitleStart
	TitleMiddle
	TitleEnd
)

func (t TitlePlacement) String() string {
	switch t {
	case TitleStart:
		return "start"
	case TitleMiddle:
		return "middle"
	case TitleEnd:
		return "end"
	default:
		return "none"
	}
}

func (t TitlePlacement) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// PlacementKind 区分方案中的元素类型。
type PlacementKind int

const (
	KindCell   PlacementKind = iota // 单个格子
	KindColumn                      // ruled 样式下的通高列
	KindTitle                       // 标题列
)

func (k PlacementKind) String() string {
	switch k {
	case KindColumn:
		return "column"
	case KindTitle:
		return "title"
	default:
		return "cell"
	}
}

func (k PlacementKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Edge 描述格子某一边的画法。
type Edge int

const (
	EdgeSolid  Edge = iota // 实线，由本元素绘制
	EdgeMerged             // 与前一个元素共用的分隔线，由本元素以虚线、浅色绘制一次
	EdgeShared             // 与后一个元素共用，本元素跳过，由后者绘制
)

func (e Edge) String() string {
	switch e {
	case EdgeMerged:
		return "merged"
	case EdgeShared:
		return "shared"
	default:
		return "solid"
	}
}

func (e Edge) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

// Edges 按上、右、下、左记录四条边的画法。
type Edges struct {
	Top    Edge `json:"top"`
	Right  Edge `json:"right"`
	Bottom Edge `json:"bottom"`
	Left   Edge `json:"left"`
}

// AllSolid 报告四边是否都是实线，此时可直接画一个矩形。
func (e Edges) AllSolid() bool {
	return e.Top == EdgeSolid && e.Right == EdgeSolid && e.Bottom == EdgeSolid && e.Left == EdgeSolid
}

// Placement 是方案中的一个元素，坐标为外框左上角的页面坐标（mm）。
type Placement struct {
	Kind       PlacementKind `json:"kind"`
	Row        int           `json:"row"`
	Column     int           `json:"column"`
	X          float64       `json:"x"`
	Y          float64       `json:"y"`
	Width      float64       `json:"width"`
	Height     float64       `json:"height"`
	FirstRow   bool          `json:"firstRow"`
	LastRow    bool          `json:"lastRow"`
	FirstInRun bool          `json:"firstInRun"`
	LastInRun  bool          `json:"lastInRun"`
	Edges      Edges         `json:"edges"`
}

// Plan 是布局引擎的输出：行列数、占用尺寸与每个元素的位置。
type Plan struct {
	Page  Box   `json:"page"`
	Cell  Box   `json:"cell"` // 样式调整后实际使用的格子
	Style Style `json:"style"`

	Guides     Guides    `json:"guides"`
	CellGuides []Segment `json:"cellGuides,omitempty"`

	Title        TitlePlacement `json:"title"`
	TitleLength  int            `json:"titleLength"`
	TitleDropped bool           `json:"titleDropped,omitempty"`
	TitleIndex   int            `json:"titleIndex"`

	Rows          int     `json:"rows"`
	Columns       int     `json:"columns"` // 含标题列
	ContentWidth  float64 `json:"contentWidth"`
	ContentHeight float64 `json:"contentHeight"`
	OffsetX       float64 `json:"offsetX"` // 居中留白，相对页面内容区
	OffsetY       float64 `json:"offsetY"`

	Placements []Placement `json:"placements"`
}

// Empty 报告方案是否没有任何可绘制元素。
func (p *Plan) Empty() bool { return p == nil || len(p.Placements) == 0 }

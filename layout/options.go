package layout

// BuildOptions 配置构建阶段的默认值，通常来自应用配置。
type BuildOptions struct {
	Defaults Defaults
}

// Defaults 是稿纸文件未显式指定时使用的取值（长度单位 mm）。
type Defaults struct {
	Ink         Color
	Brighten    float64 // 辅助线向白色提亮的比例，0..1
	PagePadding float64
	CellSize    float64
	CellStroke  float64
}

// DefaultDefaults 返回内置默认值。
func DefaultDefaults() Defaults {
	return Defaults{
		Ink:         Color{R: 0x4a, G: 0x7e, B: 0xbb},
		Brighten:    0.6,
		PagePadding: 10,
		CellSize:    10,
		CellStroke:  0.3,
	}
}

// defaults 返回生效的默认值。零值 BuildOptions 取内置默认值；
// 否则保留调用方的取值（包括黑色墨色与 0 提亮），只修正越界的数值。
func (o BuildOptions) defaults() Defaults {
	base := DefaultDefaults()
	if o.Defaults == (Defaults{}) {
		return base
	}
	d := o.Defaults
	if d.Brighten < 0 {
		d.Brighten = 0
	} else if d.Brighten > 1 {
		d.Brighten = 1
	}
	if d.PagePadding < 0 {
		d.PagePadding = 0
	}
	if d.CellSize <= 0 {
		d.CellSize = base.CellSize
	}
	if d.CellStroke < 0 {
		d.CellStroke = base.CellStroke
	}
	return d
}

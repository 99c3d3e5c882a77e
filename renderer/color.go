package renderer

import (
	"math"

	"github.com/spectraldani/genkouyoushi/layout"
)

// Brighten 将颜色按 factor 向白色混合：0 保持原色，1 为白色。
func Brighten(c layout.Color, factor float64) layout.Color {
	factor = math.Max(0, math.Min(1, factor))
	mix := func(v int) int {
		return int(math.Round(float64(v) + (255-float64(v))*factor))
	}
	return layout.Color{R: mix(c.R), G: mix(c.G), B: mix(c.B)}
}

// BrightenHex 是 Brighten 的十六进制字符串版本。
func BrightenHex(hex string, factor float64) (string, error) {
	c, err := layout.ParseColor(hex)
	if err != nil {
		return "", err
	}
	return Brighten(c, factor).Hex(), nil
}

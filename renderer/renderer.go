package renderer

// Renderer 将场景输出为最终文件，例如 SVG、PDF 或 PNG。
// Render 返回生成的字节数据以及可能的错误。
type Renderer interface {
	Render(scene *Scene) ([]byte, error)
}

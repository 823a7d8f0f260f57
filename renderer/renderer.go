package renderer

// Renderer 将 LaTeX 公式输出为预览文件，例如 PDF 或 SVG。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(formula string) ([]byte, error)
}

package canvasrenderer

import (
	"bytes"
	"fmt"
	stdcolor "image/color"
	"io"
	"log/slog"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/svg"

	"github.com/ByLCY/texatom/color"
	"github.com/ByLCY/texatom/renderer"
)

const (
	FormatPDF = "pdf"
	FormatSVG = "svg"

	defaultMargin = 2.0 // mm
)

// Renderer typesets formulas via github.com/tdewolff/canvas.
type Renderer struct {
	format string
	margin float64
	scale  float64
	color  string
	colors *color.Resolver
	log    *slog.Logger
}

var _ renderer.Renderer = (*Renderer)(nil)

// Options configures the canvas renderer.
type Options struct {
	Format string  // pdf（默认）或 svg
	Margin float64 // 页边距，单位 mm
	Scale  float64 // 公式缩放倍数，默认 1
	Color  string  // 前景色，接受颜色名、#rgb、#rrggbb 或 rgb(r,g,b)
	Colors *color.Resolver
	Logger *slog.Logger
}

// NewRenderer creates a renderer, filling unset options with defaults.
func NewRenderer(opts Options) *Renderer {
	r := &Renderer{
		format: strings.ToLower(strings.TrimSpace(opts.Format)),
		margin: opts.Margin,
		scale:  opts.Scale,
		color:  opts.Color,
		colors: opts.Colors,
		log:    opts.Logger,
	}
	if r.format == "" {
		r.format = FormatPDF
	}
	if r.margin <= 0 {
		r.margin = defaultMargin
	}
	if r.scale <= 0 {
		r.scale = 1
	}
	if r.colors == nil {
		r.colors = color.Default()
	}
	if r.log == nil {
		r.log = slog.Default()
	}
	return r
}

// Render typesets formula and returns the encoded page.
func (r *Renderer) Render(formula string) ([]byte, error) {
	formula = strings.TrimSpace(formula)
	if formula == "" {
		return nil, fmt.Errorf("公式为空")
	}
	newWriter, err := writerFor(r.format)
	if err != nil {
		return nil, err
	}

	path, err := canvas.ParseLaTeX("$" + formula + "$")
	if err != nil {
		return nil, fmt.Errorf("排版公式失败: %w", err)
	}
	if r.scale != 1 {
		path = path.Scale(r.scale, r.scale)
	}

	c := canvas.New(0, 0)
	ctx := canvas.NewContext(c)
	ctx.SetFillColor(r.fill())
	ctx.DrawPath(0, 0, path)
	// 页面尺寸取路径包围盒加页边距
	c.Fit(r.margin)
	r.log.Debug("typeset formula", "format", r.format, "width", c.W, "height", c.H)

	var buf bytes.Buffer
	w := newWriter(&buf, c.W, c.H)
	c.RenderTo(w)
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("写入 %s 失败: %w", strings.ToUpper(r.format), err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) fill() stdcolor.Color {
	if r.color == "" {
		return canvas.Black
	}
	c, ok := r.colors.Parse(r.color)
	if !ok {
		r.log.Warn("unknown color, using black", "color", r.color)
		return canvas.Black
	}
	return c.Clamped()
}

type pageWriter interface {
	canvas.Renderer
	Close() error
}

func writerFor(format string) (func(w io.Writer, width, height float64) pageWriter, error) {
	switch format {
	case FormatPDF:
		return func(w io.Writer, width, height float64) pageWriter {
			return pdf.New(w, width, height, nil)
		}, nil
	case FormatSVG:
		return func(w io.Writer, width, height float64) pageWriter {
			return svg.New(w, width, height, nil)
		}, nil
	}
	return nil, fmt.Errorf("不支持的输出格式 %q（可选 pdf、svg）", format)
}

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/ByLCY/texatom/color"
	"github.com/ByLCY/texatom/latex"
	"github.com/ByLCY/texatom/renderer"
	canvasrenderer "github.com/ByLCY/texatom/renderer/canvas"
)

func render(cfg *RenderConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Render.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Out == "" {
		return fmt.Errorf("%w: render 需要 -o 输出路径", cli.ErrUsage)
	}
	inputs, err := readInputs(cc.In, args)
	if err != nil {
		return err
	}
	if len(inputs) != 1 {
		return fmt.Errorf("%w: render 仅支持一个输入", cli.ErrUsage)
	}
	// 预览只能排版纯 TeX，宏必须先展开
	formula, err := cfg.serialize(inputs[0].text, latex.ExpandMacro(true))
	if err != nil {
		return fmt.Errorf("解析 %s 失败: %w", inputs[0].name, err)
	}

	format := cfg.Format
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(cfg.Out), ".")
	}
	var r renderer.Renderer = canvasrenderer.NewRenderer(canvasrenderer.Options{
		Format: format,
		Margin: cfg.Margin,
		Scale:  cfg.Scale,
		Color:  cfg.Color,
		Colors: color.Default(),
		Logger: cfg.logger(),
	})
	data, err := r.Render(formula)
	if err != nil {
		return fmt.Errorf("渲染预览失败: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Out), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(cfg.Out, data, 0o644); err != nil {
		return fmt.Errorf("写入 %s 失败: %w", cfg.Out, err)
	}
	fmt.Fprintf(cc.Out, "已生成预览：%s\n", cfg.Out)
	return nil
}

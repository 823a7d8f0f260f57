package main

import (
	"fmt"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/ByLCY/texatom/atom"
	"github.com/ByLCY/texatom/latex"
	"github.com/ByLCY/texatom/parse"
)

func latexCmd(cfg *LatexConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Latex.Parse(cc, args)
	if err != nil {
		return err
	}
	inputs, err := readInputs(cc.In, args)
	if err != nil {
		return err
	}
	for _, in := range inputs {
		out, err := cfg.serialize(in.text)
		if err != nil {
			return fmt.Errorf("解析 %s 失败: %w", in.name, err)
		}
		fmt.Fprintln(cc.Out, out)
	}
	return nil
}

func tree(cfg *TreeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Tree.Parse(cc, args)
	if err != nil {
		return err
	}
	inputs, err := readInputs(cc.In, args)
	if err != nil {
		return err
	}
	for i, in := range inputs {
		root, err := parse.Parse(in.text, cfg.parseOpts()...)
		if err != nil {
			return fmt.Errorf("解析 %s 失败: %w", in.name, err)
		}
		if i > 0 && !cfg.JSON {
			fmt.Fprintln(cc.Out, "---")
		}
		if err := atom.WriteTree(cc.Out, root, cfg.JSON); err != nil {
			return err
		}
	}
	return nil
}

func emit(cfg *EmitConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Emit.Parse(cc, args)
	if err != nil {
		return err
	}
	inputs, err := readInputs(cc.In, args)
	if err != nil {
		return err
	}
	for _, in := range inputs {
		root, err := atom.ReadTree(strings.NewReader(in.text))
		if err != nil {
			return fmt.Errorf("读取原子树 %s 失败: %w", in.name, err)
		}
		fmt.Fprintln(cc.Out, latex.FromAtom(root, cfg.latexOpts()...))
	}
	return nil
}

package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "texatom").
		WithSynopsis("texatom [-x] [-nostyles] [-macros file] [-v] command [opts]").
		WithDescription("texatom parses LaTeX formulas into atom trees and serializes them back.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return texatomMain(cfg, cc, args)
		}).
		WithSubs(
			LatexCommand(cfg),
			TreeCommand(cfg),
			EmitCommand(cfg),
			DiffCommand(cfg),
			RenderCommand(cfg))
}

func LatexCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &LatexConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Latex, "latex").
		WithAliases("l").
		WithSynopsis("latex [files]").
		WithDescription("parse formulas and print their serialization").
		WithRun(func(cc *cli.Context, args []string) error {
			return latexCmd(cfg, cc, args)
		})
}

func TreeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &TreeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Tree, "tree").
		WithAliases("t").
		WithSynopsis("tree [-j] [files]").
		WithDescription("print the atom tree of formulas as YAML or JSON").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return tree(cfg, cc, args)
		})
}

func EmitCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &EmitConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Emit, "emit").
		WithAliases("e").
		WithSynopsis("emit [files]").
		WithDescription("read YAML or JSON atom trees and print LaTeX").
		WithRun(func(cc *cli.Context, args []string) error {
			return emit(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d").
		WithSynopsis("diff [-color] [files]").
		WithDescription("show how the resynthesized LaTeX differs from the input").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func RenderCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RenderConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts,
		&cli.Opt{
			Name:        "margin",
			Description: "page margin in mm",
			Type:        cli.NamedFuncOpt(floatFunc(&cfg.Margin), "(mm)"),
		},
		&cli.Opt{
			Name:        "scale",
			Description: "scale factor",
			Type:        cli.NamedFuncOpt(floatFunc(&cfg.Scale), "(factor)"),
		})
	return cli.NewCommandAt(&cfg.Render, "render").
		WithAliases("r").
		WithSynopsis("render -o out [-f pdf|svg] [files]").
		WithDescription("typeset formulas into a PDF or SVG preview").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return render(cfg, cc, args)
		})
}

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/ByLCY/texatom/latex"
	"github.com/ByLCY/texatom/macro"
	"github.com/ByLCY/texatom/parse"
)

type MainConfig struct {
	X        bool   `cli:"name=x desc='expand macros when serializing'"`
	NoStyles bool   `cli:"name=nostyles desc='omit style commands from the output'"`
	Macros   string `cli:"name=macros desc='YAML macro table merged over the built-in macros'"`
	Verbose  bool   `cli:"name=v desc='log debug messages to stderr'"`

	Table macro.Table
	Log   *slog.Logger

	Main *cli.Command
}

// setup loads the macro table and builds the logger once the global
// options are parsed.
func (cfg *MainConfig) setup() error {
	cfg.Log = newLogger(os.Stderr, cfg.Verbose)
	cfg.Table = macro.Default()
	if cfg.Macros == "" {
		return nil
	}
	f, err := os.Open(cfg.Macros)
	if err != nil {
		return fmt.Errorf("无法打开宏文件 %s: %w", cfg.Macros, err)
	}
	defer f.Close()
	t, err := macro.Load(f)
	if err != nil {
		return fmt.Errorf("解析宏文件 %s 失败: %w", cfg.Macros, err)
	}
	cfg.Table = cfg.Table.Merge(t)
	cfg.Log.Debug("loaded macros", "file", cfg.Macros, "count", len(t))
	return nil
}

func (cfg *MainConfig) logger() *slog.Logger {
	if cfg.Log == nil {
		cfg.Log = newLogger(os.Stderr, cfg.Verbose)
	}
	return cfg.Log
}

func (cfg *MainConfig) parseOpts() []parse.Option {
	res := []parse.Option{parse.WithLogger(cfg.logger())}
	if cfg.Table != nil {
		res = append(res, parse.WithMacros(cfg.Table))
	}
	return res
}

func (cfg *MainConfig) latexOpts() []latex.Option {
	return []latex.Option{
		latex.ExpandMacro(cfg.X),
		latex.OutputStyles(!cfg.NoStyles),
		latex.WithLogger(cfg.logger()),
	}
}

type LatexConfig struct {
	*MainConfig

	Latex *cli.Command
}

type TreeConfig struct {
	*MainConfig
	JSON bool `cli:"name=j aliases=json desc='print the tree as JSON'"`

	Tree *cli.Command
}

type EmitConfig struct {
	*MainConfig

	Emit *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Color bool `cli:"name=color desc='color the diff'"`

	Diff *cli.Command
}

// colorize reports whether diff output to w is colored: always with
// -color, otherwise only when w is a terminal.
func (cfg *DiffConfig) colorize(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	for _, opt := range cfg.Diff.Opts {
		if opt.Name == "color" && opt.Value != nil {
			return false
		}
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type RenderConfig struct {
	*MainConfig
	Out    string `cli:"name=o desc='output file'"`
	Format string `cli:"name=f aliases=format desc='output format: pdf or svg'"`
	Color  string `cli:"name=color desc='foreground color'"`

	Margin, Scale float64

	Render *cli.Command
}

func floatFunc(fp *float64) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return nil, fmt.Errorf("%w: invalid number %q", cli.ErrUsage, v)
		}
		*fp = f
		return f, nil
	})
}

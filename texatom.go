package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/ByLCY/texatom/latex"
	"github.com/ByLCY/texatom/parse"
)

func texatomMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if err := cfg.setup(); err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

// input is one formula source: a file, or stdin under the name "-".
type input struct {
	name string
	text string
}

func readInputs(stdin io.Reader, files []string) ([]input, error) {
	if len(files) == 0 {
		files = []string{"-"}
	}
	res := make([]input, 0, len(files))
	for _, file := range files {
		var (
			data []byte
			err  error
		)
		if file == "-" {
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(file)
		}
		if err != nil {
			return nil, fmt.Errorf("读取 %s 失败: %w", file, err)
		}
		res = append(res, input{name: file, text: strings.TrimSpace(string(data))})
	}
	return res, nil
}

// serialize parses src and prints it back with the global options plus extra.
func (cfg *MainConfig) serialize(src string, extra ...latex.Option) (string, error) {
	root, err := parse.Parse(src, cfg.parseOpts()...)
	if err != nil {
		return "", err
	}
	return latex.FromAtom(root, append(cfg.latexOpts(), extra...)...), nil
}

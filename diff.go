package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/ByLCY/texatom/latex"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	inputs, err := readInputs(cc.In, args)
	if err != nil {
		return err
	}
	colored := cfg.colorize(cc.Out)
	for _, in := range inputs {
		out, err := cfg.serialize(in.text, latex.ExpandMacro(true))
		if err != nil {
			return fmt.Errorf("解析 %s 失败: %w", in.name, err)
		}
		if err := writeDiff(cc.Out, in.text, out, colored); err != nil {
			return err
		}
	}
	return nil
}

// writeDiff prints from with deletions as [-x-] and insertions as {+x+}.
func writeDiff(w io.Writer, from, to string, colored bool) error {
	dmp := diffpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(from, to, false))

	del, ins := fmt.Sprint, fmt.Sprint
	if colored {
		red, green := color.New(color.FgRed), color.New(color.FgGreen)
		red.EnableColor()
		green.EnableColor()
		del, ins = red.SprintFunc(), green.SprintFunc()
	}
	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffpatch.DiffEqual:
			b.WriteString(d.Text)
		case diffpatch.DiffDelete:
			b.WriteString(del("[-" + d.Text + "-]"))
		case diffpatch.DiffInsert:
			b.WriteString(ins("{+" + d.Text + "+}"))
		}
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

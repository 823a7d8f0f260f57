package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteDiff(t *testing.T) {
	var buf bytes.Buffer
	if err := writeDiff(&buf, "ab", "ac", false); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "a[-b-]{+c+}\n" {
		t.Fatalf("got %q", got)
	}
}

func TestWriteDiffUnchanged(t *testing.T) {
	var buf bytes.Buffer
	if err := writeDiff(&buf, `x^{2}`, `x^{2}`, true); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "x^{2}\n" {
		t.Fatalf("got %q", got)
	}
}

// -color 时即使不是终端也要输出转义序列。
func TestWriteDiffColored(t *testing.T) {
	var buf bytes.Buffer
	if err := writeDiff(&buf, "ab", "ac", true); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "\x1b[31m") || !strings.Contains(out, "\x1b[32m") {
		t.Fatalf("missing color codes: %q", out)
	}
}

func TestReadInputs(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.tex")
	if err := os.WriteFile(file, []byte("\\frac12\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	inputs, err := readInputs(strings.NewReader(" x \n"), []string{file, "-"})
	if err != nil {
		t.Fatal(err)
	}
	if len(inputs) != 2 || inputs[0].text != `\frac12` || inputs[1].text != "x" || inputs[1].name != "-" {
		t.Fatalf("inputs: %+v", inputs)
	}
	if _, err := readInputs(nil, []string{filepath.Join(dir, "missing")}); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestSerializeWithMacroFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "macros.yaml")
	if err := os.WriteFile(file, []byte("RR: {def: '\\mathbb{R}'}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := &MainConfig{Macros: file, X: true}
	if err := cfg.setup(); err != nil {
		t.Fatal(err)
	}
	got, err := cfg.serialize(`\RR+\N`)
	if err != nil {
		t.Fatal(err)
	}
	if got != `{\mathbb{R}}+{\mathbb{N}}` {
		t.Fatalf("got %q", got)
	}

	cfg.X = false
	if got, _ := cfg.serialize(`\RR`); got != `{\RR}` {
		t.Fatalf("cached: %q", got)
	}
}

func TestSerializeNoStyles(t *testing.T) {
	cfg := &MainConfig{NoStyles: true}
	if err := cfg.setup(); err != nil {
		t.Fatal(err)
	}
	got, err := cfg.serialize(`\textcolor{red}{x}`)
	if err != nil {
		t.Fatal(err)
	}
	if got != "x" {
		t.Fatalf("got %q", got)
	}
}

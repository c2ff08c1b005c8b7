package main

import (
	"bufio"
	"fmt"
	"os"

	"sourcelang/checker"
	"sourcelang/config"
	"sourcelang/diag"
	"sourcelang/interpreter"
	"sourcelang/lexer"
	"sourcelang/parser"
)

// sysexits-style exit codes (spec.md §6).
const (
	exitUsage   = 64
	exitDataErr = 65
	exitSoftErr = 70
)

func main() {
	args := os.Args
	cfg, err := config.Load(config.DefaultFileName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitSoftErr)
	}

	switch len(args) {
	case 1:
		runREPL(cfg)
	case 2:
		os.Exit(runFile(args[1], cfg))
	default:
		fmt.Printf("Usage: %s [file_path]\n", args[0])
		os.Exit(exitUsage)
	}
}

// runFile lexes, parses, checks, and interprets one file, returning the
// exit code the process should terminate with.
func runFile(path string, cfg config.Config) int {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Println("Unable to open file")
		return 1
	}

	sink := diag.NewSink()
	toks := lexer.Tokenize(string(src), sink)
	prog := parser.New(toks, sink).Parse()
	if sink.HadError() {
		fmt.Print(sink.Render())
		return exitDataErr
	}

	checker.New(sink).Check(prog)
	if sink.HadError() {
		fmt.Print(sink.Render())
		return exitDataErr
	}

	interp := interpreter.New(sink)
	interp.SetMaxCallDepth(cfg.MaxCallDepth)
	interp.TrimTrailingZeros = cfg.TrimTrailingZeros
	if err := interp.Run(prog); err != nil {
		fmt.Print(sink.Render())
		return exitSoftErr
	}
	return 0
}

// runREPL reads one line at a time, running each against a persistent
// global environment and diagnostic sink; a diagnostic on one line does
// not terminate the session, it just gets rendered before the next
// prompt (spec.md §6).
func runREPL(cfg config.Config) {
	sink := diag.NewSink()
	interp := interpreter.New(sink)
	interp.SetMaxCallDepth(cfg.MaxCallDepth)
	interp.TrimTrailingZeros = cfg.TrimTrailingZeros
	check := checker.New(sink)

	if cfg.REPLBanner {
		fmt.Println("sourcelang REPL — Ctrl-D to exit")
	}

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print(cfg.Prompt)
	for scanner.Scan() {
		line := scanner.Text()
		sink.Reset()

		toks := lexer.Tokenize(line, sink)
		prog := parser.New(toks, sink).Parse()
		if !sink.HadError() {
			check.Check(prog)
		}
		if sink.HadError() {
			fmt.Print(sink.Render())
			fmt.Print(cfg.Prompt)
			continue
		}

		if err := interp.Run(prog); err != nil {
			fmt.Print(sink.Render())
		}
		fmt.Print(cfg.Prompt)
	}
}

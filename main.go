package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/codeassociates/llvmlang/internal/codegen"
	"github.com/codeassociates/llvmlang/internal/jit"
	"github.com/codeassociates/llvmlang/internal/lexer"
	"github.com/codeassociates/llvmlang/internal/parser"
)

const version = "0.1.0"

func main() {
	showVersion := flag.Bool("version", false, "Print version and exit")
	printLexer := flag.Bool("print-lexer", false, "Print the token stream and exit")
	printAST := flag.Bool("print-ast", false, "Print the parsed top-level declarations and exit")
	dryRun := flag.Bool("dry-run", false, "Run the lexer, parser, and codegen but do not print IR or execute")
	runJit := flag.Bool("jit", false, "JIT-execute main and print its return value as the exit code")
	runFlag := flag.Bool("run", false, "Alias for --jit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "llvmlang - a compiler for the source language, emitting LLVM-IR\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <input>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("llvmlang version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %s\n", err)
		os.Exit(1)
	}

	tokens := lexer.Tokenize(string(src))
	if *printLexer {
		for _, t := range tokens {
			fmt.Printf("%+v\n", t)
		}
		return
	}

	nodes, err := parser.Parse(tokens)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Parse error: %s\n", err)
		os.Exit(1)
	}
	if *printAST {
		for _, n := range nodes {
			fmt.Printf("%+v\n", n)
		}
		return
	}

	module, err := codegen.Generate(nodes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Codegen error: %s\n", err)
		os.Exit(1)
	}

	if *dryRun {
		return
	}

	if *runJit || *runFlag {
		exitCode, err := jit.RunMain(module)
		if err != nil {
			fmt.Fprintf(os.Stderr, "JIT error: %s\n", err)
			os.Exit(1)
		}
		fmt.Printf("Exit Code: %d\n", exitCode)
		return
	}

	fmt.Print(module.String())
}

// Package jit executes a compiled module's main function through LLVM's
// MCJIT, bridging the pure-Go IR built by internal/codegen to the cgo-backed
// tinygo.org/x/go-llvm bindings only at this one boundary — nothing else in
// the compiler links against the real LLVM C API.
package jit

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"tinygo.org/x/go-llvm"
)

// RunMain parses m's IR text through the native LLVM bindings, JIT-compiles
// it, and invokes main with no arguments, returning its integer return
// value as the process's intended exit code. main must take no parameters
// and return one of the integer kinds; anything else is a caller error.
func RunMain(m *ir.Module) (int, error) {
	ctx := llvm.NewContext()
	defer ctx.Dispose()

	membuf := llvm.NewMemoryBufferFromMemoryRangeCopy([]byte(m.String()), "module")
	mod, err := ctx.ParseIR(membuf)
	if err != nil {
		return 0, fmt.Errorf("jit: parsing generated IR: %w", err)
	}

	if err := llvm.InitializeNativeTarget(); err != nil {
		return 0, fmt.Errorf("jit: initializing native target: %w", err)
	}
	if err := llvm.InitializeNativeAsmPrinter(); err != nil {
		return 0, fmt.Errorf("jit: initializing native asm printer: %w", err)
	}

	opts := llvm.NewMCJITCompilerOptions()
	opts.SetMCJITOptimizationLevel(0)
	engine, err := llvm.NewMCJITCompiler(mod, opts)
	if err != nil {
		return 0, fmt.Errorf("jit: creating execution engine: %w", err)
	}
	defer engine.Dispose()

	fn := mod.NamedFunction("main")
	if fn.IsNil() {
		return 0, fmt.Errorf("jit: module has no main function")
	}

	result := engine.RunFunction(fn, nil)
	return int(result.Int(true)), nil
}

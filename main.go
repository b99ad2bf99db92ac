package main

import (
	"context"
	"encoding/binary"
	"flag"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/mini3c/mini3c/internal/isolate"
	"github.com/mini3c/mini3c/internal/logio"
)

func main() {
	var (
		trace      bool
		patchTrace bool
		dump       bool
		outPath    string
	)
	flag.BoolVar(&trace, "trace", false, "log every emitted code word")
	flag.BoolVar(&patchTrace, "patch-trace", false, "log every backpatch")
	flag.BoolVar(&dump, "dump", false, "print the symbol tables and a disassembly to stderr after compiling")
	flag.StringVar(&outPath, "o", "", "output file for the code stream (default stdout)")
	flag.Parse()

	log := logio.Logger{}
	log.SetOutput(os.Stderr)
	defer func() { os.Exit(log.ExitCode()) }()

	if flag.NArg() != 1 {
		log.Fatalf("usage: %s [flags] source.mc", os.Args[0])
		return
	}

	in, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer in.Close()

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			log.Fatalf("%v", err)
			return
		}
		defer f.Close()
		out = f
	}

	var sym *symbolTable
	opts := []CompilerOption{WithSymbols(&sym)}
	if trace {
		opts = append(opts, WithTrace(log.Leveledf("EMIT")))
	}
	if patchTrace {
		opts = append(opts, WithPatchTrace(log.Leveledf("PATCH")))
	}

	var code []int32
	compileErr := isolate.Run(context.Background(), "compile",
		func(context.Context) error {
			var err error
			code, err = Compile(in, opts...)
			return err
		},
		nil,
	)
	if compileErr != nil {
		log.Fatalf("%v", compileErr)
		return
	}

	eg, _ := errgroup.WithContext(context.Background())
	eg.Go(func() error { return writeCode(out, code) })
	if dump {
		// Both write to stderr; kept in one goroutine so the symbol
		// table and disassembly never interleave with each other.
		eg.Go(func() error {
			if err := DumpSymbols(os.Stderr, sym); err != nil {
				return err
			}
			return Disassemble(os.Stderr, code)
		})
	}
	log.ErrorIf(eg.Wait())
}

// writeCode writes code as a stream of little-endian 32-bit words. Byte
// order is a wire-format choice the consuming VM must agree on; mini-C
// picks little-endian since that's the common case for the hosts this
// compiler targets.
func writeCode(w *os.File, code []int32) error {
	buf := make([]byte, 4*len(code))
	for i, word := range code {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(word))
	}
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("writing code stream: %w", err)
	}
	return nil
}

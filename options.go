package main

// Functional options for Compile: a merge function that flattens nested
// option lists, plus a handful of concrete option types that each mutate
// one field of the Compiler being built.

// CompilerOptions flattens and merges a list of options, dropping nils,
// so Compile can accept a variadic tail without callers needing to build
// their own slice.
func CompilerOptions(opts ...CompilerOption) CompilerOption {
	var res compilerOptionList
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil, noCompilerOption:
		case compilerOptionList:
			res = append(res, impl...)
		default:
			res = append(res, opt)
		}
	}
	switch len(res) {
	case 0:
		return noCompilerOption{}
	case 1:
		return res[0]
	default:
		return res
	}
}

type noCompilerOption struct{}

func (noCompilerOption) apply(*Compiler) {}

type compilerOptionList []CompilerOption

func (opts compilerOptionList) apply(c *Compiler) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(c)
		}
	}
}

// traceFunc is the shape of a leveled-logging hook, matching
// logio.Logger.Leveledf's return type so a Logger can be wired in
// directly from main.
type traceFunc func(mess string, args ...interface{})

type traceOption traceFunc

// WithTrace causes every emitted code word to be logged through logf at
// its offset, e.g. via a Logger's Leveledf("EMIT") hook.
func WithTrace(logf traceFunc) CompilerOption { return traceOption(logf) }

func (t traceOption) apply(c *Compiler) {
	logf := traceFunc(t)
	c.emitter.trace = func(pos int, word int32) {
		logf("%4d  %d", pos, word)
	}
}

type patchTraceOption traceFunc

// WithPatchTrace logs every backpatch as it is applied, independent of
// WithTrace's per-emit logging.
func WithPatchTrace(logf traceFunc) CompilerOption { return patchTraceOption(logf) }

func (t patchTraceOption) apply(c *Compiler) {
	logf := traceFunc(t)
	c.emitter.patchTrace = func(loc int, v int32) {
		logf("%4d <- %d", loc, v)
	}
}

type symbolsOption struct{ dst **symbolTable }

// WithSymbols captures the compiler's symbol table into *dst as soon as
// the Compiler is constructed. Since a Compiler's sym field is never
// replaced after construction, *dst observes the fully populated globals
// and functions tables once Compile returns -- letting a caller dump them
// without Compile itself needing to grow a second return value.
func WithSymbols(dst **symbolTable) CompilerOption { return symbolsOption{dst} }

func (o symbolsOption) apply(c *Compiler) { *o.dst = c.sym }

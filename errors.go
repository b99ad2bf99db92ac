package main

import "fmt"

// compileError is a line-annotated fatal diagnostic. Every syntactic,
// semantic, or capacity error in the compiler is reported this way; there
// is no error recovery; the first one wins. A distinguished panic type
// carries the error across the parser's call stack to a single recover
// point at the top of Compile, rather than threading an error return
// through every call in the lexer, symbol table, emitter, and parser.
type compileError struct {
	line int
	msg  string
}

// Error formats exactly as "<line>: error: <message>", the wire format a
// consuming tool or test harness parses diagnostics against.
func (err compileError) Error() string {
	return fmt.Sprintf("%d: error: %s", err.line, err.msg)
}

// fatalf raises a compileError by panicking. It is called from deep within
// the lexer, symbol table, emitter, and parser, all of which otherwise have
// no error-return plumbing.
func fatalf(line int, format string, args ...interface{}) {
	panic(compileError{line: line, msg: fmt.Sprintf(format, args...)})
}

// recoverCompileError turns a panicking compileError into a returned error.
// Any other panic value is not a user-facing diagnostic and is re-raised,
// since it indicates a bug in the compiler rather than in the input
// program.
func recoverCompileError(errp *error) {
	if r := recover(); r != nil {
		if ce, ok := r.(compileError); ok {
			*errp = ce
			return
		}
		panic(r)
	}
}

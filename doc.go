/* Package main: mini-C -- a single-pass compiler for a small C-like language

mini-C takes one source file and emits a stream of 32-bit stack-machine
instructions to standard output, ready to be fed to an external virtual
machine. There is no intermediate AST: the lexer, expression parser,
statement parser, and code emitter are interleaved so that by the time the
closing brace of a function body is consumed, that function's code is
already sitting in the output buffer.

Section 1: lexical analysis, see charstream.go and lexer.go

A CharStream keeps one character of lookahead over the input file and
counts lines. A Lexer sits on top of it, turning runs of characters into
tokens -- keywords, identifiers, decimal and character literals, and the
language's single- and multi-character punctuation.

Section 2: symbols, see symtab.go

Identifiers are interned to small integers the first time they are seen,
and resolved against four scope tables: globals, functions, the current
function's arguments, and its locals. Lookup prefers locals over arguments
over globals, giving the usual shadowing behavior.

Section 3: code generation, see emit.go and opcodes.go

The emitter is an append-only array of 32-bit words plus a cursor. A
function's entry address is simply the cursor position at the moment its
header is recorded; forward jumps are "patched" by remembering the operand
position and overwriting it once the jump target is known.

Section 4: expressions, see expr.go

Expression parsing is precedence climbing with an explicit lvalue/rvalue
result: some expressions leave an address on the evaluation stack
(lvalues, usable on the left of `=` and as the operand of `&`), others
leave a value (rvalues). Binary operator tokens double as opcodes in the
emitted stream, so applying an operator is just emitting the token that
named it.

Section 5: statements and control flow, see stmt.go

`if`/`else`, `while`, and `for` compile to forward jumps that get patched
once their target is known; `for` keeps two of them open at once (into the
body and past it). `do`/`while` needs only a backward jump to the top of
its body, whose position is already known.

Section 6: top level and driver, see compiler.go and main.go

A translation unit is a sequence of global declarations and function
definitions. The compiler always prepends a two-instruction prologue
(allocate the globals segment, call `main`) and patches both operands in
after the whole file has been parsed, since neither the globals size nor
main's address is known up front.

*/
package main

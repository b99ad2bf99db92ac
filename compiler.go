package main

import "io"

// Compiler ties the lexer, symbol table, and code emitter together for one
// translation unit. A fresh Compiler is built per call to Compile, with no
// state held over between compiles.
type Compiler struct {
	lx      *lexer
	sym     *symbolTable
	emitter *codeEmitter

	putcharSym int
	mainSym    int
}

// CompilerOption configures a Compiler before it parses anything.
type CompilerOption interface {
	apply(*Compiler)
}

func newCompiler(r io.Reader, opts ...CompilerOption) *Compiler {
	sym := &symbolTable{}
	cs := newCharStream(runeReaderOf(r))
	c := &Compiler{
		lx:      newLexer(cs, sym),
		sym:     sym,
		emitter: &codeEmitter{},
	}
	c.putcharSym = sym.intern("putchar", 0)
	c.mainSym = sym.intern("main", 0)
	for _, opt := range opts {
		opt.apply(c)
	}
	return c
}

func runeReaderOf(r io.Reader) io.RuneReader {
	if rr, ok := r.(io.RuneReader); ok {
		return rr
	}
	return &byteRuneReader{r: r}
}

// byteRuneReader adapts a plain io.Reader (mini-C source is pure ASCII) to
// io.RuneReader without pulling in bufio, reading one byte per rune with
// no buffering of its own.
type byteRuneReader struct {
	r   io.Reader
	buf [1]byte
}

func (b *byteRuneReader) ReadRune() (rune, int, error) {
	n, err := b.r.Read(b.buf[:])
	if n == 0 {
		if err == nil {
			err = io.ErrNoProgress
		}
		return 0, 0, err
	}
	return rune(b.buf[0]), 1, nil
}

// pType consumes zero or more leading '*' then a base type keyword. The
// star count is discarded: mini-C tracks no pointer levels once parsed,
// so `**int` and `*int` compile identically.
func (c *Compiler) pType() tokenKind {
	for c.lx.found(tokMul) {
	}
	tok := c.lx.next()
	if !isTypeKind(tok.kind) {
		fatalf(tok.line, "type expected")
	}
	return tok.kind
}

// pGlobal parses the remainder of a global declaration after its type and
// name: an optional array size, then a semicolon.
func (c *Compiler) pGlobal(typ tokenKind, sym int, line int) {
	size := 0
	if c.lx.found(tokLBrack) {
		lit := c.lx.expect(tokLiteral)
		size = int(lit.value)
		c.lx.expect(tokRBrack)
	}
	c.sym.addGlobal(sym, typ, size, line)
	c.lx.expect(tokSemi)
}

// pFunction parses the remainder of a function definition after its return
// type and name: parameters, local declarations, and the statement body,
// emitting code as it goes. Its own entry is registered before the body is
// parsed so that recursive calls resolve.
func (c *Compiler) pFunction(typ tokenKind, sym int, line int) {
	c.sym.resetFunctionScope()

	argCount := 0
	if !c.lx.found(tokRParen) {
		for {
			atyp := c.pType()
			name := c.lx.expect(tokSymbol)
			c.sym.addArgument(name.sym, atyp, name.line)
			argCount++
			if !c.lx.found(tokComma) {
				break
			}
		}
		c.lx.expect(tokRParen)
	}

	codeOffset := c.emitter.pos()
	c.sym.addFunction(sym, typ, codeOffset, argCount, line)
	if sym == c.mainSym && argCount != 0 {
		fatalf(line, "main must take zero arguments")
	}

	c.lx.expect(tokLBrace)
	for c.lx.isType() {
		c.pLocal()
	}
	if n := len(c.sym.locals); n > 0 {
		c.emitter.emit1(opAlloc, int32(n), line)
	}
	for !c.lx.found(tokRBrace) {
		c.stmt()
	}

	c.emitter.emit1(opConst, 0, line)
	c.emitter.emit1(opReturn, int32(argCount), line)
}

// pLocal parses one local declaration: a type followed by one or more
// comma-separated names.
func (c *Compiler) pLocal() {
	typ := c.pType()
	for {
		name := c.lx.expect(tokSymbol)
		c.sym.addLocal(name.sym, typ, name.line)
		if !c.lx.found(tokComma) {
			break
		}
	}
	c.lx.expect(tokSemi)
}

// pTranslationUnit parses a sequence of global declarations and function
// definitions until EOF.
func (c *Compiler) pTranslationUnit() {
	for c.lx.peek().kind != tokEOF {
		typ := c.pType()
		name := c.lx.expect(tokSymbol)
		line := name.line
		if c.lx.found(tokLParen) {
			c.pFunction(typ, name.sym, line)
		} else {
			c.pGlobal(typ, name.sym, line)
		}
	}
}

// Compile reads one mini-C translation unit from r and returns the
// compiled code stream, prologue included. The prologue is two
// instructions, ALLOC (patched to the total globals size) and CALL
// (patched to main's entry), emitted before any user code and patched once
// parsing completes.
func Compile(r io.Reader, opts ...CompilerOption) (code []int32, err error) {
	defer recoverCompileError(&err)

	c := newCompiler(r, opts...)

	allocLoc := c.emitter.emit1(opAlloc, -1, 0)
	callLoc := c.emitter.emit1(opCall, -1, 0)

	c.pTranslationUnit()

	mainFn, ok := c.sym.findFunction(c.mainSym)
	if !ok {
		fatalf(0, "main is not defined")
	}
	c.emitter.patch(allocLoc, int32(c.sym.globalSize))
	c.emitter.patch(callLoc, int32(mainFn.codeOffset))

	return c.emitter.code, nil
}

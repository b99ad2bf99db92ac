package main

// Expression compilation is precedence climbing with an lvalue/rvalue tag
// threaded through every call instead of an AST: each function emits code
// directly and returns whether the value it just left on the evaluation
// stack is an address (lvalue) or a value (rvalue).
//
// A naive design coerces every expression result to rvalue unconditionally
// on the way out, which makes a parenthesized lvalue such as `(a)` unusable
// on the left of `=`. Threading an explicit rvalueRequired flag through the
// recursion -- coercing only when the caller actually needs a value -- lets
// `(a) = 1` compile correctly while leaving every other emitted instruction
// unchanged.

// expr parses an expression binding operators of precedence >= minPrec,
// emitting code as it goes, and returns whether the stack's top is left as
// an lvalue (true) or rvalue (false). When rvalueRequired is true the
// result is always rvalue.
func (c *Compiler) expr(minPrec int, rvalueRequired bool) bool {
	isLv := c.exprUnary()

	for {
		tok := c.lx.peek()
		if !isOperator(tok.kind) || precOf(tok.kind) < minPrec {
			break
		}
		c.lx.next()
		line := tok.line

		if tok.kind == tokAssign {
			if !isLv {
				fatalf(line, "assignment to non-lvalue")
			}
		} else if isLv {
			c.emitter.emit0(int32(opDeref), line)
		}

		if tok.kind == tokAssign {
			c.expr(precOf(tok.kind), true) // same precedence: right-associative
		} else {
			c.expr(precOf(tok.kind)+1, true) // precedence+1: left-associative
		}

		c.emitter.emit0(int32(tok.kind), line)
		isLv = false
	}

	if isLv && rvalueRequired {
		c.emitter.emit0(int32(opDeref), c.lx.line())
		isLv = false
	}
	return isLv
}

// exprUnary parses an optional leading unary operator, a primary
// expression, and any trailing subscript, then applies the unary operator
// last.
func (c *Compiler) exprUnary() bool {
	tok := c.lx.peek()
	var unaryOp tokenKind
	switch tok.kind {
	case tokMul, tokBitAnd, tokSub:
		c.lx.next()
		unaryOp = tok.kind
	}

	isLv := c.exprPrimary()

	for c.lx.found(tokLBrack) {
		line := c.lx.line()
		if isLv {
			c.emitter.emit0(int32(opDeref), line)
		}
		c.expr(1, true)
		c.lx.expect(tokRBrack)
		c.emitter.emit0(int32(tokAdd), line)
		isLv = true
	}

	line := c.lx.line()
	switch unaryOp {
	case tokMul:
		if isLv {
			c.emitter.emit0(int32(opDeref), line)
		}
		isLv = true
	case tokBitAnd:
		if !isLv {
			fatalf(line, "address-of requires an lvalue")
		}
		isLv = false
	case tokSub:
		if isLv {
			c.emitter.emit0(int32(opDeref), line)
		}
		c.emitter.emit0(int32(opNeg), line)
		isLv = false
	}
	return isLv
}

// exprPrimary parses a parenthesized expression, a literal, or an
// identifier (bare, subscript base, or function call).
func (c *Compiler) exprPrimary() bool {
	tok := c.lx.next()
	switch tok.kind {
	case tokLParen:
		isLv := c.expr(1, false)
		c.lx.expect(tokRParen)
		return isLv
	case tokLiteral:
		c.emitter.emit1(opConst, tok.value, tok.line)
		return false
	case tokSymbol:
		if c.lx.found(tokLParen) {
			return c.exprCall(tok.sym, tok.line)
		}
		return c.pushSymbol(tok.sym, tok.line)
	}
	fatalf(tok.line, "expected literal or identifier")
	panic("unreachable")
}

// pushSymbol resolves an identifier use against locals, then arguments,
// then globals (first match wins; shadowing), emitting the matching
// address-push instruction. An array global decays to its address as an
// rvalue; every other resolution is an lvalue.
func (c *Compiler) pushSymbol(sym int, line int) bool {
	if i, ok := c.sym.findLocal(sym); ok {
		c.emitter.emit1(opGetAL, int32(i), line)
		return true
	}
	if i, ok := c.sym.findArgument(sym); ok {
		n := len(c.sym.arguments)
		c.emitter.emit1(opGetAA, int32(n-i), line)
		return true
	}
	if g, ok := c.sym.findGlobal(sym); ok {
		c.emitter.emit1(opGetAG, int32(g.offset), line)
		return g.size == 0
	}
	fatalf(line, "unknown identifier")
	panic("unreachable")
}

// exprCall parses a call's argument list (the opening '(' already
// consumed) and emits SCALL for the well-known putchar symbol or CALL with
// an arity check for a user function.
func (c *Compiler) exprCall(sym int, line int) bool {
	argCount := 0
	if !c.lx.found(tokRParen) {
		for {
			c.expr(1, true)
			argCount++
			if !c.lx.found(tokComma) {
				break
			}
		}
		c.lx.expect(tokRParen)
	}

	if sym == c.putcharSym {
		c.emitter.emit1(opSCall, int32(sym), line)
		return false
	}

	fn, ok := c.sym.findFunction(sym)
	if !ok {
		fatalf(line, "unknown function")
	}
	if argCount != fn.argCount {
		fatalf(line, "function takes %d arguments", fn.argCount)
	}
	c.emitter.emit1(opCall, int32(fn.codeOffset), line)
	return false
}

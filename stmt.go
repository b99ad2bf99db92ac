package main

// Statement compilation emits control flow directly against the code
// emitter, backpatching forward jumps once their targets are known. if,
// while, and for follow the same emit-then-patch shape: reserve a jump's
// operand slot, parse whatever appears between reservation and target,
// then overwrite the slot once the target position is known. do only
// jumps backward to a known position, so it patches nothing.
func (c *Compiler) stmt() {
	switch {
	case c.lx.found(tokIf):
		c.stmtIf()
	case c.lx.found(tokReturn):
		c.stmtReturn()
	case c.lx.found(tokWhile):
		c.stmtWhile()
	case c.lx.found(tokDo):
		c.stmtDo()
	case c.lx.found(tokFor):
		c.stmtFor()
	case c.lx.found(tokLBrace):
		for !c.lx.found(tokRBrace) {
			c.stmt()
		}
	case c.lx.found(tokSemi):
		// empty statement
	default:
		c.expr(1, true)
		c.lx.expect(tokSemi)
		c.emitter.emit0(int32(opDrop), c.lx.line())
	}
}

func (c *Compiler) stmtIf() {
	c.lx.expect(tokLParen)
	c.expr(1, true)
	c.lx.expect(tokRParen)
	tf := c.emitter.emit1(opJz, -1, c.lx.line())
	c.stmt()
	if c.lx.found(tokElse) {
		te := c.emitter.emit1(opJmp, -1, c.lx.line())
		c.emitter.patch(tf, int32(c.emitter.pos()))
		c.stmt()
		c.emitter.patch(te, int32(c.emitter.pos()))
	} else {
		c.emitter.patch(tf, int32(c.emitter.pos()))
	}
}

func (c *Compiler) stmtWhile() {
	top := c.emitter.pos()
	c.lx.expect(tokLParen)
	c.expr(1, true)
	c.lx.expect(tokRParen)
	tf := c.emitter.emit1(opJz, -1, c.lx.line())
	c.stmt()
	c.emitter.emit1(opJmp, int32(top), c.lx.line())
	c.emitter.patch(tf, int32(c.emitter.pos()))
}

func (c *Compiler) stmtDo() {
	top := c.emitter.pos()
	c.stmt()
	c.lx.expect(tokWhile)
	c.lx.expect(tokLParen)
	c.expr(1, true)
	c.lx.expect(tokRParen)
	c.lx.expect(tokSemi)
	c.emitter.emit1(opJnz, int32(top), c.lx.line())
}

// stmtFor lays out the classic three-clause for loop as: init, a
// condition check that jumps into the body or past it, the step followed
// by a jump back to the condition check, then the body followed by a jump
// back to the step. An absent condition is
// synthesized as a true (nonzero) constant so `for(;;)` loops forever.
func (c *Compiler) stmtFor() {
	c.lx.expect(tokLParen)

	if !c.lx.found(tokSemi) {
		c.expr(1, true)
		c.emitter.emit0(int32(opDrop), c.lx.line())
		c.lx.expect(tokSemi)
	}

	condPos := c.emitter.pos()
	if c.lx.found(tokSemi) {
		c.emitter.emit1(opConst, 1, c.lx.line())
	} else {
		c.expr(1, true)
		c.lx.expect(tokSemi)
	}
	bodyJump := c.emitter.emit1(opJnz, -1, c.lx.line())
	endJump := c.emitter.emit1(opJmp, -1, c.lx.line())

	stepPos := c.emitter.pos()
	if !c.lx.found(tokRParen) {
		c.expr(1, true)
		c.emitter.emit0(int32(opDrop), c.lx.line())
		c.lx.expect(tokRParen)
	}
	c.emitter.emit1(opJmp, int32(condPos), c.lx.line())

	c.emitter.patch(bodyJump, int32(c.emitter.pos()))
	c.stmt()
	c.emitter.emit1(opJmp, int32(stepPos), c.lx.line())
	c.emitter.patch(endJump, int32(c.emitter.pos()))
}

func (c *Compiler) stmtReturn() {
	c.expr(1, true)
	c.lx.expect(tokSemi)
	c.emitter.emit1(opReturn, int32(len(c.sym.arguments)), c.lx.line())
}

package main

import (
	"fmt"
	"io"
)

// Disassemble writes one line per instruction in code: offset, mnemonic,
// and operand when the opcode carries one. The format is fixed by the
// external VM's own disassembler so the two can be diffed against each
// other; the logic itself is mechanical, unlike everything upstream of it.
func Disassemble(w io.Writer, code []int32) error {
	for pos := 0; pos < len(code); {
		op := code[pos]
		name := mnemonic(op)
		if hasOperand(tokenKind(op)) {
			if pos+1 >= len(code) {
				return fmt.Errorf("%d: truncated operand for %s", pos, name)
			}
			if _, err := fmt.Fprintf(w, "%2d  %-6s %d\n", pos, name, code[pos+1]); err != nil {
				return err
			}
			pos += 2
		} else {
			if _, err := fmt.Fprintf(w, "%2d  %-6s\n", pos, name); err != nil {
				return err
			}
			pos++
		}
	}
	return nil
}

// DumpSymbols writes the global and function tables accumulated over a
// compile, one entry per line, names resolved through the intern table.
// Arguments and locals are per-function scratch state reset at the start
// of every function definition (see symbolTable.resetFunctionScope) and so
// hold nothing worth printing once a whole translation unit has compiled.
func DumpSymbols(w io.Writer, sym *symbolTable) error {
	if _, err := fmt.Fprintln(w, "globals:"); err != nil {
		return err
	}
	for _, g := range sym.globals {
		name := sym.strings[g.sym]
		var err error
		if g.size > 0 {
			_, err = fmt.Fprintf(w, "%4d  %-12s %s[%d]\n", g.offset, name, g.typ, g.size)
		} else {
			_, err = fmt.Fprintf(w, "%4d  %-12s %s\n", g.offset, name, g.typ)
		}
		if err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "functions:"); err != nil {
		return err
	}
	for _, f := range sym.functions {
		name := sym.strings[f.sym]
		if _, err := fmt.Fprintf(w, "%4d  %-12s %s argc=%d\n", f.codeOffset, name, f.retType, f.argCount); err != nil {
			return err
		}
	}
	return nil
}

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These two programs are adaptations of a textbook Sieve of Eratosthenes,
// kept close to their original shape but adjusted to this grammar: pointer
// parameters use the prefix-star form (`*int prime`, not `int *prime`),
// local declarations never carry an array size (so a local array becomes
// a global), and a step clause spells out `i = i + 1` rather than `++i`
// (`++`/`--` are lexed but never legal inside an expression here). Each
// recurses, walks nested loops, indexes through a pointer and through a
// plain global array, and prints through putchar -- enough surface to
// catch a wiring mistake that a handful of small, single-feature test
// cases could each individually miss.
//
// Exact bytecode for ~30 lines of nested control flow is too easy to get
// wrong by hand, so these are checked structurally: the compile succeeds,
// the disassembly round-trips, and the instruction mix (call count,
// syscall count, globals size) matches what a reading of the source
// predicts exactly.

const sievePointerArgSrc = `
int number(int v) {
    int x;
    x = v % 10;
    if (v) {
        number(v / 10);
        putchar('0' + x);
    }
}

int primes[33];

void sieve(*int prime, int n) {
    int p;
    int i;
    p = 2;
    while (p * p <= n) {
        if (prime[p] == 0) {
            i = p * p;
            while (i <= n) {
                prime[i] = 1;
                i = i + p;
            }
        }
        p = p + 1;
    }
    p = 2;
    while (p <= n) {
        if (prime[p] == 0) {
            number(p);
            putchar(10);
        }
        p = p + 1;
    }
}

int main() {
    int i;
    for (i = 0; i < 33; i = i + 1) {
        primes[i] = 0;
    }
    sieve(primes, 32);
}
`

const sieveGlobalArraySrc = `
int number(int v) {
    int x;
    x = v % 10;
    if (v) {
        number(v / 10);
        putchar('0' + x);
    }
}

int primeTable[33];

void sieve(int n) {
    int p;
    int i;
    for (i = 0; i < 33; i = i + 1) {
        primeTable[i] = 0;
    }
    p = 2;
    while (p * p <= n) {
        if (primeTable[p] == 0) {
            i = p * p;
            while (i <= n) {
                primeTable[i] = 1;
                i = i + p;
            }
        }
        p = p + 1;
    }
    p = 2;
    while (p <= n) {
        if (primeTable[p] == 0) {
            number(p);
            putchar(10);
        }
        p = p + 1;
    }
}

int main() {
    sieve(32);
}
`

// opcodeCounts tallies how many times each mnemonic appears in code,
// walking it the same way Disassemble does.
func opcodeCounts(t *testing.T, code []int32) map[string]int {
	t.Helper()
	counts := map[string]int{}
	for pos := 0; pos < len(code); {
		op := tokenKind(code[pos])
		counts[mnemonic(int32(op))]++
		if hasOperand(op) {
			pos += 2
		} else {
			pos++
		}
	}
	return counts
}

func TestCompileSievePointerArgument(t *testing.T) {
	code, err := Compile(strings.NewReader(sievePointerArgSrc))
	require.NoError(t, err)

	// one global (primes[33]) sized in words, nothing else declared at
	// file scope, so the prologue's ALLOC operand is exactly 33.
	require.True(t, len(code) > 4)
	assert.Equal(t, int32(opAlloc), code[0])
	assert.Equal(t, int32(33), code[1])
	assert.Equal(t, int32(opCall), code[2])

	counts := opcodeCounts(t, code)
	// prologue -> main, main -> sieve, sieve -> number, number -> number
	// (recursive): 4 calls.
	assert.Equal(t, 4, counts["CALL"])
	// number's digit putchar, plus sieve's newline putchar: 2 syscalls.
	assert.Equal(t, 2, counts["SCALL"])
	assert.Greater(t, counts["GETAA"], 0, "pointer and scalar arguments are read via GETAA")
	assert.Greater(t, counts["DEREF"], 0, "the pointer argument is dereferenced before indexing")

	var buf bytes.Buffer
	require.NoError(t, Disassemble(&buf, code))
	assert.NotEmpty(t, buf.String())
}

func TestCompileSieveGlobalArray(t *testing.T) {
	code, err := Compile(strings.NewReader(sieveGlobalArraySrc))
	require.NoError(t, err)

	require.True(t, len(code) > 4)
	assert.Equal(t, int32(opAlloc), code[0])
	assert.Equal(t, int32(33), code[1], "primeTable[33] is the only global")
	assert.Equal(t, int32(opCall), code[2])

	counts := opcodeCounts(t, code)
	// prologue -> main, main -> sieve, sieve -> number, number -> number.
	assert.Equal(t, 4, counts["CALL"])
	assert.Equal(t, 2, counts["SCALL"])
	assert.Greater(t, counts["GETAG"], 0, "primeTable is read and written through GETAG")

	var buf bytes.Buffer
	require.NoError(t, Disassemble(&buf, code))
	assert.NotEmpty(t, buf.String())

	var sym *symbolTable
	_, err = Compile(strings.NewReader(sieveGlobalArraySrc), WithSymbols(&sym))
	require.NoError(t, err)
	var symBuf bytes.Buffer
	require.NoError(t, DumpSymbols(&symBuf, sym))
	assert.Contains(t, symBuf.String(), "primeTable")
	assert.Contains(t, symBuf.String(), "sieve")
}

package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCharStreamPriming(t *testing.T) {
	cs := newCharStream(strings.NewReader("ab"))
	assert.Equal(t, rune('a'), cs.peek)
	assert.Equal(t, 1, cs.line)

	assert.Equal(t, rune('a'), cs.next())
	assert.Equal(t, rune('b'), cs.peek)

	assert.Equal(t, rune('b'), cs.next())
	assert.Equal(t, rune(0), cs.peek)

	assert.Equal(t, rune(0), cs.next())
	assert.Equal(t, rune(0), cs.next(), "EOF is idempotent")
}

func TestCharStreamLineTracking(t *testing.T) {
	cs := newCharStream(strings.NewReader("a\nb"))
	assert.Equal(t, 1, cs.line)
	cs.next() // 'a'
	assert.Equal(t, 1, cs.line)
	cs.next() // '\n'
	assert.Equal(t, 2, cs.line)
	cs.next() // 'b'
	assert.Equal(t, 2, cs.line)
}

func TestCharStreamFound(t *testing.T) {
	cs := newCharStream(strings.NewReader("=="))
	cs.next() // current is now '='
	assert.True(t, cs.found('='))
	assert.Equal(t, rune(0), cs.peek)
}

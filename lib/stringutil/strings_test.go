package stringutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeBackslashes(t *testing.T) {
	assert.Equal(t, "hello", EscapeBackslashes("hello"))
	assert.Equal(t, `hello\\world`, EscapeBackslashes(`hello\world`))
	assert.Equal(t, `\\\\`, EscapeBackslashes(`\\`))
}

func TestEmpty(t *testing.T) {
	assert.False(t, Empty("a", "b"))
	assert.True(t, Empty("a", ""))
	assert.True(t, Empty(""))
}

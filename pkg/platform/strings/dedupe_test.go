package strings

import (
	stdstrings "strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	t.Run("nil and empty pass through", func(t *testing.T) {
		assert.Nil(t, DedupeAndTrim(nil))
		assert.Empty(t, DedupeAndTrim([]string{}))
	})

	t.Run("trims, drops blanks, keeps first occurrence", func(t *testing.T) {
		got := DedupeAndTrim([]string{"  Jon Smith ", "J. Smith", "Jon Smith", "", "   "})
		assert.Equal(t, []string{"Jon Smith", "J. Smith"}, got)
	})

	t.Run("case variants are distinct", func(t *testing.T) {
		got := DedupeAndTrim([]string{"ACME Corp", "acme corp"})
		assert.Equal(t, []string{"ACME Corp", "acme corp"}, got)
	})
}

func TestDedupeBy(t *testing.T) {
	t.Run("keys collapse variants but first spelling survives", func(t *testing.T) {
		got := DedupeBy([]string{"JON SMITH", "jon smith", "Jon  Smith"}, stdstrings.ToLower)
		assert.Equal(t, []string{"JON SMITH", "Jon  Smith"}, got)
	})

	t.Run("identity key matches DedupeAndTrim", func(t *testing.T) {
		in := []string{"a", " a ", "b"}
		assert.Equal(t, DedupeAndTrim(in), DedupeBy(in, func(s string) string { return s }))
	})
}

package report

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCombineOrdersAndSeparates(t *testing.T) {
	out := Combine(map[int]string{3: "three", 1: "one", 2: "two"})
	require.Equal(t, "\n\none\n\n---\n\ntwo\n\n---\n\nthree", out)
}

func TestCombineToleratesSparseMap(t *testing.T) {
	out := Combine(map[int]string{13: "last", 1: "first"})
	require.Equal(t, "\n\nfirst\n\n---\n\nlast", out)
}

func TestCombineEmpty(t *testing.T) {
	require.Equal(t, "", Combine(nil))
}

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryOrdering(t *testing.T) {
	r := &Registry{}

	p1 := NewParam("a")
	p2 := NewParam(2)
	p3 := NewParam(true)

	assert.Equal(t, 1, r.Add(p1))
	assert.Equal(t, 2, r.Add(p2))
	assert.Equal(t, 3, r.Add(p3))
	assert.Equal(t, 3, r.Len())

	values := Values(r.BoundValues())
	assert.Equal(t, []any{"a", 2, true}, values)
}

func TestRegistryReadsCurrentValues(t *testing.T) {
	r := &Registry{}
	p := NewParam("before")
	r.Add(p)

	p.Set("after")

	bound := r.BoundValues()
	require.Len(t, bound, 1)
	assert.Equal(t, "after", bound[0].Value)
}

func TestSharedCellAppearsPerRegistration(t *testing.T) {
	r := &Registry{}
	p := NewParam(7)

	r.Add(p)
	r.Add(p)

	values := Values(r.BoundValues())
	assert.Equal(t, []any{7, 7}, values)
}

func TestTypedParamCarriesHint(t *testing.T) {
	r := &Registry{}
	r.Add(TypedParam("2024-01-01", "date"))

	bound := r.BoundValues()
	require.Len(t, bound, 1)
	assert.Equal(t, "date", bound[0].TypeHint)
	assert.Equal(t, "2024-01-01", bound[0].Value)
}

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOperator(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Operator
	}{
		{"equals", "=", OpEq},
		{"double equals alias", "==", OpEq},
		{"not equals", "!=", OpNotEq},
		{"angle bracket alias", "<>", OpNotEq},
		{"lowercase like", "like", OpLike},
		{"mixed case not like", "Not Like", OpNotLike},
		{"in", "IN", OpIn},
		{"not in with extra spaces", "not   in", OpNotIn},
		{"between", "between", OpBetween},
		{"not between", "NOT BETWEEN", OpNotBetween},
		{"is", "is", OpIs},
		{"is not with tab", "is\tnot", OpIsNot},
		{"surrounding whitespace", "  >=  ", OpGtEq},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOperator(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOperatorUnknown(t *testing.T) {
	for _, input := range []string{"", "~", "LIKES", "IN BETWEEN", "REGEXP", "= ="} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseOperator(input)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnsupportedOperator)
		})
	}
}

func TestOperatorClasses(t *testing.T) {
	assert.True(t, OpBetween.IsRange())
	assert.True(t, OpNotBetween.IsRange())
	assert.False(t, OpIn.IsRange())

	assert.True(t, OpIn.IsSet())
	assert.True(t, OpNotIn.IsSet())
	assert.False(t, OpBetween.IsSet())
	assert.False(t, OpEq.IsSet())
}

package parser

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brine/internal/graph"
)

// returnValue parses a one-return program and unwraps the returned node.
func returnValue(t *testing.T, source string) *graph.Node {
	t.Helper()
	result := mustParse(t, source)
	rets := returnsOf(t, result)
	require.Len(t, rets, 1)
	require.Len(t, rets[0].Inputs, 1)
	return rets[0].Inputs[0]
}

func TestConstantFoldingArithmetic(t *testing.T) {
	tests := []struct {
		expr string
		want int64
	}{
		{"2 + 3", 5},
		{"10 - 4", 6},
		{"5 - 8", -3},
		{"6 * 7", 42},
		{"0 * 9", 0},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			value := returnValue(t, fmt.Sprintf("{ return %s; }", tt.expr))
			assert.Equal(t, graph.OpConst, value.Op)
			require.NotNil(t, value.Const)
			assert.False(t, value.Const.IsBool)
			assert.Equal(t, tt.want, value.Const.Int)
			assert.Empty(t, value.Inputs, "a folded literal has no inputs")
		})
	}
}

func TestConstantFoldingComparisons(t *testing.T) {
	tests := []struct {
		expr string
		want bool
	}{
		{"2 < 5", true},
		{"5 < 2", false},
		{"5 < 5", false},
		{"9 > 3", true},
		{"3 > 9", false},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			value := returnValue(t, fmt.Sprintf("{ return %s; }", tt.expr))
			assert.Equal(t, graph.OpConst, value.Op)
			require.NotNil(t, value.Const)
			assert.True(t, value.Const.IsBool)
			assert.Equal(t, tt.want, value.Const.Bool)
		})
	}
}

func TestChainedExpressionsAssociateRight(t *testing.T) {
	// The grammar is flat: a op b op c parses as a op (b op c). So
	// 2 - 3 - 1 is 2 - (3 - 1), not (2 - 3) - 1.
	value := returnValue(t, "{ return 2 - 3 - 1; }")
	require.NotNil(t, value.Const)
	assert.Equal(t, int64(0), value.Const.Int)

	// Mixed operators chain by position too; there is no precedence.
	value = returnValue(t, "{ return 2 * 3 + 4; }")
	require.NotNil(t, value.Const)
	assert.Equal(t, int64(14), value.Const.Int, "2 * (3 + 4), not (2 * 3) + 4")
}

func TestReadIntIsNeverFolded(t *testing.T) {
	value := returnValue(t, "{ return READ_INT + 1; }")
	assert.Equal(t, graph.OpAdd, value.Op)
	require.Len(t, value.Inputs, 2)
	assert.Equal(t, graph.OpReadInput, value.Inputs[0].Op)
	assert.Nil(t, value.Inputs[0].Const)
}

func TestFoldingThroughVariables(t *testing.T) {
	// A variable bound to a literal stays constant, so y + 3 folds even
	// though the operand came through an assignment.
	value := returnValue(t, "{ int y = 10; return y + 3; }")
	assert.Equal(t, graph.OpConst, value.Op)
	require.NotNil(t, value.Const)
	assert.Equal(t, int64(13), value.Const.Int)
}

func TestNoFoldingThroughExternalReads(t *testing.T) {
	value := returnValue(t, "{ int x = READ_INT; return x + 1; }")
	assert.Equal(t, graph.OpAdd, value.Op)
}

func TestFoldingDisabled(t *testing.T) {
	result, err := NewWithoutFolding("{ return 2 + 3; }").Parse()
	require.NoError(t, err)

	rets := returnsOf(t, result)
	require.Len(t, rets, 1)
	value := rets[0].Inputs[0]
	assert.Equal(t, graph.OpAdd, value.Op)
	require.Len(t, value.Inputs, 2)
	assert.Equal(t, int64(2), value.Inputs[0].Const.Int)
	assert.Equal(t, int64(3), value.Inputs[1].Const.Int)
}

func TestComparisonResultsDoNotFoldFurther(t *testing.T) {
	// (2 < 3) yields a boolean constant; arithmetic over it builds a real
	// node instead of folding integers that are not there.
	value := returnValue(t, "{ return 1 + 2 < 3; }")
	// Right association: 1 + (2 < 3). The right side folds to a boolean,
	// the outer add does not fold.
	assert.Equal(t, graph.OpAdd, value.Op)
	require.Len(t, value.Inputs, 2)
	require.NotNil(t, value.Inputs[1].Const)
	assert.True(t, value.Inputs[1].Const.IsBool)
}

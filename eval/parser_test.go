package eval_test

import (
	"io"
	"strings"
	"testing"

	"github.com/midbel/lito/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrecedence(t *testing.T) {
	expr, err := eval.ParseString("1 + 2 * 3")
	require.NoError(t, err)

	add, ok := expr.(eval.Binary)
	require.True(t, ok)
	assert.Equal(t, eval.Add, add.Op)

	lit, ok := add.Left.(eval.Literal[int64])
	require.True(t, ok)
	assert.Equal(t, int64(1), lit.Value)

	mul, ok := add.Right.(eval.Binary)
	require.True(t, ok)
	assert.Equal(t, eval.Mul, mul.Op)
}

func TestParseRelationalBindsLooser(t *testing.T) {
	expr, err := eval.ParseString("1 + 2 < 4 && true")
	require.NoError(t, err)

	and, ok := expr.(eval.Binary)
	require.True(t, ok)
	assert.Equal(t, eval.And, and.Op)

	rel, ok := and.Left.(eval.Relational)
	require.True(t, ok)
	assert.Equal(t, eval.Lt, rel.Op)

	add, ok := rel.Left.(eval.Binary)
	require.True(t, ok)
	assert.Equal(t, eval.Add, add.Op)
}

func TestParseNumberKinds(t *testing.T) {
	expr, err := eval.ParseString("3")
	require.NoError(t, err)
	_, ok := expr.(eval.Literal[int64])
	assert.True(t, ok)

	expr, err = eval.ParseString("3.0")
	require.NoError(t, err)
	_, ok = expr.(eval.Literal[float64])
	assert.True(t, ok)
}

func TestParseLet(t *testing.T) {
	expr, err := eval.ParseString("let x = 4 in x - 1")
	require.NoError(t, err)

	let, ok := expr.(eval.Let)
	require.True(t, ok)
	assert.Equal(t, "x", let.Ident)
	require.NotNil(t, let.Body)

	sub, ok := let.Body.(eval.Binary)
	require.True(t, ok)
	assert.Equal(t, eval.Sub, sub.Op)
}

func TestParseLetWithoutBody(t *testing.T) {
	expr, err := eval.ParseString("let x = 4")
	require.NoError(t, err)

	let, ok := expr.(eval.Let)
	require.True(t, ok)
	assert.Nil(t, let.Body)
}

func TestParseLetMultiline(t *testing.T) {
	expr, err := eval.ParseString("let x = 4\nin x * x")
	require.NoError(t, err)

	let, ok := expr.(eval.Let)
	require.True(t, ok)
	require.NotNil(t, let.Body)
}

func TestParseSequence(t *testing.T) {
	parser := eval.NewParser(strings.NewReader("let x = 1; x + 1"))

	expr, err := parser.Parse()
	require.NoError(t, err)
	_, ok := expr.(eval.Let)
	assert.True(t, ok)

	expr, err = parser.Parse()
	require.NoError(t, err)
	_, ok = expr.(eval.Binary)
	assert.True(t, ok)

	_, err = parser.Parse()
	assert.ErrorIs(t, err, io.EOF)
}

func TestParseErrors(t *testing.T) {
	for _, src := range []string{"let 5 = 3", "(1 + 2", "1 +", "let x 4", "in x", "1 2"} {
		_, err := eval.ParseString(src)
		assert.Error(t, err, src)
	}
}

func TestParsePositions(t *testing.T) {
	expr, err := eval.ParseString("1 +\n2")
	assert.Error(t, err)
	assert.Nil(t, expr)

	expr, err = eval.ParseString("\n\nlet x = 1 in x")
	require.NoError(t, err)
	let, ok := expr.(eval.Let)
	require.True(t, ok)
	assert.Equal(t, 3, let.Line)
}

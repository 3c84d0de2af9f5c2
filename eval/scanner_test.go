package eval_test

import (
	"strings"
	"testing"

	"github.com/midbel/lito/eval"
	"github.com/stretchr/testify/assert"
)

func scanAll(src string) []eval.Token {
	var (
		scan = eval.Scan(strings.NewReader(src))
		all  []eval.Token
	)
	for {
		tok := scan.Scan()
		if tok.Type == eval.EOF {
			break
		}
		all = append(all, tok)
	}
	return all
}

func TestScanLet(t *testing.T) {
	toks := scanAll("let x = 3.14 in x < 10 // trailing")
	want := []struct {
		kind    rune
		literal string
	}{
		{eval.Keyword, "let"},
		{eval.Ident, "x"},
		{eval.Assign, ""},
		{eval.Number, "3.14"},
		{eval.Keyword, "in"},
		{eval.Ident, "x"},
		{eval.Lt, ""},
		{eval.Number, "10"},
		{eval.Comment, "trailing"},
	}
	assert.Len(t, toks, len(want))
	for i, w := range want {
		assert.Equal(t, w.kind, toks[i].Type, "token %d", i)
		assert.Equal(t, w.literal, toks[i].Literal, "token %d", i)
	}
}

func TestScanOperators(t *testing.T) {
	toks := scanAll("+ - * / % && || ! == != < <= > >= ( ) =")
	kinds := []rune{
		eval.Add, eval.Sub, eval.Mul, eval.Div, eval.Mod,
		eval.And, eval.Or, eval.Not,
		eval.Eq, eval.Ne, eval.Lt, eval.Le, eval.Gt, eval.Ge,
		eval.Lparen, eval.Rparen, eval.Assign,
	}
	assert.Len(t, toks, len(kinds))
	for i, k := range kinds {
		assert.Equal(t, k, toks[i].Type, "token %d", i)
	}
}

func TestScanLines(t *testing.T) {
	toks := scanAll("1\n2")
	assert.Len(t, toks, 3)
	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, eval.EOL, toks[1].Type)
	assert.Equal(t, 2, toks[2].Line)
}

func TestScanInvalid(t *testing.T) {
	toks := scanAll("1 & 2")
	assert.Len(t, toks, 3)
	assert.Equal(t, eval.Invalid, toks[1].Type)
}

package eval

import (
	"fmt"
	"io"
	"strings"
)

// Display renders the tree rooted at e as an indented subtree. It is
// purely presentational: rendering the same tree twice gives the same
// text and leaves evaluation untouched.
func Display(e Expression) string {
	var str strings.Builder
	Fdisplay(&str, e)
	return str.String()
}

func Fdisplay(w io.Writer, e Expression) {
	displayExpr(w, e, 0)
}

func displayExpr(w io.Writer, e Expression, indent int) {
	switch n := e.(type) {
	case Literal[int64]:
		printIndented(w, fmt.Sprintf("integer(%d)", n.Value), indent)
	case Literal[float64]:
		printIndented(w, fmt.Sprintf("real(%g)", n.Value), indent)
	case Literal[bool]:
		printIndented(w, fmt.Sprintf("boolean(%t)", n.Value), indent)
	case Variable:
		printIndented(w, fmt.Sprintf("variable(%s)", n.Ident), indent)
	case Unary:
		printIndented(w, fmt.Sprintf("unary[%s](", opText(n.Op)), indent)
		displayExpr(w, n.Expr, indent+2)
		printIndented(w, ")", indent)
	case Binary:
		printIndented(w, fmt.Sprintf("binary[%s](", opText(n.Op)), indent)
		displayExpr(w, n.Left, indent+2)
		displayExpr(w, n.Right, indent+2)
		printIndented(w, ")", indent)
	case Relational:
		printIndented(w, fmt.Sprintf("relational[%s](", opText(n.Op)), indent)
		displayExpr(w, n.Left, indent+2)
		displayExpr(w, n.Right, indent+2)
		printIndented(w, ")", indent)
	case Let:
		printIndented(w, fmt.Sprintf("let[%s](", n.Ident), indent)
		displayExpr(w, n.Expr, indent+2)
		if n.Body != nil {
			printIndented(w, ") in (", indent)
			displayExpr(w, n.Body, indent+2)
		}
		printIndented(w, ")", indent)
	default:
		printIndented(w, fmt.Sprintf("unknown(%T)", e), indent)
	}
}

func printIndented(w io.Writer, str string, indent int) {
	fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", indent), str)
}

package formula

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

type expression struct {
	Left  *term     `@@`
	Right []*opTerm `@@*`
}

type opTerm struct {
	Op   string `@("+" | "-")`
	Term *term  `@@`
}

type term struct {
	Left  *unary     `@@`
	Right []*opUnary `@@*`
}

type opUnary struct {
	Op    string `@("*" | "/")`
	Unary *unary `@@`
}

type unary struct {
	Signs []string `@("+" | "-")*`
	Power *power   `@@`
}

type power struct {
	Base     *primary `@@`
	Exponent *unary   `( "**" @@ )?`
}

type primary struct {
	Number string      `  @Number`
	Group  *expression `| "(" @@ ")"`
}

var formulaLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Number", Pattern: `(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`},
	{Name: "Operator", Pattern: `\*\*|[-+*/]`},
	{Name: "Paren", Pattern: `[()]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var formulaParser = participle.MustBuild[expression](
	participle.Lexer(formulaLexer),
	participle.Elide("Whitespace"),
)

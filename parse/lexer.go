package parse

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	texLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `%[^\n]*`},
		{Name: "CharCode", Pattern: `\\char"[0-9A-Fa-f]+`},
		{Name: "Command", Pattern: `\\(?:[A-Za-z]+|[^A-Za-z])`},
		{Name: "Whitespace", Pattern: `\s+`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
		{Name: "Char", Pattern: `.`},
	})

	commentType    = mustTokenType("Comment")
	charCodeType   = mustTokenType("CharCode")
	commandType    = mustTokenType("Command")
	whitespaceType = mustTokenType("Whitespace")
	lbraceType     = mustTokenType("LBrace")
	rbraceType     = mustTokenType("RBrace")
	charType       = mustTokenType("Char")

	formulaParser = participle.MustBuild[tokenStream](
		participle.Lexer(texLexer),
	)
)

// tokenStream records every token of a formula, whitespace and comments
// included, so that the verbatim source of any span can be rebuilt.
type tokenStream struct {
	Tokens []lexer.Token
}

// Parse implements participle.Parseable for tokenStream.
func (s *tokenStream) Parse(lex *lexer.PeekingLexer) error {
	for tok := lex.Peek(); !tok.EOF(); tok = lex.Peek() {
		s.Tokens = append(s.Tokens, *lex.Next())
	}
	return nil
}

func tokenize(src string) ([]lexer.Token, error) {
	stream, err := formulaParser.ParseString("", src)
	if err != nil {
		return nil, fmt.Errorf("tokenizing formula: %w", err)
	}
	return stream.Tokens, nil
}

// verbatim concatenates the source text of toks.
func verbatim(toks []lexer.Token) string {
	var sb strings.Builder
	for _, tok := range toks {
		sb.WriteString(tok.Value)
	}
	return sb.String()
}

func mustTokenType(name string) lexer.TokenType {
	tt, ok := texLexer.Symbols()[name]
	if !ok {
		panic(fmt.Sprintf("token %s not defined", name))
	}
	return tt
}

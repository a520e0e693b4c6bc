package token

type TokenType string

// Token is a single lexeme with its source position.
// Line and Column are 1-based and point at the first character.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal string
	Line    int
	Column  int
}

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	// Identifiers. The dialect distinguishes scope tokens ('a) from
	// ordinary identifiers; case is not significant to the lexer.
	IDENT = "IDENT"
	SCOPE = "SCOPE" // 'a, 'static

	// Delimiters
	LPAREN    = "("
	RPAREN    = ")"
	LBRACE    = "{"
	RBRACE    = "}"
	LBRACKET  = "["
	RBRACKET  = "]"
	LT        = "<"
	GT        = ">"
	COMMA     = ","
	COLON     = ":"
	SEMICOLON = ";"

	// Operators
	PLUS    = "+"
	ASSIGN  = "="
	ARROW   = "->"
	PATHSEP = "::"

	// Keywords
	TYPE     = "TYPE"
	KIND     = "KIND"
	DEFKIND  = "DEFKIND"
	IMPLKIND = "IMPLKIND"
	APPLY    = "APPLY"
	FOR      = "FOR"
	WHERE    = "WHERE"
)

var keywords = map[string]TokenType{
	"type":     TYPE,
	"kind":     KIND,
	"defkind":  DEFKIND,
	"implkind": IMPLKIND,
	"apply":    APPLY,
	"for":      FOR,
	"where":    WHERE,
}

// LookupIdent returns the keyword type for ident, or IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

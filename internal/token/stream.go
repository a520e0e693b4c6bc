package token

// Stream is a read-once view over a lexed token slice.
type Stream struct {
	tokens []Token
	pos    int
}

func NewStream(tokens []Token) *Stream {
	return &Stream{tokens: tokens}
}

// Next returns the next token, or EOF forever once exhausted.
func (s *Stream) Next() Token {
	if s.pos >= len(s.tokens) {
		return Token{Type: EOF}
	}
	tok := s.tokens[s.pos]
	s.pos++
	return tok
}

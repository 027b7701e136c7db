package lib

// checkBrackets verifies that every ")" closes an earlier "(" and that nothing
// is left open, ignoring everything else in the sequence.
func checkBrackets(tokens []token) bool {
	stack := []token{}

	for _, tok := range tokens {
		switch tok.tokType {
		case tokenTypeLParen:
			stack = append(stack, tok)
		case tokenTypeRParen:
			if len(stack) == 0 {
				return false
			}
			stack = stack[:len(stack)-1]
		}
	}

	return len(stack) == 0
}

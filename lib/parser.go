package lib

// The grammar, one scan method per level:
//
//	additive       := multiplicative (('+'|'-') multiplicative)*
//	multiplicative := power (('*'|'/'|'//'|'%') power)*
//	power          := primary ('**' power)?
//	primary        := NUMBER | '(' additive ')'
//
// Each method takes the index of the next unconsumed token and returns the
// computed value together with the index following whatever it consumed.
// Values are computed while parsing; no tree is kept.
type parser struct {
	tokens   []token
	maxDepth int
	depth    int
}

func newParser(tokens []token, maxDepth int) *parser {
	return &parser{
		tokens:   tokens,
		maxDepth: maxDepth,
	}
}

// at never runs past the EOF token, which is always last.
func (p *parser) at(i int) token {
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *parser) scanAdditive(i int) (float64, int, error) {
	v, i, err := p.scanMultiplicative(i)
	if err != nil {
		return 0, i, err
	}

	for {
		op := p.at(i).tokType
		if op != tokenTypePlus && op != tokenTypeMinus {
			break
		}

		rhs, next, err := p.scanMultiplicative(i + 1)
		if err != nil {
			return 0, next, err
		}
		i = next

		if op == tokenTypePlus {
			v = v + rhs
		} else {
			v = v - rhs
		}
	}

	return v, i, nil
}

func (p *parser) scanMultiplicative(i int) (float64, int, error) {
	v, i, err := p.scanPower(i)
	if err != nil {
		return 0, i, err
	}

	for {
		op := p.at(i).tokType
		if op != tokenTypeAsterisk && op != tokenTypeSlash && op != tokenTypeDoubleSlash && op != tokenTypePercent {
			break
		}

		rhs, next, err := p.scanPower(i + 1)
		if err != nil {
			return 0, next, err
		}
		i = next

		v, err = multiply(op, v, rhs)
		if err != nil {
			return 0, i, err
		}
	}

	return v, i, nil
}

func multiply(op tokenType, lhs float64, rhs float64) (float64, error) {
	switch op {
	case tokenTypeSlash:
		if rhs == 0 {
			return 0, ErrDivisionByZero
		}
		return lhs / rhs, nil
	case tokenTypeDoubleSlash:
		if rhs == 0 {
			return 0, ErrDivisionByZero
		}
		if !isIntegral(lhs) || !isIntegral(rhs) {
			return 0, evalErrorf(IntegerOnlyOperation, "floor division requires integers")
		}
		return floorDiv(lhs, rhs), nil
	case tokenTypePercent:
		if !isIntegral(lhs) || !isIntegral(rhs) {
			return 0, evalErrorf(IntegerOnlyOperation, "modulo requires integers")
		}
		if rhs == 0 {
			return 0, evalErrorf(DivisionByZero, "%s: modulo by zero", ErrDivisionByZero.Msg)
		}
		return floorMod(lhs, rhs), nil
	default:
		return lhs * rhs, nil
	}
}

func (p *parser) scanPower(i int) (float64, int, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.maxDepth {
		return 0, i, evalErrorf(TooDeep, "%s (limit %d)", ErrTooDeep.Msg, p.maxDepth)
	}

	v, i, err := p.scanPrimary(i)
	if err != nil {
		return 0, i, err
	}

	if p.at(i).tokType != tokenTypeDoubleAsterisk {
		return v, i, nil
	}

	// Recursing here instead of looping makes ** right associative.
	exp, i, err := p.scanPower(i + 1)
	if err != nil {
		return 0, i, err
	}

	v, err = power(v, exp)
	return v, i, err
}

func (p *parser) scanPrimary(i int) (float64, int, error) {
	tok := p.at(i)

	switch tok.tokType {
	case tokenTypeLParen:
		v, next, err := p.scanAdditive(i + 1)
		if err != nil {
			return 0, next, err
		}
		if _, err := p.requireToken(next, tokenTypeRParen); err != nil {
			return 0, next, evalErrorf(UnmatchedBracket, "%s: %s", ErrUnmatchedBracket.Msg, err)
		}
		return v, next + 1, nil
	case tokenTypeNumber:
		return tok.value, i + 1, nil
	}

	return 0, i, evalErrorf(InvalidToken, "%s: expected a number or \"(\" but got %s", ErrInvalidToken.Msg, tokenString(tok))
}

func (p *parser) requireToken(i int, typ tokenType) (token, error) {
	tok := p.at(i)
	if tok.tokType != typ {
		return token{}, evalErrorf(InvalidToken, "expected %s but got %s", tokenTypeString(typ), tokenString(tok))
	}
	return tok, nil
}

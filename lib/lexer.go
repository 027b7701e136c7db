package lib

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

var (
	// Whole expression: numbers, operators and brackets separated by optional
	// whitespace.
	expressionPattern = regexp.MustCompile(`^\s*(?:(?:\d+(?:\.\d*)?|\.\d+|\*\*|//|[-+*/%()])\s*)*$`)
	multiDotPattern   = regexp.MustCompile(`\d*\.\d*\.`)

	// Longest operators come first so "**" and "//" win over "*" and "/".
	tokenPattern  = regexp.MustCompile(`(\d+(?:\.\d*)?|\.\d+)|(\*\*|//|[-+*/%()])`)
	numberPattern = regexp.MustCompile(`^[-+]?(?:\d+(?:\.\d*)?|\.\d+)$`)
)

func validate(expr string) bool {
	return expressionPattern.MatchString(expr) && !multiDotPattern.MatchString(expr)
}

// split cuts a validated expression into number, operator and bracket
// substrings. A sign directly attached to a number becomes part of that
// number when it cannot be a binary operator, i.e. at the start of the
// expression or right after another operator or an opening bracket.
func split(expr string) ([]string, error) {
	expr = strings.TrimSpace(expr)
	matches := tokenPattern.FindAllStringSubmatchIndex(expr, -1)

	parts := []string{}
	prevEnd := 0
	for i := 0; i < len(matches); i++ {
		m := matches[i]
		if strings.TrimSpace(expr[prevEnd:m[0]]) != "" {
			return nil, evalErrorf(PatternError, "%s: unexpected %q", ErrPatternError.Msg, expr[prevEnd:m[0]])
		}
		prevEnd = m[1]

		part := expr[m[0]:m[1]]
		if (part == "+" || part == "-") && i+1 < len(matches) && signCanPrefix(parts) {
			next := matches[i+1]
			if next[2] >= 0 && next[0] == m[1] {
				parts = append(parts, part+expr[next[0]:next[1]])
				prevEnd = next[1]
				i++
				continue
			}
		}
		parts = append(parts, part)
	}

	if strings.TrimSpace(expr[prevEnd:]) != "" {
		return nil, evalErrorf(PatternError, "%s: unexpected %q", ErrPatternError.Msg, expr[prevEnd:])
	}

	return parts, nil
}

func signCanPrefix(parts []string) bool {
	if len(parts) == 0 {
		return true
	}
	typ, isSymbol := symbolTokens[parts[len(parts)-1]]
	if !isSymbol {
		return false
	}
	return token{tokType: typ}.isOperator() || typ == tokenTypeLParen
}

// tokenize classifies each substring and terminates the sequence with an EOF
// token.
func tokenize(parts []string) ([]token, error) {
	tokens := make([]token, 0, len(parts)+1)

	for _, part := range parts {
		if typ, ok := symbolTokens[part]; ok {
			tokens = append(tokens, token{tokType: typ})
			continue
		}

		if !numberPattern.MatchString(part) {
			return nil, evalErrorf(PatternError, "%s: %q is not a number", ErrPatternError.Msg, part)
		}
		value, err := strconv.ParseFloat(part, 64)
		if errors.Is(err, strconv.ErrRange) {
			return nil, evalErrorf(Overflow, "%s: %s", ErrOverflow.Msg, part)
		} else if err != nil {
			return nil, evalErrorf(PatternError, "%s: %s", ErrPatternError.Msg, err)
		}
		tokens = append(tokens, token{tokType: tokenTypeNumber, value: value})
	}

	return append(tokens, token{tokType: tokenTypeEOF}), nil
}

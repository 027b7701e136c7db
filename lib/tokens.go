package lib

import "fmt"

type tokenType int

const (
	tokenTypeNumber tokenType = iota
	tokenTypePlus
	tokenTypeMinus
	tokenTypeAsterisk
	tokenTypeSlash
	tokenTypeDoubleSlash
	tokenTypePercent
	tokenTypeDoubleAsterisk
	tokenTypeLParen
	tokenTypeRParen
	tokenTypeEOF
)

// Symbols recognised by the tokenizer. Anything else must be a number.
var symbolTokens = map[string]tokenType{
	"+":  tokenTypePlus,
	"-":  tokenTypeMinus,
	"*":  tokenTypeAsterisk,
	"/":  tokenTypeSlash,
	"//": tokenTypeDoubleSlash,
	"%":  tokenTypePercent,
	"**": tokenTypeDoubleAsterisk,
	"(":  tokenTypeLParen,
	")":  tokenTypeRParen,
}

type token struct {
	tokType tokenType
	value   float64
}

func (t token) isOperator() bool {
	switch t.tokType {
	case tokenTypePlus, tokenTypeMinus, tokenTypeAsterisk, tokenTypeSlash,
		tokenTypeDoubleSlash, tokenTypePercent, tokenTypeDoubleAsterisk:
		return true
	}
	return false
}

func tokenTypeString(typ tokenType) string {
	switch typ {
	case tokenTypeNumber:
		return "number"
	case tokenTypeEOF:
		return "end of input"
	}
	for sym, t := range symbolTokens {
		if t == typ {
			return sym
		}
	}
	return "unknown"
}

func tokenString(tok token) string {
	if tok.tokType == tokenTypeNumber {
		return fmt.Sprintf("number %g", tok.value)
	}
	return tokenTypeString(tok.tokType)
}

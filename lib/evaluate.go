package lib

import (
	"github.com/rs/zerolog"
)

const DefaultMaxDepth = 256

// Evaluator runs the whole pipeline: validation, splitting, tokenizing,
// bracket checking and the recursive descent. It holds no state between
// calls, so one Evaluator may be shared by many goroutines.
type Evaluator struct {
	// MaxDepth bounds nesting of brackets and chained "**". Zero means
	// DefaultMaxDepth.
	MaxDepth int
	Logger   zerolog.Logger
}

func NewEvaluator(cfg Config, logger zerolog.Logger) *Evaluator {
	return &Evaluator{
		MaxDepth: cfg.MaxDepth,
		Logger:   logger,
	}
}

var defaultEvaluator = &Evaluator{MaxDepth: DefaultMaxDepth, Logger: zerolog.Nop()}

// Evaluate computes the value of an arithmetic expression such as
// "(2+3)*4" or "2**3**2". Failures are always *EvalError.
func Evaluate(expr string) (float64, error) {
	return defaultEvaluator.Evaluate(expr)
}

func (e *Evaluator) Evaluate(expr string) (float64, error) {
	log := e.Logger.With().Str("expr", expr).Logger()

	v, err := e.evaluate(expr, log)
	if err != nil {
		kind, _ := KindOf(err)
		log.Debug().Stringer("kind", kind).Err(err).Msg("evaluation failed")
		return 0, err
	}

	log.Debug().Float64("result", v).Msg("evaluated")
	return v, nil
}

func (e *Evaluator) evaluate(expr string, log zerolog.Logger) (float64, error) {
	if !validate(expr) {
		return 0, ErrInvalidCharacters
	}

	parts, err := split(expr)
	if err != nil {
		return 0, err
	}
	log.Debug().Strs("parts", parts).Msg("split")

	tokens, err := tokenize(parts)
	if err != nil {
		return 0, err
	}

	if !checkBrackets(tokens) {
		return 0, ErrUnbalancedBrackets
	}

	maxDepth := e.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	p := newParser(tokens, maxDepth)
	v, i, err := p.scanAdditive(0)
	if err != nil {
		return 0, err
	}

	// Everything up to EOF has to be consumed, otherwise "2 3" would quietly
	// evaluate to 2.
	if _, err := p.requireToken(i, tokenTypeEOF); err != nil {
		return 0, evalErrorf(InvalidToken, "%s: unexpected %s after complete expression", ErrInvalidToken.Msg, tokenString(p.at(i)))
	}

	return v, nil
}

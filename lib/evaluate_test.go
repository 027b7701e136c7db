package lib

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func requireEval(t *testing.T, expr string, expected float64) {
	t.Helper()
	v, err := Evaluate(expr)
	require.NoError(t, err, expr)
	require.Equal(t, expected, v, expr)
}

func requireEvalError(t *testing.T, expr string, kind ErrorKind) {
	t.Helper()
	_, err := Evaluate(expr)
	requireKind(t, err, kind)
}

func TestEvalBasicOps(t *testing.T) {
	requireEval(t, "2+3", 5)
	requireEval(t, "2-5", -3)
	requireEval(t, "2*3+4", 10)
	requireEval(t, "(2+3)*4", 20)
}

func TestEvalDivision(t *testing.T) {
	requireEval(t, "10/2", 5)
	requireEval(t, "7//3", 2)
	requireEval(t, "7%3", 1)
	requireEval(t, "1/4", 0.25)
	requireEval(t, "-7//2", -4)
	requireEval(t, "-7%3", 2)
	requireEval(t, "7%-3", -2)
	requireEval(t, "7.0 // 2.0", 3)
}

func TestEvalPowerRightAssoc(t *testing.T) {
	requireEval(t, "2**3**2", 512)
	requireEval(t, "(2**3)**2", 64)
	requireEval(t, "2**-1", 0.5)
	requireEval(t, "-2**2", 4)
	requireEval(t, "2*3**2", 18)
}

func TestEvalUnary(t *testing.T) {
	requireEval(t, "-3+5", 2)
	requireEval(t, "+3+5", 8)
	requireEval(t, "2--3", 5)
	requireEval(t, "2 - -3", 5)
	requireEval(t, "2*-3", -6)
	requireEval(t, "(-2)*(+3)", -6)
}

func TestEvalAssociativity(t *testing.T) {
	requireEval(t, "10-4-3", 3)
	requireEval(t, "64/4/2", 8)
	requireEval(t, "100//7//2", 7)
	requireEval(t, "100%7%4", 2)
	requireEval(t, "2+3*4-6/2", 11)
}

func TestEvalWhitespaceAndNesting(t *testing.T) {
	requireEval(t, "  ( ( 1 + 2 ) * ( 3 + 4 ) )  ", 21)
	requireEval(t, "((((5))))", 5)
	requireEval(t, "3.5", 3.5)
	requireEval(t, ".5 + 5.", 5.5)
}

func TestEvalErrors(t *testing.T) {
	requireEvalError(t, "2/0", DivisionByZero)
	requireEvalError(t, "2//0", DivisionByZero)
	requireEvalError(t, "2.5//0", DivisionByZero)
	requireEvalError(t, "5%0", DivisionByZero)
	requireEvalError(t, "0**-1", DivisionByZero)
	requireEvalError(t, "2//2.5", IntegerOnlyOperation)
	requireEvalError(t, "5.1%2", IntegerOnlyOperation)
	requireEvalError(t, "0**0", IndeterminateForm)
	requireEvalError(t, "(1-1)**(2-2)", IndeterminateForm)
	requireEvalError(t, "(-8)**(1/3)", DomainError)
	requireEvalError(t, "10**400", Overflow)
	requireEvalError(t, "2+2 junk", InvalidCharacters)
	requireEvalError(t, "1.2.3", InvalidCharacters)
	requireEvalError(t, "(2+3", UnbalancedBrackets)
	requireEvalError(t, ")(", UnbalancedBrackets)
	requireEvalError(t, "(2 3)", UnmatchedBracket)
	requireEvalError(t, "2 3", InvalidToken)
	requireEvalError(t, "2+", InvalidToken)
	requireEvalError(t, "*2", InvalidToken)
	requireEvalError(t, "-(2)", InvalidToken)
	requireEvalError(t, "()", InvalidToken)
	requireEvalError(t, "", InvalidToken)
}

func TestEvalErrorMessages(t *testing.T) {
	_, err := Evaluate("2//2.5")
	require.EqualError(t, err, "floor division requires integers")

	_, err = Evaluate("5.1%2")
	require.EqualError(t, err, "modulo requires integers")

	_, err = Evaluate("2/0")
	require.EqualError(t, err, "division by zero")

	_, err = Evaluate("a")
	require.EqualError(t, err, "expression contains invalid characters")
}

func TestEvalErrorsIs(t *testing.T) {
	_, err := Evaluate("1//0")
	require.True(t, errors.Is(err, ErrDivisionByZero))
	require.False(t, errors.Is(err, ErrIntegerOnly))

	_, err = Evaluate("1//0.5")
	require.True(t, errors.Is(err, ErrIntegerOnly))
}

func TestEvalTooDeep(t *testing.T) {
	e := &Evaluator{MaxDepth: 3}

	v, err := e.Evaluate("((1))")
	require.NoError(t, err)
	require.Equal(t, 1.0, v)

	_, err = e.Evaluate("((((1))))")
	requireKind(t, err, TooDeep)

	_, err = e.Evaluate("2**2**2**2")
	requireKind(t, err, TooDeep)

	deep := strings.Repeat("(", DefaultMaxDepth+10) + "1" + strings.Repeat(")", DefaultMaxDepth+10)
	requireEvalError(t, deep, TooDeep)
}

func TestEvalIdempotent(t *testing.T) {
	first, err := Evaluate("1/3 + 2**0.5 * 7")
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		v, err := Evaluate("1/3 + 2**0.5 * 7")
		require.NoError(t, err)
		require.Equal(t, math.Float64bits(first), math.Float64bits(v))
	}
}

func TestEvalConcurrent(t *testing.T) {
	exprs := map[string]float64{
		"2**3**2": 512,
		"(2+3)*4": 20,
		"-7//2":   -4,
		"100%7%4": 2,
		"1/4+1/4": 0.5,
	}

	var wg sync.WaitGroup
	results := make(chan bool, 50*len(exprs))
	for i := 0; i < 50; i++ {
		for expr, expected := range exprs {
			wg.Add(1)
			go func(expr string, expected float64) {
				defer wg.Done()
				v, err := Evaluate(expr)
				results <- err == nil && v == expected
			}(expr, expected)
		}
	}
	wg.Wait()
	close(results)

	for ok := range results {
		require.True(t, ok)
	}
}

func TestEvaluatorLogsFailures(t *testing.T) {
	buf := &bytes.Buffer{}
	e := NewEvaluator(DefaultConfig(), zerolog.New(buf).Level(zerolog.DebugLevel))

	_, err := e.Evaluate("1/0")
	require.Error(t, err)
	require.Contains(t, buf.String(), `"kind":"DivisionByZero"`)
	require.Contains(t, buf.String(), `"expr":"1/0"`)

	buf.Reset()
	v, err := e.Evaluate("1+1")
	require.NoError(t, err)
	require.Equal(t, 2.0, v)
	require.Contains(t, buf.String(), `"result":2`)
}

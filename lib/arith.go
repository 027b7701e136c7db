package lib

import "math"

func isIntegral(f float64) bool {
	return !math.IsInf(f, 0) && f == math.Trunc(f)
}

// floorDiv rounds the quotient toward negative infinity. It works from the
// floating point remainder rather than math.Floor(a/b) so that the result
// stays consistent with floorMod for large operands.
func floorDiv(a, b float64) float64 {
	mod := math.Mod(a, b)
	div := (a - mod) / b
	if mod != 0 && (b < 0) != (mod < 0) {
		div -= 1
	}
	if div == 0 {
		return math.Copysign(0, a/b)
	}
	floor := math.Floor(div)
	if div-floor > 0.5 {
		floor += 1
	}
	return floor
}

// floorMod returns a remainder carrying the sign of the divisor.
func floorMod(a, b float64) float64 {
	mod := math.Mod(a, b)
	if mod == 0 {
		return math.Copysign(0, b)
	}
	if (b < 0) != (mod < 0) {
		mod += b
	}
	return mod
}

func power(base, exp float64) (float64, error) {
	if base == 0 && exp == 0 {
		return 0, ErrIndeterminateForm
	}
	if base == 0 && exp < 0 {
		return 0, evalErrorf(DivisionByZero, "%s: 0 cannot be raised to a negative power", ErrDivisionByZero.Msg)
	}

	result := math.Pow(base, exp)
	if math.IsNaN(result) {
		return 0, evalErrorf(DomainError, "%s: %g ** %g", ErrDomain.Msg, base, exp)
	}
	if math.IsInf(result, 0) && !math.IsInf(base, 0) && !math.IsInf(exp, 0) {
		return 0, evalErrorf(Overflow, "%s: %g ** %g", ErrOverflow.Msg, base, exp)
	}
	return result, nil
}

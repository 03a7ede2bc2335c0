// Package calc evaluates spoken or typed arithmetic. Word operators are
// substituted first, then everything outside a small arithmetic alphabet is
// stripped, and the remainder is evaluated in a sandboxed expression
// engine. There is no variable binding and no function calls.
package calc

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/expr-lang/expr"
)

// ErrEmpty reports that nothing evaluable remained after sanitizing.
var ErrEmpty = errors.New("no evaluable expression")

var wordOps = strings.NewReplacer(
	"plus", "+",
	"minus", "-",
	"times", "*",
	"multiply", "*",
	"divided by", "/",
	"divide", "/",
)

var nonArithmetic = regexp.MustCompile(`[^0-9+\-*/().\s]`)

// Evaluate computes the arithmetic value of a natural-language expression
// like "2 plus 2" or "(3 * 4) / 2".
func Evaluate(expression string) (float64, error) {
	cleaned := wordOps.Replace(strings.ToLower(expression))
	cleaned = nonArithmetic.ReplaceAllString(cleaned, "")
	if strings.TrimSpace(cleaned) == "" {
		return 0, ErrEmpty
	}

	program, err := expr.Compile(cleaned)
	if err != nil {
		return 0, fmt.Errorf("compiling expression %q: %w", cleaned, err)
	}
	out, err := expr.Run(program, nil)
	if err != nil {
		return 0, fmt.Errorf("evaluating expression %q: %w", cleaned, err)
	}

	switch v := out.(type) {
	case int:
		return float64(v), nil
	case float64:
		return v, nil
	default:
		return 0, fmt.Errorf("expression %q did not yield a number", cleaned)
	}
}

// Answer formats the conversational reply for a calculation request,
// mirroring Evaluate's error cases as apologetic sentences.
func Answer(expression string) string {
	result, err := Evaluate(expression)
	if err != nil {
		if errors.Is(err, ErrEmpty) {
			return "I couldn't understand the mathematical expression."
		}
		return "Sorry, I couldn't calculate that expression."
	}
	if result == float64(int64(result)) {
		return fmt.Sprintf("The result is: %d", int64(result))
	}
	return fmt.Sprintf("The result is: %g", result)
}

package lockstep

import (
	"strings"
	"unicode"

	"github.com/godbus/dbus/v5"

	"github.com/dyluth/lockstep/pkg/introspect"
)

// Signature is a D-Bus type signature, e.g. "so" or "a{sv}".
type Signature string

// NoParameters is the body signature of a signal without args and of a
// struct without exported fields.
const NoParameters Signature = ""

func (s Signature) String() string {
	return string(s)
}

// Valid reports whether the normalized signature parses as a sequence of
// complete D-Bus types.
func (s Signature) Valid() bool {
	_, err := dbus.ParseSignature(string(Normalize(s)))
	return err == nil
}

// Extract concatenates the arg types of sig in declared order.
func Extract(sig *introspect.Signal) Signature {
	if sig == nil || len(sig.Args) == 0 {
		return NoParameters
	}

	var b strings.Builder
	for _, arg := range sig.Args {
		b.WriteString(arg.Type)
	}
	return Signature(b.String())
}

// Normalize strips whitespace and, when the whole signature is a single
// struct, its outer parentheses. "(so)" and "so" therefore normalize to the
// same body, and "()" normalizes to NoParameters.
func Normalize(s Signature) Signature {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, string(s))

	if n := len(stripped); n >= 2 && stripped[0] == '(' && closingParen(stripped) == n-1 {
		stripped = stripped[1 : n-1]
	}
	return Signature(stripped)
}

// closingParen returns the index of the ')' matching the '(' at index 0,
// or -1 if it is unbalanced.
func closingParen(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// Compare returns nil if expected and actual are the same after Normalize,
// otherwise a *MismatchError carrying both signatures verbatim.
func Compare(expected, actual Signature) error {
	if Normalize(expected) == Normalize(actual) {
		return nil
	}
	return &MismatchError{Expected: expected, Actual: actual}
}

package lockstep

import (
	"errors"
	"fmt"

	"github.com/dyluth/lockstep/pkg/introspect"
)

// Validate resolves hint in docs and compares the documented body signature
// against actual. It returns the binding even when the comparison fails so
// callers can report which signal was checked.
func Validate(docs []*introspect.Document, hint Hint, actual Signature) (Resolved, error) {
	resolved, err := Resolve(docs, hint)
	if err != nil {
		return Resolved{}, err
	}

	if err := Compare(resolved.Signature(), actual); err != nil {
		var mismatch *MismatchError
		if errors.As(err, &mismatch) {
			mismatch.Signal = resolved
		}
		return resolved, err
	}
	return resolved, nil
}

// ValidateValue validates the Go value v. The structure identifier is the
// name of v's type and the actual signature comes from BodySignatureOf.
func ValidateValue(docs []*introspect.Document, v any, opts ...HintOption) (Resolved, error) {
	actual, err := BodySignatureOf(v)
	if err != nil {
		return Resolved{}, err
	}

	name := typeName(v)
	if name == "" {
		return Resolved{}, fmt.Errorf("cannot derive a structure identifier from unnamed type %T", v)
	}
	return Validate(docs, NewHint(name, opts...), actual)
}

// Check parses sources and validates hint against actual in one step.
func Check(sources []introspect.Source, hint Hint, actual Signature) (Resolved, error) {
	docs, err := introspect.ParseAll(sources)
	if err != nil {
		return Resolved{}, err
	}
	return Validate(docs, hint, actual)
}

package lockstep

import (
	"errors"
	"fmt"
)

// NotFoundKind distinguishes the ways a resolution can come up empty.
type NotFoundKind int

const (
	NoInterfaceFound NotFoundKind = iota
	NoSignalFound
	NoDocumentFound
)

// Sentinels matched by NotFoundError.Is.
var (
	ErrNoInterface = errors.New("no interface found")
	ErrNoSignal    = errors.New("no signal found")
	ErrNoDocument  = errors.New("no document found")
)

func (k NotFoundKind) String() string {
	switch k {
	case NoInterfaceFound:
		return "NoInterfaceFound"
	case NoSignalFound:
		return "NoSignalFound"
	case NoDocumentFound:
		return "NoDocumentFound"
	default:
		return fmt.Sprintf("NotFoundKind(%d)", int(k))
	}
}

// NotFoundError indicates that no signal matched the hint.
// Key is the explicit signal name if one was given, else the structure identifier.
type NotFoundError struct {
	Kind      NotFoundKind
	Key       string
	Interface string
}

func (e *NotFoundError) Error() string {
	switch e.Kind {
	case NoSignalFound:
		if e.Interface != "" {
			return fmt.Sprintf("no signal with name '%s' found in interface '%s'", e.Key, e.Interface)
		}
		return fmt.Sprintf("no signal with name '%s' found", e.Key)
	case NoDocumentFound:
		return fmt.Sprintf("no XML document with signal name '%s' found", e.Key)
	default:
		if e.Interface != "" {
			return fmt.Sprintf("no interface '%s' found for signal name '%s'", e.Interface, e.Key)
		}
		return fmt.Sprintf("no interface with signal name '%s' found", e.Key)
	}
}

// Is lets errors.Is match the sentinel for e.Kind.
func (e *NotFoundError) Is(target error) bool {
	switch e.Kind {
	case NoInterfaceFound:
		return target == ErrNoInterface
	case NoSignalFound:
		return target == ErrNoSignal
	case NoDocumentFound:
		return target == ErrNoDocument
	}
	return false
}

// AmbiguityError indicates that more than one signal matched the hint.
type AmbiguityError struct {
	Key    string
	First  Resolved
	Second Resolved
}

func (e *AmbiguityError) Error() string {
	return fmt.Sprintf("ambiguous signal name '%s': matches %s and %s; disambiguate with an interface or signal hint",
		e.Key, e.First, e.Second)
}

// MismatchError indicates that the documented and the local signatures differ.
// Signal is populated when the mismatch comes out of a validation run.
type MismatchError struct {
	Expected Signature
	Actual   Signature
	Signal   Resolved
}

func (e *MismatchError) Error() string {
	if e.Signal.Signal == "" {
		return fmt.Sprintf("signature mismatch: expected %q, got %q", e.Expected, e.Actual)
	}
	return fmt.Sprintf("signature mismatch for %s: expected %q, got %q", e.Signal, e.Expected, e.Actual)
}

// IsNotFound checks if an error is a NotFoundError of any kind.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsAmbiguous checks if an error is an AmbiguityError.
func IsAmbiguous(err error) bool {
	var ae *AmbiguityError
	return errors.As(err, &ae)
}

// IsMismatch checks if an error is a MismatchError.
func IsMismatch(err error) bool {
	var me *MismatchError
	return errors.As(err, &me)
}

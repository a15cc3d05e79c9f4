package lockstep

import (
	"fmt"
	"strings"

	"github.com/dyluth/lockstep/pkg/introspect"
)

// Hint identifies which signal a local structure mirrors.
//
// Structure is the fallback key: by convention a struct is named after the
// signal it mirrors (NodeRemovedHappening for NodeRemoved), so any signal
// whose name is contained in Structure matches. Signal overrides that with an
// exact name and Interface restricts the search to one interface.
type Hint struct {
	Signal    string
	Interface string
	Structure string
}

// HintOption sets an optional field of a Hint.
type HintOption func(*Hint)

// WithSignal requests the signal with exactly this name.
func WithSignal(name string) HintOption {
	return func(h *Hint) { h.Signal = name }
}

// WithInterface restricts resolution to interfaces named name.
func WithInterface(name string) HintOption {
	return func(h *Hint) { h.Interface = name }
}

// NewHint builds a Hint for the given structure identifier.
func NewHint(structure string, opts ...HintOption) Hint {
	h := Hint{Structure: structure}
	for _, opt := range opts {
		opt(&h)
	}
	return h
}

// Key is the identifier reported in diagnostics.
func (h Hint) Key() string {
	if h.Signal != "" {
		return h.Signal
	}
	return h.Structure
}

// Resolved is the unique signal a Hint points to.
type Resolved struct {
	Interface string
	Signal    string
	Document  string

	signal *introspect.Signal
}

func (r Resolved) String() string {
	return fmt.Sprintf("%s.%s (%s)", r.Interface, r.Signal, r.Document)
}

// Signature returns the expected body signature of the resolved signal.
func (r Resolved) Signature() Signature {
	return Extract(r.signal)
}

// Args returns the resolved signal's args, in body order.
func (r Resolved) Args() []introspect.Arg {
	if r.signal == nil {
		return nil
	}
	return r.signal.Args
}

// matcher is one match strategy. The first strategy whose applies returns
// true decides the resolution on its own.
type matcher struct {
	name    string
	applies func(Hint) bool
	matches func(Hint, *introspect.Signal) bool
}

var matchers = []matcher{
	{
		name:    "explicit",
		applies: func(h Hint) bool { return h.Signal != "" },
		matches: func(h Hint, s *introspect.Signal) bool { return s.Name == h.Signal },
	},
	{
		name:    "implicit",
		applies: func(Hint) bool { return true },
		matches: func(h Hint, s *introspect.Signal) bool { return strings.Contains(h.Structure, s.Name) },
	},
}

// Resolve finds the single signal in docs that hint points to.
//
// docs are searched in slice order. The result is either a fully populated
// Resolved or one of *AmbiguityError and *NotFoundError. A second matching
// signal anywhere, including in the same interface, is an ambiguity.
func Resolve(docs []*introspect.Document, hint Hint) (Resolved, error) {
	key := hint.Key()
	if len(docs) == 0 {
		return Resolved{}, &NotFoundError{Kind: NoDocumentFound, Key: key, Interface: hint.Interface}
	}

	m := selectMatcher(hint)

	var (
		found          Resolved
		bound          bool
		interfaceFound bool
	)
	for _, doc := range docs {
		for _, iface := range doc.Interfaces() {
			if hint.Interface != "" && iface.Name != hint.Interface {
				continue
			}
			interfaceFound = true

			for _, sig := range iface.Signals {
				if !m.matches(hint, sig) {
					continue
				}

				candidate := Resolved{
					Interface: iface.Name,
					Signal:    sig.Name,
					Document:  doc.ID,
					signal:    sig,
				}
				if bound {
					return Resolved{}, &AmbiguityError{Key: key, First: found, Second: candidate}
				}
				found = candidate
				bound = true
			}
		}
	}

	if bound {
		return found, nil
	}
	return Resolved{}, notFound(hint, m, interfaceFound)
}

func selectMatcher(hint Hint) matcher {
	for _, m := range matchers {
		if m.applies(hint) {
			return m
		}
	}
	// The implicit matcher always applies.
	return matchers[len(matchers)-1]
}

func notFound(hint Hint, m matcher, interfaceFound bool) error {
	err := &NotFoundError{Key: hint.Key(), Interface: hint.Interface}
	switch {
	case hint.Interface != "" && !interfaceFound:
		err.Kind = NoInterfaceFound
	case hint.Interface != "" || m.name == "explicit":
		err.Kind = NoSignalFound
	default:
		err.Kind = NoInterfaceFound
	}
	return err
}

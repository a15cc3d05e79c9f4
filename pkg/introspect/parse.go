package introspect

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/godbus/dbus/v5"
	dbusintrospect "github.com/godbus/dbus/v5/introspect"
)

// StructuralError indicates a document that is not well-formed introspection XML.
type StructuralError struct {
	Document string
	Err      error
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("malformed introspection document '%s': %v", e.Document, e.Err)
}

func (e *StructuralError) Unwrap() error {
	return e.Err
}

// IsStructuralError checks if an error is a StructuralError.
func IsStructuralError(err error) bool {
	var se *StructuralError
	return errors.As(err, &se)
}

// Parse decodes a single introspection document read from r.
// Any failure is returned as a *StructuralError carrying id.
func Parse(id string, r io.Reader) (*Document, error) {
	var raw dbusintrospect.Node
	dec := xml.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, &StructuralError{Document: id, Err: fmt.Errorf("failed to decode XML: %w", err)}
	}
	if err := expectEOF(dec); err != nil {
		return nil, &StructuralError{Document: id, Err: err}
	}

	root, err := buildNode(&raw)
	if err != nil {
		return nil, &StructuralError{Document: id, Err: err}
	}

	return &Document{ID: id, Root: root}, nil
}

// ParseString is Parse over an in-memory string.
func ParseString(id, text string) (*Document, error) {
	return Parse(id, strings.NewReader(text))
}

// ParseAll parses every source in order and stops at the first failure.
func ParseAll(sources []Source) ([]*Document, error) {
	docs := make([]*Document, 0, len(sources))
	for _, src := range sources {
		doc, err := ParseString(src.ID, src.Text)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// expectEOF consumes the rest of the input. Only whitespace, comments,
// processing instructions and directives may follow the root element.
func expectEOF(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to decode XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.CharData:
			if len(bytes.TrimSpace(t)) != 0 {
				return fmt.Errorf("unexpected text after root element")
			}
		case xml.Comment, xml.ProcInst, xml.Directive:
		case xml.StartElement:
			return fmt.Errorf("unexpected element <%s> after root element", t.Name.Local)
		default:
			return fmt.Errorf("unexpected content after root element")
		}
	}
}

func buildNode(raw *dbusintrospect.Node) (*Node, error) {
	node := &Node{Name: raw.Name}

	for i := range raw.Interfaces {
		iface, err := buildInterface(&raw.Interfaces[i])
		if err != nil {
			return nil, err
		}
		node.Interfaces = append(node.Interfaces, iface)
	}

	for i := range raw.Children {
		child, err := buildNode(&raw.Children[i])
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}

	return node, nil
}

func buildInterface(raw *dbusintrospect.Interface) (*Interface, error) {
	if raw.Name == "" {
		return nil, fmt.Errorf("interface without a name")
	}

	iface := &Interface{Name: raw.Name}
	for i := range raw.Signals {
		sig, err := buildSignal(&raw.Signals[i])
		if err != nil {
			return nil, fmt.Errorf("interface '%s': %w", raw.Name, err)
		}
		iface.Signals = append(iface.Signals, sig)
	}
	return iface, nil
}

func buildSignal(raw *dbusintrospect.Signal) (*Signal, error) {
	if raw.Name == "" {
		return nil, fmt.Errorf("signal without a name")
	}

	sig := &Signal{Name: raw.Name, Args: make([]Arg, 0, len(raw.Args))}
	for i, a := range raw.Args {
		if err := checkArg(a); err != nil {
			return nil, fmt.Errorf("signal '%s' arg %d: %w", raw.Name, i, err)
		}
		sig.Args = append(sig.Args, Arg{Name: a.Name, Type: a.Type})
	}
	return sig, nil
}

func checkArg(a dbusintrospect.Arg) error {
	if a.Type == "" {
		return fmt.Errorf("missing type attribute")
	}
	if a.Direction != "" && a.Direction != "out" {
		return fmt.Errorf("invalid direction '%s' (signal args may only be 'out')", a.Direction)
	}

	if _, err := dbus.ParseSignature(a.Type); err != nil {
		return fmt.Errorf("invalid type '%s': %w", a.Type, err)
	}
	if firstTypeLen(a.Type) != len(a.Type) {
		return fmt.Errorf("type '%s' is not a single complete type", a.Type)
	}
	return nil
}

// firstTypeLen returns the length of the first complete type in sig, or -1.
// sig must already be a valid signature.
func firstTypeLen(sig string) int {
	i := 0
	for i < len(sig) && sig[i] == 'a' {
		i++
	}
	if i >= len(sig) {
		return -1
	}

	switch sig[i] {
	case '(', '{':
		depth := 0
		for j := i; j < len(sig); j++ {
			switch sig[j] {
			case '(', '{':
				depth++
			case ')', '}':
				depth--
				if depth == 0 {
					return j + 1
				}
			}
		}
		return -1
	}
	return i + 1
}

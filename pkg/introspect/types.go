package introspect

// Source is one raw introspection document as handed over by a loader.
// ID is opaque to the parser and only used for provenance in errors.
type Source struct {
	ID   string
	Text string
}

// Document is one parsed introspection source.
type Document struct {
	ID   string
	Root *Node
}

// Node is a <node> element. Children are nested object paths, each of which
// may declare its own interfaces.
type Node struct {
	Name       string
	Interfaces []*Interface
	Children   []*Node
}

// Interface is a named group of signals.
type Interface struct {
	Name    string
	Signals []*Signal
}

// Signal is a named event. Args order is the order of the signal body.
type Signal struct {
	Name string
	Args []Arg
}

// Arg is a single body element of a signal. Name is informational only.
type Arg struct {
	Name string
	Type string
}

// Interfaces returns every interface declared in the document, depth first
// in source order: the node's own interfaces come before those of its children.
func (d *Document) Interfaces() []*Interface {
	if d == nil || d.Root == nil {
		return nil
	}
	var out []*Interface
	d.Root.walk(func(n *Node) {
		out = append(out, n.Interfaces...)
	})
	return out
}

// SignalCount returns the number of signals across all interfaces.
func (d *Document) SignalCount() int {
	count := 0
	for _, iface := range d.Interfaces() {
		count += len(iface.Signals)
	}
	return count
}

func (n *Node) walk(fn func(*Node)) {
	fn(n)
	for _, child := range n.Children {
		child.walk(fn)
	}
}

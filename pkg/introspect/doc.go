// Package introspect parses D-Bus introspection XML into a typed, read-only
// document model.
//
// # Overview
//
// An introspection document is a tree of <node> elements. Each node declares
// zero or more <interface> elements, and each interface declares methods,
// properties and signals. Only signals are modelled here. Their <arg> children
// carry the D-Bus type signature of each body element, in order.
//
// # Usage Example
//
//	doc, err := introspect.ParseString("xml/node.xml", text)
//	if err != nil {
//		return err // *introspect.StructuralError
//	}
//	for _, iface := range doc.Interfaces() {
//		for _, sig := range iface.Signals {
//			fmt.Println(iface.Name, sig.Name, len(sig.Args))
//		}
//	}
//
// Documents are built once per validation run and never mutated afterwards,
// so a parsed set may be shared by concurrent readers.
package introspect

// Package lockstep keeps Go structs in step with the D-Bus signals they mirror.
//
// # Overview
//
// A client that decodes a signal body into a struct breaks at runtime when
// the service changes the signal. lockstep catches that drift in the test
// suite: it finds the signal in the service's introspection XML, extracts
// its body signature, and compares it against the signature of the struct.
//
// # Resolution
//
// By default a struct is matched to the signal whose name is contained in the
// struct's type name, so NodeRemovedHappening matches NodeRemoved. When two
// signals match, resolution fails with *AmbiguityError and the caller adds a
// WithSignal or WithInterface hint. There is no best-effort pick.
//
// # Usage Example
//
//	docs, err := introspect.ParseAll(sources)
//	if err != nil {
//		return err
//	}
//
//	type NodeRemovedHappening struct {
//		Name string
//		Path dbus.ObjectPath
//	}
//
//	resolved, err := lockstep.ValidateValue(docs, NodeRemovedHappening{})
//	if lockstep.IsMismatch(err) {
//		// err carries both signatures and the resolved signal
//	}
//
// The package never touches the filesystem or the environment. See
// pkg/lockstep/locktest for loading XML inside a Go test.
package lockstep

// Package locktest runs lockstep validations from Go tests.
//
//	func TestNodeRemovedHappeningSignature(t *testing.T) {
//		locktest.RequireSignal(t, NodeRemovedHappening{})
//	}
//
// XML is looked up the same way as by the lockstep CLI: the
// LOCKSTEP_XML_PATH environment variable, then WithXMLPath, then ./xml or
// ./XML relative to the test's working directory.
package locktest

import (
	"os"

	"github.com/stretchr/testify/require"

	"github.com/dyluth/lockstep/internal/xmlsource"
	"github.com/dyluth/lockstep/pkg/introspect"
	"github.com/dyluth/lockstep/pkg/lockstep"
)

// Option configures a single RequireSignal call.
type Option func(*options)

type options struct {
	xmlPath string
	hints   []lockstep.HintOption
}

// WithXMLPath sets the XML file or directory. LOCKSTEP_XML_PATH still wins.
func WithXMLPath(path string) Option {
	return func(o *options) { o.xmlPath = path }
}

// WithInterface restricts resolution to the named interface.
func WithInterface(name string) Option {
	return func(o *options) { o.hints = append(o.hints, lockstep.WithInterface(name)) }
}

// WithSignal requests the signal with exactly this name.
func WithSignal(name string) Option {
	return func(o *options) { o.hints = append(o.hints, lockstep.WithSignal(name)) }
}

// Sources loads the introspection XML for the current test.
func Sources(t require.TestingT, opts ...Option) []introspect.Source {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	o := collect(opts)

	cwd, err := os.Getwd()
	require.NoError(t, err, "failed to determine working directory")

	path, err := xmlsource.Locate(o.xmlPath, os.LookupEnv, cwd)
	require.NoError(t, err)

	sources, err := xmlsource.Load(path)
	require.NoError(t, err)
	return sources
}

// RequireSignal fails the test unless v's body signature matches the signal
// it resolves to. It returns the resolved signal.
func RequireSignal(t require.TestingT, v any, opts ...Option) lockstep.Resolved {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	return RequireSignalIn(t, Sources(t, opts...), v, opts...)
}

// RequireSignalIn is RequireSignal over already loaded sources.
func RequireSignalIn(t require.TestingT, sources []introspect.Source, v any, opts ...Option) lockstep.Resolved {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	o := collect(opts)

	docs, err := introspect.ParseAll(sources)
	require.NoError(t, err)

	resolved, err := lockstep.ValidateValue(docs, v, o.hints...)
	require.NoError(t, err, "signal body signature does not match %T", v)
	return resolved
}

func collect(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

package locktest

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"

	"github.com/dyluth/lockstep/internal/xmlsource"
)

type RemoveNodeHappening struct {
	Name string
	Path dbus.ObjectPath
}

type GrownEvent struct {
	Props map[string]dbus.Variant
}

type ResetSignal struct{}

// recorder is a require.TestingT that records failures instead of stopping.
type recorder struct {
	errors []string
	failed bool
}

func (r *recorder) Errorf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *recorder) FailNow() {
	r.failed = true
}

var xmlDir = filepath.Join("testdata", "xml")

func TestRequireSignal(t *testing.T) {
	t.Setenv(xmlsource.EnvXMLPath, "")

	resolved := RequireSignal(t, RemoveNodeHappening{}, WithXMLPath(xmlDir))
	assert.Equal(t, "org.example.Node", resolved.Interface)
	assert.Equal(t, "RemoveNode", resolved.Signal)
	assert.Equal(t, filepath.Join(xmlDir, "node.xml"), resolved.Document)

	RequireSignal(t, GrownEvent{}, WithXMLPath(xmlDir))
	RequireSignal(t, ResetSignal{}, WithXMLPath(xmlDir), WithInterface("org.example.Node"))
}

func TestRequireSignal_EnvOverride(t *testing.T) {
	t.Setenv(xmlsource.EnvXMLPath, filepath.Join(xmlDir, "tree.xml"))

	resolved := RequireSignal(t, GrownEvent{}, WithXMLPath("/does/not/exist"))
	assert.Equal(t, "Grown", resolved.Signal)
}

func TestRequireSignal_Mismatch(t *testing.T) {
	type RemoveNodeWrong struct {
		Path dbus.ObjectPath
		Name string
	}

	rec := &recorder{}
	sources := Sources(t, WithXMLPath(xmlDir))
	RequireSignalIn(rec, sources, RemoveNodeWrong{}, WithSignal("RemoveNode"))

	assert.True(t, rec.failed)
	if assert.NotEmpty(t, rec.errors) {
		assert.Contains(t, rec.errors[0], "signature mismatch")
		assert.Contains(t, rec.errors[0], "RemoveNodeWrong")
	}
}

func TestRequireSignal_NotFound(t *testing.T) {
	type Unrelated struct{ A string }

	rec := &recorder{}
	RequireSignalIn(rec, Sources(t, WithXMLPath(xmlDir)), Unrelated{})

	assert.True(t, rec.failed)
	if assert.NotEmpty(t, rec.errors) {
		assert.Contains(t, rec.errors[0], "no interface with signal name 'Unrelated' found")
	}
}

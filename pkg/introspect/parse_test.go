package introspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nodeXML = `<!DOCTYPE node PUBLIC "-//freedesktop//DTD D-BUS Object Introspection 1.0//EN"
 "http://www.freedesktop.org/standards/dbus/1.0/introspect.dtd">
<node name="/org/example/Node">
  <interface name="org.example.Node">
    <method name="Remove">
      <arg name="path" type="o" direction="in"/>
    </method>
    <signal name="NodeRemoved">
      <arg name="name" type="s"/>
      <arg name="path" type="o"/>
    </signal>
    <signal name="Reset"/>
    <property name="Count" type="u" access="read"/>
  </interface>
  <interface name="org.example.Other">
    <signal name="Changed">
      <annotation name="org.freedesktop.DBus.Deprecated" value="true"/>
      <arg type="a{sv}" direction="out"/>
    </signal>
  </interface>
  <node name="child">
    <interface name="org.example.Child">
      <signal name="Added">
        <arg type="(so)"/>
      </signal>
    </interface>
  </node>
</node>`

func TestParse_ValidDocument(t *testing.T) {
	doc, err := ParseString("xml/node.xml", nodeXML)
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Equal(t, "xml/node.xml", doc.ID)
	assert.Equal(t, "/org/example/Node", doc.Root.Name)

	ifaces := doc.Interfaces()
	require.Len(t, ifaces, 3)
	assert.Equal(t, "org.example.Node", ifaces[0].Name)
	assert.Equal(t, "org.example.Other", ifaces[1].Name)
	assert.Equal(t, "org.example.Child", ifaces[2].Name)

	node := ifaces[0]
	require.Len(t, node.Signals, 2)
	assert.Equal(t, "NodeRemoved", node.Signals[0].Name)
	assert.Equal(t, []Arg{{Name: "name", Type: "s"}, {Name: "path", Type: "o"}}, node.Signals[0].Args)
	assert.Equal(t, "Reset", node.Signals[1].Name)
	assert.Empty(t, node.Signals[1].Args)

	assert.Equal(t, "a{sv}", ifaces[1].Signals[0].Args[0].Type)
	assert.Equal(t, 4, doc.SignalCount())
}

func TestParse_StructuralErrors(t *testing.T) {
	tests := []struct {
		name   string
		xml    string
		errMsg string
	}{
		{
			name:   "malformed markup",
			xml:    `<node><interface name="a.b">`,
			errMsg: "failed to decode XML",
		},
		{
			name:   "wrong root element",
			xml:    `<interface name="a.b"/>`,
			errMsg: "failed to decode XML",
		},
		{
			name:   "interface without name",
			xml:    `<node><interface><signal name="X"/></interface></node>`,
			errMsg: "interface without a name",
		},
		{
			name:   "signal without name",
			xml:    `<node><interface name="a.b"><signal/></interface></node>`,
			errMsg: "signal without a name",
		},
		{
			name:   "arg without type",
			xml:    `<node><interface name="a.b"><signal name="X"><arg name="v"/></signal></interface></node>`,
			errMsg: "missing type attribute",
		},
		{
			name:   "arg with invalid type",
			xml:    `<node><interface name="a.b"><signal name="X"><arg type="a"/></signal></interface></node>`,
			errMsg: "invalid type 'a'",
		},
		{
			name:   "arg with more than one type",
			xml:    `<node><interface name="a.b"><signal name="X"><arg type="su"/></signal></interface></node>`,
			errMsg: "not a single complete type",
		},
		{
			name:   "signal arg with in direction",
			xml:    `<node><interface name="a.b"><signal name="X"><arg type="s" direction="in"/></signal></interface></node>`,
			errMsg: "invalid direction 'in'",
		},
		{
			name:   "second root element",
			xml:    `<node/><node/>`,
			errMsg: "unexpected element <node> after root element",
		},
		{
			name:   "malformed markup after root element",
			xml:    `<node><interface name="a.b"/></node><node><interface name="`,
			errMsg: "failed to decode XML",
		},
		{
			name:   "text after root element",
			xml:    `<node/> trailing`,
			errMsg: "unexpected text after root element",
		},
		{
			name:   "error in nested node",
			xml:    `<node><node name="c"><interface/></node></node>`,
			errMsg: "interface without a name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseString("bad.xml", tt.xml)
			require.Error(t, err)
			assert.Nil(t, doc)
			assert.True(t, IsStructuralError(err))
			assert.Contains(t, err.Error(), "bad.xml")
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestParse_SingleCompleteTypes(t *testing.T) {
	for _, typ := range []string{"s", "o", "u", "v", "(so)", "a{sv}", "aa{sv}", "a(so)", "(a{sv}(ii))"} {
		t.Run(typ, func(t *testing.T) {
			doc, err := ParseString("types.xml",
				`<node><interface name="a.b"><signal name="X"><arg type="`+typ+`"/></signal></interface></node>`)
			require.NoError(t, err)
			assert.Equal(t, typ, doc.Interfaces()[0].Signals[0].Args[0].Type)
		})
	}
}

func TestParse_TrailingMisc(t *testing.T) {
	doc, err := ParseString("misc.xml", "<node><interface name=\"a.b\"/></node>\n<!-- generated -->\n<?pi x?>\n")
	require.NoError(t, err)
	assert.Len(t, doc.Interfaces(), 1)
}

func TestFirstTypeLen(t *testing.T) {
	tests := []struct {
		sig  string
		want int
	}{
		{"s", 1},
		{"su", 1},
		{"as", 2},
		{"aas", 3},
		{"(so)", 4},
		{"(so)u", 4},
		{"a{sv}", 5},
		{"a{s(ii)}x", 8},
		{"", -1},
	}

	for _, tt := range tests {
		t.Run(tt.sig, func(t *testing.T) {
			assert.Equal(t, tt.want, firstTypeLen(tt.sig))
		})
	}
}

func TestParseAll(t *testing.T) {
	t.Run("preserves source order", func(t *testing.T) {
		docs, err := ParseAll([]Source{
			{ID: "b.xml", Text: `<node><interface name="b.B"/></node>`},
			{ID: "a.xml", Text: `<node><interface name="a.A"/></node>`},
		})
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "b.xml", docs[0].ID)
		assert.Equal(t, "a.xml", docs[1].ID)
	})

	t.Run("stops at first failure", func(t *testing.T) {
		docs, err := ParseAll([]Source{
			{ID: "ok.xml", Text: `<node/>`},
			{ID: "broken.xml", Text: `<node>`},
		})
		require.Error(t, err)
		assert.Nil(t, docs)

		var se *StructuralError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "broken.xml", se.Document)
	})
}

func TestDocument_InterfacesOnEmpty(t *testing.T) {
	var doc *Document
	assert.Nil(t, doc.Interfaces())

	doc, err := ParseString("empty.xml", `<node/>`)
	require.NoError(t, err)
	assert.Empty(t, doc.Interfaces())
	assert.Equal(t, 0, doc.SignalCount())
}

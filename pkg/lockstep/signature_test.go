package lockstep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dyluth/lockstep/pkg/introspect"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		signal   *introspect.Signal
		expected Signature
	}{
		{
			name:     "single arg",
			signal:   &introspect.Signal{Name: "A", Args: []introspect.Arg{{Type: "s"}}},
			expected: "s",
		},
		{
			name:     "args in order",
			signal:   &introspect.Signal{Name: "A", Args: []introspect.Arg{{Type: "s"}, {Type: "u"}, {Type: "a{sv}"}}},
			expected: "sua{sv}",
		},
		{
			name:     "no args",
			signal:   &introspect.Signal{Name: "A"},
			expected: NoParameters,
		},
		{
			name:     "nil signal",
			signal:   nil,
			expected: NoParameters,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Extract(tt.signal))
		})
	}
}

func TestExtract_OrderPreserving(t *testing.T) {
	ab := Extract(&introspect.Signal{Name: "X", Args: []introspect.Arg{{Type: "s"}, {Type: "u"}}})
	ba := Extract(&introspect.Signal{Name: "X", Args: []introspect.Arg{{Type: "u"}, {Type: "s"}}})
	assert.NotEqual(t, ab, ba)
	assert.Error(t, Compare(ab, ba))

	same := Extract(&introspect.Signal{Name: "X", Args: []introspect.Arg{{Type: "s"}, {Type: "s"}}})
	assert.Equal(t, Signature("ss"), same)
}

func TestExtract_EmptyDistinctFromNonEmpty(t *testing.T) {
	empty := Extract(&introspect.Signal{Name: "X"})
	for _, typ := range []string{"s", "y", "(s)", "a{sv}", "v"} {
		other := Extract(&introspect.Signal{Name: "X", Args: []introspect.Arg{{Type: typ}}})
		assert.NotEqual(t, empty, other, typ)
		assert.Error(t, Compare(empty, other), typ)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in       Signature
		expected Signature
	}{
		{"so", "so"},
		{" s o \n", "so"},
		{"(so)", "so"},
		{"( s o )", "so"},
		{"()", NoParameters},
		{"", NoParameters},
		{"(s)(o)", "(s)(o)"},
		{"((so))", "(so)"},
		{"a(so)", "a(so)"},
		{"(a(so)u)", "a(so)u"},
	}

	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.in))
		})
	}
}

func TestCompare(t *testing.T) {
	t.Run("equal", func(t *testing.T) {
		assert.NoError(t, Compare("so", "so"))
		assert.NoError(t, Compare("so", "(so)"))
		assert.NoError(t, Compare("a{sv}", " a{ s v } "))
		assert.NoError(t, Compare(NoParameters, "()"))
	})

	t.Run("string is not object path", func(t *testing.T) {
		err := Compare("s", "o")
		require.Error(t, err)
		assert.True(t, IsMismatch(err))
	})

	t.Run("reordered struct", func(t *testing.T) {
		err := Compare("(su)", "(us)")
		require.Error(t, err)

		var me *MismatchError
		require.ErrorAs(t, err, &me)
		assert.Equal(t, Signature("(su)"), me.Expected)
		assert.Equal(t, Signature("(us)"), me.Actual)
		assert.Contains(t, err.Error(), `"(su)"`)
		assert.Contains(t, err.Error(), `"(us)"`)
	})

	t.Run("array is not its element", func(t *testing.T) {
		assert.Error(t, Compare("as", "s"))
		assert.Error(t, Compare("ay", "s"))
	})
}

func TestSignature_Valid(t *testing.T) {
	assert.True(t, Signature("so").Valid())
	assert.True(t, Signature("(so)").Valid())
	assert.True(t, NoParameters.Valid())
	assert.False(t, Signature("a").Valid())
	assert.False(t, Signature("(so").Valid())
}

package lockstep

import (
	"fmt"
	"reflect"

	"github.com/godbus/dbus/v5"
)

var (
	variantType   = reflect.TypeOf(dbus.Variant{})
	signatureType = reflect.TypeOf(dbus.Signature{})
)

// BodySignatureOf returns the signal body signature v would be marshalled as.
//
// A struct contributes one element per exported field not tagged `dbus:"-"`,
// so a struct mirroring NodeRemoved(s name, o path) yields "so" and a struct
// without such fields yields NoParameters. Any other value is a one-element body.
func BodySignatureOf(v any) (Signature, error) {
	if v == nil {
		return NoParameters, fmt.Errorf("cannot derive a signature from nil")
	}
	return bodySignatureOfType(reflect.TypeOf(v))
}

func bodySignatureOfType(t reflect.Type) (sig Signature, err error) {
	// godbus panics on Go types without a D-Bus representation.
	defer func() {
		if r := recover(); r != nil {
			sig = NoParameters
			err = fmt.Errorf("type %s has no D-Bus signature: %v", t, r)
		}
	}()

	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct || t == variantType || t == signatureType {
		return Signature(dbus.SignatureOfType(t).String()), nil
	}

	var body string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() || field.Tag.Get("dbus") == "-" {
			continue
		}
		body += dbus.SignatureOfType(field.Type).String()
	}
	return Signature(body), nil
}

// typeName is the structure identifier used for implicit matching.
func typeName(v any) string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return t.Name()
}

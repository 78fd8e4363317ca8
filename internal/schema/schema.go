// Package schema builds JSON Schemas for ID24 JSON lumps by reflecting the
// payload types of package lump.
package schema

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"

	"github.com/vovanwin/id24json/pkg/compat"
	"github.com/vovanwin/id24json/pkg/lump"
)

// VersionPattern matches the envelope "major.minor.revision" version.
const VersionPattern = `^[0-9]+\.[0-9]+\.[0-9]+$`

// OptionsPattern matches every options string the codec decodes: lines of a
// name and a decimal value separated by blanks, with optional blanks around
// them. Blank lines are rejected.
const OptionsPattern = `^([ \t\v\f\r]*[a-z0-9_]+[ \t\v\f\r]+[0-9]+[ \t\v\f\r]*(\n[ \t\v\f\r]*[a-z0-9_]+[ \t\v\f\r]+[0-9]+[ \t\v\f\r]*)*)?$`

// For returns the schema of one lump type: the envelope with its data member
// bound to the reflected payload.
func For(t lump.Type) (*jsonschema.Schema, error) {
	l, err := lump.New(t)
	if err != nil {
		return nil, err
	}

	payload := newReflector().Reflect(l.Data)
	if payload == nil {
		return nil, fmt.Errorf("reflect %s payload", t)
	}

	props := jsonschema.NewProperties()
	props.Set("type", &jsonschema.Schema{Type: "string", Const: string(t)})
	props.Set("version", versionSchema())
	props.Set("metadata", &jsonschema.Schema{Type: "object"})
	props.Set("data", &jsonschema.Schema{Ref: payload.Ref})

	return &jsonschema.Schema{
		Version:     jsonschema.Version,
		Title:       fmt.Sprintf("ID24 %s lump", t),
		Description: fmt.Sprintf("A %q lump in the ID24 JSON envelope.", t),
		Type:        "object",
		Properties:  props,
		Required:    []string{"type", "version", "metadata", "data"},
		Definitions: payload.Definitions,
	}, nil
}

// All returns the schema of every supported lump type keyed by type.
func All() (map[lump.Type]*jsonschema.Schema, error) {
	out := make(map[lump.Type]*jsonschema.Schema, len(lump.Types()))
	for _, t := range lump.Types() {
		s, err := For(t)
		if err != nil {
			return nil, err
		}
		out[t] = s
	}
	return out, nil
}

// Marshal renders a schema as indented JSON with a trailing newline.
func Marshal(s *jsonschema.Schema) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return append(data, '\n'), nil
}

func newReflector() *jsonschema.Reflector {
	return &jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		Mapper:                     mapType,
	}
}

// Mapped types carry no description: the jsonschema_description tag of the
// payload field replaces it.

// Types whose JSON form differs from their Go shape.
var mapped = map[reflect.Type]func() *jsonschema.Schema{
	reflect.TypeOf(compat.Options{}): func() *jsonschema.Schema {
		return &jsonschema.Schema{Type: "string", Pattern: OptionsPattern}
	},
	reflect.TypeOf(compat.Executable(0)): func() *jsonschema.Schema {
		return &jsonschema.Schema{Type: "string", Enum: tokens(compat.Executables())}
	},
	reflect.TypeOf(lump.Mode("")): func() *jsonschema.Schema {
		return &jsonschema.Schema{Type: "string", Enum: tokens(lump.Modes())}
	},
	reflect.TypeOf(lump.Version{}): versionSchema,
	reflect.TypeOf(json.RawMessage{}): func() *jsonschema.Schema {
		return &jsonschema.Schema{}
	},
	reflect.TypeOf(lump.FrameType{}): func() *jsonschema.Schema {
		return &jsonschema.Schema{Type: "integer", Enum: []any{0, 1, 2, 4, 4096, 4097, 4098, 4100}}
	},
	reflect.TypeOf(lump.Alignment{}): func() *jsonschema.Schema {
		return &jsonschema.Schema{Type: "integer", Enum: []any{0, 1, 2, 4, 5, 6, 8, 9, 10}}
	},
	reflect.TypeOf(lump.DemoType(0)):            ordinals(2),
	reflect.TypeOf(lump.OutroWipe(0)):           ordinals(2),
	reflect.TypeOf(lump.SkyType(0)):             ordinals(3),
	reflect.TypeOf(lump.FinaleType(0)):          ordinals(3),
	reflect.TypeOf(lump.NumberFontType(0)):      ordinals(3),
	reflect.TypeOf(lump.NumberType(0)):          ordinals(8),
	reflect.TypeOf(lump.InterlevelCondition(0)): ordinals(8),
	reflect.TypeOf(lump.SBarCondition(0)):       ordinals(19),
}

func mapType(t reflect.Type) *jsonschema.Schema {
	if build, ok := mapped[t]; ok {
		return build()
	}
	return nil
}

func versionSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", Pattern: VersionPattern}
}

func ordinals(n int) func() *jsonschema.Schema {
	return func() *jsonschema.Schema {
		enum := make([]any, n)
		for i := range n {
			enum[i] = i
		}
		return &jsonschema.Schema{Type: "integer", Enum: enum}
	}
}

func tokens[T fmt.Stringer](values []T) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v.String()
	}
	return out
}

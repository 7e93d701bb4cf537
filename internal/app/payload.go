package app

import (
	"net/url"
	"strings"
)

// FieldKind tells which transport shape a request field arrived in.
type FieldKind int

const (
	FieldAbsent FieldKind = iota
	FieldText             // form values and JSON strings
	FieldValue            // native JSON: json.Number, []any, map[string]any, bool
)

type Field struct {
	Kind  FieldKind
	Text  string
	Value any
}

func (f Field) Present() bool { return f.Kind != FieldAbsent }

// blank is true for absent fields and whitespace-only text; typed fields treat both as "not supplied".
func (f Field) blank() bool {
	return f.Kind == FieldAbsent || (f.Kind == FieldText && strings.TrimSpace(f.Text) == "")
}

// RawPayload is a request body before normalization, keyed by field name.
type RawPayload map[string]Field

func (p RawPayload) Get(name string) Field {
	if p == nil {
		return Field{}
	}
	return p[name]
}

// PayloadFromJSON expects a body decoded with json.Decoder.UseNumber.
// JSON nulls are treated as absent.
func PayloadFromJSON(body map[string]any) RawPayload {
	out := make(RawPayload, len(body))
	for k, v := range body {
		if f := fieldOf(v); f.Present() {
			out[k] = f
		}
	}
	return out
}

// PayloadFromForm keeps single values as text; repeated keys become a native sequence.
func PayloadFromForm(values url.Values) RawPayload {
	out := make(RawPayload, len(values))
	for k, vs := range values {
		switch len(vs) {
		case 0:
			continue
		case 1:
			if f := fieldOf(vs[0]); f.Present() {
				out[k] = f
			}
		default:
			seq := make([]any, 0, len(vs))
			for _, v := range vs {
				seq = append(seq, v)
			}
			out[k] = Field{Kind: FieldValue, Value: seq}
		}
	}
	return out
}

func fieldOf(v any) Field {
	switch t := v.(type) {
	case nil:
		return Field{}
	case string:
		return Field{Kind: FieldText, Text: t}
	default:
		return Field{Kind: FieldValue, Value: t}
	}
}

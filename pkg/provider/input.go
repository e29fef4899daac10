package provider

import (
	"bytes"
	"encoding/json"
	"strings"
)

// InputKind tells whether export data decoded as JSON.
type InputKind int

const (
	// InputText is anything that is not valid JSON: otpauth lines, CSV, ...
	InputText InputKind = iota
	// InputJSON is a valid JSON document.
	InputJSON
)

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// Input is export data classified once and shared by every provider. JSON
// documents are decoded a single time; object documents expose their
// top-level members so providers can sniff keys without decoding again.
type Input struct {
	kind   InputKind
	text   string
	fields map[string]json.RawMessage
}

// NewInput classifies raw export data.
func NewInput(data []byte) Input {
	data = bytes.TrimPrefix(data, utf8BOM)
	in := Input{text: string(data)}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || !json.Valid(trimmed) {
		return in
	}

	in.kind = InputJSON
	if trimmed[0] == '{' {
		// a valid object always decodes
		_ = json.Unmarshal(trimmed, &in.fields)
	}
	return in
}

// Kind returns whether the input is JSON or text.
func (in Input) Kind() InputKind {
	return in.kind
}

// IsJSON reports whether the input is a JSON document.
func (in Input) IsJSON() bool {
	return in.kind == InputJSON
}

// Text returns the raw data as a string.
func (in Input) Text() string {
	return in.text
}

// Lines returns the non-empty, trimmed lines of the raw data.
func (in Input) Lines() []string {
	var lines []string
	for _, line := range strings.Split(in.text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Has reports whether the input is a JSON object carrying every named
// top-level member.
func (in Input) Has(names ...string) bool {
	if in.fields == nil {
		return false
	}
	for _, name := range names {
		if _, ok := in.fields[name]; !ok {
			return false
		}
	}
	return true
}

// Field returns a top-level member of a JSON object input.
func (in Input) Field(name string) (json.RawMessage, bool) {
	v, ok := in.fields[name]
	return v, ok
}

// DecodeField unmarshals a top-level member into v. It reports false when
// the member is absent, null or does not fit v.
func (in Input) DecodeField(name string, v any) bool {
	raw, ok := in.fields[name]
	if !ok || string(raw) == "null" {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

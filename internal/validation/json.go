package validation

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// DecodeJSON strictly decodes a single JSON object into v and validates it. Unknown fields,
// mistyped fields, trailing data and empty bodies are rejected.
func DecodeJSON(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return decodeError(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Field("body", "json", "request body must contain a single JSON object")
	}
	return Struct(v)
}

func decodeError(err error) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return Field("body", "required", "request body is required")
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return Field("body", "json", "request body is not valid JSON")
	case errors.As(err, &typeErr):
		if typeErr.Field == "" {
			return Field("body", "type", "request body must be a JSON object")
		}
		return Field(typeErr.Field, "type", typeErr.Field+" must be a "+typeErr.Type.String())
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		name := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return Field(name, "unknown", name+" is not an accepted field")
	default:
		return Field("body", "json", "request body could not be decoded")
	}
}

package params

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"paramd/pkg/types"
)

// DecodeJSON decodes a JSON object into dst, a pointer to a struct, one
// field at a time and then validates dst with its `validate` tags. Every
// field that has the wrong JSON type or fails validation is reported; the
// returned error is a *ValidationError unless dst itself is unusable.
func DecodeJSON(raw []byte, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("params: decode destination must be a pointer to a struct, got %T", dst)
	}
	var is issues
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		is = append(is, missing([]any{"body"}))
		return is.err()
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		var se *json.SyntaxError
		var te *json.UnmarshalTypeError
		switch {
		case errors.As(err, &se):
			is.add([]any{"body", se.Offset}, "json_invalid", "JSON decode error", nil)
		case errors.As(err, &te):
			is.add([]any{"body"}, "model_attributes_type", "Input should be a valid dictionary or object to extract fields from", string(raw))
		default:
			is.add([]any{"body"}, "json_invalid", "JSON decode error", nil)
		}
		return is.err()
	}
	if fields == nil {
		// A literal null body.
		is = append(is, missing([]any{"body"}))
		return is.err()
	}

	elem := rv.Elem()
	rt := elem.Type()
	perField := make([]*types.Issue, rt.NumField())
	index := make(map[string]int, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		name := jsonName(f)
		if name == "" {
			continue
		}
		index[name] = i
		fr, ok := fields[name]
		if !ok {
			continue
		}
		// An explicit null is present but of the wrong type, not missing.
		if bytes.Equal(bytes.TrimSpace(fr), []byte("null")) && hasRule(f.Tag.Get("validate"), "required") {
			typ, msg := typeIssue(f.Type)
			perField[i] = &types.Issue{Loc: []any{"body", name}, Msg: msg, Type: typ}
			continue
		}
		ptr := reflect.New(f.Type)
		if err := json.Unmarshal(fr, ptr.Interface()); err != nil {
			typ, msg := typeIssue(f.Type)
			var input any
			_ = json.Unmarshal(fr, &input)
			perField[i] = &types.Issue{Loc: []any{"body", name}, Msg: msg, Type: typ, Input: input}
			continue
		}
		elem.Field(i).Set(ptr.Elem())
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			i, ok := index[fe.Field()]
			if !ok || perField[i] != nil {
				continue
			}
			typ, msg := describe(fe)
			perField[i] = &types.Issue{Loc: []any{"body", fe.Field()}, Msg: msg, Type: typ, Input: fe.Value()}
		}
	}
	for _, p := range perField {
		if p != nil {
			if p.Type == "missing" {
				p.Input = nil
			}
			is = append(is, *p)
		}
	}
	return is.err()
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

func typeIssue(t reflect.Type) (string, string) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string_type", "Input should be a valid string"
	case reflect.Float32, reflect.Float64:
		return "float_type", "Input should be a valid number"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "int_type", "Input should be a valid integer"
	case reflect.Bool:
		return "bool_type", "Input should be a valid boolean"
	case reflect.Slice, reflect.Array:
		return "list_type", "Input should be a valid list"
	case reflect.Struct, reflect.Map:
		return "model_type", "Input should be a valid dictionary"
	}
	return "invalid_type", "Input has an invalid type"
}

func hasRule(tag, rule string) bool {
	for _, r := range strings.Split(tag, ",") {
		if r == rule {
			return true
		}
	}
	return false
}

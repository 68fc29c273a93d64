package params

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"regexp"
)

// Source supplies the raw inputs of one request.
type Source interface {
	// PathValue returns the raw path segment bound to name, or "".
	PathValue(name string) string
	Query() url.Values
	// Body returns the raw request payload; nil or empty means no body.
	Body() []byte
}

// Spec is a compiled, immutable set of parameter declarations.
type Spec struct {
	params []Param
	body   *Param
}

// Compile checks declarations and prepares them for extraction.
func Compile(ps ...Param) (*Spec, error) {
	s := &Spec{}
	seen := make(map[string]bool)
	keys := make(map[string]bool)
	var errs []error
	for _, p := range ps {
		if err := p.check(); err != nil {
			errs = append(errs, err)
			continue
		}
		if seen[p.Name] {
			errs = append(errs, fmt.Errorf("%s: duplicate parameter name", p.Name))
			continue
		}
		seen[p.Name] = true
		key := p.In.String() + ":" + p.WireName()
		if keys[key] {
			errs = append(errs, fmt.Errorf("%s: duplicate %s key %q", p.Name, p.In, p.WireName()))
			continue
		}
		keys[key] = true
		if p.Pattern != "" {
			re, err := regexp.Compile(p.Pattern)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: pattern: %w", p.Name, err))
				continue
			}
			p.re = re
		}
		if p.In == InBody {
			if s.body != nil {
				errs = append(errs, fmt.Errorf("%s: only one body parameter allowed", p.Name))
				continue
			}
			body := p
			s.body = &body
			continue
		}
		s.params = append(s.params, p)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return s, nil
}

// MustCompile is like Compile but panics on invalid declarations.
func MustCompile(ps ...Param) *Spec {
	s, err := Compile(ps...)
	if err != nil {
		panic("params: " + err.Error())
	}
	return s
}

func (p Param) check() error {
	if p.Name == "" {
		return errors.New("parameter without name")
	}
	switch p.In {
	case InPath:
		if !p.Required || p.Default != nil || p.Multi || p.Alias != "" {
			return fmt.Errorf("%s: path parameters must be required scalars without default or alias", p.Name)
		}
	case InBody:
		if p.New == nil {
			return fmt.Errorf("%s: body parameter needs a constructor", p.Name)
		}
		if rv := reflect.ValueOf(p.New()); rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
			return fmt.Errorf("%s: body constructor must return a pointer to a struct", p.Name)
		}
		return nil
	case InQuery:
	default:
		return fmt.Errorf("%s: unknown location %d", p.Name, p.In)
	}
	if p.Required && p.Default != nil {
		return fmt.Errorf("%s: required parameter cannot have a default", p.Name)
	}
	if p.Type == TypeEnum && len(p.Members) == 0 {
		return fmt.Errorf("%s: enum parameter without members", p.Name)
	}
	if p.Type != TypeString && (p.MinLength > 0 || p.MaxLength > 0 || p.Pattern != "") {
		return fmt.Errorf("%s: length and pattern constraints apply to strings only", p.Name)
	}
	if p.MinLength < 0 || p.MaxLength < 0 || (p.MaxLength > 0 && p.MinLength > p.MaxLength) {
		return fmt.Errorf("%s: invalid length bounds %d..%d", p.Name, p.MinLength, p.MaxLength)
	}
	if (p.Ge != nil || p.Le != nil) && p.Type != TypeInt && p.Type != TypeFloat {
		return fmt.Errorf("%s: numeric bounds apply to numbers only", p.Name)
	}
	if p.Default != nil && !p.defaultMatches() {
		return fmt.Errorf("%s: default %#v does not match type %s", p.Name, p.Default, p.Type)
	}
	return nil
}

func (p Param) defaultMatches() bool {
	var want reflect.Type
	switch p.Type {
	case TypeString:
		want = reflect.TypeOf("")
	case TypeInt:
		want = reflect.TypeOf(0)
	case TypeFloat:
		want = reflect.TypeOf(0.0)
	case TypeBool:
		want = reflect.TypeOf(false)
	case TypeEnum:
		// Enum defaults are whatever Parse yields; accept any value.
		return true
	}
	got := reflect.TypeOf(p.Default)
	if p.Multi {
		return got.Kind() == reflect.Slice && got.Elem() == want
	}
	return got == want
}

// Params returns the path and query declarations in declared order.
func (s *Spec) Params() []Param { return append([]Param(nil), s.params...) }

// BodyParam returns the body declaration, if any.
func (s *Spec) BodyParam() (Param, bool) {
	if s.body == nil {
		return Param{}, false
	}
	return *s.body, true
}

// Extract reads, coerces and validates every declared parameter from src.
// All failures are reported together in a *ValidationError.
func (s *Spec) Extract(src Source) (Values, error) {
	vals := make(Values, len(s.params)+1)
	var is issues
	var query url.Values
	for _, p := range s.params {
		switch p.In {
		case InPath:
			raw := src.PathValue(p.Name)
			loc := []any{"path", p.Name}
			if raw == "" {
				is = append(is, missing(loc))
				continue
			}
			if v, ok := p.coerce(raw, loc, &is); ok {
				vals[p.Name] = v
			}
		case InQuery:
			if query == nil {
				query = src.Query()
			}
			p.extractQuery(query, vals, &is)
		}
	}
	if s.body != nil {
		dst := s.body.New()
		if err := DecodeJSON(src.Body(), dst); err != nil {
			ve, ok := AsValidation(err)
			if !ok {
				return nil, err
			}
			is = append(is, ve.Issues...)
		} else {
			vals[s.body.Name] = dst
		}
	}
	if err := is.err(); err != nil {
		return nil, err
	}
	return vals, nil
}

func (p Param) extractQuery(q url.Values, vals Values, is *issues) {
	key := p.WireName()
	raws, present := q[key]
	if !present || len(raws) == 0 {
		switch {
		case p.Required:
			*is = append(*is, missing([]any{"query", key}))
		case p.Default != nil:
			vals[p.Name] = copyDefault(p.Default)
		default:
			vals[p.Name] = nil
		}
		return
	}
	if !p.Multi {
		// Repeated scalar keys: the last occurrence wins.
		raw := raws[len(raws)-1]
		if v, ok := p.coerce(raw, []any{"query", key}, is); ok {
			vals[p.Name] = v
		}
		return
	}
	out := reflect.MakeSlice(reflect.SliceOf(p.elemType()), 0, len(raws))
	ok := true
	for i, raw := range raws {
		v, good := p.coerce(raw, []any{"query", key, i}, is)
		if !good {
			ok = false
			continue
		}
		out = reflect.Append(out, reflect.ValueOf(v))
	}
	if ok {
		vals[p.Name] = out.Interface()
	}
}

func (p Param) elemType() reflect.Type {
	switch p.Type {
	case TypeInt:
		return reflect.TypeOf(0)
	case TypeFloat:
		return reflect.TypeOf(0.0)
	case TypeBool:
		return reflect.TypeOf(false)
	case TypeEnum:
		if p.Parse != nil && len(p.Members) > 0 {
			if v, err := p.Parse(p.Members[0]); err == nil {
				return reflect.TypeOf(v)
			}
		}
	}
	return reflect.TypeOf("")
}

// copyDefault keeps handlers from mutating shared default slices.
func copyDefault(v any) any {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return v
	}
	out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
	reflect.Copy(out, rv)
	return out.Interface()
}

package params

import (
	"regexp"
)

// Location is where a parameter is read from.
type Location int

const (
	InPath Location = iota
	InQuery
	InBody
)

func (l Location) String() string {
	switch l {
	case InPath:
		return "path"
	case InQuery:
		return "query"
	case InBody:
		return "body"
	default:
		return "unknown"
	}
}

// Type is the target type a raw text value is coerced to.
type Type int

const (
	TypeString Type = iota
	TypeInt
	TypeFloat
	TypeBool
	TypeEnum
)

func (t Type) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "integer"
	case TypeFloat:
		return "number"
	case TypeBool:
		return "boolean"
	case TypeEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// Constraints is the declarative rule set attached to a parameter.
// Zero values mean "no constraint".
type Constraints struct {
	Required  bool
	Default   any
	MinLength int
	MaxLength int
	Pattern   string
	Alias     string
	Members   []string
	Ge        *float64
	Le        *float64

	Title       string
	Description string
}

// Param declares a single request input.
type Param struct {
	Name  string
	In    Location
	Type  Type
	Multi bool
	Constraints

	// Parse converts an accepted enum member into its typed value.
	// When nil the raw member text is stored.
	Parse func(string) (any, error)
	// New allocates the destination of a body parameter.
	New func() any

	re *regexp.Regexp
}

// WireName is the key the parameter is read from.
func (p Param) WireName() string {
	if p.Alias != "" {
		return p.Alias
	}
	return p.Name
}

// Option customizes a Param.
type Option func(*Param)

// Path declares a path segment parameter. Path parameters are always required.
func Path(name string, t Type, opts ...Option) Param {
	p := Param{Name: name, In: InPath, Type: t}
	p.Required = true
	return apply(p, opts)
}

// Query declares a query string parameter. Without Required or Default it
// is optional and absent values are stored as nil.
func Query(name string, t Type, opts ...Option) Param {
	return apply(Param{Name: name, In: InQuery, Type: t}, opts)
}

// Body declares a JSON request body decoded into the value returned by newFn,
// which must be a pointer to a struct.
func Body(name string, newFn func() any, opts ...Option) Param {
	p := Param{Name: name, In: InBody, New: newFn}
	p.Required = true
	return apply(p, opts)
}

func apply(p Param, opts []Option) Param {
	for _, o := range opts {
		o(&p)
	}
	return p
}

// Required makes absence a validation failure.
func Required() Option { return func(p *Param) { p.Required = true } }

// Default substitutes v when the parameter is absent.
func Default(v any) Option { return func(p *Param) { p.Default = v } }

// MinLength sets the minimum text length in characters.
func MinLength(n int) Option { return func(p *Param) { p.MinLength = n } }

// MaxLength sets the maximum text length in characters.
func MaxLength(n int) Option { return func(p *Param) { p.MaxLength = n } }

// Pattern requires the text to match the regular expression expr.
func Pattern(expr string) Option { return func(p *Param) { p.Pattern = expr } }

// Alias reads the parameter from a wire key different from its name.
func Alias(key string) Option { return func(p *Param) { p.Alias = key } }

// Sequence collects repeated query keys into an ordered list.
func Sequence() Option { return func(p *Param) { p.Multi = true } }

// Members sets the closed value set of an enum parameter. parse, when not
// nil, maps an accepted member to its typed value.
func Members(parse func(string) (any, error), members ...string) Option {
	return func(p *Param) {
		p.Members = append([]string(nil), members...)
		p.Parse = parse
	}
}

// Ge sets an inclusive lower bound for numeric parameters.
func Ge(n float64) Option { return func(p *Param) { p.Ge = &n } }

// Le sets an inclusive upper bound for numeric parameters.
func Le(n float64) Option { return func(p *Param) { p.Le = &n } }

// Title documents the parameter.
func Title(s string) Option { return func(p *Param) { p.Title = s } }

// Description documents the parameter.
func Description(s string) Option { return func(p *Param) { p.Description = s } }

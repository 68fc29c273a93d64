package httpapi

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/go-openapi/spec"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/swaggo/swag"

	"paramd/internal/params"
)

// apiDoc serves the swagger document generated from the mounted routes.
type apiDoc struct {
	routes atomic.Pointer[[]Route]
}

var (
	doc         = &apiDoc{}
	registerDoc sync.Once
)

// ReadDoc implements swag.Swagger.
func (d *apiDoc) ReadDoc() string {
	var routes []Route
	if p := d.routes.Load(); p != nil {
		routes = *p
	}
	b, err := json.Marshal(BuildSwagger(routes))
	if err != nil {
		return "{}"
	}
	return string(b)
}

// MountSwagger registers the generated document and serves it at
// /openapi.json and through the swagger UI under /docs/.
func MountSwagger(r chi.Router, routes []Route) {
	doc.routes.Store(&routes)
	registerDoc.Do(func() { swag.Register(swag.Name, doc) })

	r.Get("/openapi.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(doc.ReadDoc()))
	})
	r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/docs/doc.json")))
}

// BuildSwagger describes routes as a Swagger 2.0 document.
func BuildSwagger(routes []Route) *spec.Swagger {
	sw := &spec.Swagger{
		SwaggerProps: spec.SwaggerProps{
			Swagger:  "2.0",
			BasePath: "/",
			Schemes:  []string{"http"},
			Consumes: []string{"application/json"},
			Produces: []string{"application/json"},
			Info: &spec.Info{InfoProps: spec.InfoProps{
				Title:       "paramd API",
				Description: "Typed path, query and body parameters with declarative validation.",
				Version:     "1.0",
			}},
			Paths: &spec.Paths{Paths: map[string]spec.PathItem{}},
			Definitions: spec.Definitions{
				"ErrorResponse": errorSchema(),
			},
		},
	}
	for _, rt := range routes {
		op := spec.NewOperation(rt.Name).WithSummary(rt.Summary)
		for _, p := range rt.Spec.Params() {
			op.AddParam(swaggerParam(p))
		}
		if bp, ok := rt.Spec.BodyParam(); ok {
			name := schemaName(bp.New())
			sw.Definitions[name] = structSchema(bp.New())
			op.AddParam(spec.BodyParam(bp.Name, spec.RefSchema("#/definitions/"+name)).AsRequired())
		}
		op.RespondsWith(http.StatusOK, spec.NewResponse().WithDescription("Successful Response"))
		if len(rt.Spec.Params()) > 0 || hasBody(rt) {
			op.RespondsWith(http.StatusUnprocessableEntity, spec.NewResponse().
				WithDescription("Validation Error").
				WithSchema(spec.RefSchema("#/definitions/ErrorResponse")))
		}
		path := swaggerPath(rt.Pattern)
		item := sw.Paths.Paths[path]
		switch rt.Method {
		case http.MethodGet:
			item.Get = op
		case http.MethodPost:
			item.Post = op
		case http.MethodPut:
			item.Put = op
		case http.MethodPatch:
			item.Patch = op
		case http.MethodDelete:
			item.Delete = op
		}
		sw.Paths.Paths[path] = item
	}
	return sw
}

func hasBody(rt Route) bool {
	_, ok := rt.Spec.BodyParam()
	return ok
}

func swaggerParam(p params.Param) *spec.Parameter {
	var sp *spec.Parameter
	if p.In == params.InPath {
		sp = spec.PathParam(p.WireName())
	} else {
		sp = spec.QueryParam(p.WireName())
	}
	typ, format := swaggerType(p.Type)
	if p.Multi {
		sp.CollectionOf(spec.NewItems().Typed(typ, format), "multi")
	} else {
		sp.Typed(typ, format)
	}
	if p.Required {
		sp.AsRequired()
	}
	if p.Default != nil {
		sp.WithDefault(p.Default)
	}
	if p.MinLength > 0 {
		sp.WithMinLength(int64(p.MinLength))
	}
	if p.MaxLength > 0 {
		sp.WithMaxLength(int64(p.MaxLength))
	}
	if p.Pattern != "" {
		sp.WithPattern(p.Pattern)
	}
	if len(p.Members) > 0 {
		enum := make([]interface{}, len(p.Members))
		for i, m := range p.Members {
			enum[i] = m
		}
		sp.WithEnum(enum...)
	}
	if p.Ge != nil {
		sp.WithMinimum(*p.Ge, false)
	}
	if p.Le != nil {
		sp.WithMaximum(*p.Le, false)
	}
	desc := p.Description
	if p.Title != "" && desc == "" {
		desc = p.Title
	}
	if desc != "" {
		sp.WithDescription(desc)
	}
	return sp
}

func swaggerType(t params.Type) (string, string) {
	switch t {
	case params.TypeInt:
		return "integer", "int64"
	case params.TypeFloat:
		return "number", "double"
	case params.TypeBool:
		return "boolean", ""
	default:
		return "string", ""
	}
}

// swaggerPath converts chi's {name} patterns, which already match the
// swagger syntax, and drops regexp suffixes like {id:[0-9]+}.
func swaggerPath(pattern string) string {
	var b strings.Builder
	depth := 0
	skip := false
	for _, c := range pattern {
		switch {
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				skip = false
			}
		case c == ':' && depth == 1:
			skip = true
			continue
		}
		if !skip {
			b.WriteRune(c)
		}
	}
	return b.String()
}

func schemaName(v any) string {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// structSchema describes the JSON shape of a body struct. Pointer fields
// are optional unless tagged validate:"required".
func structSchema(v any) spec.Schema {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	s := spec.Schema{SchemaProps: spec.SchemaProps{
		Type:       spec.StringOrArray{"object"},
		Properties: map[string]spec.Schema{},
	}}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if !f.IsExported() || name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		s.Properties[name] = *fieldSchema(f.Type)
		if strings.Contains(f.Tag.Get("validate"), "required") || f.Type.Kind() != reflect.Pointer {
			s.Required = append(s.Required, name)
		}
	}
	return s
}

func fieldSchema(t reflect.Type) *spec.Schema {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return spec.StringProperty()
	case reflect.Float32, reflect.Float64:
		return spec.Float64Property()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return spec.Int64Property()
	case reflect.Bool:
		return spec.BoolProperty()
	case reflect.Slice, reflect.Array:
		return spec.ArrayProperty(fieldSchema(t.Elem()))
	}
	return &spec.Schema{SchemaProps: spec.SchemaProps{Type: spec.StringOrArray{"object"}}}
}

func errorSchema() spec.Schema {
	issue := spec.Schema{SchemaProps: spec.SchemaProps{
		Type: spec.StringOrArray{"object"},
		Properties: map[string]spec.Schema{
			"loc":  *spec.ArrayProperty(spec.StringProperty()),
			"msg":  *spec.StringProperty(),
			"type": *spec.StringProperty(),
		},
	}}
	return spec.Schema{SchemaProps: spec.SchemaProps{
		Type: spec.StringOrArray{"object"},
		Properties: map[string]spec.Schema{
			"error":  *spec.StringProperty(),
			"code":   *spec.Int64Property(),
			"detail": *spec.ArrayProperty(&issue),
		},
	}}
}

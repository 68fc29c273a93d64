package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-openapi/spec"
)

func TestOpenAPI_ListsEveryRoute(t *testing.T) {
	w := httptest.NewRecorder()
	NewMux(&mockService{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var sw spec.Swagger
	if err := json.Unmarshal(w.Body.Bytes(), &sw); err != nil {
		t.Fatalf("json: %v", err)
	}
	for _, rt := range Routes(&mockService{}) {
		item, ok := sw.Paths.Paths[rt.Pattern]
		if !ok {
			t.Fatalf("missing path %s", rt.Pattern)
		}
		var op *spec.Operation
		switch rt.Method {
		case http.MethodGet:
			op = item.Get
		case http.MethodPost:
			op = item.Post
		case http.MethodPut:
			op = item.Put
		}
		if op == nil || op.ID != rt.Name {
			t.Fatalf("%s %s: operation missing or misnamed", rt.Method, rt.Pattern)
		}
	}
	if _, ok := sw.Definitions["ItemIn"]; !ok {
		t.Fatalf("expected ItemIn definition")
	}
}

func TestBuildSwagger_ParameterConstraints(t *testing.T) {
	sw := BuildSwagger(Routes(&mockService{}))

	q := sw.Paths.Paths["/items-query/"].Get.Parameters[0]
	if q.In != "query" || q.Required || q.MinLength == nil || *q.MinLength != 3 || q.Pattern != "^fixedquery$" {
		t.Fatalf("unexpected q parameter: %+v", q)
	}
	alias := sw.Paths.Paths["/items5/"].Get.Parameters[0]
	if alias.Name != "item-query" {
		t.Fatalf("expected the alias as parameter name, got %q", alias.Name)
	}
	model := sw.Paths.Paths["/models/{model_name}"].Get.Parameters[0]
	if model.In != "path" || !model.Required || len(model.Enum) != 3 {
		t.Fatalf("unexpected model parameter: %+v", model)
	}
	list := sw.Paths.Paths["/items3/"].Get.Parameters[0]
	if list.Type != "array" || list.CollectionFormat != "multi" {
		t.Fatalf("unexpected list parameter: %+v", list)
	}
	item := sw.Definitions["ItemIn"]
	if len(item.Required) != 2 || item.Required[0] != "name" || item.Required[1] != "price" {
		t.Fatalf("unexpected required body fields: %v", item.Required)
	}
}

func TestSwaggerPath_StripsRegexp(t *testing.T) {
	cases := map[string]string{
		"/items/{item_id}":       "/items/{item_id}",
		"/a/{id:[0-9]+}/b":       "/a/{id}/b",
		"/a/{code:[a-z]{2}}/{x}": "/a/{code}/{x}",
		"/plain/":                "/plain/",
	}
	for in, want := range cases {
		if got := swaggerPath(in); got != want {
			t.Fatalf("swaggerPath(%q)=%q want %q", in, got, want)
		}
	}
}

func TestSwaggerUI_ServesDocJSON(t *testing.T) {
	w := httptest.NewRecorder()
	NewMux(&mockService{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/docs/doc.json", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var sw spec.Swagger
	if err := json.Unmarshal(w.Body.Bytes(), &sw); err != nil {
		t.Fatalf("json: %v", err)
	}
	if sw.Info == nil || sw.Info.Title != "paramd API" {
		t.Fatalf("unexpected info: %+v", sw.Info)
	}
}

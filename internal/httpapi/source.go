package httpapi

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

// requestSource adapts a routed request to params.Source.
type requestSource struct {
	r    *http.Request
	body []byte
}

func (s requestSource) PathValue(name string) string {
	v := chi.URLParam(s.r, name)
	// chi matches on RawPath when it is set; Path is already decoded.
	if s.r.URL.RawPath == "" {
		return v
	}
	if u, err := url.PathUnescape(v); err == nil {
		return u
	}
	return v
}

func (s requestSource) Query() url.Values { return s.r.URL.Query() }

func (s requestSource) Body() []byte { return s.body }

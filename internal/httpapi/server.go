package httpapi

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"paramd/internal/params"
	"paramd/pkg/types"
)

// Service defines the data the HTTP API layer reads.
type Service interface {
	Items(skip, limit int) []types.CatalogEntry
	Model(m types.ModelName) (types.ModelResponse, error)
	Ready() bool
}

// HandlerFunc runs a route once all of its parameters validated.
// The result is JSON encoded with status 200 unless it implements
// StatusCode() int.
type HandlerFunc func(ctx context.Context, in params.Values) (any, error)

// Route is a declared endpoint: method, chi pattern, parameters, handler.
type Route struct {
	Method  string
	Pattern string
	// Name is the operation id used in the API docs.
	Name    string
	Summary string
	Spec    *params.Spec
	Handle  HandlerFunc
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	r.Use(AccessLog)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
			MaxAge:         300,
		}))
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		if target, ok := slashRedirect(r, req); ok {
			http.Redirect(w, req, target, http.StatusTemporaryRedirect)
			return
		}
		writeJSONError(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		writeJSONError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	routes := Routes(svc)
	for _, rt := range routes {
		r.Method(rt.Method, rt.Pattern, serveRoute(rt))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("loading"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	if docsEnabled {
		MountSwagger(r, routes)
	}
	return r
}

// serveRoute extracts and validates the route's parameters, runs the
// handler and encodes its result.
func serveRoute(rt Route) http.HandlerFunc {
	_, hasBody := rt.Spec.BodyParam()
	return func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if hasBody {
			if ct := r.Header.Get("Content-Type"); ct != "" && !isJSON(ct) {
				writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
				return
			}
			// Limit body size (configurable, default 1MiB)
			r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
			b, err := io.ReadAll(r.Body)
			if err != nil {
				var mbe *http.MaxBytesError
				if errors.As(err, &mbe) {
					writeJSONError(w, http.StatusRequestEntityTooLarge, "request body too large")
					return
				}
				writeJSONError(w, http.StatusBadRequest, "failed to read request body")
				return
			}
			body = b
		}

		in, err := rt.Spec.Extract(requestSource{r: r, body: body})
		if err != nil {
			if ve, ok := params.AsValidation(err); ok {
				observeIssues(rt.Pattern, ve.Issues)
				logIssues(r, rt.Pattern, len(ve.Issues))
			}
			writeError(w, err)
			return
		}

		ctx, cancel := handlerContext(r.Context())
		defer cancel()
		resp, err := rt.Handle(ctx, in)
		if err != nil {
			// Client went away; nothing useful to write.
			if r.Context().Err() != nil {
				return
			}
			writeError(w, err)
			return
		}
		status := successStatus(resp)
		if status == http.StatusNoContent {
			w.WriteHeader(status)
			return
		}
		writeJSON(w, status, resp)
	}
}

func isJSON(ct string) bool {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

// slashRedirect finds the route matching req's path with its trailing
// slash toggled and returns the redirect target.
func slashRedirect(mux *chi.Mux, req *http.Request) (string, bool) {
	p := req.URL.Path
	if p == "" || p == "/" {
		return "", false
	}
	alt := p + "/"
	if strings.HasSuffix(p, "/") {
		alt = strings.TrimSuffix(p, "/")
	}
	if !mux.Match(chi.NewRouteContext(), req.Method, alt) {
		return "", false
	}
	if req.URL.RawQuery != "" {
		alt += "?" + req.URL.RawQuery
	}
	return alt, true
}

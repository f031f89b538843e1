package route

import (
	"fmt"
	"sort"
	"strings"
)

// Method is an HTTP method a route can be registered for.
type Method string

const (
	MethodGet  Method = "GET"
	MethodPost Method = "POST"
)

// ParseMethod converts a request-line token to a Method.
// Matching is case-sensitive, as on the wire.
func ParseMethod(s string) (Method, bool) {
	switch Method(s) {
	case MethodGet, MethodPost:
		return Method(s), true
	default:
		return "", false
	}
}

// HandlerFunc produces a response body from ordered string arguments.
// Returning an error (or panicking) is reported as an InvocationError.
type HandlerFunc func(args []string) (string, error)

// ParamSpec declares one handler parameter bound from the query string.
type ParamSpec struct {
	Name       string `json:"name" yaml:"name"`
	Default    string `json:"default,omitempty" yaml:"default,omitempty"`
	HasDefault bool   `json:"has_default" yaml:"has_default"`
}

// Param declares a parameter without a default; a missing value binds "".
func Param(name string) ParamSpec {
	return ParamSpec{Name: name}
}

// ParamDefault declares a parameter that binds def when the query omits it.
func ParamDefault(name, def string) ParamSpec {
	return ParamSpec{Name: name, Default: def, HasDefault: true}
}

// Route is a registered (method, path) binding.
type Route struct {
	Method  Method
	Path    string
	Handler HandlerFunc
	Params  []ParamSpec
}

type routeKey struct {
	method Method
	path   string
}

// Table maps (method, path) pairs to routes.
type Table struct {
	routes map[routeKey]*Route
}

// NewTable creates an empty route table.
func NewTable() *Table {
	return &Table{
		routes: make(map[routeKey]*Route),
	}
}

// Register inserts or replaces the route for (method, path).
func (t *Table) Register(method Method, path string, h HandlerFunc, params ...ParamSpec) error {
	if _, ok := ParseMethod(string(method)); !ok {
		return fmt.Errorf("%w: unsupported method %q", ErrInvalidRoute, method)
	}
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidRoute)
	}
	if strings.Contains(path, "?") {
		return fmt.Errorf("%w: path %q contains a query string", ErrInvalidRoute, path)
	}
	if h == nil {
		return fmt.Errorf("%w: nil handler for %s %s", ErrInvalidRoute, method, path)
	}

	specs := make([]ParamSpec, len(params))
	copy(specs, params)

	t.routes[routeKey{method: method, path: path}] = &Route{
		Method:  method,
		Path:    path,
		Handler: h,
		Params:  specs,
	}
	return nil
}

// MustRegister is like Register but panics on an invalid definition.
// Intended for static registration code.
func (t *Table) MustRegister(method Method, path string, h HandlerFunc, params ...ParamSpec) {
	if err := t.Register(method, path, h, params...); err != nil {
		panic(err)
	}
}

// Lookup returns the route registered for exactly (method, path).
// No normalization is applied: "/hola" and "/hola/" are different paths.
func (t *Table) Lookup(method Method, path string) (*Route, bool) {
	r, ok := t.routes[routeKey{method: method, path: path}]
	return r, ok
}

// Len returns the number of registered routes.
func (t *Table) Len() int {
	return len(t.routes)
}

// Routes returns a snapshot of all routes ordered by path, then method.
func (t *Table) Routes() []Route {
	out := make([]Route, 0, len(t.routes))
	for _, r := range t.routes {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	return out
}

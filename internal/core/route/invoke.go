package route

import "fmt"

// BindArgs resolves the route's parameter specs against query, in order.
// A missing name binds its default when one is declared, otherwise "".
func BindArgs(specs []ParamSpec, query map[string]string) []string {
	args := make([]string, len(specs))
	for i, spec := range specs {
		if v, ok := query[spec.Name]; ok {
			args[i] = v
			continue
		}
		if spec.HasDefault {
			args[i] = spec.Default
		}
	}
	return args
}

// Invoke binds the query parameters and calls the route handler.
//
// Handler errors and panics are both returned as *InvocationError so that a
// faulty handler can never take down the serving loop.
func Invoke(r *Route, query map[string]string) (body string, err error) {
	args := BindArgs(r.Params, query)

	defer func() {
		if rec := recover(); rec != nil {
			body = ""
			err = &InvocationError{
				Method: r.Method,
				Path:   r.Path,
				Cause:  fmt.Errorf("handler panic: %v", rec),
			}
		}
	}()

	body, err = r.Handler(args)
	if err != nil {
		return "", &InvocationError{Method: r.Method, Path: r.Path, Cause: err}
	}
	return body, nil
}

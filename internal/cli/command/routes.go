package command

import (
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/microspring-go/internal/cli/output"
	"github.com/yndnr/microspring-go/internal/controller"
	"github.com/yndnr/microspring-go/internal/core/route"
)

// RoutesCommand returns the routes command.
func RoutesCommand() *cli.Command {
	return &cli.Command{
		Name:   "routes",
		Usage:  "List the registered routes",
		Flags:  []cli.Flag{outputFlag()},
		Action: routesAction,
	}
}

type routeInfo struct {
	Method     string            `json:"method" yaml:"method"`
	Path       string            `json:"path" yaml:"path"`
	Params     []route.ParamSpec `json:"params,omitempty" yaml:"params,omitempty"`
	Dispatched bool              `json:"dispatched" yaml:"dispatched"`
}

type routeList []routeInfo

func (l routeList) Table() *output.Table {
	t := &output.Table{Headers: []string{"METHOD", "PATH", "PARAMS", "DISPATCHED"}}
	for _, r := range l {
		params := make([]string, 0, len(r.Params))
		for _, p := range r.Params {
			if p.HasDefault {
				params = append(params, p.Name+"="+p.Default)
			} else {
				params = append(params, p.Name)
			}
		}
		dispatched := "no"
		if r.Dispatched {
			dispatched = "yes"
		}
		t.AddRow(r.Method, r.Path, strings.Join(params, ","), dispatched)
	}
	return t
}

// listRoutes flattens a table. Only GET routes are reachable through the
// dispatcher; the rest are reported as not dispatched.
func listRoutes(t *route.Table) routeList {
	routes := t.Routes()
	out := make(routeList, 0, len(routes))
	for _, r := range routes {
		out = append(out, routeInfo{
			Method:     string(r.Method),
			Path:       r.Path,
			Params:     r.Params,
			Dispatched: r.Method == route.MethodGet,
		})
	}
	return out
}

func routesAction(c *cli.Context) error {
	f, err := formatter(c)
	if err != nil {
		return err
	}
	t, err := controller.DefaultTable()
	if err != nil {
		return err
	}
	return f.Format(c.App.Writer, listRoutes(t))
}

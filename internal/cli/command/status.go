package command

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/microspring-go/internal/cli/connection"
	"github.com/yndnr/microspring-go/internal/cli/output"
)

// StatusCommand returns the status command.
func StatusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Query a running server's side listener",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "addr",
				Aliases:  []string{"a"},
				Usage:    "Side listener address (host:port)",
				EnvVars:  []string{"MICROSPRING_METRICS_ADDR"},
				Required: true,
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Request timeout",
				Value: connection.DefaultTimeout,
			},
			outputFlag(),
		},
		Action: statusAction,
	}
}

type statusInfo struct {
	Address string `json:"address" yaml:"address"`
	Status  string `json:"status" yaml:"status"`
	Version string `json:"version" yaml:"version"`
	Time    string `json:"time" yaml:"time"`
	Routes  int    `json:"routes" yaml:"routes"`
}

func (s statusInfo) Table() *output.Table {
	t := &output.Table{Headers: []string{"FIELD", "VALUE"}}
	t.AddRow("address", s.Address)
	t.AddRow("status", s.Status)
	t.AddRow("version", s.Version)
	t.AddRow("time", s.Time)
	t.AddRow("routes", strconv.Itoa(s.Routes))
	return t
}

func statusAction(c *cli.Context) error {
	f, err := formatter(c)
	if err != nil {
		return err
	}

	client := connection.NewHTTPClient(c.String("addr"), c.Duration("timeout"))
	info := statusInfo{Address: client.BaseURL()}

	var health struct {
		Status  string `json:"status"`
		Version string `json:"version"`
		Time    string `json:"time"`
	}
	if err := client.GetJSON(c.Context, "/health", &health); err != nil {
		return fmt.Errorf("query health: %w", err)
	}
	info.Status, info.Version, info.Time = health.Status, health.Version, health.Time

	var routes []routeInfo
	if err := client.GetJSON(c.Context, "/routes", &routes); err != nil {
		return fmt.Errorf("query routes: %w", err)
	}
	info.Routes = len(routes)

	return f.Format(c.App.Writer, info)
}

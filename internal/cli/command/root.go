package command

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/microspring-go/internal/cli/output"
	"github.com/yndnr/microspring-go/internal/infra/buildinfo"
)

// App creates the CLI application. Running it without a command serves.
func App() *cli.App {
	return &cli.App{
		Name:      "microspring-server",
		Usage:     "Minimal sequential HTTP server with routes and static files",
		Version:   buildinfo.String(),
		ArgsUsage: "[web-root]",
		Flags:     serveFlags(),
		Action:    serveAction,
		Commands: []*cli.Command{
			ServeCommand(),
			RoutesCommand(),
			StatusCommand(),
			VersionCommand(),
		},
	}
}

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output format: table, json, yaml",
		Value:   string(output.FormatTable),
	}
}

// formatter parses the --output flag.
func formatter(c *cli.Context) (output.Formatter, error) {
	f, err := output.ParseFormat(c.String("output"))
	if err != nil {
		return nil, err
	}
	return output.NewFormatter(f), nil
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}

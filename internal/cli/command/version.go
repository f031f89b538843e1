package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/microspring-go/internal/cli/output"
	"github.com/yndnr/microspring-go/internal/infra/buildinfo"
)

// VersionCommand returns the version command.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:   "version",
		Usage:  "Show build information",
		Flags:  []cli.Flag{outputFlag()},
		Action: versionAction,
	}
}

type versionInfo buildinfo.Info

func (v versionInfo) Table() *output.Table {
	t := &output.Table{Headers: []string{"FIELD", "VALUE"}}
	t.AddRow("version", v.Version)
	t.AddRow("commit", v.Commit)
	t.AddRow("build_time", v.BuildTime)
	t.AddRow("go_version", v.GoVersion)
	return t
}

func versionAction(c *cli.Context) error {
	f, err := formatter(c)
	if err != nil {
		return err
	}
	return f.Format(c.App.Writer, versionInfo(buildinfo.Get()))
}

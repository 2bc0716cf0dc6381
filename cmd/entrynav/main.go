package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/entrynav/cmd/entrynav/commands"
	ferrors "git.home.luguber.info/inful/entrynav/internal/foundation/errors"
	"git.home.luguber.info/inful/entrynav/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("entrynav"),
		kong.Description("Navigation page for the entry pages of a multi-page frontend project."),
		kong.Vars{"version": version.String()},
		kong.UsageOnError(),
	)

	err := parser.Run(&commands.Global{Logger: slog.Default()}, cli)
	ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}

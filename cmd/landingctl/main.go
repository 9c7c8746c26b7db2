package main

import (
	"os"

	"github.com/alecthomas/kong"

	"landing-builder-backend/pkg/logger"
	"landing-builder-backend/pkg/validator"
)

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("landingctl"),
		kong.Description("Inspect and transform landing page content offline."),
		kong.UsageOnError(),
	)

	logger.Init(cli.LogLevel, "text")
	validator.Init()

	err := ctx.Run(&Global{Out: os.Stdout})
	ctx.FatalIfErrorf(err)
}

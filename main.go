package main

import (
	"github.com/alecthomas/kong"

	"droscher.com/BeerImporter/cmd"
)

func main() {
	ctx := kong.Parse(&cmd.CLI, kong.Name("beer-importer"), kong.Description("Loads a directory of beer JSON documents into the beer tracker database."))
	err := ctx.Run(&cmd.Context{Debug: cmd.CLI.Debug})
	ctx.FatalIfErrorf(err)
}

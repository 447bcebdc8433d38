package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	ConfigFile string `name:"config" short:"c" default:"snowbattle.hcl" help:"Path to HCL configuration file"`
	LogLevel   string `short:"l" help:"Log level: debug, info, warn, error (overrides config)"`
	NoColor    bool   `help:"Disable colour output"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" help:"Play a match in the terminal against bots"`
	Simulate SimulateCmd      `cmd:"" help:"Run headless bot matches and report statistics"`
	Config   ConfigCmd        `cmd:"" help:"Work with configuration files"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("snowbattle"),
		kong.Description("Round-based two-team snowball fights"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

package main

import (
	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Config string `short:"c" type:"path" env:"POTDRILL_CONFIG" help:"Path to HCL configuration file"`
	Debug  bool   `help:"Enable debug logging"`
	Seed   *int64 `env:"POTDRILL_SEED" help:"Deterministic RNG seed (overrides config)"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Run the interactive pot drill"`
	Serve    ServeCmd         `cmd:"" help:"Serve drills over WebSocket"`
	Generate GenerateCmd      `cmd:"" help:"Print generated scenarios"`
	Tip      TipCmd           `cmd:"" help:"Look up the dealer tip for a pot"`
	Audit    AuditCmd         `cmd:"" help:"Generate scenarios in bulk and check every invariant"`
	Build    VersionCmd       `cmd:"" name:"version" help:"Print the build version"`
}

func main() {
	// Optional; lets POTDRILL_* settings live in a local .env
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("potdrill"),
		kong.Description("Practice the pot, rake, tip and payout arithmetic of a cash game dealer"),
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

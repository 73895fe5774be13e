package main

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog/log"

	"github.com/leadform/leadform/cmd/cli/internal/commands"
	"github.com/leadform/leadform/internal/logger"
)

var (
	version = "dev"
	cli     struct {
		Login      commands.LoginCmd      `cmd:"" help:"Log in and store the API credential"`
		Logout     commands.LogoutCmd     `cmd:"" help:"Log out and clear the stored credential"`
		Whoami     commands.WhoamiCmd     `cmd:"" help:"Show the authenticated user"`
		Profile    commands.ProfileCmd    `cmd:"" help:"Show or update the profile"`
		Password   commands.PasswordCmd   `cmd:"" help:"Change or reset the password"`
		Forms      commands.FormsCmd      `cmd:"" help:"Manage embeddable forms"`
		Leads      commands.LeadsCmd      `cmd:"" help:"Track and manage captured leads"`
		Affiliates commands.AffiliatesCmd `cmd:"" help:"Manage affiliate partners"`
		Dashboard  commands.DashboardCmd  `cmd:"" help:"Show the dashboard summary"`
		Analytics  commands.AnalyticsCmd  `cmd:"" help:"Show aggregated analytics"`
		Debug      bool                   `help:"Enable debug mode."`
		Version    kong.VersionFlag
	}
)

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	log.Logger = logger.Setup(cli.Debug)
	err := cmd.Run(&commands.Globals{Debug: cli.Debug, Version: version})
	cmd.FatalIfErrorf(err)
}

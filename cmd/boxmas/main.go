package main

import (
	"os"

	"github.com/spf13/cobra"

	"boxmas/internal/interfaces/cli/configcmd"
	"boxmas/internal/interfaces/cli/migrate"
	"boxmas/internal/interfaces/cli/server"
	"boxmas/internal/interfaces/cli/sessions"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "boxmas",
		Short: "BoxMas - authentication and session service",
		Long:  `BoxMas serves user registration, password login and bearer-token sessions over HTTP.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		sessions.NewCommand(),
		configcmd.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

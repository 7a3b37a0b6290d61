package sessions

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"boxmas/internal/application/user/usecases"
	"boxmas/internal/infrastructure/repository"
	"boxmas/internal/interfaces/cli/bootstrap"
)

var (
	env        string
	configPath string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Session maintenance",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(&cobra.Command{
		Use:   "purge",
		Short: "Delete every expired session once",
		RunE:  runPurge,
	})

	return cmd
}

func runPurge(cmd *cobra.Command, args []string) error {
	app, err := bootstrap.Open(bootstrap.ResolveEnv(env), configPath)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()

	purge := usecases.NewPurgeExpiredSessionsUseCase(repository.NewSessionRepository(app.DB), app.Log)
	removed, err := purge.Execute(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "removed %d expired sessions\n", removed)
	return nil
}

package migrate

import (
	"github.com/spf13/cobra"

	"boxmas/internal/infrastructure/migration"
	"boxmas/internal/interfaces/cli/bootstrap"
)

var (
	env        string
	configPath string
	steps      int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Apply, roll back and inspect the versioned SQL migrations.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE:  runStatus,
	}
}

// openManager always uses the versioned scripts, whatever the environment.
func openManager() (*bootstrap.Env, *migration.Manager, error) {
	app, err := bootstrap.Open(bootstrap.ResolveEnv(env), configPath)
	if err != nil {
		return nil, nil, err
	}
	strategy := migration.NewGooseStrategy(migration.GooseDialect(app.Config.Database.Driver))
	return app, migration.NewManagerWithStrategy(strategy), nil
}

func runUp(cmd *cobra.Command, args []string) error {
	app, manager, err := openManager()
	if err != nil {
		return err
	}
	defer app.Close()

	app.Log.Infow("running up migrations", "driver", app.Config.Database.Driver)
	return manager.Migrate(app.DB)
}

func runDown(cmd *cobra.Command, args []string) error {
	app, manager, err := openManager()
	if err != nil {
		return err
	}
	defer app.Close()

	app.Log.Infow("rolling back migrations", "steps", steps)
	if err := manager.Down(app.DB, steps); err != nil {
		app.Log.Errorw("rollback failed", "error", err)
		return err
	}
	app.Log.Infow("rollback completed")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	app, manager, err := openManager()
	if err != nil {
		return err
	}
	defer app.Close()

	version, err := manager.Version(app.DB)
	if err != nil {
		return err
	}
	app.Log.Infow("current migration version", "version", version)

	return manager.Status(app.DB)
}

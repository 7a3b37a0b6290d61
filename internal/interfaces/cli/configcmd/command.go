// Package configcmd prints the effective configuration.
package configcmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"boxmas/internal/infrastructure/config"
	"boxmas/internal/interfaces/cli/bootstrap"
	"boxmas/internal/shared/utils"
)

var (
	env        string
	configPath string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration tools",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration with secrets masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(bootstrap.ResolveEnv(env), configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return Show(cmd.OutOrStdout(), cfg)
		},
	})

	return cmd
}

// Show writes cfg as YAML. Passwords and the signing secret are masked.
func Show(w io.Writer, cfg *config.Config) error {
	masked := *cfg
	masked.Database.Password = utils.MaskSecret(cfg.Database.Password)
	masked.Redis.Password = utils.MaskSecret(cfg.Redis.Password)
	masked.Auth.JWT.Secret = utils.MaskSecret(cfg.Auth.JWT.Secret)

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(&masked); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return encoder.Close()
}

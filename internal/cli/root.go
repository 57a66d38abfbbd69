// Package cli is the blackpiston command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"blackpiston/internal/config"
)

// Version is set at build time with -ldflags.
var Version = "dev"

var configFile string

var rootCmd = &cobra.Command{
	Use:   "blackpiston",
	Short: "Black Piston marketplace API and admin tooling",
	Long: `blackpiston serves the vehicle marketplace API and runs admin jobs
(exports, bulk moderation) against it.

Configuration comes from environment variables and an optional
blackpiston.yaml; flags override both.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: ./blackpiston.yaml when present)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(moderateCmd)
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "blackpiston "+Version)
	},
}

// loadEnv reads configuration and lets the named flags of cmd override
// their config keys.
func loadEnv(cmd *cobra.Command, bindings map[string]string) (config.Env, error) {
	v, err := config.NewViper(configFile)
	if err != nil {
		return config.Env{}, fmt.Errorf("load config: %w", err)
	}
	if err := bindFlags(v, cmd, bindings); err != nil {
		return config.Env{}, err
	}
	return config.FromViper(v), nil
}

func bindFlags(v *viper.Viper, cmd *cobra.Command, bindings map[string]string) error {
	for key, flag := range bindings {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind --%s: %w", flag, err)
		}
	}
	return nil
}

package cli

import (
	"github.com/eleven-am/listkeeper/internal/logger"
	"github.com/eleven-am/listkeeper/pkg/listkeeper"
	"github.com/spf13/cobra"
)

// Global configuration variables
var (
	configFile  string
	appConfig   *Config
	databaseURL string
	debug       bool
	verbose     bool
)

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "listkeeper",
		Short: "listkeeper - shared lists and items",
		Long: `listkeeper manages users, their catalog items and the lists that
group those items.

The binary hosts the maintenance commands:
- seed: wipe every table and load the demo fixtures
- version: print build information`,
		Version:       listkeeper.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			appConfig, err = LoadConfig(configFile)
			if err != nil {
				return err
			}

			if databaseURL == "" {
				databaseURL = appConfig.Database.URL
			}

			logger.Init(logger.Config{
				Level:  appConfig.Log.Level,
				Format: appConfig.Log.Format,
				Output: cmd.ErrOrStderr(),
			})
			if debug || verbose {
				logger.SetVerbosity(debug, verbose)
			}

			logger.CLI().WithFields(map[string]interface{}{
				"command":     cmd.Name(),
				"environment": appConfig.Environment,
			}).Debug("configuration loaded")
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: listkeeper.yaml)")
	rootCmd.PersistentFlags().StringVar(&databaseURL, "url", "", "database connection URL")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose output")

	rootCmd.AddCommand(newSeedCommand())
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

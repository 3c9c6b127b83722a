package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katpally123/attendance-dashboard/pkg/config"
	"github.com/katpally123/attendance-dashboard/pkg/logging"
)

var (
	// Global flags
	verbose      bool
	configPath   string
	settingsPath string

	appConfig *config.AppConfig
	logger    *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "headcount",
	Short: "Expected vs present headcount per department for a date and shift",
	Long: `headcount reconciles a workforce roster against a time-and-attendance feed.

For the selected date and shift it keeps the people whose shift corner is
scheduled, optionally drops new hires and people on vacation, assigns each
person to exactly one department bucket and counts AMZN and TEMP staff who
were expected and who were on premises.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAppConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if settingsPath != "" {
			cfg.Settings.Path = settingsPath
		}
		if verbose {
			cfg.Log.Level = "debug"
		}
		appConfig = cfg

		logger, err = logging.New(cfg.Log.Level, cfg.Log.Format)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "headcount.toml", "Application config file")
	rootCmd.PersistentFlags().StringVarP(&settingsPath, "settings", "s", "", "Settings document (overrides config)")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newCodesCmd())
	rootCmd.AddCommand(newServeCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadSettings() (config.Settings, error) {
	settings, err := config.LoadSettings(appConfig.Settings.Path)
	if err != nil {
		return config.Settings{}, err
	}
	logger.Debug("settings loaded",
		zap.String("path", appConfig.Settings.Path),
		zap.Strings("buckets", settings.Buckets()),
		zap.Strings("present_markers", settings.PresentMarkers),
	)
	return settings, nil
}

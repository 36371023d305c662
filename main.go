package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

const AppName = "stockgallery"

var Version = "0.1.0"

var (
	cfgFile   string
	logLevel  string
	logFormat string
	cfg       *Config
	logger    = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   AppName,
	Short: "Search stock photos and page through the results",
	Long: `stockgallery searches Pixabay, Pexels or Unsplash and shows the results
as a gallery you can keep extending with "load more".

Example usage:
  stockgallery serve                 # open http://127.0.0.1:8081 in a browser
  stockgallery search cats --pages 2 # print two pages of results`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is conf/config.json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text, json")
	rootCmd.AddCommand(serveCmd, searchCmd)
}

func initConfig(cmd *cobra.Command) error {
	var err error
	cfg, err = LoadConfig(cfgFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format = logFormat
	}
	logger = NewLogger(ParseLevel(cfg.Log.Level), cfg.Log.Format)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logger.Debug("configuration loaded", "source", cfg.Source, "per_page", cfg.PerPage)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}
}

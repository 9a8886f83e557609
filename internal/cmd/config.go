package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"arffview/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View arffview configuration",
	Long: `View the resolved arffview configuration.

Without arguments, displays the current configuration after merging
defaults, the config file, environment variables and flags.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Println("Current configuration:")
	fmt.Println()
	fmt.Printf("  service.endpoint         %s\n", cfg.Service.Endpoint)
	fmt.Printf("  service.timeout_seconds  %d\n", cfg.Service.TimeoutSeconds)
	fmt.Printf("  service.contract         %s\n", orAuto(cfg.Service.Contract))
	fmt.Printf("  upload.extension         %s\n", cfg.Upload.Extension)
	fmt.Printf("  upload.max_size_bytes    %d\n", cfg.Upload.MaxSizeBytes)
	fmt.Printf("  upload.drop_dir          %s\n", orNone(cfg.Upload.DropDir))
	fmt.Printf("  output.histogram_dir     %s\n", cfg.Output.HistogramDir)
	fmt.Printf("  logging.level            %s\n", cfg.Logging.Level)
	fmt.Printf("  logging.dir              %s\n", orNone(cfg.Logging.Dir))

	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Println()
		fmt.Printf("  (from %s)\n", used)
	}
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	fmt.Println(config.ConfigFile())
	return nil
}

func orAuto(s string) string {
	if s == "" {
		return "(auto-detect)"
	}
	return s
}

func orNone(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

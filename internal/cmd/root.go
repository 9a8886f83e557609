package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"arffview/internal/config"
	"arffview/internal/logging"
	"arffview/internal/service"
	"arffview/internal/tui"
	"arffview/internal/watch"
)

var rootCmd = &cobra.Command{
	Use:   "arffview",
	Short: "Terminal client for the ARFF dataset splitting service",
	Long: `Arffview uploads an ARFF dataset to a remote processing service and
renders the result: dataset summary, train/validation/test split sizes,
per-split protocol-type distribution tables, and histogram images
(decoded and saved as PNG files).

Run without arguments for the interactive client, or use "arffview
submit <file>" for one-shot use.`,
	RunE: runTUI,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/arffview/config.yaml)")
	rootCmd.PersistentFlags().String("endpoint", "", "processing service base URL")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("service.endpoint", rootCmd.PersistentFlags().Lookup("endpoint"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/arffview")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("ARFFVIEW")
	// Replace dots with underscores for nested keys in env vars
	// e.g., ARFFVIEW_SERVICE_ENDPOINT for service.endpoint
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	defer func() { _ = logger.Close() }()

	var watcher *watch.Watcher
	if cfg.Upload.DropDir != "" {
		watcher, err = watch.New(cfg.Upload.DropDir, cfg.Upload.Extension)
		if err != nil {
			return fmt.Errorf("watch drop directory: %w", err)
		}
		watcher.Start()
		defer watcher.Stop()
	}

	model := tui.NewModel(cfg, nil, watcher, logger)
	client := service.NewHTTPClient(
		service.WithEndpoint(cfg.Service.Endpoint),
		service.WithTimeout(cfg.Service.Timeout()),
		service.WithProgress(model.ProgressFunc()),
		service.WithLogger(logger),
	)
	model = model.WithClient(client)

	return tui.New(model).Run()
}

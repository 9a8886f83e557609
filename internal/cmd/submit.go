package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"arffview/internal/config"
	"arffview/internal/dataset"
	apperrors "arffview/internal/errors"
	"arffview/internal/logging"
	"arffview/internal/render"
	"arffview/internal/service"
)

var submitCmd = &cobra.Command{
	Use:   "submit <file>",
	Short: "Upload a dataset and print the processing result",
	Long: `Upload one ARFF dataset to the processing service and print the
rendered result to stdout. Histogram images are decoded and written to
the configured output directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runSubmit,
}

func init() {
	rootCmd.AddCommand(submitCmd)
	submitCmd.Flags().StringP("out", "o", "", "directory for decoded histogram images (overrides output.histogram_dir)")
	submitCmd.Flags().Bool("quiet", false, "suppress the upload progress bar")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		cfg.Output.HistogramDir = out
	}
	quiet, _ := cmd.Flags().GetBool("quiet")

	logger, err := logging.NewLogger(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	defer func() { _ = logger.Close() }()

	sel, err := dataset.Select(args[0], cfg.Upload.Extension, cfg.Upload.MaxSizeBytes)
	if err != nil {
		return fmt.Errorf("%s", apperrors.UserMessage(err))
	}

	opts := []service.ClientOption{
		service.WithEndpoint(cfg.Service.Endpoint),
		service.WithTimeout(cfg.Service.Timeout()),
		service.WithLogger(logger),
	}

	var bar *progressbar.ProgressBar
	if !quiet {
		bar = progressbar.DefaultBytes(-1, "uploading "+sel.Name)
		opts = append(opts, service.WithProgress(func(sent, total int64) {
			bar.ChangeMax64(total)
			_ = bar.Set64(sent)
		}))
	}

	client := service.NewHTTPClient(opts...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := client.Process(ctx, sel)
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return fmt.Errorf("%s", apperrors.UserMessage(err))
	}

	out, err := render.Result(result, render.Options{
		HistogramDir: cfg.Output.HistogramDir,
		Contract:     contractVariant(cfg.Service.Contract),
	})
	// Print what rendered even when a region failed, the error goes to
	// the exit status.
	fmt.Print(out)
	if err != nil {
		return fmt.Errorf("%s", apperrors.UserMessage(err))
	}
	return nil
}

// contractVariant maps the config contract string to an InfoVariant.
func contractVariant(contract string) service.InfoVariant {
	switch contract {
	case "stratify":
		return service.InfoStratify
	case "shape":
		return service.InfoShape
	default:
		return service.InfoNone
	}
}

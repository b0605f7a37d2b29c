package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"plotkit/internal/config"
	"plotkit/internal/dataset"
	"plotkit/internal/logger"
	"plotkit/internal/storage"
)

var log = logger.Component("cli")

// app carries what every command needs once the configuration is loaded
type app struct {
	cfg *config.Config
	out io.Writer

	envFile   string
	outputDir string
	storage   string
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}

	root := &cobra.Command{
		Use:   "plotkit",
		Short: "Configure and render interactive charts from tabular data",
		Long: `plotkit turns CSV and XLSX data into dual-axis bar and line charts,
line charts, grouped bar charts and styled tables. Charts are written as HTML
pages, PNG or SVG images, or JSON/CBOR snapshots of their configuration.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.envFile, "env-file", config.DefaultEnvFile, "Dotenv file read before the environment")
	root.PersistentFlags().StringVarP(&a.outputDir, "output-dir", "o", "", "Output directory for local storage (overrides PLOTKIT_OUTPUT_DIR)")
	root.PersistentFlags().StringVar(&a.storage, "storage", "", "Storage backend: local or gcs (overrides PLOTKIT_STORAGE)")

	root.AddCommand(
		newDualAxisCmd(a),
		newLineCmd(a),
		newMultiLineCmd(a),
		newMultiBarCmd(a),
		newTableCmd(a),
		newPreviewCmd(a),
		newGalleryCmd(a),
		newVersionCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWithEnvFile(cmd.Context(), a.envFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if a.outputDir != "" {
		cfg.OutputDir = a.outputDir
	}
	if a.storage != "" {
		cfg.Storage = a.storage
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger.Configure(cfg.LogLevel, cfg.LogFormat)
	a.cfg = cfg

	log.Debug("Configuration loaded", logger.Fields{
		"storage":     cfg.Storage,
		"output_dir":  cfg.OutputDir,
		"environment": cfg.Environment,
	})
	return nil
}

func (a *app) load(ctx context.Context, source string) (*dataset.Dataset, error) {
	fetcher := dataset.NewFetcher(a.cfg.HTTPTimeout, a.cfg.HTTPRetries)
	ds, err := dataset.Load(ctx, fetcher, source)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", source, err)
	}
	log.Info("Loaded dataset", logger.Fields{"source": source, "rows": ds.Len(), "columns": len(ds.Columns())})
	return ds, nil
}

// store writes one file through the configured sink and prints its location
func (a *app) store(ctx context.Context, name string, data []byte) error {
	sink, err := storage.NewSink(ctx, a.cfg)
	if err != nil {
		return err
	}
	defer sink.Close()

	location, err := sink.StoreFile(ctx, name, data)
	if err != nil {
		return fmt.Errorf("failed to store %s: %w", name, err)
	}
	fmt.Fprintln(a.out, location)
	return nil
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the plotkit version",
		Args:  cobra.NoArgs,
		// version needs no configuration
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.out, "plotkit %s\n", config.GetVersion())
		},
	}
}

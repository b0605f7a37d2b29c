package main

import (
	"bytes"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"plotkit/internal/gallery"
	"plotkit/internal/plot"
	"plotkit/internal/render"
	"plotkit/internal/storage"
	"plotkit/internal/table"
)

func newTableCmd(a *app) *cobra.Command {
	var (
		opts  table.Options
		name  string
		title string
		sort  []string
	)

	cmd := &cobra.Command{
		Use:   "table <source>",
		Short: "Render a dataset as a styled HTML table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(sort) > 0 {
				if ds, err = ds.SortBy(sort...); err != nil {
					return err
				}
			}
			tbl, err := table.New(ds, opts)
			if err != nil {
				return err
			}

			page := render.NewPage(title, a.cfg.AssetsHost, a.cfg.Minify)
			block, err := page.Table(tbl)
			if err != nil {
				return err
			}
			page.AddRow(block)

			var buf bytes.Buffer
			if err := page.Render(&buf); err != nil {
				return err
			}
			return a.store(cmd.Context(), name+".html", buf.Bytes())
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.HeaderStyle, "header-style", table.DefaultHeaderStyle, "Inline CSS of the header row")
	f.StringVar(&opts.TableStyle, "table-style", table.DefaultTableStyle, "Inline CSS of every cell")
	f.IntVar(&opts.Height, "height", table.DefaultHeight, "Height of the scrollable body in pixels")
	f.StringToStringVar(&opts.Formats, "column-format", nil, "Numeral format per column, e.g. sales=0.0a")
	f.StringToStringVar(&opts.Titles, "column-title", nil, "Displayed heading per column")
	f.StringSliceVar(&sort, "sort", nil, "Columns to sort the rows by")
	f.StringVar(&title, "title", "Data", "Page title")
	f.StringVarP(&name, "name", "n", "table", "Output file name without extension")
	return cmd
}

func newPreviewCmd(a *app) *cobra.Command {
	var (
		rows    int
		formats map[string]string
	)

	cmd := &cobra.Command{
		Use:   "preview <source>",
		Short: "Print the first rows of a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			tbl, err := table.New(ds, table.Options{Formats: formats})
			if err != nil {
				return err
			}
			tbl.WriteText(a.out, rows)
			fmt.Fprintf(a.out, "%d rows, %d columns\n", ds.Len(), len(ds.Columns()))
			return nil
		},
	}

	cmd.Flags().IntVarP(&rows, "rows", "r", 10, "Rows to print; 0 prints every row")
	cmd.Flags().StringToStringVar(&formats, "column-format", nil, "Numeral format per column, e.g. sales=0.0a")
	return cmd
}

func newGalleryCmd(a *app) *cobra.Command {
	var (
		images   bool
		snapshot string
	)

	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Render the demo pages of every chart type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g := gallery.New(a.cfg.AssetsHost, a.cfg.Minify)
			g.Images = images
			g.Snapshot = plot.SnapshotFormat(snapshot)

			files, err := g.Build(time.Now())
			if err != nil {
				return err
			}

			sink, err := storage.NewSink(cmd.Context(), a.cfg)
			if err != nil {
				return err
			}
			defer sink.Close()

			locations, err := gallery.Store(cmd.Context(), sink, files)
			if err != nil {
				return err
			}
			for _, l := range locations {
				fmt.Fprintln(a.out, l)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&images, "images", true, "Write PNG previews of the charts")
	cmd.Flags().StringVar(&snapshot, "snapshot", string(plot.SnapshotJSON), "Snapshot encoding: json, cbor, or empty to skip")
	return cmd
}

package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"plotkit/internal/logger"
	"plotkit/internal/plot"
	"plotkit/internal/render"
)

// Output formats of the chart commands
const (
	formatHTML    = "html"
	formatECharts = "echarts"
	formatPNG     = "png"
	formatSVG     = "svg"
	formatJSON    = "json"
	formatCBOR    = "cbor"
)

var formats = []string{formatHTML, formatECharts, formatPNG, formatSVG, formatJSON, formatCBOR}

type outputFlags struct {
	format string
	name   string
}

func (o *outputFlags) register(cmd *cobra.Command, defaultName string) {
	cmd.Flags().StringVarP(&o.format, "format", "f", formatHTML, "Output format: "+strings.Join(formats, ", "))
	cmd.Flags().StringVarP(&o.name, "name", "n", defaultName, "Output file name without extension")
}

// encode renders a chart in the requested format and returns the file
// extension with the bytes
func (a *app) encode(c render.Chart, format string) (string, []byte, error) {
	var buf bytes.Buffer
	switch format {
	case formatHTML:
		title, err := chartTitle(c)
		if err != nil {
			return "", nil, err
		}
		page := render.NewPage(title, a.cfg.AssetsHost, a.cfg.Minify)
		block, err := page.Chart(c)
		if err != nil {
			return "", nil, err
		}
		page.AddRow(block)
		if err := page.Render(&buf); err != nil {
			return "", nil, err
		}
		return "html", buf.Bytes(), nil

	case formatECharts:
		if err := render.NewECharts(a.cfg.Theme, a.cfg.AssetsHost).Render(&buf, c); err != nil {
			return "", nil, err
		}
		return "html", buf.Bytes(), nil

	case formatPNG, formatSVG:
		if err := render.RenderImage(&buf, c, render.ImageFormat(format)); err != nil {
			return "", nil, err
		}
		return format, buf.Bytes(), nil

	case formatJSON, formatCBOR:
		b, err := plot.EncodeSnapshot(c, plot.SnapshotFormat(format))
		if err != nil {
			return "", nil, err
		}
		return format, b, nil
	}
	return "", nil, &plot.OptionError{Option: "format", Value: format, Reason: "must be one of " + strings.Join(formats, ", ")}
}

func chartTitle(c render.Chart) (string, error) {
	switch v := c.(type) {
	case *plot.DualAxisChart:
		return v.Title, nil
	case *plot.SeriesChart:
		return v.Title, nil
	}
	return "", &render.UnsupportedChartError{Chart: c}
}

// emit encodes a chart and stores it
func (a *app) emit(ctx context.Context, c render.Chart, out outputFlags) error {
	if sc, ok := c.(*plot.SeriesChart); ok {
		for _, w := range sc.Warnings {
			log.Warn("Option substituted", logger.Fields{"warning": w})
		}
	}

	ext, data, err := a.encode(c, out.format)
	if err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return a.store(ctx, out.name+"."+ext, data)
}

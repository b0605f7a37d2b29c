package gallery

import (
	"fmt"

	"plotkit/internal/dataset"
	"plotkit/internal/plot"
	"plotkit/internal/render"
	"plotkit/internal/table"
)

// Demo is one gallery page: a chart built once with only the required
// parameters and once with the optional ones, followed by its data
type Demo struct {
	// Name is the page file name without extension
	Name  string
	Title string

	MandatoryText string
	OptionalText  string

	load      func() (*dataset.Dataset, error)
	mandatory func(ds *dataset.Dataset) (render.Chart, error)
	optional  func(ds *dataset.Dataset) (render.Chart, error)
	table     func(ds *dataset.Dataset) (*table.Table, error)
}

// Demos returns every gallery page in display order
func Demos() []Demo {
	return []Demo{dualAxisDemo(), lineDemo(), multiLineDemo(), multiBarDemo()}
}

func dualAxisDemo() Demo {
	cols := plot.DualAxisColumns{
		Group:       "IntervationName",
		BarCategory: "GroupName",
		BarValue:    "TruePositiveRate",
		LineValue:   "Profit",
	}
	return Demo{
		Name:  "dual_axis_bar_line",
		Title: "Dual axis bar and line chart",
		MandatoryText: "### Required parameters\n\n" +
			"`DualAxisBarLine(ds, columns, opts)` needs the group column drawn on the x axis, " +
			"the column holding the **two** bar categories, the bar value and the line value. " +
			"Bars use the left axis and the line the right one.",
		OptionalText: "### Optional parameters\n\n" +
			"Axis labels, size, bar and line colours, bar width, line width, marker size, " +
			"axis limits, tick and tooltip formats and the legend placement can all be set.",
		load: ProfitByAgeGroup,
		mandatory: func(ds *dataset.Dataset) (render.Chart, error) {
			opts := plot.DefaultDualAxisOptions()
			opts.Title = "TPR by group and profit"
			return plot.DualAxisBarLine(ds, cols, opts)
		},
		optional: func(ds *dataset.Dataset) (render.Chart, error) {
			opts := plot.DualAxisOptions{
				Title:            "TPR by group and profit",
				LeftAxisLabel:    plot.String("TPR"),
				RightAxisLabel:   plot.String("Profit"),
				Height:           450,
				Width:            800,
				BarColours:       []string{"#c5cae9", "#7986cb"},
				BarWidth:         0.95,
				LineColour:       "#ff9800",
				LineWidth:        3,
				MarkerSize:       10,
				MaxLeftY:         plot.Float(1),
				MinRightY:        plot.Float(0),
				YTickFormat:      "0 %",
				BarTooltipFormat: "{0 %}",
				LegendLocation:   plot.LegendLocation{X: 10, Y: 10},
				LegendPlacement:  plot.PlacementRight,
			}
			return plot.DualAxisBarLine(ds, cols, opts)
		},
		table: func(ds *dataset.Dataset) (*table.Table, error) {
			ds, err := ds.Select("GroupName", "IntervationName", "Profit", "TruePositiveRate")
			if err != nil {
				return nil, err
			}
			if ds, err = ds.SortBy("IntervationName"); err != nil {
				return nil, err
			}
			return table.New(ds, table.Options{
				Formats: map[string]string{"Profit": "0,0", "TruePositiveRate": "0 %"},
			})
		},
	}
}

func lineDemo() Demo {
	return Demo{
		Name:  "line_chart",
		Title: "Line chart",
		MandatoryText: "### Required parameters\n\n" +
			"`SingleLine(ds, x, y, opts)` draws one line of the y column over the x column. " +
			"Dates and numbers on the x axis are plotted in ascending order.",
		OptionalText: "### Optional parameters\n\n" +
			"The colour is picked from the Material palette by name and shade. " +
			"Legend, size, line width, tick format and axis labels are optional.",
		load: DailySales,
		mandatory: func(ds *dataset.Dataset) (render.Chart, error) {
			opts := plot.DefaultLineOptions()
			opts.Title = "Total sales"
			return plot.SingleLine(ds, "date", "sales", opts)
		},
		optional: func(ds *dataset.Dataset) (render.Chart, error) {
			opts := plot.LineOptions{
				Title:           "Total sales",
				ShowLegend:      true,
				ColourName:      "amber",
				ColourCode:      "600",
				Width:           900,
				Height:          450,
				LegendPlacement: plot.PlacementRight,
				LineWidth:       1.5,
				YTickFormat:     "0.0a",
				YAxisLabel:      plot.String("Total Sales"),
				XAxisLabel:      plot.String(""),
			}
			return plot.SingleLine(ds, "date", "sales", opts)
		},
		table: func(ds *dataset.Dataset) (*table.Table, error) {
			return table.New(ds, table.Options{Formats: map[string]string{"sales": "0,0"}})
		},
	}
}

func multiLineDemo() Demo {
	return Demo{
		Name:  "multiple_line_chart",
		Title: "Multiple line chart",
		MandatoryText: "### Required parameters\n\n" +
			"`MultipleLines(ds, x, y, category, opts)` draws one line per value of the category column, " +
			"each in its own palette colour.",
		OptionalText: "### Optional parameters\n\n" +
			"Line opacity, width, legend placement, size, tick format and axis labels are optional.",
		load: DailySalesByStore,
		mandatory: func(ds *dataset.Dataset) (render.Chart, error) {
			opts := plot.DefaultMultiLineOptions()
			opts.Title = "Total sales"
			return plot.MultipleLines(ds, "date", "sales", "store", opts)
		},
		optional: func(ds *dataset.Dataset) (render.Chart, error) {
			opts := plot.MultiLineOptions{
				Title:           "Total sales",
				ShowLegend:      true,
				Width:           900,
				Height:          450,
				LegendPlacement: plot.PlacementRight,
				LineWidth:       1.5,
				LineAlpha:       0.5,
				YTickFormat:     "0.0a",
				YAxisLabel:      plot.String("Total Sales by Store"),
				XAxisLabel:      plot.String(""),
			}
			return plot.MultipleLines(ds, "date", "sales", "store", opts)
		},
		table: func(ds *dataset.Dataset) (*table.Table, error) {
			return table.New(ds, table.Options{Formats: map[string]string{"sales": "0,0"}})
		},
	}
}

func multiBarDemo() Demo {
	return Demo{
		Name:  "multiple_bar_chart",
		Title: "Multiple bar chart",
		MandatoryText: "### Required parameters\n\n" +
			"`MultipleBars(ds, x, y, category, opts)` groups one bar per category value at every x value.",
		OptionalText: "### Optional parameters\n\n" +
			"Tooltip and tick formats, colours, bar width and the legend are optional.",
		load: YearlySalesByStore,
		mandatory: func(ds *dataset.Dataset) (render.Chart, error) {
			opts := plot.DefaultMultiBarOptions()
			opts.Title = "Total sales by store and year"
			return plot.MultipleBars(ds, "year", "sales", "store", opts)
		},
		optional: func(ds *dataset.Dataset) (render.Chart, error) {
			opts := plot.DefaultMultiBarOptions()
			opts.Title = "Total sales by store and year"
			opts.YTooltipFormat = "{0,0}"
			opts.YTickFormat = "0.0a"
			opts.Shade = "300"
			opts.BarWidth = 0.8
			opts.LegendPlacement = plot.PlacementAbove
			opts.YAxisLabel = plot.String("Sales")
			return plot.MultipleBars(ds, "year", "sales", "store", opts)
		},
		table: func(ds *dataset.Dataset) (*table.Table, error) {
			return table.New(ds, table.Options{Formats: map[string]string{"sales": "0,0"}})
		},
	}
}

// Build renders the demo page. It returns the page and the optional chart
// so callers can export it in other formats.
func (d Demo) Build(assetsHost string, minified bool) (*render.Page, render.Chart, error) {
	ds, err := d.load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load data for %s: %w", d.Name, err)
	}

	mandatory, err := d.mandatory(ds)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to configure %s: %w", d.Name, err)
	}
	optional, err := d.optional(ds)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to configure optional %s: %w", d.Name, err)
	}
	tbl, err := d.table(ds)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build table for %s: %w", d.Name, err)
	}

	page := render.NewPage(d.Title, assetsHost, minified)
	heading, err := page.Markdown("# " + d.Title)
	if err != nil {
		return nil, nil, err
	}
	page.AddRow(heading)

	for _, section := range []struct {
		text  string
		chart render.Chart
	}{
		{d.MandatoryText, mandatory},
		{d.OptionalText, optional},
	} {
		text, err := page.Markdown(section.text)
		if err != nil {
			return nil, nil, err
		}
		block, err := page.Chart(section.chart)
		if err != nil {
			return nil, nil, err
		}
		page.AddRow(text, block)
		page.AddRow(render.Separator())
	}

	dataText, err := page.Markdown("### Data used in graph")
	if err != nil {
		return nil, nil, err
	}
	dataTable, err := page.Table(tbl)
	if err != nil {
		return nil, nil, err
	}
	page.AddRow(dataText, dataTable)

	return page, optional, nil
}

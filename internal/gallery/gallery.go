package gallery

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"sort"
	"time"

	"plotkit/internal/logger"
	"plotkit/internal/plot"
	"plotkit/internal/render"
	"plotkit/internal/storage"
)

var log = logger.Component("gallery")

// Files holds every file of a rendered gallery keyed by its relative name
type Files struct {
	Pages     map[string][]byte
	Images    map[string][]byte
	Snapshots map[string][]byte
	// FolderPath is the folder the files are stored under
	FolderPath string
}

// Names returns every file name, sorted
func (f *Files) Names() []string {
	var names []string
	for _, m := range []map[string][]byte{f.Pages, f.Images, f.Snapshots} {
		for name := range m {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func (f *Files) get(name string) []byte {
	for _, m := range []map[string][]byte{f.Pages, f.Images, f.Snapshots} {
		if b, ok := m[name]; ok {
			return b
		}
	}
	return nil
}

// Gallery renders the demo pages
type Gallery struct {
	AssetsHost string
	Minify     bool
	// Images enables PNG previews of the optional charts
	Images bool
	// Snapshot selects the encoding of the chart snapshots; empty skips them
	Snapshot plot.SnapshotFormat
}

// New creates a gallery with PNG previews and JSON snapshots
func New(assetsHost string, minified bool) *Gallery {
	return &Gallery{
		AssetsHost: assetsHost,
		Minify:     minified,
		Images:     true,
		Snapshot:   plot.SnapshotJSON,
	}
}

// Build renders every demo page plus an index page linking them
func (g *Gallery) Build(timestamp time.Time) (*Files, error) {
	files := &Files{
		Pages:      make(map[string][]byte),
		Images:     make(map[string][]byte),
		Snapshots:  make(map[string][]byte),
		FolderPath: storage.RunFolder(timestamp),
	}

	demos := Demos()
	for _, d := range demos {
		page, chart, err := d.Build(g.AssetsHost, g.Minify)
		if err != nil {
			return nil, err
		}

		var buf bytes.Buffer
		if err := page.Render(&buf); err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", d.Name, err)
		}
		files.Pages[d.Name+".html"] = buf.Bytes()

		if g.Images {
			var img bytes.Buffer
			if err := render.RenderImage(&img, chart, render.PNG); err != nil {
				return nil, fmt.Errorf("failed to render %s preview: %w", d.Name, err)
			}
			files.Images[d.Name+".png"] = img.Bytes()
		}

		if g.Snapshot != "" {
			b, err := plot.EncodeSnapshot(chart, g.Snapshot)
			if err != nil {
				return nil, fmt.Errorf("failed to snapshot %s: %w", d.Name, err)
			}
			files.Snapshots[d.Name+"."+string(g.Snapshot)] = b
		}
		log.Info("Built demo page", logger.Fields{"demo": d.Name, "bytes": buf.Len()})
	}

	index, err := g.index(demos)
	if err != nil {
		return nil, err
	}
	files.Pages["index.html"] = index
	return files, nil
}

func (g *Gallery) index(demos []Demo) ([]byte, error) {
	var md bytes.Buffer
	md.WriteString("# plotkit gallery\n\n")
	for _, d := range demos {
		fmt.Fprintf(&md, "- [%s](%s.html)", d.Title, d.Name)
		if g.Images {
			fmt.Fprintf(&md, " ([preview](%s.png))", d.Name)
		}
		md.WriteString("\n")
	}

	page := render.NewPage("plotkit gallery", g.AssetsHost, g.Minify)
	block, err := page.Markdown(md.String())
	if err != nil {
		return nil, err
	}
	page.AddRow(block)

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return nil, fmt.Errorf("failed to render index: %w", err)
	}
	return buf.Bytes(), nil
}

// Store writes every file under files.FolderPath and returns their locations
func Store(ctx context.Context, sink storage.Sink, files *Files) ([]string, error) {
	var locations []string
	for _, name := range files.Names() {
		location, err := sink.StoreFile(ctx, path.Join(files.FolderPath, name), files.get(name))
		if err != nil {
			return locations, fmt.Errorf("failed to store %s: %w", name, err)
		}
		locations = append(locations, location)
	}
	log.Info("Stored gallery", logger.Fields{"folder": files.FolderPath, "files": len(locations)})
	return locations, nil
}

package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strconv"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	mhtml "github.com/tdewolff/minify/v2/html"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"plotkit/internal/logger"
	"plotkit/internal/table"
)

// DefaultAssetsHost serves echarts.min.js
const DefaultAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

var minifier = minify.New()

func init() {
	minifier.AddFunc("text/html", mhtml.Minify)
	minifier.AddFunc("text/css", css.Minify)
}

// Block is one piece of page content
type Block struct {
	HTML template.HTML
}

// Page composes markdown, chart snippets and tables into one HTML document.
// Each row lays its blocks out side by side.
type Page struct {
	Title      string
	AssetsHost string
	Minify     bool

	rows     [][]Block
	ids      map[string]int
	markdown goldmark.Markdown
}

// NewPage creates an empty page
func NewPage(title, assetsHost string, minified bool) *Page {
	if assetsHost == "" {
		assetsHost = DefaultAssetsHost
	}
	return &Page{
		Title:      title,
		AssetsHost: assetsHost,
		Minify:     minified,
		ids:        make(map[string]int),
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				html.WithHardWraps(),
				html.WithUnsafe(),
			),
		),
	}
}

// Markdown converts GitHub flavoured markdown to a block. Raw HTML is kept.
func (p *Page) Markdown(src string) (Block, error) {
	var buf bytes.Buffer
	if err := p.markdown.Convert([]byte(src), &buf); err != nil {
		return Block{}, fmt.Errorf("failed to convert markdown: %w", err)
	}
	return Block{HTML: template.HTML(buf.String())}, nil
}

// Chart embeds a chart snippet. Charts with the same title get distinct ids.
func (p *Page) Chart(c Chart) (Block, error) {
	frame, err := frameOf(c)
	if err != nil {
		return Block{}, err
	}
	id := "chart"
	if s := slug(frame.Title); s != "" {
		id += "-" + s
	}
	p.ids[id]++
	if n := p.ids[id]; n > 1 {
		id += "-" + strconv.Itoa(n)
	}

	snippet, err := NewSnippet(c, id)
	if err != nil {
		return Block{}, err
	}
	return Block{HTML: template.HTML(snippet.HTML)}, nil
}

// Table embeds a styled table
func (p *Page) Table(t *table.Table) (Block, error) {
	fragment, err := t.HTML()
	if err != nil {
		return Block{}, err
	}
	return Block{HTML: fragment}, nil
}

// Separator is a horizontal rule
func Separator() Block {
	return Block{HTML: "<hr>"}
}

// AddRow appends a row of blocks laid out side by side
func (p *Page) AddRow(blocks ...Block) {
	p.rows = append(p.rows, blocks)
}

// Rows returns the number of rows added so far
func (p *Page) Rows() int {
	return len(p.rows)
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<script src="{{.Script}}"></script>
<style>
body {
	font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
	line-height: 1.5;
	color: #333;
	margin: 0 auto;
	padding: 20px;
	max-width: 1500px;
}
.row {
	display: flex;
	flex-wrap: wrap;
	gap: 24px;
	align-items: flex-start;
	margin-bottom: 24px;
}
.column {
	flex: 1 1 0;
	min-width: 300px;
}
.chart-container {
	overflow-x: auto;
}
hr {
	border: none;
	border-top: 1px solid #e0e0e0;
	margin: 24px 0;
}
</style>
</head>
<body>
{{range .Rows}}<div class="row">
{{range .}}<div class="column">
{{.HTML}}
</div>
{{end}}</div>
{{end}}</body>
</html>
`))

// Render writes the page, minified when enabled
func (p *Page) Render(w io.Writer) error {
	data := struct {
		Title  string
		Script string
		Rows   [][]Block
	}{
		Title:  p.Title,
		Script: p.AssetsHost + "echarts.min.js",
		Rows:   p.rows,
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	log.Debug("Rendered page", logger.Fields{"title": p.Title, "rows": len(p.rows), "bytes": buf.Len()})

	if !p.Minify {
		_, err := w.Write(buf.Bytes())
		return err
	}

	mw := minifier.Writer("text/html", w)
	if _, err := mw.Write(buf.Bytes()); err != nil {
		mw.Close()
		return fmt.Errorf("failed to minify page: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("failed to minify page: %w", err)
	}
	return nil
}

package internal

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/dispatch/pkg/htmx"
)

// Renderer turns a finished collector into the response body.
type Renderer interface {
	Render(c Context, col *Collector) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(c Context, col *Collector) error

func (f RendererFunc) Render(c Context, col *Collector) error {
	return f(c, col)
}

// Page is what a Layout receives.
type Page struct {
	Collector *Collector
	Title     string
	SiteURL   string
	Route     string
}

// Main returns the main slot as raw HTML.
func (p Page) Main() templ.Component {
	return templ.Raw(p.Collector.Join(MainContent))
}

// Slot returns a named slot as raw HTML.
func (p Page) Slot(name string) templ.Component {
	return templ.Raw(p.Collector.Join(name))
}

// Layout wraps collected content into a full document.
type Layout func(p Page) templ.Component

// LayoutRenderer renders full pages through a Layout and, for htmx partial
// requests, only the main slot.
type LayoutRenderer struct {
	layout Layout
}

// NewLayoutRenderer returns a renderer using layout, or DefaultLayout when nil.
func NewLayoutRenderer(layout Layout) *LayoutRenderer {
	if layout == nil {
		layout = DefaultLayout
	}
	return &LayoutRenderer{layout: layout}
}

func (r *LayoutRenderer) Render(c Context, col *Collector) error {
	page := Page{
		Collector: col,
		Title:     col.Title(),
		SiteURL:   c.SiteURL(),
		Route:     c.Route().String(),
	}

	component := r.layout(page)
	if htmx.IsPartial(c.Request()) {
		component = page.Main()
	}

	c.Response().Header().Set("Content-Type", "text/html; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return component.Render(c, c.Response())
}

// DefaultLayout is a minimal HTML5 document: the title, a base href at the
// site URL, the main slot, then every other slot in a div with its name as id.
func DefaultLayout(p Page) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		ew := &errWriter{w: w}
		ew.str("<!DOCTYPE html><html><head><meta charset=\"utf-8\">")
		if p.Title != "" {
			ew.str("<title>" + templ.EscapeString(p.Title) + "</title>")
		}
		ew.str(`<base href="` + templ.EscapeString(p.SiteURL) + `">`)
		ew.str("</head><body><main>")
		ew.str(p.Collector.Join(MainContent))
		ew.str("</main>")
		for _, name := range p.Collector.SlotNames() {
			if name == MainContent {
				continue
			}
			ew.str(`<div id="` + templ.EscapeString(name) + `">`)
			ew.str(p.Collector.Join(name))
			ew.str("</div>")
		}
		ew.str("</body></html>")
		return ew.err
	})
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) str(s string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, s)
}

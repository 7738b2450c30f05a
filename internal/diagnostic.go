package internal

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/dispatch/pkg/htmx"
)

// RequestIDHeader is the response header the error page reads the request ID from.
const RequestIDHeader = "X-Request-ID"

// Diagnostic describes a failed request for DiagnosticPage.
type Diagnostic struct {
	Err        error
	Title      string
	Message    string
	Controller string
	Route      string
	RequestID  string
	Code       int
	Debug      bool
}

// NewDiagnostic classifies err. HTTPErrors keep their code and message;
// anything else becomes a 500 with a generic message.
func NewDiagnostic(c Context, err error, debug bool) Diagnostic {
	d := Diagnostic{
		Err:   err,
		Code:  http.StatusInternalServerError,
		Route: c.Route().String(),
		Debug: debug,
	}
	d.Message = http.StatusText(d.Code)

	if httpErr := AsHTTPError(err); httpErr != nil {
		d.Code = httpErr.Code
		d.Message = httpErr.Message
		d.Title = httpErr.Title
		d.RequestID = httpErr.RequestID
	}
	if ctrlErr := AsControllerError(err); ctrlErr != nil {
		d.Controller = ctrlErr.Controller
	}
	if d.Title == "" {
		d.Title = strconv.Itoa(d.Code) + " " + http.StatusText(d.Code)
	}
	return d
}

// DiagnosticPage renders d as HTML. Error details appear only when d.Debug
// is set. All values are escaped.
func DiagnosticPage(d Diagnostic) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		ew := &errWriter{w: w}
		ew.str(`<section class="dispatch-error"><h1>` + templ.EscapeString(d.Title) + "</h1>")
		ew.str("<p>" + templ.EscapeString(d.Message) + "</p>")
		if d.RequestID != "" {
			ew.str("<p>Request ID: <code>" + templ.EscapeString(d.RequestID) + "</code></p>")
		}
		if d.Debug && d.Err != nil {
			ew.str("<dl>")
			ew.str("<dt>Route</dt><dd>" + templ.EscapeString(d.Route) + "</dd>")
			if d.Controller != "" {
				ew.str("<dt>Controller</dt><dd>" + templ.EscapeString(d.Controller) + "</dd>")
			}
			ew.str("<dt>Error</dt><dd><pre>" + templ.EscapeString(d.Err.Error()) + "</pre></dd>")
			ew.str("</dl>")
		}
		ew.str("</section>")
		return ew.err
	})
}

// DefaultErrorHandler renders DiagnosticPage inside layout (or alone for
// htmx partial requests) with the error's status code. Server errors are
// logged at error level.
func DefaultErrorHandler(layout Layout, debug bool) ErrorHandler {
	if layout == nil {
		layout = DefaultLayout
	}

	return func(c Context, err error) error {
		d := NewDiagnostic(c, err, debug)
		if d.RequestID == "" {
			d.RequestID = c.Response().Header().Get(RequestIDHeader)
		}
		if d.Code >= http.StatusInternalServerError && !errors.Is(err, context.Canceled) {
			c.Logger().ErrorContext(c, "request failed",
				slog.Int("status", d.Code),
				slog.String("route", d.Route),
				slog.String("controller", d.Controller),
				slog.String("error", err.Error()),
			)
		}

		page := DiagnosticPage(d)
		if !htmx.IsPartial(c.Request()) {
			col := NewCollector()
			col.AddTitle(d.Title)
			var buf bytes.Buffer
			if err := page.Render(c, &buf); err != nil {
				return err
			}
			col.Add(buf.String())
			page = layout(Page{Collector: col, Title: d.Title, SiteURL: c.SiteURL(), Route: d.Route})
		}

		c.Response().Header().Set("Content-Type", "text/html; charset=utf-8")
		c.Response().WriteHeader(d.Code)
		return page.Render(c, c.Response())
	}
}

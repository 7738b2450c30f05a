package internal

import (
	"bytes"
	"net/http"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/dmitrymomot/dispatch/pkg/htmx"
	"github.com/dmitrymomot/dispatch/pkg/sanitizer"
)

// Outcome tells the controllers handler whether to keep going.
type Outcome int

const (
	// OutcomeContinue runs the next controller.
	OutcomeContinue Outcome = iota
	// OutcomeRedirect means a redirect was written; the chain stops.
	OutcomeRedirect
	// OutcomeNotFound stops the chain and answers 404.
	OutcomeNotFound
	// OutcomeRawOutput means the controller wrote the response itself.
	OutcomeRawOutput
)

func (o Outcome) String() string {
	switch o {
	case OutcomeContinue:
		return "continue"
	case OutcomeRedirect:
		return outcomeRedirect
	case OutcomeNotFound:
		return outcomeNotFound
	case OutcomeRawOutput:
		return outcomeRaw
	default:
		return "unknown"
	}
}

// Response is the output of a controller. Process merges it into the
// collector or writes to the response directly.
type Response interface {
	Process(c Context, col *Collector) (Outcome, error)
}

// Tpl is a ready fragment with an optional title. An empty Data adds
// nothing, not even the title. Slot defaults to MainContent.
type Tpl struct {
	Data  string
	Title string
	Slot  string
}

func (t Tpl) Process(_ Context, col *Collector) (Outcome, error) {
	if t.Data == "" {
		return OutcomeContinue, nil
	}
	col.AddTo(t.Slot, t.Data)
	if t.Title != "" {
		col.AddTitle(t.Title)
	}
	return OutcomeContinue, nil
}

// Component renders a templ component into a fragment and then follows the
// Tpl rules.
type Component struct {
	Component templ.Component
	Title     string
	Slot      string
}

func (r Component) Process(c Context, col *Collector) (Outcome, error) {
	if r.Component == nil {
		return OutcomeContinue, nil
	}

	var buf bytes.Buffer
	if err := r.Component.Render(c, &buf); err != nil {
		return OutcomeContinue, err
	}
	return Tpl{Data: buf.String(), Title: r.Title, Slot: r.Slot}.Process(c, col)
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Markdown converts GitHub-flavored Markdown to sanitized HTML and then
// follows the Tpl rules. The title is reduced to plain text.
type Markdown struct {
	Source string
	Title  string
	Slot   string
}

func (r Markdown) Process(c Context, col *Collector) (Outcome, error) {
	if r.Source == "" {
		return OutcomeContinue, nil
	}

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(r.Source), &buf); err != nil {
		return OutcomeContinue, err
	}
	return Tpl{
		Data:  sanitizer.Content(buf.String()),
		Title: sanitizer.Text(r.Title),
		Slot:  r.Slot,
	}.Process(c, col)
}

// Redirect stops the chain and redirects. Code defaults to 302. htmx
// requests get an HX-Redirect header instead.
type Redirect struct {
	URL  string
	Code int
}

func (r Redirect) Process(c Context, _ *Collector) (Outcome, error) {
	code := r.Code
	if code == 0 {
		code = http.StatusFound
	}
	htmx.Redirect(c.Response(), c.Request(), r.URL, code)
	return OutcomeRedirect, nil
}

// NotFound stops the chain and answers with the not-found handler.
type NotFound struct{}

func (NotFound) Process(Context, *Collector) (Outcome, error) {
	return OutcomeNotFound, nil
}

// Raw marks that the controller already wrote the response. Nothing is
// rendered afterwards.
type Raw struct{}

func (Raw) Process(Context, *Collector) (Outcome, error) {
	return OutcomeRawOutput, nil
}

// Skip contributes nothing and lets the chain continue.
type Skip struct{}

func (Skip) Process(Context, *Collector) (Outcome, error) {
	return OutcomeContinue, nil
}

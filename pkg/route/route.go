package route

import (
	"net/url"
	"strings"
)

// Query parameter names used as a fallback when the path does not carry
// the corresponding segment.
const (
	ActionParam = "act"
	ModeParam   = "mode"
	IDParam     = "id"
)

// Route is the (action, mode, id) triple derived from a request URL.
// Empty fields mean the value is absent. An empty Action addresses the site root.
type Route struct {
	Action string
	Mode   string
	ID     string
}

// Parse extracts a Route from an absolute URL path relative to the site's
// virtual path. The first three non-empty "/"-separated segments become
// action, mode and id; further segments are ignored. Parse never fails.
//
// Example:
//
//	route.Parse("/site1/news/latest/42", "/site1") // {news latest 42}
func Parse(absolutePath, siteVirtualPath string) Route {
	p := stripVirtualPath(absolutePath, siteVirtualPath)

	var segs [3]string
	n := 0
	for seg := range strings.SplitSeq(p, "/") {
		if seg == "" {
			continue
		}
		segs[n] = seg
		n++
		if n == len(segs) {
			break
		}
	}

	return Route{Action: segs[0], Mode: segs[1], ID: segs[2]}
}

// Resolve parses the path and fills every empty field from the query string
// (act, mode, id). Path segments always win over query parameters, checked
// independently per field.
func Resolve(absolutePath, siteVirtualPath string, query url.Values) Route {
	r := Parse(absolutePath, siteVirtualPath)

	if r.Action == "" {
		r.Action = Last(query, ActionParam)
	}
	if r.Mode == "" {
		r.Mode = Last(query, ModeParam)
	}
	if r.ID == "" {
		r.ID = Last(query, IDParam)
	}

	return r
}

// ActionModeURL formats the route as a query string suitable for HTML
// attributes: ?act=<action>[&amp;mode=<mode>][&amp;id=<id>].
// Returns an empty string when the action is empty.
func (r Route) ActionModeURL() string {
	if r.Action == "" {
		return ""
	}

	var b strings.Builder
	b.WriteString("?" + ActionParam + "=")
	b.WriteString(r.Action)

	if r.Mode != "" {
		b.WriteString("&amp;" + ModeParam + "=")
		b.WriteString(r.Mode)
	}
	if r.ID != "" {
		b.WriteString("&amp;" + IDParam + "=")
		b.WriteString(r.ID)
	}

	return b.String()
}

// IsRoot reports whether the route addresses the site root.
func (r Route) IsRoot() bool {
	return r.Action == ""
}

// String returns the route in path form, e.g. "/news/latest/42".
func (r Route) String() string {
	var b strings.Builder
	for _, seg := range []string{r.Action, r.Mode, r.ID} {
		if seg == "" {
			break
		}
		b.WriteByte('/')
		b.WriteString(seg)
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}

// Last returns the last value for key, or an empty string.
// Duplicate keys resolve with last-write-wins.
func Last(values url.Values, key string) string {
	vs := values[key]
	if len(vs) == 0 {
		return ""
	}
	return vs[len(vs)-1]
}

// Flatten converts multi-valued parameters into a single-valued map
// using last-write-wins for duplicate keys.
func Flatten(values url.Values) map[string]string {
	out := make(map[string]string, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			out[k] = vs[len(vs)-1]
		}
	}
	return out
}

func stripVirtualPath(p, virtual string) string {
	virtual = strings.TrimRight(virtual, "/")
	if virtual == "" {
		return p
	}
	if p == virtual {
		return ""
	}
	if strings.HasPrefix(p, virtual+"/") {
		return p[len(virtual):]
	}
	return p
}

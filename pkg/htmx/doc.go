// Package htmx detects htmx requests and adapts redirects to them.
//
// A partial request gets only the collected content slots; everything else
// gets the full layout:
//
//	if htmx.IsPartial(r) {
//		// render fragment
//	}
package htmx

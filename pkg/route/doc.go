// Package route converts request URLs into an (action, mode, id) triple.
//
// The URL grammar is /{action}/{mode}/{id} relative to the site's virtual
// path, or equivalently ?act={action}&mode={mode}&id={id}. When both forms
// are present, the path segment wins over the query parameter, per field:
//
//	u, _ := url.Parse("/news?mode=latest&act=blog")
//	r := route.Resolve(u.Path, "", u.Query())
//	// r.Action == "news" (path), r.Mode == "latest" (query), r.ID == ""
//
// Parsing never fails: missing segments leave the field empty.
package route

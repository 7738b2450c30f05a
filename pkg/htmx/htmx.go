package htmx

import "net/http"

// Request headers.
const (
	HeaderHXRequest               = "HX-Request"
	HeaderHXBoosted               = "HX-Boosted"
	HeaderHXTarget                = "HX-Target"
	HeaderHXHistoryRestoreRequest = "HX-History-Restore-Request"
)

// Response headers.
const (
	HeaderHXRedirect = "HX-Redirect"
	HeaderHXPushURL  = "HX-Push-Url"
	HeaderHXRetarget = "HX-Retarget"
	HeaderHXTrigger  = "HX-Trigger"
)

// IsHTMX reports whether the request was issued by htmx.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get(HeaderHXRequest) == "true"
}

// IsPartial reports whether the response should be a fragment rather than a
// full page. Boosted navigation and history restores need the whole document.
func IsPartial(r *http.Request) bool {
	return IsHTMX(r) &&
		r.Header.Get(HeaderHXBoosted) != "true" &&
		r.Header.Get(HeaderHXHistoryRestoreRequest) != "true"
}

// Target returns the id of the element htmx will swap into, if any.
func Target(r *http.Request) string {
	return r.Header.Get(HeaderHXTarget)
}

// Redirect sends a 3xx for regular requests. For htmx requests it answers
// 200 with HX-Redirect so the client performs a full navigation.
func Redirect(w http.ResponseWriter, r *http.Request, url string, status int) {
	if IsHTMX(r) {
		w.Header().Set(HeaderHXRedirect, url)
		w.WriteHeader(http.StatusOK)
		return
	}
	if status < 300 || status > 399 {
		status = http.StatusFound
	}
	http.Redirect(w, r, url, status)
}

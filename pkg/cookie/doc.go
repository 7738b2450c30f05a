// Package cookie writes cookies with consistent attributes and optional
// HMAC signing. The session manager uses it for the session token cookie.
//
//	m := cookie.New(cookie.WithSecret(secret), cookie.WithPath("/site1"))
//	_ = m.SetSigned(w, "sid", token, 86400)
//	token, err := m.GetSigned(r, "sid")
package cookie

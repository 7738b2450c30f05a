package controllers

import (
	"net/http"
	"net/url"

	"github.com/dmitrymomot/dispatch"
	"github.com/dmitrymomot/dispatch/pkg/sanitizer"
)

func contactForm(c dispatch.Context) (dispatch.Response, error) {
	if c.Route().Mode != "" {
		return nil, nil
	}
	thanks := ""
	if name := dispatch.Query[string](c, "thanks"); name != "" {
		thanks = "<p>Thanks, " + sanitizer.Text(name) + "!</p>"
	}
	return dispatch.Tpl{
		Data: thanks + `<form method="post" action="` + c.SiteURL() + `contact/send">` +
			`<input name="name"><textarea name="message"></textarea><button>Send</button></form>`,
		Title: "Contact",
	}, nil
}

func contactSend(c dispatch.Context) (dispatch.Response, error) {
	if c.Request().Method != http.MethodPost {
		return dispatch.Redirect{URL: c.SiteURL() + "contact"}, nil
	}

	name := sanitizer.Text(c.Form("name"))
	if name == "" {
		return nil, dispatch.ErrBadRequest("Name is required")
	}
	c.Logger().InfoContext(c, "contact message",
		"name", name,
		"length", len(c.Form("message")),
	)
	return dispatch.Redirect{URL: c.SiteURL() + "contact?thanks=" + url.QueryEscape(name), Code: http.StatusSeeOther}, nil
}

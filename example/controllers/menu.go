package controllers

import (
	"fmt"
	"html"

	"github.com/dmitrymomot/dispatch"
)

const visitsKey = "visits"

// Menu renders the navigation and counts visits per session.
type Menu struct{}

func NewMenu() (dispatch.Controller, error) {
	return Menu{}, nil
}

func (Menu) Invoke(c dispatch.Context) (dispatch.Response, error) {
	greeting := "Welcome back"
	if c.IsNewSession() {
		greeting = "Welcome"
	}

	if sess, err := c.Session(); err == nil {
		visits := dispatch.SessionValueOr(sess, visitsKey, 0) + 1
		sess.SetValue(visitsKey, visits)
		greeting = fmt.Sprintf("%s, visit #%d", greeting, visits)
	}

	base := html.EscapeString(c.SiteURL())
	return dispatch.Tpl{
		Data: `<nav><a href="` + base + `">Home</a> <a href="` + base + `news">News</a> <a href="` +
			base + `contact">Contact</a></nav><p>` + html.EscapeString(greeting) + `</p>`,
		Title: "Example",
		Slot:  "menu",
	}, nil
}

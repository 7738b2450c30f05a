// Package controllers holds the controllers of the example site.
package controllers

import "github.com/dmitrymomot/dispatch"

// Register returns the controller registrations of the site, in the order
// they run.
func Register() []dispatch.Option {
	news := NewNews(defaultArticles())

	return []dispatch.Option{
		dispatch.WithController(NewMenu, dispatch.Name("menu")),
		dispatch.WithController(news.List, dispatch.Action("news"), dispatch.Name("news")),
		dispatch.WithController(news.Article, dispatch.Action("news"), dispatch.Mode("read"), dispatch.Name("news.read")),
		dispatch.WithController(dispatch.Func(contactForm), dispatch.Action("contact"), dispatch.Name("contact")),
		dispatch.WithController(dispatch.Func(contactSend), dispatch.Action("contact"), dispatch.Mode("send"), dispatch.Name("contact.send")),
	}
}

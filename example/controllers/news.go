package controllers

import (
	"html"
	"strings"

	"github.com/dmitrymomot/dispatch"
)

type article struct {
	ID    string
	Title string
	Body  string
}

func defaultArticles() []article {
	return []article{
		{ID: "1", Title: "Hello", Body: "# Hello\n\nThe site is **live**."},
		{ID: "2", Title: "Static files", Body: "Files under `static/` are served without running controllers."},
	}
}

// News lists and shows articles.
type News struct {
	articles []article
}

func NewNews(articles []article) *News {
	return &News{articles: articles}
}

// List runs for every news request; it renders the index only when no
// article is requested.
func (n *News) List() (dispatch.Controller, error) {
	return dispatch.ControllerFunc(func(c dispatch.Context) (dispatch.Response, error) {
		if c.Route().Mode != "" {
			return dispatch.Skip{}, nil
		}

		var b strings.Builder
		b.WriteString("<ul>")
		for _, a := range n.articles {
			b.WriteString(`<li><a href="` + html.EscapeString(c.SiteURL()) + "news/read/" + a.ID + `">`)
			b.WriteString(html.EscapeString(a.Title))
			b.WriteString("</a></li>")
		}
		b.WriteString("</ul>")

		return dispatch.Tpl{Data: b.String(), Title: "News"}, nil
	}), nil
}

// Article renders one article.
func (n *News) Article() (dispatch.Controller, error) {
	return dispatch.ControllerFunc(func(c dispatch.Context) (dispatch.Response, error) {
		for _, a := range n.articles {
			if a.ID == c.Route().ID {
				return dispatch.Markdown{Source: a.Body, Title: a.Title}, nil
			}
		}
		return dispatch.NotFound{}, nil
	}), nil
}

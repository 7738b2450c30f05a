package sanitizer

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicy    *bluemonday.Policy
	contentPolicy *bluemonday.Policy
	initOnce      sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()

		contentPolicy = bluemonday.UGCPolicy()
		contentPolicy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "pre")
		contentPolicy.RequireNoFollowOnLinks(true)
		contentPolicy.AddTargetBlankToFullyQualifiedLinks(true)
	})
}

// Text strips every tag and returns plain text with HTML entities decoded
// and surrounding whitespace trimmed. Used for page titles.
func Text(s string) string {
	initPolicies()
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}

// Content keeps the formatting produced by Markdown rendering (headings,
// lists, tables, links, images, code) and drops scripts, event handlers and
// javascript: URLs.
func Content(s string) string {
	initPolicies()
	return contentPolicy.Sanitize(s)
}

// Custom applies policy, returning s unchanged when policy is nil.
func Custom(s string, policy *bluemonday.Policy) string {
	if policy == nil {
		return s
	}
	return policy.Sanitize(s)
}

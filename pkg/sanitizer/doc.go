// Package sanitizer cleans HTML produced from untrusted or semi-trusted
// sources using bluemonday policies.
//
// Text is for values rendered as plain text, such as page titles.
// Content is for rendered Markdown bodies.
package sanitizer

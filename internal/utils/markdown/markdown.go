// Package markdown converts fetched HTML into markdown text suitable for
// prompting a language model.
package markdown

import (
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
)

// elements that never carry posting content
var strippedSelectors = []string{
	"script", "style", "noscript", "iframe", "svg",
	"nav", "header", "footer", "aside", "form",
}

// FromHTML strips non-content elements and renders the remainder as
// markdown.
func FromHTML(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	doc.Find(strings.Join(strippedSelectors, ",")).Remove()

	converter := md.NewConverter("", true, nil)
	body := doc.Find("body")
	if body.Length() == 0 {
		return converter.ConvertString(html)
	}
	inner, err := body.Html()
	if err != nil {
		return "", err
	}
	out, err := converter.ConvertString(inner)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

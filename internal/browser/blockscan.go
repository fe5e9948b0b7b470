package browser

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var blockPattern = regexp.MustCompile(`(?i)cloudflare|you have been blocked|access denied|ray id`)

// blockPhrase walks the document's text nodes looking for block-page
// wording. Working on text nodes rather than raw markup keeps script
// bodies and attribute values from triggering it.
func blockPhrase(htmlContent string) string {
	root, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return ""
	}

	var found string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != "" {
			return
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			if m := blockPattern.FindString(n.Data); m != "" {
				found = m
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return found
}

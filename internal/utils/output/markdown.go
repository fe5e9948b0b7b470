package output

import (
	"fmt"
	"os"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"

	urlutil "github.com/shuttlestats/courtscrape/internal/utils/url"
)

// SaveMarkdown renders a page's HTML as readable markdown. Failure
// artifacts use this so an operator can skim what the browser actually saw
// without wading through raw markup.
func SaveMarkdown(htmlContent, pageURL, path string) error {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())

	// Resolve relative links against the page so the artifact is clickable.
	converter.AddRules(md.Rule{
		Filter: []string{"a"},
		Replacement: func(content string, selec *goquery.Selection, opt *md.Options) *string {
			href, exists := selec.Attr("href")
			if !exists {
				return nil
			}
			str := fmt.Sprintf("[%s](%s)", selec.Text(), urlutil.ResolveURL(pageURL, href))
			return &str
		},
	})

	cleaned, err := CleanHTML(htmlContent)
	if err != nil {
		return err
	}

	mdStr, err := converter.ConvertString(cleaned)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(mdStr), 0644)
}

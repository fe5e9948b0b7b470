package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	urlutil "github.com/shuttlestats/courtscrape/internal/utils/url"
	"github.com/shuttlestats/courtscrape/pkg/models"
)

// ScheduleLinks lists the per-day tabs of a tournament results page. Hrefs
// come back absolute, resolved against the page URL.
func ScheduleLinks(doc *goquery.Document, pageURL string) ([]models.ScheduleLink, error) {
	anchors := doc.Find("ul#ajaxTabsResults a")
	if anchors.Length() == 0 {
		return nil, structuralMiss("results", "schedule tab list not found")
	}

	var links []models.ScheduleLink
	anchors.Each(func(i int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || href == "" || strings.HasPrefix(href, "#") {
			return
		}
		links = append(links, models.ScheduleLink{
			Label: strings.TrimSpace(a.Text()),
			URL:   urlutil.ResolveURL(pageURL, href),
		})
	})

	if len(links) == 0 {
		return nil, structuralMiss("results", "schedule tabs had no usable links")
	}
	return links, nil
}

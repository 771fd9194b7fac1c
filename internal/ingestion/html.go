// Package ingestion turns raw job posting sources (HTML pages, text files)
// into cleaned text and structured JobPosting records.
package ingestion

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// contentSelectors are tried in order to locate the posting body before
// falling back to the whole document body.
var contentSelectors = []string{
	"main",
	"article",
	".job-description",
	".description",
	".content",
	"#content",
}

// ExtractJobText parses job posting HTML and returns the cleaned plain
// text of its main content.
func ExtractJobText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("nav, footer, header, script, style, noscript, .ad, .ads, .sidebar, .cookie-banner, .popup").Remove()

	var main *goquery.Selection
	for _, selector := range contentSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			main = selection.First()
			break
		}
	}
	if main == nil {
		main = doc.Find("body")
	}

	// Insert breaks at block boundaries so headings and list items keep
	// their own lines after Text() flattens the markup.
	main.Find("br").ReplaceWithHtml("\n")
	main.Find("p, div, li, h1, h2, h3, h4, h5, h6, tr").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	return CleanText(main.Text()), nil
}

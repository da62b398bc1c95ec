package sources

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractedPage is the readable content pulled out of raw page markup
type ExtractedPage struct {
	Title string
	Text  string
}

// cleanText collapses all runs of whitespace to single spaces and trims
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ExtractText parses raw HTML and returns its title plus a flattened body
// built from article, paragraph, and list-item elements in document order,
// truncated to maxChars characters. Malformed markup degrades to an empty
// body; there is no error path. fallbackTitle is used when the document
// has no title element, callers pass the source URL.
func ExtractText(html, fallbackTitle string, maxChars int) ExtractedPage {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ExtractedPage{Title: fallbackTitle}
	}

	title := cleanText(doc.Find("title").First().Text())
	if title == "" {
		title = fallbackTitle
	}

	var fragments []string
	doc.Find("article, p, li").Each(func(_ int, sel *goquery.Selection) {
		if t := cleanText(sel.Text()); t != "" {
			fragments = append(fragments, t)
		}
	})

	text := cleanText(strings.Join(fragments, " "))
	if maxChars > 0 {
		if runes := []rune(text); len(runes) > maxChars {
			text = string(runes[:maxChars])
		}
	}

	return ExtractedPage{Title: title, Text: text}
}

package news

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText reduces an HTML fragment to its text content with whitespace
// collapsed. Input without markup comes back trimmed.
func PlainText(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return strings.Join(strings.Fields(fragment), " ")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.Join(strings.Fields(fragment), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

package competition

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type wwaParser struct{}

func (wwaParser) Parse(html string, year int) ([]AwardRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	if recs := parseWithSelectors(doc, year, WorldWhiskiesAwards,
		".wwa-winner", ".wwa-whisky-name", ".wwa-award", ".wwa-distillery", ".wwa-rating"); len(recs) > 0 {
		return withCategory(recs, doc, ".wwa-category"), nil
	}
	if recs := parseWithSelectors(doc, year, WorldWhiskiesAwards,
		".winner-card", ".whisky-name", ".award-name", ".distillery", ".rating"); len(recs) > 0 {
		return recs, nil
	}
	return genericTableWalk(doc, WorldWhiskiesAwards, year), nil
}

// withCategory tags every record with the text of the first element matching
// categorySel in the document, used for "World's Best Single Malt"-style award
// categories (§4.6). Rows are not matched to their own heading: on a page
// with several category headings, every record gets the first one.
func withCategory(recs []AwardRecord, doc *goquery.Document, categorySel string) []AwardRecord {
	category := strings.TrimSpace(doc.Find(categorySel).First().Text())
	if category == "" {
		return recs
	}
	for i := range recs {
		recs[i].AwardCategory = category
	}
	return recs
}

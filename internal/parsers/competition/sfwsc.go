package competition

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type sfwscParser struct{}

func (sfwscParser) Parse(html string, year int) ([]AwardRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	if recs := parseWithSelectors(doc, year, SFWSC,
		".competition-entry", ".entry-product-name", ".entry-medal", ".entry-distillery", ".entry-score"); len(recs) > 0 {
		return recs, nil
	}
	if recs := parseWithSelectors(doc, year, SFWSC,
		"tr.result-row", "td.product", "td.medal", "td.producer", "td.score"); len(recs) > 0 {
		return recs, nil
	}
	return genericTableWalk(doc, SFWSC, year), nil
}

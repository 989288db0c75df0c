package competition

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type dwwaParser struct{}

func (dwwaParser) Parse(html string, year int) ([]AwardRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	if recs := parseWithSelectors(doc, year, DecanterWWA,
		".dwwa-result", ".dwwa-wine-name", ".dwwa-medal", ".dwwa-producer", ".dwwa-points"); len(recs) > 0 {
		return recs, nil
	}
	if recs := parseWithSelectors(doc, year, DecanterWWA,
		"tr.wine-row", "td.wine", "td.award", "td.producer", "td.points"); len(recs) > 0 {
		return recs, nil
	}
	return genericTableWalk(doc, DecanterWWA, year), nil
}

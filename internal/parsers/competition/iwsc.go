package competition

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type iwscParser struct{}

func (iwscParser) Parse(html string, year int) ([]AwardRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	if recs := parseWithSelectors(doc, year, IWSC,
		".award-result", ".result-product", ".result-medal", ".result-producer", ".result-score"); len(recs) > 0 {
		return recs, nil
	}
	if recs := parseWithSelectors(doc, year, IWSC,
		".medal-listing-item", ".product-name", ".medal-name", ".producer-name", ".score"); len(recs) > 0 {
		return recs, nil
	}
	return genericTableWalk(doc, IWSC, year), nil
}

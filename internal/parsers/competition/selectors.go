package competition

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// parseWithSelectors is the shared primary/fallback-selector cascade body:
// every result row matches rowSel, and name/medal/producer/score are read
// from descendants of that row via their own selectors.
func parseWithSelectors(doc *goquery.Document, year int, key CompetitionKey, rowSel, nameSel, medalSel, producerSel, scoreSel string) []AwardRecord {
	var out []AwardRecord
	doc.Find(rowSel).Each(func(_ int, row *goquery.Selection) {
		name := strings.TrimSpace(row.Find(nameSel).First().Text())
		if name == "" {
			return
		}
		producer := strings.TrimSpace(row.Find(producerSel).First().Text())
		wineTagged := strings.Contains(strings.ToLower(row.Text()), "wine")
		if !IsValidProductName(name, wineTagged) {
			return
		}

		rec := AwardRecord{
			ProductName: name,
			Competition: key,
			Year:        year,
			Medal:       NormalizeMedal(row.Find(medalSel).First().Text()),
			Producer:    producer,
			Extra:       map[string]string{},
		}
		if imgSrc, ok := row.Find("img").First().Attr("src"); ok {
			rec.AwardImageURL = imgSrc
		}
		if score, ok := parseScore(row.Find(scoreSel).First().Text()); ok {
			rec.Score, rec.HasScore = score, true
		}
		out = append(out, rec)
	})
	return out
}

// Package competition implements the Competition Parsers of §4.6: one
// implementation per supported competition, each trying a primary CSS
// selector set, a fallback cascade, then a generic table/row walker.
package competition

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CompetitionKey identifies a supported competition.
type CompetitionKey string

const (
	IWSC CompetitionKey = "iwsc"
	SFWSC CompetitionKey = "sfwsc"
	WorldWhiskiesAwards CompetitionKey = "world_whiskies_awards"
	DecanterWWA CompetitionKey = "decanter_wwa"
)

// AwardRecord is one parsed result row (§4.6).
type AwardRecord struct {
	ProductName   string
	Competition   CompetitionKey
	Year          int
	Medal         string
	Producer      string
	Category      string
	Country       string
	AwardCategory string
	Score         float64
	HasScore      bool
	AwardImageURL string
	Extra         map[string]string
}

// Parser is implemented once per competition.
type Parser interface {
	Parse(html string, year int) ([]AwardRecord, error)
}

// ByKey resolves a Parser for a CompetitionKey.
func ByKey(key CompetitionKey) Parser {
	switch key {
	case IWSC:
		return iwscParser{}
	case SFWSC:
		return sfwscParser{}
	case WorldWhiskiesAwards:
		return wwaParser{}
	case DecanterWWA:
		return dwwaParser{}
	default:
		return nil
	}
}

var medalSubstrings = []struct {
	substr string
	medal  string
}{
	{"double-gold", "Double Gold"},
	{"double gold", "Double Gold"},
	{"best in class", "Best in Class"},
	{"best in show", "Best in Show"},
	{"trophy", "Trophy"},
	{"platinum", "Platinum"},
	{"gold", "Gold"},
	{"silver", "Silver"},
	{"bronze", "Bronze"},
}

// NormalizeMedal maps a raw medal string to the canonical vocabulary of
// §4.6, matching on case-insensitive substrings; longer/more-specific
// patterns are checked first so "double gold" doesn't match as "gold".
func NormalizeMedal(raw string) string {
	lc := strings.ToLower(raw)
	for _, m := range medalSubstrings {
		if strings.Contains(lc, m.substr) {
			return m.medal
		}
	}
	return strings.TrimSpace(raw)
}

var negativeProducerTokens = []string{
	"winery", "vineyard", "chateau", "domaine", "bodega", "wine cellar",
}
var negativeSuffixes = []string{"inc", "ltd", "llc"}

// IsValidProductName rejects entries that are clearly not individual
// products: winery/vineyard-style producer names, or corporate suffixes —
// except that wine-tagged items containing "port" are never rejected
// (§4.6's exception clause).
func IsValidProductName(name string, wineTagged bool) bool {
	lc := strings.ToLower(strings.TrimSpace(name))
	if lc == "" {
		return false
	}
	if wineTagged && strings.Contains(lc, "port") {
		return true
	}
	for _, tok := range negativeProducerTokens {
		if strings.Contains(lc, tok) {
			return false
		}
	}
	fields := strings.Fields(lc)
	if len(fields) > 0 {
		last := strings.Trim(fields[len(fields)-1], ".,")
		for _, suf := range negativeSuffixes {
			if last == suf {
				return false
			}
		}
	}
	return true
}

// parseScore parses a loose numeric score string, tolerating trailing
// "/100" or "pts" suffixes common in competition result tables.
func parseScore(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimSuffix(raw, "pts")
	raw = strings.TrimSpace(raw)
	if idx := strings.Index(raw, "/"); idx > 0 {
		raw = raw[:idx]
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// genericTableWalk is the last-resort fallback shared by every parser:
// walk every <tr> and take the first two/three cells as product/medal/score.
func genericTableWalk(doc *goquery.Document, key CompetitionKey, year int) []AwardRecord {
	var out []AwardRecord
	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		name := strings.TrimSpace(cells.Eq(0).Text())
		if name == "" || !IsValidProductName(name, false) {
			return
		}
		medal := NormalizeMedal(strings.TrimSpace(cells.Eq(1).Text()))
		rec := AwardRecord{ProductName: name, Competition: key, Year: year, Medal: medal, Extra: map[string]string{}}
		if cells.Length() >= 3 {
			if score, ok := parseScore(cells.Eq(2).Text()); ok {
				rec.Score, rec.HasScore = score, true
			}
		}
		out = append(out, rec)
	})
	return out
}

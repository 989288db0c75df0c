// Package hub implements the Hub Parser of §4.4: brand-directory pages on
// retailer/database hub sites, parsed with goquery — the only CSS-selector
// HTML scraping library in the retrieved pack (ScrapeGoat's manifest).
package hub

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// BrandEntry is one brand discovered on a hub page.
type BrandEntry struct {
	Name            string
	HubInternalURL  string
	ExternalURL     string
	HubDomain       string
}

// Config chooses per-hub CSS selectors and external-link patterns; the
// zero value triggers the generic fallback.
type Config struct {
	BrandSelector       string // e.g. "a.brand-link"
	PaginationSelector  string // e.g. "a.pagination-next"
	ExternalLinkPattern string // substring a link must NOT contain to count as external (rarely used)
}

var genericConfig = Config{
	BrandSelector:      "a",
	PaginationSelector: "a[rel='next'], a.next, a.pagination-next",
}

var navigationText = map[string]bool{
	"next": true, "home": true, "filter": true, "previous": true,
	"back": true, "all": true, "more": true,
}

// Parse returns the brand entries and pagination URLs found on one hub
// page (§4.4).
func Parse(html string, hubURL string, cfg Config) ([]BrandEntry, []string, error) {
	if cfg.BrandSelector == "" {
		cfg = genericConfig
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, nil, err
	}

	base, err := url.Parse(hubURL)
	if err != nil {
		return nil, nil, err
	}
	hubDomain := strings.ToLower(base.Host)

	var brands []BrandEntry
	seen := map[string]bool{}

	doc.Find(cfg.BrandSelector).Each(func(_ int, s *goquery.Selection) {
		name := strings.TrimSpace(s.Text())
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return
		}
		if len(name) < 2 || navigationText[strings.ToLower(name)] {
			return
		}

		resolved, err := base.Parse(href)
		if err != nil {
			return
		}
		key := resolved.String()
		if seen[key] {
			return
		}
		seen[key] = true

		entry := BrandEntry{Name: name, HubDomain: hubDomain}
		if strings.ToLower(resolved.Host) == hubDomain || resolved.Host == "" ||
			(cfg.ExternalLinkPattern != "" && strings.Contains(resolved.String(), cfg.ExternalLinkPattern)) {
			entry.HubInternalURL = resolved.String()
		} else {
			entry.ExternalURL = resolved.String()
		}
		brands = append(brands, entry)
	})

	var pagination []string
	paginationSeen := map[string]bool{}
	doc.Find(cfg.PaginationSelector).Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return
		}
		resolved, err := base.Parse(href)
		if err != nil {
			return
		}
		if !paginationSeen[resolved.String()] {
			paginationSeen[resolved.String()] = true
			pagination = append(pagination, resolved.String())
		}
	})

	return brands, pagination, nil
}

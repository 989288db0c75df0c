package health

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// SelectorSpec names one configured selector to probe against a sample page.
type SelectorSpec struct {
	Name     string
	Selector string
}

// SelectorReport is the match count and health verdict for a single selector.
type SelectorReport struct {
	Name    string
	Matches int
	Healthy bool
}

// SourceReport is the roll-up health verdict for one source+year (§4.11): a
// source is healthy iff strictly more than half of its selectors are healthy.
type SourceReport struct {
	Source    string
	Selectors []SelectorReport
	Healthy   bool
}

// SelectorChecker runs a source's configured selectors against a sample URL's
// HTML and reports per-selector and overall health.
type SelectorChecker struct {
	minExpectedMatches int
	alerts             *Handler
}

func NewSelectorChecker(minExpectedMatches int, alerts *Handler) *SelectorChecker {
	return &SelectorChecker{minExpectedMatches: minExpectedMatches, alerts: alerts}
}

// Check runs every spec against htmlBody and raises a warning alert when the
// source as a whole is unhealthy.
func (c *SelectorChecker) Check(source string, htmlBody string, specs []SelectorSpec) (SourceReport, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlBody))
	if err != nil {
		return SourceReport{}, err
	}

	report := SourceReport{Source: source, Selectors: make([]SelectorReport, 0, len(specs))}
	healthyCount := 0
	for _, spec := range specs {
		matches := doc.Find(spec.Selector).Length()
		healthy := matches >= c.minExpectedMatches
		if healthy {
			healthyCount++
		}
		report.Selectors = append(report.Selectors, SelectorReport{
			Name: spec.Name, Matches: matches, Healthy: healthy,
		})
	}
	report.Healthy = len(specs) > 0 && healthyCount*2 > len(specs)

	if !report.Healthy {
		c.alerts.raise(SeverityWarning, "selector_health", "source selector health degraded", map[string]interface{}{
			"source":        source,
			"healthy_count":  healthyCount,
			"selector_count": len(specs),
		})
	}
	return report, nil
}

package health

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// Fingerprinter computes and compares the structural fingerprint (§4.11): a
// hash over sorted class names, ids, and data-* attribute names per element,
// with values and text ignored.
type Fingerprinter struct {
	alerts *Handler
}

func NewFingerprinter(alerts *Handler) *Fingerprinter {
	return &Fingerprinter{alerts: alerts}
}

// Compute returns the hex-encoded SHA-256 structural fingerprint of htmlBody.
func Compute(htmlBody string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlBody))
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	walkStructure(doc, &sb)
	sum := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:]), nil
}

func walkStructure(n *html.Node, sb *strings.Builder) {
	if n.Type == html.ElementNode {
		sb.WriteString(n.Data)
		sb.WriteByte('|')

		var classes []string
		var id string
		var dataAttrs []string
		for _, attr := range n.Attr {
			switch {
			case attr.Key == "class":
				classes = strings.Fields(attr.Val)
			case attr.Key == "id":
				id = attr.Val
			case strings.HasPrefix(attr.Key, "data-"):
				dataAttrs = append(dataAttrs, attr.Key)
			}
		}
		sort.Strings(classes)
		sort.Strings(dataAttrs)

		sb.WriteString(strings.Join(classes, ","))
		sb.WriteByte('|')
		if id != "" {
			sb.WriteString("id")
		}
		sb.WriteByte('|')
		sb.WriteString(strings.Join(dataAttrs, ","))
		sb.WriteByte(';')
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkStructure(c, sb)
	}
}

// CheckAndUpdate compares the freshly computed fingerprint against the one
// persisted for source, raising a critical alert on mismatch. An empty
// oldFingerprint (first crawl of a source) never raises.
func (f *Fingerprinter) CheckAndUpdate(source, oldFingerprint, htmlBody string) (newFingerprint string, changed bool, err error) {
	newFingerprint, err = Compute(htmlBody)
	if err != nil {
		return "", false, err
	}
	if oldFingerprint == "" || oldFingerprint == newFingerprint {
		return newFingerprint, false, nil
	}
	f.alerts.raise(SeverityCritical, "structural_fingerprint", "source page structure changed", map[string]interface{}{
		"source": source,
		"old":    oldFingerprint,
		"new":    newFingerprint,
	})
	return newFingerprint, true, nil
}

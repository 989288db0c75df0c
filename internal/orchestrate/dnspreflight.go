package orchestrate

import (
	"context"
	"fmt"
	"time"

	"github.com/miekg/dns"
)

// dnsResolver is the optional DNS-resolves-before-HEAD preflight of §4.4: a
// quick A-record check before the Hub Orchestrator spends a real HEAD
// request on a candidate producer domain. Grounded on the teacher's
// internal/dnsvalidator package, trimmed to a single system-resolver A
// lookup for one domain at a time — the teacher's resolver
// rotation/weighting and DNS-over-HTTPS fallback have no analogue here.
type dnsResolver interface {
	Resolve(ctx context.Context, host string) error
}

// systemDNSResolver queries the resolvers in /etc/resolv.conf directly via
// miekg/dns, rather than going through net.Resolver.
type systemDNSResolver struct {
	client *dns.Client
}

func newSystemDNSResolver() *systemDNSResolver {
	return &systemDNSResolver{client: &dns.Client{Timeout: 5 * time.Second}}
}

// NewDNSPreflight builds the production DNS preflight resolver for
// HubOrchestrator.DNSPreflight. Exported so cmd/server can opt into the
// preflight; every test in this package leaves the field nil instead.
func NewDNSPreflight() *systemDNSResolver {
	return newSystemDNSResolver()
}

func (r *systemDNSResolver) Resolve(ctx context.Context, host string) error {
	cfg, err := dns.ClientConfigFromFile("/etc/resolv.conf")
	if err != nil || len(cfg.Servers) == 0 {
		return fmt.Errorf("dns preflight: no resolvers configured: %w", err)
	}
	server := cfg.Servers[0] + ":" + cfg.Port

	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(host), dns.TypeA)

	resp, _, err := r.client.ExchangeContext(ctx, msg, server)
	if err != nil {
		return fmt.Errorf("dns preflight: %s: %w", host, err)
	}
	if resp.Rcode == dns.RcodeNameError {
		return fmt.Errorf("dns preflight: %s: nxdomain", host)
	}
	if len(resp.Answer) == 0 {
		return fmt.Errorf("dns preflight: %s: no A records", host)
	}
	return nil
}

package fetchrouter

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/errs"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/proxymanager"
)

// tier3Proxy calls an external managed-proxy fetch API over resty — the
// same thin-client idiom the retrieved pack uses for every third-party REST
// integration (token exchange, search) — rotating across configured
// endpoints via proxymanager.Manager and reporting back success/failure.
type tier3Proxy struct {
	mgr       *proxymanager.Manager
	timeout   time.Duration
	costCents int
}

func newTier3Proxy(baseURL, apiKey string, timeout time.Duration, costCents int) *tier3Proxy {
	mgr := proxymanager.New([]proxymanager.Endpoint{{ID: "default", BaseURL: baseURL, APIKey: apiKey}})
	return &tier3Proxy{mgr: mgr, timeout: timeout, costCents: costCents}
}

type managedProxyResponse struct {
	Content    string `json:"content"`
	StatusCode int    `json:"statusCode"`
	FinalURL   string `json:"finalUrl"`
}

func (t *tier3Proxy) fetch(ctx context.Context, url string, minUsefulBodyBytes int) *Result {
	start := time.Now()

	endpoint, ok := t.mgr.Get()
	if !ok {
		return &Result{Err: errs.API("no managed proxy endpoint configured", nil), TierUsed: 3, Duration: time.Since(start)}
	}

	client := resty.New().
		SetBaseURL(endpoint.BaseURL).
		SetTimeout(t.timeout).
		SetAuthToken(endpoint.APIKey)

	var out managedProxyResponse
	resp, err := client.R().
		SetContext(ctx).
		SetQueryParam("url", url).
		SetResult(&out).
		Get("/fetch")

	result := &Result{TierUsed: 3, Duration: time.Since(start), CostCents: t.costCents}
	if err != nil {
		t.mgr.ReportHealth(endpoint.ID, false)
		result.Err = errs.API("managed proxy request failed", err)
		return result
	}
	if resp.IsError() {
		t.mgr.ReportHealth(endpoint.ID, false)
		blocked, serverErr := errs.ClassifyHTTPStatus(resp.StatusCode())
		switch {
		case blocked:
			result.Err = errs.Blocked(fmt.Sprintf("managed proxy blocked with status %d", resp.StatusCode()), resp.StatusCode())
		case serverErr:
			result.Err = errs.Connection(fmt.Sprintf("managed proxy server error %d", resp.StatusCode()), nil)
		default:
			result.Err = errs.API(fmt.Sprintf("managed proxy returned status %d", resp.StatusCode()), nil)
		}
		result.Status = resp.StatusCode()
		return result
	}

	t.mgr.ReportHealth(endpoint.ID, true)
	result.Content = out.Content
	result.Status = out.StatusCode
	result.FinalURL = out.FinalURL
	if len(out.Content) < minUsefulBodyBytes {
		result.Err = errs.Parse("tier3 body too short to be useful", nil)
		return result
	}
	result.Success = true
	return result
}

package fetchrouter

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/errs"
)

// tier2Browser renders a page with a headless browser, grounded on the
// launcher.New().Headless(...).Launch() / rod.New().ControlURL(...) idiom
// used across the retrieved pack's go-rod scrapers.
type tier2Browser struct {
	binPath            string
	timeout            time.Duration
	minUsefulBodyBytes int
}

func newTier2Browser(binPath string, timeout time.Duration, minUsefulBodyBytes int) *tier2Browser {
	return &tier2Browser{binPath: binPath, timeout: timeout, minUsefulBodyBytes: minUsefulBodyBytes}
}

func (t *tier2Browser) fetch(ctx context.Context, url string, ageGateCookies map[string]string) *Result {
	start := time.Now()

	l := launcher.New().Headless(true)
	if t.binPath != "" {
		l = l.Bin(t.binPath)
	}
	controlURL, err := l.Launch()
	if err != nil {
		return &Result{Err: errs.Connection("failed launching headless browser", err), TierUsed: 2, Duration: time.Since(start)}
	}
	defer l.Cleanup()

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return &Result{Err: errs.Connection("failed connecting to browser", err), TierUsed: 2, Duration: time.Since(start)}
	}
	defer browser.Close()

	pageCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	browser = browser.Context(pageCtx)

	if len(ageGateCookies) > 0 {
		params := make([]*proto.NetworkCookieParam, 0, len(ageGateCookies))
		for name, value := range ageGateCookies {
			params = append(params, &proto.NetworkCookieParam{Name: name, Value: value})
		}
		if err := browser.SetCookies(params); err != nil {
			return &Result{Err: errs.AgeGate(fmt.Sprintf("failed setting age-gate cookies: %v", err)), TierUsed: 2, Duration: time.Since(start)}
		}
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return &Result{Err: errs.Connection("failed opening page", err), TierUsed: 2, Duration: time.Since(start)}
	}
	defer page.Close()

	if err := page.WaitLoad(); err != nil {
		return &Result{Err: errs.Timeout("page load timed out", err), TierUsed: 2, Duration: time.Since(start)}
	}

	html, err := page.HTML()
	if err != nil {
		return &Result{Err: errs.Parse("failed reading rendered HTML", err), TierUsed: 2, Duration: time.Since(start)}
	}

	info, err := page.Info()
	finalURL := url
	if err == nil && info != nil {
		finalURL = info.URL
	}

	result := &Result{
		Content: html, Status: 200, FinalURL: finalURL,
		TierUsed: 2, Duration: time.Since(start),
	}
	if len(html) < t.minUsefulBodyBytes {
		result.Err = errs.Parse("tier2 rendered body too short to be useful", nil)
		return result
	}
	result.Success = true
	return result
}

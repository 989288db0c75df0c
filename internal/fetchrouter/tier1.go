package fetchrouter

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/errs"
)

// tier1Client is a plain net/http fetch, grounded on
// internal/contentfetcher.ContentFetcher.createConfiguredClient /
// readAndProcessBody: same dialer/transport defaults, same gzip/deflate +
// charset body normalization.
type tier1Client struct {
	userAgent          string
	timeout            time.Duration
	minUsefulBodyBytes int
}

func newTier1Client(userAgent string, timeout time.Duration, minUsefulBodyBytes int) *tier1Client {
	return &tier1Client{userAgent: userAgent, timeout: timeout, minUsefulBodyBytes: minUsefulBodyBytes}
}

func (t *tier1Client) fetch(ctx context.Context, url string) *Result {
	start := time.Now()

	jar, _ := cookiejar.New(nil)
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSClientConfig:       &tls.Config{InsecureSkipVerify: false},
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConnsPerHost:   10,
	}
	client := &http.Client{
		Transport: transport,
		Jar:       jar,
		Timeout:   t.timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 7 {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return &Result{Err: errs.Connection("failed building request", err), TierUsed: 1, Duration: time.Since(start)}
	}
	req.Header.Set("User-Agent", t.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return &Result{Err: errs.Timeout("context deadline exceeded", err), TierUsed: 1, Duration: time.Since(start)}
		}
		return &Result{Err: errs.Connection("request failed", err), TierUsed: 1, Duration: time.Since(start)}
	}
	defer resp.Body.Close()

	headers := map[string]string{}
	for k := range resp.Header {
		headers[k] = resp.Header.Get(k)
	}

	body, readErr := readAndDecodeBody(resp)
	if readErr != nil {
		return &Result{
			Status: resp.StatusCode, Headers: headers, FinalURL: resp.Request.URL.String(),
			Err: errs.Parse("failed reading/decoding response body", readErr), TierUsed: 1, Duration: time.Since(start),
		}
	}

	blocked, serverErr := errs.ClassifyHTTPStatus(resp.StatusCode)
	result := &Result{
		Content: body, Status: resp.StatusCode, Headers: headers,
		FinalURL: resp.Request.URL.String(), TierUsed: 1, Duration: time.Since(start),
	}
	switch {
	case blocked:
		result.Err = errs.Blocked(fmt.Sprintf("tier1 blocked with status %d", resp.StatusCode), resp.StatusCode)
	case serverErr:
		result.Err = errs.Connection(fmt.Sprintf("tier1 server error %d", resp.StatusCode), nil)
	case len(body) < t.minUsefulBodyBytes:
		result.Err = errs.Parse("tier1 body too short to be useful", nil)
	default:
		result.Success = true
	}
	return result
}

func readAndDecodeBody(resp *http.Response) (string, error) {
	var reader io.Reader = resp.Body
	switch strings.ToLower(resp.Header.Get("Content-Encoding")) {
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return "", fmt.Errorf("gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	case "deflate":
		zl, err := zlib.NewReader(resp.Body)
		if err != nil {
			return "", fmt.Errorf("deflate reader: %w", err)
		}
		defer zl.Close()
		reader = zl
	}

	limited := io.LimitReader(reader, 20*1024*1024)
	raw, err := io.ReadAll(limited)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading body: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	utf8Reader, err := charset.NewReader(bytes.NewReader(raw), contentType)
	if err != nil {
		log.Printf("fetchrouter: no charset conversion for %s (%q): %v, using raw bytes", resp.Request.URL, contentType, err)
		return string(raw), nil
	}
	utf8Bytes, err := io.ReadAll(utf8Reader)
	if err != nil {
		log.Printf("fetchrouter: charset decode failed for %s: %v, using raw bytes", resp.Request.URL, err)
		return string(raw), nil
	}
	return string(utf8Bytes), nil
}

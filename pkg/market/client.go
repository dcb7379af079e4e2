package market

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lotbump/lotbump/pkg/logger"
)

const (
	// DefaultSite is the marketplace front-end.
	DefaultSite = "https://funpay.com"
	// DefaultTimeout bounds every single request.
	DefaultTimeout = 30 * time.Second
	// DefaultConfirmPause is the wait before answering a confirmation modal.
	DefaultConfirmPause = time.Second

	raisePath = "/lots/raise"
	// maxBodySize caps how much of a response is read.
	maxBodySize = 8 << 20
)

// Options configures a Client.
type Options struct {
	// Site is the base URL. Defaults to DefaultSite.
	Site string
	// Timeout bounds each request. Defaults to DefaultTimeout.
	Timeout time.Duration
	// Proxy is an optional http, https or socks5 proxy URL.
	Proxy string
	// ConfirmPause is waited before a confirmation re-submit. Zero disables it.
	ConfirmPause time.Duration
	// HTTPClient overrides the transport entirely; Timeout and Proxy are
	// then ignored.
	HTTPClient *http.Client
	Logger     logger.Logger
	// Console receives one line per successful raise.
	Console *logger.Console
}

// DefaultOptions returns Options with every default filled in.
func DefaultOptions() Options {
	return Options{
		Site:         DefaultSite,
		Timeout:      DefaultTimeout,
		ConfirmPause: DefaultConfirmPause,
	}
}

// Client performs the marketplace requests.
type Client struct {
	site         *url.URL
	http         *http.Client
	confirmPause time.Duration
	log          logger.Logger
	console      *logger.Console
	sleep        func(ctx context.Context, d time.Duration) error
}

// NewClient builds a Client from opts.
func NewClient(opts Options) (*Client, error) {
	if opts.Site == "" {
		opts.Site = DefaultSite
	}
	site, err := url.Parse(strings.TrimRight(opts.Site, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid site URL: %w", err)
	}
	if site.Scheme == "" || site.Host == "" {
		return nil, fmt.Errorf("invalid site URL: %q", opts.Site)
	}

	hc := opts.HTTPClient
	if hc == nil {
		if opts.Timeout <= 0 {
			opts.Timeout = DefaultTimeout
		}
		hc, err = newHTTPClient(opts.Proxy, opts.Timeout)
		if err != nil {
			return nil, err
		}
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Client{
		site:         site,
		http:         hc,
		confirmPause: opts.ConfirmPause,
		log:          log,
		console:      opts.Console,
		sleep:        sleepContext,
	}, nil
}

// Site returns the base URL the client talks to.
func (c *Client) Site() *url.URL {
	u := *c.site
	return &u
}

// resolve turns a path or absolute URL into an absolute URL on the site.
func (c *Client) resolve(ref string) (string, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	return c.site.ResolveReference(u).String(), nil
}

// get fetches rawURL and returns the body. Non-2xx answers are errors.
func (c *Client) get(ctx context.Context, rawURL string, h Headers) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	h.Set(req.Header)
	body, status, err := c.do(req)
	if err != nil {
		return "", err
	}
	if status < 200 || status > 299 {
		return "", &StatusError{URL: rawURL, StatusCode: status}
	}
	return body, nil
}

// postForm submits form to rawURL. The status code is not checked: the
// raise endpoint reports refusals in the body.
func (c *Client) postForm(ctx context.Context, rawURL string, form url.Values, h Headers) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	h.Set(req.Header)
	body, _, err := c.do(req)
	return body, err
}

func (c *Client) do(req *http.Request) (string, int, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", resp.StatusCode, fmt.Errorf("%s %s: reading body: %w", req.Method, req.URL, err)
	}
	return string(b), resp.StatusCode, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

package market

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/proxy"
)

var (
	ErrInvalidProxyURL   = errors.New("invalid proxy URL")
	ErrUnsupportedScheme = errors.New("unsupported proxy scheme")
)

var supportedSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"socks5": true,
}

// newHTTPClient creates the client used for every request. An empty
// proxyURL falls back to the proxy environment variables.
func newHTTPClient(proxyURL string, timeout time.Duration) (*http.Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	if proxyURL != "" {
		parsed, err := url.Parse(proxyURL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return nil, ErrInvalidProxyURL
		}
		if !supportedSchemes[parsed.Scheme] {
			return nil, ErrUnsupportedScheme
		}

		if parsed.Scheme == "socks5" {
			var auth *proxy.Auth
			if parsed.User != nil {
				pass, _ := parsed.User.Password()
				auth = &proxy.Auth{
					User:     parsed.User.Username(),
					Password: pass,
				}
			}
			dialer, err := proxy.SOCKS5("tcp", parsed.Host, auth, proxy.Direct)
			if err != nil {
				return nil, err
			}
			transport.Proxy = nil
			if cd, ok := dialer.(proxy.ContextDialer); ok {
				transport.DialContext = cd.DialContext
			} else {
				transport.DialContext = nil
				transport.Dial = dialer.Dial
			}
		} else {
			transport.Proxy = http.ProxyURL(parsed)
		}
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}, nil
}

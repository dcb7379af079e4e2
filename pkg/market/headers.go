package market

import "net/http"

// Header keys sent on every request.
const (
	ContentTypeKey    = "Content-Type"
	CookieKey         = "Cookie"
	UserAgentKey      = "User-Agent"
	RequestedWithKey  = "X-Requested-With"
	formContentType   = "application/x-www-form-urlencoded; charset=UTF-8"
	xmlHTTPRequestVal = "XMLHttpRequest"
)

// Header is a key-value pair.
type Header struct {
	Key   string
	Value string
}

// Headers is an ordered header set.
type Headers []Header

// NewHeaders builds the standard header set from a Cookie header value and
// a user agent.
func NewHeaders(cookie, userAgent string) Headers {
	return Headers{
		{ContentTypeKey, formContentType},
		{CookieKey, cookie},
		{UserAgentKey, userAgent},
	}
}

// Get returns the value stored under key and whether it was present.
func (h Headers) Get(key string) (string, bool) {
	for _, x := range h {
		if http.CanonicalHeaderKey(x.Key) == http.CanonicalHeaderKey(key) {
			return x.Value, true
		}
	}
	return "", false
}

// XHR returns a copy of h marked as a script-initiated request. The raise
// endpoint only answers with its JSON shape to such requests.
func (h Headers) XHR() Headers {
	out := make(Headers, 0, len(h)+1)
	out = append(out, h...)
	if _, ok := out.Get(RequestedWithKey); !ok {
		out = append(out, Header{RequestedWithKey, xmlHTTPRequestVal})
	}
	return out
}

// Set writes every header into header, replacing existing values.
func (h Headers) Set(header http.Header) {
	for _, x := range h {
		header.Set(x.Key, x.Value)
	}
}

func (h Headers) clone() Headers {
	return append(Headers(nil), h...)
}

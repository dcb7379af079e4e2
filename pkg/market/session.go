package market

import (
	"context"
	"errors"

	"github.com/tidwall/gjson"
)

const appDataAttr = "data-app-data"

// Session is an authenticated identity on the site. It is built once and
// never modified; share it freely.
type Session struct {
	headers   Headers
	xhr       Headers
	accountID string
	csrfToken string
}

// NewSession builds a Session. Both accountID and csrfToken are required.
func NewSession(h Headers, accountID, csrfToken string) (*Session, error) {
	if accountID == "" || csrfToken == "" {
		return nil, ErrInvalidSession
	}
	return &Session{
		headers:   h.clone(),
		xhr:       h.XHR(),
		accountID: accountID,
		csrfToken: csrfToken,
	}, nil
}

// AccountID returns the numeric user id as served by the site.
func (s *Session) AccountID() string { return s.accountID }

// CSRFToken returns the anti-forgery token embedded in the landing page.
func (s *Session) CSRFToken() string { return s.csrfToken }

// Headers returns a copy of the standard header set.
func (s *Session) Headers() Headers { return s.headers.clone() }

// XHRHeaders returns a copy of the script-initiated header set.
func (s *Session) XHRHeaders() Headers { return s.xhr.clone() }

// Bootstrap fetches the landing page and builds a Session from the account
// id and csrf token embedded in it. A page without them yields a
// *ParseError.
func (c *Client) Bootstrap(ctx context.Context, h Headers) (*Session, error) {
	pageURL := c.rootURL()
	body, err := c.get(ctx, pageURL, h)
	if err != nil {
		return nil, err
	}
	return sessionFromPage(h, body, pageURL)
}

// CheckAuthenticated fetches the landing page and reports whether it was
// served to a logged-in account.
func (c *Client) CheckAuthenticated(ctx context.Context, h Headers) (bool, error) {
	body, err := c.get(ctx, c.rootURL(), h)
	if err != nil {
		return false, err
	}
	return !HasMarker(MarkerLogin, body), nil
}

// Login runs the authentication check and the bootstrap against a single
// fetch of the landing page. A login page yields ErrAuthenticationRequired.
// Nothing is retried.
func (c *Client) Login(ctx context.Context, h Headers) (*Session, error) {
	pageURL := c.rootURL()
	body, err := c.get(ctx, pageURL, h)
	if err != nil {
		return nil, err
	}
	if HasMarker(MarkerLogin, body) {
		return nil, ErrAuthenticationRequired
	}
	s, err := sessionFromPage(h, body, pageURL)
	if err != nil {
		return nil, err
	}
	c.log.Info("logged in as account %s", s.AccountID())
	return s, nil
}

func (c *Client) rootURL() string {
	return c.site.String() + "/"
}

func sessionFromPage(h Headers, body, pageURL string) (*Session, error) {
	accountID, token, err := parseAppData(body, pageURL)
	if err != nil {
		return nil, err
	}
	return NewSession(h, accountID, token)
}

// parseAppData reads userId and csrf-token from the JSON payload the site
// embeds in the data-app-data attribute of <body>.
func parseAppData(body, pageURL string) (accountID, csrfToken string, err error) {
	doc, err := parseHTML(body)
	if err != nil {
		return "", "", &ParseError{What: "landing page", URL: pageURL, Err: err}
	}
	n := findFirst(doc, all(element("body"), withAttr(appDataAttr)))
	if n == nil {
		n = findFirst(doc, withAttr(appDataAttr))
	}
	if n == nil {
		return "", "", &ParseError{What: appDataAttr + " attribute", URL: pageURL}
	}

	raw, _ := attr(n, appDataAttr)
	if !gjson.Valid(raw) {
		return "", "", &ParseError{What: appDataAttr, URL: pageURL, Err: errors.New("invalid JSON")}
	}
	data := gjson.Parse(raw)
	accountID = data.Get("userId").String()
	csrfToken = data.Get("csrf-token").String()
	if accountID == "" {
		return "", "", &ParseError{What: appDataAttr + ": userId", URL: pageURL}
	}
	if csrfToken == "" {
		return "", "", &ParseError{What: appDataAttr + ": csrf-token", URL: pageURL}
	}
	return accountID, csrfToken, nil
}

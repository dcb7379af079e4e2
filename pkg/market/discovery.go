package market

import (
	"context"
	"fmt"
	"strings"
)

const (
	// manageLotClasses is the exact class list of the per-category
	// "manage lots" link on the account page.
	manageLotClasses = "btn btn-default btn-plus"
	// excludedCategory marks category types that cannot be raised.
	excludedCategory = "chips"
)

// DiscoverCategories lists the raisable category URLs of the session's
// account, in page order. An account without categories yields an empty
// slice and no error.
func (c *Client) DiscoverCategories(ctx context.Context, s *Session) ([]string, error) {
	pageURL, err := c.resolve(fmt.Sprintf("/users/%s/", s.AccountID()))
	if err != nil {
		return nil, err
	}
	body, err := c.get(ctx, pageURL, s.Headers())
	if err != nil {
		return nil, fmt.Errorf("discover categories: %w", err)
	}
	return c.parseCategories(body, pageURL)
}

func (c *Client) parseCategories(body, pageURL string) ([]string, error) {
	doc, err := parseHTML(body)
	if err != nil {
		return nil, &ParseError{What: "account page", URL: pageURL, Err: err}
	}

	categories := []string{}
	for _, a := range findAll(doc, withClasses("a", manageLotClasses)) {
		href, ok := attr(a, "href")
		if !ok || href == "" || strings.Contains(href, excludedCategory) {
			continue
		}
		u, err := c.resolve(href)
		if err != nil {
			c.log.Warning("skipping malformed category link %q: %v", href, err)
			continue
		}
		categories = append(categories, u)
	}
	return categories, nil
}

// Package market talks to the marketplace web front-end on behalf of one
// account: it bootstraps an authenticated Session from a cookie header,
// discovers the account's lot categories and raises them.
//
// A raise is a two-phase exchange. The first POST to /lots/raise either
// answers with a plain result or with a confirmation modal asking which
// sibling nodes to raise together; in the latter case the request is
// re-submitted with every offered node selected.
//
// Every call is synchronous. Callers are expected to pace requests
// themselves since the site rate-limits aggressively.
package market

package cookies

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

const httpOnlyPrefix = "#HttpOnly_"

// ParseNetscape reads the unexpired cookies for domain from a Netscape
// cookies.txt stream. Comment lines are skipped, except #HttpOnly_ entries
// which carry a real cookie. Malformed lines are skipped.
func ParseNetscape(r io.Reader, domain string) ([]Record, error) {
	now := time.Now()
	var records []Record

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, httpOnlyPrefix) {
			line = line[len(httpOnlyPrefix):]
		} else if strings.HasPrefix(line, "#") {
			continue
		}

		// domain, subdomain flag, path, secure, expiry, name, value
		fields := strings.Split(line, "\t")
		if len(fields) != 7 {
			continue
		}
		expiry, err := strconv.ParseInt(fields[4], 10, 64)
		if err != nil {
			continue
		}
		if !matchesDomain(fields[0], domain) {
			continue
		}
		// zero expiry marks a session cookie
		if expiry > 0 && time.Unix(expiry, 0).Before(now) {
			continue
		}
		records = append(records, Record{
			Name:   fields[5],
			Value:  fields[6],
			Domain: fields[0],
			Path:   fields[2],
			Expiry: time.Unix(expiry, 0),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read Netscape cookie file: %w", err)
	}
	return records, nil
}

// matchesDomain reports whether cookieDomain applies to domain: an exact
// match, the dot-prefixed form or any subdomain.
func matchesDomain(cookieDomain, domain string) bool {
	cookieDomain = strings.ToLower(strings.TrimPrefix(cookieDomain, "."))
	domain = strings.ToLower(domain)
	return cookieDomain == domain || strings.HasSuffix(cookieDomain, "."+domain)
}

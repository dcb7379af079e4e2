package cookies

import "time"

// StoreFormat identifies the format of a browser cookie store.
type StoreFormat int

const (
	// FormatUnknown means the cookie store format could not be detected.
	FormatUnknown StoreFormat = iota
	// FormatFirefox is the Firefox moz_cookies SQLite schema.
	FormatFirefox
	// FormatChrome is the Chrome cookies SQLite schema. Only unencrypted
	// values are usable.
	FormatChrome
	// FormatNetscape is the tab-separated Netscape cookies.txt format.
	FormatNetscape
)

func (f StoreFormat) String() string {
	switch f {
	case FormatFirefox:
		return "Firefox"
	case FormatChrome:
		return "Chrome"
	case FormatNetscape:
		return "Netscape"
	default:
		return "unknown"
	}
}

// Record is a single named cookie. Value is SENSITIVE and must never be
// logged or formatted into an error message.
type Record struct {
	Name  string
	Value string
	// Domain, Path and Expiry are only populated for records imported
	// from a browser store.
	Domain string
	Path   string
	Expiry time.Time
}

// Store describes the browser cookie store records were imported from.
type Store struct {
	Path   string
	Format StoreFormat
}

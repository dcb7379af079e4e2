package cookies

import "errors"

var (
	// ErrEmptyExport is returned when the cookie export holds no data at all.
	ErrEmptyExport = errors.New("cookie export is empty")
	// ErrUnsupportedStore is returned for files that are neither a known
	// SQLite cookie database nor a Netscape cookie file.
	ErrUnsupportedStore = errors.New("unsupported cookie store")
)

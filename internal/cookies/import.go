package cookies

import (
	"fmt"
	"os"
)

// ImportStore reads the cookies for domain from the browser cookie store at
// path. SQLite stores are read from a private snapshot. Records sharing
// name, domain and path are collapsed to the first one seen.
func ImportStore(path, domain string) ([]Record, *Store, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, nil, err
	}
	store := &Store{Path: path, Format: format}

	var records []Record
	switch format {
	case FormatFirefox, FormatChrome:
		copied, cleanup, err := snapshot(path)
		if err != nil {
			return nil, nil, err
		}
		defer cleanup()
		records, err = readSQLite(copied, format, domain)
		if err != nil {
			return nil, nil, err
		}
	case FormatNetscape:
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open Netscape cookie file: %w", err)
		}
		defer f.Close()
		records, err = ParseNetscape(f, domain)
		if err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedStore, path)
	}
	return dedupe(records), store, nil
}

func dedupe(records []Record) []Record {
	seen := make(map[string]struct{}, len(records))
	out := make([]Record, 0, len(records))
	for _, r := range records {
		key := r.Name + "\x00" + r.Domain + "\x00" + r.Path
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}

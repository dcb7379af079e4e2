package cookies

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/afero"
)

type exportPayload struct {
	Cookies []exportCookie `json:"cookies"`
}

// exportCookie is one entry of a browser extension export. Only name and
// value are consumed; the other fields are kept for store-style filtering.
type exportCookie struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Domain string `json:"domain"`
	Path   string `json:"path"`
}

// ParseExport decodes a JSON cookie export. Both a bare array and an
// object of the form {"cookies": [...]} are accepted.
func ParseExport(raw []byte) ([]Record, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, ErrEmptyExport
	}

	var payload exportPayload
	if err := json.Unmarshal(raw, &payload); err == nil && len(payload.Cookies) > 0 {
		return exportToRecords(payload.Cookies), nil
	}

	var arr []exportCookie
	if err := json.Unmarshal(raw, &arr); err != nil {
		return nil, fmt.Errorf("cannot decode cookie export: %w", err)
	}
	return exportToRecords(arr), nil
}

// ReadExport reads and decodes the cookie export at path.
func ReadExport(fs afero.Fs, path string) ([]Record, error) {
	raw, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("cannot read cookie export: %w", err)
	}
	return ParseExport(raw)
}

func exportToRecords(in []exportCookie) []Record {
	out := make([]Record, 0, len(in))
	for _, c := range in {
		if c.Name == "" {
			continue
		}
		out = append(out, Record{
			Name:   c.Name,
			Value:  c.Value,
			Domain: c.Domain,
			Path:   c.Path,
		})
	}
	return out
}

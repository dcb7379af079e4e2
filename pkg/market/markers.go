package market

import "strings"

// MarkerKind names a class of response the site signals through plain text.
type MarkerKind int

const (
	// MarkerLogin appears on pages served to anonymous visitors.
	MarkerLogin MarkerKind = iota
	// MarkerConfirmation appears in raise responses carrying an HTML modal.
	MarkerConfirmation
	// MarkerSuccess appears in raise responses once lots were raised.
	MarkerSuccess
)

// MarkerSet is the list of substrings that identify one marker kind.
type MarkerSet struct {
	Markers []string
	// Fold compares case-insensitively.
	Fold bool
}

// Markers lists the recognised substrings per kind, localized and English.
var Markers = map[MarkerKind]MarkerSet{
	MarkerLogin:        {Markers: []string{"log in", "войти"}, Fold: true},
	MarkerConfirmation: {Markers: []string{"div"}},
	MarkerSuccess:      {Markers: []string{"подняты", "raised"}},
}

// HasMarker reports whether body carries any marker of kind.
func HasMarker(kind MarkerKind, body string) bool {
	set, ok := Markers[kind]
	if !ok {
		return false
	}
	if set.Fold {
		body = strings.ToLower(body)
	}
	for _, m := range set.Markers {
		if strings.Contains(body, m) {
			return true
		}
	}
	return false
}

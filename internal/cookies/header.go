package cookies

import "strings"

// AllowList holds the only cookie names the marketplace needs. Anything
// else in an export is dropped before it reaches the wire.
var AllowList = []string{
	"_ym_d",
	"_ym_uid",
	"_ga",
	"golden_key",
	"PHPSESSID",
	"ym_isad",
	"_gid",
	"_ym_visorc",
}

var allowed = func() map[string]struct{} {
	m := make(map[string]struct{}, len(AllowList))
	for _, name := range AllowList {
		m[name] = struct{}{}
	}
	return m
}()

// IsAllowed reports whether name is on the allow-list. Matching is exact.
func IsAllowed(name string) bool {
	_, ok := allowed[name]
	return ok
}

// Filter returns the allow-listed records in their original order.
func Filter(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if IsAllowed(r.Name) {
			out = append(out, r)
		}
	}
	return out
}

// BuildHeader builds the Cookie header value from records.
// Format: "name1=val1; name2=val2; ". Every pair, the last one included, is
// followed by "; ". Records outside AllowList are skipped, so an empty or
// unknown-only input yields "".
func BuildHeader(records []Record) string {
	var sb strings.Builder
	for _, r := range records {
		if !IsAllowed(r.Name) {
			continue
		}
		sb.WriteString(r.Name)
		sb.WriteByte('=')
		sb.WriteString(r.Value)
		sb.WriteString("; ")
	}
	return sb.String()
}

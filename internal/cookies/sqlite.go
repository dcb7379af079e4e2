package cookies

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	_ "modernc.org/sqlite"
)

// chromeEpochOffset is the number of seconds between 1601-01-01 and the
// Unix epoch. Chrome stores expiry as microseconds since 1601.
const chromeEpochOffset int64 = 11_644_473_600

type sqliteQuery struct {
	format StoreFormat
	table  string
	query  string
	// expiry converts a stored expiry column value to Unix seconds.
	expiry func(int64) int64
	// threshold converts "now" to the store's expiry unit.
	threshold func(int64) int64
}

var sqliteQueries = []sqliteQuery{
	{
		format: FormatFirefox,
		table:  "moz_cookies",
		query: `
        SELECT name, value, X'', host, path, expiry
        FROM moz_cookies
        WHERE (host = ? OR host = ? OR host LIKE ?)
          AND expiry > ?
        ORDER BY id ASC`,
		expiry:    func(v int64) int64 { return v },
		threshold: func(now int64) int64 { return now },
	},
	{
		format: FormatChrome,
		table:  "cookies",
		query: `
        SELECT name, value, encrypted_value, host_key, path, expires_utc
        FROM cookies
        WHERE (host_key = ? OR host_key = ? OR host_key LIKE ?)
          AND expires_utc > ?
        ORDER BY creation_utc ASC`,
		expiry:    func(v int64) int64 { return v/1_000_000 - chromeEpochOffset },
		threshold: func(now int64) int64 { return (now + chromeEpochOffset) * 1_000_000 },
	},
}

func queryFor(format StoreFormat) (sqliteQuery, bool) {
	for _, q := range sqliteQueries {
		if q.format == format {
			return q, true
		}
	}
	return sqliteQuery{}, false
}

// readSQLite reads the unexpired cookies for domain from a copied SQLite
// cookie database. Encrypted Chrome values are decrypted when a key is
// available and skipped otherwise.
func readSQLite(dbPath string, format StoreFormat, domain string) ([]Record, error) {
	q, ok := queryFor(format)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedStore, format)
	}
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?immutable=1", dbPath))
	if err != nil {
		return nil, fmt.Errorf("cannot open %s cookie database: %w", format, err)
	}
	defer db.Close()

	var mv int64
	if format == FormatChrome {
		mv = metaVersion(db)
	}
	rows, err := db.Query(q.query, domain, "."+domain, "%."+domain, q.threshold(time.Now().Unix()))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s cookies: %w", format, err)
	}
	defer rows.Close()

	var (
		records []Record
		dec     *chromeDecryptor
	)
	for rows.Next() {
		var (
			name, value, host, path string
			encrypted               []byte
			expiry                  int64
		)
		if err := rows.Scan(&name, &value, &encrypted, &host, &path, &expiry); err != nil {
			return nil, fmt.Errorf("failed to scan %s cookie row: %w", format, err)
		}
		if value == "" && len(encrypted) > 0 {
			if dec == nil {
				dec = newChromeDecryptor()
			}
			var ok bool
			if value, ok = dec.decrypt(encrypted, mv); !ok {
				continue
			}
		}
		if value == "" {
			continue
		}
		records = append(records, Record{
			Name:   name,
			Value:  value,
			Domain: host,
			Path:   path,
			Expiry: time.Unix(q.expiry(expiry), 0),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s cookie rows: %w", format, err)
	}
	return records, nil
}

// metaVersion reads Chrome's schema version; stores without a meta table
// report 0.
func metaVersion(db *sql.DB) int64 {
	var v string
	if err := db.QueryRow(`SELECT value FROM meta WHERE key = 'version'`).Scan(&v); err != nil {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

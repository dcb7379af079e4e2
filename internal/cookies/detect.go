package cookies

import (
	"bytes"
	"database/sql"
	"fmt"
	"io"
	"os"

	_ "modernc.org/sqlite"
)

var sqliteMagic = []byte("SQLite format 3\x00")

var netscapeHeaders = [][]byte{
	[]byte("# Netscape HTTP Cookie File"),
	[]byte("# HTTP Cookie File"),
}

// DetectFormat sniffs the cookie store at path.
func DetectFormat(path string) (StoreFormat, error) {
	f, err := openStore(path)
	if err != nil {
		return FormatUnknown, err
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		return FormatUnknown, fmt.Errorf("cannot read cookie store: %w", err)
	}
	head = head[:n]

	if bytes.HasPrefix(head, sqliteMagic) {
		return detectSQLiteFormat(path)
	}

	firstLine := head
	if i := bytes.IndexByte(firstLine, '\n'); i >= 0 {
		firstLine = firstLine[:i]
	}
	firstLine = bytes.TrimRight(firstLine, "\r")
	for _, h := range netscapeHeaders {
		if bytes.Equal(firstLine, h) {
			return FormatNetscape, nil
		}
	}
	return FormatUnknown, fmt.Errorf("%w: %s", ErrUnsupportedStore, path)
}

// openStore opens path after checking it is a non-empty regular file.
func openStore(path string) (*os.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cookie store not found: %s", path)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory, expected a cookie store file", path)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("cookie store at %s is empty", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open cookie store: %w", err)
	}
	return f, nil
}

func detectSQLiteFormat(path string) (StoreFormat, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return FormatUnknown, fmt.Errorf("cannot open SQLite database: %w", err)
	}
	defer db.Close()

	for _, q := range sqliteQueries {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, q.table).Scan(&name)
		if err == nil {
			return q.format, nil
		}
	}
	return FormatUnknown, fmt.Errorf("%w: %s", ErrUnsupportedStore, path)
}

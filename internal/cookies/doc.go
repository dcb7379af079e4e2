// Package cookies turns a browser cookie export into the Cookie header the
// marketplace expects. Records come either from a JSON export (the format
// produced by cookie-editor style browser extensions) or straight from a
// browser cookie store: Firefox and Chrome SQLite databases and Netscape
// text files.
//
// Only the names in AllowList are ever sent. Cookie values are never logged.
package cookies

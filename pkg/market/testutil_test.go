package market

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/lotbump/lotbump/pkg/logger"
)

const testCookie = "PHPSESSID=sess; golden_key=gk; "

// fakeSite serves canned marketplace pages and records raise submissions.
type fakeSite struct {
	mu sync.Mutex

	// status, when set, is answered to every page fetch.
	status  int
	landing string
	account string
	// pages maps a request path to the page served for it.
	pages map[string]string
	// raiseBodies are served in order, the last one repeating.
	raiseBodies []string

	raiseForms   []url.Values
	raiseHeaders []http.Header
	pageHits     map[string]int
}

func newFakeSite() *fakeSite {
	return &fakeSite{
		pages:    make(map[string]string),
		pageHits: make(map[string]int),
	}
}

func (f *fakeSite) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r.Method == http.MethodPost && r.URL.Path == raisePath {
		body, _ := io.ReadAll(r.Body)
		form, _ := url.ParseQuery(string(body))
		f.raiseForms = append(f.raiseForms, form)
		f.raiseHeaders = append(f.raiseHeaders, r.Header.Clone())
		i := len(f.raiseForms) - 1
		if i >= len(f.raiseBodies) {
			i = len(f.raiseBodies) - 1
		}
		if i < 0 {
			http.Error(w, "no raise body configured", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(f.raiseBodies[i]))
		return
	}

	f.pageHits[r.URL.Path]++
	if f.status != 0 {
		http.Error(w, http.StatusText(f.status), f.status)
		return
	}
	switch {
	case r.URL.Path == "/":
		w.Write([]byte(f.landing))
	case r.URL.Path == "/users/42/":
		w.Write([]byte(f.account))
	default:
		page, ok := f.pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(page))
	}
}

func (f *fakeSite) form(i int) url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.raiseForms[i]
}

func (f *fakeSite) header(i int) http.Header {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.raiseHeaders[i]
}

func (f *fakeSite) hits(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pageHits[path]
}

func (f *fakeSite) posts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.raiseForms)
}

type testEnv struct {
	site    *fakeSite
	server  *httptest.Server
	client  *Client
	log     *logger.MockLogger
	console *bytes.Buffer
	session *Session
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	site := newFakeSite()
	server := httptest.NewServer(site)
	t.Cleanup(server.Close)

	mock := logger.NewMockLogger()
	console := &bytes.Buffer{}
	client, err := NewClient(Options{
		Site:    server.URL,
		Timeout: 5 * time.Second,
		Logger:  mock,
		Console: logger.NewConsole(console),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	session, err := NewSession(NewHeaders(testCookie, "test-agent"), "42", "csrf")
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return &testEnv{
		site:    site,
		server:  server,
		client:  client,
		log:     mock,
		console: console,
		session: session,
	}
}

func landingPage(appData string) string {
	return `<!DOCTYPE html><html><head><title>FunPay</title></head>` +
		`<body class="enable-dark" data-app-data='` + appData + `'>` +
		`<div class="user-link-name">seller</div></body></html>`
}

func categoryPage(game, node string) string {
	return `<html><body><div class="lot-raise">` +
		`<button class="btn btn-default btn-block js-lot-raise" data-game="` + game + `" data-node="` + node + `">Raise</button>` +
		`</div></body></html>`
}

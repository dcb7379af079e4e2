package cookies

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
)

func TestParseExport_Array(t *testing.T) {
	raw := []byte(`[
		{"name":"PHPSESSID","value":"sess","domain":"funpay.com","path":"/","httpOnly":true},
		{"name":"golden_key","value":"gk","domain":".funpay.com","expirationDate":1893456000}
	]`)
	records, err := ParseExport(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Name != "PHPSESSID" || records[0].Value != "sess" {
		t.Errorf("unexpected first record: %+v", records[0])
	}
	if records[1].Domain != ".funpay.com" {
		t.Errorf("expected domain to be kept, got %q", records[1].Domain)
	}
}

func TestParseExport_WrappedObject(t *testing.T) {
	records, err := ParseExport([]byte(`{"cookies":[{"name":"_ga","value":"GA1"}]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || records[0].Name != "_ga" {
		t.Errorf("unexpected records: %+v", records)
	}
}

func TestParseExport_SkipsNamelessEntries(t *testing.T) {
	records, err := ParseExport([]byte(`[{"value":"x"},{"name":"_gid","value":"1"}]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
}

func TestParseExport_Empty(t *testing.T) {
	for _, raw := range []string{"", "   \n\t"} {
		if _, err := ParseExport([]byte(raw)); !errors.Is(err, ErrEmptyExport) {
			t.Errorf("ParseExport(%q): expected ErrEmptyExport, got %v", raw, err)
		}
	}
}

func TestParseExport_Malformed(t *testing.T) {
	_, err := ParseExport([]byte(`{not json`))
	if err == nil {
		t.Fatal("expected error for malformed export")
	}
	if errors.Is(err, ErrEmptyExport) {
		t.Error("malformed export must not be reported as empty")
	}
}

func TestReadExport(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "cookies.txt", []byte(`[{"name":"golden_key","value":"gk"}]`), 0o600); err != nil {
		t.Fatalf("failed to write export: %v", err)
	}
	records, err := ReadExport(fs, "cookies.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if BuildHeader(records) != "golden_key=gk; " {
		t.Errorf("unexpected header: %q", BuildHeader(records))
	}
}

func TestReadExport_EmptyFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "cookies.txt", nil, 0o600); err != nil {
		t.Fatalf("failed to write export: %v", err)
	}
	if _, err := ReadExport(fs, "cookies.txt"); !errors.Is(err, ErrEmptyExport) {
		t.Errorf("expected ErrEmptyExport, got %v", err)
	}
}

func TestReadExport_Missing(t *testing.T) {
	if _, err := ReadExport(afero.NewMemMapFs(), "nope.txt"); err == nil {
		t.Fatal("expected error for missing export")
	}
}

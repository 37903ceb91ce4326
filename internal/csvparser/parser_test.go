package csvparser

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ginjaninja78/CSV-to-SNMP-conversion/internal/encoding"
	"go.uber.org/zap"
)

func writeCSV(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nodes.csv")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func TestParseBasic(t *testing.T) {
	path := writeCSV(t, []byte(
		"Caption,IP_Address,ObjectSubType\n"+
			"Router1,10.0.0.5,SNMP\n"+
			"Ping1,10.0.0.6,ICMP\n"))

	result, err := Parse(path, "UTF-8", testLogger())
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if len(result.Headers) != 3 || result.Headers[0] != "Caption" {
		t.Errorf("Headers = %v", result.Headers)
	}
	if result.TotalRows != 2 {
		t.Errorf("TotalRows = %d, want 2", result.TotalRows)
	}
	if len(result.Records) != 2 {
		t.Fatalf("Records count = %d, want 2", len(result.Records))
	}
	if result.Records[0]["Caption"] != "Router1" || result.Records[0]["IP_Address"] != "10.0.0.5" {
		t.Errorf("first record = %v", result.Records[0])
	}
	if result.Records[1]["ObjectSubType"] != "ICMP" {
		t.Errorf("second record = %v", result.Records[1])
	}
}

func TestParseSkipsEmptyRows(t *testing.T) {
	path := writeCSV(t, []byte(
		"Caption,IP_Address\n"+
			"Router1,10.0.0.5\n"+
			",\n"+
			"Router2,10.0.0.6\n"))

	result, err := Parse(path, "UTF-8", testLogger())
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if result.TotalRows != 3 {
		t.Errorf("TotalRows = %d, want 3 (empty row still counted)", result.TotalRows)
	}
	if result.SkippedEmpty != 1 {
		t.Errorf("SkippedEmpty = %d, want 1", result.SkippedEmpty)
	}
	if len(result.Records) != 2 {
		t.Errorf("Records count = %d, want 2", len(result.Records))
	}
}

func TestParseRaggedRows(t *testing.T) {
	path := writeCSV(t, []byte(
		"Caption,IP_Address,Location\n"+
			"Router1,10.0.0.5\n"+
			"Router2,10.0.0.6,DC1,extra\n"))

	result, err := Parse(path, "UTF-8", testLogger())
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if got := result.Records[0]["Location"]; got != "" {
		t.Errorf("missing column = %q, want empty string", got)
	}
	if got := result.Records[1]["Location"]; got != "DC1" {
		t.Errorf("Location = %q, want DC1", got)
	}
	if len(result.Records[1]) != 3 {
		t.Errorf("record has %d keys, want 3 (extra cell dropped)", len(result.Records[1]))
	}
}

func TestParseStripsBOMFromHeader(t *testing.T) {
	path := writeCSV(t, append([]byte{0xEF, 0xBB, 0xBF}, []byte("Caption,IP_Address\nRouter1,10.0.0.5\n")...))

	result, err := Parse(path, encoding.CharsetUTF8SIG, testLogger())
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if result.Headers[0] != "Caption" {
		t.Errorf("first header = %q, want Caption (BOM stripped)", result.Headers[0])
	}
}

func TestParseRepairsMojibake(t *testing.T) {
	// "Zürich" as UTF-8 bytes misread as Latin-1 upstream: "ZÃ¼rich".
	path := writeCSV(t, []byte("Caption,Location\nRouter1,ZÃ¼rich\n"))

	result, err := Parse(path, "UTF-8", testLogger())
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if got := result.Records[0]["Location"]; got != "Zürich" {
		t.Errorf("Location = %q, want %q", got, "Zürich")
	}
}

func TestParseDecodeFailure(t *testing.T) {
	path := writeCSV(t, []byte("Caption\nbad\xff\xfevalue\n"))

	_, err := Parse(path, "UTF-8", testLogger())
	if err == nil {
		t.Fatal("Parse() should fail on invalid UTF-8")
	}
	var decodeErr *encoding.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Errorf("error = %v, want *encoding.DecodeError", err)
	}
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "nope.csv"), "UTF-8", testLogger())
	if err == nil {
		t.Fatal("Parse() should fail for a missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want wrapped os.ErrNotExist", err)
	}
}

func TestParseEmptyFile(t *testing.T) {
	path := writeCSV(t, nil)
	if _, err := Parse(path, "UTF-8", testLogger()); err == nil {
		t.Fatal("Parse() should fail for an empty file")
	}
}

package bdb

import "testing"

const sample = `version=3
format=bytevalue
HEADER=END
 0b6e6574776f726b696e666f
 0474657374
DATA=END
`

func TestParse(t *testing.T) {
	d, err := Parse(sample)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Headers["version"] != "3" {
		t.Fatalf("unexpected headers: %v", d.Headers)
	}
	if len(d.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(d.Records))
	}
	entries := d.ByKeyname("networkinfo")
	if len(entries) != 1 {
		t.Fatalf("expected 1 networkinfo entry, got %d", len(entries))
	}
}

func TestParse_UnmatchedKeyFails(t *testing.T) {
	bad := "HEADER=END\n 076e6574776f726b696e666f\nDATA=END\n"
	if _, err := Parse(bad); err == nil {
		t.Fatal("expected unmatched key to fail")
	}
}

func TestParse_DuplicateKeyFails(t *testing.T) {
	bad := "HEADER=END\n 0474657374\n 0474657374\n 0474657374\n 0474657374\nDATA=END\n"
	if _, err := Parse(bad); err == nil {
		t.Fatal("expected duplicate key to fail")
	}
}

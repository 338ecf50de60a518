package tags

import (
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/gmkung/buildersdao-erc1155-atq-module/pkg/subgraph"
)

func record(id, symbol, name string) subgraph.CollectionRecord {
	raw, _ := json.Marshal(symbol)
	return subgraph.CollectionRecord{ID: id, Symbol: raw, Name: name}
}

func TestTruncateSymbol(t *testing.T) {
	tests := []struct {
		name   string
		symbol string
		want   string
	}{
		{"short symbol unchanged", "GOLD", "GOLD"},
		{"whitespace trimmed", "  GOLD \n", "GOLD"},
		{"exactly 45 unchanged", strings.Repeat("a", 45), strings.Repeat("a", 45)},
		{"46 truncated", strings.Repeat("a", 46), strings.Repeat("a", 42) + "..."},
		{"long truncated", strings.Repeat("b", 100), strings.Repeat("b", 42) + "..."},
		{"trim before length check", "  " + strings.Repeat("c", 45) + "  ", strings.Repeat("c", 45)},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateSymbol(tt.symbol); got != tt.want {
				t.Errorf("TruncateSymbol(%q) = %q, want %q", tt.symbol, got, tt.want)
			}
		})
	}
}

func TestTruncateSymbol_Properties(t *testing.T) {
	input := strings.Repeat("x", 80)
	got := TruncateSymbol(input)

	if n := utf8.RuneCountInString(got); n != 45 {
		t.Errorf("Truncated length = %d runes, want 45", n)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("Truncated symbol %q does not end in ...", got)
	}
	if got[:42] != input[:42] {
		t.Errorf("First 42 characters changed: %q", got[:42])
	}
}

func TestTruncateSymbol_MultiByte(t *testing.T) {
	input := strings.Repeat("é", 50)
	got := TruncateSymbol(input)

	if n := utf8.RuneCountInString(got); n != 45 {
		t.Errorf("Truncated length = %d runes, want 45", n)
	}
	if !strings.HasPrefix(got, strings.Repeat("é", 42)) {
		t.Errorf("First 42 runes changed: %q", got)
	}
}

func TestFromRecords(t *testing.T) {
	records := []subgraph.CollectionRecord{
		record("0x01", "GOLD", "Gold Pieces"),
		record("0x02", " SILVER ", "Silver Pieces"),
	}

	result := FromRecords("137", records)
	if len(result) != 2 {
		t.Fatalf("Got %d tags, want 2", len(result))
	}

	first := result[0]
	if first.ContractAddress != "eip155:137:0x01" {
		t.Errorf("ContractAddress = %q, want eip155:137:0x01", first.ContractAddress)
	}
	if first.PublicNameTag != "GOLD token" {
		t.Errorf("PublicNameTag = %q, want %q", first.PublicNameTag, "GOLD token")
	}
	if first.ProjectName != "Gold Pieces" {
		t.Errorf("ProjectName = %q, want %q", first.ProjectName, "Gold Pieces")
	}
	if first.WebsiteLink != "" {
		t.Errorf("WebsiteLink = %q, want empty", first.WebsiteLink)
	}
	if !strings.Contains(first.PublicNote, "Gold Pieces") || !strings.Contains(first.PublicNote, "GOLD") {
		t.Errorf("PublicNote %q does not embed name and symbol", first.PublicNote)
	}

	// Symbol trimming applies to the name tag.
	if result[1].PublicNameTag != "SILVER token" {
		t.Errorf("PublicNameTag = %q, want %q", result[1].PublicNameTag, "SILVER token")
	}
}

func TestFromRecords_SkipsBadRecords(t *testing.T) {
	records := []subgraph.CollectionRecord{
		record("0x01", "AAA", "Alpha"),
		{ID: "0x02", Symbol: json.RawMessage("null"), Name: "Broken"},
		{ID: "0x03", Symbol: json.RawMessage("42"), Name: "Numeric"},
		{ID: "0x04", Symbol: nil, Name: "Absent"},
		record("", "EEE", "No ID"),
		record("0x06", "FFF", "Foxtrot"),
	}

	result := FromRecords("1", records)
	if len(result) != 2 {
		t.Fatalf("Got %d tags, want 2", len(result))
	}

	// Order of surviving records is preserved.
	if result[0].ContractAddress != "eip155:1:0x01" {
		t.Errorf("First tag = %q, want eip155:1:0x01", result[0].ContractAddress)
	}
	if result[1].ContractAddress != "eip155:1:0x06" {
		t.Errorf("Second tag = %q, want eip155:1:0x06", result[1].ContractAddress)
	}
}

func TestFromRecords_Empty(t *testing.T) {
	result := FromRecords("1", nil)
	if len(result) != 0 {
		t.Errorf("Got %d tags, want 0", len(result))
	}
}

func TestRecordError_Unwrap(t *testing.T) {
	_, err := fromRecord("1", subgraph.CollectionRecord{ID: "0x01", Symbol: json.RawMessage("null")})
	if err == nil {
		t.Fatal("Expected error but got nil")
	}

	wrapped := &RecordError{ID: "0x01", Err: err}
	if wrapped.Unwrap() != err {
		t.Error("Unwrap() did not return the underlying error")
	}
	if !strings.Contains(wrapped.Error(), "0x01") {
		t.Errorf("Error() = %q, does not name the record", wrapped.Error())
	}
}

func TestTag_JSONShape(t *testing.T) {
	tag := Tag{
		ContractAddress: "eip155:1:0xabc",
		PublicNameTag:   "ABC token",
		ProjectName:     "ABC Collection",
		PublicNote:      "note",
	}

	data, err := json.Marshal(tag)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	for _, key := range []string{"contractAddress", "publicNameTag", "projectName", "websiteLink", "publicNote"} {
		if !strings.Contains(string(data), `"`+key+`"`) {
			t.Errorf("JSON %s missing key %q", data, key)
		}
	}
}

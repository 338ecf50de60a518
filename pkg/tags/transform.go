package tags

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"

	"github.com/gmkung/buildersdao-erc1155-atq-module/pkg/subgraph"
)

// Symbol truncation bounds. A symbol longer than maxSymbolLength keeps its
// first truncatedLength runes and gets an ellipsis marker appended.
const (
	maxSymbolLength = 45
	truncatedLength = 42
)

var tagsDroppedRecordsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "tags_dropped_records_total",
	Help: "Total records dropped during transformation by chain ID",
}, []string{"chain_id"})

// RecordError represents a single record that failed normalization. It is
// recovered locally; the record is dropped and the transform continues.
type RecordError struct {
	ID  string
	Err error
}

// Error implements the error interface.
func (e *RecordError) Error() string {
	return fmt.Sprintf("record %q: %v", e.ID, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *RecordError) Unwrap() error {
	return e.Err
}

// FromRecords converts one page of collection records into tags, preserving
// input order. A record that fails normalization is logged and skipped; it
// never aborts the page.
func FromRecords(chainID string, records []subgraph.CollectionRecord) []Tag {
	logger := log.With().Str("component", "tag-transform").Logger()

	result := make([]Tag, 0, len(records))
	for _, record := range records {
		tag, err := fromRecord(chainID, record)
		if err != nil {
			logger.Warn().
				Err(&RecordError{ID: record.ID, Err: err}).
				Str("chain_id", chainID).
				Str("name", record.Name).
				RawJSON("symbol", nonEmptyRaw(record.Symbol)).
				Msg("Dropping record that failed transformation")
			tagsDroppedRecordsTotal.WithLabelValues(chainID).Inc()
			continue
		}
		result = append(result, tag)
	}

	return result
}

// fromRecord normalizes a single record.
func fromRecord(chainID string, record subgraph.CollectionRecord) (Tag, error) {
	if record.ID == "" {
		return Tag{}, fmt.Errorf("missing id")
	}

	// Unmarshal leaves the target untouched for JSON null, so null is
	// rejected up front along with an absent field.
	if len(record.Symbol) == 0 || string(record.Symbol) == "null" {
		return Tag{}, fmt.Errorf("missing symbol")
	}
	var symbol string
	if err := json.Unmarshal(record.Symbol, &symbol); err != nil {
		return Tag{}, fmt.Errorf("symbol is not a string: %w", err)
	}

	truncated := TruncateSymbol(symbol)

	return Tag{
		ContractAddress: contractAddress(chainID, record.ID),
		PublicNameTag:   truncated + " token",
		ProjectName:     record.Name,
		WebsiteLink:     "",
		PublicNote: fmt.Sprintf(
			"This is the contract for the %s (%s) ERC-1155 token collection.",
			record.Name, symbol),
	}, nil
}

// TruncateSymbol trims surrounding whitespace and truncates the symbol to at
// most 45 characters, preserving the first 42 and appending "..." when
// truncation occurs.
func TruncateSymbol(symbol string) string {
	trimmed := strings.TrimSpace(symbol)
	runes := []rune(trimmed)
	if len(runes) <= maxSymbolLength {
		return trimmed
	}
	return string(runes[:truncatedLength]) + "..."
}

// nonEmptyRaw guards RawJSON against records with an absent symbol field.
func nonEmptyRaw(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("null")
	}
	return raw
}

package atq

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gmkung/buildersdao-erc1155-atq-module/pkg/registry"
	"github.com/gmkung/buildersdao-erc1155-atq-module/pkg/subgraph"
	"github.com/gmkung/buildersdao-erc1155-atq-module/pkg/tags"
)

// initialCursor sorts strictly before every record id.
const initialCursor = "0"

// PageFetcher is the interface the subgraph client implements for
// single-page fetching.
type PageFetcher interface {
	// FetchPage fetches one page of records with id strictly greater than
	// lastID, in ascending id order.
	FetchPage(ctx context.Context, endpoint, lastID string) ([]subgraph.CollectionRecord, error)
}

// Module drives pagination and aggregates tags.
type Module struct {
	fetcher PageFetcher
	logger  zerolog.Logger
}

// New creates a module around an existing page fetcher.
func New(fetcher PageFetcher) *Module {
	return &Module{
		fetcher: fetcher,
		logger:  log.With().Str("component", "atq-module").Logger(),
	}
}

// NewDefault creates a module with a default subgraph client.
func NewDefault(userAgent string) (*Module, error) {
	client, err := subgraph.New(subgraph.DefaultConfig(userAgent))
	if err != nil {
		return nil, fmt.Errorf("create subgraph client: %w", err)
	}
	return New(client), nil
}

// ReturnTags fetches every collection record on the given chain and returns
// the aggregated tags in ascending record-id order. Any page-fetch failure
// aborts the whole run and discards tags accumulated so far.
func (m *Module) ReturnTags(ctx context.Context, chainID, apiKey string) ([]tags.Tag, error) {
	endpoint, err := registry.Resolve(chainID, apiKey)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result := make([]tags.Tag, 0, subgraph.PageSize)
	cursor := initialCursor
	pages := 0

	for {
		records, err := m.fetcher.FetchPage(ctx, endpoint, cursor)
		if err != nil {
			return nil, fmt.Errorf("fetch page %d (cursor %q) for chain %s: %w",
				pages+1, cursor, chainID, err)
		}
		pages++

		result = append(result, tags.FromRecords(chainID, records)...)

		// A short page is the sole end-of-data signal.
		if len(records) < subgraph.PageSize {
			break
		}
		cursor = records[len(records)-1].ID
	}

	m.logger.Info().
		Str("chain_id", chainID).
		Int("pages", pages).
		Int("tags", len(result)).
		Dur("duration", time.Since(start)).
		Msg("Fetch complete")

	return result, nil
}

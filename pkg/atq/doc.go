// Package atq provides cursor-based pagination over ERC-1155 collection
// subgraphs, aggregating normalized contract tags.
//
// The subgraph has no "has more" flag; pages are requested with a strictly
// advancing id cursor, and the first page shorter than the fixed page size
// (1000) ends the run. Pages are fetched sequentially, one request in flight
// at a time.
//
// Example usage:
//
//	module, err := atq.NewDefault("my-app/1.0.0")
//	if err != nil {
//		return err
//	}
//	tags, err := module.ReturnTags(ctx, "137", apiKey)
//
// The module:
//   - Resolves the chain ID to its subgraph endpoint
//   - Fetches pages with cursor = last record id of the previous page
//   - Transforms each page, dropping individual malformed records
//   - Aborts the whole run on any page-fetch failure (no partial results)
package atq

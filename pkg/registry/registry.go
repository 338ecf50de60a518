// Package registry maps EVM chain IDs to their ERC-1155 subgraph endpoints
// and handles API key substitution.
package registry

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// keyPlaceholder is the literal token replaced by the caller's API key.
const keyPlaceholder = "{api-key}"

// endpoints maps a chain ID to its subgraph URL template. The table is fixed
// at process start and never mutated.
var endpoints = map[string]string{
	// Ethereum Mainnet
	"1": "https://gateway-arbitrum.network.thegraph.com/api/{api-key}/subgraphs/id/AX1HWgmDDkpbKuRKvgoHzAFRRhyfdHrDBKhHsp8f7ocS",
	// Optimism
	"10": "https://gateway-arbitrum.network.thegraph.com/api/{api-key}/subgraphs/id/2jDiMQZhGzfDnjhpsBnzYqdUMarDRdgCrnQ1LS4yvDfF",
	// BNB Smart Chain
	"56": "https://gateway-arbitrum.network.thegraph.com/api/{api-key}/subgraphs/id/5y9AHy6YjjqkYrhTKuY6DdLyDRtHWbkCBXrz4TszGKRf",
	// Polygon
	"137": "https://gateway-arbitrum.network.thegraph.com/api/{api-key}/subgraphs/id/FTPnBHLpHYEbGQdLBFDvg2QQJQF62bLvSpCc6A4wQcFN",
	// Arbitrum One
	"42161": "https://gateway-arbitrum.network.thegraph.com/api/{api-key}/subgraphs/id/8MM7hJTPcrJMQdYvUqivHhgpDiX1jormmM2nPkAhVPTh",
}

// UnsupportedNetworkError is returned when a chain ID is not in the endpoint
// table or fails numeric validation.
type UnsupportedNetworkError struct {
	ChainID   string
	Supported []string
}

// Error implements the error interface.
func (e *UnsupportedNetworkError) Error() string {
	return fmt.Sprintf("unsupported chain ID %q, supported: %s",
		e.ChainID, strings.Join(e.Supported, ", "))
}

// Supported returns the supported chain IDs in ascending numeric order.
func Supported() []string {
	ids := make([]string, 0, len(endpoints))
	for id := range endpoints {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, _ := strconv.Atoi(ids[i])
		b, _ := strconv.Atoi(ids[j])
		return a < b
	})
	return ids
}

// Resolve returns the ready-to-use subgraph endpoint for a chain ID with the
// API key substituted. The chain ID must be present in the endpoint table and
// must parse as an integer; both checks are required. The key is
// percent-encoded before insertion.
func Resolve(chainID, apiKey string) (string, error) {
	template, ok := endpoints[chainID]
	if _, err := strconv.Atoi(chainID); err != nil || !ok {
		return "", &UnsupportedNetworkError{
			ChainID:   chainID,
			Supported: Supported(),
		}
	}

	return strings.Replace(template, keyPlaceholder, url.PathEscape(apiKey), 1), nil
}

// Package tags converts raw subgraph collection records into normalized
// contract tags.
package tags

import "fmt"

// Tag is a normalized address tag describing one ERC-1155 contract.
type Tag struct {
	// ContractAddress is a CAIP-10 style identifier: "eip155:<chainId>:<id>".
	ContractAddress string `json:"contractAddress"`

	// PublicNameTag is the truncated collection symbol plus " token".
	PublicNameTag string `json:"publicNameTag"`

	// ProjectName is the collection name, untouched.
	ProjectName string `json:"projectName"`

	// WebsiteLink is not provided by the subgraph and is always empty.
	WebsiteLink string `json:"websiteLink"`

	// PublicNote is a descriptive sentence embedding name and symbol.
	PublicNote string `json:"publicNote"`
}

// contractAddress builds the CAIP-10 style identifier for a record.
func contractAddress(chainID, id string) string {
	return fmt.Sprintf("eip155:%s:%s", chainID, id)
}

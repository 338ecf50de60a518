// Package subgraph provides the GraphQL page-fetching client for ERC-1155
// collection records, with typed errors and request metrics.
package subgraph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// PageSize is the fixed number of records requested per page. A page shorter
// than this signals end-of-data.
const PageSize = 1000

// collectionsQuery requests one page of collections ordered by id, strictly
// after the cursor.
const collectionsQuery = `
query GetCollections($last_id: String!) {
  collections(first: 1000, orderBy: id, orderDirection: asc, where: { id_gt: $last_id }) {
    id
    symbol
    name
  }
}`

// Prometheus metrics for subgraph client operations.
var (
	subgraphRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "subgraph_requests_total",
		Help: "Total subgraph page requests by endpoint host and status",
	}, []string{"endpoint", "status"})

	subgraphRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "subgraph_request_duration_seconds",
		Help:    "Subgraph page request duration in seconds by endpoint host",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	subgraphErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "subgraph_errors_total",
		Help: "Total subgraph errors by class",
	}, []string{"class"})
)

// ErrorClass represents a classification of page-fetch errors.
type ErrorClass string

const (
	// ErrorClassHTTP represents non-success transport statuses.
	ErrorClassHTTP ErrorClass = "http"

	// ErrorClassGraphQL represents application-level errors in the body.
	ErrorClassGraphQL ErrorClass = "graphql"

	// ErrorClassMissingData represents a body without the collections field.
	ErrorClassMissingData ErrorClass = "missing_data"

	// ErrorClassDecode represents an unparseable response body.
	ErrorClassDecode ErrorClass = "decode"

	// ErrorClassNetwork represents network/timeout errors.
	ErrorClassNetwork ErrorClass = "network"
)

// CollectionRecord is one raw record from the subgraph. Symbol is kept as
// raw JSON so that a null or non-string symbol fails during per-record
// transformation instead of aborting the page decode.
type CollectionRecord struct {
	ID     string          `json:"id"`
	Symbol json.RawMessage `json:"symbol"`
	Name   string          `json:"name"`
}

// pageRequest is the JSON body of one page query.
type pageRequest struct {
	Query     string        `json:"query"`
	Variables pageVariables `json:"variables"`
}

type pageVariables struct {
	LastID string `json:"last_id"`
}

// pageResponse is the JSON shape of a subgraph response. Either Data or
// Errors is populated.
type pageResponse struct {
	Data *struct {
		Collections []CollectionRecord `json:"collections"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Client is the subgraph page-fetching client.
type Client struct {
	httpClient *http.Client
	config     Config
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// UserAgent header sent with every request.
	UserAgent string

	// Timeout per page request.
	Timeout time.Duration
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig(userAgent string) Config {
	return Config{
		UserAgent: userAgent,
		Timeout:   30 * time.Second,
	}
}

// New creates a new subgraph client.
func New(cfg Config) (*Client, error) {
	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("user-agent is required")
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	logger := log.With().Str("component", "subgraph-client").Logger()

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		config: cfg,
		logger: logger,
	}, nil
}

// FetchPage performs a single page query against the endpoint, requesting
// records with id strictly greater than lastID, and returns them in
// ascending id order. No retries are performed; any failure aborts the page.
func (c *Client) FetchPage(ctx context.Context, endpoint, lastID string) ([]CollectionRecord, error) {
	startTime := time.Now()
	host := endpointLabel(endpoint)
	defer func() {
		subgraphRequestDuration.WithLabelValues(host).Observe(time.Since(startTime).Seconds())
	}()

	body, err := json.Marshal(pageRequest{
		Query:     collectionsQuery,
		Variables: pageVariables{LastID: lastID},
	})
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	c.logger.Debug().
		Str("endpoint", host).
		Str("last_id", lastID).
		Msg("Executing page query")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("endpoint", host).Msg("Page request failed")
		subgraphErrorsTotal.WithLabelValues(string(classifyError(err))).Inc()
		subgraphRequestsTotal.WithLabelValues(host, "network_error").Inc()
		return nil, fmt.Errorf("page request: %w", err)
	}
	defer resp.Body.Close()

	subgraphRequestsTotal.WithLabelValues(host, fmt.Sprintf("%d", resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		httpErr := &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
		c.logger.Warn().
			Str("endpoint", host).
			Int("status", resp.StatusCode).
			Msg("Page request returned non-success status")
		subgraphErrorsTotal.WithLabelValues(string(classifyError(httpErr))).Inc()
		return nil, httpErr
	}

	var page pageResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		subgraphErrorsTotal.WithLabelValues(string(classifyError(err))).Inc()
		return nil, fmt.Errorf("decode response: %w", err)
	}

	// Application-level errors win over any partial data.
	if len(page.Errors) > 0 {
		messages := make([]string, 0, len(page.Errors))
		for _, e := range page.Errors {
			c.logger.Warn().
				Str("endpoint", host).
				Str("message", e.Message).
				Msg("Subgraph reported error")
			messages = append(messages, e.Message)
		}
		gqlErr := &GraphQLError{Messages: messages}
		subgraphErrorsTotal.WithLabelValues(string(classifyError(gqlErr))).Inc()
		return nil, gqlErr
	}

	if page.Data == nil || page.Data.Collections == nil {
		subgraphErrorsTotal.WithLabelValues(string(classifyError(ErrMissingData))).Inc()
		return nil, ErrMissingData
	}

	c.logger.Debug().
		Str("endpoint", host).
		Int("records", len(page.Data.Collections)).
		Msg("Page fetched")

	return page.Data.Collections, nil
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// endpointLabel reduces an endpoint URL to a low-cardinality metric label.
func endpointLabel(endpoint string) string {
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		return u.Host
	}
	return "unknown"
}

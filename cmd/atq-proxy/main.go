package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/gmkung/buildersdao-erc1155-atq-module/pkg/atq"
	"github.com/gmkung/buildersdao-erc1155-atq-module/pkg/logging"
	"github.com/gmkung/buildersdao-erc1155-atq-module/pkg/registry"
)

func main() {
	// Configuration from environment
	port := getEnv("PORT", "8080")
	apiKey := os.Getenv("API_KEY")
	userAgent := getEnv("USER_AGENT", "buildersdao-erc1155-atq/0.1.0")

	logger := logging.Setup(logging.Config{
		Level:  logging.LogLevel(getEnv("LOG_LEVEL", "info")),
		Pretty: getEnv("LOG_PRETTY", "false") == "true",
		Output: os.Stderr,
	})

	if apiKey == "" {
		logger.Fatal().Msg("API_KEY is required")
	}

	module, err := atq.NewDefault(userAgent)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create ATQ module")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/tags/", tagsHandler(module, apiKey, logger))

	addr := ":" + port
	logger.Info().
		Str("addr", addr).
		Strs("chains", registry.Supported()).
		Msg("Starting ATQ proxy server")

	server := &http.Server{
		Addr:        addr,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
	}
	if err := server.ListenAndServe(); err != nil {
		logger.Fatal().Err(err).Msg("Server failed")
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "OK")
}

// tagsHandler serves GET /tags/{chainId}.
func tagsHandler(module *atq.Module, apiKey string, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		chainID := strings.TrimPrefix(r.URL.Path, "/tags/")
		if chainID == "" || strings.Contains(chainID, "/") {
			http.Error(w, "expected /tags/{chainId}", http.StatusNotFound)
			return
		}

		result, err := module.ReturnTags(r.Context(), chainID, apiKey)
		if err != nil {
			var unsupported *registry.UnsupportedNetworkError
			if errors.As(err, &unsupported) {
				http.Error(w, unsupported.Error(), http.StatusBadRequest)
				return
			}
			logger.Error().Err(err).Str("chain_id", chainID).Msg("Tag fetch failed")
			http.Error(w, fmt.Sprintf("tag fetch failed: %v", err), http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logger.Error().Err(err).Msg("Failed to write response")
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

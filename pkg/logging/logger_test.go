package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != LevelInfo {
		t.Errorf("Expected default level to be Info, got %s", cfg.Level)
	}
	if cfg.Pretty {
		t.Error("Expected default pretty to be false")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    LogLevel
		expected zerolog.Level
	}{
		{LevelDebug, zerolog.DebugLevel},
		{LevelInfo, zerolog.InfoLevel},
		{LevelWarn, zerolog.WarnLevel},
		{LevelError, zerolog.ErrorLevel},
		{"invalid", zerolog.InfoLevel}, // Should default to Info
	}

	for _, tt := range tests {
		t.Run(string(tt.input), func(t *testing.T) {
			result := parseLevel(tt.input)
			if result != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	Setup(Config{
		Level:  LevelInfo,
		Pretty: false,
		Output: buf,
	})

	logger := NewLogger("subgraph-client")
	logger.Info().Msg("page fetched")

	output := buf.String()
	if !strings.Contains(output, "subgraph-client") {
		t.Errorf("Expected output to contain component name, got %q", output)
	}
	if !strings.Contains(output, "page fetched") {
		t.Errorf("Expected output to contain message, got %q", output)
	}
}

func TestLogLevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	Setup(Config{
		Level:  LevelWarn,
		Pretty: false,
		Output: buf,
	})
	defer Setup(DefaultConfig())

	logger := NewLogger("test")

	logger.Debug().Msg("cursor advanced")
	logger.Info().Msg("fetch complete")
	logger.Warn().Msg("record dropped")
	logger.Error().Msg("page request failed")

	output := buf.String()

	if strings.Contains(output, "cursor advanced") || strings.Contains(output, "fetch complete") {
		t.Error("Messages below Warn should be filtered out")
	}
	if !strings.Contains(output, "record dropped") {
		t.Error("Warn message should be included at Warn level")
	}
	if !strings.Contains(output, "page request failed") {
		t.Error("Error message should be included at Warn level")
	}
}

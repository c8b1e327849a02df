package mcpserver

import (
	"log/slog"
	"os"
	"regexp"
	"strconv"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Generate tool defaults.
	BaseRequestType string
	StrictMode      bool
	IncludeInfo     bool

	// Input limits.
	MaxInlineSize int64

	// Inspect tool defaults.
	InspectLimit int
	MaxLimit     int
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from TSREQGEN_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		BaseRequestType: envTypeName("TSREQGEN_BASE_REQUEST_TYPE", "RequestOptions"),
		StrictMode:      envBool("TSREQGEN_STRICT_MODE", false),
		IncludeInfo:     envBool("TSREQGEN_INCLUDE_INFO", true),
		MaxInlineSize:   envInt64("TSREQGEN_MAX_INLINE_SIZE", 10*1024*1024),
		InspectLimit:    envInt("TSREQGEN_INSPECT_LIMIT", 100),
		MaxLimit:        envInt("TSREQGEN_MAX_LIMIT", 1000),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

// typeNamePattern matches valid TypeScript identifier names.
// Must stay in sync with what generator.WithBaseRequestType accepts.
var typeNamePattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

func envTypeName(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if !typeNamePattern.MatchString(v) {
		slog.Warn("invalid type name env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return v
}

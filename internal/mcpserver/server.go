// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes tsreqgen capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/tsreqgen"
)

const serverInstructions = `tsreqgen MCP server — turns OpenAPI specs into typed TypeScript request modules.

Configuration: All defaults are configurable via TSREQGEN_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- TSREQGEN_BASE_REQUEST_TYPE (default: RequestOptions) — name of the request-options interface in generated modules
- TSREQGEN_STRICT_MODE (default: false) — fail generation on any issue, even warnings
- TSREQGEN_INCLUDE_INFO (default: true) — include informational issues in results
- TSREQGEN_MAX_INLINE_SIZE (default: 10MiB) — maximum inline spec content size in bytes
- TSREQGEN_INSPECT_LIMIT (default: 100) — default operation limit for the inspect tool

Parsed documents are not cached between calls: generation rewrites the document tree in place, so every call parses its input fresh.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "tsreqgen", Version: tsreqgen.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate",
		Description: "Generate a typed TypeScript request module from an OpenAPI Specification document (2.0 or 3.x). Each operation becomes a request factory with typed Body/Response/Params/PathParams shapes. With output_dir set, files are written to disk and a manifest is returned; without it, the module source is returned inline. Defaults for base_request_type, strict_mode, and include_info are configurable via TSREQGEN_* env vars.",
	}, handleGenerate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "inspect",
		Description: "Inspect an OpenAPI Specification document without generating code. Returns the title, version, OAS version, and one row per operation (method, path, operationId, summary, deprecated) plus any normalization issues. Swagger 2.0 input is converted to 3.x before inspection. Use offset/limit to paginate operations; the default limit is configurable via TSREQGEN_INSPECT_LIMIT.",
	}, handleInspect)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.InspectLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.InspectLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

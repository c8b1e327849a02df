// Package httputil provides HTTP method and media type constants and
// validation helpers shared by the extractor and the inspect command.
package httputil

import (
	"mime"
	"strconv"
	"strings"
)

// HTTP Method Constants
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace" // OAS 3.0+ only
)

// CanonicalMethods lists every HTTP method a path item may declare, in
// the fixed order operations are extracted. Path keys are iterated in
// document order; methods within each path follow this order.
var CanonicalMethods = []string{
	MethodGet,
	MethodPut,
	MethodPost,
	MethodDelete,
	MethodOptions,
	MethodHead,
	MethodPatch,
	MethodTrace,
}

// IsMethod reports whether key names an HTTP method. Path items also
// carry non-method keys (parameters, summary, servers, x-*), which
// extraction skips.
func IsMethod(key string) bool {
	switch key {
	case MethodGet, MethodPut, MethodPost, MethodDelete,
		MethodOptions, MethodHead, MethodPatch, MethodTrace:
		return true
	}
	return false
}

// Media type constants for request body content selection.
const (
	// MediaTypeJSON is the preferred request body content type.
	MediaTypeJSON = "application/json"
	// MediaTypeMultipart is the fallback content type, and marks an
	// operation as multipart.
	MediaTypeMultipart = "multipart/form-data"
	// MediaTypeFormURLEncoded is the default content type for converted
	// Swagger 2.0 formData parameters.
	MediaTypeFormURLEncoded = "application/x-www-form-urlencoded"
)

// StatusOK is the only response status whose content contributes a
// typed response shape.
const StatusOK = "200"

// Status code boundaries for ValidateStatusCode.
const (
	statusCodeLength = 3   // standard length of HTTP status codes (e.g., "200", "404")
	minStatusCode    = 100 // minimum valid HTTP status code
	maxStatusCode    = 599 // maximum valid HTTP status code
	wildcardChar     = 'X' // wildcard character in patterns like "2XX"
)

// ValidateStatusCode checks if a status code string is valid according to
// the OpenAPI spec. Valid values are:
//   - "default" for default response
//   - Extension fields starting with "x-"
//   - Wildcard patterns: 1XX, 2XX, 3XX, 4XX, 5XX
//   - Numeric codes: 100-599
func ValidateStatusCode(code string) bool {
	if code == "default" {
		return true
	}

	if strings.HasPrefix(code, "x-") {
		return true
	}

	if len(code) == statusCodeLength {
		// Check for wildcard patterns (e.g., "2XX", "4XX")
		if code[1] == wildcardChar && code[2] == wildcardChar {
			if code[0] >= '1' && code[0] <= '5' {
				return true
			}
		}

		// Check for numeric codes
		if code[0] >= '0' && code[0] <= '9' &&
			code[1] >= '0' && code[1] <= '9' &&
			code[2] >= '0' && code[2] <= '9' {
			statusCode, err := strconv.Atoi(code)
			if err == nil && statusCode >= minStatusCode && statusCode <= maxStatusCode {
				return true
			}
		}
	}

	return false
}

// IsValidMediaType validates a media type string according to RFC 2045/2046.
// Handles wildcards (*/* and type/*) and prevents invalid combinations (*/subtype).
func IsValidMediaType(mediaType string) bool {
	if mediaType == "*/*" {
		return true
	}

	if strings.HasSuffix(mediaType, "/*") {
		// Check format: type/* (e.g., application/*)
		parts := strings.Split(mediaType, "/")
		if len(parts) == 2 && parts[0] != "" && parts[0] != "*" {
			return true
		}
		return false
	}

	// Use standard MIME type parser for regular types
	_, _, err := mime.ParseMediaType(mediaType)
	return err == nil
}

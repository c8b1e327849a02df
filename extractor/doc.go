// Package extractor flattens a normalized document's path map into
// operation records for shape preprocessing and code generation.
//
// Extraction order is deterministic: paths iterate in declaration order,
// and within each path the configured HTTP method order applies
// (httputil.CanonicalMethods by default). Each declared method yields one
// Operation with resolved, partitioned parameters, the preferred request
// media type, multipart detection, and the 200 response's first content
// entry.
//
// Parameters whose references cannot be resolved are dropped and reported
// as warning issues on the Result; StrictRefs turns those drops into
// errors. Header and cookie parameters are ignored.
package extractor

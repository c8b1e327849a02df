// Package parser loads OpenAPI Specification documents into ordered
// document trees.
//
// The parser accepts OAS 2.0 (Swagger) and OAS 3.x documents in YAML and
// JSON. Rather than decoding into version-specific structs, it builds a
// loose [document.Object] tree that preserves the declaration order of
// every mapping, because downstream code generation iterates paths,
// content types, and properties in document order.
//
// # Quick Start
//
// Parse a file:
//
//	p := parser.New()
//	result, err := p.Parse("openapi.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result.Version, result.SourceFormat)
//
// The path "-" reads from stdin. ParseBytes and ParseReader parse
// in-memory and streamed input.
//
// # Reference Resolution
//
// [RefResolver] resolves document-local JSON pointer references
// ("#/components/schemas/Pet"). Get and Has support lazy lookup without
// modifying the document; Dereference rewrites the tree in place, sharing
// target nodes between reference sites so that reference cycles become
// pointer cycles. External file and HTTP references are not supported:
// a reference that does not start with "#" fails resolution.
//
// # Version Detection
//
// A document must declare its version at the root, either
// 'swagger: "2.0"' or 'openapi: "3.x.x"'. Detection failure is a
// [generrors.ParseError]; everything else about the document structure is
// left to downstream stages.
package parser

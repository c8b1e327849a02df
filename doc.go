// Package tsreqgen generates typed TypeScript request modules from
// OpenAPI specifications.
//
// Given an OpenAPI 2.0 (Swagger) or OpenAPI 3.x document, tsreqgen
// produces a single TypeScript module containing one request factory
// per API operation, with request parameters, bodies, and responses
// expressed as TypeScript types compiled from the operation's schemas.
// The generated module is self-contained and deterministic: the same
// input document always produces byte-identical output.
//
// # Architecture
//
// Generation runs as a pipeline of five stages, each owned by a
// subpackage:
//
//   - parser: loads YAML or JSON into an order-preserving document
//     tree and resolves local $ref pointers
//   - normalizer: dereferences the tree in place, breaks reference
//     cycles, and prunes dangling references
//   - converter: upgrades Swagger 2.0 documents to OpenAPI 3.x
//   - extractor: flattens paths into per-operation records with
//     resolved bodies, responses, and parameters
//   - shaper: folds each operation's shapes into a single helper
//     schema ready for type compilation
//   - typegen: compiles JSON Schema subtrees to TypeScript type
//     declarations
//   - generator: synthesizes the factory blocks and assembles the
//     final module
//
// # Basic Usage
//
// The simplest path is the generator package's options API:
//
//	result, err := generator.Generate(
//	    generator.WithInputPath("api.yaml"),
//	    generator.WithOutputPath("requests.ts"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("generated %d operations\n", result.OperationCount)
//
// Or construct a Generator directly when you need to reuse one across
// documents:
//
//	gen := generator.New()
//	gen.ModuleName = "petstore"
//	result, err := gen.GenerateFromPath("api.yaml")
//
// # Command Line
//
// The cmd/tsreqgen command exposes the pipeline as a CLI:
//
//	tsreqgen generate -spec api.yaml -out requests.ts
//	tsreqgen inspect -spec api.yaml
//	tsreqgen mcp
//
// The mcp subcommand serves the generator over the Model Context
// Protocol for use by AI assistants; see internal/mcpserver.
package tsreqgen

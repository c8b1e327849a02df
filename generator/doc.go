// Package generator produces typed TypeScript client modules from OpenAPI
// Specification documents.
//
// The generator emits one callable request factory per operation, with
// request and response shapes derived from the document's schemas. OAS 2.0
// inputs are converted to 3.x before generation. Generated code targets
// API consumers who want compile-time checked request builders without
// hand-writing interface definitions.
//
// # Quick Start
//
// Generate a module using functional options:
//
//	result, err := generator.GenerateWithOptions(
//		generator.WithFilePath("openapi.yaml"),
//		generator.WithBaseRequestType("AxiosRequestConfig"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := result.WriteFiles("./generated"); err != nil {
//		log.Fatal(err)
//	}
//
// Or use a reusable Generator instance:
//
//	g := generator.New()
//	g.StrictMode = true
//	result, _ := g.Generate("openapi.yaml")
//	result.WriteFiles("./generated")
//
// # Pipeline
//
// Generation is strictly staged; each stage consumes the previous
// stage's output:
//   - parser loads the document into an order-preserving tree
//   - normalizer prunes dangling 2.0 references, converts to 3.x,
//     dereferences, and breaks reference cycles
//   - extractor flattens the path map into one record per declared
//     (path, method) pair
//   - shaper derives each operation's call shape and helper schema
//   - typegen compiles helper schemas to TypeScript declarations, and
//     the assembled module is formatted once at the end
//
// # Generated Module
//
// The output is a single self-contained client.ts exposing:
//   - one exported factory per operation, keyed by 'METHOD /url'
//   - an aggregate operations map spreading every factory
//   - OperationKey, OperationTypes, and OperationResponse lookups
//   - makeRequest, which binds a transport client and an operation key
//     to a fully-typed request function
//
// Emitted factories never reference each other; every type they need is
// declared function-local from the operation's own helper schema.
//
// See the exported GenerateResult and GenerateIssue types for complete details.
package generator

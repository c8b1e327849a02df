// Package normalizer prepares parsed OpenAPI documents for operation
// extraction.
//
// Normalization turns a possibly self-referential, partially-invalid
// document into a tree that downstream stages can traverse directly:
//
//   - Swagger 2.0 input first has dangling references pruned (the
//     converter does not tolerate them), then is converted to OpenAPI 3.x
//     through the DocumentConverter collaborator.
//   - References are resolved in place through the Resolver collaborator,
//     replacing each reference node with its target. With LazyRefs set
//     the tree keeps its references and downstream stages resolve them
//     through the same Resolver.
//   - Schema reference cycles, which resolution turns into pointer
//     cycles, are broken by substituting untyped marker leaves, so the
//     result is finite under plain recursion.
//
// # Quick Start
//
//	parsed, err := parser.New().Parse("openapi.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := normalizer.New().Normalize(parsed)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, issue := range result.Issues {
//		fmt.Println(issue)
//	}
//
// Resolution and conversion failures abort normalization. Dangling
// Swagger 2.0 references, schema cycles, and lossy conversion details are
// repaired instead and reported on Result.Issues.
package normalizer

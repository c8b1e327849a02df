// Package shaper derives per-operation shape facts from extracted
// operations: which parameter groups exist, whether the call signature
// uses named scalar arguments or a structured path object, whether the
// options argument can be omitted, and the single helper schema handed
// to type compilation.
//
// The helper schema is an object with four members, Body, Response,
// Params, and PathParams. Every nested object and array schema inside
// it is retitled with a synthetic name built from the operation's root
// name and its position, so each operation compiles to its own
// collision-free set of named types. Primitive leaves whose format
// changes the emitted type, such as int64 integers and binary strings,
// carry a tsType hint the compiler passes through verbatim.
//
// Shaping is pure: the operation and the document tree are never
// modified. Documents normalized with lazy references are supported by
// inlining referenced schemas through the configured resolver while
// copying.
//
// # Quick Start
//
//	parsed, err := parser.New().Parse("openapi.yaml")
//	if err != nil {
//		return err
//	}
//	normalized, err := normalizer.New().Normalize(parsed)
//	if err != nil {
//		return err
//	}
//	extracted, err := extractor.New().Extract(normalized.Document)
//	if err != nil {
//		return err
//	}
//	s := shaper.New()
//	for _, op := range extracted.Operations {
//		shape, issues := s.Shape(op, normalized.Document)
//		_ = issues
//		fmt.Println(shape.RootName, shape.IsSimplePathParams)
//	}
package shaper

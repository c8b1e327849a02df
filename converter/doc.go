// Package converter converts Swagger 2.0 document trees to OpenAPI 3.x.
//
// The converter performs a best-effort structural conversion with detailed
// issue tracking. Features converted include servers (from host, basePath,
// and schemes), parameters, body and formData parameters (to requestBody),
// response schemas (to content maps), security definitions, and reference
// targets (#/definitions/ to #/components/schemas/ and friends).
//
// The converter operates on parsed document trees rather than files; pair it
// with the parser package to load a document first.
//
// # Quick Start
//
//	p := parser.New()
//	parsed, err := p.Parse("swagger.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	c := converter.New()
//	result, err := c.ConvertParsed(parsed.Document)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if result.HasCriticalIssues() {
//		fmt.Printf("%d critical issue(s)\n", result.CriticalCount)
//	}
//
// # Conversion Issues
//
// The converter tracks three severity levels: Info (conversion choices such
// as defaulted servers or folded formData parameters), Warning (lossy
// conversions such as collectionFormat and allowEmptyValue), and Critical
// (features that cannot be converted). With StrictMode set, any warning or
// critical issue fails the conversion; otherwise issues are reported on the
// ConversionResult for the caller to inspect.
//
// # Document Ownership
//
// Conversion moves subtrees from the source document into the converted one
// instead of deep-copying them, so the source tree must be discarded after a
// successful conversion.
package converter

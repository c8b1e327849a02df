// Package typegen compiles schema trees into TypeScript type text.
//
// The Compiler walks a schema depth first and classifies every node
// into one of a closed set of variants before emitting anything, so a
// malformed node surfaces as a CompileError with a pointer to the
// offending location instead of broken output. Titled object and array
// schemas hoist named declarations and their use sites reference the
// name; untitled schemas render inline. Declarations land in first-use
// order with the root first.
//
// Primitive types route through a FormatMap, which resolves a schema
// type and format pair to the emitted TypeScript type. DefaultFormats
// covers the standard pairs, keeping 64-bit integers as string and
// binary strings as File. A tsType member on any schema bypasses
// classification entirely and passes through verbatim, which is how
// upstream stages pin a node to a known emitted type.
//
// # Quick Start
//
//	compiler := typegen.New()
//	text, err := compiler.Compile(schema, "UpdatePet", typegen.Options{})
//	if err != nil {
//		var ce *generrors.CompileError
//		if errors.As(err, &ce) {
//			log.Fatalf("bad schema at %s: %s", ce.Pointer, ce.Message)
//		}
//		log.Fatal(err)
//	}
//	fmt.Println(text)
package typegen

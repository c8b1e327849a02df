package parser_test

import (
	"fmt"
	"log"

	"github.com/erraggy/tsreqgen/parser"
)

// Example demonstrates basic usage of the parser to load an OpenAPI
// specification file.
func Example() {
	p := parser.New()
	result, err := p.Parse("../testdata/petstore-3.0.yaml")
	if err != nil {
		log.Fatalf("failed to parse: %v", err)
	}
	fmt.Printf("Version: %s\n", result.Version)
	fmt.Printf("Format: %s\n", result.SourceFormat)
	// Output:
	// Version: 3.0.3
	// Format: yaml
}

// Example_refResolver demonstrates lazy reference lookup without
// modifying the document.
func Example_refResolver() {
	p := parser.New()
	result, err := p.Parse("../testdata/petstore-3.0.yaml")
	if err != nil {
		log.Fatalf("failed to parse: %v", err)
	}

	r := parser.NewRefResolver()
	fmt.Println(r.Has(result.Document, "#/components/schemas/Pet"))
	fmt.Println(r.Has(result.Document, "#/components/schemas/Missing"))
	// Output:
	// true
	// false
}

// Example_dereference demonstrates full in-place reference resolution.
func Example_dereference() {
	p := parser.New()
	result, err := p.Parse("../testdata/petstore-3.0.yaml")
	if err != nil {
		log.Fatalf("failed to parse: %v", err)
	}

	if err := parser.NewRefResolver().Dereference(result.Document); err != nil {
		log.Fatalf("failed to dereference: %v", err)
	}

	paths, _ := result.Document.Obj("paths")
	item, _ := paths.Obj("/pets/{petId}")
	get, _ := item.Obj("get")
	params, _ := get.Slice("parameters")
	fmt.Printf("resolved parameters: %d\n", len(params))
	// Output:
	// resolved parameters: 1
}

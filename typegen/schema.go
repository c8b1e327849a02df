package typegen

import (
	"fmt"

	"github.com/erraggy/tsreqgen/document"
	"github.com/erraggy/tsreqgen/generrors"
)

// schemaVariant is the closed set of shapes a schema node can take.
// Classification is total: every node maps to exactly one variant or
// fails with a compile error, so emission never falls through silently.
type schemaVariant interface {
	variant()
}

// anyVariant is an unconstrained schema, either empty or carrying an
// explicit tsType hint that passes through verbatim.
type anyVariant struct {
	hint string
}

// refVariant is a residual reference node. The pipeline inlines
// references before compilation, so these appear only on direct use of
// the compiler.
type refVariant struct {
	ref string
}

// primitiveVariant covers string, number, integer, boolean, and null
// schemas, including enum restrictions.
type primitiveVariant struct {
	schemaType string
	format     string
	enum       []any
}

// objectVariant covers object schemas. Composition groups on the same
// node are intersected onto the declared properties.
type objectVariant struct {
	properties    *document.Object
	required      []any
	additional    any
	hasAdditional bool
	compositions  []compositionGroup
}

// arrayVariant covers array schemas. items is nil, a schema, or a
// tuple of schemas.
type arrayVariant struct {
	items any
}

// compositeVariant covers pure composition schemas with no properties
// of their own.
type compositeVariant struct {
	groups []compositionGroup
}

func (anyVariant) variant()       {}
func (refVariant) variant()       {}
func (primitiveVariant) variant() {}
func (objectVariant) variant()    {}
func (arrayVariant) variant()     {}
func (compositeVariant) variant() {}

// compositionGroup is one allOf, oneOf, or anyOf list with its joining
// operator.
type compositionGroup struct {
	key      string
	op       string
	branches []any
}

func collectCompositions(schema *document.Object) []compositionGroup {
	var groups []compositionGroup
	for _, c := range []struct{ key, op string }{
		{"allOf", "&"},
		{"oneOf", "|"},
		{"anyOf", "|"},
	} {
		if branches, ok := schema.Slice(c.key); ok && len(branches) > 0 {
			groups = append(groups, compositionGroup{key: c.key, op: c.op, branches: branches})
		}
	}
	return groups
}

// classify maps a schema node to its variant. Malformed nodes, such as
// a non-string type or tsType value, fail classification.
func classify(schema *document.Object, pointer string) (schemaVariant, error) {
	if raw, ok := schema.Get("tsType"); ok {
		hint, ok := raw.(string)
		if !ok {
			return nil, compileErr(pointer, fmt.Sprintf("tsType must be a string, got %T", raw))
		}
		return anyVariant{hint: hint}, nil
	}
	if raw, ok := schema.Get("$ref"); ok {
		ref, ok := raw.(string)
		if !ok {
			return nil, compileErr(pointer, fmt.Sprintf("$ref must be a string, got %T", raw))
		}
		return refVariant{ref: ref}, nil
	}

	schemaType := ""
	if raw, ok := schema.Get("type"); ok {
		s, ok := raw.(string)
		if !ok {
			return nil, compileErr(pointer, fmt.Sprintf("type must be a string, got %T", raw))
		}
		schemaType = s
	}

	groups := collectCompositions(schema)
	properties, hasProps := schema.Obj("properties")
	additional, hasAdditional := schema.Get("additionalProperties")
	enum, hasEnum := schema.Slice("enum")

	switch {
	case schemaType == "object" || hasProps || hasAdditional:
		required, _ := schema.Slice("required")
		return objectVariant{
			properties:    properties,
			required:      required,
			additional:    additional,
			hasAdditional: hasAdditional,
			compositions:  groups,
		}, nil
	case len(groups) > 0:
		return compositeVariant{groups: groups}, nil
	case schemaType == "array" || schema.Has("items"):
		items, _ := schema.Get("items")
		return arrayVariant{items: items}, nil
	case hasEnum:
		format, _ := schema.Str("format")
		return primitiveVariant{schemaType: schemaType, format: format, enum: enum}, nil
	case schemaType != "":
		format, _ := schema.Str("format")
		return primitiveVariant{schemaType: schemaType, format: format}, nil
	default:
		return anyVariant{}, nil
	}
}

func compileErr(pointer, message string) error {
	return &generrors.CompileError{Pointer: pointer, Message: message}
}

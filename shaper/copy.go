package shaper

import (
	"fmt"

	"github.com/erraggy/tsreqgen/document"
	"github.com/erraggy/tsreqgen/extractor"
	"github.com/erraggy/tsreqgen/internal/stringutil"
	"github.com/erraggy/tsreqgen/typegen"
)

// schemaCopier copies schemas out of the document into a helper schema.
// Nested object and array schemas are retitled with synthetic names,
// format-mapped primitive leaves gain tsType hints, and references left
// by lazy normalization are inlined. The source tree is never touched.
type schemaCopier struct {
	formats  typegen.FormatMap
	resolver extractor.RefGetter
	doc      *document.Object
	issues   []Issue
	// refChain holds the references currently being inlined. Re-entering
	// one means a cycle that full dereferencing would have broken
	// upstream, so the copy degrades to an untyped marker.
	refChain map[string]bool
}

func (c *schemaCopier) addIssue(sev Severity, path, message, context string) {
	c.issues = append(c.issues, Issue{
		Severity: sev,
		Path:     path,
		Message:  message,
		Context:  context,
	})
}

// copySchema deep-copies src under the synthetic name title. Source
// titles are dropped: every nested shape is named by its position so
// names stay unique within the operation.
func (c *schemaCopier) copySchema(src *document.Object, title, path string) *document.Object {
	if ref, ok := src.Str("$ref"); ok {
		return c.inlineRef(ref, title, path)
	}

	dst := document.NewObject()
	if isStructured(src) {
		dst.Set("title", title)
	}
	for _, pair := range src.Pairs() {
		switch pair.Key {
		case "title":
			continue
		case "properties":
			if props, ok := pair.Value.(*document.Object); ok {
				dst.Set("properties", c.copyProperties(props, title, childPath(path, "properties")))
				continue
			}
		case "items":
			if item, ok := pair.Value.(*document.Object); ok {
				dst.Set("items", c.copySchema(item, title+"$Items", childPath(path, "items")))
				continue
			}
		case "allOf", "oneOf", "anyOf":
			if seq, ok := pair.Value.([]any); ok {
				dst.Set(pair.Key, c.copyVariants(seq, pair.Key, title, path))
				continue
			}
		case "not":
			if sub, ok := pair.Value.(*document.Object); ok {
				dst.Set("not", c.copySchema(sub, title+"$Not", childPath(path, "not")))
				continue
			}
		case "additionalProperties":
			if sub, ok := pair.Value.(*document.Object); ok {
				dst.Set("additionalProperties", c.copySchema(sub, title+"$AdditionalProperties", childPath(path, "additionalProperties")))
				continue
			}
		}
		dst.Set(pair.Key, copyValue(pair.Value))
	}
	c.hintLeaf(dst)
	return dst
}

func (c *schemaCopier) copyProperties(props *document.Object, title, path string) *document.Object {
	dst := document.NewObject()
	for _, pair := range props.Pairs() {
		if sub, ok := pair.Value.(*document.Object); ok {
			childTitle := title + "$" + stringutil.TitleSegment(pair.Key)
			dst.Set(pair.Key, c.copySchema(sub, childTitle, childPath(path, pair.Key)))
			continue
		}
		dst.Set(pair.Key, copyValue(pair.Value))
	}
	return dst
}

// copyVariants copies composition branches (allOf, oneOf, anyOf) with
// index-suffixed titles so branch names never collide.
func (c *schemaCopier) copyVariants(seq []any, key, title, path string) []any {
	out := make([]any, len(seq))
	for i, item := range seq {
		if sub, ok := item.(*document.Object); ok {
			childTitle := fmt.Sprintf("%s$%s%d", title, stringutil.TitleSegment(key), i)
			out[i] = c.copySchema(sub, childTitle, fmt.Sprintf("%s.%s[%d]", path, key, i))
			continue
		}
		out[i] = copyValue(item)
	}
	return out
}

// inlineRef replaces a reference node with a copy of its target. An
// unresolvable or cyclic reference degrades to an untyped marker so
// shaping never fails.
func (c *schemaCopier) inlineRef(ref, title, path string) *document.Object {
	if c.refChain[ref] {
		c.addIssue(SeverityInfo, path,
			fmt.Sprintf("Reference cycle through %q replaced with an untyped marker", ref),
			"recursive schemas cannot be typed statically")
		return untypedMarker()
	}

	if c.doc == nil {
		c.addIssue(SeverityWarning, path,
			fmt.Sprintf("Replaced unresolvable reference %q with an untyped schema", ref),
			"no document was provided to resolve lazily kept references against")
		return untypedMarker()
	}
	target, err := c.resolver.Get(c.doc, ref)
	if err != nil {
		c.addIssue(SeverityWarning, path,
			fmt.Sprintf("Replaced unresolvable reference %q with an untyped schema", ref),
			"the reference target does not exist in the document")
		return untypedMarker()
	}
	obj, ok := target.(*document.Object)
	if !ok {
		c.addIssue(SeverityWarning, path,
			fmt.Sprintf("Replaced reference %q to a non-schema value with an untyped schema", ref),
			"only mapping nodes can be inlined as schemas")
		return untypedMarker()
	}

	c.refChain[ref] = true
	defer delete(c.refChain, ref)
	return c.copySchema(obj, title, path)
}

// paramsSchema synthesizes an object schema from a parameter group.
// Each parameter becomes a property carrying its schema copy; required
// parameters are listed in the schema's required field.
func (c *schemaCopier) paramsSchema(params []extractor.Parameter, title, path string) *document.Object {
	obj := document.NewObject().
		Set("title", title).
		Set("type", "object")
	props := document.NewObject()
	var required []any
	for _, p := range params {
		if p.Schema != nil {
			childTitle := title + "$" + stringutil.TitleSegment(p.Name)
			props.Set(p.Name, c.copySchema(p.Schema, childTitle, childPath(path, p.Name)))
		} else {
			props.Set(p.Name, document.NewObject())
		}
		if p.Required {
			required = append(required, p.Name)
		}
	}
	obj.Set("properties", props)
	if len(required) > 0 {
		obj.Set("required", required)
	}
	return obj
}

// hintLeaf attaches a tsType hint when the format table maps the leaf
// to something other than its natural primitive emission, such as int64
// integers becoming strings.
func (c *schemaCopier) hintLeaf(schema *document.Object) {
	if schema.Has("tsType") {
		return
	}
	schemaType, ok := schema.Str("type")
	if !ok {
		return
	}
	format, _ := schema.Str("format")
	mapped := c.formats.Type(schemaType, format)
	if mapped == "" || mapped == naturalType(schemaType) {
		return
	}
	schema.Set("tsType", mapped)
}

// naturalType is the emission a primitive gets with no format mapping.
func naturalType(schemaType string) string {
	switch schemaType {
	case "integer", "number":
		return "number"
	case "string":
		return "string"
	case "boolean":
		return "boolean"
	default:
		return ""
	}
}

// untypedMarker builds the opaque leaf substituted for unresolvable and
// cyclic references. The type compiler passes the hint through
// verbatim, so it types as any.
func untypedMarker() *document.Object {
	return document.NewObject().Set("tsType", "any")
}

// isStructured reports whether the schema describes a named shape worth
// hoisting: objects, arrays, and compositions. Primitive leaves and
// untyped markers stay inline.
func isStructured(schema *document.Object) bool {
	if t, ok := schema.Str("type"); ok && (t == "object" || t == "array") {
		return true
	}
	return schema.Has("properties") || schema.Has("items") ||
		schema.Has("allOf") || schema.Has("oneOf") || schema.Has("anyOf")
}

// copyValue deep-copies values in non-schema positions, such as enum
// members and defaults. Objects here copy verbatim, without retitling.
func copyValue(v any) any {
	switch val := v.(type) {
	case *document.Object:
		dst := document.NewObject()
		for _, pair := range val.Pairs() {
			dst.Set(pair.Key, copyValue(pair.Value))
		}
		return dst
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = copyValue(item)
		}
		return out
	default:
		return val
	}
}

// childPath joins issue path segments with dots, matching the issue
// paths reported elsewhere in the pipeline.
func childPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

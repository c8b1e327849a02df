package normalizer

import (
	"fmt"

	"github.com/erraggy/tsreqgen/document"
)

// markerSchema builds the opaque leaf substituted for a cyclic edge. The
// type generator passes tsType hints through verbatim, so the marker
// types as an unconstrained any.
func markerSchema() *document.Object {
	return document.NewObject().Set("tsType", "any")
}

// brokenCycle records one replaced cyclic edge for issue reporting
type brokenCycle struct {
	path    string
	message string
}

// breakCycles replaces every cyclic edge in the document so the tree
// becomes finite under direct traversal. A cycle under an "items" key
// becomes an untyped marker; a cycle among the values of a "properties"
// map replaces every sibling property with the marker; any other cycle
// collapses to an empty object. Reentry is decided by object identity,
// never structural equality, so distinct but equal subtrees are not
// conflated into a cycle.
func breakCycles(doc *document.Object) []brokenCycle {
	b := &cycleBreaker{onStack: make(map[*document.Object]bool)}
	b.walkObject(doc, "", "")
	return b.broken
}

type cycleBreaker struct {
	onStack map[*document.Object]bool
	broken  []brokenCycle
}

// walkObject visits obj's fields depth-first. key is the field name obj
// sits under in its parent; the properties rule depends on it. The
// on-stack entry is removed before returning so sibling subtrees never
// see each other as ancestors.
func (b *cycleBreaker) walkObject(obj *document.Object, key, path string) {
	b.onStack[obj] = true
	defer delete(b.onStack, obj)

	for _, pair := range obj.Pairs() {
		if child, ok := pair.Value.(*document.Object); ok && b.onStack[child] {
			if b.replaceCyclicField(obj, key, pair.Key, path) {
				return
			}
			continue
		}
		b.walkValue(pair.Value, pair.Key, childPath(path, pair.Key))
	}
}

func (b *cycleBreaker) walkValue(value any, key, path string) {
	switch v := value.(type) {
	case *document.Object:
		b.walkObject(v, key, path)
	case []any:
		b.walkSlice(v, path)
	}
}

// walkSlice visits sequence values (allOf, oneOf, anyOf, and the like).
// Cyclic elements collapse to empty objects.
func (b *cycleBreaker) walkSlice(seq []any, path string) {
	for i, item := range seq {
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		switch v := item.(type) {
		case *document.Object:
			if b.onStack[v] {
				seq[i] = document.NewObject()
				b.broken = append(b.broken, brokenCycle{
					path:    itemPath,
					message: "Reference cycle collapsed to an empty object",
				})
				continue
			}
			b.walkObject(v, "", itemPath)
		case []any:
			b.walkSlice(v, itemPath)
		}
	}
}

// replaceCyclicField substitutes the cyclic value at obj[field]. The
// return reports whether the whole object was rewritten, which ends the
// caller's iteration. A field literally named "items" takes the items
// rule even inside a properties map.
func (b *cycleBreaker) replaceCyclicField(obj *document.Object, objKey, field, path string) bool {
	switch {
	case field == "items":
		obj.Set("items", markerSchema())
		b.broken = append(b.broken, brokenCycle{
			path:    childPath(path, field),
			message: "Reference cycle under 'items' replaced with an untyped marker",
		})
		return false
	case objKey == "properties":
		for _, sibling := range obj.Keys() {
			obj.Set(sibling, markerSchema())
		}
		b.broken = append(b.broken, brokenCycle{
			path:    childPath(path, field),
			message: "Reference cycle among sibling properties; every property replaced with an untyped marker",
		})
		return true
	default:
		obj.Set(field, document.NewObject())
		b.broken = append(b.broken, brokenCycle{
			path:    childPath(path, field),
			message: "Reference cycle collapsed to an empty object",
		})
		return false
	}
}

// childPath joins issue path segments with dots, matching the converter's
// issue paths.
func childPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

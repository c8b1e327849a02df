package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/erraggy/tsreqgen/document"
	"github.com/erraggy/tsreqgen/generrors"
)

// RefResolver resolves JSON pointer references ($ref) within a single
// document tree. Only document-local references of the form "#/path/to/node"
// are supported.
//
// Two modes are available. Get and Has look up individual references without
// modifying the document, for callers that resolve lazily. Dereference
// rewrites the whole tree in place, replacing every reference node with the
// node it points to. Replacement installs the target node itself rather than
// a copy, so a reference cycle in the source becomes a pointer cycle in the
// tree. Downstream traversals must detect repeats by pointer identity.
type RefResolver struct{}

// NewRefResolver creates a new RefResolver
func NewRefResolver() *RefResolver {
	return &RefResolver{}
}

// Get resolves a single reference against doc and returns the target node
// without modifying the document. The empty pointer ("#" or "#/") resolves
// to doc itself. The returned node may itself be a reference node; callers
// resolving lazily follow such chains themselves.
func (r *RefResolver) Get(doc *document.Object, ref string) (any, error) {
	if !strings.HasPrefix(ref, "#") {
		return nil, &generrors.ReferenceError{
			Ref:     ref,
			Message: "only document-local references are supported",
		}
	}
	pointer := strings.TrimPrefix(ref, "#")
	if pointer == "" || pointer == "/" {
		return doc, nil
	}

	parts := strings.Split(strings.TrimPrefix(pointer, "/"), "/")
	var current any = doc
	for _, part := range parts {
		part = unescapeJSONPointer(part)
		switch node := current.(type) {
		case *document.Object:
			v, ok := node.Get(part)
			if !ok {
				return nil, &generrors.ReferenceError{
					Ref:     ref,
					Message: fmt.Sprintf("reference not found (missing key: %s)", part),
				}
			}
			current = v
		case []any:
			idx, err := strconv.Atoi(part)
			if err != nil {
				return nil, &generrors.ReferenceError{
					Ref:     ref,
					Message: fmt.Sprintf("invalid array index %q", part),
				}
			}
			if idx < 0 || idx >= len(node) {
				return nil, &generrors.ReferenceError{
					Ref:     ref,
					Message: fmt.Sprintf("array index %d out of bounds (length %d)", idx, len(node)),
				}
			}
			current = node[idx]
		default:
			return nil, &generrors.ReferenceError{
				Ref:     ref,
				Message: fmt.Sprintf("cannot traverse into %T", current),
			}
		}
	}
	return current, nil
}

// Has reports whether ref resolves to a node in doc
func (r *RefResolver) Has(doc *document.Object, ref string) bool {
	_, err := r.Get(doc, ref)
	return err == nil
}

// Dereference replaces every reference node in doc with its target, in
// place. A reference node is any mapping carrying a "$ref" string key;
// sibling keys are discarded per JSON Reference semantics. Chains of
// references are followed to their final concrete target. A chain that
// loops back on itself has no concrete target and fails with a circular
// reference error; cycles that pass through concrete nodes (a schema whose
// properties reference the schema itself) materialize as pointer cycles
// and succeed.
func (r *RefResolver) Dereference(doc *document.Object) error {
	d := &dereferencer{
		resolver: r,
		root:     doc,
		seen:     make(map[*document.Object]bool),
	}
	return d.walk(doc)
}

type dereferencer struct {
	resolver *RefResolver
	root     *document.Object
	// seen tracks objects whose children are already rewritten, so shared
	// targets and pointer cycles are each processed once
	seen map[*document.Object]bool
	// chain tracks reference strings on the current resolution path
	chain map[string]bool
}

func (d *dereferencer) walk(node any) error {
	switch v := node.(type) {
	case *document.Object:
		if d.seen[v] {
			return nil
		}
		d.seen[v] = true
		for _, key := range v.Keys() {
			child, _ := v.Get(key)
			if ref, ok := refTarget(child); ok {
				target, err := d.resolve(ref)
				if err != nil {
					return err
				}
				v.Set(key, target)
				child = target
			}
			if err := d.walk(child); err != nil {
				return err
			}
		}
	case []any:
		for i, item := range v {
			if ref, ok := refTarget(item); ok {
				target, err := d.resolve(ref)
				if err != nil {
					return err
				}
				v[i] = target
				item = target
			}
			if err := d.walk(item); err != nil {
				return err
			}
		}
	}
	return nil
}

// resolve follows ref through any chain of reference nodes to a concrete target
func (d *dereferencer) resolve(ref string) (any, error) {
	if d.chain[ref] {
		return nil, &generrors.ReferenceError{
			Ref:        ref,
			IsCircular: true,
			Message:    "reference chain loops back on itself",
		}
	}
	target, err := d.resolver.Get(d.root, ref)
	if err != nil {
		return nil, err
	}
	next, ok := refTarget(target)
	if !ok {
		return target, nil
	}
	if d.chain == nil {
		d.chain = make(map[string]bool)
	}
	d.chain[ref] = true
	resolved, err := d.resolve(next)
	delete(d.chain, ref)
	return resolved, err
}

// refTarget reports whether node is a reference node and returns its pointer
func refTarget(node any) (string, bool) {
	obj, ok := node.(*document.Object)
	if !ok {
		return "", false
	}
	return obj.Str("$ref")
}

// unescapeJSONPointer decodes RFC 6901 escape sequences in a pointer token.
// "~1" decodes to "/" and "~0" to "~", in that order.
func unescapeJSONPointer(s string) string {
	s = strings.ReplaceAll(s, "~1", "/")
	return strings.ReplaceAll(s, "~0", "~")
}

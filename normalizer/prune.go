package normalizer

import (
	"fmt"

	"github.com/erraggy/tsreqgen/document"
)

// prunedRef records one deleted dangling reference for issue reporting
type prunedRef struct {
	path string
	ref  string
}

// pruneDanglingRefs deletes every $ref whose target is missing from the
// document, turning the node into a plain object that later stages skip.
// This runs on Swagger 2.0 input only, before conversion; OpenAPI 3.x
// input gets no such leniency and fails resolution instead.
func pruneDanglingRefs(doc *document.Object, resolver Resolver) []prunedRef {
	p := &pruner{doc: doc, resolver: resolver}
	p.walk(doc, "")
	return p.pruned
}

type pruner struct {
	doc      *document.Object
	resolver Resolver
	pruned   []prunedRef
}

func (p *pruner) walk(node any, path string) {
	switch n := node.(type) {
	case *document.Object:
		if ref, ok := n.Str("$ref"); ok && !p.resolver.Has(p.doc, ref) {
			n.Delete("$ref")
			p.pruned = append(p.pruned, prunedRef{path: path, ref: ref})
			// remaining keys were reference siblings; nothing to visit
			return
		}
		for _, pair := range n.Pairs() {
			p.walk(pair.Value, childPath(path, pair.Key))
		}
	case []any:
		for i, item := range n {
			p.walk(item, fmt.Sprintf("%s[%d]", path, i))
		}
	}
}

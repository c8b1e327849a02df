package converter

import (
	"strings"

	"github.com/erraggy/tsreqgen/document"
)

// refMapping maps a v2 reference prefix to its v3 location
type refMapping struct {
	from string
	to   string
}

var oas2ToOAS3Mappings = []refMapping{
	{from: "#/definitions/", to: "#/components/schemas/"},
	{from: "#/parameters/", to: "#/components/parameters/"},
	{from: "#/responses/", to: "#/components/responses/"},
	{from: "#/securityDefinitions/", to: "#/components/securitySchemes/"},
}

// rewriteRef translates a single v2 reference to its v3 form. References
// that match no known prefix, including external ones, pass through as-is.
func rewriteRef(ref string) string {
	if !strings.HasPrefix(ref, "#/") {
		return ref
	}
	for _, m := range oas2ToOAS3Mappings {
		if strings.HasPrefix(ref, m.from) {
			return m.to + ref[len(m.from):]
		}
	}
	return ref
}

// rewriteRefs rewrites every $ref in the tree in place
func rewriteRefs(doc *document.Object) {
	document.Walk(doc, func(_ string, node any) document.Action {
		if obj, ok := node.(*document.Object); ok {
			if ref, ok := obj.Str("$ref"); ok {
				obj.Set("$ref", rewriteRef(ref))
			}
		}
		return document.Continue
	})
}

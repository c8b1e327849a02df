package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/tsreqgen/document"
)

// normalizeSchemas runs full normalization over a v3 document declaring
// only component schemas
func normalizeSchemas(t *testing.T, schemas string) *Result {
	t.Helper()
	src := "openapi: 3.0.3\ninfo:\n  title: t\n  version: \"1\"\npaths: {}\ncomponents:\n  schemas:\n" + schemas
	result, err := New().Normalize(parse(t, src))
	require.NoError(t, err)
	return result
}

// assertMarker checks that obj is the opaque cycle marker
func assertMarker(t *testing.T, obj *document.Object) {
	t.Helper()
	assert.Equal(t, 1, obj.Len())
	assert.Equal(t, "any", mustStr(t, obj, "tsType"))
}

func TestBreakCyclesItems(t *testing.T) {
	result := normalizeSchemas(t, `    Tree:
      type: array
      items:
        $ref: "#/components/schemas/Tree"
`)
	assert.Equal(t, 1, result.BrokenCycles)

	tree := getObj(t, result.Document, "components", "schemas", "Tree")
	assert.Equal(t, "array", mustStr(t, tree, "type"))
	assertMarker(t, getObj(t, tree, "items"))

	require.Len(t, result.Issues, 1)
	assert.Equal(t, "components.schemas.Tree.items", result.Issues[0].Path)
	assert.Equal(t, SeverityInfo, result.Issues[0].Severity)
}

func TestBreakCyclesProperties(t *testing.T) {
	result := normalizeSchemas(t, `    Node:
      type: object
      properties:
        name:
          type: string
        child:
          $ref: "#/components/schemas/Node"
`)
	assert.Equal(t, 1, result.BrokenCycles)

	props := getObj(t, result.Document, "components", "schemas", "Node", "properties")
	assertMarker(t, getObj(t, props, "child"))
	// the properties rule wipes every sibling, cyclic or not
	assertMarker(t, getObj(t, props, "name"))
}

func TestBreakCyclesDeepNestingBesideCycle(t *testing.T) {
	result := normalizeSchemas(t, `    Outer:
      type: object
      properties:
        safe:
          type: object
          properties:
            leaf:
              type: string
        list:
          type: array
          items:
            $ref: "#/components/schemas/Outer"
`)
	assert.Equal(t, 1, result.BrokenCycles)

	outer := getObj(t, result.Document, "components", "schemas", "Outer")
	// the cyclic edge sits under the list's items key, so only that edge
	// is replaced; the acyclic sibling branch stays intact
	assertMarker(t, getObj(t, outer, "properties", "list", "items"))
	leaf := getObj(t, outer, "properties", "safe", "properties", "leaf")
	assert.Equal(t, "string", mustStr(t, leaf, "type"))
}

func TestBreakCyclesSharedSubtreeIsNotACycle(t *testing.T) {
	result := normalizeSchemas(t, `    Address:
      type: object
      properties:
        street:
          type: string
    Person:
      type: object
      properties:
        home:
          $ref: "#/components/schemas/Address"
        work:
          $ref: "#/components/schemas/Address"
`)
	assert.Zero(t, result.BrokenCycles)

	props := getObj(t, result.Document, "components", "schemas", "Person", "properties")
	home := getObj(t, props, "home")
	assert.Same(t, home, getObj(t, props, "work"))
	assert.Equal(t, "string", mustStr(t, getObj(t, home, "properties", "street"), "type"))
}

func TestBreakCyclesSequenceElement(t *testing.T) {
	result := normalizeSchemas(t, `    Base:
      allOf:
        - $ref: "#/components/schemas/Base"
        - type: object
          properties:
            id:
              type: string
`)
	assert.Equal(t, 1, result.BrokenCycles)

	base := getObj(t, result.Document, "components", "schemas", "Base")
	elements, ok := base.Slice("allOf")
	require.True(t, ok)
	require.Len(t, elements, 2)
	assert.Zero(t, elements[0].(*document.Object).Len(), "cyclic sequence element collapses to an empty object")
	id := getObj(t, elements[1].(*document.Object), "properties", "id")
	assert.Equal(t, "string", mustStr(t, id, "type"))
}

func TestBreakCyclesMutualRecursion(t *testing.T) {
	result := normalizeSchemas(t, `    A:
      type: object
      properties:
        b:
          $ref: "#/components/schemas/B"
    B:
      type: object
      properties:
        a:
          $ref: "#/components/schemas/A"
`)
	assert.Equal(t, 1, result.BrokenCycles)

	// walking A enters B, whose property refers back to the on-stack A,
	// so B's properties are wiped; A itself keeps its reference to B
	a := getObj(t, result.Document, "components", "schemas", "A")
	b := getObj(t, a, "properties", "b")
	assert.Same(t, getObj(t, result.Document, "components", "schemas", "B"), b)
	assertMarker(t, getObj(t, b, "properties", "a"))
}

func TestBreakCyclesPropertyNamedItems(t *testing.T) {
	// a property literally named "items" takes the items rule, replacing
	// only itself instead of wiping its siblings
	result := normalizeSchemas(t, `    Catalog:
      type: object
      properties:
        label:
          type: string
        items:
          $ref: "#/components/schemas/Catalog"
`)
	assert.Equal(t, 1, result.BrokenCycles)

	props := getObj(t, result.Document, "components", "schemas", "Catalog", "properties")
	assertMarker(t, getObj(t, props, "items"))
	assert.Equal(t, "string", mustStr(t, getObj(t, props, "label"), "type"))
}

func TestBreakCyclesSelfReferenceViaOtherKey(t *testing.T) {
	result := normalizeSchemas(t, `    Wrapper:
      type: object
      additionalProperties:
        $ref: "#/components/schemas/Wrapper"
`)
	assert.Equal(t, 1, result.BrokenCycles)

	wrapper := getObj(t, result.Document, "components", "schemas", "Wrapper")
	assert.Zero(t, getObj(t, wrapper, "additionalProperties").Len(),
		"cycles outside items and properties collapse to empty objects")
}

func TestMarkerSchema(t *testing.T) {
	assertMarker(t, markerSchema())
}

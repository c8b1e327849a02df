package document

import "fmt"

// Action controls the walk's behavior after visiting a node.
type Action int

const (
	// Continue continues walking normally, visiting children and siblings.
	Continue Action = iota

	// SkipChildren skips all children of the current node but continues
	// with siblings.
	SkipChildren

	// Stop stops the walk immediately. No more nodes will be visited.
	Stop
)

// VisitFunc is called for every node in the tree. path is the JSON path
// to the node ("$" for the root, "$.paths./pets.get" and
// "$.parameters[0]" for children).
type VisitFunc func(path string, node any) Action

// Walk performs a depth-first traversal of a document tree, visiting
// mapping values in insertion order. Objects already on the recursion
// stack are not re-entered, so walking a tree with resolved circular
// references terminates.
func Walk(root any, visit VisitFunc) {
	onStack := make(map[*Object]bool)
	walk(root, "$", visit, onStack)
}

func walk(node any, path string, visit VisitFunc, onStack map[*Object]bool) Action {
	if obj, ok := node.(*Object); ok && onStack[obj] {
		return Continue
	}

	switch action := visit(path, node); action {
	case Stop:
		return Stop
	case SkipChildren:
		return Continue
	}

	switch n := node.(type) {
	case *Object:
		onStack[n] = true
		for _, p := range n.Pairs() {
			if walk(p.Value, path+"."+p.Key, visit, onStack) == Stop {
				delete(onStack, n)
				return Stop
			}
		}
		delete(onStack, n)
	case []any:
		for i, item := range n {
			if walk(item, fmt.Sprintf("%s[%d]", path, i), visit, onStack) == Stop {
				return Stop
			}
		}
	}
	return Continue
}

// Package document provides the loose, insertion-ordered tree that every
// pipeline stage operates on.
//
// OpenAPI processing is order-sensitive: path declaration order, content
// type order, and property order all influence generated output. Plain Go
// maps cannot preserve declaration order, so mapping nodes are represented
// by [Object], an insertion-ordered string-keyed map. Sequences are plain
// []any slices and scalars are Go primitives (string, bool, int64,
// float64, nil).
//
// Trees are built from yaml.Node via [Build], which accepts both YAML and
// JSON sources and records source line information on each mapping node.
package document

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Object is an insertion-ordered mapping node. The zero value is not
// usable; construct with NewObject or Build.
//
// Object identity (pointer equality) is meaningful: after reference
// resolution the same *Object may appear at multiple positions in a
// tree, and cycle detection relies on pointer identity rather than
// structural equality.
type Object struct {
	om   *orderedmap.OrderedMap[string, any]
	line int
	col  int
}

// Pair is one key/value entry of an Object.
type Pair struct {
	Key   string
	Value any
}

// NewObject returns an empty mapping node.
func NewObject() *Object {
	return &Object{om: orderedmap.New[string, any]()}
}

// Set inserts or updates key. Updating an existing key keeps its original
// position. Returns the receiver for chaining.
func (o *Object) Set(key string, value any) *Object {
	o.om.Set(key, value)
	return o
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	return o.om.Get(key)
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.om.Get(key)
	return ok
}

// Delete removes key and reports whether it was present.
func (o *Object) Delete(key string) bool {
	_, present := o.om.Delete(key)
	return present
}

// Len returns the number of entries.
func (o *Object) Len() int {
	return o.om.Len()
}

// Keys returns the keys in insertion order. The returned slice is a
// snapshot, safe to hold across mutations.
func (o *Object) Keys() []string {
	keys := make([]string, 0, o.om.Len())
	for p := o.om.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	return keys
}

// Pairs returns the entries in insertion order. The returned slice is a
// snapshot; mutating values via Set while ranging over it is safe.
func (o *Object) Pairs() []Pair {
	pairs := make([]Pair, 0, o.om.Len())
	for p := o.om.Oldest(); p != nil; p = p.Next() {
		pairs = append(pairs, Pair{Key: p.Key, Value: p.Value})
	}
	return pairs
}

// Str returns the value under key as a string.
func (o *Object) Str(key string) (string, bool) {
	v, ok := o.om.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Bool returns the value under key as a bool.
func (o *Object) Bool(key string) (bool, bool) {
	v, ok := o.om.Get(key)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// Obj returns the value under key as an Object.
func (o *Object) Obj(key string) (*Object, bool) {
	v, ok := o.om.Get(key)
	if !ok {
		return nil, false
	}
	obj, ok := v.(*Object)
	return obj, ok
}

// Slice returns the value under key as a sequence.
func (o *Object) Slice(key string) ([]any, bool) {
	v, ok := o.om.Get(key)
	if !ok {
		return nil, false
	}
	s, ok := v.([]any)
	return s, ok
}

// Line returns the 1-based source line of the mapping, or 0 when the
// Object was constructed programmatically.
func (o *Object) Line() int {
	return o.line
}

// Column returns the 1-based source column of the mapping, or 0 when the
// Object was constructed programmatically.
func (o *Object) Column() int {
	return o.col
}

// SetLocation records the source position of the mapping.
func (o *Object) SetLocation(line, col int) {
	o.line = line
	o.col = col
}

// MarshalJSON encodes the mapping in insertion order. Nested Objects
// marshal recursively, so a whole document tree serializes to ordered
// JSON.
func (o *Object) MarshalJSON() ([]byte, error) {
	return o.om.MarshalJSON()
}

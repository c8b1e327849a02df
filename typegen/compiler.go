package typegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/erraggy/tsreqgen/document"
	"github.com/erraggy/tsreqgen/internal/stringutil"
	"github.com/erraggy/tsreqgen/internal/tsformat"
)

// Options controls one compilation.
type Options struct {
	// Format runs the canonical formatter over the output
	Format bool
	// AdditionalProperties turns undeclared-property inference on:
	// object schemas without an explicit additionalProperties key gain
	// a string index signature
	AdditionalProperties bool
	// DeclareExternallyReferenced controls residual $ref nodes. True
	// keeps the output self-contained by degrading them to any; false
	// emits the target's terminal name and leaves its declaration to
	// the caller.
	DeclareExternallyReferenced bool
}

// Compiler emits TypeScript declarations from schema trees. Titled
// schemas hoist named declarations referenced from their use sites;
// untitled schemas inline.
type Compiler struct {
	// Formats maps primitive type and format pairs to emitted types.
	// Defaults to DefaultFormats().
	Formats FormatMap
}

// New creates a Compiler with default settings.
func New() *Compiler {
	return &Compiler{}
}

func (c *Compiler) formats() FormatMap {
	if c.Formats != nil {
		return c.Formats
	}
	return DefaultFormats()
}

// Compile renders the declarations for schema. The root declaration
// takes the schema's title when present, name otherwise. Every
// declaration carries an export marker; callers embedding declarations
// in function scope strip them.
func (c *Compiler) Compile(schema *document.Object, name string, opts Options) (string, error) {
	if schema == nil {
		return "", compileErr("", "schema must be a mapping node")
	}
	rootName := name
	if title, ok := schema.Str("title"); ok && title != "" {
		rootName = title
	}
	if rootName == "" {
		return "", compileErr("", "root type name is required")
	}

	e := &emitter{
		formats:  c.formats(),
		opts:     opts,
		declared: make(map[string]bool),
		onStack:  make(map[*document.Object]bool),
	}
	if _, err := e.declare(schema, rootName, ""); err != nil {
		return "", err
	}

	texts := make([]string, len(e.decls))
	for i, d := range e.decls {
		texts[i] = d.text
	}
	out := strings.Join(texts, "\n\n") + "\n"
	if opts.Format {
		return tsformat.New().Format(out)
	}
	return out, nil
}

type declaration struct {
	name string
	text string
}

type emitter struct {
	formats  FormatMap
	opts     Options
	decls    []declaration
	declared map[string]bool
	onStack  map[*document.Object]bool
}

// declare reserves a named declaration for schema, fills it in, and
// returns the name. A name already declared returns immediately, which
// also terminates reference cycles between titled schemas. Declarations
// land in first-use order with parents before children.
func (e *emitter) declare(schema *document.Object, name, pointer string) (string, error) {
	if e.declared[name] {
		return name, nil
	}
	e.declared[name] = true
	idx := len(e.decls)
	e.decls = append(e.decls, declaration{name: name})

	v, err := classify(schema, pointer)
	if err != nil {
		return "", err
	}
	if obj, ok := v.(objectVariant); ok && len(obj.compositions) == 0 {
		body, err := e.interfaceBody(obj, pointer)
		if err != nil {
			return "", err
		}
		e.decls[idx].text = "export interface " + name + " " + body
		return name, nil
	}

	expr, err := e.variantExpr(v, pointer)
	if err != nil {
		return "", err
	}
	e.decls[idx].text = "export type " + name + " = " + expr + ";"
	return name, nil
}

// typeExpr returns the expression for schema, hoisting a declaration
// when the schema is titled.
func (e *emitter) typeExpr(schema *document.Object, pointer string) (string, error) {
	if title, ok := schema.Str("title"); ok && title != "" {
		return e.declare(schema, title, pointer)
	}
	if e.onStack[schema] {
		return "", compileErr(pointer, "schema graph contains a cycle")
	}
	e.onStack[schema] = true
	defer delete(e.onStack, schema)

	v, err := classify(schema, pointer)
	if err != nil {
		return "", err
	}
	return e.variantExpr(v, pointer)
}

// variantExpr renders a classified schema as an inline expression. The
// switch is total over the variant set.
func (e *emitter) variantExpr(v schemaVariant, pointer string) (string, error) {
	switch v := v.(type) {
	case anyVariant:
		if v.hint != "" {
			return v.hint, nil
		}
		return "any", nil
	case refVariant:
		if e.opts.DeclareExternallyReferenced {
			return "any", nil
		}
		return refName(v.ref), nil
	case primitiveVariant:
		return e.primitiveExpr(v, pointer)
	case objectVariant:
		return e.objectExpr(v, pointer)
	case arrayVariant:
		return e.arrayExpr(v, pointer)
	case compositeVariant:
		return e.compositeExpr(v.groups, pointer)
	default:
		return "", compileErr(pointer, fmt.Sprintf("unhandled schema variant %T", v))
	}
}

func (e *emitter) primitiveExpr(v primitiveVariant, pointer string) (string, error) {
	if len(v.enum) > 0 {
		literals := make([]string, len(v.enum))
		for i, member := range v.enum {
			lit, err := enumLiteral(member, fmt.Sprintf("%s/enum/%d", pointer, i))
			if err != nil {
				return "", err
			}
			literals[i] = lit
		}
		return strings.Join(literals, " | "), nil
	}
	if v.schemaType == "null" {
		return "null", nil
	}
	if t := e.formats.Type(v.schemaType, v.format); t != "" {
		return t, nil
	}
	return "any", nil
}

func (e *emitter) objectExpr(v objectVariant, pointer string) (string, error) {
	members, err := e.objectMembers(v, pointer)
	if err != nil {
		return "", err
	}
	own := "{}"
	if len(members) > 0 {
		own = "{ " + strings.Join(members, "; ") + " }"
	}
	if len(v.compositions) == 0 {
		return own, nil
	}

	var parts []string
	if len(members) > 0 {
		parts = append(parts, own)
	}
	for _, g := range v.compositions {
		part, err := e.groupExpr(g, pointer, true)
		if err != nil {
			return "", err
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, " & "), nil
}

// interfaceBody renders the multi-line member block used for hoisted
// interface declarations.
func (e *emitter) interfaceBody(v objectVariant, pointer string) (string, error) {
	members, err := e.objectMembers(v, pointer)
	if err != nil {
		return "", err
	}
	if len(members) == 0 {
		return "{}", nil
	}
	var b strings.Builder
	b.WriteString("{\n")
	for _, m := range members {
		b.WriteString("  ")
		b.WriteString(m)
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String(), nil
}

func (e *emitter) objectMembers(v objectVariant, pointer string) ([]string, error) {
	required := make(map[string]bool, len(v.required))
	for _, r := range v.required {
		if name, ok := r.(string); ok {
			required[name] = true
		}
	}

	var members []string
	if v.properties != nil {
		for _, pair := range v.properties.Pairs() {
			propPointer := fmt.Sprintf("%s/properties/%s", pointer, pair.Key)
			prop, ok := pair.Value.(*document.Object)
			if !ok {
				return nil, compileErr(propPointer,
					fmt.Sprintf("property schema must be a mapping, got %T", pair.Value))
			}
			expr, err := e.typeExpr(prop, propPointer)
			if err != nil {
				return nil, err
			}
			opt := "?"
			if required[pair.Key] {
				opt = ""
			}
			members = append(members, fmt.Sprintf("%s%s: %s", propertyName(pair.Key), opt, expr))
		}
	}

	index, err := e.indexSignature(v, pointer)
	if err != nil {
		return nil, err
	}
	if index != "" {
		members = append(members, index)
	}
	return members, nil
}

func (e *emitter) indexSignature(v objectVariant, pointer string) (string, error) {
	if !v.hasAdditional {
		if e.opts.AdditionalProperties {
			return "[k: string]: any", nil
		}
		return "", nil
	}
	switch additional := v.additional.(type) {
	case bool:
		if additional {
			return "[k: string]: any", nil
		}
		return "", nil
	case *document.Object:
		expr, err := e.typeExpr(additional, pointer+"/additionalProperties")
		if err != nil {
			return "", err
		}
		return "[k: string]: " + expr, nil
	default:
		return "", compileErr(pointer+"/additionalProperties",
			fmt.Sprintf("additionalProperties must be a boolean or schema, got %T", v.additional))
	}
}

func (e *emitter) arrayExpr(v arrayVariant, pointer string) (string, error) {
	switch items := v.items.(type) {
	case nil:
		return "any[]", nil
	case *document.Object:
		expr, err := e.typeExpr(items, pointer+"/items")
		if err != nil {
			return "", err
		}
		if needsParens(expr) {
			return "(" + expr + ")[]", nil
		}
		return expr + "[]", nil
	case []any:
		elems := make([]string, len(items))
		for i, item := range items {
			itemPointer := fmt.Sprintf("%s/items/%d", pointer, i)
			sub, ok := item.(*document.Object)
			if !ok {
				return "", compileErr(itemPointer, fmt.Sprintf("tuple item must be a mapping, got %T", item))
			}
			expr, err := e.typeExpr(sub, itemPointer)
			if err != nil {
				return "", err
			}
			elems[i] = expr
		}
		return "[" + strings.Join(elems, ", ") + "]", nil
	default:
		return "", compileErr(pointer+"/items",
			fmt.Sprintf("items must be a schema or tuple, got %T", v.items))
	}
}

func (e *emitter) compositeExpr(groups []compositionGroup, pointer string) (string, error) {
	if len(groups) == 1 {
		return e.groupExpr(groups[0], pointer, false)
	}
	parts := make([]string, len(groups))
	for i, g := range groups {
		part, err := e.groupExpr(g, pointer, true)
		if err != nil {
			return "", err
		}
		parts[i] = part
	}
	return strings.Join(parts, " & "), nil
}

// groupExpr renders one composition group. wrap parenthesizes a
// multi-branch union so it binds correctly inside an intersection.
func (e *emitter) groupExpr(g compositionGroup, pointer string, wrap bool) (string, error) {
	exprs := make([]string, len(g.branches))
	for i, branch := range g.branches {
		branchPointer := fmt.Sprintf("%s/%s/%d", pointer, g.key, i)
		sub, ok := branch.(*document.Object)
		if !ok {
			return "", compileErr(branchPointer,
				fmt.Sprintf("composition branch must be a mapping, got %T", branch))
		}
		expr, err := e.typeExpr(sub, branchPointer)
		if err != nil {
			return "", err
		}
		exprs[i] = expr
	}
	joined := strings.Join(exprs, " "+g.op+" ")
	if wrap && len(exprs) > 1 && g.op == "|" {
		return "(" + joined + ")", nil
	}
	return joined, nil
}

// needsParens reports whether an item expression must be wrapped before
// the [] suffix. Names and literal types bind tighter already.
func needsParens(expr string) bool {
	return strings.ContainsAny(expr, " |&")
}

func refName(ref string) string {
	seg := ref
	if i := strings.LastIndexByte(ref, '/'); i >= 0 {
		seg = ref[i+1:]
	}
	return stringutil.TypeName(seg)
}

// propertyName renders a property key, quoting it when it cannot appear
// bare.
func propertyName(name string) string {
	if stringutil.IsIdentifier(name) {
		return name
	}
	return quoteSingle(name)
}

func quoteSingle(s string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		"'", "\\'",
		"\n", "\\n",
		"\r", "\\r",
		"\t", "\\t",
	)
	return "'" + r.Replace(s) + "'"
}

func enumLiteral(v any, pointer string) (string, error) {
	switch val := v.(type) {
	case string:
		return quoteSingle(val), nil
	case bool:
		return strconv.FormatBool(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case int:
		return strconv.Itoa(val), nil
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64), nil
	case nil:
		return "null", nil
	default:
		return "", compileErr(pointer, fmt.Sprintf("unsupported enum member of type %T", v))
	}
}

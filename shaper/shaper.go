package shaper

import (
	"github.com/erraggy/tsreqgen/document"
	"github.com/erraggy/tsreqgen/extractor"
	"github.com/erraggy/tsreqgen/internal/issues"
	"github.com/erraggy/tsreqgen/internal/severity"
	"github.com/erraggy/tsreqgen/internal/stringutil"
	"github.com/erraggy/tsreqgen/parser"
	"github.com/erraggy/tsreqgen/typegen"
)

// Severity re-exports the severity level type for shaping issues.
type Severity = severity.Severity

// Severity levels for shaping issues.
const (
	SeverityInfo    = severity.SeverityInfo
	SeverityWarning = severity.SeverityWarning
)

// Issue re-exports the issue type carried alongside derived shapes.
type Issue = issues.Issue

// OperationShape carries the derived facts the code synthesizer needs
// for one operation.
type OperationShape struct {
	// RootName is the PascalCase interface name derived from the
	// operationId. Every synthetic nested type name starts with it.
	RootName string
	// HasPathParams, HasQuery, and HasRequestBody are presence checks
	// on the operation's parameter groups and body
	HasPathParams  bool
	HasQuery       bool
	HasRequestBody bool
	// IsSimplePathParams selects individually named scalar arguments
	// over a single structured object: one or two path parameters, all
	// of them required. Three or more, or any optional path parameter,
	// keeps the structured form.
	IsSimplePathParams bool
	// HasRequiredQuery reports at least one required query parameter
	HasRequiredQuery bool
	// HasRequiredBody reports a body schema whose required list names
	// at least one property
	HasRequiredBody bool
	// PathArgs describes the named-argument call shape, one entry per
	// path parameter in required-first order
	PathArgs []PathArg
	// Helper is the synthesized object schema with Body, Response,
	// Params, and PathParams members, retitled and hinted for the type
	// compiler
	Helper *document.Object
}

// PathArg is one named argument of the simple call shape.
type PathArg struct {
	// Name is the camel-cased argument identifier
	Name string
	// Placeholder is the {name} key the argument substitutes in the URL
	Placeholder string
	// Type is the emitted TypeScript type from the format table
	Type string
	// Required mirrors the parameter's required flag
	Required bool
}

// Shaper derives operation shapes. The zero value uses the default
// format table and resolver.
type Shaper struct {
	// Formats maps primitive type and format pairs to emitted
	// TypeScript types. Defaults to typegen.DefaultFormats().
	Formats typegen.FormatMap
	// Resolver inlines schema references left by lazy normalization.
	// Defaults to parser.NewRefResolver().
	Resolver extractor.RefGetter
	// Logger receives debug output when set
	Logger parser.Logger
}

// New creates a Shaper with default settings.
func New() *Shaper {
	return &Shaper{}
}

func (s *Shaper) formats() typegen.FormatMap {
	if s.Formats != nil {
		return s.Formats
	}
	return typegen.DefaultFormats()
}

func (s *Shaper) resolver() extractor.RefGetter {
	if s.Resolver != nil {
		return s.Resolver
	}
	return parser.NewRefResolver()
}

func (s *Shaper) log() parser.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return parser.NopLogger{}
}

// Shape derives op's shape. doc is the document tree that lazily kept
// references resolve against; fully dereferenced operations never
// consult it, so nil is fine for them. Neither op nor the document is
// modified: the helper schema is built from retitled copies.
func (s *Shaper) Shape(op extractor.Operation, doc *document.Object) (*OperationShape, []Issue) {
	root := stringutil.TypeName(op.OperationID)
	opPath := issues.OperationPath(op.URL, op.Method)
	c := &schemaCopier{
		formats:  s.formats(),
		resolver: s.resolver(),
		doc:      doc,
		refChain: make(map[string]bool),
	}

	// The helper always carries all four members so generated member
	// lookups resolve. Members without a source schema stay empty and
	// type as any; members whose source is present are listed in
	// required so lookups do not pick up an undefined arm.
	props := document.NewObject()
	var required []any

	body := document.NewObject()
	if op.RequestBody != nil {
		if schema, ok := op.RequestBody.Obj("schema"); ok {
			body = c.copySchema(schema, root+"$Body", childPath(opPath, "requestBody"))
		}
		required = append(required, "Body")
	}
	props.Set("Body", body)

	response := document.NewObject()
	if op.Response != nil {
		if schema, ok := op.Response.Obj("schema"); ok {
			response = c.copySchema(schema, root+"$Response", childPath(opPath, "responses.200"))
		}
		required = append(required, "Response")
	}
	props.Set("Response", response)

	queryMember := document.NewObject()
	if len(op.QueryParams) > 0 {
		queryMember = c.paramsSchema(op.QueryParams, root+"$Params", childPath(opPath, "parameters"))
		required = append(required, "Params")
	}
	props.Set("Params", queryMember)

	pathMember := document.NewObject()
	if len(op.PathParams) > 0 {
		pathMember = c.paramsSchema(op.PathParams, root+"$PathParams", childPath(opPath, "parameters"))
		required = append(required, "PathParams")
	}
	props.Set("PathParams", pathMember)

	helper := document.NewObject().
		Set("title", root).
		Set("type", "object").
		Set("properties", props)
	if len(required) > 0 {
		helper.Set("required", required)
	}

	shape := &OperationShape{
		RootName:           root,
		HasPathParams:      len(op.PathParams) > 0,
		HasQuery:           len(op.QueryParams) > 0,
		HasRequestBody:     op.RequestBody != nil,
		IsSimplePathParams: isSimplePathParams(op.PathParams),
		HasRequiredQuery:   hasRequiredQuery(op.QueryParams),
		HasRequiredBody:    hasRequiredProperties(body),
		PathArgs:           pathArgs(op.PathParams, pathMember, s.formats()),
		Helper:             helper,
	}

	s.log().Debug("derived operation shape",
		"operation", op.OperationID,
		"simplePathParams", shape.IsSimplePathParams,
		"requiredQuery", shape.HasRequiredQuery,
		"requiredBody", shape.HasRequiredBody)

	return shape, c.issues
}

// isSimplePathParams reports whether the operation qualifies for named
// scalar arguments: one or two path parameters, every one of them
// required. The cutoff is part of the generated call signature, so it
// moves only with a breaking release.
func isSimplePathParams(params []extractor.Parameter) bool {
	if len(params) == 0 || len(params) > 2 {
		return false
	}
	for _, p := range params {
		if !p.Required {
			return false
		}
	}
	return true
}

func hasRequiredQuery(params []extractor.Parameter) bool {
	for _, p := range params {
		if p.Required {
			return true
		}
	}
	return false
}

// hasRequiredProperties reports whether the schema's required list
// names at least one property.
func hasRequiredProperties(schema *document.Object) bool {
	req, ok := schema.Slice("required")
	return ok && len(req) > 0
}

// pathArgs maps path parameters to named arguments for the simple call
// shape. Types come from the copied member properties so reference
// inlining and tsType hints are already applied. The required flag
// carries through so an optional parameter types as a union with
// undefined rather than claiming requiredness.
func pathArgs(params []extractor.Parameter, member *document.Object, formats typegen.FormatMap) []PathArg {
	if len(params) == 0 {
		return nil
	}
	props, _ := member.Obj("properties")
	args := make([]PathArg, 0, len(params))
	for _, p := range params {
		argType := ""
		if props != nil {
			if prop, ok := props.Obj(p.Name); ok {
				argType = scalarType(prop, formats)
			}
		}
		if argType == "" {
			argType = "any"
		}
		args = append(args, PathArg{
			Name:        stringutil.CamelCase(p.Name),
			Placeholder: p.Name,
			Type:        argType,
			Required:    p.Required,
		})
	}
	return args
}

// scalarType resolves the argument type for a copied parameter schema.
// A tsType hint wins; otherwise the format table decides. Object and
// array schemas have no scalar form and return "".
func scalarType(schema *document.Object, formats typegen.FormatMap) string {
	if hint, ok := schema.Str("tsType"); ok {
		return hint
	}
	schemaType, _ := schema.Str("type")
	format, _ := schema.Str("format")
	return formats.Type(schemaType, format)
}

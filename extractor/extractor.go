package extractor

import (
	"fmt"
	"sort"

	"github.com/erraggy/tsreqgen/document"
	"github.com/erraggy/tsreqgen/generrors"
	"github.com/erraggy/tsreqgen/internal/httputil"
	"github.com/erraggy/tsreqgen/internal/issues"
	"github.com/erraggy/tsreqgen/internal/severity"
	"github.com/erraggy/tsreqgen/parser"
)

// Issue re-exports the issue type carried on extraction results.
type Issue = issues.Issue

// RefGetter resolves references left in trees normalized with lazy
// resolution. Fully dereferenced trees never consult it.
type RefGetter interface {
	Get(doc *document.Object, ref string) (any, error)
}

var _ RefGetter = (*parser.RefResolver)(nil)

// Operation is the normalized projection of one declared (path, method)
// pair. Parameters are resolved and partitioned; the body and response
// carry the chosen media-type objects from the document tree.
type Operation struct {
	// OperationID names the operation. Empty values survive extraction
	// and fail later at code generation.
	OperationID string
	// Summary and Description carry the operation's documentation
	Summary     string
	Description string
	// Deprecated marks the operation deprecated in the source document
	Deprecated bool
	// Method is the lower-case HTTP method key from the path item
	Method string
	// URL is the path pattern with {name} placeholders
	URL string
	// PathParams holds path parameters sorted required-first; the sort is
	// stable so declaration order breaks ties
	PathParams []Parameter
	// QueryParams holds query parameters in declaration order
	QueryParams []Parameter
	// RequestBody is the chosen request media-type object ({schema: ...}),
	// nil for bodyless operations
	RequestBody *document.Object
	// IsMultipart reports multipart/form-data encoding, declared or
	// inferred from a binary body property
	IsMultipart bool
	// Response is the 200 response's first media-type object in
	// declaration order, nil when the operation declares none
	Response *document.Object
}

// Parameter is one resolved path or query parameter.
type Parameter struct {
	// Name is the parameter name used in paths and query strings
	Name string
	// In is the parameter location, "path" or "query"
	In string
	// Required marks the parameter mandatory
	Required bool
	// Description carries the parameter's documentation
	Description string
	// Schema is the parameter's value schema, nil when undeclared
	Schema *document.Object
}

// Result carries the extracted operations and anything dropped on the way.
type Result struct {
	// Operations lists one entry per declared (path, method) pair, in
	// path declaration order crossed with the configured method order
	Operations []Operation
	// Issues records parameters dropped for unresolvable references
	Issues []Issue
}

// Extractor flattens a normalized document's path map into Operation
// records.
type Extractor struct {
	// Methods is the per-path method iteration order. Defaults to
	// httputil.CanonicalMethods.
	Methods []string
	// Resolver resolves references in lazily-normalized trees. Defaults
	// to parser.NewRefResolver().
	Resolver RefGetter
	// StrictRefs turns unresolvable parameter references into errors
	// instead of silently dropping the parameter.
	StrictRefs bool
	// Logger receives debug output when set
	Logger parser.Logger
}

// New creates an Extractor with default settings.
func New() *Extractor {
	return &Extractor{}
}

func (e *Extractor) methods() []string {
	if len(e.Methods) > 0 {
		return e.Methods
	}
	return httputil.CanonicalMethods
}

func (e *Extractor) resolver() RefGetter {
	if e.Resolver != nil {
		return e.Resolver
	}
	return parser.NewRefResolver()
}

func (e *Extractor) log() parser.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return parser.NopLogger{}
}

// Extract walks the document's paths in declaration order and projects
// every declared method into an Operation. A document without paths
// yields an empty result. The only error condition outside bad input is
// an unresolvable parameter reference under StrictRefs.
func (e *Extractor) Extract(doc *document.Object) (*Result, error) {
	if doc == nil {
		return nil, &generrors.ConfigError{
			Option:  "doc",
			Message: "extraction requires a normalized document",
		}
	}

	result := &Result{}
	paths, ok := doc.Obj("paths")
	if !ok {
		return result, nil
	}

	for _, pair := range paths.Pairs() {
		item, ok := pair.Value.(*document.Object)
		if !ok {
			continue
		}
		for _, method := range e.methods() {
			raw, ok := item.Obj(method)
			if !ok {
				continue
			}
			op, err := e.project(doc, pair.Key, method, raw, result)
			if err != nil {
				return nil, err
			}
			result.Operations = append(result.Operations, op)
		}
	}

	e.log().Debug("extracted operations",
		"paths", paths.Len(),
		"operations", len(result.Operations))
	return result, nil
}

// project turns one raw operation object into an Operation record.
func (e *Extractor) project(doc *document.Object, url, method string, raw *document.Object, result *Result) (Operation, error) {
	op := Operation{
		Method: method,
		URL:    url,
	}
	op.OperationID, _ = raw.Str("operationId")
	op.Summary, _ = raw.Str("summary")
	op.Description, _ = raw.Str("description")
	op.Deprecated, _ = raw.Bool("deprecated")

	opPath := issues.OperationPath(url, method)

	if err := e.extractParameters(doc, raw, &op, opPath, result); err != nil {
		return Operation{}, err
	}
	if err := e.extractRequestBody(doc, raw, &op, opPath, result); err != nil {
		return Operation{}, err
	}
	if err := e.extractResponse(doc, raw, &op, opPath, result); err != nil {
		return Operation{}, err
	}
	return op, nil
}

// extractParameters resolves and partitions the operation's parameters.
// Path parameters sort required-first; the sort is stable and compares
// nothing beyond the required flag. Locations other than path and query
// are ignored.
func (e *Extractor) extractParameters(doc *document.Object, raw *document.Object, op *Operation, opPath string, result *Result) error {
	params, ok := raw.Slice("parameters")
	if !ok {
		return nil
	}

	for i, item := range params {
		p, ok := item.(*document.Object)
		if !ok {
			continue
		}
		resolved, err := e.resolveNode(doc, p, fmt.Sprintf("%s.parameters[%d]", opPath, i), "parameter", result)
		if err != nil {
			return err
		}
		if resolved == nil {
			continue
		}

		param := decodeParameter(resolved)
		switch param.In {
		case "path":
			op.PathParams = append(op.PathParams, param)
		case "query":
			op.QueryParams = append(op.QueryParams, param)
		}
	}

	sort.SliceStable(op.PathParams, func(i, j int) bool {
		return op.PathParams[i].Required && !op.PathParams[j].Required
	})
	return nil
}

// extractRequestBody picks the operation's effective body media type:
// application/json wins, multipart/form-data is the fallback, otherwise
// the first declared entry. Multipart is set when the content declares it
// or when the chosen schema carries a binary string property, which
// compensates for documents that declare file uploads as JSON.
func (e *Extractor) extractRequestBody(doc *document.Object, raw *document.Object, op *Operation, opPath string, result *Result) error {
	rbNode, ok := raw.Obj("requestBody")
	if !ok {
		return nil
	}
	rb, err := e.resolveNode(doc, rbNode, opPath+".requestBody", "request body", result)
	if err != nil {
		return err
	}
	if rb == nil {
		return nil
	}
	content, ok := rb.Obj("content")
	if !ok {
		return nil
	}

	media, mediaType := chooseMedia(content)
	if media == nil {
		return nil
	}
	op.RequestBody = media
	op.IsMultipart = content.Has(httputil.MediaTypeMultipart)

	if !op.IsMultipart && hasBinaryProperty(media) {
		op.IsMultipart = true
		result.Issues = append(result.Issues, Issue{
			Path:     opPath + ".requestBody",
			Message:  fmt.Sprintf("Request body declared as %s carries a binary property; treating it as multipart", mediaType),
			Severity: severity.SeverityInfo,
		})
	}
	return nil
}

// extractResponse takes the 200 response's first content entry; the
// media-type name is discarded and only one response shape is modeled.
func (e *Extractor) extractResponse(doc *document.Object, raw *document.Object, op *Operation, opPath string, result *Result) error {
	responses, ok := raw.Obj("responses")
	if !ok {
		return nil
	}
	respNode, ok := responses.Obj("200")
	if !ok {
		return nil
	}
	resp, err := e.resolveNode(doc, respNode, opPath+".responses.200", "response", result)
	if err != nil {
		return err
	}
	if resp == nil {
		return nil
	}
	content, ok := resp.Obj("content")
	if !ok {
		return nil
	}
	for _, pair := range content.Pairs() {
		if media, ok := pair.Value.(*document.Object); ok {
			op.Response = media
			break
		}
	}
	return nil
}

// resolveNode returns node itself, or its reference target when the node
// is a reference. Unresolvable references drop the node with a warning,
// or fail under StrictRefs. References only appear here in lazy trees;
// full dereferencing has already replaced them.
func (e *Extractor) resolveNode(doc *document.Object, node *document.Object, path, kind string, result *Result) (*document.Object, error) {
	ref, ok := node.Str("$ref")
	if !ok {
		return node, nil
	}

	target, err := e.resolver().Get(doc, ref)
	if err == nil {
		if obj, isObj := target.(*document.Object); isObj {
			return obj, nil
		}
		err = fmt.Errorf("reference target is %T, not an object", target)
	}
	if e.StrictRefs {
		return nil, fmt.Errorf("extractor: cannot resolve %s reference %q at %s: %w", kind, ref, path, err)
	}
	result.Issues = append(result.Issues, Issue{
		Path:     path,
		Message:  fmt.Sprintf("Dropped %s with unresolvable reference %q", kind, ref),
		Severity: severity.SeverityWarning,
	})
	return nil, nil
}

// decodeParameter projects a resolved parameter object into the typed
// record. Parameters stripped down to empty objects decode with no
// location and fall out of the partition.
func decodeParameter(p *document.Object) Parameter {
	param := Parameter{}
	param.Name, _ = p.Str("name")
	param.In, _ = p.Str("in")
	param.Required, _ = p.Bool("required")
	param.Description, _ = p.Str("description")
	param.Schema, _ = p.Obj("schema")
	return param
}

// chooseMedia applies the body content-type preference order.
func chooseMedia(content *document.Object) (*document.Object, string) {
	if media, ok := content.Obj(httputil.MediaTypeJSON); ok {
		return media, httputil.MediaTypeJSON
	}
	if media, ok := content.Obj(httputil.MediaTypeMultipart); ok {
		return media, httputil.MediaTypeMultipart
	}
	for _, pair := range content.Pairs() {
		if media, ok := pair.Value.(*document.Object); ok {
			return media, pair.Key
		}
	}
	return nil, ""
}

// hasBinaryProperty reports whether the media object's schema declares
// any binary string property.
func hasBinaryProperty(media *document.Object) bool {
	schema, ok := media.Obj("schema")
	if !ok {
		return false
	}
	props, ok := schema.Obj("properties")
	if !ok {
		return false
	}
	for _, pair := range props.Pairs() {
		prop, ok := pair.Value.(*document.Object)
		if !ok {
			continue
		}
		typ, _ := prop.Str("type")
		format, _ := prop.Str("format")
		if typ == "string" && format == "binary" {
			return true
		}
	}
	return false
}

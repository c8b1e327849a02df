package converter

import (
	"fmt"

	"github.com/erraggy/tsreqgen/document"
	"github.com/erraggy/tsreqgen/internal/httputil"
	"github.com/erraggy/tsreqgen/internal/issues"
)

// v2 root keys consumed by the conversion rather than copied verbatim
var consumedRootKeys = map[string]bool{
	"swagger":             true,
	"info":                true,
	"host":                true,
	"basePath":            true,
	"schemes":             true,
	"consumes":            true,
	"produces":            true,
	"paths":               true,
	"definitions":         true,
	"parameters":          true,
	"responses":           true,
	"securityDefinitions": true,
}

// paramSchemaKeys are the v2 parameter keys that describe the value schema
// rather than the parameter itself. They move under "schema" in v3.
var paramSchemaKeys = map[string]bool{
	"type":             true,
	"format":           true,
	"items":            true,
	"enum":             true,
	"default":          true,
	"maximum":          true,
	"exclusiveMaximum": true,
	"minimum":          true,
	"exclusiveMinimum": true,
	"maxLength":        true,
	"minLength":        true,
	"pattern":          true,
	"maxItems":         true,
	"minItems":         true,
	"uniqueItems":      true,
	"multipleOf":       true,
}

// convertDocument builds the OAS 3.x root from the v2 source tree
func (c *Converter) convertDocument(src *document.Object, result *ConversionResult) *document.Object {
	dst := document.NewObject()
	dst.Set("openapi", result.TargetVersion)
	if info, ok := src.Get("info"); ok {
		dst.Set("info", info)
	}
	dst.Set("servers", c.convertServers(src, result))

	// Remaining root keys (tags, externalDocs, security, x-*) carry over
	for _, pair := range src.Pairs() {
		if consumedRootKeys[pair.Key] {
			continue
		}
		dst.Set(pair.Key, pair.Value)
	}

	if paths, ok := src.Obj("paths"); ok {
		converted := document.NewObject()
		for _, pair := range paths.Pairs() {
			item, ok := pair.Value.(*document.Object)
			if !ok {
				continue
			}
			converted.Set(pair.Key, c.convertPathItem(item, src, result, issues.FormatPath("paths", pair.Key)))
		}
		dst.Set("paths", converted)
	}

	components := document.NewObject()
	if defs, ok := src.Obj("definitions"); ok {
		// v2 schemas are structurally valid 3.0 schemas; only their
		// references need the rewrite pass below
		components.Set("schemas", defs)
	}
	if params, ok := src.Obj("parameters"); ok {
		convertedParams := document.NewObject()
		for _, pair := range params.Pairs() {
			if p, ok := pair.Value.(*document.Object); ok {
				convertedParams.Set(pair.Key, c.convertParameter(p, result, issues.FormatPath("parameters", pair.Key)))
			}
		}
		components.Set("parameters", convertedParams)
	}
	if responses, ok := src.Obj("responses"); ok {
		convertedResponses := document.NewObject()
		for _, pair := range responses.Pairs() {
			if r, ok := pair.Value.(*document.Object); ok {
				convertedResponses.Set(pair.Key, convertResponse(r, strSlice(src, "produces")))
			}
		}
		components.Set("responses", convertedResponses)
	}
	if secDefs, ok := src.Obj("securityDefinitions"); ok {
		components.Set("securitySchemes", c.convertSecurityDefinitions(secDefs, result))
	}
	if components.Len() > 0 {
		dst.Set("components", components)
	}

	rewriteRefs(dst)
	return dst
}

// convertServers builds v3 servers from v2 host, basePath, and schemes
func (c *Converter) convertServers(src *document.Object, result *ConversionResult) []any {
	host, _ := src.Str("host")
	if host == "" {
		c.addIssue(result, "servers", "No host specified in source document, using default server", SeverityInfo)
		return []any{
			document.NewObject().
				Set("url", "/").
				Set("description", "Default server"),
		}
	}

	schemes := strSlice(src, "schemes")
	if len(schemes) == 0 {
		schemes = []string{"https"}
	}
	basePath, _ := src.Str("basePath")
	if basePath == "" {
		basePath = "/"
	}

	servers := make([]any, 0, len(schemes))
	for _, scheme := range schemes {
		servers = append(servers, document.NewObject().
			Set("url", fmt.Sprintf("%s://%s%s", scheme, host, basePath)).
			Set("description", fmt.Sprintf("Server with %s scheme", scheme)))
	}
	return servers
}

// convertPathItem converts one v2 path item, keeping method declaration order
func (c *Converter) convertPathItem(item, doc *document.Object, result *ConversionResult, pathPrefix string) *document.Object {
	dst := document.NewObject()
	for _, pair := range item.Pairs() {
		switch {
		case pair.Key == "parameters":
			params, _ := item.Slice("parameters")
			if converted := c.convertParameterList(params, result, pathPrefix+".parameters"); len(converted) > 0 {
				dst.Set("parameters", converted)
			}
		case httputil.IsMethod(pair.Key):
			if op, ok := pair.Value.(*document.Object); ok {
				dst.Set(pair.Key, c.convertOperation(op, doc, result, pathPrefix+"."+pair.Key))
			}
		default:
			dst.Set(pair.Key, pair.Value)
		}
	}
	return dst
}

// convertOperation converts one v2 operation. Body and formData parameters
// become the requestBody; response schemas move under content maps keyed by
// the effective produces list.
func (c *Converter) convertOperation(op, doc *document.Object, result *ConversionResult, opPath string) *document.Object {
	consumes := strSlice(op, "consumes")
	if len(consumes) == 0 {
		consumes = strSlice(doc, "consumes")
	}
	produces := strSlice(op, "produces")
	if len(produces) == 0 {
		produces = strSlice(doc, "produces")
	}

	dst := document.NewObject()
	for _, pair := range op.Pairs() {
		switch pair.Key {
		case "consumes", "produces", "schemes":
			// consumed by the requestBody and response content conversion
		case "parameters":
			params, _ := op.Slice("parameters")
			rest, body, formData := splitBodyParameters(params)
			if converted := c.convertParameterList(rest, result, opPath+".parameters"); len(converted) > 0 {
				dst.Set("parameters", converted)
			}
			if rb := c.convertRequestBody(body, formData, consumes, result, opPath); rb != nil {
				dst.Set("requestBody", rb)
			}
		case "responses":
			if responses, ok := pair.Value.(*document.Object); ok {
				dst.Set("responses", convertResponses(responses, produces))
			}
		default:
			dst.Set(pair.Key, pair.Value)
		}
	}
	return dst
}

// splitBodyParameters partitions v2 parameters into regular, body, and
// formData groups. Reference parameters have no "in" and stay regular.
func splitBodyParameters(params []any) (rest []any, body *document.Object, formData []*document.Object) {
	for _, raw := range params {
		p, ok := raw.(*document.Object)
		if !ok {
			continue
		}
		in, _ := p.Str("in")
		switch in {
		case "body":
			if body == nil {
				body = p
			}
		case "formData":
			formData = append(formData, p)
		default:
			rest = append(rest, raw)
		}
	}
	return rest, body, formData
}

// convertRequestBody builds a v3 requestBody from a v2 body parameter or a
// formData parameter group. Body wins when both are declared, which v2
// already forbids.
func (c *Converter) convertRequestBody(body *document.Object, formData []*document.Object, consumes []string, result *ConversionResult, opPath string) *document.Object {
	if body == nil {
		if len(formData) == 0 {
			return nil
		}
		return c.convertFormDataBody(formData, consumes, result, opPath)
	}

	if len(formData) > 0 {
		c.addIssueWithContext(result, opPath+".parameters",
			"Operation declares both body and formData parameters",
			"formData parameters are ignored; Swagger 2.0 forbids mixing them with a body parameter")
	}

	rb := document.NewObject()
	if desc, ok := body.Str("description"); ok {
		rb.Set("description", desc)
	}
	if required, ok := body.Bool("required"); ok && required {
		rb.Set("required", true)
	}

	if len(consumes) == 0 {
		consumes = []string{httputil.MediaTypeJSON}
	}
	schema, hasSchema := body.Get("schema")
	content := document.NewObject()
	for _, mediaType := range consumes {
		mt := document.NewObject()
		if hasSchema {
			mt.Set("schema", schema)
		}
		content.Set(mediaType, mt)
	}
	rb.Set("content", content)
	return rb
}

// convertFormDataBody folds formData parameters into a single object schema.
// Content is multipart when consumes says so or when any parameter is a
// file upload; otherwise form-urlencoded.
func (c *Converter) convertFormDataBody(formData []*document.Object, consumes []string, result *ConversionResult, opPath string) *document.Object {
	properties := document.NewObject()
	required := make([]any, 0)
	for _, p := range formData {
		name, ok := p.Str("name")
		if !ok || name == "" {
			continue
		}
		properties.Set(name, formDataPropertySchema(p))
		if req, ok := p.Bool("required"); ok && req {
			required = append(required, name)
		}
	}

	schema := document.NewObject().Set("type", "object")
	if len(required) > 0 {
		schema.Set("required", required)
	}
	schema.Set("properties", properties)

	mediaType := httputil.MediaTypeFormURLEncoded
	for _, mt := range consumes {
		if mt == httputil.MediaTypeMultipart {
			mediaType = httputil.MediaTypeMultipart
			break
		}
	}
	if mediaType != httputil.MediaTypeMultipart && hasBinaryProperty(properties) {
		mediaType = httputil.MediaTypeMultipart
	}

	c.addIssue(result, opPath+".parameters",
		fmt.Sprintf("Converted %d formData parameter(s) to a %s requestBody", properties.Len(), mediaType),
		SeverityInfo)

	rb := document.NewObject()
	if len(required) > 0 {
		rb.Set("required", true)
	}
	rb.Set("content", document.NewObject().Set(mediaType,
		document.NewObject().Set("schema", schema)))
	return rb
}

// formDataPropertySchema projects a formData parameter into a property
// schema. The v2 "file" type becomes the v3 binary string.
func formDataPropertySchema(p *document.Object) *document.Object {
	schema := document.NewObject()
	typ, _ := p.Str("type")
	if typ == "file" {
		schema.Set("type", "string").Set("format", "binary")
	}
	for _, pair := range p.Pairs() {
		if !paramSchemaKeys[pair.Key] {
			continue
		}
		if typ == "file" && (pair.Key == "type" || pair.Key == "format") {
			continue
		}
		schema.Set(pair.Key, pair.Value)
	}
	if desc, ok := p.Str("description"); ok {
		schema.Set("description", desc)
	}
	return schema
}

// hasBinaryProperty reports whether any property is a binary string
func hasBinaryProperty(properties *document.Object) bool {
	for _, pair := range properties.Pairs() {
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

// convertParameterList converts a v2 parameter list, preserving order
func (c *Converter) convertParameterList(params []any, result *ConversionResult, path string) []any {
	if len(params) == 0 {
		return nil
	}
	converted := make([]any, 0, len(params))
	for i, raw := range params {
		p, ok := raw.(*document.Object)
		if !ok {
			continue
		}
		converted = append(converted, c.convertParameter(p, result, fmt.Sprintf("%s[%d]", path, i)))
	}
	return converted
}

// convertParameter converts one v2 parameter, moving inline type keys under
// "schema". Reference parameters and schema-carrying body parameters pass
// through; the ref rewrite pass fixes their pointers.
func (c *Converter) convertParameter(p *document.Object, result *ConversionResult, path string) *document.Object {
	if p.Has("$ref") || p.Has("schema") {
		return p
	}

	dst := document.NewObject()
	schema := document.NewObject()
	for _, pair := range p.Pairs() {
		switch {
		case paramSchemaKeys[pair.Key]:
			schema.Set(pair.Key, pair.Value)
		case pair.Key == "collectionFormat":
			if cf, ok := pair.Value.(string); ok && cf != "csv" {
				c.addIssueWithContext(result, path,
					fmt.Sprintf("Parameter uses collectionFormat '%s'", cf),
					"OAS 3.x uses 'style' and 'explode' instead; 'csv' format maps to style=form")
			}
		case pair.Key == "allowEmptyValue":
			c.addIssueWithContext(result, path, "Parameter uses 'allowEmptyValue'",
				"This field was removed in OAS 3.0")
			dst.Set(pair.Key, pair.Value)
		default:
			dst.Set(pair.Key, pair.Value)
		}
	}
	if schema.Len() > 0 {
		dst.Set("schema", schema)
	}
	return dst
}

// convertResponses converts a v2 responses map, preserving status order
func convertResponses(responses *document.Object, produces []string) *document.Object {
	dst := document.NewObject()
	for _, pair := range responses.Pairs() {
		r, ok := pair.Value.(*document.Object)
		if !ok {
			dst.Set(pair.Key, pair.Value)
			continue
		}
		dst.Set(pair.Key, convertResponse(r, produces))
	}
	return dst
}

// convertResponse moves a v2 response schema under a content map keyed by
// the effective produces media types
func convertResponse(r *document.Object, produces []string) *document.Object {
	if r.Has("$ref") || !r.Has("schema") {
		return r
	}

	dst := document.NewObject()
	for _, pair := range r.Pairs() {
		switch pair.Key {
		case "schema":
			mediaTypes := produces
			if len(mediaTypes) == 0 {
				mediaTypes = []string{httputil.MediaTypeJSON}
			}
			content := document.NewObject()
			for _, mediaType := range mediaTypes {
				content.Set(mediaType, document.NewObject().Set("schema", pair.Value))
			}
			dst.Set("content", content)
		case "examples":
			// v2 media-type examples have no position in this conversion
		default:
			dst.Set(pair.Key, pair.Value)
		}
	}
	return dst
}

// convertSecurityDefinitions converts v2 securityDefinitions into v3
// securitySchemes
func (c *Converter) convertSecurityDefinitions(secDefs *document.Object, result *ConversionResult) *document.Object {
	dst := document.NewObject()
	for _, pair := range secDefs.Pairs() {
		secDef, ok := pair.Value.(*document.Object)
		if !ok {
			continue
		}
		dst.Set(pair.Key, c.convertSecurityScheme(secDef, result, issues.FormatPath("securityDefinitions", pair.Key)))
	}
	return dst
}

func (c *Converter) convertSecurityScheme(secDef *document.Object, result *ConversionResult, path string) *document.Object {
	typ, _ := secDef.Str("type")
	scheme := document.NewObject()

	switch typ {
	case "basic":
		scheme.Set("type", "http").Set("scheme", "basic")
		if desc, ok := secDef.Str("description"); ok {
			scheme.Set("description", desc)
		}
	case "oauth2":
		scheme.Set("type", "oauth2")
		if desc, ok := secDef.Str("description"); ok {
			scheme.Set("description", desc)
		}
		scheme.Set("flows", c.convertOAuthFlows(secDef, result, path))
	default:
		// apiKey and vendor extensions are compatible as-is
		for _, pair := range secDef.Pairs() {
			switch pair.Key {
			case "flow", "authorizationUrl", "tokenUrl", "scopes":
			default:
				scheme.Set(pair.Key, pair.Value)
			}
		}
	}
	return scheme
}

// convertOAuthFlows maps the v2 flow field onto the v3 flows object
func (c *Converter) convertOAuthFlows(secDef *document.Object, result *ConversionResult, path string) *document.Object {
	flow, _ := secDef.Str("flow")
	scopes, ok := secDef.Get("scopes")
	if !ok {
		scopes = document.NewObject()
	}

	entry := document.NewObject()
	switch flow {
	case "implicit":
		if u, ok := secDef.Str("authorizationUrl"); ok {
			entry.Set("authorizationUrl", u)
		}
		entry.Set("scopes", scopes)
		return document.NewObject().Set("implicit", entry)
	case "password":
		if u, ok := secDef.Str("tokenUrl"); ok {
			entry.Set("tokenUrl", u)
		}
		entry.Set("scopes", scopes)
		return document.NewObject().Set("password", entry)
	case "application":
		if u, ok := secDef.Str("tokenUrl"); ok {
			entry.Set("tokenUrl", u)
		}
		entry.Set("scopes", scopes)
		return document.NewObject().Set("clientCredentials", entry)
	case "accessCode":
		if u, ok := secDef.Str("authorizationUrl"); ok {
			entry.Set("authorizationUrl", u)
		}
		if u, ok := secDef.Str("tokenUrl"); ok {
			entry.Set("tokenUrl", u)
		}
		entry.Set("scopes", scopes)
		return document.NewObject().Set("authorizationCode", entry)
	default:
		c.addIssueWithContext(result, path,
			fmt.Sprintf("Unknown OAuth2 flow type: %s", flow),
			"This may not convert correctly to OAS 3.x")
		return document.NewObject()
	}
}

// strSlice reads a key as a string slice, skipping non-string entries
func strSlice(obj *document.Object, key string) []string {
	raw, ok := obj.Slice(key)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

package typegen

// FormatMap maps schema types to format-specific TypeScript types. The
// outer key is the schema type, the inner key the format; the "" entry
// holds the type's default, used for formats the map does not list.
// Callers override entries to route additional formats to their own
// named types.
type FormatMap map[string]map[string]string

// DefaultFormats returns the standard primitive mapping. int64 integers
// emit string because 64-bit values are not safely representable in a
// JavaScript number; binary strings emit File so multipart payloads
// carry upload objects.
func DefaultFormats() FormatMap {
	return FormatMap{
		"boolean": {
			"": "boolean",
		},
		"integer": {
			"":      "number",
			"int32": "number",
			"int64": "string",
		},
		"number": {
			"":       "number",
			"float":  "number",
			"double": "number",
		},
		"string": {
			"":          "string",
			"date":      "string",
			"date-time": "string",
			"password":  "string",
			"byte":      "string",
			"binary":    "File",
		},
	}
}

// Type resolves the emitted TypeScript type for a schema type and
// format. Formats without an entry fall back to the type's default;
// schema types without a table return "".
func (m FormatMap) Type(schemaType, format string) string {
	byFormat, ok := m[schemaType]
	if !ok {
		return ""
	}
	if t, ok := byFormat[format]; ok {
		return t
	}
	return byFormat[""]
}

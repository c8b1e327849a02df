package generator

import (
	"bytes"
	"fmt"

	"github.com/erraggy/tsreqgen/document"
)

// assembleModule concatenates the module header, the shared prelude,
// every factory block, and the aggregate epilogue into one source text.
// Blocks are rendered last-extracted first; the order is derived purely
// from the input document, so repeated runs produce identical text.
func assembleModule(doc *document.Object, baseType string, blocks []opBlock) string {
	var buf bytes.Buffer
	writeModuleHeader(&buf, doc)
	buf.WriteByte('\n')
	writeBaseTypes(&buf, baseType)
	buf.WriteByte('\n')
	writeSharedHelpers(&buf)
	for i := len(blocks) - 1; i >= 0; i-- {
		buf.WriteByte('\n')
		buf.WriteString(blocks[i].text)
	}
	buf.WriteByte('\n')
	writeEpilogue(&buf, baseType, blocks)
	return buf.String()
}

// writeModuleHeader emits the leading comment identifying the source
// document by its info title and version.
func writeModuleHeader(buf *bytes.Buffer, doc *document.Object) {
	title := "API"
	version := ""
	if doc != nil {
		if info, ok := doc.Obj("info"); ok {
			if t, ok := info.Str("title"); ok && t != "" {
				title = t
			}
			version, _ = info.Str("version")
		}
	}

	buf.WriteString("/**\n")
	fmt.Fprintf(buf, " * Typed request factories for %s.\n", commentText(title))
	if version != "" {
		fmt.Fprintf(buf, " * API version: %s\n", commentText(version))
	}
	buf.WriteString(" *\n")
	buf.WriteString(" * Generated file, do not edit by hand.\n")
	buf.WriteString(" */\n")
}

// writeBaseTypes declares the request-options shape every Config type
// narrows, and the transport client contract makeRequest dispatches
// through. The base type name is caller-configurable, so every mention
// below goes through baseType.
func writeBaseTypes(buf *bytes.Buffer, baseType string) {
	fmt.Fprintf(buf, "export interface %s {\n", baseType)
	buf.WriteString("  url: string;\n")
	buf.WriteString("  method: string;\n")
	buf.WriteString("  headers?: Record<string, string>;\n")
	buf.WriteString("  params?: Record<string, any>;\n")
	buf.WriteString("  data?: any;\n")
	buf.WriteString("  [key: string]: any;\n")
	buf.WriteString("}\n")
	buf.WriteByte('\n')
	buf.WriteString("export interface RequestClient {\n")
	fmt.Fprintf(buf, "  request: (options: %s) => Promise<any>;\n", baseType)
	buf.WriteString("}\n")
}

// writeSharedHelpers emits the path interpolation and multipart
// encoding helpers the builders call.
//
// interpolatePath substitutes every {name} placeholder with the named
// value, and an absent or null value with the empty string; a missing
// key is never an error. The placeholder pattern must keep its braces
// paired inside the regex literal or the assembled module fails the
// formatter's balance check.
func writeSharedHelpers(buf *bytes.Buffer) {
	buf.WriteString("export const interpolatePath = (template: string, values: Record<string, any>): string =>\n")
	buf.WriteString("  template.replace(/{.*?}/g, (match) => {\n")
	buf.WriteString("    const value = values[match.slice(1, -1)];\n")
	buf.WriteString("    return value === undefined || value === null ? '' : String(value);\n")
	buf.WriteString("  });\n")
	buf.WriteByte('\n')
	buf.WriteString("export const formDataify = (data: any): FormData => {\n")
	buf.WriteString("  const form = new FormData();\n")
	buf.WriteString("  Object.entries(data ?? {}).forEach(([key, value]) => {\n")
	buf.WriteString("    if (value === undefined || value === null) {\n")
	buf.WriteString("      return;\n")
	buf.WriteString("    }\n")
	buf.WriteString("    form.append(key, value instanceof Blob ? value : String(value));\n")
	buf.WriteString("  });\n")
	buf.WriteString("  return form;\n")
	buf.WriteString("};\n")
}

// writeEpilogue aggregates the factories into one keyed map and emits
// the typed dispatch surface over it. The spread order matches the
// block rendering order.
func writeEpilogue(buf *bytes.Buffer, baseType string, blocks []opBlock) {
	if len(blocks) == 0 {
		buf.WriteString("export const operations = {} as const;\n")
	} else {
		buf.WriteString("export const operations = {\n")
		for i := len(blocks) - 1; i >= 0; i-- {
			fmt.Fprintf(buf, "  ...%s(),\n", blocks[i].name)
		}
		buf.WriteString("} as const;\n")
	}
	buf.WriteByte('\n')
	buf.WriteString("export type OperationKey = keyof typeof operations;\n")
	buf.WriteByte('\n')
	buf.WriteString("export type OperationTypes<K extends OperationKey> = (typeof operations)[K][0];\n")
	buf.WriteByte('\n')
	buf.WriteString("export type OperationResponse<K extends OperationKey> = OperationTypes<K>['ResponseData'];\n")
	buf.WriteByte('\n')
	buf.WriteString("export const makeRequest = <K extends OperationKey>(client: RequestClient, key: K) => {\n")
	fmt.Fprintf(buf, "  const build = operations[key][1] as (...args: any[]) => %s;\n", baseType)
	buf.WriteString("  return (...args: Parameters<(typeof operations)[K][1]>): Promise<OperationResponse<K>> =>\n")
	buf.WriteString("    client.request(build(...args));\n")
	buf.WriteString("};\n")
}

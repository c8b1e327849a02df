package generator

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/erraggy/tsreqgen/extractor"
	"github.com/erraggy/tsreqgen/internal/stringutil"
	"github.com/erraggy/tsreqgen/shaper"
	"github.com/erraggy/tsreqgen/typegen"
)

// synthesizer emits one self-contained factory block per operation:
// local type declarations compiled from the helper schema, a narrowed
// Config type, the request-descriptor builder, and the keyed factory
// return. Blocks never reference each other, so assembly order is free
// to vary without changing meaning.
type synthesizer struct {
	compiler TypeCompiler
	baseType string
}

// opBlock is one emitted factory block, keyed for assembly.
type opBlock struct {
	// key is the 'METHOD /url' string naming the operation
	key string
	// name is the factory identifier derived from the operationId
	name string
	// text is the complete block source, ending with a newline
	text string
}

// operationKey builds the "METHOD /url" key that names the operation in
// the generated module. The method is upper-cased so the key doubles as
// a readable request line.
func operationKey(op extractor.Operation) string {
	return strings.ToUpper(op.Method) + " " + op.URL
}

// operationBlock synthesizes the factory block for one operation.
func (s *synthesizer) operationBlock(op extractor.Operation, shape *shaper.OperationShape) (opBlock, error) {
	compiled, err := s.compiler.Compile(shape.Helper, shape.RootName, typegen.Options{
		DeclareExternallyReferenced: true,
	})
	if err != nil {
		return opBlock{}, err
	}

	key := operationKey(op)
	name := stringutil.SafeIdent(op.OperationID)
	root := shape.RootName

	var buf bytes.Buffer
	writeFactoryComment(&buf, op)
	fmt.Fprintf(&buf, "export const %s = () => {\n", name)
	fmt.Fprintf(&buf, "  const path = %s as const;\n", tsQuote(key))
	// key is method + space + url, so the url is everything past the
	// method's length plus the separator
	fmt.Fprintf(&buf, "  const url = %s;\n", tsQuote(key[len(op.Method)+1:]))
	buf.WriteByte('\n')
	buf.WriteString(indentLines(stripExportMarkers(compiled), "  "))
	buf.WriteByte('\n')
	fmt.Fprintf(&buf, "  type Config = %s;\n", s.configType(root, shape))
	buf.WriteByte('\n')
	writeBuilder(&buf, op, shape)
	buf.WriteByte('\n')
	buf.WriteString("  return {\n")
	fmt.Fprintf(&buf, "    [path]: [{} as %s & { ResponseData: %s['Response'] }, build],\n", root, root)
	buf.WriteString("  } as const;\n")
	buf.WriteString("};\n")

	return opBlock{key: key, name: name, text: buf.String()}, nil
}

// writeFactoryComment emits the factory's doc comment from the
// operation's summary and description. Nothing is written when the
// operation carries no documentation and is not deprecated.
func writeFactoryComment(buf *bytes.Buffer, op extractor.Operation) {
	summary := commentText(op.Summary)
	description := commentText(op.Description)
	if summary == "" && description == "" && !op.Deprecated {
		return
	}
	buf.WriteString("/**\n")
	if summary != "" {
		fmt.Fprintf(buf, " * %s\n", summary)
	}
	if description != "" {
		if summary != "" {
			buf.WriteString(" *\n")
		}
		fmt.Fprintf(buf, " * %s\n", description)
	}
	if op.Deprecated {
		buf.WriteString(" * @deprecated\n")
	}
	buf.WriteString(" */\n")
}

// commentText prepares document text for a block comment. A literal */
// in the source text would terminate the comment early, so it is
// defanged before emission.
func commentText(s string) string {
	return strings.ReplaceAll(stringutil.CleanDescription(s), "*/", "*\\/")
}

// configType narrows the base request-options type for one operation.
// Keys the builder sets itself are omitted; params and data members are
// added back with requiredness taken from the shape.
func (s *synthesizer) configType(root string, shape *shaper.OperationShape) string {
	omitted := []string{"'method'", "'url'"}
	if shape.HasQuery {
		omitted = append(omitted, "'params'")
	}
	if shape.HasRequestBody {
		omitted = append(omitted, "'data'")
	}

	expr := fmt.Sprintf("Omit<%s, %s>", s.baseType, strings.Join(omitted, " | "))
	if shape.HasQuery {
		expr += fmt.Sprintf(" & { params%s: %s['Params'] }", optionalMark(shape.HasRequiredQuery), root)
	}
	if shape.HasRequestBody {
		expr += fmt.Sprintf(" & { data%s: %s['Body'] }", optionalMark(shape.HasRequiredBody), root)
	}
	return expr
}

func optionalMark(required bool) string {
	if required {
		return ""
	}
	return "?"
}

// writeBuilder emits the request-descriptor builder. The descriptor
// spreads the options argument first so the url, method, and data keys
// it sets always win.
func writeBuilder(buf *bytes.Buffer, op extractor.Operation, shape *shaper.OperationShape) {
	optionsRequired := shape.HasRequiredQuery || shape.HasRequiredBody

	fmt.Fprintf(buf, "  const build = (%s) => ({\n", strings.Join(builderArgs(shape), ", "))
	buf.WriteString("    ...options,\n")
	fmt.Fprintf(buf, "    %s,\n", urlValue(shape))
	fmt.Fprintf(buf, "    method: %s,\n", tsQuote(strings.ToUpper(op.Method)))
	if shape.HasRequestBody {
		fmt.Fprintf(buf, "    data: %s,\n", dataValue(op.IsMultipart, optionsRequired))
	}
	buf.WriteString("  });\n")
}

// builderArgs lists the build function's parameters in order: path
// arguments first, then the options object. Simple path parameters
// become individually named scalar arguments; the undefined union on a
// non-required argument is kept even though simple mode currently
// implies all-required.
func builderArgs(shape *shaper.OperationShape) []string {
	var args []string
	switch {
	case shape.IsSimplePathParams:
		for _, a := range shape.PathArgs {
			argType := a.Type
			if !a.Required {
				argType += " | undefined"
			}
			args = append(args, fmt.Sprintf("%s: %s", argName(a), argType))
		}
	case shape.HasPathParams:
		args = append(args, fmt.Sprintf("pathParams: %s['PathParams']", shape.RootName))
	}
	if shape.HasRequiredQuery || shape.HasRequiredBody {
		args = append(args, "options: Config")
	} else {
		args = append(args, "options?: Config")
	}
	return args
}

// urlValue renders the url member of the returned descriptor. Without
// path parameters the url const is passed through as shorthand.
func urlValue(shape *shaper.OperationShape) string {
	switch {
	case !shape.HasPathParams:
		return "url"
	case shape.IsSimplePathParams:
		return fmt.Sprintf("url: interpolatePath(url, %s)", pathValuesLiteral(shape.PathArgs))
	default:
		return "url: interpolatePath(url, pathParams)"
	}
}

// pathValuesLiteral builds the placeholder-to-argument map for simple
// mode. Property shorthand applies when camel-casing left the parameter
// name unchanged; placeholder names that are not identifiers are
// quoted.
func pathValuesLiteral(args []shaper.PathArg) string {
	entries := make([]string, 0, len(args))
	for _, a := range args {
		name := argName(a)
		switch {
		case a.Placeholder == name:
			entries = append(entries, name)
		case stringutil.IsIdentifier(a.Placeholder):
			entries = append(entries, fmt.Sprintf("%s: %s", a.Placeholder, name))
		default:
			entries = append(entries, fmt.Sprintf("%s: %s", tsQuote(a.Placeholder), name))
		}
	}
	return "{ " + strings.Join(entries, ", ") + " }"
}

// dataValue renders the data member: the options' data field, wrapped
// for multipart encoding when the operation calls for it.
func dataValue(multipart, optionsRequired bool) string {
	access := "options?.data"
	if optionsRequired {
		access = "options.data"
	}
	if multipart {
		return "formDataify(" + access + ")"
	}
	return access
}

// argName resolves the emitted argument identifier for a path argument.
// Camel-casing alone can land on a reserved word.
func argName(a shaper.PathArg) string {
	return stringutil.EscapeReservedWord(a.Name)
}

// stripExportMarkers removes the export keyword from compiled top-level
// declarations. The declarations live inside the factory function, so
// exporting them is both meaningless and a name-collision hazard across
// operations.
func stripExportMarkers(compiled string) string {
	lines := strings.Split(compiled, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, "export ")
	}
	return strings.Join(lines, "\n")
}

// indentLines prefixes every non-empty line. Blank lines stay empty so
// no trailing whitespace is produced.
func indentLines(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

// tsQuote renders s as a single-quoted string literal.
func tsQuote(s string) string {
	return "'" + tsEscaper.Replace(s) + "'"
}

var tsEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

package generator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/tsreqgen/document"
	"github.com/erraggy/tsreqgen/extractor"
	"github.com/erraggy/tsreqgen/shaper"
	"github.com/erraggy/tsreqgen/typegen"
)

func newSynthesizer() *synthesizer {
	return &synthesizer{compiler: typegen.New(), baseType: defaultBaseRequestType}
}

// blockFor shapes op against a nil document and synthesizes its block.
// Operations built by hand in tests carry no references, so no document
// is needed to resolve against.
func blockFor(t *testing.T, op extractor.Operation) opBlock {
	t.Helper()
	shape, issues := shaper.New().Shape(op, nil)
	require.Empty(t, issues)
	block, err := newSynthesizer().operationBlock(op, shape)
	require.NoError(t, err)
	return block
}

func TestOperationKey(t *testing.T) {
	key := operationKey(extractor.Operation{Method: "get", URL: "/pets/{petId}"})
	assert.Equal(t, "GET /pets/{petId}", key)
}

func TestOperationBlockBare(t *testing.T) {
	block := blockFor(t, extractor.Operation{
		OperationID: "ping",
		Method:      "get",
		URL:         "/ping",
	})

	assert.Equal(t, "GET /ping", block.key)
	assert.Equal(t, "ping", block.name)
	want := `export const ping = () => {
  const path = 'GET /ping' as const;
  const url = '/ping';

  interface Ping {
    Body?: any;
    Response?: any;
    Params?: any;
    PathParams?: any;
  }

  type Config = Omit<RequestOptions, 'method' | 'url'>;

  const build = (options?: Config) => ({
    ...options,
    url,
    method: 'GET',
  });

  return {
    [path]: [{} as Ping & { ResponseData: Ping['Response'] }, build],
  } as const;
};
`
	assert.Equal(t, want, block.text)
}

func TestOperationBlockSimplePathParam(t *testing.T) {
	block := blockFor(t, extractor.Operation{
		OperationID: "getUser",
		Method:      "get",
		URL:         "/users/{id}",
		PathParams: []extractor.Parameter{{
			Name:     "id",
			In:       "path",
			Required: true,
			Schema:   document.NewObject().Set("type", "integer").Set("format", "int64"),
		}},
		Response: document.NewObject().Set("schema", document.NewObject().
			Set("type", "object").
			Set("properties", document.NewObject().
				Set("name", document.NewObject().Set("type", "string")))),
	})

	// int64 path arguments type as string under the default format table
	want := `export const getUser = () => {
  const path = 'GET /users/{id}' as const;
  const url = '/users/{id}';

  interface GetUser {
    Body?: any;
    Response: GetUser$Response;
    Params?: any;
    PathParams: GetUser$PathParams;
  }

  interface GetUser$Response {
    name?: string;
  }

  interface GetUser$PathParams {
    id: string;
  }

  type Config = Omit<RequestOptions, 'method' | 'url'>;

  const build = (id: string, options?: Config) => ({
    ...options,
    url: interpolatePath(url, { id }),
    method: 'GET',
  });

  return {
    [path]: [{} as GetUser & { ResponseData: GetUser['Response'] }, build],
  } as const;
};
`
	assert.Equal(t, want, block.text)
}

func TestOperationBlockRequiredQuery(t *testing.T) {
	block := blockFor(t, extractor.Operation{
		OperationID: "search",
		Method:      "get",
		URL:         "/search",
		QueryParams: []extractor.Parameter{{
			Name:     "q",
			In:       "query",
			Required: true,
			Schema:   document.NewObject().Set("type", "string"),
		}},
	})

	want := `export const search = () => {
  const path = 'GET /search' as const;
  const url = '/search';

  interface Search {
    Body?: any;
    Response?: any;
    Params: Search$Params;
    PathParams?: any;
  }

  interface Search$Params {
    q: string;
  }

  type Config = Omit<RequestOptions, 'method' | 'url' | 'params'> & { params: Search['Params'] };

  const build = (options: Config) => ({
    ...options,
    url,
    method: 'GET',
  });

  return {
    [path]: [{} as Search & { ResponseData: Search['Response'] }, build],
  } as const;
};
`
	assert.Equal(t, want, block.text)
}

func TestOperationBlockStructuredPathParams(t *testing.T) {
	param := func(name string) extractor.Parameter {
		return extractor.Parameter{
			Name:     name,
			In:       "path",
			Required: true,
			Schema:   document.NewObject().Set("type", "string"),
		}
	}
	block := blockFor(t, extractor.Operation{
		OperationID: "getComment",
		Method:      "get",
		URL:         "/users/{id}/posts/{postId}/comments/{commentId}",
		PathParams:  []extractor.Parameter{param("id"), param("postId"), param("commentId")},
	})

	// three path parameters exceed simple mode, so the builder takes one
	// structured argument
	assert.Contains(t, block.text, "const build = (pathParams: GetComment['PathParams'], options?: Config) => ({")
	assert.Contains(t, block.text, "url: interpolatePath(url, pathParams),")
	assert.NotContains(t, block.text, "commentId: string, options")
}

func TestOperationBlockOptionalBody(t *testing.T) {
	block := blockFor(t, extractor.Operation{
		OperationID: "tagPet",
		Method:      "post",
		URL:         "/tags",
		RequestBody: document.NewObject().Set("schema", document.NewObject().
			Set("type", "object").
			Set("properties", document.NewObject().
				Set("label", document.NewObject().Set("type", "string")))),
	})

	// a body without required properties keeps options and data optional
	assert.Contains(t, block.text, "type Config = Omit<RequestOptions, 'method' | 'url' | 'data'> & { data?: TagPet['Body'] };")
	assert.Contains(t, block.text, "const build = (options?: Config) => ({")
	assert.Contains(t, block.text, "data: options?.data,")
	assert.NotContains(t, block.text, "formDataify")
}

func TestOperationBlockMultipartRequiredBody(t *testing.T) {
	block := blockFor(t, extractor.Operation{
		OperationID: "uploadFile",
		Method:      "post",
		URL:         "/files",
		IsMultipart: true,
		RequestBody: document.NewObject().Set("schema", document.NewObject().
			Set("type", "object").
			Set("required", []any{"file"}).
			Set("properties", document.NewObject().
				Set("file", document.NewObject().Set("type", "string").Set("format", "binary")))),
	})

	assert.Contains(t, block.text, "type Config = Omit<RequestOptions, 'method' | 'url' | 'data'> & { data: UploadFile['Body'] };")
	assert.Contains(t, block.text, "const build = (options: Config) => ({")
	assert.Contains(t, block.text, "data: formDataify(options.data),")
	assert.Contains(t, block.text, "file: File;")
}

func TestOperationBlockDashedPlaceholder(t *testing.T) {
	block := blockFor(t, extractor.Operation{
		OperationID: "getPet",
		Method:      "get",
		URL:         "/pets/{pet-id}",
		PathParams: []extractor.Parameter{{
			Name:     "pet-id",
			In:       "path",
			Required: true,
			Schema:   document.NewObject().Set("type", "string"),
		}},
	})

	// the placeholder key keeps the document spelling; the argument is
	// camel-cased
	assert.Contains(t, block.text, "const build = (petId: string, options?: Config) => ({")
	assert.Contains(t, block.text, "url: interpolatePath(url, { 'pet-id': petId }),")
	assert.Contains(t, block.text, "'pet-id': string;")
}

func TestOperationBlockDeprecatedComment(t *testing.T) {
	block := blockFor(t, extractor.Operation{
		OperationID: "legacyList",
		Summary:     "List things",
		Description: "Use search instead.",
		Deprecated:  true,
		Method:      "get",
		URL:         "/legacy",
	})

	want := `/**
 * List things
 *
 * Use search instead.
 * @deprecated
 */
export const legacyList = () => {`
	assert.True(t, strings.HasPrefix(block.text, want), "block comment mismatch:\n%s", block.text)
}

func TestWriteFactoryComment(t *testing.T) {
	cases := []struct {
		name string
		op   extractor.Operation
		want string
	}{
		{
			name: "none",
			op:   extractor.Operation{},
			want: "",
		},
		{
			name: "summary only",
			op:   extractor.Operation{Summary: "List pets"},
			want: "/**\n * List pets\n */\n",
		},
		{
			name: "description only",
			op:   extractor.Operation{Description: "Returns all pets."},
			want: "/**\n * Returns all pets.\n */\n",
		},
		{
			name: "deprecated only",
			op:   extractor.Operation{Deprecated: true},
			want: "/**\n * @deprecated\n */\n",
		},
		{
			name: "multiline description flattens",
			op:   extractor.Operation{Description: "Line one.\nLine two."},
			want: "/**\n * Line one. Line two.\n */\n",
		},
		{
			name: "comment terminator defanged",
			op:   extractor.Operation{Summary: "weird */ text"},
			want: "/**\n * weird *\\/ text\n */\n",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			writeFactoryComment(&buf, tc.op)
			assert.Equal(t, tc.want, buf.String())
		})
	}
}

func TestConfigType(t *testing.T) {
	syn := newSynthesizer()
	cases := []struct {
		name  string
		shape shaper.OperationShape
		want  string
	}{
		{
			name:  "no query no body",
			shape: shaper.OperationShape{},
			want:  "Omit<RequestOptions, 'method' | 'url'>",
		},
		{
			name:  "optional query",
			shape: shaper.OperationShape{HasQuery: true},
			want:  "Omit<RequestOptions, 'method' | 'url' | 'params'> & { params?: Thing['Params'] }",
		},
		{
			name:  "required query",
			shape: shaper.OperationShape{HasQuery: true, HasRequiredQuery: true},
			want:  "Omit<RequestOptions, 'method' | 'url' | 'params'> & { params: Thing['Params'] }",
		},
		{
			name:  "required body",
			shape: shaper.OperationShape{HasRequestBody: true, HasRequiredBody: true},
			want:  "Omit<RequestOptions, 'method' | 'url' | 'data'> & { data: Thing['Body'] }",
		},
		{
			name:  "query and body",
			shape: shaper.OperationShape{HasQuery: true, HasRequestBody: true},
			want:  "Omit<RequestOptions, 'method' | 'url' | 'params' | 'data'> & { params?: Thing['Params'] } & { data?: Thing['Body'] }",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, syn.configType("Thing", &tc.shape))
		})
	}
}

func TestBuilderArgsKeepsUndefinedUnion(t *testing.T) {
	// simple mode requires all-required parameters today; the undefined
	// union stays in place should that ever relax
	shape := &shaper.OperationShape{
		RootName:           "GetThing",
		HasPathParams:      true,
		IsSimplePathParams: true,
		PathArgs: []shaper.PathArg{
			{Name: "id", Placeholder: "id", Type: "string", Required: true},
			{Name: "rev", Placeholder: "rev", Type: "number", Required: false},
		},
	}
	args := builderArgs(shape)
	assert.Equal(t, []string{"id: string", "rev: number | undefined", "options?: Config"}, args)
}

func TestBuilderArgsEscapesReservedArgument(t *testing.T) {
	shape := &shaper.OperationShape{
		RootName:           "DropThing",
		HasPathParams:      true,
		IsSimplePathParams: true,
		PathArgs: []shaper.PathArg{
			{Name: "new", Placeholder: "new", Type: "string", Required: true},
		},
	}
	assert.Equal(t, []string{"new_: string", "options?: Config"}, builderArgs(shape))
	assert.Equal(t, "{ new: new_ }", pathValuesLiteral(shape.PathArgs))
}

func TestStripExportMarkers(t *testing.T) {
	in := "export interface A {\n  b?: string;\n}\n\nexport type C = A[];\n"
	want := "interface A {\n  b?: string;\n}\n\ntype C = A[];\n"
	assert.Equal(t, want, stripExportMarkers(in))
}

func TestIndentLinesSkipsBlank(t *testing.T) {
	assert.Equal(t, "  a\n\n  b\n", indentLines("a\n\nb\n", "  "))
}

func TestTsQuote(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"GET /pets", "'GET /pets'"},
		{"it's", `'it\'s'`},
		{`back\slash`, `'back\\slash'`},
		{"tab\there", `'tab\there'`},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tsQuote(tc.in))
	}
}

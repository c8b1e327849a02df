package generator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/erraggy/tsreqgen/generrors"
	"github.com/erraggy/tsreqgen/parser"
)

const petstoreYAML = `
openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
paths:
  /pets:
    get:
      operationId: listPets
      summary: List all pets
      parameters:
        - name: limit
          in: query
          required: false
          schema:
            type: integer
            format: int32
      responses:
        '200':
          description: A paged array of pets
          content:
            application/json:
              schema:
                type: array
                items:
                  $ref: '#/components/schemas/Pet'
    post:
      operationId: createPet
      summary: Create a pet
      requestBody:
        required: true
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/NewPet'
      responses:
        '200':
          description: The created pet
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Pet'
  /pets/{petId}:
    get:
      operationId: getPet
      summary: Info for a specific pet
      parameters:
        - name: petId
          in: path
          required: true
          schema:
            type: string
      responses:
        '200':
          description: The pet
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Pet'
components:
  schemas:
    Pet:
      type: object
      required:
        - id
        - name
      properties:
        id:
          type: integer
          format: int64
        name:
          type: string
        tag:
          type: string
    NewPet:
      type: object
      required:
        - name
      properties:
        name:
          type: string
        tag:
          type: string
`

// binaryBodyYAML declares a JSON request body carrying a binary
// property, which the extractor reclassifies as multipart with an
// informational issue.
const binaryBodyYAML = `
openapi: 3.0.0
info:
  title: Files
  version: "1.0"
paths:
  /upload:
    post:
      operationId: uploadFile
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required:
                - file
              properties:
                file:
                  type: string
                  format: binary
      responses:
        '200':
          description: ok
`

// swaggerDanglingYAML is a Swagger 2.0 document whose parameter
// reference points nowhere, so normalization prunes it with a warning
// before conversion.
const swaggerDanglingYAML = `
swagger: "2.0"
info:
  title: Legacy
  version: "1.0"
host: api.example.com
paths:
  /items:
    get:
      operationId: listItems
      parameters:
        - $ref: '#/parameters/Missing'
      responses:
        '200':
          description: ok
`

func TestGenerateBytesPetstore(t *testing.T) {
	result, err := New().GenerateBytes([]byte(petstoreYAML))
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "3.0.3", result.SourceVersion)
	assert.Equal(t, parser.OASVersion30, result.SourceOASVersion)
	assert.Equal(t, parser.SourceFormatYAML, result.SourceFormat)
	assert.False(t, result.Converted)
	assert.Empty(t, result.Issues)
	assert.Equal(t, 3, result.GeneratedOperations)

	require.Len(t, result.Files, 1)
	assert.Equal(t, "client.ts", result.Files[0].Name)

	content := string(result.Files[0].Content)
	assert.Contains(t, content, "export const listPets = () => {")
	assert.Contains(t, content, "export const createPet = () => {")
	assert.Contains(t, content, "export const getPet = () => {")
	assert.Contains(t, content, "const path = 'GET /pets/{petId}' as const;")
	assert.Contains(t, content, "interface CreatePet$Body {")

	// factories aggregate last extracted first
	assert.Contains(t, content,
		"export const operations = {\n  ...getPet(),\n  ...createPet(),\n  ...listPets(),\n} as const;")
	assert.Equal(t, 1, strings.Count(content, "export const makeRequest"))
}

func TestGenerateFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "petstore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(petstoreYAML), 0o644))

	result, err := New().Generate(path)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, int64(len(petstoreYAML)), result.SourceSize)
	assert.Equal(t, 3, result.GeneratedOperations)
}

func TestGenerateJSONSource(t *testing.T) {
	spec := `{"openapi":"3.0.0","info":{"title":"Empty","version":"1.0"},"paths":{}}`

	result, err := New().GenerateBytes([]byte(spec))
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, parser.SourceFormatJSON, result.SourceFormat)
	assert.Zero(t, result.GeneratedOperations)

	content := string(result.Files[0].Content)
	assert.Contains(t, content, "export const operations = {} as const;")
	assert.Contains(t, content, "Typed request factories for Empty.")
}

func TestGenerateDeterministic(t *testing.T) {
	first, err := New().GenerateBytes([]byte(petstoreYAML))
	require.NoError(t, err)
	second, err := New().GenerateBytes([]byte(petstoreYAML))
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(string(first.Files[0].Content), string(second.Files[0].Content)))
}

// TestGenerateGoldenCorpus compares full generated modules against
// checked-in archives. Each archive carries the source document as
// spec.yaml and the expected module as client.ts.
func TestGenerateGoldenCorpus(t *testing.T) {
	archives, err := filepath.Glob(filepath.Join("testdata", "golden", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, archives)

	for _, path := range archives {
		t.Run(strings.TrimSuffix(filepath.Base(path), ".txtar"), func(t *testing.T) {
			arc, err := txtar.ParseFile(path)
			require.NoError(t, err)

			var spec, want []byte
			for _, f := range arc.Files {
				switch f.Name {
				case "spec.yaml":
					spec = f.Data
				case "client.ts":
					want = f.Data
				}
			}
			require.NotEmpty(t, spec, "archive is missing spec.yaml")
			require.NotEmpty(t, want, "archive is missing client.ts")

			result, err := New().GenerateBytes(spec)
			require.NoError(t, err)
			require.True(t, result.Success)

			file := result.GetFile("client.ts")
			require.NotNil(t, file)
			if diff := cmp.Diff(string(want), string(file.Content)); diff != "" {
				t.Errorf("generated module mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGenerateMissingOperationID(t *testing.T) {
	spec := `
openapi: 3.0.0
info:
  title: NoID
  version: "1.0"
paths:
  /things:
    get:
      responses:
        '200':
          description: ok
`
	result, err := New().GenerateBytes([]byte(spec))
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "has no operationId")
	assert.Contains(t, err.Error(), "GET /things")
}

func TestGenerateCompileErrorNamesOperation(t *testing.T) {
	spec := `
openapi: 3.0.0
info:
  title: Bad
  version: "1.0"
paths:
  /bad:
    get:
      operationId: badEnum
      responses:
        '200':
          description: ok
          content:
            application/json:
              schema:
                type: string
                enum:
                  - ok
                  - {}
`
	_, err := New().GenerateBytes([]byte(spec))
	require.Error(t, err)

	var ce *generrors.CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "badEnum", ce.OperationID)
	assert.Contains(t, err.Error(), "badEnum")
}

func TestGenerateSwaggerConversion(t *testing.T) {
	result, err := New().GenerateBytes([]byte(swaggerDanglingYAML))
	require.NoError(t, err)

	assert.True(t, result.Converted)
	assert.Equal(t, parser.OASVersion20, result.SourceOASVersion)
	assert.True(t, result.HasWarnings())
	assert.True(t, result.Success, "warnings alone must not fail generation")

	found := false
	for _, issue := range result.Issues {
		if issue.Severity == SeverityWarning && strings.Contains(issue.Message, "#/parameters/Missing") {
			found = true
		}
	}
	assert.True(t, found, "expected a pruned-reference warning, got %v", result.Issues)

	assert.Contains(t, string(result.Files[0].Content), "export const listItems = () => {")
}

func TestGenerateStrictModeFailsOnWarnings(t *testing.T) {
	g := New()
	g.StrictMode = true

	result, err := g.GenerateBytes([]byte(swaggerDanglingYAML))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strict mode")
	require.NotNil(t, result, "strict failures still report the collected issues")
	assert.True(t, result.HasWarnings())
}

func TestGenerateStrictModeAllowsInfo(t *testing.T) {
	g := New()
	g.StrictMode = true

	result, err := g.GenerateBytes([]byte(binaryBodyYAML))
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.InfoCount)
}

func TestGenerateMultipartInference(t *testing.T) {
	result, err := New().GenerateBytes([]byte(binaryBodyYAML))
	require.NoError(t, err)

	require.Len(t, result.Issues, 1)
	issue := result.Issues[0]
	assert.Equal(t, SeverityInfo, issue.Severity)
	assert.Contains(t, issue.Message, "multipart")
	assert.Equal(t, 1, result.InfoCount)

	content := string(result.Files[0].Content)
	assert.Contains(t, content, "data: formDataify(options.data),")
	assert.Contains(t, content, "file: File;")
}

func TestGenerateIncludeInfoFilter(t *testing.T) {
	g := New()
	g.IncludeInfo = false

	result, err := g.GenerateBytes([]byte(binaryBodyYAML))
	require.NoError(t, err)
	assert.Empty(t, result.Issues)
	assert.Zero(t, result.InfoCount)
	assert.True(t, result.Success)
}

func TestGenerateParseFailure(t *testing.T) {
	result, err := New().GenerateBytes([]byte("{"))
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "failed to parse specification")
}

func TestGenerateCustomBaseRequestType(t *testing.T) {
	g := New()
	g.BaseRequestType = "AxiosRequestConfig"

	result, err := g.GenerateBytes([]byte(petstoreYAML))
	require.NoError(t, err)

	content := string(result.Files[0].Content)
	assert.Contains(t, content, "export interface AxiosRequestConfig {")
	assert.Contains(t, content, "type Config = Omit<AxiosRequestConfig, 'method' | 'url'>;")
	assert.NotContains(t, content, "RequestOptions")
}

func TestGenerateResultGetFile(t *testing.T) {
	result := &GenerateResult{Files: []GeneratedFile{{Name: "client.ts", Content: []byte("x")}}}

	file := result.GetFile("client.ts")
	require.NotNil(t, file)
	assert.Equal(t, []byte("x"), file.Content)
	assert.Nil(t, result.GetFile("other.ts"))
}

func TestGenerateResultSeverityHelpers(t *testing.T) {
	r := &GenerateResult{}
	assert.False(t, r.HasWarnings())
	assert.False(t, r.HasCriticalIssues())

	r.WarningCount = 2
	r.CriticalCount = 1
	assert.True(t, r.HasWarnings())
	assert.True(t, r.HasCriticalIssues())
}

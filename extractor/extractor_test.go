package extractor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/tsreqgen/document"
	"github.com/erraggy/tsreqgen/generrors"
	"github.com/erraggy/tsreqgen/parser"
)

func parseDoc(t *testing.T, src string) *document.Object {
	t.Helper()
	parsed, err := parser.New().ParseBytes([]byte(src))
	require.NoError(t, err)
	return parsed.Document
}

func extract(t *testing.T, src string) *Result {
	t.Helper()
	result, err := New().Extract(parseDoc(t, src))
	require.NoError(t, err)
	return result
}

func TestExtractOrdering(t *testing.T) {
	result := extract(t, `openapi: 3.0.3
paths:
  /zebras:
    post:
      operationId: createZebra
      responses:
        "200":
          description: ok
    get:
      operationId: listZebras
      responses:
        "200":
          description: ok
  /apples:
    delete:
      operationId: deleteApple
      responses:
        "200":
          description: ok
    get:
      operationId: listApples
      responses:
        "200":
          description: ok
`)
	var ids []string
	for _, op := range result.Operations {
		ids = append(ids, op.OperationID)
	}
	// paths keep declaration order; methods follow the canonical order
	// regardless of how the document declares them
	assert.Equal(t, []string{"listZebras", "createZebra", "listApples", "deleteApple"}, ids)

	assert.Equal(t, "get", result.Operations[0].Method)
	assert.Equal(t, "/zebras", result.Operations[0].URL)
	assert.Equal(t, "post", result.Operations[1].Method)
}

func TestExtractCustomMethodOrder(t *testing.T) {
	e := New()
	e.Methods = []string{"post", "get"}
	result, err := e.Extract(parseDoc(t, `openapi: 3.0.3
paths:
  /pets:
    get:
      operationId: listPets
      responses:
        "200":
          description: ok
    post:
      operationId: createPet
      responses:
        "200":
          description: ok
    delete:
      operationId: clearPets
      responses:
        "200":
          description: ok
`))
	require.NoError(t, err)
	require.Len(t, result.Operations, 2, "methods outside the configured order are skipped")
	assert.Equal(t, "createPet", result.Operations[0].OperationID)
	assert.Equal(t, "listPets", result.Operations[1].OperationID)
}

func TestExtractEmptyPaths(t *testing.T) {
	t.Run("empty paths map", func(t *testing.T) {
		result := extract(t, "openapi: 3.0.3\npaths: {}\n")
		assert.Empty(t, result.Operations)
	})

	t.Run("missing paths key", func(t *testing.T) {
		result := extract(t, "openapi: 3.0.3\ninfo:\n  title: t\n  version: \"1\"\n")
		assert.Empty(t, result.Operations)
	})
}

func TestExtractNilDocument(t *testing.T) {
	_, err := New().Extract(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, generrors.ErrConfig))
}

func TestExtractOperationMetadata(t *testing.T) {
	result := extract(t, `openapi: 3.0.3
paths:
  /pets:
    get:
      operationId: listPets
      summary: List pets
      description: Lists all pets in the store
      deprecated: true
      responses:
        "200":
          description: ok
`)
	require.Len(t, result.Operations, 1)
	op := result.Operations[0]
	assert.Equal(t, "listPets", op.OperationID)
	assert.Equal(t, "List pets", op.Summary)
	assert.Equal(t, "Lists all pets in the store", op.Description)
	assert.True(t, op.Deprecated)
}

func TestExtractBodyPreference(t *testing.T) {
	t.Run("json wins over earlier declarations", func(t *testing.T) {
		result := extract(t, `openapi: 3.0.3
paths:
  /things:
    post:
      operationId: create
      requestBody:
        content:
          application/xml:
            schema:
              type: object
          application/json:
            schema:
              type: string
      responses:
        "200":
          description: ok
`)
		op := result.Operations[0]
		require.NotNil(t, op.RequestBody)
		schema, ok := op.RequestBody.Obj("schema")
		require.True(t, ok)
		typ, _ := schema.Str("type")
		assert.Equal(t, "string", typ)
		assert.False(t, op.IsMultipart)
	})

	t.Run("multipart beats other non-json types", func(t *testing.T) {
		result := extract(t, `openapi: 3.0.3
paths:
  /things:
    post:
      operationId: create
      requestBody:
        content:
          application/xml:
            schema:
              type: object
          multipart/form-data:
            schema:
              type: object
              properties:
                file:
                  type: string
                  format: binary
      responses:
        "200":
          description: ok
`)
		op := result.Operations[0]
		require.NotNil(t, op.RequestBody)
		assert.True(t, op.IsMultipart)
	})

	t.Run("first declared type is the fallback", func(t *testing.T) {
		result := extract(t, `openapi: 3.0.3
paths:
  /things:
    post:
      operationId: create
      requestBody:
        content:
          text/plain:
            schema:
              type: string
          application/xml:
            schema:
              type: object
      responses:
        "200":
          description: ok
`)
		op := result.Operations[0]
		require.NotNil(t, op.RequestBody)
		schema, ok := op.RequestBody.Obj("schema")
		require.True(t, ok)
		typ, _ := schema.Str("type")
		assert.Equal(t, "string", typ)
	})

	t.Run("multipart presence marks the operation even when json is chosen", func(t *testing.T) {
		result := extract(t, `openapi: 3.0.3
paths:
  /things:
    post:
      operationId: create
      requestBody:
        content:
          application/json:
            schema:
              type: object
          multipart/form-data:
            schema:
              type: object
      responses:
        "200":
          description: ok
`)
		op := result.Operations[0]
		schema, ok := op.RequestBody.Obj("schema")
		require.True(t, ok)
		typ, _ := schema.Str("type")
		assert.Equal(t, "object", typ)
		assert.True(t, op.IsMultipart)
	})
}

func TestExtractMultipartInference(t *testing.T) {
	result := extract(t, `openapi: 3.0.3
paths:
  /upload:
    post:
      operationId: upload
      requestBody:
        content:
          application/json:
            schema:
              type: object
              properties:
                photo:
                  type: string
                  format: binary
                caption:
                  type: string
      responses:
        "200":
          description: ok
`)
	op := result.Operations[0]
	assert.True(t, op.IsMultipart, "a binary property reclassifies the body as multipart")
	require.Len(t, result.Issues, 1)
	assert.Contains(t, result.Issues[0].Message, "binary property")
	assert.Equal(t, "paths./upload.post.requestBody", result.Issues[0].Path)
}

func TestExtractResponse(t *testing.T) {
	t.Run("first content entry wins", func(t *testing.T) {
		result := extract(t, `openapi: 3.0.3
paths:
  /report:
    get:
      operationId: getReport
      responses:
        "200":
          description: ok
          content:
            text/csv:
              schema:
                type: string
            application/json:
              schema:
                type: object
`)
		op := result.Operations[0]
		require.NotNil(t, op.Response)
		schema, ok := op.Response.Obj("schema")
		require.True(t, ok)
		typ, _ := schema.Str("type")
		assert.Equal(t, "string", typ)
	})

	t.Run("no 200 response", func(t *testing.T) {
		result := extract(t, `openapi: 3.0.3
paths:
  /pets:
    delete:
      operationId: clearPets
      responses:
        "204":
          description: emptied
`)
		assert.Nil(t, result.Operations[0].Response)
	})

	t.Run("200 without content", func(t *testing.T) {
		result := extract(t, `openapi: 3.0.3
paths:
  /pets:
    get:
      operationId: listPets
      responses:
        "200":
          description: ok
`)
		assert.Nil(t, result.Operations[0].Response)
	})
}

func TestExtractParameters(t *testing.T) {
	result := extract(t, `openapi: 3.0.3
paths:
  /orgs/{orgId}/repos/{repoId}:
    get:
      operationId: getRepo
      parameters:
        - name: verbose
          in: query
          schema:
            type: boolean
        - name: repoId
          in: path
          schema:
            type: string
        - name: orgId
          in: path
          required: true
          schema:
            type: string
        - name: X-Trace
          in: header
          required: true
          schema:
            type: string
        - name: limit
          in: query
          required: true
          schema:
            type: integer
        - name: session
          in: cookie
          schema:
            type: string
      responses:
        "200":
          description: ok
`)
	op := result.Operations[0]

	require.Len(t, op.PathParams, 2)
	assert.Equal(t, "orgId", op.PathParams[0].Name, "required path parameters sort first")
	assert.True(t, op.PathParams[0].Required)
	assert.Equal(t, "repoId", op.PathParams[1].Name)
	assert.False(t, op.PathParams[1].Required)

	require.Len(t, op.QueryParams, 2)
	assert.Equal(t, "verbose", op.QueryParams[0].Name, "query parameters keep declaration order")
	assert.Equal(t, "limit", op.QueryParams[1].Name)
}

func TestExtractPathParamSortIsStable(t *testing.T) {
	result := extract(t, `openapi: 3.0.3
paths:
  /a/{p1}/{p2}/{o1}/{o2}:
    get:
      operationId: deep
      parameters:
        - name: o1
          in: path
          schema:
            type: string
        - name: p1
          in: path
          required: true
          schema:
            type: string
        - name: o2
          in: path
          schema:
            type: string
        - name: p2
          in: path
          required: true
          schema:
            type: string
      responses:
        "200":
          description: ok
`)
	var names []string
	for _, p := range result.Operations[0].PathParams {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"p1", "p2", "o1", "o2"}, names)
}

func TestExtractParameterRefs(t *testing.T) {
	const src = `openapi: 3.0.3
paths:
  /pets/{petId}:
    get:
      operationId: getPet
      parameters:
        - $ref: "#/components/parameters/PetID"
        - $ref: "#/components/parameters/Missing"
      responses:
        "200":
          description: ok
components:
  parameters:
    PetID:
      name: petId
      in: path
      required: true
      schema:
        type: integer
        format: int64
`
	t.Run("resolved and dropped", func(t *testing.T) {
		result := extract(t, src)
		op := result.Operations[0]
		require.Len(t, op.PathParams, 1)
		assert.Equal(t, "petId", op.PathParams[0].Name)
		require.NotNil(t, op.PathParams[0].Schema)

		require.Len(t, result.Issues, 1)
		assert.Contains(t, result.Issues[0].Message, "#/components/parameters/Missing")
		assert.Equal(t, "paths./pets/{petId}.get.parameters[1]", result.Issues[0].Path)
	})

	t.Run("strict refs fail instead", func(t *testing.T) {
		e := New()
		e.StrictRefs = true
		_, err := e.Extract(parseDoc(t, src))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot resolve parameter reference")
		assert.True(t, errors.Is(err, generrors.ErrReference))
	})
}

func TestExtractRequestBodyRef(t *testing.T) {
	result := extract(t, `openapi: 3.0.3
paths:
  /pets:
    post:
      operationId: createPet
      requestBody:
        $ref: "#/components/requestBodies/PetBody"
      responses:
        "200":
          description: ok
components:
  requestBodies:
    PetBody:
      content:
        application/json:
          schema:
            type: object
`)
	op := result.Operations[0]
	require.NotNil(t, op.RequestBody)
	schema, ok := op.RequestBody.Obj("schema")
	require.True(t, ok)
	typ, _ := schema.Str("type")
	assert.Equal(t, "object", typ)
}

func TestExtractDanglingResponseRefStrict(t *testing.T) {
	e := New()
	e.StrictRefs = true
	_, err := e.Extract(parseDoc(t, `openapi: 3.0.3
paths:
  /pets:
    get:
      operationId: listPets
      responses:
        "200":
          $ref: "#/components/responses/Missing"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot resolve response reference")
}

func TestExtractStrippedParameterSkipped(t *testing.T) {
	// dangling-reference pruning leaves empty parameter objects behind;
	// they carry no location and fall out of the partition
	result := extract(t, `openapi: 3.0.3
paths:
  /pets:
    get:
      operationId: listPets
      parameters:
        - {}
        - name: q
          in: query
          schema:
            type: string
      responses:
        "200":
          description: ok
`)
	op := result.Operations[0]
	assert.Empty(t, op.PathParams)
	require.Len(t, op.QueryParams, 1)
	assert.Equal(t, "q", op.QueryParams[0].Name)
	assert.Empty(t, result.Issues)
}

package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/tsreqgen/document"
	"github.com/erraggy/tsreqgen/extractor"
	"github.com/erraggy/tsreqgen/internal/tsformat"
)

func TestAssembleModuleEmpty(t *testing.T) {
	out := assembleModule(nil, defaultBaseRequestType, nil)

	assert.Contains(t, out, " * Typed request factories for API.\n")
	assert.NotContains(t, out, "API version:")
	assert.Contains(t, out, "export interface RequestOptions {\n")
	assert.Contains(t, out, "export const operations = {} as const;\n")
	assert.Contains(t, out, "export type OperationKey = keyof typeof operations;\n")
	assert.Contains(t, out, "export const makeRequest = <K extends OperationKey>(client: RequestClient, key: K) => {\n")
}

func TestAssembleModuleHeader(t *testing.T) {
	doc := document.NewObject().Set("info", document.NewObject().
		Set("title", "Swagger Petstore").
		Set("version", "1.0.7"))

	out := assembleModule(doc, defaultBaseRequestType, nil)
	assert.Contains(t, out, " * Typed request factories for Swagger Petstore.\n")
	assert.Contains(t, out, " * API version: 1.0.7\n")
}

func TestAssembleModuleRendersBlocksLastExtractedFirst(t *testing.T) {
	blocks := []opBlock{
		{key: "GET /a", name: "first", text: "export const first = () => ({});\n"},
		{key: "GET /b", name: "second", text: "export const second = () => ({});\n"},
		{key: "GET /c", name: "third", text: "export const third = () => ({});\n"},
	}

	out := assembleModule(nil, defaultBaseRequestType, blocks)

	iThird := strings.Index(out, "export const third")
	iSecond := strings.Index(out, "export const second")
	iFirst := strings.Index(out, "export const first")
	require.True(t, iThird >= 0 && iSecond >= 0 && iFirst >= 0)
	assert.Less(t, iThird, iSecond)
	assert.Less(t, iSecond, iFirst)

	// the aggregate spread follows the same order
	spread := "export const operations = {\n  ...third(),\n  ...second(),\n  ...first(),\n} as const;\n"
	assert.Contains(t, out, spread)
}

func TestAssembleModuleCustomBaseType(t *testing.T) {
	out := assembleModule(nil, "AxiosRequestConfig", nil)

	assert.Contains(t, out, "export interface AxiosRequestConfig {\n")
	assert.Contains(t, out, "request: (options: AxiosRequestConfig) => Promise<any>;\n")
	assert.Contains(t, out, "as (...args: any[]) => AxiosRequestConfig;\n")
	assert.NotContains(t, out, "RequestOptions")
}

// The assembler's output must be a fixed point of the formatter:
// formatting is a structural check, not a rewrite, so assembled text
// passes through unchanged.
func TestAssembleModuleIsFormatterFixedPoint(t *testing.T) {
	block := blockFor(t, extractor.Operation{
		OperationID: "getUser",
		Method:      "get",
		URL:         "/users/{id}",
		PathParams: []extractor.Parameter{{
			Name:     "id",
			In:       "path",
			Required: true,
			Schema:   document.NewObject().Set("type", "string"),
		}},
	})
	doc := document.NewObject().Set("info", document.NewObject().
		Set("title", "Users").
		Set("version", "2.0.0"))

	out := assembleModule(doc, defaultBaseRequestType, []opBlock{block})
	formatted, err := tsformat.New().Format(out)
	require.NoError(t, err)
	assert.Equal(t, out, formatted)
}

// Braces inside the interpolation regex literal are counted by the
// formatter's scanner; the emitted pattern keeps them paired so the
// shared helpers always pass the balance check.
func TestSharedHelpersBalance(t *testing.T) {
	out := assembleModule(nil, defaultBaseRequestType, nil)
	_, err := tsformat.New().Format(out)
	require.NoError(t, err)
	assert.Contains(t, out, "template.replace(/{.*?}/g, (match) => {\n")
	assert.Contains(t, out, "const value = values[match.slice(1, -1)];\n")
}
